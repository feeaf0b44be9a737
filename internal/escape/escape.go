package escape

// Iterations counts steps of z ← z² + c, starting from z = c, until |z|² ≥ 4
// or maxIterations is reached. A result equal to maxIterations means the
// sample did not escape.
func Iterations(cr, ci float64, maxIterations int) int {
	zr, zi := cr, ci
	i := 0
	for ; i < maxIterations; i++ {
		zr2 := zr * zr
		zi2 := zi * zi
		if zr2+zi2 >= 4.0 {
			break
		}
		zi = 2.0*zr*zi + ci
		zr = zr2 - zi2 + cr
	}
	return i
}

func Inside(n, maxIterations int) bool {
	return n >= maxIterations
}
