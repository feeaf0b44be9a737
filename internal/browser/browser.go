package browser

import (
	"os/exec"
	"runtime"
)

// Open hands target to the desktop's default viewer without waiting for it.
func Open(target string) error {
	return command(runtime.GOOS, target).Start()
}

func command(goos string, target string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.Command("open", target)
	case "windows":
		return exec.Command("cmd", "/c", "start", "", target)
	default:
		// xdg-open covers linux and the other unix-likes
		return exec.Command("xdg-open", target)
	}
}
