package landmark

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/idursun/mandelbrot/internal/config"
)

// Landmark is a named square region given by its centre and side length.
type Landmark struct {
	Name        string
	Description string
	X           float64
	Y           float64
	Size        float64
}

func (l Landmark) String() string {
	return fmt.Sprintf("%s (%g, %g) size %g", l.Name, l.X, l.Y, l.Size)
}

type Catalog struct {
	landmarks []Landmark
}

func NewCatalog(entries []config.LandmarkConfig) *Catalog {
	c := &Catalog{landmarks: make([]Landmark, 0, len(entries))}
	for _, e := range entries {
		c.landmarks = append(c.landmarks, Landmark{
			Name:        e.Name,
			Description: e.Description,
			X:           e.X,
			Y:           e.Y,
			Size:        e.Size,
		})
	}
	return c
}

func (c *Catalog) Len() int {
	return len(c.landmarks)
}

func (c *Catalog) String(i int) string {
	return c.landmarks[i].Name
}

func (c *Catalog) At(i int) Landmark {
	return c.landmarks[i]
}

// Search ranks landmarks by fuzzy match against their names. An empty query
// lists every landmark in catalogue order.
func (c *Catalog) Search(query string) fuzzy.Matches {
	query = strings.TrimSpace(query)
	if query == "" {
		matches := make(fuzzy.Matches, 0, c.Len())
		for i := range c.Len() {
			matches = append(matches, fuzzy.Match{Index: i, Str: c.String(i)})
		}
		return matches
	}
	return fuzzy.FindFrom(query, c)
}

// Resolve turns prompt input into a destination: either explicit
// coordinates, or the best fuzzy match.
func (c *Catalog) Resolve(input string) (Landmark, bool) {
	if l, ok := ParseCoordinates(input); ok {
		return l, true
	}
	matches := c.Search(input)
	if len(matches) == 0 {
		return Landmark{}, false
	}
	return c.At(matches[0].Index), true
}

// ParseCoordinates accepts "x y size", with commas allowed as separators.
func ParseCoordinates(input string) (Landmark, bool) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 3 {
		return Landmark{}, false
	}
	var values [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Landmark{}, false
		}
		values[i] = v
	}
	if values[2] <= 0 {
		return Landmark{}, false
	}
	return Landmark{
		Name: strings.Join(fields, " "),
		X:    values[0],
		Y:    values[1],
		Size: values[2],
	}, true
}
