package scoring

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidCatalog is returned when a catalog cannot be used for a search
var ErrInvalidCatalog = errors.New("invalid scoring catalog")

// Play is a single kind of scoring play and the points it is worth
type Play struct {
	Points int
	Label  string
}

// Catalog is an immutable set of scoring plays ordered by descending points
type Catalog struct {
	plays []Play
}

// Football returns the standard American football catalog
func Football() Catalog {
	return Catalog{plays: []Play{
		{Points: 8, Label: "TD+2"},
		{Points: 7, Label: "TD+PAT"},
		{Points: 6, Label: "TD"},
		{Points: 3, Label: "FG"},
		{Points: 2, Label: "Safety"},
	}}
}

// NewCatalog validates the plays and orders them by descending points.
// Plays with equal points keep the order they were given in.
func NewCatalog(plays ...Play) (Catalog, error) {
	if len(plays) == 0 {
		return Catalog{}, fmt.Errorf("%w: no plays", ErrInvalidCatalog)
	}

	seen := make(map[string]bool, len(plays))
	sorted := make([]Play, len(plays))
	copy(sorted, plays)

	for _, p := range sorted {
		if p.Points <= 0 {
			return Catalog{}, fmt.Errorf("%w: play %q must be worth a positive number of points, got %d", ErrInvalidCatalog, p.Label, p.Points)
		}
		if p.Label == "" {
			return Catalog{}, fmt.Errorf("%w: play worth %d has no label", ErrInvalidCatalog, p.Points)
		}
		if seen[p.Label] {
			return Catalog{}, fmt.Errorf("%w: duplicate label %q", ErrInvalidCatalog, p.Label)
		}
		seen[p.Label] = true
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})

	return Catalog{plays: sorted}, nil
}

// Plays returns a copy of the plays in search order
func (c Catalog) Plays() []Play {
	out := make([]Play, len(c.plays))
	copy(out, c.plays)
	return out
}

// Len returns the number of plays in the catalog
func (c Catalog) Len() int {
	return len(c.plays)
}

// Smallest returns the lowest point value in the catalog, or 0 if empty
func (c Catalog) Smallest() int {
	if len(c.plays) == 0 {
		return 0
	}
	return c.plays[len(c.plays)-1].Points
}
