package scoring

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultMaxResults is how many combos a Finder returns when MaxResults is unset
const DefaultMaxResults = 10

// DefaultNodeBudget bounds the number of search nodes visited per target.
// Realistic football margins finish in a few thousand nodes.
const DefaultNodeBudget = 2_000_000

// cancelCheckInterval is how many nodes the search visits between context checks
const cancelCheckInterval = 4096

var (
	// ErrInvalidTarget is returned for negative targets
	ErrInvalidTarget = errors.New("invalid target")
	// ErrInvalidLimit is returned when the result cap is not positive
	ErrInvalidLimit = errors.New("max results must be positive")
)

// Entry is one play kind within a combo and how many times it occurs
type Entry struct {
	Play  Play
	Count int
}

// Combo is a multiset of plays. Entries are in catalog order and never hold a
// zero count.
type Combo struct {
	Entries []Entry
}

// Plays returns the total number of plays in the combo
func (c Combo) Plays() int {
	total := 0
	for _, e := range c.Entries {
		total += e.Count
	}
	return total
}

// Points returns the total number of points the combo is worth
func (c Combo) Points() int {
	total := 0
	for _, e := range c.Entries {
		total += e.Count * e.Play.Points
	}
	return total
}

// Label renders the plays as "TD+PAT×1 + FG×2"
func (c Combo) Label() string {
	parts := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		parts[i] = fmt.Sprintf("%s×%d", e.Play.Label, e.Count)
	}
	return strings.Join(parts, " + ")
}

// String renders the combo with its summary, "TD+PAT×1 + FG×2 (3 plays, 13 pts)"
func (c Combo) String() string {
	return fmt.Sprintf("%s (%d plays, %d pts)", c.Label(), c.Plays(), c.Points())
}

// Result is the outcome of a search for one target
type Result struct {
	Target int
	// Combos holds at most MaxResults combos, fewest plays first
	Combos []Combo
	// Found is how many combos the search produced before truncation
	Found int
	// Exhaustive is false when the node budget stopped the search early, in
	// which case Combos is drawn from a partial enumeration
	Exhaustive bool
}

// Finder enumerates the ways a target can be reached with a catalog of plays.
//
// The number of combos grows exponentially with target/Smallest(), so
// MaxResults only bounds what is returned. NodeBudget bounds the work.
type Finder struct {
	Catalog    Catalog
	MaxResults int
	NodeBudget int // 0 means DefaultNodeBudget, negative means unbounded
	Logger     *log.Logger
}

// NewFinder creates a finder over the catalog with default limits
func NewFinder(catalog Catalog) *Finder {
	return &Finder{
		Catalog:    catalog,
		MaxResults: DefaultMaxResults,
		NodeBudget: DefaultNodeBudget,
	}
}

// FindCombinations returns up to maxResults combos from catalog summing to target
func FindCombinations(target int, catalog Catalog, maxResults int) ([]Combo, error) {
	f := NewFinder(catalog)
	f.MaxResults = maxResults
	result, err := f.Find(target)
	if err != nil {
		return nil, err
	}
	return result.Combos, nil
}

// Find enumerates every multiset of catalog plays summing exactly to target,
// sorts them by play count then label, and truncates to MaxResults.
// A target of zero is a tied game and yields an empty result.
func (f *Finder) Find(target int) (Result, error) {
	return f.FindContext(context.Background(), target)
}

// FindContext is Find with a search that stops when ctx is cancelled
func (f *Finder) FindContext(ctx context.Context, target int) (Result, error) {
	if target < 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidTarget, target)
	}
	if f.MaxResults <= 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidLimit, f.MaxResults)
	}
	if f.Catalog.Len() == 0 {
		return Result{}, fmt.Errorf("%w: no plays", ErrInvalidCatalog)
	}

	result := Result{Target: target, Exhaustive: true}
	if target == 0 || target < f.Catalog.Smallest() {
		return result, nil
	}

	s := &search{
		ctx:    ctx,
		plays:  f.Catalog.plays,
		counts: make([]int, f.Catalog.Len()),
		budget: f.budget(),
	}
	if !s.walk(0, target) {
		if s.err != nil {
			return Result{}, s.err
		}
		result.Exhaustive = false
		f.logger().Warn("Search budget exhausted", "target", target, "nodes", s.nodes, "found", len(s.found))
	}

	sortCombos(s.found)
	result.Found = len(s.found)
	if len(s.found) > f.MaxResults {
		s.found = s.found[:f.MaxResults]
	}
	result.Combos = s.found

	f.logger().Debug("Combination search complete",
		"target", target,
		"found", result.Found,
		"returned", len(result.Combos),
		"nodes", s.nodes)

	return result, nil
}

func (f *Finder) budget() int {
	switch {
	case f.NodeBudget == 0:
		return DefaultNodeBudget
	case f.NodeBudget < 0:
		return 0
	default:
		return f.NodeBudget
	}
}

func (f *Finder) logger() *log.Logger {
	if f.Logger == nil {
		return log.Default()
	}
	return f.Logger
}

// search is the depth-first state for one Find call. counts is restored on
// backtrack so every branch sees only its own plays.
type search struct {
	ctx    context.Context
	err    error
	plays  []Play
	counts []int
	found  []Combo
	nodes  int
	budget int // 0 is unbounded
}

// walk only advances to plays at or after start so each multiset is produced
// once. It returns false when the node budget runs out or the context is
// cancelled, in which case err is set.
func (s *search) walk(start, remaining int) bool {
	s.nodes++
	if s.budget > 0 && s.nodes > s.budget {
		return false
	}
	if s.nodes%cancelCheckInterval == 1 {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			return false
		}
	}

	if remaining == 0 {
		s.record()
		return true
	}

	for i := start; i < len(s.plays); i++ {
		if s.plays[i].Points > remaining {
			continue
		}
		s.counts[i]++
		ok := s.walk(i, remaining-s.plays[i].Points)
		s.counts[i]--
		if !ok {
			return false
		}
	}
	return true
}

func (s *search) record() {
	var combo Combo
	for i, n := range s.counts {
		if n > 0 {
			combo.Entries = append(combo.Entries, Entry{Play: s.plays[i], Count: n})
		}
	}
	s.found = append(s.found, combo)
}

func sortCombos(combos []Combo) {
	sort.SliceStable(combos, func(i, j int) bool {
		pi, pj := combos[i].Plays(), combos[j].Plays()
		if pi != pj {
			return pi < pj
		}
		return combos[i].Label() < combos[j].Label()
	})
}
