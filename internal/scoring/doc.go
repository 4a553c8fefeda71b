// Package scoring finds the combinations of scoring plays that make up a
// points deficit.
//
// # Basic Usage
//
//	combos, err := scoring.FindCombinations(10, scoring.Football(), 5)
//	for _, c := range combos {
//	    fmt.Println(c) // "TD+2×1 + Safety×1 (2 plays, 10 pts)", ...
//	}
//
// # Search
//
// The catalog is treated as an unlimited supply of each play. The search is
// depth-first and only ever moves forward through the catalog, so {TD, FG}
// and {FG, TD} are produced once. Results are ordered by play count, then by
// label, and truncated to the result cap.
//
// A Finder with a NodeBudget bounds the search itself, not just the output.
// Use FindRange to build a table over many targets concurrently.
package scoring
