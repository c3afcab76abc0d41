package search

import (
	"errors"
	"sort"
	"strings"
)

// MaxTerms is the hard limit on the number of search terms a query can carry.
// The pruning algorithm reserves one bit per term in a 32-bit mask; raising
// this requires widening the mask (spec Design Note: "widen the mask to 64
// and document the new limit; do not silently drop terms without logging").
const MaxTerms = 32

// ErrTooManyTerms is returned by Tokenize when a query has more than
// MaxTerms space-separated tokens. Callers decide whether to reject the
// query or truncate it explicitly; terms are never silently dropped here.
var ErrTooManyTerms = errors.New("search: query has more than 32 terms")

// Tokenize splits a raw query on ASCII spaces, folds each token, and
// discards empty fragments.
func Tokenize(query string) ([]string, error) {
	fields := strings.Split(query, " ")
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		terms = append(terms, Fold(f))
	}
	if len(terms) > MaxTerms {
		return terms, ErrTooManyTerms
	}
	return terms, nil
}

// Result is the outcome of a query: the visible items (already sorted by
// item_compare for display) plus the count of items that were trimmed by
// the max-results cap.
type Result struct {
	Items       []*Item
	HiddenItems int
}

// Total is the pre-trim result count: Items + HiddenItems.
func (r Result) Total() int { return len(r.Items) + r.HiddenItems }

// Search runs the bitmask-pruning recursive walk over idx for terms,
// ranks by match count, trims to maxResults, then re-sorts for display.
// An invalid index yields an empty result, never an error - the spec
// treats index unavailability as a degenerate UI state, not a failure.
func Search(idx *Index, terms []string, maxResults int) Result {
	if !idx.Valid() {
		return Result{}
	}

	initMask := uint32(1)<<uint(len(terms)) - 1
	var items []*Item
	searchRecurse(idx.Root(), terms, initMask, &items)

	// pass 1: rank by match count, tie-break by item_compare
	sort.SliceStable(items, func(i, j int) bool {
		return lessRank(items[i], items[j])
	})

	hidden := 0
	if len(items) > maxResults {
		hidden = len(items) - maxResults
		items = items[:maxResults]
	}

	// pass 2: re-sort into display order
	sort.SliceStable(items, func(i, j int) bool {
		return itemCompare(items[i], items[j]) < 0
	})

	return Result{Items: items, HiddenItems: hidden}
}

// searchRecurse walks domain with the incoming pruning mask, appending
// matching nodes to results. Children inherit only the residual mask: a
// term matched at a parent is automatically matched for all descendants.
func searchRecurse(domain map[Key]*Item, terms []string, mask uint32, results *[]*Item) {
	for _, item := range domain {
		newMask := mask

		for t := 0; t < len(terms); t++ {
			bit := uint32(1) << uint(t)
			if newMask&bit == 0 {
				continue // term already matched on this path
			}
			if strings.Contains(item.Folded, terms[t]) {
				newMask &^= bit
			} else if item.numChildren() == 0 {
				break // no children left to satisfy the remaining terms
			}
		}

		// a node with exactly one child is redundant with that child
		if newMask == 0 && item.numChildren() != 1 {
			*results = append(*results, item)
		}

		if len(item.Children) > 0 {
			searchRecurse(item.Children, terms, newMask, results)
		}
	}
}

// itemCompare implements the canonical display ordering: field ordinal,
// then byte-wise name, then recursively by parent (a node with a parent
// sorts after a parentless node; two parentless nodes are equal).
func itemCompare(a, b *Item) int {
	if a.Field != b.Field {
		if a.Field < b.Field {
			return -1
		}
		return 1
	}

	if a.Name != b.Name {
		if a.Name < b.Name {
			return -1
		}
		return 1
	}

	if a.Parent != nil {
		if b.Parent != nil {
			return itemCompare(a.Parent, b.Parent)
		}
		return 1
	}
	if b.Parent != nil {
		return -1
	}
	return 0
}

// lessRank orders by descending match count, falling back to itemCompare.
func lessRank(a, b *Item) bool {
	if len(a.Matches) != len(b.Matches) {
		return len(a.Matches) > len(b.Matches)
	}
	return itemCompare(a, b) < 0
}
