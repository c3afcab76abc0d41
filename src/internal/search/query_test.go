package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S1 from spec §8: the Beatles' only Album ("Abbey Road") has two Title
// children, so the Artist node (which has exactly one child, the album) is
// suppressed and the Album node is emitted instead.
func TestSearch_S1_BasicQuery(t *testing.T) {
	idx := NewIndex()
	idx.Build(beatlesLibrary())

	terms, err := Tokenize("beatles")
	require.NoError(t, err)

	res := Search(idx, terms, 20)
	require.Len(t, res.Items, 1)
	assert.Equal(t, Album, res.Items[0].Field)
	assert.Equal(t, "Abbey Road", res.Items[0].Name)
	assert.Len(t, res.Items[0].Matches, 2)
	assert.Equal(t, "1 result", StatsLabel(res))
}

// S2: a second AND-term narrows to the single matching Title.
func TestSearch_S2_MultiTermAnd(t *testing.T) {
	idx := NewIndex()
	idx.Build(beatlesLibrary())

	terms, err := Tokenize("beatles come")
	require.NoError(t, err)

	res := Search(idx, terms, 20)
	require.Len(t, res.Items, 1)
	assert.Equal(t, Title, res.Items[0].Field)
	assert.Equal(t, "Come Together", res.Items[0].Name)
}

// S3: 25 distinct artists all matching "a", capped at 20.
func TestSearch_S3_Cap(t *testing.T) {
	var src fakeSource
	for i := 0; i < 25; i++ {
		src = append(src, Tuple{Artist: fmt.Sprintf("Artist A%02d", i), Title: fmt.Sprintf("Song %d", i)})
	}

	idx := NewIndex()
	idx.Build(src)

	terms, err := Tokenize("a")
	require.NoError(t, err)

	res := Search(idx, terms, 20)
	assert.Len(t, res.Items, 20)
	assert.Equal(t, 5, res.HiddenItems)
	assert.Equal(t, "20 of 25 results shown", StatsLabel(res))
}

func TestSearch_InvalidIndexReturnsEmpty(t *testing.T) {
	idx := NewIndex()
	res := Search(idx, []string{"x"}, 20)
	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.HiddenItems)
}

func TestSearch_SingleChildSuppression(t *testing.T) {
	idx := NewIndex()
	idx.Build(beatlesLibrary())

	for _, item := range idx.Root() {
		assertNoSingleChildEmitted(t, item)
	}
}

func assertNoSingleChildEmitted(t *testing.T, item *Item) {
	t.Helper()
	var results []*Item
	searchRecurse(map[Key]*Item{{item.Field, item.Name}: item}, nil, 0, &results)
	for _, r := range results {
		assert.NotEqual(t, 1, r.numChildren())
	}
}

// Subset monotonicity (spec §8 invariant 3): result(Q2) is a subset of
// result(Q1) at node-identity level when Q2 extends Q1 with more terms.
func TestSearch_SubsetMonotonicity(t *testing.T) {
	idx := NewIndex()
	idx.Build(beatlesLibrary())

	t1, _ := Tokenize("beatles")
	t2, _ := Tokenize("beatles come")

	r1 := Search(idx, t1, 1000)
	r2 := Search(idx, t2, 1000)

	set1 := make(map[*Item]bool)
	for _, it := range r1.Items {
		set1[it] = true
	}
	for _, it := range r2.Items {
		assert.True(t, set1[it] || isDescendantOfAny(it, set1), "result(Q2) must be reachable from result(Q1)")
	}
}

func isDescendantOfAny(it *Item, set map[*Item]bool) bool {
	for p := it.Parent; p != nil; p = p.Parent {
		if set[p] {
			return true
		}
	}
	return false
}

func TestItemCompare_OrdinalThenNameThenParent(t *testing.T) {
	a := newItem(Artist, "A", nil)
	b := newItem(Artist, "B", nil)
	assert.Negative(t, itemCompare(a, b))
	assert.Positive(t, itemCompare(b, a))
	assert.Zero(t, itemCompare(a, a))

	g := newItem(Genre, "Z", nil)
	assert.Negative(t, itemCompare(g, a)) // Genre < Artist ordinally

	child := newItem(Title, "A", a)
	other := newItem(Title, "A", nil)
	assert.Positive(t, itemCompare(child, other)) // parented sorts after parentless
}

func TestTokenize_CapsAt32Terms(t *testing.T) {
	terms := make([]string, 33)
	for i := range terms {
		terms[i] = "x"
	}
	query := ""
	for i, term := range terms {
		if i > 0 {
			query += " "
		}
		query += term
	}

	_, err := Tokenize(query)
	assert.ErrorIs(t, err, ErrTooManyTerms)
}

func TestTokenize_FoldsAndDropsEmpty(t *testing.T) {
	terms, err := Tokenize("Come  Together")
	require.NoError(t, err)
	assert.Equal(t, []string{"come", "together"}, terms)
}
