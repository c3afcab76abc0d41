package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource []Tuple

func (f fakeSource) EntryCount() int    { return len(f) }
func (f fakeSource) Tuple(e int) Tuple  { return f[e] }

func beatlesLibrary() fakeSource {
	return fakeSource{
		{Artist: "The Beatles", Album: "Abbey Road", Title: "Come Together"},
		{Artist: "The Beatles", Album: "Abbey Road", Title: "Something"},
		{Artist: "Radiohead", Album: "OK Computer", Title: "Karma Police"},
	}
}

func TestBuild_ValidOnlyAfterFullPass(t *testing.T) {
	idx := NewIndex()
	require.False(t, idx.Valid())

	idx.Build(beatlesLibrary())
	assert.True(t, idx.Valid())
}

func TestBuild_Idempotent(t *testing.T) {
	src := beatlesLibrary()

	idx1 := NewIndex()
	idx1.Build(src)
	idx2 := NewIndex()
	idx2.Build(src)

	assert.ElementsMatch(t, keysOf(idx1.Root()), keysOf(idx2.Root()))

	artist1 := idx1.Root()[Key{Artist, "The Beatles"}]
	artist2 := idx2.Root()[Key{Artist, "The Beatles"}]
	assert.Equal(t, artist1.Matches, artist2.Matches)
}

func TestBuild_EmptyFieldSkipped(t *testing.T) {
	idx := NewIndex()
	idx.Build(fakeSource{{Artist: "Solo Artist", Title: "Only Title"}})

	artist := idx.Root()[Key{Artist, "Solo Artist"}]
	require.NotNil(t, artist)
	// no album in between: title is a direct child of artist
	title := artist.Children[Key{Title, "Only Title"}]
	require.NotNil(t, title)
	assert.Equal(t, artist, title.Parent)
}

func TestBuild_GenreIsFlatSibling(t *testing.T) {
	idx := NewIndex()
	idx.Build(fakeSource{{Genre: "Rock", Artist: "X", Album: "Y", Title: "Z"}})

	genre := idx.Root()[Key{Genre, "Rock"}]
	require.NotNil(t, genre)
	assert.Nil(t, genre.Parent)
	assert.Equal(t, 0, genre.numChildren())

	artist := idx.Root()[Key{Artist, "X"}]
	require.NotNil(t, artist)
	assert.Nil(t, artist.Parent)
}

func TestBuild_DuplicateTupleMerges(t *testing.T) {
	idx := NewIndex()
	idx.Build(fakeSource{
		{Artist: "A", Album: "B", Title: "C"},
		{Artist: "A", Album: "B", Title: "C"},
	})

	title := idx.Root()[Key{Artist, "A"}].Children[Key{Album, "B"}].Children[Key{Title, "C"}]
	require.NotNil(t, title)
	assert.Equal(t, []int{0, 1}, title.Matches)
}

func TestFold_Stable(t *testing.T) {
	for _, s := range []string{"The Beatles", "ALREADY LOWER", "MiXeD"} {
		assert.Equal(t, Fold(s), Fold(Fold(s)))
	}
}

func keysOf(m map[Key]*Item) []Key {
	keys := make([]Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
