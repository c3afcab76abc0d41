package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabel_PlainIncludesSongCountAndParent(t *testing.T) {
	idx := NewIndex()
	idx.Build(beatlesLibrary())

	album := idx.Root()[Key{Artist, "The Beatles"}].Children[Key{Album, "Abbey Road"}]
	label := Label(album, false)
	assert.Contains(t, label, "Abbey Road")
	assert.Contains(t, label, "2 songs")
	assert.Contains(t, label, "by The Beatles")
}

func TestLabel_GenreSuffix(t *testing.T) {
	idx := NewIndex()
	idx.Build(fakeSource{{Genre: "Rock", Artist: "X", Title: "Y"}})

	genre := idx.Root()[Key{Genre, "Rock"}]
	label := Label(genre, false)
	assert.Contains(t, label, "ROCK")
	assert.Contains(t, label, "of this genre")
}

func TestLabel_TitleHasNoSongCount(t *testing.T) {
	idx := NewIndex()
	idx.Build(beatlesLibrary())

	title := idx.Root()[Key{Artist, "The Beatles"}].
		Children[Key{Album, "Abbey Road"}].
		Children[Key{Title, "Come Together"}]
	label := Label(title, false)
	assert.NotContains(t, label, "song")
	// the label always prefers the grandparent (Artist) over the immediate
	// Album parent when one exists - see labelDetail.
	assert.Contains(t, label, "by The Beatles")
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "song", Pluralize(1, "song", "songs"))
	assert.Equal(t, "songs", Pluralize(0, "song", "songs"))
	assert.Equal(t, "songs", Pluralize(2, "song", "songs"))
}
