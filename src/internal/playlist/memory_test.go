package playlist

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/mipimipi/libsearch/src/internal/search"
)

func TestMemory_InsertBatchAndRead(t *testing.T) {
	m := New("Library")
	m.InsertBatch([]Entry{
		{Filename: "/a.mp3", Tuple: search.Tuple{Artist: "X", Title: "A"}},
		{Filename: "/b.mp3", Tuple: search.Tuple{Artist: "X", Title: "B"}},
	}, false)

	require.Equal(t, 2, m.EntryCount())
	assert.Equal(t, "/a.mp3", m.EntryFilename(0))
	assert.Equal(t, "A", m.Tuple(0).Title)

	select {
	case lvl := <-m.Updated():
		assert.Equal(t, Structure, lvl)
	default:
		t.Fatal("expected an Updated notification")
	}
}

func TestMemory_SelectionAndDelete(t *testing.T) {
	m := New("Library")
	m.InsertBatch([]Entry{
		{Filename: "/a.mp3"},
		{Filename: "/b.mp3"},
		{Filename: "/c.mp3"},
	}, false)

	m.SetSelected(0, true)
	m.SetSelected(2, true)
	assert.Equal(t, 2, m.SelectedCount())

	m.DeleteSelected()
	require.Equal(t, 1, m.EntryCount())
	assert.Equal(t, "/b.mp3", m.EntryFilename(0))

	m.SelectAll(true)
	assert.Equal(t, 1, m.SelectedCount())
}

func TestMemory_SortByPath(t *testing.T) {
	m := New("Library")
	m.InsertBatch([]Entry{
		{Filename: "/z.mp3"},
		{Filename: "/a.mp3"},
		{Filename: "/m.mp3"},
	}, false)

	m.SortByPath()
	assert.Equal(t, "/a.mp3", m.EntryFilename(0))
	assert.Equal(t, "/m.mp3", m.EntryFilename(1))
	assert.Equal(t, "/z.mp3", m.EntryFilename(2))
}

func TestMemory_InsertFiltered_PopulatesFromDiskAndSignalsHooks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.mp3"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.mp3"), []byte("x"), 0o644))

	m := New("Library")
	ctx := context.Background()
	m.InsertFiltered(ctx, dir, func(filename string) bool {
		return filepath.Base(filename) == "keep.mp3"
	})

	select {
	case <-m.ScanComplete():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for scan completion")
	}
	select {
	case <-m.AddComplete():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for add completion")
	}

	require.Equal(t, 1, m.EntryCount())
	assert.Equal(t, filepath.Join(dir, "keep.mp3"), m.EntryFilename(0))
	assert.False(t, m.AddInProgress())
	assert.False(t, m.ScanInProgress())
}

func TestMemory_CollapseDuplicatesAndApplyDeletions(t *testing.T) {
	m := New("Library")
	m.InsertBatch([]Entry{
		{Filename: "/a.mp3"},
		{Filename: "/a.mp3"},
		{Filename: "/b.mp3"},
	}, false)

	m.collapseDuplicates([]bool{false, true, false})
	require.Equal(t, 2, m.EntryCount())
	assert.Equal(t, "/a.mp3", m.EntryFilename(0))
	assert.Equal(t, "/b.mp3", m.EntryFilename(1))

	m.applyDeletions([]bool{false, true})
	require.Equal(t, 1, m.EntryCount())
	assert.Equal(t, "/a.mp3", m.EntryFilename(0))
}
