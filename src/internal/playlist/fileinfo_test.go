package playlist

import (
	"mime"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// the system mime database is not guaranteed to carry these mappings in
	// every environment a test runs in, so register them explicitly rather
	// than rely on /etc/mime.types.
	_ = mime.AddExtensionType(".mp3", "audio/mpeg")
	_ = mime.AddExtensionType(".flac", "audio/flac")
	_ = mime.AddExtensionType(".txt", "text/plain")
}

func TestIsAudioFile(t *testing.T) {
	assert.True(t, isAudioFile("/music/track.mp3"))
	assert.True(t, isAudioFile("/music/track.flac"))
	assert.False(t, isAudioFile("/music/cover.txt"))
	assert.False(t, isAudioFile("/music/noext"))
}

func TestScanDir_FindsAudioFilesSortedAndSkipsOthers(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.mp3"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.mp3"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "c.flac"), []byte("x"), 0o644))

	paths, err := scanDir(dir)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Equal(t, filepath.Join(dir, "a.mp3"), paths[0])
	assert.Equal(t, filepath.Join(dir, "b.mp3"), paths[1])
	assert.Equal(t, filepath.Join(dir, "sub", "c.flac"), paths[2])
}

func TestReadTuple_UnreadableFileYieldsEmptyTuple(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "broken.mp3")
	require.NoError(t, os.WriteFile(p, []byte("not actually audio"), 0o644))

	tup := readTuple(p)
	assert.Equal(t, "", tup.Artist)
	assert.Equal(t, "", tup.Title)
}
