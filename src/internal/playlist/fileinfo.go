package playlist

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/dhowden/tag"
	"github.com/pkg/errors"
	"gitlab.com/mipimipi/libsearch/src/internal/config"
	"gitlab.com/mipimipi/libsearch/src/internal/search"
)

// isAudioFile reports whether p has a mime type the scanner treats as a
// track.
func isAudioFile(p string) bool {
	return config.IsValidAudioFile(p)
}

// readTuple extracts the four search fields from an audio file's tags,
// grounded on the teacher's fileinfo.go use of github.com/dhowden/tag.
// Metadata that cannot be read yields an empty Tuple rather than an error -
// the scan simply skips decoration for that file's fields, it still gets
// added under whatever it does have.
func readTuple(p string) search.Tuple {
	f, err := os.Open(p)
	if err != nil {
		log.WithError(err).Tracef("cannot open '%s' for tag read", p)
		return search.Tuple{}
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		log.WithError(err).Tracef("cannot read tags from '%s'", p)
		return search.Tuple{}
	}

	return search.Tuple{
		Genre:  m.Genre(),
		Artist: m.Artist(),
		Album:  m.Album(),
		Title:  m.Title(),
	}
}

// scanDir walks dir recursively and returns the sorted list of audio file
// paths found under it, grounded on the teacher's tracksFromDir
// (internal/content/updater.go).
func scanDir(dir string) ([]string, error) {
	var paths []string

	err := filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if isAudioFile(p) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "cannot scan directory '%s'", dir)
	}

	sort.Strings(paths)
	return paths, nil
}
