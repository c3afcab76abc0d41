// Package config reads and validates the JSON configuration file that
// drives the search tool's library location, refresh behavior, and ambient
// logging/caching setup.
package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"mime"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gitlab.com/mipimipi/go-utils/file"
)

// ValueKey represents value keys for contexts.
type ValueKey string

const (
	// KeyCfg is the key under which Cfg is stored in a context.Context.
	KeyCfg ValueKey = "cfg"
	// KeyVersion is the key for the libsearch build version.
	KeyVersion ValueKey = "version"
)

const (
	// CfgDir is the directory libsearch reads its configuration from.
	CfgDir = "/etc/libsearch"
	// cfgFilepath is the path of the configuration file itself.
	cfgFilepath = CfgDir + "/config.json"
	// envFilepath is an optional .env overlay (secrets, DSNs) loaded before
	// cfgFilepath, mirroring how kirbs-btw-spotify-playlist-dataset layers
	// godotenv ahead of its own structured config.
	envFilepath = CfgDir + "/.env"
)

// audioMimeTypes contains the audio mime types the library scanner treats
// as tracks.
var audioMimeTypes = map[string]bool{
	"audio/aac":    true,
	"audio/flac":   true,
	"audio/mp4":    true,
	"audio/mpeg":   true,
	"audio/ogg":    true,
	"audio/x-flac": true,
}

// IsValidAudioFile returns true if file has a mime type the scanner
// recognizes as a track.
func IsValidAudioFile(file string) bool {
	_, exists := audioMimeTypes[mime.TypeByExtension(path.Ext(file))]
	return exists
}

// update modes for the library refresh driver.
const (
	UpdateModeNotify = "notify"
	UpdateModeScan   = "scan"
)

// Cfg stores the data from the libsearch configuration file.
type Cfg struct {
	SearchTool searchToolCfg `json:"search_tool"`
	CacheDir   string        `json:"cache_dir"`
	LogDir     string        `json:"log_dir"`
	LogLevel   string        `json:"log_level"`
	SentryDSN  string        `json:"sentry_dsn"`
}

type searchToolCfg struct {
	// Path is the root directory of the music library the index is built
	// from. Defaults to ~/Music if that directory exists, else $HOME.
	Path string `json:"path"`
	// MaxResults bounds how many items a query returns before the result is
	// marked truncated. Defaults to 20.
	MaxResults int `json:"max_results"`
	// RescanOnStartup triggers one synchronous refresh before the server
	// starts serving queries. Defaults to false.
	RescanOnStartup bool `json:"rescan_on_startup"`
	// UpdateMode selects the refresh driver: "notify" (filesystem events) or
	// "scan" (periodic polling).
	UpdateMode     string        `json:"update_mode"`
	UpdateInterval time.Duration `json:"update_interval"`
}

// defaultMaxResults is search_tool.max_results' documented default.
const defaultMaxResults = 20

// applyDefaults fills in the documented defaults for any search_tool field
// config.json left unset, before validate ever sees them.
func (me *searchToolCfg) applyDefaults() {
	if me.Path == "" {
		me.Path = defaultSearchToolPath()
	}
	if me.MaxResults == 0 {
		me.MaxResults = defaultMaxResults
	}
}

// defaultSearchToolPath returns ~/Music if it exists, else $HOME.
func defaultSearchToolPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	musicDir := filepath.Join(home, "Music")
	if exists, _ := file.Exists(musicDir); exists {
		return musicDir
	}
	return home
}

// Load reads the configuration file - after first applying an optional .env
// overlay, if one exists - and returns it as a structure. A missing .env
// file is not an error; a missing or malformed config.json is.
func Load() (cfg Cfg, err error) {
	if exists, _ := file.Exists(envFilepath); exists {
		if err = godotenv.Load(envFilepath); err != nil {
			return Cfg{}, errors.Wrapf(err, "'%s' couldn't be loaded", envFilepath)
		}
	}

	cfgFile, err := ioutil.ReadFile(cfgFilepath)
	if err != nil {
		return Cfg{}, errors.Wrapf(err, "config file '%s' couldn't be read", cfgFilepath)
	}

	if err = json.Unmarshal(cfgFile, &cfg); err != nil {
		return Cfg{}, errors.Wrapf(err, "config file '%s' couldn't be unmarshalled", cfgFilepath)
	}

	cfg.SearchTool.applyDefaults()

	// a DSN from the .env overlay applies only where config.json sets none
	if cfg.SentryDSN == "" {
		cfg.SentryDSN = os.Getenv("SENTRY_DSN")
	}

	return
}

// Validate checks if the configuration is complete and correct. If it's
// not, an error is returned.
func (me *Cfg) Validate() (err error) {
	if err = validateDir(me.CacheDir, "cache_dir"); err != nil {
		return
	}
	if err = validateDir(me.LogDir, "log_dir"); err != nil {
		return
	}
	if err = me.SearchTool.validate(); err != nil {
		return
	}
	return
}

func (me *searchToolCfg) validate() (err error) {
	if err = validateDir(me.Path, "search_tool.path"); err != nil {
		return
	}
	if me.MaxResults <= 0 {
		err = fmt.Errorf("search_tool.max_results must be > 0")
		return
	}
	if me.UpdateMode != UpdateModeNotify && me.UpdateMode != UpdateModeScan {
		err = fmt.Errorf("unknown search_tool.update_mode '%s'", me.UpdateMode)
		return
	}
	if me.UpdateInterval <= 0 {
		err = fmt.Errorf("search_tool.update_interval must be > 0")
		return
	}
	return
}

// Test reads the configuration file and checks it for completeness and
// consistency, reporting the result on stdout.
func Test() (err error) {
	var cfg Cfg

	if cfg, err = Load(); err != nil {
		err = errors.Wrapf(err, "the libsearch configuration file '%s' couldn't be read", cfgFilepath)
		return
	}

	if err = cfg.Validate(); err != nil {
		return
	}

	fmt.Println("Congrats: the libsearch configuration is complete and consistent :)")
	return
}

// validateDir checks if dir exists. name is the name that is used for that
// directory in error messages.
func validateDir(dir, name string) (err error) {
	if dir == "" {
		err = fmt.Errorf("no %s maintained", name)
		return
	}
	var exists bool
	if exists, err = file.Exists(dir); err != nil {
		err = errors.Wrapf(err, "cannot check if %s '%s' exists", name, dir)
		return
	}
	if !exists {
		err = fmt.Errorf("%s '%s' doesn't exist", name, dir)
		return
	}
	return
}
