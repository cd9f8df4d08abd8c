package octconnect

import (
	"os"
	"path/filepath"
	"runtime/debug"

	semver3 "github.com/blang/semver"
	semver "github.com/blang/semver/v4"
	"github.com/octave-engine/octconnect/internal/cache"
	"github.com/octave-engine/octconnect/internal/config"
	"github.com/octave-engine/octconnect/internal/session"
	"github.com/octave-engine/octconnect/internal/update"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// project is the resolved root plus the config layers that apply to it.
type project struct {
	root   string
	local  config.FileConfig
	global config.FileConfig
}

// loadProject resolves the project root (flag > local project > global
// project > cwd) and loads the config layers for it.
func loadProject() project {
	var p project
	if c, err := config.LoadGlobal(); err == nil {
		p.global = c
	}
	if c, err := config.LoadLocal("."); err == nil {
		p.local = c
	}
	dir := pickString(flagPath, p.local.Project, p.global.Project)
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	p.root = abs
	if c, err := config.LoadLocal(abs); err == nil {
		p.local = c
	}
	return p
}

func (p project) logLevel() string {
	return pickString(flagLogLevel, p.local.LogLevel, p.global.LogLevel)
}

func (p project) noColor() bool {
	return pickBool(flagNoColor, p.local.NoColor, p.global.NoColor) || !isTerminal(os.Stdout)
}

func (p project) jsonOut() bool { return pickBool(flagJSON, p.local.JSON, p.global.JSON) }

func (p project) noCache() bool { return pickBool(flagNoCache, p.local.NoCache, p.global.NoCache) }

func (p project) exclude(cli string) string {
	return pickString(cli, p.local.Exclude, p.global.Exclude)
}

func (p project) updateCheck() bool {
	if flagNoUpdateCheck {
		return false
	}
	if p.local.UpdateCheck != nil {
		return *p.local.UpdateCheck
	}
	return p.global.UpdateCheckEnabled()
}

// openSession starts a session for the project, backed by the on-disk
// property cache unless caching is off. The returned DB is nil when off.
func (p project) openSession(exclude string) (*session.Session, *cache.DB) {
	opts := []session.Option{session.WithExcludeGlobs(exclude)}
	var db *cache.DB
	if !p.noCache() {
		var err error
		db, err = cache.Load(p.root)
		if err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("property cache unreadable; starting empty")
		}
		opts = append(opts, session.WithStore(db))
	}
	return session.New(p.root, opts...), db
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func selfUpdate() error {
	v := version
	// Use build info if tag overridden at build-time
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(v) == 0 {
				v = s.Value
			}
		}
	}
	ver, err := semver.ParseTolerant(v)
	if err != nil {
		ver = semver.MustParse("0.0.0")
	}
	latest, err := selfupdate.UpdateSelf(semver3.MustParse(ver.String()), update.Repo)
	if err != nil {
		return err
	}
	log.Info().Str("version", latest.Version.String()).Msg("self update finished")
	return nil
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}
