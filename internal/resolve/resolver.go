package resolve

import (
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"simradio/internal/logging"
)

// MaxSources is the most source files a track can resolve to; conversion
// accepts one file or a left/right pair.
const MaxSources = 2

// Result is the outcome of resolving one track. Found and Originals are
// index-aligned.
type Result struct {
	TrackID      string   `json:"id"`
	TrackListID  string   `json:"track_list_id"`
	SymbolicPath string   `json:"original_path"`
	Found        []string `json:"src_audio"`
	Originals    []string `json:"original_filenames"`
}

// Missing reports whether no candidate exists on disk.
func (r Result) Missing() bool {
	return len(r.Found) == 0
}

// Merge reports whether the track resolved to a left/right pair.
func (r Result) Merge() bool {
	return len(r.Found) == MaxSources
}

// Resolver probes a source tree for generated candidates.
type Resolver struct {
	baseDir string
	fsys    fs.StatFS
	gen     *Generator
	logger  *slog.Logger
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithFS probes fsys instead of the directory tree rooted at the base directory.
func WithFS(fsys fs.StatFS) Option {
	return func(r *Resolver) {
		if fsys != nil {
			r.fsys = fsys
		}
	}
}

// WithLogger attaches a logger for per-track debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver constructs a resolver rooted at baseDir.
func NewResolver(baseDir string, gen *Generator, opts ...Option) *Resolver {
	if gen == nil {
		gen = NewGenerator(DefaultTable())
	}
	r := &Resolver{baseDir: baseDir, gen: gen}
	for _, opt := range opts {
		opt(r)
	}
	if r.fsys == nil {
		r.fsys = os.DirFS(baseDir).(fs.StatFS)
	}
	r.logger = logging.NewComponentLogger(r.logger, "resolver")
	return r
}

// Resolve finds the source files for a symbolic path. Each candidate is
// probed directly under the symbolic directory and then inside the per-track
// folder (the alternate directory, when the candidate names one, replaces the
// symbolic directory there). The first hit per candidate is kept.
func (r *Resolver) Resolve(symbolicPath string) Result {
	result := Result{SymbolicPath: symbolicPath}
	dir, base := splitSymbolic(symbolicPath)
	if base == "" {
		return result
	}

	candidates := r.gen.Generate(dir, base)
	for _, c := range candidates {
		if len(result.Found) == MaxSources {
			r.logger.Debug("extra candidates ignored",
				logging.String("path", symbolicPath),
				logging.String("candidate", c.FileName()))
			break
		}
		folder := dir
		if c.AltDir != "" {
			folder = c.AltDir
		}
		probes := []string{
			path.Join(dir, c.FileName()),
			path.Join(folder, base, c.FileName()),
		}
		for _, rel := range probes {
			if !r.exists(rel) {
				continue
			}
			result.Found = append(result.Found, filepath.Join(r.baseDir, filepath.FromSlash(rel)))
			result.Originals = append(result.Originals, c.Original)
			break
		}
	}

	r.logger.Debug("track resolved",
		logging.String("path", symbolicPath),
		logging.Int("candidates", len(candidates)),
		logging.Int("found", len(result.Found)))
	return result
}

func (r *Resolver) exists(rel string) bool {
	if !fs.ValidPath(rel) {
		return false
	}
	info, err := r.fsys.Stat(rel)
	return err == nil && info.Mode().IsRegular()
}

// splitSymbolic splits a slash-separated symbolic path into directory and base name.
func splitSymbolic(symbolic string) (string, string) {
	cleaned := path.Clean(strings.ReplaceAll(strings.TrimSpace(symbolic), "\\", "/"))
	if cleaned == "." || cleaned == "/" {
		return "", ""
	}
	dir, base := path.Split(strings.TrimPrefix(cleaned, "/"))
	return strings.TrimSuffix(dir, "/"), base
}
