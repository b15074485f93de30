package modules

import (
	"errors"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/alnah/go-readmehelp/internal/fileutil"
	"github.com/alnah/go-readmehelp/internal/hints"
)

// FileReader reads module source files for snippets. Files must resolve,
// symlinks included, inside a registered module directory and stay under the
// size limit.
type FileReader struct {
	registry *Registry
	maxSize  int64
	logger   zerolog.Logger
}

// NewFileReader creates a reader confined to the directories of registry.
// maxSize <= 0 selects fileutil.DefaultMaxFileSize.
func NewFileReader(registry *Registry, maxSize int64, logger zerolog.Logger) *FileReader {
	if maxSize <= 0 {
		maxSize = fileutil.DefaultMaxFileSize
	}
	return &FileReader{registry: registry, maxSize: maxSize, logger: logger}
}

// ReadLines returns the lines of path, or false when the file is outside every
// module, unreadable, or too large.
func (f *FileReader) ReadLines(path string) ([]string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}

	m, ok := f.registry.owner(abs)
	if !ok {
		f.logger.Debug().Str("path", path).Msg("file outside registered modules")
		return nil, false
	}

	resolved, err := fileutil.ContainedPath(m.Dir, abs)
	if err != nil {
		f.logger.Debug().Str("module", m.Name).Str("path", path).Err(err).Msg("file escapes module")
		return nil, false
	}

	lines, err := fileutil.ReadLines(resolved, f.maxSize)
	if errors.Is(err, fileutil.ErrFileTooLarge) {
		f.logger.Warn().Str("module", m.Name).Str("path", path).Msg("snippet source too large" + hints.ForFileTooLarge())
		return nil, false
	}
	if err != nil {
		f.logger.Debug().Str("module", m.Name).Str("path", path).Err(err).Msg("reading snippet source")
		return nil, false
	}
	return lines, true
}
