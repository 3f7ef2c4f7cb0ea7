// Package content reads the site and page documents a build starts from.
//
// A missing document is not an error: the caller's default is returned
// instead. A document that exists but cannot be decoded always is.
package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	iofs "io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/3-lines-studio/calcsite/internal/adapters/fs"
	"github.com/3-lines-studio/calcsite/internal/core"
)

const (
	SiteDocument  = "site"
	PagesDocument = "pages"
)

var extensions = []string{".json", ".yaml", ".yml"}

// Load decodes the document at path into a T. When no file exists at path,
// def is returned with a nil error. The format is picked from the file
// extension; anything but .yaml/.yml is read as JSON.
func Load[T any](fsys fs.FileSystem, path string, def T) (T, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return def, nil
		}
		return def, err
	}

	var doc T
	if err := decode(path, data, &doc); err != nil {
		return def, &core.DocumentError{Path: path, Err: err}
	}
	return doc, nil
}

func decode(path string, data []byte, v any) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.NewDecoder(bytes.NewReader(data)).Decode(v)
	default:
		return json.Unmarshal(data, v)
	}
}

// Loader finds the site and page documents inside one content directory.
type Loader struct {
	fs     fs.FileSystem
	dir    string
	logger *slog.Logger
}

func NewLoader(fsys fs.FileSystem, dir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{fs: fsys, dir: dir, logger: logger}
}

// Resolve returns the first existing file named name.json, name.yaml or
// name.yml in the content directory, or the .json path if none exist.
func (l *Loader) Resolve(name string) string {
	for _, ext := range extensions {
		path := filepath.Join(l.dir, name+ext)
		if l.fs.FileExists(path) {
			return path
		}
	}
	return filepath.Join(l.dir, name+extensions[0])
}

// LoadSite returns normalized site settings. A missing document yields the
// defaults.
func (l *Loader) LoadSite() (core.SiteSettings, error) {
	path := l.Resolve(SiteDocument)
	if !l.fs.FileExists(path) {
		l.logger.Warn("site document not found, using defaults", "path", path)
	}
	site, err := Load(l.fs, path, core.SiteSettings{})
	if err != nil {
		return core.SiteSettings{}, err
	}
	return site.Normalize(), nil
}

// LoadPages returns the page definitions in document order. A missing
// document yields an empty list.
func (l *Loader) LoadPages() ([]core.PageDefinition, error) {
	path := l.Resolve(PagesDocument)
	if !l.fs.FileExists(path) {
		l.logger.Warn("pages document not found, building an empty site", "path", path)
	}
	pages, err := Load(l.fs, path, []core.PageDefinition{})
	if err != nil {
		return nil, err
	}
	if pages == nil {
		pages = []core.PageDefinition{}
	}
	return pages, nil
}
