// Package ingest fetches the per-type skill documents and loads them into
// the catalog.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/okian/skillbudget/internal/domain/model"
	"gopkg.in/yaml.v3"
)

const maxDocumentBytes = 16 << 20

// Source retrieves the raw document for a skill type.
type Source interface {
	Fetch(ctx context.Context, typ model.SkillType) ([]byte, error)
}

// DefaultFiles maps each skill type to its document name.
func DefaultFiles() map[model.SkillType]string {
	return map[model.SkillType]string{
		model.Yellow:  "yellow.json",
		model.Blue:    "blue.json",
		model.Red:     "red.json",
		model.Green:   "green.json",
		model.Inherit: "inherit.json",
		model.Purple:  "purple.json",
	}
}

// FilesFromConfig parses a type-name -> file map, falling back to
// DefaultFiles for types it does not name.
func FilesFromConfig(cfg map[string]string) (map[model.SkillType]string, error) {
	files := DefaultFiles()
	for k, v := range cfg {
		typ, err := model.ParseSkillType(k)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(v) == "" {
			delete(files, typ)
			continue
		}
		files[typ] = v
	}
	return files, nil
}

// FileSource reads documents from a directory.
type FileSource struct {
	dir   string
	files map[model.SkillType]string
}

// NewFileSource creates a source reading <dir>/<files[type]>.
func NewFileSource(dir string, files map[model.SkillType]string) *FileSource {
	if files == nil {
		files = DefaultFiles()
	}
	return &FileSource{dir: dir, files: files}
}

// Fetch reads and, for YAML files, converts the document to JSON.
func (s *FileSource) Fetch(_ context.Context, typ model.SkillType) ([]byte, error) {
	name, ok := s.files[typ]
	if !ok {
		return nil, fmt.Errorf("%w: no file configured for %s", ErrNoDocument, typ)
	}
	p := filepath.Join(s.dir, name)
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoDocument, p)
		}
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return toJSON(name, data)
}

// HTTPSource fetches documents from a base URL.
type HTTPSource struct {
	base   *url.URL
	files  map[model.SkillType]string
	client *http.Client
}

// NewHTTPSource creates a source fetching <baseURL>/<files[type]>.
func NewHTTPSource(baseURL string, files map[model.SkillType]string, client *http.Client) (*HTTPSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: bad base url %q", ErrTransport, baseURL)
	}
	if files == nil {
		files = DefaultFiles()
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{base: u, files: files, client: client}, nil
}

// Fetch GETs the document. A non-2xx response means the type has no
// document; network failures are transport errors.
func (s *HTTPSource) Fetch(ctx context.Context, typ model.SkillType) ([]byte, error) {
	name, ok := s.files[typ]
	if !ok {
		return nil, fmt.Errorf("%w: no file configured for %s", ErrNoDocument, typ)
	}
	u := *s.base
	u.Path = path.Join(u.Path, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrNoDocument, u.String(), resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return toJSON(name, data)
}

// toJSON passes JSON through and converts YAML documents, which carry the
// same structures, to JSON.
func toJSON(name string, data []byte) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
	default:
		return data, nil
	}
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, name, err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, name, err)
	}
	return out, nil
}
