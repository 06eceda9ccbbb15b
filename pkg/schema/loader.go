package schema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the parsed form of a schema override file.
type Document struct {
	Schema Schema
	Means  map[string]float64
	Source string
}

type documentFile struct {
	Fields []FieldSpec         `json:"fields" yaml:"fields"`
	Means  map[string]float64 `json:"means" yaml:"means"`
}

// LoadFile reads a JSON or YAML schema document from disk.
func LoadFile(path string) (Document, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Document{}, fmt.Errorf("schema: file path is required")
	}
	return LoadFS(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// LoadFS reads a JSON or YAML schema document from fsys. Labels, tooltips and
// placeholders are reduced to plain text because they end up in rendered HTML.
func LoadFS(fsys fs.FS, name string) (Document, error) {
	if fsys == nil {
		return Document{}, fmt.Errorf("schema: filesystem is nil")
	}
	if !isSchemaFile(name) {
		return Document{}, fmt.Errorf("schema: unsupported file type %q", name)
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Document{}, fmt.Errorf("schema: read %s: %w", name, err)
	}

	raw, err := parseDocument(data, name)
	if err != nil {
		return Document{}, err
	}

	fields := make([]FieldSpec, 0, len(raw.Fields))
	for _, field := range raw.Fields {
		fields = append(fields, sanitizeField(field))
	}

	s, err := New(fields...)
	if err != nil {
		return Document{}, fmt.Errorf("schema: %s: %w", name, err)
	}

	means := make(map[string]float64, len(raw.Means))
	for key, value := range raw.Means {
		key = strings.TrimSpace(key)
		if _, ok := s.Field(key); !ok {
			return Document{}, fmt.Errorf("schema: %s: mean for unknown field %q", name, key)
		}
		means[key] = value
	}
	if len(means) == 0 {
		means = nil
	}

	return Document{Schema: s, Means: means, Source: name}, nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("schema: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("schema: parse %s: invalid JSON or YAML", source)
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
