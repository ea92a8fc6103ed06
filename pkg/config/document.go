package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Document wraps a raw input config file, exposing its sections and
// case-insensitive key lookup. The underlying grammar is the classic
// INI dialect used by the VASP PLO interface: [Section] headers,
// `key = value` or `key: value` entries, and indented continuation lines
// for multi-line values such as transform matrices.
type Document struct {
	file *ini.File
	path string
}

func loadOptions() ini.LoadOptions {
	return ini.LoadOptions{
		Insensitive:                true,
		AllowPythonMultilineValues: true,
	}
}

// LoadDocument reads a config document from a file.
func LoadDocument(path string) (*Document, error) {
	f, err := ini.LoadSources(loadOptions(), path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config document %s: %w", path, err)
	}
	return &Document{file: f, path: path}, nil
}

// LoadDocumentString reads a config document from an in-memory string.
func LoadDocumentString(src string) (*Document, error) {
	f, err := ini.LoadSources(loadOptions(), []byte(src))
	if err != nil {
		return nil, fmt.Errorf("failed to load config document: %w", err)
	}
	return &Document{file: f}, nil
}

// Path returns the source path of the document, or "" if it was loaded from
// memory.
func (d *Document) Path() string {
	return d.path
}

// SectionNames returns all declared section names in document order,
// excluding the implicit default section.
func (d *Document) SectionNames() []string {
	all := d.file.SectionStrings()
	names := make([]string, 0, len(all))
	for _, name := range all {
		if name == ini.DefaultSection {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Get returns the raw value of a key in a section. Section and key lookup is
// case-insensitive. The second return value reports whether the key exists.
func (d *Document) Get(section, key string) (string, bool) {
	sec, err := d.file.GetSection(section)
	if err != nil {
		return "", false
	}
	if !sec.HasKey(key) {
		return "", false
	}
	return sec.Key(key).Value(), true
}
