package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPackage is used when a schema names no package.
const DefaultPackage = "models"

// LoadFile loads and parses a YAML schema file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in the version, package and omitted paths.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	if f.Package == "" {
		f.Package = DefaultPackage
	}

	for i := range f.Types {
		fields := f.Types[i].Fields
		for j := range fields {
			if fields[j].Path == nil && fields[j].Name != "" {
				fields[j].Path = Path{fields[j].Name}
			}
		}
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}
