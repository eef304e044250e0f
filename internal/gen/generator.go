package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"path"

	"pathcodec/internal/common"
	"pathcodec/internal/plan"
)

// DefaultKeyedImport is the import path of the keyed runtime used by
// generated code.
const DefaultKeyedImport = "pathcodec/keyed"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// GenerateComments adds the path and fallback of every field as a comment.
	GenerateComments bool
	// KeyedImport is the import path of the keyed runtime.
	KeyedImport string
	// Source names the schema file in the generated header (optional).
	Source string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName:      "models",
		OutputDir:        "./generated",
		GenerateComments: true,
		KeyedImport:      DefaultKeyedImport,
	}
}

// Generator renders plans into Go source.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.KeyedImport == "" {
		config.KeyedImport = DefaultKeyedImport
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "some_codable_codec.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate renders one file per plan, in plan order.
func (g *Generator) Generate(plans []*plan.Plan) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, len(plans))

	for _, p := range plans {
		file, err := g.GenerateType(p)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", p.Type, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

// GenerateType renders the file of a single plan. On a formatting failure
// the unformatted source is returned along with the error, and saved as
// <name>.unformatted in the output directory when one is configured.
func (g *Generator) GenerateType(p *plan.Plan) (*GeneratedFile, error) {
	data := &fileData{
		PackageName: g.config.PackageName,
		Source:      g.config.Source,
		KeyedImport: g.config.KeyedImport,
		Comments:    g.config.GenerateComments,
		Type:        buildTypeData(p),
	}

	if path.Base(g.config.KeyedImport) != keyedAlias {
		data.KeyedAlias = keyedAlias
	}

	filename := common.Snake(p.Type) + "_codec.go"

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		err = fmt.Errorf("formatting code: %w", err)

		if g.config.OutputDir != "" {
			if werr := writeUnformatted(g.config.OutputDir, filename, buf.Bytes()); werr != nil {
				err = errors.Join(err, fmt.Errorf("saving unformatted source: %w", werr))
			}
		}

		return &GeneratedFile{
			Filename: filename,
			Content:  buf.Bytes(),
		}, err
	}

	return &GeneratedFile{
		Filename: filename,
		Content:  formatted,
	}, nil
}
