package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"pathcodec/internal/analyze"
	"pathcodec/internal/config"
	"pathcodec/internal/gen"
	"pathcodec/internal/interp"
	"pathcodec/internal/plan"
	"pathcodec/internal/schema"
	"pathcodec/keyed"
)

const (
	formatListing = "listing"
	formatYAML    = "yaml"
	formatJSON    = "json"
	formatDump    = "dump"
)

func (c *cli) plan(args []string) error {
	flags := c.flagSet()
	cf := c.schemaFlags(flags, true)
	format := flags.String("format", formatListing, "Output format: listing, yaml, json or dump")

	if err := c.start(flags, cf, args); err != nil {
		return err
	}

	_, plans, err := c.loadSchema(cf.schema)
	if err != nil {
		return err
	}

	plans, err = selectPlans(plans, cf.typ)
	if err != nil {
		return err
	}

	var out []byte

	switch *format {
	case formatListing:
		var b strings.Builder
		for _, p := range plans {
			b.WriteString(p.Listing())
		}

		out = []byte(b.String())
	case formatDump:
		var b strings.Builder
		for _, p := range plans {
			b.WriteString(p.Dump())
		}

		out = []byte(b.String())
	case formatYAML:
		out, err = plan.ExportYAML(plans...)
	case formatJSON:
		out, err = plan.ExportJSON(plans...)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}

	if err != nil {
		return err
	}

	return c.write(out)
}

func (c *cli) gen(args []string) error {
	flags := c.flagSet()
	cf := c.schemaFlags(flags, true)
	outDir := flags.String("out", "", "Override the output directory")
	pkg := flags.String("package", "", "Override the package name")
	dryRun := flags.Bool("dry-run", false, "List the files that would be generated without writing them")

	if err := c.start(flags, cf, args); err != nil {
		return err
	}

	f, plans, err := c.loadSchema(cf.schema)
	if err != nil {
		return err
	}

	plans, err = selectPlans(plans, cf.typ)
	if err != nil {
		return err
	}

	if *outDir != "" {
		c.cfg.Generate.OutputDir = *outDir
	}

	if *pkg != "" {
		c.cfg.Generate.Package = *pkg
	}

	gcfg := c.cfg.GeneratorConfig(f.Package)
	gcfg.Source = filepath.Base(cf.schema)

	files, err := gen.NewGenerator(gcfg).Generate(plans)
	if err != nil {
		return err
	}

	if *dryRun {
		for _, file := range files {
			fmt.Fprintf(c.stdout, "%s (%d bytes)\n", filepath.Join(gcfg.OutputDir, file.Filename), len(file.Content))
		}

		return nil
	}

	written, err := gen.WriteFiles(files, gcfg.OutputDir)
	if err != nil {
		return err
	}

	for _, path := range written {
		c.log.Info("generated", zap.String("file", path))
		fmt.Fprintln(c.stdout, path)
	}

	return nil
}

func (c *cli) decode(args []string) error {
	flags := c.flagSet()
	cf := c.schemaFlags(flags, true)
	docPath := flags.String("doc", "", "JSON or YAML document to decode (required)")
	format := flags.String("format", formatJSON, "Output format: json or yaml")
	trace := flags.Bool("trace", false, "Print the scopes probed and how each field was resolved")

	if err := c.start(flags, cf, args); err != nil {
		return err
	}

	_, plans, err := c.loadSchema(cf.schema)
	if err != nil {
		return err
	}

	p, err := findPlan(plans, cf.typ)
	if err != nil {
		return err
	}

	d, err := readDocument(*docPath)
	if err != nil {
		return err
	}

	res, err := interp.Decode(p, d)
	if err != nil {
		return err
	}

	c.log.Debug("decoded", zap.String("type", p.Type), zap.Int("probes", res.Trace.Probes))

	out, err := marshal(res.Values, *format)
	if err != nil {
		return err
	}

	if err := c.write(out); err != nil {
		return err
	}

	if *trace {
		c.writeTrace(p, res.Trace)
	}

	return nil
}

func (c *cli) encode(args []string) error {
	flags := c.flagSet()
	cf := c.schemaFlags(flags, true)
	valuesPath := flags.String("values", "", "JSON or YAML mapping of field names to values (required)")
	format := flags.String("format", formatJSON, "Output format: json or yaml")

	if err := c.start(flags, cf, args); err != nil {
		return err
	}

	_, plans, err := c.loadSchema(cf.schema)
	if err != nil {
		return err
	}

	p, err := findPlan(plans, cf.typ)
	if err != nil {
		return err
	}

	values, err := readValues(*valuesPath)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(p.Fields))
	for _, f := range p.Fields {
		names = append(names, f.Name)
	}

	for _, name := range sortedKeys(values) {
		if p.Field(name) < 0 {
			return notFound("field", name, names)
		}
	}

	e := keyed.NewEncoder()
	if err := interp.Encode(p, values, e); err != nil {
		return err
	}

	var out []byte

	switch *format {
	case formatJSON:
		out, err = keyed.MarshalJSON(e)
	case formatYAML:
		out, err = keyed.MarshalYAML(e)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}

	if err != nil {
		return err
	}

	return c.write(out)
}

func (c *cli) scan(args []string) error {
	flags := c.flagSet()
	cf := &commonFlags{}
	flags.StringVar(&cf.config, "config", "", "Path to configuration file (default "+config.DefaultFile+")")
	flags.BoolVar(&cf.verbose, "v", false, "Verbose output")
	out := flags.String("out", "", "Write the schema to this file instead of stdout")
	pkg := flags.String("package", "", "Package name recorded in the schema")

	if err := c.parse(flags, args); err != nil {
		return err
	}

	if err := c.setup(cf); err != nil {
		return err
	}

	patterns := flags.Args()
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	graph, err := analyze.NewAnalyzer().LoadPackages(patterns...)
	if err != nil {
		return err
	}

	f, err := analyze.Extract(graph)
	if err != nil {
		return err
	}

	if *pkg != "" {
		f.Package = *pkg
	}

	c.log.Debug("scanned packages", zap.Strings("patterns", patterns), zap.Int("types", len(f.Types)))

	diags := schema.Validate(f)
	c.report(diags)

	if diags.HasErrors() {
		return errors.New("scanned types do not form a valid schema")
	}

	data, err := schema.Marshal(f)
	if err != nil {
		return err
	}

	if *out == "" {
		return c.write(data)
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return err
	}

	c.log.Info("wrote schema", zap.String("file", *out), zap.Int("types", len(f.Types)))

	return nil
}

func (c *cli) validate(args []string) error {
	flags := c.flagSet()
	cf := c.schemaFlags(flags, false)

	if err := c.start(flags, cf, args); err != nil {
		return err
	}

	f, diags, err := c.checkSchema(cf.schema)
	if err != nil {
		return err
	}

	c.report(diags)

	if diags.HasErrors() {
		return fmt.Errorf("schema %s is invalid", cf.schema)
	}

	fmt.Fprintf(c.stdout, "schema %s is valid (%d types)\n", cf.schema, len(f.Types))

	return nil
}

func (c *cli) initConfig(args []string) error {
	flags := c.flagSet()
	path := flags.String("config", config.DefaultFile, "Path of the configuration file to write")
	force := flags.Bool("force", false, "Overwrite an existing file")

	if err := c.parse(flags, args); err != nil {
		return err
	}

	if _, err := os.Stat(*path); err == nil && !*force {
		return fmt.Errorf("%s already exists, use -force to overwrite", *path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := config.Save(config.DefaultConfig(), *path); err != nil {
		return err
	}

	fmt.Fprintf(c.stdout, "wrote %s\n", *path)

	return nil
}

func (c *cli) version(_ []string) error {
	fmt.Fprintf(c.stdout, "pathcodec %s\n", version)
	return nil
}

func (c *cli) write(out []byte) error {
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}

	_, err := c.stdout.Write(out)

	return err
}

func (c *cli) writeTrace(p *plan.Plan, t interp.Trace) {
	fmt.Fprintf(c.stdout, "probes: %d\n", t.Probes)

	scopes := p.Tree.Scopes()
	for _, id := range scopes {
		if state, ok := t.Scopes[id]; ok {
			fmt.Fprintf(c.stdout, "scope %s: %s\n", p.ScopeName(id), state)
		}
	}

	for _, f := range p.Fields {
		if how, ok := t.Fields[f.Name]; ok {
			fmt.Fprintf(c.stdout, "field %s: %s\n", f.Name, how)
		}
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}

	return false
}

func readDocument(path string) (keyed.Decoder, error) {
	if path == "" {
		return nil, errors.New("-doc is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if isYAML(path) {
		return keyed.ParseYAML(data)
	}

	return keyed.ParseJSON(data)
}

func readValues(path string) (map[string]any, error) {
	if path == "" {
		return nil, errors.New("-values is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var values map[string]any

	if isYAML(path) {
		err = yaml.Unmarshal(data, &values)
	} else {
		err = json.Unmarshal(data, &values)
	}

	if err != nil {
		return nil, fmt.Errorf("parsing values %s: %w", path, err)
	}

	return values, nil
}

func marshal(v map[string]any, format string) ([]byte, error) {
	switch format {
	case formatJSON:
		return json.MarshalIndent(v, "", "  ")
	case formatYAML:
		return yaml.Marshal(v)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
