package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"pathcodec/internal/config"
	"pathcodec/internal/diagnostic"
	"pathcodec/internal/logging"
	"pathcodec/internal/match"
	"pathcodec/internal/plan"
	"pathcodec/internal/schema"
)

var (
	// errUsage reports a command line error already written to stderr.
	errUsage = errors.New("usage")
	// errHelp reports that help was requested and printed.
	errHelp = errors.New("help requested")
)

const maxSuggestions = 3

type cli struct {
	name   string
	stdout io.Writer
	stderr io.Writer

	cfg *config.Config
	log *zap.Logger
}

// commonFlags are shared by the commands reading a schema.
type commonFlags struct {
	config  string
	schema  string
	typ     string
	verbose bool
}

func (c *cli) flagSet() *flag.FlagSet {
	fs := flag.NewFlagSet(c.name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)

	return fs
}

func (c *cli) schemaFlags(fs *flag.FlagSet, withType bool) *commonFlags {
	cf := &commonFlags{}

	fs.StringVar(&cf.config, "config", "", "Path to configuration file (default "+config.DefaultFile+")")
	fs.StringVar(&cf.schema, "schema", "", "Path to the schema file (required)")
	fs.BoolVar(&cf.verbose, "v", false, "Verbose output")

	if withType {
		fs.StringVar(&cf.typ, "type", "", "Schema type to use")
	}

	return cf
}

// start parses args, which must all be flags, and sets up configuration
// and logging.
func (c *cli) start(fs *flag.FlagSet, cf *commonFlags, args []string) error {
	if err := c.parse(fs, args); err != nil {
		return err
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(c.stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()

		return errUsage
	}

	return c.setup(cf)
}

func (c *cli) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}

		return errUsage
	}

	return nil
}

func (c *cli) setup(cf *commonFlags) error {
	cfg, err := config.Load(cf.config)
	if err != nil {
		return err
	}

	if cf.verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := logging.Setup(cfg.Log, c.stdout, c.stderr)
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.log = logger.Named(c.name)

	return nil
}

func (c *cli) close() {
	if c.log != nil {
		_ = c.log.Sync()
	}
}

// loadSchema loads, validates and synthesizes the schema at path.
func (c *cli) loadSchema(path string) (*schema.File, []*plan.Plan, error) {
	f, diags, err := c.checkSchema(path)
	if err != nil {
		return nil, nil, err
	}

	if diags.HasErrors() {
		c.report(diags)
		return nil, nil, fmt.Errorf("schema %s is invalid", path)
	}

	specs, err := schema.TypeSpecs(f)
	if err != nil {
		return nil, nil, err
	}

	plans, err := plan.SynthesizeAll(specs)
	if err != nil {
		return nil, nil, err
	}

	for _, p := range plans {
		c.log.Debug("synthesized plan",
			zap.String("type", p.Type),
			zap.Stringer("kind", p.Kind),
			zap.Int("decode_ops", len(p.Decode)),
			zap.Int("encode_ops", len(p.Encode)),
		)
	}

	return f, plans, nil
}

func (c *cli) checkSchema(path string) (*schema.File, *diagnostic.Diagnostics, error) {
	if path == "" {
		return nil, nil, errors.New("-schema is required")
	}

	f, err := schema.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	diags := schema.Validate(f)
	for _, d := range diags.All() {
		if d.Severity == diagnostic.SeverityWarning {
			c.log.Warn(d.Message, zap.String("code", d.Code), zap.String("type", d.Type), zap.String("field", d.Field))
		}
	}

	c.log.Debug("loaded schema", zap.String("path", path), zap.Int("types", len(f.Types)))

	return f, diags, nil
}

func (c *cli) report(diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		fmt.Fprintf(c.stderr, "%s: %s\n", d.Severity, d)
	}
}

// selectPlans returns every plan, or the one named typ.
func selectPlans(plans []*plan.Plan, typ string) ([]*plan.Plan, error) {
	if typ == "" {
		return plans, nil
	}

	p, err := findPlan(plans, typ)
	if err != nil {
		return nil, err
	}

	return []*plan.Plan{p}, nil
}

func findPlan(plans []*plan.Plan, typ string) (*plan.Plan, error) {
	if typ == "" {
		return nil, errors.New("-type is required")
	}

	names := make([]string, 0, len(plans))

	for _, p := range plans {
		if p.Type == typ {
			return p, nil
		}

		names = append(names, p.Type)
	}

	return nil, notFound("type", typ, names)
}

func notFound(what, name string, candidates []string) error {
	msg := fmt.Sprintf("unknown %s %q", what, name)

	if sugg := match.Closest(name, candidates, maxSuggestions, match.DefaultMinScore); len(sugg) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(sugg, ", "))
	}

	return errors.New(msg)
}
