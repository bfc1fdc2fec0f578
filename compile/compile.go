// Package compile turns schema declarations into a model.
//
// Compilation is a few ordered passes over one xsd.Schema: attribute
// groups are tabled first, simple types are compiled in dependency order,
// a class is registered for every complex type and element, and finally
// every class is filled in with its properties, text content, child
// collection and capabilities. Declaration order in the schema never
// matters, because registration always precedes resolution.
//
// Errors are fatal and partial models are never returned. A reference no
// declaration satisfies fails with *UnresolvedTypeError, a name declared
// twice fails with *model.DuplicateError, and anything outside the
// supported schema subset fails with *xsd.UnsupportedError.
package compile // import "arvoren.net/strongxml/compile"

import (
	"encoding/xml"
	"fmt"

	"arvoren.net/strongxml/model"
	"arvoren.net/strongxml/xsd"
)

// An UnresolvedTypeError reports a reference that no declaration
// satisfies: either the schema omits the declaration, or the compiler
// resolved it before registering it, which is a bug.
type UnresolvedTypeError struct {
	Name xml.Name
}

func (e *UnresolvedTypeError) Error() string {
	return fmt.Sprintf("compile: unresolved reference to %s", e.Name.Local)
}

// A Config holds settings for a compilation run.
type Config struct {
	logger   Logger
	loglevel int
}

// An Option is used to customize a Config.
type Option func(*Config) Option

// The Option method applies options to an existing configuration. Its
// return value can be used to revert the final option to its previous
// setting.
func (cfg *Config) Option(opts ...Option) (previous Option) {
	for _, opt := range opts {
		previous = opt(cfg)
	}
	return previous
}

// Types implementing the Logger interface can receive progress and debug
// information from the compiler. The Logger interface is implemented by
// *log.Logger.
type Logger interface {
	Printf(format string, v ...interface{})
}

// LogOutput specifies an optional Logger for information about the
// compilation.
func LogOutput(l Logger) Option {
	return func(cfg *Config) Option {
		prev := cfg.logger
		cfg.logger = l
		return LogOutput(prev)
	}
}

// LogLevel sets the verbosity of messages sent to the Logger configured
// with LogOutput, from 1 to 5.
func LogLevel(level int) Option {
	return func(cfg *Config) Option {
		prev := cfg.loglevel
		cfg.loglevel = level
		return LogLevel(prev)
	}
}

func (cfg *Config) logf(format string, v ...interface{}) {
	if cfg.logger != nil && cfg.loglevel > 0 {
		cfg.logger.Printf(format, v...)
	}
}

func (cfg *Config) debugf(format string, v ...interface{}) {
	if cfg.logger != nil && cfg.loglevel > 3 {
		cfg.logger.Printf(format, v...)
	}
}

// Compile builds the model described by one parsed schema.
func Compile(schema *xsd.Schema, opts ...Option) (*model.Model, error) {
	var cfg Config
	cfg.Option(opts...)
	c := &compiler{
		cfg:         &cfg,
		schema:      schema,
		simples:     make(map[xml.Name]model.PropertyType),
		simpleDecls: make(map[xml.Name]*xsd.SimpleType),
		classes:     make(map[xml.Name]*model.Class),
		classDecls:  make(map[xml.Name]bool),
		elements:    make(map[string]*model.Class),
		groups:      make(map[xml.Name]*xsd.AttrGroup),
	}
	return c.run()
}

// A compiler holds the tables of one compilation run. Every run gets a
// fresh compiler, so concurrent compilations never share state.
type compiler struct {
	cfg    *Config
	schema *xsd.Schema
	m      *model.Model

	// compiled simple types and classes, by qualified schema name
	simples map[xml.Name]model.PropertyType
	classes map[xml.Name]*model.Class

	// declared names, known before compilation for error classification
	simpleDecls map[xml.Name]*xsd.SimpleType
	classDecls  map[xml.Name]bool

	// classes reachable through top-level element names
	elements map[string]*model.Class

	// prebuilt attribute-group table
	groups map[xml.Name]*xsd.AttrGroup
}

func (c *compiler) run() (*model.Model, error) {
	c.m = model.New(c.schema.TargetNS)
	c.m.Doc = c.schema.Doc

	if err := c.buildGroupTable(); err != nil {
		return nil, err
	}
	if err := c.compileSimpleTypes(); err != nil {
		return nil, err
	}
	if err := c.registerClasses(); err != nil {
		return nil, err
	}
	if err := c.fillClasses(); err != nil {
		return nil, err
	}
	c.cfg.logf("compiled %d definitions from %s", len(c.m.Defs()), c.schema.TargetNS)
	return c.m, nil
}

// qualify places a local declaration name in the target namespace.
func (c *compiler) qualify(local string) xml.Name {
	return xml.Name{Space: c.schema.TargetNS, Local: local}
}

// normalize maps unqualified references into the target namespace.
// Schemas without a default namespace declaration still mean their own
// declarations when they write bare names.
func (c *compiler) normalize(ref xml.Name) xml.Name {
	if ref.Space == "" {
		ref.Space = c.schema.TargetNS
	}
	return ref
}

func (c *compiler) buildGroupTable() error {
	for _, g := range c.schema.AttrGroups {
		name := c.qualify(g.Name)
		if _, ok := c.groups[name]; ok {
			return &model.DuplicateError{Name: "attributeGroup " + g.Name}
		}
		c.groups[name] = g
		c.cfg.debugf("tabled attribute group %s", g.Name)
	}
	return nil
}
