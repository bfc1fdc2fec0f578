package classgen

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"arvoren.net/strongxml/internal/commandline"
)

// A Config holds user-defined overrides that are used when generating
// Go source code from a compiled model.
type Config struct {
	logger        Logger
	loglevel      int
	pkgname       string
	runtimeImport string
	nameTransform func(string) string
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

// DefaultOptions are the default settings of the classgen command.
var DefaultOptions = []Option{
	PackageName("schema"),
	RuntimeImport("arvoren.net/strongxml/xmlobj"),
	Replace(`[._\s-]`, ""),
}

// Types implementing the Logger interface can receive progress and
// debug information from the code generator. The Logger interface is
// implemented by *log.Logger.
type Logger interface {
	Printf(format string, v ...interface{})
}

// LogOutput specifies an optional Logger for information about the
// code generation.
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

// PackageName sets the name of the generated package.
func PackageName(name string) Option {
	return func(cfg *Config) Option {
		prev := cfg.pkgname
		cfg.pkgname = name
		return PackageName(prev)
	}
}

// RuntimeImport sets the import path of the package providing the
// Writer, Registry and capability contracts that generated code is
// written against.
func RuntimeImport(path string) Option {
	return func(cfg *Config) Option {
		prev := cfg.runtimeImport
		cfg.runtimeImport = path
		return RuntimeImport(prev)
	}
}

// Replace adds a rule rewriting schema names before they become Go
// identifiers. Any text matching pat is replaced with repl. Rules
// accumulate and apply in the order added.
func Replace(pat, repl string) Option {
	return func(cfg *Config) Option {
		reg, err := regexp.Compile(pat)
		if err != nil {
			cfg.logf("ignoring replace rule %q: %v", pat, err)
			return func(cfg *Config) Option { return Replace(pat, repl) }
		}
		return replaceRegexp(reg, repl)(cfg)
	}
}

func replaceRegexp(reg *regexp.Regexp, repl string) Option {
	return func(cfg *Config) Option {
		prev := cfg.nameTransform
		cfg.nameTransform = func(name string) string {
			if prev != nil {
				name = prev(name)
			}
			return reg.ReplaceAllString(name, repl)
		}
		return func(cfg *Config) Option {
			cfg.nameTransform = prev
			return replaceRegexp(reg, repl)
		}
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

// public maps a schema name to an exported Go identifier, applying the
// configured replace rules first.
func (cfg *Config) public(name string) string {
	if cfg.nameTransform != nil {
		name = cfg.nameTransform(name)
	}
	return strings.Title(name)
}

// An options file carries the same settings as the classgen command's
// flags, in YAML form:
//
//	package: deploy
//	runtime: arvoren.net/strongxml/xmlobj
//	replace:
//	  - "Type$ -> "
//	loglevel: 2
type optionsFile struct {
	Package  string   `yaml:"package"`
	Runtime  string   `yaml:"runtime"`
	Replace  []string `yaml:"replace"`
	LogLevel int      `yaml:"loglevel"`
}

// LoadOptions reads generator settings from a YAML file. Replace rules
// are written "pattern -> replacement", as on the command line.
func LoadOptions(filename string) ([]Option, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var file optionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("options file %s: %v", filename, err)
	}
	var opts []Option
	if file.Package != "" {
		opts = append(opts, PackageName(file.Package))
	}
	if file.Runtime != "" {
		opts = append(opts, RuntimeImport(file.Runtime))
	}
	for _, s := range file.Replace {
		rule, err := commandline.ParseReplaceRule(s)
		if err != nil {
			return nil, fmt.Errorf("options file %s: %v", filename, err)
		}
		opts = append(opts, replaceRegexp(rule.From, rule.To))
	}
	if file.LogLevel != 0 {
		opts = append(opts, LogLevel(file.LogLevel))
	}
	return opts, nil
}
