package classgen

import (
	"errors"
	"flag"
	"os"

	"arvoren.net/strongxml/compile"
	"arvoren.net/strongxml/internal/commandline"
	"arvoren.net/strongxml/internal/gen"
	"arvoren.net/strongxml/model"
	"arvoren.net/strongxml/xsd"
)

// The GenSource method converts the AST returned by GenAST to formatted
// Go source code.
func (cfg *Config) GenSource(m *model.Model) ([]byte, error) {
	file, err := cfg.GenAST(m)
	if err != nil {
		return nil, err
	}
	return gen.FormattedSource(file)
}

// GenCLI creates a file containing Go source generated from one XML
// schema document. It is intended to be called from the main function
// of any command-line interfaces to the classgen package.
func (cfg *Config) GenCLI(arguments ...string) error {
	var (
		replaceRules commandline.ReplaceRuleList
		fs           = flag.NewFlagSet("classgen", flag.ExitOnError)
		packageName  = fs.String("pkg", "", "name of the generated package")
		output       = fs.String("o", "classgen_output.go", "name of the output file")
		optionsPath  = fs.String("c", "", "name of a YAML options file")
		verbose      = fs.Bool("v", false, "print verbose output")
		debug        = fs.Bool("vv", false, "print debug output")
	)
	fs.Var(&replaceRules, "r", "replacement rule 'regex -> repl' (can be used multiple times)")
	fs.Parse(arguments)
	if fs.NArg() != 1 {
		return errors.New("Usage: classgen [-c file] [-r rule] [-o file] [-pkg pkg] file.xsd")
	}

	if *debug {
		cfg.Option(LogLevel(5))
	} else if *verbose {
		cfg.Option(LogLevel(1))
	}
	if *optionsPath != "" {
		opts, err := LoadOptions(*optionsPath)
		if err != nil {
			return err
		}
		cfg.Option(opts...)
	}
	for _, r := range replaceRules {
		cfg.Option(replaceRegexp(r.From, r.To))
	}
	if len(*packageName) > 0 {
		cfg.Option(PackageName(*packageName))
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	cfg.debugf("read %s", fs.Arg(0))
	schema, err := xsd.Parse(data)
	if err != nil {
		return err
	}
	m, err := compile.Compile(schema,
		compile.LogOutput(cfg.logger),
		compile.LogLevel(cfg.loglevel))
	if err != nil {
		return err
	}
	src, err := cfg.GenSource(m)
	if err != nil {
		return err
	}
	return os.WriteFile(*output, src, 0666)
}
