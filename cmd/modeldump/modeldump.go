package main

import (
	"flag"
	"log"
	"os"

	"arvoren.net/strongxml/compile"
	"arvoren.net/strongxml/xsd"
)

var (
	verbose = flag.Bool("v", false, "print compiler progress to stderr")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("Usage: %s [-v] file.xsd", os.Args[0])
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	schema, err := xsd.Parse(data)
	if err != nil {
		log.Fatal(err)
	}

	opts := []compile.Option{}
	if *verbose {
		opts = append(opts,
			compile.LogOutput(log.New(os.Stderr, "", 0)),
			compile.LogLevel(1))
	}

	m, err := compile.Compile(schema, opts...)
	if err != nil {
		log.Fatal(err)
	}

	if err := m.EncodeJSON(os.Stdout); err != nil {
		log.Fatal(err)
	}
}
