package main

import (
	"log"
	"os"

	"arvoren.net/strongxml/classgen"
)

func main() {
	log.SetFlags(0)
	var cfg classgen.Config
	cfg.Option(classgen.DefaultOptions...)
	cfg.Option(classgen.LogOutput(log.New(os.Stderr, "", 0)))

	if err := cfg.GenCLI(os.Args[1:]...); err != nil {
		log.Fatal(err)
	}
}
