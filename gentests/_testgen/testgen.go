// testgen regenerates the committed classgen output for every test
// case directory. Run it from the gentests directory after changing
// classgen or a case schema; the hand-written tests next to each
// output exercise the regenerated code.
package main

import (
	"log"
	"os"
	"path/filepath"

	"arvoren.net/strongxml/classgen"
	"arvoren.net/strongxml/compile"
	"arvoren.net/strongxml/xsd"
)

func main() {
	log.SetFlags(0)
	for _, dir := range findTestCases() {
		if err := generate(dir); err != nil {
			log.Print(dir, ": ", err)
			continue
		}
		log.Printf("regenerated %s", dir)
	}
}

func generate(dir string) error {
	data, err := os.ReadFile(glob(filepath.Join(dir, "*.xsd")))
	if err != nil {
		return err
	}
	schema, err := xsd.Parse(data)
	if err != nil {
		return err
	}
	m, err := compile.Compile(schema)
	if err != nil {
		return err
	}
	var cfg classgen.Config
	cfg.Option(classgen.DefaultOptions...)
	cfg.Option(classgen.PackageName(dir))
	src, err := cfg.GenSource(m)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, dir+"_output.go"), src, 0666)
}

func glob(pat string) string {
	f, err := filepath.Glob(pat)
	if err != nil {
		log.Fatal(err)
	}
	if len(f) < 1 {
		log.Fatal("no files match ", pat)
	}
	return f[0]
}

// findTestCases looks for subdirectories holding an .xsd schema and
// returns their names.
func findTestCases() []string {
	filenames, err := filepath.Glob("*/*.xsd")
	if err != nil {
		return nil
	}
	result := make([]string, 0, len(filenames))
	for _, xsdfile := range filenames {
		result = append(result, filepath.Base(filepath.Dir(xsdfile)))
	}
	return result
}
