// Package classgen generates Go source code from compiled schema
// models.
//
// Every model class becomes a struct satisfying the xmlobj capability
// contracts its shape grants, every enumeration becomes an int64 type
// with constants and conversion functions matching the model's
// numbering, and a NewRegistry function covers the model's element
// names. Generated code depends only on the runtime package named by
// RuntimeImport.
package classgen // import "arvoren.net/strongxml/classgen"

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
	"unicode"

	"arvoren.net/strongxml/internal/gen"
	"arvoren.net/strongxml/model"
)

// A spec is one generated type: its name, its type expression, and the
// declarations that follow it in the output file.
type spec struct {
	name  string
	expr  ast.Expr
	decls []ast.Decl
}

// A renderer holds the state of one GenAST run. Every run gets a fresh
// renderer, so a Config can be reused.
type renderer struct {
	cfg *Config
	m   *model.Model

	// Go names claimed so far, by the model name that claimed them
	taken map[string]string

	classNames map[*model.Class]string
	enumNames  map[*model.Enum]string
}

// GenAST renders a compiled model as a single Go source file of type
// declarations and associated methods.
func (cfg *Config) GenAST(m *model.Model) (*ast.File, error) {
	if cfg.pkgname == "" {
		cfg.pkgname = "schema"
	}
	if cfg.runtimeImport == "" {
		cfg.runtimeImport = "arvoren.net/strongxml/xmlobj"
	}
	r := &renderer{
		cfg:        cfg,
		m:          m,
		taken:      make(map[string]string),
		classNames: make(map[*model.Class]string),
		enumNames:  make(map[*model.Enum]string),
	}
	cfg.debugf("rendering model for namespace %q", m.TargetNS)
	return r.file()
}

// claim reserves a Go type or constructor name for one model name.
func (r *renderer) claim(goName, modelName string) error {
	if !validIdent(goName) {
		return fmt.Errorf("classgen: %s maps to invalid Go identifier %q; add a replace rule", modelName, goName)
	}
	if prev, ok := r.taken[goName]; ok {
		return fmt.Errorf("classgen: %s and %s both map to Go name %s; add a replace rule", prev, modelName, goName)
	}
	r.taken[goName] = modelName
	return nil
}

func validIdent(s string) bool {
	for i, r := range s {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return s != ""
}

// name claims Go names for every definition up front, so classes can
// reference enumerations and child classes regardless of declaration
// order.
func (r *renderer) name() error {
	for _, def := range r.m.Defs() {
		switch def := def.(type) {
		case *model.Enum:
			goName := r.cfg.public(def.Name)
			if err := r.claim(goName, def.Name); err != nil {
				return err
			}
			r.enumNames[def] = goName
		case *model.Class:
			goName := r.cfg.public(def.Name)
			if err := r.claim(goName, def.Name); err != nil {
				return err
			}
			r.classNames[def] = goName
			for _, e := range def.Enums {
				scoped := goName + r.cfg.public(e.Name)
				if err := r.claim(scoped, def.Name+" "+e.Name); err != nil {
					return err
				}
				r.enumNames[e] = scoped
			}
		}
	}
	for _, alias := range r.m.Aliases() {
		if err := r.claim(r.cfg.public(alias), alias); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) file() (*ast.File, error) {
	if err := r.name(); err != nil {
		return nil, err
	}
	decls := []ast.Decl{
		&ast.GenDecl{
			Tok: token.IMPORT,
			Specs: []ast.Spec{
				&ast.ImportSpec{
					Name: ast.NewIdent("xmlobj"),
					Path: gen.String(r.cfg.runtimeImport),
				},
			},
		},
	}
	add := func(s spec) {
		decls = append(decls, gen.TypeDecl(ast.NewIdent(s.name), s.expr))
		decls = append(decls, s.decls...)
	}
	for _, def := range r.m.Defs() {
		switch def := def.(type) {
		case *model.Enum:
			s, err := r.genEnum(def)
			if err != nil {
				return nil, err
			}
			add(s)
		case *model.Class:
			s, err := r.genClass(def)
			if err != nil {
				return nil, err
			}
			add(s)
			for _, e := range def.Enums {
				es, err := r.genEnum(e)
				if err != nil {
					return nil, err
				}
				add(es)
			}
		}
	}
	for _, alias := range r.m.Aliases() {
		ctor, err := r.genAliasConstructor(alias)
		if err != nil {
			return nil, err
		}
		decls = append(decls, ctor)
	}
	registry, err := r.genRegistry()
	if err != nil {
		return nil, err
	}
	decls = append(decls, registry)
	file := &ast.File{
		Name:  ast.NewIdent(r.cfg.pkgname),
		Decls: decls,
	}
	return gen.PackageDoc(file, "Code generated by classgen. DO NOT EDIT."), nil
}

// genAliasConstructor renders the constructor for an element name that
// maps to another class. Instances keep the alias as their element
// name.
func (r *renderer) genAliasConstructor(alias string) (ast.Decl, error) {
	cls := r.m.AliasTarget(alias)
	goName := r.classNames[cls]
	if goName == "" {
		return nil, fmt.Errorf("classgen: alias %s maps to an unrendered class", alias)
	}
	return gen.Func("New" + r.cfg.public(alias)).
		Returns("*" + goName).
		Body("return &%s{name: %q}", goName, alias).
		Decl()
}

// genRegistry renders a NewRegistry function covering every element
// name the model declares, classes and aliases both.
func (r *renderer) genRegistry() (ast.Decl, error) {
	type entry struct {
		XMLName string
		Ctor    string
	}
	var entries []entry
	for _, def := range r.m.Defs() {
		if cls, ok := def.(*model.Class); ok {
			entries = append(entries, entry{cls.Name, "New" + r.classNames[cls]})
		}
	}
	for _, alias := range r.m.Aliases() {
		entries = append(entries, entry{alias, "New" + r.cfg.public(alias)})
	}
	return gen.Func("NewRegistry").
		Returns("*xmlobj.Registry", "error").
		BodyTmpl(`
			reg := xmlobj.NewRegistry()
			{{- range .}}
			if err := reg.Register({{printf "%q" .XMLName}}, func() xmlobj.SchemaElement { return {{.Ctor}}() }); err != nil {
				return nil, err
			}
			{{- end}}
			return reg, nil
		`, entries).
		Decl()
}

// receiver picks the receiver identifier for a generated method,
// avoiding the parameter names the method bodies use.
func receiver(goName string) string {
	first := strings.ToLower(goName[:1])
	switch first {
	case "p", "v", "w":
		return "t"
	}
	return first
}
