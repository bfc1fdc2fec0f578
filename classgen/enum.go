package classgen

import (
	"bytes"
	"fmt"
	"go/ast"

	"arvoren.net/strongxml/internal/gen"
	"arvoren.net/strongxml/model"
)

type enumValue struct {
	Token string
	Ident string
}

type enumDot struct {
	Name   string
	Values []enumValue
}

// genEnum renders one enumeration as an int64 type with a constant
// block and conversion functions matching the model's numbering: a
// plain enumeration declares the NotSet and IllegalValue sentinels
// before its values, a flag set declares None and single-bit values.
func (r *renderer) genEnum(e *model.Enum) (spec, error) {
	name := r.enumNames[e]
	dot := enumDot{Name: name}
	seen := map[string]string{name: "the type name"}
	for _, v := range e.Values {
		ident := r.cfg.public(v.Name)
		if !validIdent(name + ident) {
			return spec{}, fmt.Errorf("classgen: value %q of %s maps to invalid Go identifier %q; add a replace rule", v.Name, e.Name, name+ident)
		}
		if prev, ok := seen[name+ident]; ok {
			return spec{}, fmt.Errorf("classgen: values %q and %s of %s both map to %s; add a replace rule", v.Name, prev, e.Name, name+ident)
		}
		seen[name+ident] = fmt.Sprintf("%q", v.Name)
		dot.Values = append(dot.Values, enumValue{Token: v.Name, Ident: ident})
	}

	var block bytes.Buffer
	block.WriteString("const (\n")
	if e.Flags {
		fmt.Fprintf(&block, "\t%sNone %s = 0\n", name, name)
		for i, v := range dot.Values {
			if i == 0 {
				fmt.Fprintf(&block, "\t%s%s %s = 1 << (iota - 1)\n", name, v.Ident, name)
			} else {
				fmt.Fprintf(&block, "\t%s%s\n", name, v.Ident)
			}
		}
	} else {
		fmt.Fprintf(&block, "\t%sNotSet %s = iota\n", name, name)
		fmt.Fprintf(&block, "\t%sIllegalValue\n", name)
		for _, v := range dot.Values {
			fmt.Fprintf(&block, "\t%s%s\n", name, v.Ident)
		}
	}
	block.WriteString(")\n")
	consts, err := gen.Declarations(block.String())
	if err != nil {
		return spec{}, fmt.Errorf("classgen: constants of %s: %v", e.Name, err)
	}

	s := spec{name: name, expr: ast.NewIdent("int64"), decls: consts}
	var fns []*gen.Function
	if e.Flags {
		fns = append(fns,
			gen.Func("TryParse" + name).
				Args("s string").
				Returns(name, "bool").
				BodyTmpl(`
					var set {{.Name}}
					ok := false
					for _, field := range strings.Fields(s) {
						switch field {
						{{- range .Values}}
						case {{printf "%q" .Token}}:
							set |= {{$.Name}}{{.Ident}}
							ok = true
						{{- end}}
						}
					}
					if !ok {
						return {{.Name}}None, false
					}
					return set, true
				`, dot),
			gen.Func("String").
				Receiver("v " + name).
				Returns("string").
				BodyTmpl(`
					var fields []string
					{{- range .Values}}
					if v&{{$.Name}}{{.Ident}} != 0 {
						fields = append(fields, {{printf "%q" .Token}})
					}
					{{- end}}
					return strings.Join(fields, " ")
				`, dot))
	} else {
		fns = append(fns,
			gen.Func("Parse" + name).
				Args("s string").
				Returns(name, "error").
				BodyTmpl(`
					switch s {
					{{- range .Values}}
					case {{printf "%q" .Token}}:
						return {{$.Name}}{{.Ident}}, nil
					{{- end}}
					}
					return {{.Name}}IllegalValue, fmt.Errorf("%q is not a valid {{.Name}}", s)
				`, dot),
			gen.Func("TryParse" + name).
				Args("s string").
				Returns(name, "bool").
				Body("val, err := Parse%s(s)\nreturn val, err == nil", name),
			gen.Func("String").
				Receiver("v " + name).
				Returns("string").
				BodyTmpl(`
					switch v {
					{{- range .Values}}
					case {{$.Name}}{{.Ident}}:
						return {{printf "%q" .Token}}
					{{- end}}
					}
					return ""
				`, dot))
	}
	for _, fn := range fns {
		decl, err := fn.Decl()
		if err != nil {
			return spec{}, fmt.Errorf("classgen: %s of %s: %v", fn.Name(), e.Name, err)
		}
		s.decls = append(s.decls, decl)
	}
	return s, nil
}
