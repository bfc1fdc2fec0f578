package classgen

import (
	"bytes"
	"fmt"
	"go/ast"

	"arvoren.net/strongxml/internal/gen"
	"arvoren.net/strongxml/model"
)

// reservedMethods are the contract method names a generated class may
// carry; property accessors cannot take these names.
var reservedMethods = map[string]bool{
	"Parent":        true,
	"SetParent":     true,
	"ElementName":   true,
	"OutputXML":     true,
	"SetAttribute":  true,
	"Children":      true,
	"ChildrenNamed": true,
	"AddChild":      true,
	"RemoveChild":   true,
	"CreateChild":   true,
}

// genClass renders one class as a struct carrying the methods of the
// capability contracts its shape grants. Set properties are tracked in
// a bit set so only they are written back out.
func (r *renderer) genClass(cls *model.Class) (spec, error) {
	goName := r.classNames[cls]
	if len(cls.Properties) > 64 {
		return spec{}, fmt.Errorf("classgen: %s has %d properties; at most 64 are supported", cls.Name, len(cls.Properties))
	}

	fields := []ast.Expr{
		ast.NewIdent("parent"), ast.NewIdent("xmlobj.SchemaElement"), nil,
		ast.NewIdent("name"), ast.NewIdent("string"), nil,
	}
	if len(cls.Properties) > 0 {
		fields = append(fields, ast.NewIdent("present"), ast.NewIdent("uint64"), nil)
	}
	accessors := make(map[string]string)
	for _, p := range cls.Properties {
		ident := r.cfg.public(p.Name)
		typ, err := r.goType(p.Type)
		if err != nil {
			return spec{}, fmt.Errorf("classgen: property %s of %s: %v", p.Name, cls.Name, err)
		}
		if !validIdent(ident) {
			return spec{}, fmt.Errorf("classgen: property %s of %s maps to invalid Go identifier %q; add a replace rule", p.Name, cls.Name, ident)
		}
		if reservedMethods[ident] || reservedMethods["Set"+ident] {
			return spec{}, fmt.Errorf("classgen: property %s of %s collides with the %s method; add a replace rule", p.Name, cls.Name, ident)
		}
		if prev, ok := accessors[ident]; ok {
			return spec{}, fmt.Errorf("classgen: properties %s and %s of %s both map to %s; add a replace rule", prev, p.Name, cls.Name, ident)
		}
		accessors[ident] = p.Name
		fields = append(fields, ast.NewIdent("attr" + ident), ast.NewIdent(typ), nil)
	}
	if cls.Children != nil {
		fields = append(fields, ast.NewIdent("children"), ast.NewIdent("[]xmlobj.SchemaElement"), nil)
	}

	s := spec{name: goName, expr: gen.Struct(fields...)}
	recv := receiver(goName)
	self := recv + " *" + goName

	fns := []*gen.Function{
		gen.Func("New" + goName).
			Returns("*" + goName).
			Body("return &%s{}", goName),
		gen.Func("Parent").Receiver(self).
			Returns("xmlobj.SchemaElement").
			Body("return %s.parent", recv),
		gen.Func("SetParent").Receiver(self).
			Args("p xmlobj.SchemaElement").
			Body("%s.parent = p", recv),
		gen.Func("ElementName").Receiver(self).
			Returns("string").
			Body("if %[1]s.name != \"\" {\nreturn %[1]s.name\n}\nreturn %[2]q", recv, cls.Name),
	}
	if cls.Capabilities.Has(model.SettableAttributes) {
		fns = append(fns, r.setAttributeFunc(cls, self, recv))
		for i, p := range cls.Properties {
			fns = append(fns, r.accessorFuncs(p, self, recv, i)...)
		}
	}
	if cls.Capabilities.Has(model.ParentOfChildren) {
		fns = append(fns, childListFuncs(cls, self, recv)...)
	}
	if cls.Capabilities.Has(model.ChildFactory) {
		fns = append(fns, r.createChildFunc(cls, self, recv))
	}
	fns = append(fns, r.outputXMLFunc(cls, self, recv))

	for _, fn := range fns {
		decl, err := fn.Decl()
		if err != nil {
			return spec{}, fmt.Errorf("classgen: %s of %s: %v", fn.Name(), cls.Name, err)
		}
		s.decls = append(s.decls, decl)
	}
	return s, nil
}

// goType maps a property's value space to the Go type its struct field
// and accessors carry.
func (r *renderer) goType(t model.PropertyType) (string, error) {
	switch t := t.(type) {
	case model.Primitive:
		switch t {
		case model.String:
			return "string", nil
		case model.Bool:
			return "bool", nil
		case model.Int:
			return "int", nil
		case model.Long:
			return "int64", nil
		case model.Timestamp:
			return "time.Time", nil
		}
		return "", fmt.Errorf("unmapped primitive %v", t)
	case *model.Enum:
		name := r.enumNames[t]
		if name == "" {
			return "", fmt.Errorf("enumeration %s is not rendered", t.Name)
		}
		return name, nil
	}
	return "", fmt.Errorf("unmapped property type %T", t)
}

// formatExpr returns an expression rendering a struct field in
// document form.
func (r *renderer) formatExpr(field string, t model.PropertyType) string {
	switch t := t.(type) {
	case model.Primitive:
		switch t {
		case model.Bool:
			return "strconv.FormatBool(" + field + ")"
		case model.Int:
			return "strconv.Itoa(" + field + ")"
		case model.Long:
			return "strconv.FormatInt(" + field + ", 10)"
		case model.Timestamp:
			return field + ".Format(xmlobj.TimeLayout)"
		}
	case *model.Enum:
		return field + ".String()"
	}
	return field
}

func mask(index int) string {
	return fmt.Sprintf("%#x", uint64(1)<<uint(index))
}

func (r *renderer) setAttributeFunc(cls *model.Class, self, recv string) *gen.Function {
	var body bytes.Buffer
	body.WriteString("switch name {\n")
	for i, p := range cls.Properties {
		field := recv + ".attr" + r.cfg.public(p.Name)
		fmt.Fprintf(&body, "case %q:\n", p.Name)
		switch t := p.Type.(type) {
		case model.Primitive:
			switch t {
			case model.String:
				fmt.Fprintf(&body, "%s = value\n", field)
			case model.Bool:
				fmt.Fprintf(&body, "switch value {\ncase \"true\", \"1\":\n%s = true\ncase \"false\", \"0\":\n%s = false\ndefault:\nreturn fmt.Errorf(%q, value)\n}\n",
					field, field, cls.Name+": "+p.Name+": %q is not a boolean")
			case model.Int:
				fmt.Fprintf(&body, "parsed, err := strconv.ParseInt(value, 10, 32)\nif err != nil {\nreturn fmt.Errorf(%q, value)\n}\n%s = int(parsed)\n",
					cls.Name+": "+p.Name+": %q is not an int", field)
			case model.Long:
				fmt.Fprintf(&body, "parsed, err := strconv.ParseInt(value, 10, 64)\nif err != nil {\nreturn fmt.Errorf(%q, value)\n}\n%s = parsed\n",
					cls.Name+": "+p.Name+": %q is not a long", field)
			case model.Timestamp:
				fmt.Fprintf(&body, "stamp, err := time.Parse(xmlobj.TimeLayout, value)\nif err != nil {\nreturn fmt.Errorf(%q, value)\n}\n%s = stamp\n",
					cls.Name+": "+p.Name+": %q is not a timestamp", field)
			}
		case *model.Enum:
			fmt.Fprintf(&body, "val, _ := TryParse%s(value)\n%s = val\n", r.enumNames[t], field)
		}
		fmt.Fprintf(&body, "%s.present |= %s\n", recv, mask(i))
	}
	body.WriteString("}\nreturn nil")
	return gen.Func("SetAttribute").Receiver(self).
		Args("name, value string").
		Returns("error").
		Body("%s", body.String())
}

func (r *renderer) accessorFuncs(p *model.Property, self, recv string, index int) []*gen.Function {
	ident := r.cfg.public(p.Name)
	field := recv + ".attr" + ident
	typ, err := r.goType(p.Type)
	if err != nil {
		typ = "string"
	}
	return []*gen.Function{
		gen.Func(ident).Receiver(self).
			Returns(typ).
			Body("return %s", field),
		gen.Func("Set" + ident).Receiver(self).
			Args("v " + typ).
			Body("%s = v\n%s.present |= %s", field, recv, mask(index)),
	}
}

func childListFuncs(cls *model.Class, self, recv string) []*gen.Function {
	return []*gen.Function{
		gen.Func("Children").Receiver(self).
			Returns("[]xmlobj.SchemaElement").
			Body("return %s.children", recv),
		gen.Func("ChildrenNamed").Receiver(self).
			Args("name string").
			Returns("[]xmlobj.SchemaElement").
			Body("var named []xmlobj.SchemaElement\nfor _, child := range %s.children {\nif el, ok := child.(xmlobj.NamedElement); ok && el.ElementName() == name {\nnamed = append(named, child)\n}\n}\nreturn named", recv),
		gen.Func("AddChild").Receiver(self).
			Args("child xmlobj.SchemaElement").
			Returns("error").
			Body("child.SetParent(%[1]s)\n%[1]s.children = append(%[1]s.children, child)\nreturn nil", recv),
		gen.Func("RemoveChild").Receiver(self).
			Args("child xmlobj.SchemaElement").
			Returns("error").
			Body("for idx, have := range %[1]s.children {\nif have == child {\n%[1]s.children = append(%[1]s.children[:idx], %[1]s.children[idx+1:]...)\nchild.SetParent(nil)\nreturn nil\n}\n}\nreturn errors.New(%[2]q)", recv, cls.Name+" has no such child to remove"),
	}
}

// createChildFunc renders the factory switch over the collection's
// element names, first declaration winning. Names the collection does
// not declare are refused even next to a wildcard slot; the document
// reader resolves those through its registry instead.
func (r *renderer) createChildFunc(cls *model.Class, self, recv string) *gen.Function {
	var items []*model.ChildItem
	flattenChildren(cls.Children, make(map[string]bool), &items)
	var body bytes.Buffer
	body.WriteString("var child xmlobj.SchemaElement\nswitch name {\n")
	for _, item := range items {
		fmt.Fprintf(&body, "case %q:\nchild = &%s{name: name}\n", item.Name, r.classNames[item.Class])
	}
	fmt.Fprintf(&body, "default:\nreturn nil, &xmlobj.UnknownChildError{Parent: %q, Name: name}\n}\n", cls.Name)
	fmt.Fprintf(&body, "if err := %s.AddChild(child); err != nil {\nreturn nil, err\n}\nreturn child, nil", recv)
	return gen.Func("CreateChild").Receiver(self).
		Args("name string").
		Returns("xmlobj.SchemaElement", "error").
		Body("%s", body.String())
}

// flattenChildren collects the named items of a collection tree in
// declaration order, keeping the first of each name.
func flattenChildren(col *model.ElementCollection, seen map[string]bool, out *[]*model.ChildItem) {
	for _, item := range col.Items {
		switch item := item.(type) {
		case *model.ChildItem:
			if !seen[item.Name] {
				seen[item.Name] = true
				*out = append(*out, item)
			}
		case *model.GroupItem:
			flattenChildren(item.Collection, seen, out)
		}
	}
}

func (r *renderer) outputXMLFunc(cls *model.Class, self, recv string) *gen.Function {
	var body bytes.Buffer
	fmt.Fprintf(&body, "if err := w.StartElement(%s.ElementName()); err != nil {\nreturn err\n}\n", recv)
	for i, p := range cls.Properties {
		if p.Text {
			continue
		}
		expr := r.formatExpr(recv+".attr"+r.cfg.public(p.Name), p.Type)
		fmt.Fprintf(&body, "if %s.present&%s != 0 {\nif err := w.Attribute(%q, %s); err != nil {\nreturn err\n}\n}\n", recv, mask(i), p.Name, expr)
	}
	for i, p := range cls.Properties {
		if !p.Text {
			continue
		}
		expr := r.formatExpr(recv+".attr"+r.cfg.public(p.Name), p.Type)
		fmt.Fprintf(&body, "if %s.present&%s != 0 {\nif err := w.Text(%s); err != nil {\nreturn err\n}\n}\n", recv, mask(i), expr)
	}
	if cls.Children != nil {
		fmt.Fprintf(&body, "for _, child := range %s.children {\nif err := child.OutputXML(w); err != nil {\nreturn err\n}\n}\n", recv)
	}
	fmt.Fprintf(&body, "return w.EndElement(%s.ElementName())", recv)
	return gen.Func("OutputXML").Receiver(self).
		Args("w *xmlobj.Writer").
		Returns("error").
		Body("%s", body.String())
}
