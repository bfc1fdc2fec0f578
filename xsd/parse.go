package xsd

import (
	"encoding/xml"
	"fmt"
	"strings"

	"arvoren.net/strongxml/xmldoc"
)

// Facets that constrain the value space for validation purposes only.
// They carry no information this project uses, so they are skipped.
var ignoredFacets = map[string]bool{
	"whiteSpace":     true,
	"length":         true,
	"minLength":      true,
	"maxLength":      true,
	"minInclusive":   true,
	"maxInclusive":   true,
	"minExclusive":   true,
	"maxExclusive":   true,
	"totalDigits":    true,
	"fractionDigits": true,
}

// Parse reads the declarations of a single schema document. The document
// root must be an <xs:schema> element. Parse fails with *UnsupportedError
// when the document uses constructs outside the supported subset.
func Parse(data []byte) (*Schema, error) {
	root, err := xmldoc.Parse(data)
	if err != nil {
		return nil, err
	}
	return ParseElement(root)
}

// ParseElement parses a schema document that has already been read into an
// element tree. The tree is not modified.
func ParseElement(root *xmldoc.Element) (*Schema, error) {
	if (root.Name != xml.Name{Space: SchemaNS, Local: "schema"}) {
		return nil, fmt.Errorf("xsd: document root is %s, not a schema", root.Name.Local)
	}
	s := &Schema{TargetNS: root.Attr("", "targetNamespace")}
	for _, el := range root.Children {
		if el.Name.Space != SchemaNS {
			return nil, &UnsupportedError{Construct: "foreign element " + el.Name.Local, In: "schema"}
		}
		switch el.Name.Local {
		case "annotation":
			s.Doc = joinDoc(s.Doc, annotationText(el))
		case "simpleType":
			st, err := parseSimpleType(el, el.Attr("", "name"))
			if err != nil {
				return nil, err
			}
			s.SimpleTypes = append(s.SimpleTypes, st)
		case "complexType":
			ct, err := parseComplexType(el, el.Attr("", "name"))
			if err != nil {
				return nil, err
			}
			s.ComplexTypes = append(s.ComplexTypes, ct)
		case "element":
			decl, err := parseElement(el)
			if err != nil {
				return nil, err
			}
			s.Elements = append(s.Elements, decl)
		case "attributeGroup":
			g, err := parseAttrGroup(el)
			if err != nil {
				return nil, err
			}
			s.AttrGroups = append(s.AttrGroups, g)
		default:
			return nil, &UnsupportedError{Construct: "xs:" + el.Name.Local, In: "schema"}
		}
	}
	return s, nil
}

func parseSimpleType(el *xmldoc.Element, name string) (*SimpleType, error) {
	st := &SimpleType{Name: name}
	where := name
	if where == "" {
		where = "anonymous simpleType"
	}
	for _, child := range el.Children {
		switch child.Name.Local {
		case "annotation":
			st.Doc = joinDoc(st.Doc, annotationText(child))
		case "restriction":
			r, err := parseRestriction(child, where)
			if err != nil {
				return nil, err
			}
			st.Restriction = r
		case "list":
			l, err := parseList(child, where)
			if err != nil {
				return nil, err
			}
			st.List = l
		case "union":
			for _, member := range strings.Fields(child.Attr("", "memberTypes")) {
				st.Union = append(st.Union, child.Resolve(member))
			}
			if len(st.Union) == 0 {
				return nil, &UnsupportedError{Construct: "xs:union without memberTypes", In: where}
			}
		default:
			return nil, &UnsupportedError{Construct: "xs:" + child.Name.Local, In: where}
		}
	}
	return st, nil
}

func parseRestriction(el *xmldoc.Element, where string) (*Restriction, error) {
	r := &Restriction{}
	if base := el.Attr("", "base"); base != "" {
		r.Base = el.Resolve(base)
	}
	for _, facet := range el.Children {
		switch facet.Name.Local {
		case "annotation":
			// restriction annotations carry no declaration text
		case "enumeration":
			r.Enums = append(r.Enums, Enum{
				Value: facet.Attr("", "value"),
				Doc:   childAnnotationText(facet),
			})
		case "pattern":
			if r.Pattern != "" {
				return nil, &UnsupportedError{Construct: "multiple xs:pattern facets", In: where}
			}
			r.Pattern = facet.Attr("", "value")
		default:
			if ignoredFacets[facet.Name.Local] {
				continue
			}
			return nil, &UnsupportedError{Construct: "xs:" + facet.Name.Local, In: where}
		}
	}
	return r, nil
}

func parseList(el *xmldoc.Element, where string) (*List, error) {
	l := &List{}
	if item := el.Attr("", "itemType"); item != "" {
		l.ItemType = el.Resolve(item)
	}
	if inline := el.Find(SchemaNS, "simpleType"); inline != nil {
		item, err := parseSimpleType(inline, "")
		if err != nil {
			return nil, err
		}
		l.Item = item
	}
	if l.ItemType == (xml.Name{}) && l.Item == nil {
		return nil, &UnsupportedError{Construct: "xs:list without an item type", In: where}
	}
	return l, nil
}

func parseComplexType(el *xmldoc.Element, name string) (*ComplexType, error) {
	ct := &ComplexType{Name: name}
	where := name
	if where == "" {
		where = "anonymous complexType"
	}
	if mixed := el.Attr("", "mixed"); mixed == "true" || mixed == "1" {
		return nil, &UnsupportedError{Construct: "mixed content", In: where}
	}
	for _, child := range el.Children {
		switch child.Name.Local {
		case "annotation":
			ct.Doc = joinDoc(ct.Doc, annotationText(child))
		case "simpleContent":
			if err := parseSimpleContent(child, ct, where); err != nil {
				return nil, err
			}
		case "complexContent":
			if err := parseComplexContent(child, ct, where); err != nil {
				return nil, err
			}
		case "sequence", "choice":
			if ct.Particle != nil {
				return nil, &UnsupportedError{Construct: "multiple content particles", In: where}
			}
			p, err := parseParticle(child, where)
			if err != nil {
				return nil, err
			}
			ct.Particle = p
		case "attribute", "attributeGroup":
			term, err := parseAttrTerm(child, where)
			if err != nil {
				return nil, err
			}
			ct.Attrs = append(ct.Attrs, term)
		default:
			return nil, &UnsupportedError{Construct: "xs:" + child.Name.Local, In: where}
		}
	}
	return ct, nil
}

// parseSimpleContent handles <xs:simpleContent><xs:extension base=…>.
// The extension's attributes join the type; its base becomes the text
// content type.
func parseSimpleContent(el *xmldoc.Element, ct *ComplexType, where string) error {
	ext := el.Find(SchemaNS, "extension")
	if ext == nil {
		return &UnsupportedError{Construct: "xs:simpleContent without extension", In: where}
	}
	base := ext.Attr("", "base")
	if base == "" {
		return &UnsupportedError{Construct: "extension without base", In: where}
	}
	ct.SimpleBase = ext.Resolve(base)
	for _, child := range ext.Children {
		switch child.Name.Local {
		case "annotation":
		case "attribute", "attributeGroup":
			term, err := parseAttrTerm(child, where)
			if err != nil {
				return err
			}
			ct.Attrs = append(ct.Attrs, term)
		default:
			return &UnsupportedError{Construct: "xs:" + child.Name.Local, In: where}
		}
	}
	return nil
}

// parseComplexContent handles <xs:complexContent><xs:extension base=…>.
// The base is recorded as a supertype reference; the extension body is
// parsed like a plain complex type body.
func parseComplexContent(el *xmldoc.Element, ct *ComplexType, where string) error {
	ext := el.Find(SchemaNS, "extension")
	if ext == nil {
		return &UnsupportedError{Construct: "xs:complexContent without extension", In: where}
	}
	base := ext.Attr("", "base")
	if base == "" {
		return &UnsupportedError{Construct: "extension without base", In: where}
	}
	ct.Base = ext.Resolve(base)
	for _, child := range ext.Children {
		switch child.Name.Local {
		case "annotation":
		case "sequence", "choice":
			if ct.Particle != nil {
				return &UnsupportedError{Construct: "multiple content particles", In: where}
			}
			p, err := parseParticle(child, where)
			if err != nil {
				return err
			}
			ct.Particle = p
		case "attribute", "attributeGroup":
			term, err := parseAttrTerm(child, where)
			if err != nil {
				return err
			}
			ct.Attrs = append(ct.Attrs, term)
		default:
			return &UnsupportedError{Construct: "xs:" + child.Name.Local, In: where}
		}
	}
	return nil
}

func parseParticle(el *xmldoc.Element, where string) (*Particle, error) {
	p := &Particle{}
	if el.Name.Local == "choice" {
		p.Kind = Choice
	}
	for _, child := range el.Children {
		switch child.Name.Local {
		case "annotation":
		case "element":
			le, err := parseLocalElement(child, where)
			if err != nil {
				return nil, err
			}
			p.Terms = append(p.Terms, Term{Element: le})
		case "sequence", "choice":
			nested, err := parseParticle(child, where)
			if err != nil {
				return nil, err
			}
			p.Terms = append(p.Terms, Term{Group: nested})
		case "any":
			p.Terms = append(p.Terms, Term{Any: true})
		default:
			return nil, &UnsupportedError{Construct: "xs:" + child.Name.Local, In: where}
		}
	}
	return p, nil
}

func parseLocalElement(el *xmldoc.Element, where string) (*LocalElement, error) {
	le := &LocalElement{Doc: childAnnotationText(el)}
	if ref := el.Attr("", "ref"); ref != "" {
		le.Ref = el.Resolve(ref)
		le.Name = le.Ref.Local
		return le, nil
	}
	le.Name = el.Attr("", "name")
	if le.Name == "" {
		return nil, &UnsupportedError{Construct: "element without name or ref", In: where}
	}
	if typ := el.Attr("", "type"); typ != "" {
		le.Type = el.Resolve(typ)
	}
	if inline := el.Find(SchemaNS, "complexType"); inline != nil {
		ct, err := parseComplexType(inline, "")
		if err != nil {
			return nil, err
		}
		le.Inline = ct
	}
	return le, nil
}

func parseAttrTerm(el *xmldoc.Element, where string) (AttrTerm, error) {
	if el.Name.Local == "attributeGroup" {
		ref := el.Attr("", "ref")
		if ref == "" {
			return AttrTerm{}, &UnsupportedError{Construct: "nested attributeGroup declaration", In: where}
		}
		return AttrTerm{GroupRef: el.Resolve(ref)}, nil
	}
	attr, err := parseAttribute(el, where)
	if err != nil {
		return AttrTerm{}, err
	}
	return AttrTerm{Attribute: attr}, nil
}

func parseAttribute(el *xmldoc.Element, where string) (*Attribute, error) {
	a := &Attribute{
		Name: el.Attr("", "name"),
		Doc:  childAnnotationText(el),
	}
	if a.Name == "" {
		return nil, &UnsupportedError{Construct: "attribute without name", In: where}
	}
	switch use := el.Attr("", "use"); use {
	case "", "optional":
	case "required":
		a.Required = true
	default:
		return nil, &UnsupportedError{Construct: "attribute use=" + use, In: where + "/@" + a.Name}
	}
	if typ := el.Attr("", "type"); typ != "" {
		a.Type = el.Resolve(typ)
	}
	if inline := el.Find(SchemaNS, "simpleType"); inline != nil {
		st, err := parseSimpleType(inline, "")
		if err != nil {
			return nil, err
		}
		a.Inline = st
	}
	return a, nil
}

func parseAttrGroup(el *xmldoc.Element) (*AttrGroup, error) {
	g := &AttrGroup{Name: el.Attr("", "name")}
	if g.Name == "" {
		return nil, &UnsupportedError{Construct: "attributeGroup without name", In: "schema"}
	}
	for _, child := range el.Children {
		switch child.Name.Local {
		case "annotation":
			g.Doc = joinDoc(g.Doc, annotationText(child))
		case "attribute", "attributeGroup":
			term, err := parseAttrTerm(child, g.Name)
			if err != nil {
				return nil, err
			}
			g.Attrs = append(g.Attrs, term)
		default:
			return nil, &UnsupportedError{Construct: "xs:" + child.Name.Local, In: g.Name}
		}
	}
	return g, nil
}

func parseElement(el *xmldoc.Element) (*Element, error) {
	decl := &Element{
		Name: el.Attr("", "name"),
		Doc:  childAnnotationText(el),
	}
	if decl.Name == "" {
		return nil, &UnsupportedError{Construct: "element without name", In: "schema"}
	}
	if typ := el.Attr("", "type"); typ != "" {
		decl.Type = el.Resolve(typ)
	}
	if inline := el.Find(SchemaNS, "complexType"); inline != nil {
		ct, err := parseComplexType(inline, "")
		if err != nil {
			return nil, err
		}
		decl.Inline = ct
	}
	if decl.Type != (xml.Name{}) && decl.Inline != nil {
		return nil, &UnsupportedError{Construct: "element with both type and inline type", In: decl.Name}
	}
	return decl, nil
}

// annotationText collects the xs:documentation text of one annotation
// element, joining multiple documentation blocks with blank lines.
func annotationText(el *xmldoc.Element) string {
	var doc string
	for _, child := range el.Children {
		if (child.Name == xml.Name{Space: SchemaNS, Local: "documentation"}) {
			doc = joinDoc(doc, strings.TrimSpace(child.Text))
		}
	}
	return doc
}

// childAnnotationText returns documentation text of a declaration's
// annotation child, if any.
func childAnnotationText(el *xmldoc.Element) string {
	if ann := el.Find(SchemaNS, "annotation"); ann != nil {
		return annotationText(ann)
	}
	return ""
}

func joinDoc(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + "\n\n" + b
}
