package model

import (
	"io"

	"github.com/goccy/go-json"
)

// The JSON form of a model mirrors its definitions one to one. It exists
// for inspection and for consumers in other languages; EncodeJSON and the
// modeldump command produce it.

type jsonModel struct {
	TargetNS    string        `json:"targetNamespace"`
	Doc         string        `json:"doc,omitempty"`
	Definitions []interface{} `json:"definitions"`
	Aliases     []jsonAlias   `json:"aliases,omitempty"`
}

type jsonAlias struct {
	Element string `json:"element"`
	Class   string `json:"class"`
}

type jsonClass struct {
	Kind         string          `json:"kind"`
	Name         string          `json:"name"`
	Doc          string          `json:"doc,omitempty"`
	Base         string          `json:"base,omitempty"`
	Capabilities []string        `json:"capabilities"`
	Properties   []jsonProperty  `json:"properties,omitempty"`
	Children     *jsonCollection `json:"children,omitempty"`
	Enums        []jsonEnum      `json:"enums,omitempty"`
}

type jsonProperty struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required,omitempty"`
	Text     bool   `json:"text,omitempty"`
	Doc      string `json:"doc,omitempty"`
}

type jsonCollection struct {
	Kind  string     `json:"kind"`
	Items []jsonItem `json:"items"`
}

type jsonItem struct {
	Element string          `json:"element,omitempty"`
	Class   string          `json:"class,omitempty"`
	Group   *jsonCollection `json:"group,omitempty"`
	Any     bool            `json:"any,omitempty"`
}

type jsonEnum struct {
	Kind   string          `json:"kind,omitempty"`
	Name   string          `json:"name"`
	Doc    string          `json:"doc,omitempty"`
	Flags  bool            `json:"flags,omitempty"`
	Values []jsonEnumValue `json:"values"`
}

type jsonEnumValue struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
	Doc   string `json:"doc,omitempty"`
}

// EncodeJSON writes the model as indented JSON, definitions in
// registration order.
func (m *Model) EncodeJSON(w io.Writer) error {
	doc := jsonModel{
		TargetNS:    m.TargetNS,
		Doc:         m.Doc,
		Definitions: []interface{}{},
	}
	for _, def := range m.Defs() {
		switch d := def.(type) {
		case *Class:
			doc.Definitions = append(doc.Definitions, classJSON(d))
		case *Enum:
			doc.Definitions = append(doc.Definitions, enumJSON(d, "enum"))
		}
	}
	for _, name := range m.Aliases() {
		doc.Aliases = append(doc.Aliases, jsonAlias{
			Element: name,
			Class:   m.AliasTarget(name).Name,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(doc)
}

func classJSON(c *Class) jsonClass {
	out := jsonClass{
		Kind:         "class",
		Name:         c.Name,
		Doc:          c.Doc,
		Capabilities: c.Capabilities.Names(),
	}
	if c.Base != nil {
		out.Base = c.Base.Name
	}
	for _, p := range c.Properties {
		jp := jsonProperty{
			Name:     p.Name,
			Required: p.Required,
			Text:     p.Text,
			Doc:      p.Doc,
		}
		switch t := p.Type.(type) {
		case Primitive:
			jp.Type = t.String()
		case *Enum:
			jp.Type = t.Name
		}
		out.Properties = append(out.Properties, jp)
	}
	if c.Children != nil {
		out.Children = collectionJSON(c.Children)
	}
	for _, e := range c.Enums {
		out.Enums = append(out.Enums, enumJSON(e, ""))
	}
	return out
}

func collectionJSON(c *ElementCollection) *jsonCollection {
	out := &jsonCollection{Kind: c.Kind.String(), Items: []jsonItem{}}
	for _, item := range c.Items {
		switch item := item.(type) {
		case *ChildItem:
			out.Items = append(out.Items, jsonItem{
				Element: item.Name,
				Class:   item.Class.Name,
			})
		case *GroupItem:
			out.Items = append(out.Items, jsonItem{
				Group: collectionJSON(item.Collection),
			})
		case *WildcardItem:
			out.Items = append(out.Items, jsonItem{Any: true})
		}
	}
	return out
}

func enumJSON(e *Enum, kind string) jsonEnum {
	out := jsonEnum{
		Kind:   kind,
		Name:   e.Name,
		Doc:    e.Doc,
		Flags:  e.Flags,
		Values: []jsonEnumValue{},
	}
	for _, v := range e.Values {
		out.Values = append(out.Values, jsonEnumValue{
			Name:  v.Name,
			Value: v.Value,
			Doc:   v.Doc,
		})
	}
	return out
}
