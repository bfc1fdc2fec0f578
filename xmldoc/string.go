package xmldoc

import (
	"bytes"
	"text/template"
)

var dumpTmpl = template.Must(template.New("dump").Parse(
	`{{define "el"}}<{{.Name.Local}}{{range .Attrs}} {{.Name.Local}}="{{.Value}}"{{end}}>{{.Text}}{{range .Children}}{{template "el" .}}{{end}}</{{.Name.Local}}>{{end}}`))

// String renders the element and its children without namespace
// declarations or escaping. It is meant for test failures and debug logs,
// not for producing well-formed documents; use the xmlobj package to write
// real XML.
func (el *Element) String() string {
	var buf bytes.Buffer
	if err := dumpTmpl.ExecuteTemplate(&buf, "el", el); err != nil {
		return "nil (" + err.Error() + ")"
	}
	return buf.String()
}
