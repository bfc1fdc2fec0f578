package xmlobj

import (
	"bufio"
	"encoding/xml"
	"errors"
	"io"
)

var errAttrPlacement = errors.New("xmlobj: attribute written outside a start tag")

// A Writer emits XML one token at a time. Errors stick: after a write
// fails, further calls return the same error, so OutputXML
// implementations can chain calls and check once.
type Writer struct {
	bw   *bufio.Writer
	open bool // a start tag still accepts attributes
	err  error
}

// NewWriter returns a Writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

func (w *Writer) closeStart() {
	if w.open {
		w.open = false
		_, w.err = w.bw.WriteString(">")
	}
}

// StartElement opens an element. Attributes may be written until the
// next token.
func (w *Writer) StartElement(name string) error {
	if w.err != nil {
		return w.err
	}
	w.closeStart()
	if w.err == nil {
		_, w.err = w.bw.WriteString("<" + name)
		w.open = true
	}
	return w.err
}

// Attribute writes one attribute of the open start tag.
func (w *Writer) Attribute(name, value string) error {
	if w.err != nil {
		return w.err
	}
	if !w.open {
		w.err = errAttrPlacement
		return w.err
	}
	if _, w.err = w.bw.WriteString(" " + name + `="`); w.err != nil {
		return w.err
	}
	if w.err = xml.EscapeText(w.bw, []byte(value)); w.err != nil {
		return w.err
	}
	_, w.err = w.bw.WriteString(`"`)
	return w.err
}

// Text writes escaped character data.
func (w *Writer) Text(s string) error {
	if w.err != nil {
		return w.err
	}
	w.closeStart()
	if w.err == nil {
		w.err = xml.EscapeText(w.bw, []byte(s))
	}
	return w.err
}

// EndElement closes the named element, collapsing it to an empty-element
// tag when nothing was written since StartElement.
func (w *Writer) EndElement(name string) error {
	if w.err != nil {
		return w.err
	}
	if w.open {
		w.open = false
		_, w.err = w.bw.WriteString("/>")
		return w.err
	}
	_, w.err = w.bw.WriteString("</" + name + ">")
	return w.err
}

// Flush writes buffered output to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.bw.Flush()
	return w.err
}
