// Package testutil contains common utility functions for unit tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// Envelope wraps schema declaration markup in a complete schema document.
// The xs prefix is bound to the XML Schema namespace and the tns prefix
// to the target namespace, so declarations can reference both.
func Envelope(targetNS, decls string) []byte {
	const doc = `<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           xmlns:tns="%s"
           targetNamespace="%s">
%s
</xs:schema>`
	return []byte(fmt.Sprintf(doc, targetNS, targetNS, decls))
}

// WriteTemp writes data to a file under a test-scoped temporary
// directory and returns its path. The file is removed with the test's
// temporary directory.
func WriteTemp(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0666); err != nil {
		t.Fatal(err)
	}
	return path
}
