package model

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestModelAdd(t *testing.T) {
	m := New("urn:deploy")
	task := &Class{Name: "TaskType"}
	if err := m.Add(task); err != nil {
		t.Fatal(err)
	}
	if err := m.Add(&Enum{Name: "RestartPolicy"}); err != nil {
		t.Fatal(err)
	}
	if err := m.AddAlias("Task", task); err != nil {
		t.Fatal(err)
	}

	var dup *DuplicateError
	if err := m.Add(&Class{Name: "TaskType"}); !errors.As(err, &dup) || dup.Name != "TaskType" {
		t.Errorf("re-adding TaskType: %v", err)
	}
	if err := m.Add(&Class{Name: "Task"}); !errors.As(err, &dup) {
		t.Errorf("adding a definition over an alias: %v", err)
	}
	if err := m.AddAlias("RestartPolicy", task); !errors.As(err, &dup) {
		t.Errorf("adding an alias over a definition: %v", err)
	}
	if err := m.AddAlias("Task", task); !errors.As(err, &dup) {
		t.Errorf("re-adding alias Task: %v", err)
	}
}

func TestModelLookups(t *testing.T) {
	m := New("urn:deploy")
	task := &Class{Name: "TaskType"}
	m.Add(task)
	m.Add(&Enum{Name: "RestartPolicy"})
	m.AddAlias("Task", task)

	if got := m.ClassFor("TaskType"); got != task {
		t.Errorf("ClassFor(TaskType) = %v", got)
	}
	if got := m.ClassFor("Task"); got != task {
		t.Errorf("ClassFor(Task) = %v", got)
	}
	if got := m.ClassFor("RestartPolicy"); got != nil {
		t.Errorf("ClassFor(RestartPolicy) = %v, want nil", got)
	}
	if got := m.ClassFor("Absent"); got != nil {
		t.Errorf("ClassFor(Absent) = %v, want nil", got)
	}
	if got := len(m.Defs()); got != 2 {
		t.Errorf("Defs() has %d entries, want 2", got)
	}
	if got := m.Aliases(); len(got) != 1 || got[0] != "Task" {
		t.Errorf("Aliases() = %v", got)
	}
}

func TestDefsOrder(t *testing.T) {
	m := New("urn:deploy")
	names := []string{"Zeta", "Alpha", "Mu"}
	for _, name := range names {
		m.Add(&Class{Name: name})
	}
	for i, def := range m.Defs() {
		if DefName(def) != names[i] {
			t.Errorf("Defs()[%d] = %s, want %s", i, DefName(def), names[i])
		}
	}
}

func TestCapability(t *testing.T) {
	c := SchemaElement | SettableAttributes | ParentOfChildren
	if !c.Has(SchemaElement | ParentOfChildren) {
		t.Error("Has missed set flags")
	}
	if c.Has(ChildFactory) {
		t.Error("Has reported an unset flag")
	}
	if got := c.String(); got != "SchemaElement|SettableAttributes|ParentOfChildren" {
		t.Errorf("String() = %q", got)
	}
	if got := Capability(0).String(); got != "none" {
		t.Errorf("zero String() = %q", got)
	}
}

func TestCollectionClassFor(t *testing.T) {
	envVar := &Class{Name: "EnvVarType"}
	volume := &Class{Name: "VolumeType"}
	shadow := &Class{Name: "ShadowType"}
	col := &ElementCollection{
		Kind: Sequence,
		Items: []Item{
			&ChildItem{Name: "EnvVar", Class: envVar},
			&GroupItem{Collection: &ElementCollection{
				Kind: Choice,
				Items: []Item{
					&ChildItem{Name: "Volume", Class: volume},
					&ChildItem{Name: "EnvVar", Class: shadow},
					&WildcardItem{},
				},
			}},
		},
	}

	if got := col.ClassFor("Volume"); got != volume {
		t.Errorf("ClassFor(Volume) = %v", got)
	}
	// first declared match wins over the nested duplicate
	if got := col.ClassFor("EnvVar"); got != envVar {
		t.Errorf("ClassFor(EnvVar) = %v", got)
	}
	if got := col.ClassFor("Absent"); got != nil {
		t.Errorf("ClassFor(Absent) = %v, want nil", got)
	}
	if !col.HasWildcard() {
		t.Error("HasWildcard() = false")
	}
	flat := &ElementCollection{Kind: Sequence, Items: []Item{
		&ChildItem{Name: "EnvVar", Class: envVar},
	}}
	if flat.HasWildcard() {
		t.Error("HasWildcard() = true for a collection without wildcards")
	}
}

func TestClassProperties(t *testing.T) {
	c := &Class{
		Name: "EnvVarType",
		Properties: []*Property{
			{Name: "Name", Type: String, Required: true},
			{Name: "Content", Type: String, Text: true},
		},
	}
	if p := c.Property("Name"); p == nil || !p.Required {
		t.Errorf("Property(Name) = %+v", p)
	}
	if p := c.Property("Absent"); p != nil {
		t.Errorf("Property(Absent) = %+v", p)
	}
	if p := c.ContentProperty(); p == nil || p.Name != "Content" {
		t.Errorf("ContentProperty() = %+v", p)
	}
}

func TestEncodeJSON(t *testing.T) {
	m := New("urn:deploy")
	restart := &Enum{Name: "RestartPolicy"}
	restart.Add("never", "")
	restart.Add("always", "")
	m.Add(restart)

	envVar := &Class{
		Name:         "EnvVarType",
		Capabilities: SchemaElement | SettableAttributes,
		Properties: []*Property{
			{Name: "Name", Type: String, Required: true},
			{Name: "Content", Type: String, Text: true},
		},
	}
	m.Add(envVar)

	task := &Class{
		Name:         "TaskType",
		Capabilities: SchemaElement | SettableAttributes | ParentOfChildren | ChildFactory,
		Properties: []*Property{
			{Name: "Restart", Type: restart},
		},
		Children: &ElementCollection{
			Kind: Sequence,
			Items: []Item{
				&ChildItem{Name: "EnvVar", Class: envVar},
				&WildcardItem{},
			},
		},
	}
	m.Add(task)
	m.AddAlias("Env", envVar)

	var buf bytes.Buffer
	if err := m.EncodeJSON(&buf); err != nil {
		t.Fatal(err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	for _, want := range []string{
		`"targetNamespace": "urn:deploy"`,
		`"kind": "enum"`,
		`"name": "RestartPolicy"`,
		`"value": 2`,
		`"capabilities": [`,
		`"ChildFactory"`,
		`"element": "EnvVar"`,
		`"any": true`,
		`"text": true`,
		`"element": "Env"`,
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %s\n%s", want, buf.String())
		}
	}
}
