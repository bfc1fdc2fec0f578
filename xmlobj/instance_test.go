package xmlobj

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"arvoren.net/strongxml/model"
)

// Hand-built classes standing in for a compiled deployment schema.
var (
	levelEnum   = newLevelEnum()
	featureEnum = newFeatureEnum()

	hostClass = &model.Class{
		Name:         "HostType",
		Capabilities: model.SchemaElement | model.SettableAttributes,
		Properties: []*model.Property{
			{Name: "Name", Type: model.String, Required: true},
			{Name: "Port", Type: model.Int},
			{Name: "Timeout", Type: model.Long},
			{Name: "Secure", Type: model.Bool},
			{Name: "Started", Type: model.Timestamp},
			{Name: "Level", Type: levelEnum},
			{Name: "Features", Type: featureEnum},
		},
	}

	noteClass = &model.Class{
		Name:         "NoteType",
		Capabilities: model.SchemaElement | model.SettableAttributes,
		Properties: []*model.Property{
			{Name: "Author", Type: model.String},
			{Name: "Content", Type: model.String, Text: true},
		},
	}

	markerClass = &model.Class{
		Name:         "Marker",
		Capabilities: model.SchemaElement,
	}

	clusterClass = &model.Class{
		Name: "ClusterType",
		Capabilities: model.SchemaElement | model.SettableAttributes |
			model.ParentOfChildren | model.ChildFactory,
		Properties: []*model.Property{
			{Name: "Name", Type: model.String},
		},
		Children: &model.ElementCollection{
			Kind: model.Sequence,
			Items: []model.Item{
				&model.ChildItem{Name: "Host", Class: hostClass},
				&model.GroupItem{Collection: &model.ElementCollection{
					Kind: model.Choice,
					Items: []model.Item{
						&model.ChildItem{Name: "Marker", Class: markerClass},
						&model.WildcardItem{},
					},
				}},
			},
		},
	}
)

func newLevelEnum() *model.Enum {
	e := &model.Enum{Name: "LevelType"}
	e.Add("info", "")
	e.Add("warn", "")
	e.Add("error", "")
	return e
}

func newFeatureEnum() *model.Enum {
	e := &model.Enum{Name: "FeatureSet"}
	e.SetFlags()
	e.Add("logging", "")
	e.Add("metrics", "")
	e.Add("tracing", "")
	return e
}

func TestSetAttributeConversions(t *testing.T) {
	tests := []struct {
		attr  string
		value string
		want  interface{}
		bad   bool
	}{
		{attr: "Name", value: "web-1", want: "web-1"},
		{attr: "Port", value: "8080", want: int64(8080)},
		{attr: "Port", value: "999999999999", bad: true},
		{attr: "Port", value: "80a", bad: true},
		{attr: "Timeout", value: "9223372036854775807", want: int64(9223372036854775807)},
		{attr: "Timeout", value: "twelve", bad: true},
		{attr: "Secure", value: "true", want: true},
		{attr: "Secure", value: "1", want: true},
		{attr: "Secure", value: "false", want: false},
		{attr: "Secure", value: "0", want: false},
		{attr: "Secure", value: "yes", bad: true},
		{attr: "Started", value: "2026-03-14T09:26:53",
			want: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)},
		{attr: "Started", value: "2026-03-14", bad: true},
		{attr: "Level", value: "warn", want: int64(3)},
		{attr: "Level", value: "fatal", want: model.IllegalValue},
		{attr: "Features", value: "logging tracing", want: int64(5)},
		{attr: "Features", value: "bogus", want: model.None},
	}
	for _, tt := range tests {
		inst := NewInstance(hostClass, "", nil)
		err := inst.SetAttribute(tt.attr, tt.value)
		if tt.bad {
			if err == nil {
				t.Errorf("SetAttribute(%s, %q) succeeded, want error", tt.attr, tt.value)
			}
			continue
		}
		if err != nil {
			t.Errorf("SetAttribute(%s, %q): %v", tt.attr, tt.value, err)
			continue
		}
		got, ok := inst.Value(tt.attr)
		if !ok {
			t.Errorf("SetAttribute(%s, %q) stored nothing", tt.attr, tt.value)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SetAttribute(%s, %q) stored %v (%T), want %v (%T)",
				tt.attr, tt.value, got, got, tt.want, tt.want)
		}
	}
}

func TestSetAttributeUnknownName(t *testing.T) {
	inst := NewInstance(hostClass, "", nil)
	if err := inst.SetAttribute("Color", "red"); err != nil {
		t.Fatalf("unknown attribute returned %v, want silence", err)
	}
	if _, ok := inst.Value("Color"); ok {
		t.Error("unknown attribute was stored")
	}
}

func TestAttrDocumentForm(t *testing.T) {
	inst := NewInstance(hostClass, "", nil)
	inst.SetAttribute("Port", "8080")
	inst.SetAttribute("Started", "2026-03-14T09:26:53")
	inst.SetAttribute("Level", "warn")
	inst.SetAttribute("Features", "metrics tracing")

	tests := []struct {
		attr string
		want string
		ok   bool
	}{
		{"Port", "8080", true},
		{"Started", "2026-03-14T09:26:53", true},
		{"Level", "warn", true},
		{"Features", "metrics tracing", true},
		{"Timeout", "", false},
		{"Color", "", false},
	}
	for _, tt := range tests {
		got, ok := inst.Attr(tt.attr)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Attr(%s) = %q, %v; want %q, %v", tt.attr, got, ok, tt.want, tt.ok)
		}
	}

	// values stored as sentinels have no document form
	inst.SetAttribute("Level", "fatal")
	if got, ok := inst.Attr("Level"); !ok || got != "" {
		t.Errorf("Attr(Level) after illegal value = %q, %v; want \"\", true", got, ok)
	}
}

func TestCapabilityGates(t *testing.T) {
	var capErr *CapabilityError

	marker := NewInstance(markerClass, "", nil)
	if err := marker.SetAttribute("Name", "x"); !errors.As(err, &capErr) {
		t.Fatalf("SetAttribute on %s returned %v, want CapabilityError", markerClass.Name, err)
	}
	if capErr.Need != model.SettableAttributes {
		t.Errorf("SetAttribute error needs %v, want SettableAttributes", capErr.Need)
	}

	host := NewInstance(hostClass, "", nil)
	if err := host.AddChild(marker); !errors.As(err, &capErr) {
		t.Errorf("AddChild on %s returned %v, want CapabilityError", hostClass.Name, err)
	}
	if err := host.RemoveChild(marker); !errors.As(err, &capErr) {
		t.Errorf("RemoveChild on %s returned %v, want CapabilityError", hostClass.Name, err)
	}
	if _, err := host.CreateChild("Marker"); !errors.As(err, &capErr) {
		t.Errorf("CreateChild on %s returned %v, want CapabilityError", hostClass.Name, err)
	}
}

func TestAddRemoveChild(t *testing.T) {
	cluster := NewInstance(clusterClass, "", nil)
	host := NewInstance(hostClass, "Host", nil)

	if err := cluster.AddChild(host); err != nil {
		t.Fatal(err)
	}
	if host.Parent() != SchemaElement(cluster) {
		t.Error("AddChild did not adopt the child")
	}
	if got := cluster.Children(); len(got) != 1 || got[0] != SchemaElement(host) {
		t.Errorf("Children = %v", got)
	}
	if got := host.Parent().(*Instance); got.Class() != clusterClass {
		t.Errorf("parent resolves to %s", got.Class().Name)
	}

	if err := cluster.RemoveChild(host); err != nil {
		t.Fatal(err)
	}
	if host.Parent() != nil {
		t.Error("RemoveChild did not orphan the child")
	}
	if got := cluster.Children(); len(got) != 0 {
		t.Errorf("Children after removal = %v", got)
	}
	if err := cluster.RemoveChild(host); err == nil {
		t.Error("removing a child twice succeeded")
	}
}

func TestChildrenNamed(t *testing.T) {
	cluster := NewInstance(clusterClass, "", nil)
	cluster.AddChild(NewInstance(hostClass, "Host", nil))
	cluster.AddChild(NewInstance(hostClass, "Host", nil))
	cluster.AddChild(NewInstance(markerClass, "Marker", nil))

	if got := cluster.ChildrenNamed("Host"); len(got) != 2 {
		t.Errorf("ChildrenNamed(Host) = %d children, want 2", len(got))
	}
	if got := cluster.ChildrenNamed("Marker"); len(got) != 1 {
		t.Errorf("ChildrenNamed(Marker) = %d children, want 1", len(got))
	}
	if got := cluster.ChildrenNamed("Nothing"); len(got) != 0 {
		t.Errorf("ChildrenNamed(Nothing) = %d children, want 0", len(got))
	}
}

func TestCreateChild(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Extra", func() SchemaElement {
		return NewInstance(markerClass, "Extra", nil)
	})
	cluster := NewInstance(clusterClass, "Cluster", reg)

	host, err := cluster.CreateChild("Host")
	if err != nil {
		t.Fatal(err)
	}
	if host.(*Instance).Class() != hostClass {
		t.Errorf("CreateChild(Host) built a %s", host.(*Instance).Class().Name)
	}
	if host.Parent() != SchemaElement(cluster) {
		t.Error("CreateChild did not adopt the child")
	}

	// Marker sits in a nested choice
	if _, err := cluster.CreateChild("Marker"); err != nil {
		t.Errorf("CreateChild(Marker): %v", err)
	}

	// the wildcard slot admits registered names
	extra, err := cluster.CreateChild("Extra")
	if err != nil {
		t.Fatalf("CreateChild(Extra): %v", err)
	}
	if got := extra.(*Instance).ElementName(); got != "Extra" {
		t.Errorf("wildcard child is named %s", got)
	}

	var unknown *UnknownChildError
	if _, err := cluster.CreateChild("Bogus"); !errors.As(err, &unknown) {
		t.Fatalf("CreateChild(Bogus) returned %v, want UnknownChildError", err)
	}
	if unknown.Parent != "ClusterType" || unknown.Name != "Bogus" {
		t.Errorf("UnknownChildError = %+v", unknown)
	}

	if got := cluster.Children(); len(got) != 3 {
		t.Errorf("cluster has %d children, want 3", len(got))
	}

	// without a registry the wildcard admits nothing
	bare := NewInstance(clusterClass, "", nil)
	if _, err := bare.CreateChild("Extra"); !errors.As(err, &unknown) {
		t.Errorf("CreateChild(Extra) without registry returned %v", err)
	}
}

func TestMarshalInstanceTree(t *testing.T) {
	cluster := NewInstance(clusterClass, "Cluster", nil)
	cluster.SetAttribute("Name", "prod")

	host := NewInstance(hostClass, "Host", nil)
	host.SetAttribute("Port", "8080")
	host.SetAttribute("Name", "web-1")
	cluster.AddChild(host)

	note := NewInstance(noteClass, "Note", nil)
	note.SetAttribute("Content", "rotated certs")
	note.SetAttribute("Author", "ops")
	cluster.AddChild(note)

	cluster.AddChild(NewInstance(markerClass, "Marker", nil))

	out, err := Marshal(cluster)
	if err != nil {
		t.Fatal(err)
	}
	// attributes come out in declaration order, children in add order
	want := `<Cluster Name="prod">` +
		`<Host Name="web-1" Port="8080"/>` +
		`<Note Author="ops">rotated certs</Note>` +
		`<Marker/>` +
		`</Cluster>`
	if string(out) != want {
		t.Errorf("marshalled %s\nwant       %s", out, want)
	}
}
