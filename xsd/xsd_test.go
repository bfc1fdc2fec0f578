package xsd

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"testing"
)

const deployNS = "http://arvoren.net/schemas/deploy"

const deploySchema = `<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           xmlns:dep="http://arvoren.net/schemas/deploy"
           targetNamespace="http://arvoren.net/schemas/deploy">
  <xs:annotation>
    <xs:documentation>Deployment manifest schema.</xs:documentation>
  </xs:annotation>
  <xs:simpleType name="RestartPolicy">
    <xs:annotation>
      <xs:documentation>When a failed task is started again.</xs:documentation>
    </xs:annotation>
    <xs:restriction base="xs:string">
      <xs:enumeration value="never"/>
      <xs:enumeration value="onFailure">
        <xs:annotation>
          <xs:documentation>Restart only after a failure.</xs:documentation>
        </xs:annotation>
      </xs:enumeration>
      <xs:enumeration value="always"/>
    </xs:restriction>
  </xs:simpleType>
  <xs:simpleType name="Identifier">
    <xs:restriction base="xs:string">
      <xs:whiteSpace value="collapse"/>
      <xs:pattern value="[a-z][a-z0-9-]*"/>
    </xs:restriction>
  </xs:simpleType>
  <xs:simpleType name="Capabilities">
    <xs:list>
      <xs:simpleType>
        <xs:restriction base="xs:string">
          <xs:enumeration value="network"/>
          <xs:enumeration value="storage"/>
        </xs:restriction>
      </xs:simpleType>
    </xs:list>
  </xs:simpleType>
  <xs:simpleType name="PortOrName">
    <xs:union memberTypes="xs:integer dep:Identifier"/>
  </xs:simpleType>
  <xs:attributeGroup name="CommonAttributes">
    <xs:attribute name="Id" type="dep:Identifier" use="required"/>
    <xs:attribute name="Comment" type="xs:string"/>
  </xs:attributeGroup>
  <xs:complexType name="TaskType">
    <xs:annotation>
      <xs:documentation>One unit of deployable work.</xs:documentation>
    </xs:annotation>
    <xs:sequence>
      <xs:element ref="dep:EnvVar"/>
      <xs:choice>
        <xs:element name="Volume" type="dep:VolumeType"/>
        <xs:any/>
      </xs:choice>
    </xs:sequence>
    <xs:attributeGroup ref="dep:CommonAttributes"/>
    <xs:attribute name="Restart" type="dep:RestartPolicy"/>
    <xs:attribute name="Retries" type="xs:integer"/>
  </xs:complexType>
  <xs:complexType name="EnvVarType">
    <xs:simpleContent>
      <xs:extension base="xs:string">
        <xs:attribute name="Name" type="xs:string" use="required"/>
      </xs:extension>
    </xs:simpleContent>
  </xs:complexType>
  <xs:complexType name="VolumeType">
    <xs:complexContent>
      <xs:extension base="dep:MountType">
        <xs:sequence>
          <xs:element name="Option" type="xs:string"/>
        </xs:sequence>
        <xs:attribute name="ReadOnly" type="xs:boolean"/>
      </xs:extension>
    </xs:complexContent>
  </xs:complexType>
  <xs:element name="EnvVar" type="dep:EnvVarType"/>
  <xs:element name="Manifest">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="Task" type="dep:TaskType"/>
      </xs:sequence>
      <xs:attribute name="Version" type="xs:string"/>
    </xs:complexType>
  </xs:element>
  <xs:element name="Marker"/>
</xs:schema>`

func parseSchema(t *testing.T, doc string) *Schema {
	t.Helper()
	s, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return s
}

func TestParseSchema(t *testing.T) {
	s := parseSchema(t, deploySchema)
	if s.TargetNS != deployNS {
		t.Errorf("target namespace %q, want %q", s.TargetNS, deployNS)
	}
	if s.Doc != "Deployment manifest schema." {
		t.Errorf("schema doc %q", s.Doc)
	}
	if len(s.SimpleTypes) != 4 {
		t.Fatalf("parsed %d simple types, want 4", len(s.SimpleTypes))
	}
	if len(s.ComplexTypes) != 3 {
		t.Fatalf("parsed %d complex types, want 3", len(s.ComplexTypes))
	}
	if len(s.Elements) != 3 {
		t.Fatalf("parsed %d elements, want 3", len(s.Elements))
	}
	if len(s.AttrGroups) != 1 {
		t.Fatalf("parsed %d attribute groups, want 1", len(s.AttrGroups))
	}
}

func TestParseSimpleTypes(t *testing.T) {
	s := parseSchema(t, deploySchema)

	restart := s.SimpleTypes[0]
	if restart.Name != "RestartPolicy" {
		t.Fatalf("first simple type is %q", restart.Name)
	}
	if restart.Doc != "When a failed task is started again." {
		t.Errorf("RestartPolicy doc %q", restart.Doc)
	}
	r := restart.Restriction
	if r == nil {
		t.Fatal("RestartPolicy has no restriction")
	}
	if (r.Base != xml.Name{Space: SchemaNS, Local: "string"}) {
		t.Errorf("RestartPolicy base %v", r.Base)
	}
	var values []string
	for _, e := range r.Enums {
		values = append(values, e.Value)
	}
	if got, want := strings.Join(values, " "), "never onFailure always"; got != want {
		t.Errorf("enum values %q, want %q", got, want)
	}
	if r.Enums[1].Doc != "Restart only after a failure." {
		t.Errorf("onFailure doc %q", r.Enums[1].Doc)
	}

	ident := s.SimpleTypes[1]
	if ident.Restriction == nil || ident.Restriction.Pattern != "[a-z][a-z0-9-]*" {
		t.Errorf("Identifier pattern not parsed: %+v", ident.Restriction)
	}

	caps := s.SimpleTypes[2]
	if caps.List == nil || caps.List.Item == nil {
		t.Fatalf("Capabilities list not parsed: %+v", caps)
	}
	if n := len(caps.List.Item.Restriction.Enums); n != 2 {
		t.Errorf("Capabilities item has %d enums, want 2", n)
	}

	union := s.SimpleTypes[3]
	want := []xml.Name{{Space: SchemaNS, Local: "integer"}, {Space: deployNS, Local: "Identifier"}}
	if len(union.Union) != 2 || union.Union[0] != want[0] || union.Union[1] != want[1] {
		t.Errorf("PortOrName members %v, want %v", union.Union, want)
	}
}

func TestParseComplexTypes(t *testing.T) {
	s := parseSchema(t, deploySchema)

	task := s.ComplexTypes[0]
	if task.Name != "TaskType" {
		t.Fatalf("first complex type is %q", task.Name)
	}
	if task.Doc != "One unit of deployable work." {
		t.Errorf("TaskType doc %q", task.Doc)
	}
	if len(task.Attrs) != 3 {
		t.Fatalf("TaskType has %d attribute terms, want 3", len(task.Attrs))
	}
	if (task.Attrs[0].GroupRef != xml.Name{Space: deployNS, Local: "CommonAttributes"}) {
		t.Errorf("first attr term %+v, want CommonAttributes group ref", task.Attrs[0])
	}
	if a := task.Attrs[1].Attribute; a == nil || a.Name != "Restart" || (a.Type != xml.Name{Space: deployNS, Local: "RestartPolicy"}) {
		t.Errorf("second attr term %+v", task.Attrs[1])
	}
	if task.Particle == nil || task.Particle.Kind != Sequence {
		t.Fatalf("TaskType particle %+v", task.Particle)
	}
	terms := task.Particle.Terms
	if len(terms) != 2 {
		t.Fatalf("TaskType has %d particle terms, want 2", len(terms))
	}
	if el := terms[0].Element; el == nil || el.Name != "EnvVar" || (el.Ref != xml.Name{Space: deployNS, Local: "EnvVar"}) {
		t.Errorf("first term %+v, want EnvVar ref", terms[0])
	}
	inner := terms[1].Group
	if inner == nil || inner.Kind != Choice || len(inner.Terms) != 2 {
		t.Fatalf("nested choice %+v", inner)
	}
	if el := inner.Terms[0].Element; el == nil || el.Name != "Volume" || (el.Type != xml.Name{Space: deployNS, Local: "VolumeType"}) {
		t.Errorf("choice element %+v", inner.Terms[0])
	}
	if !inner.Terms[1].Any {
		t.Error("choice wildcard not parsed")
	}

	envVar := s.ComplexTypes[1]
	if (envVar.SimpleBase != xml.Name{Space: SchemaNS, Local: "string"}) {
		t.Errorf("EnvVarType simple base %v", envVar.SimpleBase)
	}
	if len(envVar.Attrs) != 1 || envVar.Attrs[0].Attribute == nil || !envVar.Attrs[0].Attribute.Required {
		t.Errorf("EnvVarType attrs %+v", envVar.Attrs)
	}

	volume := s.ComplexTypes[2]
	if (volume.Base != xml.Name{Space: deployNS, Local: "MountType"}) {
		t.Errorf("VolumeType base %v", volume.Base)
	}
	if volume.Particle == nil || len(volume.Particle.Terms) != 1 {
		t.Errorf("VolumeType particle %+v", volume.Particle)
	}
	if len(volume.Attrs) != 1 || volume.Attrs[0].Attribute.Name != "ReadOnly" {
		t.Errorf("VolumeType attrs %+v", volume.Attrs)
	}
}

func TestParseElements(t *testing.T) {
	s := parseSchema(t, deploySchema)

	envVar := s.Elements[0]
	if envVar.Name != "EnvVar" || (envVar.Type != xml.Name{Space: deployNS, Local: "EnvVarType"}) || envVar.Inline != nil {
		t.Errorf("EnvVar element %+v", envVar)
	}

	manifest := s.Elements[1]
	if manifest.Name != "Manifest" || manifest.Inline == nil {
		t.Fatalf("Manifest element %+v", manifest)
	}
	if manifest.Inline.Particle == nil || len(manifest.Inline.Attrs) != 1 {
		t.Errorf("Manifest inline type %+v", manifest.Inline)
	}

	marker := s.Elements[2]
	if marker.Type != (xml.Name{}) || marker.Inline != nil {
		t.Errorf("Marker element %+v", marker)
	}
}

func TestParseAttrGroup(t *testing.T) {
	s := parseSchema(t, deploySchema)
	g := s.AttrGroups[0]
	if g.Name != "CommonAttributes" {
		t.Fatalf("group name %q", g.Name)
	}
	if len(g.Attrs) != 2 {
		t.Fatalf("group has %d terms, want 2", len(g.Attrs))
	}
	if a := g.Attrs[0].Attribute; a == nil || a.Name != "Id" || !a.Required {
		t.Errorf("group term %+v", g.Attrs[0])
	}
}

func TestParseUnsupported(t *testing.T) {
	const envelope = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
		targetNamespace="http://arvoren.net/schemas/deploy">%s</xs:schema>`
	tests := []struct {
		name      string
		body      string
		construct string
	}{
		{"import", `<xs:import namespace="urn:other"/>`, "xs:import"},
		{"include", `<xs:include schemaLocation="other.xsd"/>`, "xs:include"},
		{"elementGroup", `<xs:group name="g"><xs:sequence/></xs:group>`, "xs:group"},
		{"all", `<xs:complexType name="T"><xs:all/></xs:complexType>`, "xs:all"},
		{"anyAttribute", `<xs:complexType name="T"><xs:anyAttribute/></xs:complexType>`, "xs:anyAttribute"},
		{"mixed", `<xs:complexType name="T" mixed="true"><xs:sequence/></xs:complexType>`, "mixed content"},
		{"simpleRestriction", `<xs:complexType name="T"><xs:simpleContent>
			<xs:restriction base="xs:string"/></xs:simpleContent></xs:complexType>`,
			"xs:simpleContent without extension"},
		{"doublePattern", `<xs:simpleType name="S"><xs:restriction base="xs:string">
			<xs:pattern value="a"/><xs:pattern value="b"/></xs:restriction></xs:simpleType>`,
			"multiple xs:pattern facets"},
		{"namelessElement", `<xs:complexType name="T"><xs:sequence>
			<xs:element type="xs:string"/></xs:sequence></xs:complexType>`,
			"element without name or ref"},
		{"prohibitedAttr", `<xs:complexType name="T">
			<xs:attribute name="a" use="prohibited"/></xs:complexType>`,
			"attribute use=prohibited"},
		{"emptyList", `<xs:simpleType name="S"><xs:list/></xs:simpleType>`,
			"xs:list without an item type"},
		{"twoParticles", `<xs:complexType name="T"><xs:sequence/><xs:choice/></xs:complexType>`,
			"multiple content particles"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(fmt.Sprintf(envelope, tt.body)))
			var unsupported *UnsupportedError
			if !errors.As(err, &unsupported) {
				t.Fatalf("got %v, want *UnsupportedError", err)
			}
			if unsupported.Construct != tt.construct {
				t.Errorf("construct %q, want %q", unsupported.Construct, tt.construct)
			}
		})
	}
}

func TestParseNotASchema(t *testing.T) {
	if _, err := Parse([]byte(`<manifest xmlns="urn:x"/>`)); err == nil {
		t.Error("parsing a non-schema document succeeded")
	}
	if _, err := Parse([]byte(`<xs:schema xmlns:xs="urn:wrong"/>`)); err == nil {
		t.Error("parsing a document in the wrong namespace succeeded")
	}
}
