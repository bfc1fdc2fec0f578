package model

import "testing"

func colorEnum() *Enum {
	e := &Enum{Name: "ColorType"}
	e.Add("Red", "")
	e.Add("Green", "")
	e.Add("Blue", "")
	return e
}

func capsEnum() *Enum {
	e := &Enum{Name: "CapabilitySet"}
	e.SetFlags()
	e.Add("network", "")
	e.Add("storage", "")
	e.Add("gpu", "")
	return e
}

func TestEnumNumbering(t *testing.T) {
	e := colorEnum()
	want := []int64{2, 3, 4}
	for i, v := range e.Values {
		if v.Value != want[i] {
			t.Errorf("%s = %d, want %d", v.Name, v.Value, want[i])
		}
	}
	if NotSet != 0 || IllegalValue != 1 {
		t.Errorf("sentinels NotSet=%d IllegalValue=%d", NotSet, IllegalValue)
	}
}

func TestFlagNumbering(t *testing.T) {
	e := capsEnum()
	want := []int64{1, 2, 4}
	for i, v := range e.Values {
		if v.Value != want[i] {
			t.Errorf("%s = %d, want %d", v.Name, v.Value, want[i])
		}
	}
}

func TestSetFlagsRenumbers(t *testing.T) {
	e := colorEnum()
	e.SetFlags()
	want := []int64{1, 2, 4}
	for i, v := range e.Values {
		if v.Value != want[i] {
			t.Errorf("after SetFlags, %s = %d, want %d", v.Name, v.Value, want[i])
		}
	}
}

func TestSetFlagsIdempotent(t *testing.T) {
	e := capsEnum()
	before := append([]EnumValue(nil), e.Values...)
	e.SetFlags()
	e.SetFlags()
	for i, v := range e.Values {
		if v != before[i] {
			t.Errorf("SetFlags changed %s: %+v -> %+v", v.Name, before[i], v)
		}
	}
}

func TestEnumParse(t *testing.T) {
	e := colorEnum()
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"Red", 2, false},
		{"Green", 3, false},
		{"Blue", 4, false},
		{"Purple", IllegalValue, true},
		{"", IllegalValue, true},
		{"red", IllegalValue, true},
	}
	for _, tt := range tests {
		got, err := e.Parse(tt.in)
		if got != tt.want || (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) = %d, %v; want %d, err=%v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
	if _, err := capsEnum().Parse("network"); err == nil {
		t.Error("Parse on a flag set succeeded")
	}
}

func TestEnumTryParse(t *testing.T) {
	e := colorEnum()
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"Green", 3, true},
		{"Purple", IllegalValue, false},
		{"", IllegalValue, false},
	}
	for _, tt := range tests {
		if got, ok := e.TryParse(tt.in); got != tt.want || ok != tt.ok {
			t.Errorf("TryParse(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFlagTryParse(t *testing.T) {
	e := capsEnum()
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"network", 1, true},
		{"network storage", 3, true},
		{"storage network", 3, true},
		{"network network", 1, true},
		{"network bogus", 1, true},
		{"bogus", None, false},
		{"", None, false},
		{"  ", None, false},
	}
	for _, tt := range tests {
		if got, ok := e.TryParse(tt.in); got != tt.want || ok != tt.ok {
			t.Errorf("TryParse(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestEnumFormat(t *testing.T) {
	e := colorEnum()
	tests := []struct {
		in   int64
		want string
	}{
		{2, "Red"},
		{3, "Green"},
		{NotSet, ""},
		{IllegalValue, ""},
		{99, ""},
	}
	for _, tt := range tests {
		if got := e.Format(tt.in); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFlagFormat(t *testing.T) {
	e := capsEnum()
	tests := []struct {
		in   int64
		want string
	}{
		{1, "network"},
		{3, "network storage"},
		{7, "network storage gpu"},
		{None, ""},
	}
	for _, tt := range tests {
		if got := e.Format(tt.in); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFlagRoundTrip(t *testing.T) {
	e := capsEnum()
	for _, in := range []string{"network", "storage gpu", "network storage gpu"} {
		n, ok := e.TryParse(in)
		if !ok {
			t.Fatalf("TryParse(%q) failed", in)
		}
		if out := e.Format(n); out != in {
			t.Errorf("round trip %q -> %d -> %q", in, n, out)
		}
	}
}
