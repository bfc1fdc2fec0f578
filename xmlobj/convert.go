package xmlobj

import (
	"fmt"
	"strconv"
	"time"

	"arvoren.net/strongxml/model"
)

// TimeLayout is the document form of timestamp values. The layout is
// fixed; other layouts and time zone suffixes are not accepted.
const TimeLayout = "2006-01-02T15:04:05"

// parseValue converts a document string to a property's typed value:
// string, bool, int64 or time.Time. Enumeration values never fail;
// unrecognized tokens store their sentinel instead.
func parseValue(p *model.Property, s string) (interface{}, error) {
	switch t := p.Type.(type) {
	case model.Primitive:
		switch t {
		case model.String:
			return s, nil
		case model.Bool:
			switch s {
			case "true", "1":
				return true, nil
			case "false", "0":
				return false, nil
			}
			return nil, fmt.Errorf("xmlobj: %s: %q is not a boolean", p.Name, s)
		case model.Int:
			n, err := strconv.ParseInt(s, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("xmlobj: %s: %q is not an int", p.Name, s)
			}
			return n, nil
		case model.Long:
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("xmlobj: %s: %q is not a long", p.Name, s)
			}
			return n, nil
		case model.Timestamp:
			ts, err := time.Parse(TimeLayout, s)
			if err != nil {
				return nil, fmt.Errorf("xmlobj: %s: %q is not a timestamp", p.Name, s)
			}
			return ts, nil
		}
	case *model.Enum:
		n, _ := t.TryParse(s)
		return n, nil
	}
	return nil, fmt.Errorf("xmlobj: %s has an unmapped property type", p.Name)
}

// formatValue renders a typed value in document form.
func formatValue(p *model.Property, v interface{}) string {
	switch t := p.Type.(type) {
	case model.Primitive:
		switch t {
		case model.String:
			return v.(string)
		case model.Bool:
			if v.(bool) {
				return "true"
			}
			return "false"
		case model.Int, model.Long:
			return strconv.FormatInt(v.(int64), 10)
		case model.Timestamp:
			return v.(time.Time).Format(TimeLayout)
		}
	case *model.Enum:
		return t.Format(v.(int64))
	}
	return ""
}
