package theme

import (
	"fmt"
	"sort"
)

// FromMap builds a theme from a decoded figure file section.
//
// Map values become elements; the string "blank" makes a blank element;
// numbers, strings and two-element lists are scalar properties. A base
// key selects the theme the values are layered on (gray or void).
func FromMap(m map[string]any) (*Theme, error) {
	base := Gray()
	if v, ok := m["base"]; ok {
		switch v {
		case "gray", "grey":
		case "void":
			base = Void()
		default:
			return nil, fmt.Errorf("unknown base theme %v", v)
		}
	}

	t := New()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, name := range keys {
		if name == "base" {
			continue
		}
		if !Known(name) {
			return nil, fmt.Errorf("unknown themeable %q", name)
		}
		switch v := m[name].(type) {
		case map[string]any:
			e, err := elementFromMap(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			t.SetElement(name, e)
		case string:
			if v == "blank" {
				t.SetElement(name, ElementBlank())
			} else {
				t.Set(name, v)
			}
		default:
			if f, ok := toFloat(v); ok {
				t.Set(name, f)
			} else if p, ok := toPair(v); ok {
				t.Set(name, p)
			} else {
				return nil, fmt.Errorf("%s: unsupported value %v", name, v)
			}
		}
	}
	return base.Add(t), nil
}

func elementFromMap(m map[string]any) (Element, error) {
	var e Element
	for k, v := range m {
		switch k {
		case "blank":
			b, ok := v.(bool)
			if !ok {
				return e, fmt.Errorf("blank must be a boolean")
			}
			e.Blank = b
		case "family", "color", "colour", "fill", "ha", "va":
			s, ok := v.(string)
			if !ok {
				f, isNum := toFloat(v)
				if !isNum || (k != "ha" && k != "va") {
					return e, fmt.Errorf("%s must be a string", k)
				}
				s = fmt.Sprint(f)
			}
			switch k {
			case "family":
				e.Family = &s
			case "color", "colour":
				e.Color = &s
			case "fill":
				e.Fill = &s
			case "ha":
				if _, err := HAFraction(s); err != nil {
					return e, err
				}
				e.HA = &s
			case "va":
				if _, err := VAFraction(s); err != nil {
					return e, err
				}
				e.VA = &s
			}
		case "size", "rotation", "angle":
			f, ok := toFloat(v)
			if !ok {
				return e, fmt.Errorf("%s must be a number", k)
			}
			if k == "size" {
				e.Size = &f
			} else {
				e.Rotation = &f
			}
		case "margin":
			mm, ok := v.(map[string]any)
			if !ok {
				return e, fmt.Errorf("margin must be a table")
			}
			margin, err := marginFromMap(mm)
			if err != nil {
				return e, err
			}
			e.Margin = &margin
		default:
			return e, fmt.Errorf("unknown element property %q", k)
		}
	}
	return e, nil
}

func marginFromMap(m map[string]any) (Margin, error) {
	var out Margin
	for k, v := range m {
		if k == "unit" {
			s, _ := v.(string)
			switch s {
			case "pt", "in", "lines", "fig":
				out.Unit = s
			default:
				return out, fmt.Errorf("unknown margin unit %v", v)
			}
			continue
		}
		f, ok := toFloat(v)
		if !ok {
			return out, fmt.Errorf("margin %s must be a number", k)
		}
		switch k {
		case "t":
			out.T = f
		case "r":
			out.R = f
		case "b":
			out.B = f
		case "l":
			out.L = f
		default:
			return out, fmt.Errorf("unknown margin side %q", k)
		}
	}
	return out, nil
}
