package conditional

import (
	"slices"
	"strings"
)

// configOptions reads the {key, label} option list of select-like widgets.
func configOptions(config Data) []Option {
	items := config.List("options")
	out := make([]Option, 0, len(items))
	for _, item := range items {
		key, ok := asKey(item.Get("key"))
		if !ok {
			continue
		}
		out = append(out, Option{Key: key, Label: item.String("label")})
	}
	return out
}

// selectedKeys reads an entry value that may hold a single key or a list of keys.
func selectedKeys(value Data) []string {
	raw := value.Get("value")
	if key, ok := asKey(raw); ok {
		return []string{key}
	}
	return asStrings(raw)
}

// isSelectedTest matches when any configured selection is among the entry's keys.
func isSelectedTest(value, attributes, _ Data) bool {
	keys := selectedKeys(value)
	return TestMultiSelect(func(s string) bool {
		return slices.Contains(keys, s)
	}, attributes.Strings("selections"))
}

func geoConditions() Catalog {
	return Catalog{
		{Key: "isSelected", Definition: Definition{
			Title: "Is selected",
			Attributes: []AttributeSpec{
				{Key: "selections", Title: "Locations", Type: AttrGeo},
			},
			Test: isSelectedTest,
		}},
	}
}

func selectConditions() Catalog {
	return Catalog{
		{Key: "isSelected", Definition: Definition{
			Title: "Is selected",
			Attributes: []AttributeSpec{
				{Key: "selections", Title: "Options", Type: AttrMultiselect, Options: configOptions},
			},
			Test: isSelectedTest,
		}},
	}
}

func multiselectConditions() Catalog {
	return Catalog{
		{Key: "isSelected", Definition: Definition{
			Title: "Is selected",
			Attributes: []AttributeSpec{
				{Key: "selections", Title: "Options", Type: AttrMultiselect, Options: configOptions},
			},
			Test: isSelectedTest,
		}},
	}
}

func textConditions() Catalog {
	return Catalog{
		{Key: "isFilled", Definition: Definition{
			Title: "Is filled",
			Test: func(value, _, _ Data) bool {
				return strings.TrimSpace(value.String("value")) != ""
			},
		}},
		{Key: "textContains", Definition: Definition{
			Title: "Contains",
			Attributes: []AttributeSpec{
				{Key: "text", Title: "Text", Type: AttrText},
			},
			Test: func(value, attributes, _ Data) bool {
				text := value.String("value")
				if text == "" {
					return false
				}
				return strings.Contains(strings.ToLower(text), strings.ToLower(attributes.String("text")))
			},
		}},
	}
}

// numberConditions are advertised to the authoring UI but have no agreed
// comparison semantics yet, so they carry no Test and never match.
func numberConditions() Catalog {
	single := []AttributeSpec{{Key: "value", Title: "Value", Type: AttrNumber}}
	return Catalog{
		{Key: "isLessThan", Definition: Definition{
			Title:      "Is less than",
			Attributes: single,
		}},
		{Key: "isGreaterThan", Definition: Definition{
			Title:      "Is greater than",
			Attributes: single,
		}},
	}
}
