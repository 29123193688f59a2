package conditional

import (
	"slices"
)

// matrixHeader is a row or column of a matrix widget with its nested children
// (matrix1d cells, matrix2d subdimensions and subsectors).
type matrixHeader struct {
	Key      string
	Title    string
	Children []Option
}

func decodeHeaders(config Data, listKey, childKey string) []matrixHeader {
	var headers []matrixHeader
	for _, item := range config.List(listKey) {
		key, ok := asKey(item.Get("key"))
		if !ok {
			continue
		}
		h := matrixHeader{Key: key, Title: item.String("title")}
		for _, child := range item.List(childKey) {
			ck, ok := asKey(child.Get("key"))
			if !ok {
				continue
			}
			label := child.String("title")
			if label == "" {
				label = child.String("value")
			}
			h.Children = append(h.Children, Option{Key: ck, Label: label})
		}
		headers = append(headers, h)
	}
	return headers
}

func headerOptions(listKey, childKey string) func(Data) []Option {
	return func(config Data) []Option {
		headers := decodeHeaders(config, listKey, childKey)
		out := make([]Option, 0, len(headers))
		for _, h := range headers {
			out = append(out, Option{Key: h.Key, Label: h.Title})
		}
		return out
	}
}

func childOptions(listKey, childKey string) func(Data) []Option {
	return func(config Data) []Option {
		var out []Option
		for _, h := range decodeHeaders(config, listKey, childKey) {
			for _, c := range h.Children {
				out = append(out, Option{Key: c.Key, Label: h.Title + " / " + c.Label})
			}
		}
		return out
	}
}

// matrix1dConditions have no evaluation yet; the pillar comparison of a
// matrix1d value (pillar -> subpillar -> bool) was never defined.
func matrix1dConditions() Catalog {
	return Catalog{
		{Key: "containsPillar", Definition: Definition{
			Title: "Contains pillar",
			Attributes: []AttributeSpec{
				{Key: "pillar", Title: "Pillar", Type: AttrSelect, Options: headerOptions("rows", "cells")},
			},
		}},
		{Key: "containsSubpillar", Definition: Definition{
			Title: "Contains subpillar",
			Attributes: []AttributeSpec{
				{Key: "subpillar", Title: "Subpillar", Type: AttrSelect, Options: childOptions("rows", "cells")},
			},
		}},
	}
}

// matrix2dValue walks the dimension -> subdimension -> sector -> subsectors map.
type matrix2dValue Data

func (m matrix2dValue) hasDimension(key string) bool {
	return !doesObjectHaveNoKey(Data(m).Object(key))
}

func (m matrix2dValue) hasSubdimension(key string) bool {
	for dim := range m {
		if !doesObjectHaveNoKey(Data(m).Object(dim).Object(key)) {
			return true
		}
	}
	return false
}

func (m matrix2dValue) hasSector(key string) bool {
	for dim := range m {
		subdims := Data(m).Object(dim)
		for subdim := range subdims {
			if subdims.Object(subdim).Has(key) {
				return true
			}
		}
	}
	return false
}

func (m matrix2dValue) hasSubsector(key string) bool {
	for dim := range m {
		subdims := Data(m).Object(dim)
		for subdim := range subdims {
			sectors := subdims.Object(subdim)
			for sector := range sectors {
				if slices.Contains(sectors.Strings(sector), key) {
					return true
				}
			}
		}
	}
	return false
}

func matrix2dConditions() Catalog {
	contains := func(attrKey string, has func(matrix2dValue, string) bool) TestFunc {
		return func(value, attributes, _ Data) bool {
			m := matrix2dValue(value.Object("value"))
			return TestMultiSelect(func(key string) bool {
				return has(m, key)
			}, attributes.Strings(attrKey))
		}
	}

	return Catalog{
		{Key: "containsDimension", Definition: Definition{
			Title: "Contains dimension",
			Attributes: []AttributeSpec{
				{Key: "dimensions", Title: "Dimensions", Type: AttrMultiselect, Options: headerOptions("dimensions", "subdimensions")},
			},
			Test: contains("dimensions", matrix2dValue.hasDimension),
		}},
		{Key: "containsSubdimension", Definition: Definition{
			Title: "Contains subdimension",
			Attributes: []AttributeSpec{
				{Key: "subdimensions", Title: "Subdimensions", Type: AttrMultiselect, Options: childOptions("dimensions", "subdimensions")},
			},
			Test: contains("subdimensions", matrix2dValue.hasSubdimension),
		}},
		{Key: "containsSector", Definition: Definition{
			Title: "Contains sector",
			Attributes: []AttributeSpec{
				{Key: "sectors", Title: "Sectors", Type: AttrMultiselect, Options: headerOptions("sectors", "subsectors")},
			},
			Test: contains("sectors", matrix2dValue.hasSector),
		}},
		{Key: "containsSubsector", Definition: Definition{
			Title: "Contains subsector",
			Attributes: []AttributeSpec{
				{Key: "subsectors", Title: "Subsectors", Type: AttrMultiselect, Options: childOptions("sectors", "subsectors")},
			},
			Test: contains("subsectors", matrix2dValue.hasSubsector),
		}},
	}
}
