package conditional

import (
	"slices"
	"strings"
)

// organigramNode is one flattened node of an organigram tree.
type organigramNode struct {
	ID      string
	Label   string
	Parents []string
}

// flattenOrganigram walks the tree in pre-order. Labels carry the ancestor
// path ("Root / Child") and Parents lists ancestor ids from the root down.
func flattenOrganigram(root Data) []organigramNode {
	var out []organigramNode
	var walk func(node Data, labels, parents []string)
	walk = func(node Data, labels, parents []string) {
		id, ok := asKey(node.Get("key"))
		if !ok {
			return
		}
		path := append(slices.Clone(labels), node.String("title"))
		out = append(out, organigramNode{
			ID:      id,
			Label:   strings.Join(path, " / "),
			Parents: slices.Clone(parents),
		})
		children := append(slices.Clone(parents), id)
		for _, child := range node.List("organs") {
			walk(child, path, children)
		}
	}
	if root != nil {
		walk(root, nil, nil)
	}
	return out
}

func organigramOptions(config Data) []Option {
	nodes := flattenOrganigram(config)
	out := make([]Option, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, Option{Key: n.ID, Label: n.Label})
	}
	return out
}

func organigramConditions() Catalog {
	selections := []AttributeSpec{
		{Key: "selections", Title: "Organs", Type: AttrMultiselect, Options: organigramOptions},
	}

	return Catalog{
		{Key: "isEqualTo", Definition: Definition{
			Title:      "Is equal to",
			Attributes: selections,
			Test:       isSelectedTest,
		}},
		{Key: "isDescendentOf", Definition: Definition{
			Title:      "Is descendent of",
			Attributes: selections,
			Test: func(value, attributes, config Data) bool {
				configured := attributes.Strings("selections")
				nodes := make(map[string]organigramNode)
				for _, n := range flattenOrganigram(config) {
					nodes[n.ID] = n
				}
				return TestMultiSelect(func(selected string) bool {
					node, ok := nodes[selected]
					if !ok {
						return false
					}
					return slices.ContainsFunc(node.Parents, func(parent string) bool {
						return slices.Contains(configured, parent)
					})
				}, selectedKeys(value))
			},
		}},
	}
}
