// Package lint provides static analysis for framework documents.
// It detects broken conditional widget configuration without evaluating any entry.
package lint

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/the-deep/widgetcond/pkg/conditional"
)

// Issue represents a problem found during static analysis.
type Issue struct {
	Severity string `json:"severity"` // "error", "warning"
	Widget   string `json:"widget,omitempty"`
	Variant  string `json:"variant,omitempty"`
	Message  string `json:"message"`
}

// Result contains all issues found by the linter.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`
}

// HasWarnings reports whether any warning was emitted.
func (r *Result) HasWarnings() bool {
	return slices.ContainsFunc(r.Issues, func(i Issue) bool { return i.Severity == "warning" })
}

// document is the subset of a framework document the linter reads.
type document struct {
	Widgets []conditional.WidgetInstance `json:"widgets"`
}

// Run performs static analysis on a framework document.
// A nil registry selects the built-in condition catalogs.
func Run(jsonText string, registry *conditional.Registry) (*Result, error) {
	var doc document
	if err := json.Unmarshal([]byte(jsonText), &doc); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if registry == nil {
		var err error
		registry, err = conditional.NewDefaultRegistry()
		if err != nil {
			return nil, err
		}
	}

	result := &Result{
		Valid:  true,
		Issues: make([]Issue, 0),
	}

	// Check 1: Widget keys must identify exactly one instance
	byKey := make(map[string]conditional.WidgetInstance, len(doc.Widgets))
	for _, w := range doc.Widgets {
		if _, dup := byKey[w.Key]; dup {
			result.addError(w.Key, "", fmt.Sprintf("widget key '%s' is used more than once", w.Key))
			continue
		}
		byKey[w.Key] = w
	}

	for _, w := range doc.Widgets {
		if w.WidgetType != conditional.ConditionalWidget {
			continue
		}
		var data conditional.ConditionalData
		if err := w.Properties.Data.Decode(&data); err != nil {
			result.addError(w.Key, "", fmt.Sprintf("conditional widget cannot be decoded: %v", err))
			continue
		}
		checkConditional(result, registry, byKey, w.Key, data)
	}

	return result, nil
}

func checkConditional(result *Result, registry *conditional.Registry, byKey map[string]conditional.WidgetInstance, key string, data conditional.ConditionalData) {
	// Check 2: Variant keys and the default widget
	seen := make(map[string]bool, len(data.Widgets))
	for _, v := range data.Widgets {
		if seen[v.Widget.Key] {
			result.addError(key, v.Widget.Key, fmt.Sprintf("variant key '%s' is used more than once", v.Widget.Key))
		}
		seen[v.Widget.Key] = true
	}
	if data.DefaultWidget != "" && !seen[data.DefaultWidget] {
		result.addError(key, "", fmt.Sprintf("default widget '%s' is not one of the variants", data.DefaultWidget))
	}

	// Check 3: Authoring validation of every condition list
	for _, err := range registry.ValidateConditional(key, data) {
		result.addError(key, err.Variant, fmt.Sprintf("condition %d: %s", err.Index, err.Message))
	}

	compatible := registry.CompatibleWidgetTypes()
	for _, v := range data.Widgets {
		if len(v.Conditions.List) == 0 {
			// The default widget is reached through the fallback
			if v.Widget.Key != data.DefaultWidget {
				result.addWarning(key, v.Widget.Key, "variant has no conditions and is never active")
			}
			continue
		}
		for i, entry := range v.Conditions.List {
			checkEntry(result, registry, byKey, compatible, key, v.Widget.Key, i, entry)
		}
	}
}

func checkEntry(result *Result, registry *conditional.Registry, byKey map[string]conditional.WidgetInstance,
	compatible []conditional.WidgetType, key, variant string, i int, entry conditional.ConditionEntry) {
	// Check 4: Source widget resolves, is not the conditional itself and matches the condition's type
	source, ok := byKey[entry.WidgetKey]
	if !ok {
		result.addError(key, variant, fmt.Sprintf("condition %d: widget '%s' does not exist", i, entry.WidgetKey))
		return
	}
	if source.Key == key {
		result.addError(key, variant, fmt.Sprintf("condition %d: conditional widget refers to itself", i))
		return
	}
	if source.WidgetType != entry.WidgetType {
		result.addError(key, variant, fmt.Sprintf("condition %d: widget '%s' is a %s, not a %s",
			i, entry.WidgetKey, source.WidgetType, entry.WidgetType))
	}
	if !slices.Contains(compatible, source.WidgetType) {
		result.addError(key, variant, fmt.Sprintf("condition %d: %s does not support conditions", i, source.WidgetType))
		return
	}

	def, ok := registry.Lookup(entry.WidgetType, entry.ConditionType)
	if !ok {
		// Already reported by authoring validation
		return
	}

	// Check 5: Conditions that are advertised but never evaluated
	if def.Test == nil {
		result.addWarning(key, variant, fmt.Sprintf("condition %d: %s.%s is never satisfied",
			i, entry.WidgetType, entry.ConditionType))
	}

	// Check 6: Configured selections exist among the source widget's options
	for _, spec := range def.Attributes {
		if spec.Options == nil {
			continue
		}
		options := spec.Options(source.Properties.Data)
		if len(options) == 0 {
			continue
		}
		for _, selected := range configuredKeys(entry.Attributes, spec) {
			if !slices.ContainsFunc(options, func(o conditional.Option) bool { return o.Key == selected }) {
				result.addWarning(key, variant, fmt.Sprintf("condition %d: '%s' is not an option of %s",
					i, selected, spec.Key))
			}
		}
	}

	// Check 7: Range bounds follow the source widget's option order
	checkBounds(result, def, source, key, variant, i, entry)
}

// orderedBounds pairs the lower and upper attribute of option ranges.
var orderedBounds = [][2]string{{"lowerScale", "upperScale"}}

func checkBounds(result *Result, def conditional.Definition, source conditional.WidgetInstance,
	key, variant string, i int, entry conditional.ConditionEntry) {
	for _, bounds := range orderedBounds {
		var lower, upper *conditional.AttributeSpec
		for j := range def.Attributes {
			switch def.Attributes[j].Key {
			case bounds[0]:
				lower = &def.Attributes[j]
			case bounds[1]:
				upper = &def.Attributes[j]
			}
		}
		if lower == nil || upper == nil || lower.Options == nil {
			continue
		}
		options := lower.Options(source.Properties.Data)
		position := func(k string) int {
			return slices.IndexFunc(options, func(o conditional.Option) bool { return o.Key == k })
		}
		lo, hi := position(entry.Attributes.String(lower.Key)), position(entry.Attributes.String(upper.Key))
		if lo >= 0 && hi >= 0 && lo > hi {
			result.addError(key, variant, fmt.Sprintf("condition %d: %s is above %s", i, lower.Key, upper.Key))
		}
	}
}

func configuredKeys(attributes conditional.Data, spec conditional.AttributeSpec) []string {
	if spec.Type == conditional.AttrMultiselect {
		return attributes.Strings(spec.Key)
	}
	if s := attributes.String(spec.Key); s != "" {
		return []string{s}
	}
	return nil
}

func (r *Result) addError(widget, variant, message string) {
	r.Valid = false
	r.Issues = append(r.Issues, Issue{
		Severity: "error",
		Widget:   widget,
		Variant:  variant,
		Message:  message,
	})
}

func (r *Result) addWarning(widget, variant, message string) {
	r.Issues = append(r.Issues, Issue{
		Severity: "warning",
		Widget:   widget,
		Variant:  variant,
		Message:  message,
	})
}
