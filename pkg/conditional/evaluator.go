package conditional

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Evaluator checks condition lists against an entry. It holds no per-entry
// state and is safe for concurrent use.
type Evaluator struct {
	registry *Registry
	logger   *zap.Logger
}

// NewEvaluator creates an evaluator backed by registry.
func NewEvaluator(registry *Registry, settings ...Setting) *Evaluator {
	opts := applySettings(settings)
	return &Evaluator{
		registry: registry,
		logger:   opts.logger,
	}
}

// Registry returns the registry the evaluator dispatches through.
func (e *Evaluator) Registry() *Registry {
	return e.registry
}

// CheckConditions evaluates a condition list in order.
// An empty list is false for every operator. AND stops at the first false,
// OR at the first true and XOR at the second true; conditions after that
// point are never tested.
func (e *Evaluator) CheckConditions(conditions ConditionList, globals []WidgetInstance, attrs EntryAttributes) bool {
	if len(conditions.List) == 0 {
		return false
	}

	operator := conditions.EffectiveOperator()
	switch operator {
	case OperatorAnd, OperatorOr, OperatorXor:
	default:
		e.logger.Warn("unknown condition operator", zap.String("operator", string(operator)))
		return false
	}

	onceTrue := false
	for i, entry := range conditions.List {
		evaluation, resolved := e.evaluate(i, entry, globals, attrs)
		if entry.InvertLogic {
			evaluation = !evaluation
		}
		// A deleted source widget hides the variant whatever the inversion
		if !resolved {
			evaluation = false
		}

		switch operator {
		case OperatorAnd:
			if !evaluation {
				return false
			}
		case OperatorOr:
			if evaluation {
				return true
			}
		case OperatorXor:
			if evaluation {
				if onceTrue {
					return false
				}
				onceTrue = true
			}
		}
	}

	switch operator {
	case OperatorAnd:
		return true
	case OperatorXor:
		return onceTrue
	default:
		return false
	}
}

// evaluate runs one condition's test. Anything that cannot be resolved is a
// non-match; resolved is false when the source widget is missing.
func (e *Evaluator) evaluate(i int, entry ConditionEntry, globals []WidgetInstance, attrs EntryAttributes) (result, resolved bool) {
	source, ok := findWidget(globals, entry.WidgetKey)
	if !ok {
		e.logger.Warn("condition refers to a missing widget",
			zap.Int("index", i),
			zap.String("widgetKey", entry.WidgetKey))
		return false, false
	}

	def, ok := e.registry.Lookup(entry.WidgetType, entry.ConditionType)
	if !ok {
		e.logger.Warn("condition cannot be evaluated",
			zap.Int("index", i),
			zap.String("widget", string(entry.WidgetType)),
			zap.String("condition", string(entry.ConditionType)))
		return false, true
	}
	if def.Test == nil {
		// Already reported once by NewRegistry
		e.logger.Debug("condition has no test",
			zap.Int("index", i),
			zap.String("widget", string(entry.WidgetType)),
			zap.String("condition", string(entry.ConditionType)))
		return false, true
	}

	value := attrs[source.ID].Data
	if value == nil {
		value = Data{}
	}
	attributes := entry.Attributes
	if attributes == nil {
		attributes = Data{}
	}
	config := source.Properties.Data
	if config == nil {
		config = Data{}
	}

	return def.Test(value, attributes, config), true
}

func findWidget(globals []WidgetInstance, key string) (WidgetInstance, bool) {
	for _, w := range globals {
		if w.Key == key {
			return w, true
		}
	}
	return WidgetInstance{}, false
}

// ResolveWidget returns the key of the first variant whose conditions hold.
func (e *Evaluator) ResolveWidget(variants []WidgetVariant, globals []WidgetInstance, attrs EntryAttributes) (string, bool) {
	for _, v := range variants {
		if e.CheckConditions(v.Conditions, globals, attrs) {
			return v.Widget.Key, true
		}
	}
	return "", false
}

// Resolution is the outcome of resolving one conditional widget.
type Resolution struct {
	ActiveWidget string `json:"activeWidget,omitempty"`
	Matched      bool   `json:"matched"`
	UsedDefault  bool   `json:"usedDefault,omitempty"`
}

// ResolveConditional picks the active variant of a conditional widget and
// falls back to its default widget when no variant matches.
func (e *Evaluator) ResolveConditional(data ConditionalData, globals []WidgetInstance, attrs EntryAttributes) Resolution {
	if key, ok := e.ResolveWidget(data.Widgets, globals, attrs); ok {
		return Resolution{ActiveWidget: key, Matched: true}
	}
	if data.DefaultWidget != "" {
		return Resolution{ActiveWidget: data.DefaultWidget, UsedDefault: true}
	}
	return Resolution{}
}

// NewVariant creates an unconditioned variant for a widget type.
// Its key is the widget type followed by 16 random characters.
func NewVariant(widgetType WidgetType, title string) WidgetVariant {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	return WidgetVariant{
		Widget: VariantWidget{
			Key:        strings.ToLower(fmt.Sprintf("%s-%s", widgetType, suffix)),
			WidgetType: widgetType,
			Title:      title,
			Properties: Properties{Data: Data{}},
		},
		Conditions: ConditionList{
			Operator: OperatorAnd,
			List:     []ConditionEntry{},
		},
	}
}
