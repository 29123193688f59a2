package conditional

import (
	"fmt"
)

// ValidationError is an authoring problem found in a conditional widget's configuration.
type ValidationError struct {
	Widget  string `json:"widget,omitempty"`  // Conditional widget key
	Variant string `json:"variant,omitempty"` // Variant widget key
	Index   int    `json:"index"`             // Condition position, -1 for the list itself
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s/%s[%d]: %s", v.Widget, v.Variant, v.Index, v.Message)
}

// ValidateEntry checks that a condition exists and that its attributes pass
// the condition's own validation.
func (r *Registry) ValidateEntry(entry ConditionEntry) error {
	def, ok := r.Lookup(entry.WidgetType, entry.ConditionType)
	if !ok {
		return fmt.Errorf("unknown condition %s.%s", entry.WidgetType, entry.ConditionType)
	}
	if def.Validate == nil {
		return nil
	}
	attributes := entry.Attributes
	if attributes == nil {
		attributes = Data{}
	}
	if err := def.Validate(attributes); err != nil {
		return fmt.Errorf("%s.%s: %w", entry.WidgetType, entry.ConditionType, err)
	}
	return nil
}

// ValidateList accumulates every problem of a condition list (non-blocking).
func (r *Registry) ValidateList(list ConditionList) []ValidationError {
	var errs []ValidationError

	switch list.EffectiveOperator() {
	case OperatorAnd, OperatorOr, OperatorXor:
	default:
		errs = append(errs, ValidationError{
			Index:   -1,
			Message: fmt.Sprintf("unknown operator '%s'", list.Operator),
		})
	}

	for i, entry := range list.List {
		if entry.WidgetKey == "" {
			errs = append(errs, ValidationError{Index: i, Message: "condition has no source widget"})
		}
		if err := r.ValidateEntry(entry); err != nil {
			errs = append(errs, ValidationError{Index: i, Message: err.Error()})
		}
	}
	return errs
}

// ValidateConditional validates every variant of a conditional widget.
func (r *Registry) ValidateConditional(widgetKey string, data ConditionalData) []ValidationError {
	var errs []ValidationError
	for _, v := range data.Widgets {
		for _, err := range r.ValidateList(v.Conditions) {
			err.Widget = widgetKey
			err.Variant = v.Widget.Key
			errs = append(errs, err)
		}
	}
	return errs
}
