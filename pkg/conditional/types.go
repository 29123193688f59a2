// Package conditional decides which variant of a conditional widget is active
// for an entry, based on the values already tagged into other widgets of the
// same analysis framework.
package conditional

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// WidgetType identifies a widget kind within an analysis framework.
type WidgetType string

const (
	DateWidget         WidgetType = "dateWidget"
	DateRangeWidget    WidgetType = "dateRangeWidget"
	TimeWidget         WidgetType = "timeWidget"
	TimeRangeWidget    WidgetType = "timeRangeWidget"
	GeoWidget          WidgetType = "geoWidget"
	Matrix1dWidget     WidgetType = "matrix1dWidget"
	Matrix2dWidget     WidgetType = "matrix2dWidget"
	NumberWidget       WidgetType = "numberWidget"
	NumberMatrixWidget WidgetType = "numberMatrixWidget"
	ScaleWidget        WidgetType = "scaleWidget"
	SelectWidget       WidgetType = "selectWidget"
	MultiselectWidget  WidgetType = "multiselectWidget"
	OrganigramWidget   WidgetType = "organigramWidget"
	TextWidget         WidgetType = "textWidget"

	// Widget types that exist in a framework but cannot be a condition source.
	ExcerptWidget     WidgetType = "excerptWidget"
	ConditionalWidget WidgetType = "conditionalWidget"
)

// ConditionType names a predicate inside one widget type's catalog.
// Keys are only unique per widget type.
type ConditionType string

// AttributeType tells the authoring UI which input to render for a condition attribute.
type AttributeType string

const (
	AttrDate        AttributeType = "date"
	AttrTime        AttributeType = "time"
	AttrNumber      AttributeType = "number"
	AttrText        AttributeType = "text"
	AttrBoolean     AttributeType = "boolean"
	AttrSelect      AttributeType = "select"
	AttrMultiselect AttributeType = "multiselect"
	AttrGeo         AttributeType = "geo"
)

// Option is one selectable choice of a select or multiselect attribute.
type Option struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
}

// AttributeSpec describes one configurable input of a condition.
// Options derives the choices from the source widget's own configuration.
type AttributeSpec struct {
	Key     string                     `json:"key" yaml:"key"`
	Title   string                     `json:"title" yaml:"title"`
	Type    AttributeType              `json:"type" yaml:"type"`
	Options func(config Data) []Option `json:"-" yaml:"-"`
}

// TestFunc is a pure predicate over the source widget's entry value,
// the condition's configured attributes and the source widget's configuration.
type TestFunc func(value, attributes, config Data) bool

// ValidateFunc is an authoring-time sanity check of configured attributes.
type ValidateFunc func(attributes Data) error

// Definition is one entry of a widget type's condition catalog.
// A nil Test means the condition cannot be evaluated and never matches.
type Definition struct {
	Title      string
	Attributes []AttributeSpec
	Test       TestFunc
	Validate   ValidateFunc
}

// Condition is a Definition together with its key, as listed in a Catalog.
type Condition struct {
	Key ConditionType
	Definition
}

// Catalog is the ordered list of conditions supported by one widget type.
type Catalog []Condition

// Operator combines the results of a condition list.
type Operator string

const (
	OperatorAnd Operator = "AND"
	OperatorOr  Operator = "OR"
	OperatorXor Operator = "XOR"
)

// ConditionEntry is one configured condition of a conditional widget variant.
type ConditionEntry struct {
	WidgetType    WidgetType    `json:"widgetId"`
	WidgetKey     string        `json:"widgetKey"`
	ConditionType ConditionType `json:"conditionType"`
	Attributes    Data          `json:"attributes,omitempty"`
	InvertLogic   bool          `json:"invertLogic,omitempty"`
}

// ConditionList is a list of conditions joined by a boolean operator.
// An empty Operator means AND.
type ConditionList struct {
	Operator Operator         `json:"operator,omitempty"`
	List     []ConditionEntry `json:"list"`
}

// EffectiveOperator returns the operator with the AND default applied.
func (l ConditionList) EffectiveOperator() Operator {
	if l.Operator == "" {
		return OperatorAnd
	}
	return l.Operator
}

// InstanceID is the framework-wide id of a widget instance.
// It decodes from both JSON numbers and strings.
type InstanceID string

// UnmarshalJSON accepts `10` as well as `"10"`.
func (id *InstanceID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("instance id: %w", err)
		}
		*id = InstanceID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("instance id: %w", err)
	}
	*id = InstanceID(n.String())
	return nil
}

// Properties carries widget-type specific configuration.
type Properties struct {
	Data Data `json:"data,omitempty"`
}

// WidgetInstance is a widget placed in the framework (the global widget set).
type WidgetInstance struct {
	ID         InstanceID `json:"id"`
	Key        string     `json:"key"`
	WidgetType WidgetType `json:"widgetId"`
	Title      string     `json:"title,omitempty"`
	Properties Properties `json:"properties"`
}

// AttributeValue is the value an entry holds for one widget instance.
type AttributeValue struct {
	Data Data `json:"data"`
}

// EntryAttributes maps widget instance ids to the entry's current values.
type EntryAttributes map[InstanceID]AttributeValue

// VariantWidget is the widget a conditional variant renders when active.
type VariantWidget struct {
	Key        string     `json:"key"`
	WidgetType WidgetType `json:"widgetId,omitempty"`
	Title      string     `json:"title,omitempty"`
	Properties Properties `json:"properties"`
}

// WidgetVariant is one candidate form of a conditional field.
type WidgetVariant struct {
	Widget     VariantWidget `json:"widget"`
	Conditions ConditionList `json:"conditions"`
}

// ConditionalData is the configuration of a conditionalWidget instance.
type ConditionalData struct {
	DefaultWidget string          `json:"defaultWidget,omitempty"`
	Widgets       []WidgetVariant `json:"widgets"`
}
