package conditional

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEntry(t *testing.T) {
	registry, err := NewDefaultRegistry()
	require.NoError(t, err)

	tests := []struct {
		name    string
		entry   ConditionEntry
		wantErr string
	}{
		{
			name:  "no validation",
			entry: ConditionEntry{WidgetType: DateWidget, WidgetKey: "d", ConditionType: "after"},
		},
		{
			name: "valid range",
			entry: ConditionEntry{WidgetType: DateWidget, WidgetKey: "d", ConditionType: "isInBetween",
				Attributes: Data{"minValue": "2021-01-01", "maxValue": "2021-12-31"}},
		},
		{
			name: "missing bound",
			entry: ConditionEntry{WidgetType: TimeWidget, WidgetKey: "t", ConditionType: "isInBetween",
				Attributes: Data{"minValue": "10:00"}},
			wantErr: "timeWidget.isInBetween: min value and max value are required",
		},
		{
			name: "inverted bounds",
			entry: ConditionEntry{WidgetType: DateWidget, WidgetKey: "d", ConditionType: "isInBetween",
				Attributes: Data{"minValue": "2021-12-31", "maxValue": "2021-01-01"}},
			wantErr: "min value must be before max value",
		},
		{
			name:    "nil attributes",
			entry:   ConditionEntry{WidgetType: ScaleWidget, WidgetKey: "s", ConditionType: "isInBetween"},
			wantErr: "lower scale and upper scale are required",
		},
		{
			name:    "unknown condition",
			entry:   ConditionEntry{WidgetType: ScaleWidget, WidgetKey: "s", ConditionType: "isAround"},
			wantErr: "unknown condition scaleWidget.isAround",
		},
		{
			name:    "widget without conditions",
			entry:   ConditionEntry{WidgetType: ExcerptWidget, WidgetKey: "e", ConditionType: "isFilled"},
			wantErr: "unknown condition",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := registry.ValidateEntry(tt.entry)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateList(t *testing.T) {
	registry, err := NewDefaultRegistry()
	require.NoError(t, err)

	t.Run("empty list is valid", func(t *testing.T) {
		assert.Empty(t, registry.ValidateList(ConditionList{}))
	})

	t.Run("unknown operator", func(t *testing.T) {
		errs := registry.ValidateList(ConditionList{Operator: "NOR"})
		require.Len(t, errs, 1)
		assert.Equal(t, -1, errs[0].Index)
		assert.Equal(t, "unknown operator 'NOR'", errs[0].Message)
	})

	t.Run("accumulates every problem", func(t *testing.T) {
		errs := registry.ValidateList(ConditionList{
			Operator: OperatorXor,
			List: []ConditionEntry{
				{WidgetType: TextWidget, WidgetKey: "t", ConditionType: "isFilled"},
				{WidgetType: TextWidget, ConditionType: "isFilled"},
				{WidgetType: TextWidget, WidgetKey: "t", ConditionType: "isEmpty"},
			},
		})
		require.Len(t, errs, 2)
		assert.Equal(t, 1, errs[0].Index)
		assert.Equal(t, 2, errs[1].Index)
	})
}

func TestValidateConditional(t *testing.T) {
	registry, err := NewDefaultRegistry()
	require.NoError(t, err)

	data := ConditionalData{Widgets: []WidgetVariant{
		{Widget: VariantWidget{Key: "ok"}, Conditions: ConditionList{List: []ConditionEntry{
			{WidgetType: TextWidget, WidgetKey: "t", ConditionType: "isFilled"},
		}}},
		{Widget: VariantWidget{Key: "broken"}, Conditions: ConditionList{List: []ConditionEntry{
			{WidgetType: TextWidget, WidgetKey: "t", ConditionType: "isFilled"},
			{WidgetType: ScaleWidget, WidgetKey: "s", ConditionType: "isInBetween", Attributes: Data{"lowerScale": "a"}},
		}}},
	}}

	errs := registry.ValidateConditional("cond", data)
	require.Len(t, errs, 1)
	assert.Equal(t, ValidationError{
		Widget:  "cond",
		Variant: "broken",
		Index:   1,
		Message: "scaleWidget.isInBetween: lower scale and upper scale are required",
	}, errs[0])
	assert.Equal(t, "cond/broken[1]: scaleWidget.isInBetween: lower scale and upper scale are required", errs[0].Error())
}
