package conditional

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaleConditions(t *testing.T) {
	// Keys sort lexically as high < low < mid; only the unit order counts.
	config := Data{"scaleUnits": []any{
		map[string]any{"key": "low", "label": "Low"},
		map[string]any{"key": "mid", "label": "Mid"},
		map[string]any{"key": "high", "label": "High"},
	}}

	tests := []struct {
		name      string
		condition ConditionType
		value     any
		attrs     Data
		expected  bool
	}{
		{"equal", "isEqualTo", "mid", Data{"scale": "mid"}, true},
		{"not equal", "isEqualTo", "mid", Data{"scale": "low"}, false},
		{"equal without value", "isEqualTo", nil, Data{"scale": "mid"}, false},

		{"at least lower unit", "isGreaterThan", "mid", Data{"scale": "low"}, true},
		{"at least same unit", "isGreaterThan", "mid", Data{"scale": "mid"}, true},
		{"at least higher unit", "isGreaterThan", "mid", Data{"scale": "high"}, false},

		{"at most higher unit", "isLessThan", "mid", Data{"scale": "high"}, true},
		{"at most lower unit", "isLessThan", "mid", Data{"scale": "low"}, false},

		{"between inclusive lower", "isInBetween", "low", Data{"lowerScale": "low", "upperScale": "mid"}, true},
		{"between inclusive upper", "isInBetween", "mid", Data{"lowerScale": "low", "upperScale": "mid"}, true},
		{"between outside", "isInBetween", "high", Data{"lowerScale": "low", "upperScale": "mid"}, false},

		// Unknown keys index as -1 and still take part in the comparison
		{"unknown value is below everything", "isLessThan", "bogus", Data{"scale": "low"}, true},
		{"unknown value at least unknown scale", "isGreaterThan", nil, Data{"scale": "bogus"}, true},
		{"unknown value not at least low", "isGreaterThan", nil, Data{"scale": "low"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := mustDefinition(t, ScaleWidget, tt.condition)
			assert.Equal(t, tt.expected, def.Test(valueOf(tt.value), tt.attrs, config))
		})
	}
}

func TestScaleIndex(t *testing.T) {
	cfg := decodeScaleConfig(Data{"scaleUnits": []any{
		map[string]any{"key": "a"},
		map[string]any{"key": "b"},
	}})

	assert.Equal(t, 0, cfg.index("a"))
	assert.Equal(t, 1, cfg.index("b"))
	assert.Equal(t, -1, cfg.index("c"))
	assert.Equal(t, -1, decodeScaleConfig(nil).index("a"))
}

func TestScaleInBetweenValidate(t *testing.T) {
	def := mustDefinition(t, ScaleWidget, "isInBetween")
	assert.Error(t, def.Validate(Data{"lowerScale": "low"}))
	assert.NoError(t, def.Validate(Data{"lowerScale": "low", "upperScale": "high"}))
}
