package conditional

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberMatrixConditions(t *testing.T) {
	config := Data{
		"rowHeaders": []any{
			map[string]any{"key": "r1", "title": "Row 1"},
			map[string]any{"key": "r2", "title": "Row 2"},
			map[string]any{"key": "r3", "title": "Row 3"},
			map[string]any{"key": "r4", "title": "Row 4"},
		},
		"columnHeaders": []any{
			map[string]any{"key": "c1", "title": "Col 1"},
			map[string]any{"key": "c2", "title": "Col 2"},
			map[string]any{"key": "c3", "title": "Col 3"},
		},
	}
	entry := valueOf(map[string]any{
		"r1": map[string]any{"c1": float64(5), "c2": float64(5), "c3": float64(5)},
		"r2": map[string]any{"c1": float64(1), "c2": float64(2), "c3": float64(3)},
		// Partially filled rows match neither condition
		"r3": map[string]any{"c1": float64(5), "c2": float64(5)},
		// Zero counts as empty
		"r4": map[string]any{"c1": float64(0), "c2": float64(1), "c3": float64(2)},
	})

	same := mustDefinition(t, NumberMatrixWidget, "sameValuesInRow")
	assert.True(t, same.Test(entry, Data{"rows": []any{"r1"}}, config))
	assert.False(t, same.Test(entry, Data{"rows": []any{"r2"}}, config))
	assert.False(t, same.Test(entry, Data{"rows": []any{"r3"}}, config))
	assert.True(t, same.Test(entry, Data{"rows": []any{"r3", "r1"}}, config))

	different := mustDefinition(t, NumberMatrixWidget, "differentValuesInRow")
	assert.True(t, different.Test(entry, Data{"rows": []any{"r2"}}, config))
	assert.False(t, different.Test(entry, Data{"rows": []any{"r1"}}, config))
	assert.False(t, different.Test(entry, Data{"rows": []any{"r3"}}, config))
	assert.False(t, different.Test(entry, Data{"rows": []any{"r4"}}, config))

	hasValue := mustDefinition(t, NumberMatrixWidget, "hasValue")
	assert.True(t, hasValue.Test(entry, Data{"row": "r2", "column": "c3", "value": float64(3)}, config))
	assert.False(t, hasValue.Test(entry, Data{"row": "r2", "column": "c3", "value": float64(4)}, config))
	assert.False(t, hasValue.Test(entry, Data{"row": "r9", "column": "c3", "value": float64(3)}, config))
	assert.False(t, hasValue.Test(entry, Data{"row": "r2", "column": "c3"}, config))
}

func TestNumberMatrixWithoutColumns(t *testing.T) {
	same := mustDefinition(t, NumberMatrixWidget, "sameValuesInRow")
	assert.False(t, same.Test(valueOf(map[string]any{"r1": map[string]any{}}), Data{"rows": []any{"r1"}}, Data{}))
}

func TestNumberMatrixIgnoresRemovedColumns(t *testing.T) {
	config := Data{
		"rowHeaders":    []any{map[string]any{"key": "r1", "title": "Row 1"}},
		"columnHeaders": []any{map[string]any{"key": "c1", "title": "Col 1"}, map[string]any{"key": "c2", "title": "Col 2"}},
	}
	// c9 belonged to a column that no longer exists
	entry := valueOf(map[string]any{
		"r1": map[string]any{"c1": float64(4), "c2": float64(4), "c9": float64(7)},
	})

	same := mustDefinition(t, NumberMatrixWidget, "sameValuesInRow")
	assert.True(t, same.Test(entry, Data{"rows": []any{"r1"}}, config))

	different := mustDefinition(t, NumberMatrixWidget, "differentValuesInRow")
	entry = valueOf(map[string]any{
		"r1": map[string]any{"c1": float64(1), "c2": float64(2), "c9": float64(2)},
	})
	assert.True(t, different.Test(entry, Data{"rows": []any{"r1"}}, config))
}
