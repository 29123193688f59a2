package conditional

// numberMatrixConfig is the configuration of a number matrix widget.
type numberMatrixConfig struct {
	Rows    []Option
	Columns []Option
}

func decodeNumberMatrixConfig(config Data) numberMatrixConfig {
	return numberMatrixConfig{
		Rows:    titledOptions(config.List("rowHeaders")),
		Columns: titledOptions(config.List("columnHeaders")),
	}
}

func titledOptions(items []Data) []Option {
	out := make([]Option, 0, len(items))
	for _, item := range items {
		key, ok := asKey(item.Get("key"))
		if !ok {
			continue
		}
		out = append(out, Option{Key: key, Label: item.String("title")})
	}
	return out
}

func rowOptions(config Data) []Option    { return decodeNumberMatrixConfig(config).Rows }
func columnOptions(config Data) []Option { return decodeNumberMatrixConfig(config).Columns }

// filledRow returns the distinct values of a row and whether every configured
// column holds a truthy value. A zero counts as empty and cells of columns
// missing from the configuration are ignored.
func filledRow(row Data, columns []Option) (distinct map[float64]struct{}, filled bool) {
	distinct = make(map[float64]struct{})
	count := 0
	for _, col := range columns {
		v := row.Get(col.Key)
		if !isTruthy(v) {
			continue
		}
		count++
		if f, ok := toFloat(v); ok {
			distinct[f] = struct{}{}
		}
	}
	return distinct, len(columns) > 0 && count == len(columns)
}

func numberMatrixConditions() Catalog {
	rows := []AttributeSpec{{Key: "rows", Title: "Rows", Type: AttrMultiselect, Options: rowOptions}}
	rowTest := func(match func(distinct, columns int) bool) TestFunc {
		return func(value, attributes, config Data) bool {
			matrix := value.Object("value")
			columns := decodeNumberMatrixConfig(config).Columns
			return TestMultiSelect(func(row string) bool {
				distinct, filled := filledRow(matrix.Object(row), columns)
				return filled && match(len(distinct), len(columns))
			}, attributes.Strings("rows"))
		}
	}

	return Catalog{
		{Key: "sameValuesInRow", Definition: Definition{
			Title:      "Same values in row",
			Attributes: rows,
			Test:       rowTest(func(distinct, _ int) bool { return distinct == 1 }),
		}},
		{Key: "differentValuesInRow", Definition: Definition{
			Title:      "Different values in row",
			Attributes: rows,
			Test:       rowTest(func(distinct, columns int) bool { return distinct == columns }),
		}},
		{Key: "hasValue", Definition: Definition{
			Title: "Has value",
			Attributes: []AttributeSpec{
				{Key: "row", Title: "Row", Type: AttrSelect, Options: rowOptions},
				{Key: "column", Title: "Column", Type: AttrSelect, Options: columnOptions},
				{Key: "value", Title: "Value", Type: AttrNumber},
			},
			Test: func(value, attributes, _ Data) bool {
				cell := value.Object("value").Object(attributes.String("row")).Get(attributes.String("column"))
				got, okGot := toFloat(cell)
				want, okWant := attributes.Float("value")
				return okGot && okWant && got == want
			},
		}},
	}
}
