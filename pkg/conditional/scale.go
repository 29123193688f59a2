package conditional

import (
	"errors"
)

// scaleConfig is the configuration of a scale widget. Units are ordered
// from the lowest to the highest step.
type scaleConfig struct {
	Units []Option
}

func decodeScaleConfig(config Data) scaleConfig {
	var cfg scaleConfig
	for _, unit := range config.List("scaleUnits") {
		key, ok := asKey(unit.Get("key"))
		if !ok {
			continue
		}
		cfg.Units = append(cfg.Units, Option{Key: key, Label: unit.String("label")})
	}
	return cfg
}

// index returns the position of key among the units, or -1 when absent.
func (c scaleConfig) index(key string) int {
	for i, unit := range c.Units {
		if unit.Key == key {
			return i
		}
	}
	return -1
}

func scaleOptions(config Data) []Option {
	return decodeScaleConfig(config).Units
}

func scaleConditions() Catalog {
	single := []AttributeSpec{{Key: "scale", Title: "Scale", Type: AttrSelect, Options: scaleOptions}}
	byIndex := func(match func(value, configured int) bool) TestFunc {
		return func(value, attributes, config Data) bool {
			cfg := decodeScaleConfig(config)
			v, _ := asKey(value.Get("value"))
			return match(cfg.index(v), cfg.index(attributes.String("scale")))
		}
	}

	return Catalog{
		{Key: "isEqualTo", Definition: Definition{
			Title:      "Is equal to",
			Attributes: single,
			Test: func(value, attributes, _ Data) bool {
				v, ok := asKey(value.Get("value"))
				return ok && v != "" && v == attributes.String("scale")
			},
		}},
		{Key: "isGreaterThan", Definition: Definition{
			Title:      "At least",
			Attributes: single,
			Test:       byIndex(func(v, c int) bool { return v >= c }),
		}},
		{Key: "isLessThan", Definition: Definition{
			Title:      "At most",
			Attributes: single,
			Test:       byIndex(func(v, c int) bool { return v <= c }),
		}},
		{Key: "isInBetween", Definition: Definition{
			Title: "Is in between",
			Attributes: []AttributeSpec{
				{Key: "lowerScale", Title: "Lower scale", Type: AttrSelect, Options: scaleOptions},
				{Key: "upperScale", Title: "Upper scale", Type: AttrSelect, Options: scaleOptions},
			},
			Test: func(value, attributes, config Data) bool {
				cfg := decodeScaleConfig(config)
				v, _ := asKey(value.Get("value"))
				idx := cfg.index(v)
				return idx >= cfg.index(attributes.String("lowerScale")) &&
					idx <= cfg.index(attributes.String("upperScale"))
			},
			Validate: func(attributes Data) error {
				if attributes.String("lowerScale") == "" || attributes.String("upperScale") == "" {
					return errors.New("lower scale and upper scale are required")
				}
				return nil
			},
		}},
	}
}
