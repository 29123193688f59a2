package conditional

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	// ErrDuplicateCondition is returned when a catalog lists a condition key twice.
	ErrDuplicateCondition = errors.New("duplicate condition")
	// ErrUnknownWidgetType is returned for catalogs of widget types missing from the metadata.
	ErrUnknownWidgetType = errors.New("unknown widget type")
	// ErrMissingCatalog is returned when a widget type supports conditions but has no catalog.
	ErrMissingCatalog = errors.New("missing condition catalog")
)

// WidgetMeta describes a widget type as known to the framework editor.
type WidgetMeta struct {
	Type          WidgetType `json:"widgetId" yaml:"widgetId"`
	Title         string     `json:"title" yaml:"title"`
	HasConditions bool       `json:"hasConditions" yaml:"hasConditions"`
}

// ConditionRef names a condition across catalogs.
type ConditionRef struct {
	WidgetType    WidgetType
	ConditionType ConditionType
}

func (r ConditionRef) String() string {
	return fmt.Sprintf("%s.%s", r.WidgetType, r.ConditionType)
}

// Registry is the immutable table of condition catalogs per widget type.
// It is safe for concurrent use.
type Registry struct {
	widgets    []WidgetMeta
	catalogs   map[WidgetType]Catalog
	index      map[WidgetType]map[ConditionType]Definition
	untestable []ConditionRef
}

// DefaultWidgetMeta lists every widget type of an analysis framework.
func DefaultWidgetMeta() []WidgetMeta {
	return []WidgetMeta{
		{Type: ExcerptWidget, Title: "Excerpt", HasConditions: false},
		{Type: Matrix1dWidget, Title: "Matrix 1D", HasConditions: true},
		{Type: Matrix2dWidget, Title: "Matrix 2D", HasConditions: true},
		{Type: NumberMatrixWidget, Title: "Number Matrix", HasConditions: true},
		{Type: DateWidget, Title: "Date", HasConditions: true},
		{Type: TimeWidget, Title: "Time", HasConditions: true},
		{Type: DateRangeWidget, Title: "Date Range", HasConditions: true},
		{Type: TimeRangeWidget, Title: "Time Range", HasConditions: true},
		{Type: NumberWidget, Title: "Number", HasConditions: true},
		{Type: ScaleWidget, Title: "Scale", HasConditions: true},
		{Type: OrganigramWidget, Title: "Organigram", HasConditions: true},
		{Type: SelectWidget, Title: "Select", HasConditions: true},
		{Type: MultiselectWidget, Title: "Multiselect", HasConditions: true},
		{Type: GeoWidget, Title: "Geo", HasConditions: true},
		{Type: TextWidget, Title: "Text", HasConditions: true},
		{Type: ConditionalWidget, Title: "Conditional", HasConditions: false},
	}
}

// DefaultCatalogs returns the built-in condition catalogs.
func DefaultCatalogs() map[WidgetType]Catalog {
	return map[WidgetType]Catalog{
		DateWidget:         dateConditions(),
		DateRangeWidget:    dateRangeConditions(),
		TimeWidget:         timeConditions(),
		TimeRangeWidget:    timeRangeConditions(),
		GeoWidget:          geoConditions(),
		Matrix1dWidget:     matrix1dConditions(),
		Matrix2dWidget:     matrix2dConditions(),
		NumberWidget:       numberConditions(),
		NumberMatrixWidget: numberMatrixConditions(),
		ScaleWidget:        scaleConditions(),
		SelectWidget:       selectConditions(),
		MultiselectWidget:  multiselectConditions(),
		OrganigramWidget:   organigramConditions(),
		TextWidget:         textConditions(),
	}
}

// NewDefaultRegistry builds the registry from the built-in catalogs.
func NewDefaultRegistry(settings ...Setting) (*Registry, error) {
	return NewRegistry(DefaultCatalogs(), DefaultWidgetMeta(), settings...)
}

// NewRegistry validates the catalogs against the widget metadata and freezes them.
// Conditions without a test are reported through the logger; they stay
// listed for authoring but never match.
func NewRegistry(catalogs map[WidgetType]Catalog, widgets []WidgetMeta, settings ...Setting) (*Registry, error) {
	opts := applySettings(settings)

	r := &Registry{
		widgets:  slices.Clone(widgets),
		catalogs: make(map[WidgetType]Catalog, len(catalogs)),
		index:    make(map[WidgetType]map[ConditionType]Definition, len(catalogs)),
	}

	var err error
	known := make(map[WidgetType]bool, len(widgets))
	for _, w := range widgets {
		known[w.Type] = true
		if _, ok := catalogs[w.Type]; w.HasConditions && !ok {
			err = multierr.Append(err, fmt.Errorf("%w for %s", ErrMissingCatalog, w.Type))
		}
	}

	widgetTypes := make([]WidgetType, 0, len(catalogs))
	for widgetType := range catalogs {
		widgetTypes = append(widgetTypes, widgetType)
	}
	slices.Sort(widgetTypes)
	for _, widgetType := range widgetTypes {
		if !known[widgetType] {
			err = multierr.Append(err, fmt.Errorf("%w: %s", ErrUnknownWidgetType, widgetType))
			continue
		}
		catalog := catalogs[widgetType]
		byKey := make(map[ConditionType]Definition, len(catalog))
		for _, c := range catalog {
			if _, dup := byKey[c.Key]; dup {
				err = multierr.Append(err, fmt.Errorf("%w: %s.%s", ErrDuplicateCondition, widgetType, c.Key))
				continue
			}
			byKey[c.Key] = c.Definition
			if c.Test == nil {
				r.untestable = append(r.untestable, ConditionRef{WidgetType: widgetType, ConditionType: c.Key})
			}
		}
		r.catalogs[widgetType] = slices.Clone(catalog)
		r.index[widgetType] = byKey
	}
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}

	for _, ref := range r.untestable {
		opts.logger.Warn("condition has no test and will never match",
			zap.String("widget", string(ref.WidgetType)),
			zap.String("condition", string(ref.ConditionType)))
	}

	return r, nil
}

// Lookup returns the definition of a condition.
func (r *Registry) Lookup(widgetType WidgetType, conditionType ConditionType) (Definition, bool) {
	def, ok := r.index[widgetType][conditionType]
	return def, ok
}

// Conditions returns the catalog of a widget type in declaration order.
func (r *Registry) Conditions(widgetType WidgetType) Catalog {
	return slices.Clone(r.catalogs[widgetType])
}

// ConditionsAsMap returns every catalog keyed by widget type and condition type.
func (r *Registry) ConditionsAsMap() map[WidgetType]map[ConditionType]Definition {
	out := make(map[WidgetType]map[ConditionType]Definition, len(r.index))
	for widgetType, defs := range r.index {
		out[widgetType] = maps.Clone(defs)
	}
	return out
}

// Meta returns the metadata of a widget type.
func (r *Registry) Meta(widgetType WidgetType) (WidgetMeta, bool) {
	for _, w := range r.widgets {
		if w.Type == widgetType {
			return w, true
		}
	}
	return WidgetMeta{}, false
}

// WidgetList returns the widget types that can act as condition sources, in metadata order.
func (r *Registry) WidgetList() []WidgetMeta {
	var out []WidgetMeta
	for _, w := range r.widgets {
		if w.HasConditions {
			out = append(out, w)
		}
	}
	return out
}

// CompatibleWidgetTypes returns the ids of WidgetList.
func (r *Registry) CompatibleWidgetTypes() []WidgetType {
	list := r.WidgetList()
	out := make([]WidgetType, 0, len(list))
	for _, w := range list {
		out = append(out, w.Type)
	}
	return out
}

// Untestable lists the conditions that have no test.
func (r *Registry) Untestable() []ConditionRef {
	return slices.Clone(r.untestable)
}
