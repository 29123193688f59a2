package conditional

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Document is a framework snapshot together with one entry's values.
// Results and Errors are populated by Run.
type Document struct {
	Widgets         []WidgetInstance `json:"widgets"`
	EntryAttributes EntryAttributes  `json:"entryAttributes"`

	// Output fields (populated by Run)
	Results map[string]Resolution `json:"results,omitempty"`
	Errors  []ValidationError     `json:"errors,omitempty"`
}

// decodeConditional decodes the configuration of a conditional widget instance.
func decodeConditional(w WidgetInstance) (ConditionalData, error) {
	var data ConditionalData
	if err := w.Properties.Data.Decode(&data); err != nil {
		return ConditionalData{}, fmt.Errorf("conditional widget '%s': %w", w.Key, err)
	}
	return data, nil
}

// Run resolves every conditional widget of a document.
// Returns the document JSON with results and authoring errors attached.
func Run(jsonText string, settings ...Setting) (string, error) {
	var doc Document
	if err := json.Unmarshal([]byte(jsonText), &doc); err != nil {
		return "", fmt.Errorf("unmarshal: %w", err)
	}

	evaluator, err := newDocumentEvaluator(settings)
	if err != nil {
		return "", err
	}

	if err := evaluator.ResolveDocument(&doc); err != nil {
		return "", err
	}

	result, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal: %w", err)
	}
	return string(result), nil
}

// ResolveDocument fills doc.Results and doc.Errors in place.
func (e *Evaluator) ResolveDocument(doc *Document) error {
	doc.Results = make(map[string]Resolution)
	doc.Errors = nil
	for _, w := range doc.Widgets {
		if w.WidgetType != ConditionalWidget {
			continue
		}
		data, err := decodeConditional(w)
		if err != nil {
			return err
		}
		doc.Errors = append(doc.Errors, e.registry.ValidateConditional(w.Key, data)...)
		res := e.ResolveConditional(data, doc.Widgets, doc.EntryAttributes)
		doc.Results[w.Key] = res
		e.logger.Debug("resolved conditional widget",
			zap.String("widget", w.Key),
			zap.String("active", res.ActiveWidget),
			zap.Bool("matched", res.Matched))
	}
	return nil
}

// Verify checks that the results recorded in newJSON follow from the
// framework in baseJSON and the entry values in newJSON. The framework
// widgets of newJSON are ignored, so an edited configuration cannot
// justify its own results.
func Verify(newJSON, baseJSON string, settings ...Setting) (bool, error) {
	var newDoc, baseDoc Document
	if err := json.Unmarshal([]byte(newJSON), &newDoc); err != nil {
		return false, fmt.Errorf("unmarshal newJSON: %w", err)
	}
	if err := json.Unmarshal([]byte(baseJSON), &baseDoc); err != nil {
		return false, fmt.Errorf("unmarshal baseJSON: %w", err)
	}

	evaluator, err := newDocumentEvaluator(settings)
	if err != nil {
		return false, err
	}

	replay := Document{
		Widgets:         baseDoc.Widgets,
		EntryAttributes: newDoc.EntryAttributes,
	}
	if err := evaluator.ResolveDocument(&replay); err != nil {
		return false, fmt.Errorf("replay failed: %w", err)
	}

	for key, want := range replay.Results {
		got, ok := newDoc.Results[key]
		if !ok {
			return false, fmt.Errorf("result for '%s' missing", key)
		}
		if got != want {
			return false, fmt.Errorf("result for '%s' mismatch: got %q, expected %q",
				key, got.ActiveWidget, want.ActiveWidget)
		}
	}
	for key := range newDoc.Results {
		if _, ok := replay.Results[key]; !ok {
			return false, fmt.Errorf("result for unknown conditional widget '%s'", key)
		}
	}

	return true, nil
}

func newDocumentEvaluator(settings []Setting) (*Evaluator, error) {
	opts := applySettings(settings)
	registry := opts.registry
	if registry == nil {
		var err error
		registry, err = NewDefaultRegistry(WithLogger(opts.logger))
		if err != nil {
			return nil, err
		}
	}
	return NewEvaluator(registry, WithLogger(opts.logger)), nil
}
