//go:build js && wasm

// Package main provides WASM bindings for the conditional widget evaluator.
// This allows the entry editor to resolve conditional widgets in the browser.
package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/the-deep/widgetcond/pkg/conditional"
	"github.com/the-deep/widgetcond/pkg/lint"
)

// registry is built once; it is immutable and shared by every call.
var registry *conditional.Registry

func main() {
	var err error
	registry, err = conditional.NewDefaultRegistry()
	if err != nil {
		panic(err)
	}

	// Export WidgetCondRun function to JavaScript
	js.Global().Set("WidgetCondRun", js.FuncOf(widgetCondRun))

	js.Global().Set("WidgetCondVerify", js.FuncOf(widgetCondVerify))
	js.Global().Set("WidgetCondCheck", js.FuncOf(widgetCondCheck))
	js.Global().Set("WidgetCondLint", js.FuncOf(widgetCondLint))

	// Keep the Go runtime alive
	select {}
}

// widgetCondRun is the JS-callable wrapper for conditional.Run()
// Usage: WidgetCondRun(jsonString) -> { result: object, error?: string }
func widgetCondRun(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return makeError("WidgetCondRun requires 1 argument: jsonText")
	}

	result, err := conditional.Run(args[0].String(), conditional.WithRegistry(registry))
	if err != nil {
		return makeError(err.Error())
	}

	return makeResult(result)
}

// widgetCondVerify replays a completed document against its framework.
// Usage: WidgetCondVerify(newJson, baseJson) -> { valid: boolean, error?: string }
func widgetCondVerify(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return makeError("WidgetCondVerify requires 2 arguments: newJson, baseJson")
	}

	valid, err := conditional.Verify(args[0].String(), args[1].String(), conditional.WithRegistry(registry))
	if err != nil {
		return map[string]any{
			"valid": false,
			"error": err.Error(),
		}
	}
	return map[string]any{"valid": valid}
}

// widgetCondCheck evaluates one condition list while a variant is being edited.
// Usage: WidgetCondCheck(conditionsJson, widgetsJson, entryAttributesJson) -> { result: boolean, error?: string }
func widgetCondCheck(this js.Value, args []js.Value) any {
	if len(args) < 3 {
		return makeError("WidgetCondCheck requires 3 arguments: conditions, widgets, entryAttributes")
	}

	var (
		conditions conditional.ConditionList
		widgets    []conditional.WidgetInstance
		attrs      conditional.EntryAttributes
	)
	for i, target := range []any{&conditions, &widgets, &attrs} {
		if err := json.Unmarshal([]byte(args[i].String()), target); err != nil {
			return makeError(err.Error())
		}
	}

	evaluator := conditional.NewEvaluator(registry)
	return map[string]any{
		"result": evaluator.CheckConditions(conditions, widgets, attrs),
	}
}

// widgetCondLint is the JS-callable wrapper for lint.Run()
// Usage: WidgetCondLint(jsonString) -> { result: object, error?: string }
func widgetCondLint(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return makeError("WidgetCondLint requires 1 argument: jsonText")
	}

	result, err := lint.Run(args[0].String(), registry)
	if err != nil {
		return makeError(err.Error())
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return makeError(err.Error())
	}
	return makeResult(string(encoded))
}

// makeError creates a JS-friendly error response
func makeError(msg string) map[string]any {
	return map[string]any{
		"error": msg,
	}
}

// makeResult creates a JS-friendly success response
func makeResult(jsonStr string) map[string]any {
	// Parse the result to return as a JS object instead of string
	var result any
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		// Fall back to string if parsing fails
		return map[string]any{
			"result": jsonStr,
		}
	}

	return map[string]any{
		"result": result,
	}
}
