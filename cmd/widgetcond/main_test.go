package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/the-deep/widgetcond/pkg/conditional"
)

const fixture = "../../pkg/conditional/testdata/framework.json"

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("WIDGETCOND_LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "", "run", "--file", fixture)
	require.NoError(t, err)

	var doc conditional.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "details-health", doc.Results["details"].ActiveWidget)
}

func TestVerifyCommand(t *testing.T) {
	completed, err := execute(t, "", "run", "--file", fixture)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "completed.json")
	require.NoError(t, os.WriteFile(path, []byte(completed), 0o644))

	out, err := execute(t, "", "verify", "--new", path, "--base", fixture)
	require.NoError(t, err)
	assert.Contains(t, out, "Document verified")

	_, err = execute(t, "", "verify", "--new", "", "--base", fixture)
	assert.ErrorContains(t, err, "both --new and --base are required")
}

func TestLintCommand(t *testing.T) {
	out, err := execute(t, "", "lint", "--file", fixture)
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found")

	broken := `{"widgets": [{"id": 1, "key": "c", "widgetId": "conditionalWidget", "properties": {"data": {
		"widgets": [{"widget": {"key": "v"}, "conditions": {"list": [
			{"widgetId": "dateWidget", "widgetKey": "gone", "conditionType": "after"}
		]}}]
	}}}]}`
	out, err = execute(t, broken, "lint", "--file", "")
	assert.Error(t, err)
	assert.Contains(t, out, "widget 'gone' does not exist")
}

func TestConditionsCommand(t *testing.T) {
	out, err := execute(t, "", "conditions", "--widget", "scaleWidget", "--format", "yaml")
	require.NoError(t, err)

	var listing []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &listing))
	require.Len(t, listing, 1)
	assert.Equal(t, "scaleWidget", listing[0]["widgetId"])
	assert.Len(t, listing[0]["conditions"], 4)

	_, err = execute(t, "", "conditions", "--widget", "excerptWidget", "--format", "json")
	assert.ErrorContains(t, err, "does not support conditions")

	_, err = execute(t, "", "conditions", "--widget", "", "--format", "toml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestCheckCommand(t *testing.T) {
	input := `{
		"conditions": {"operator": "AND", "list": [
			{"widgetId": "dateWidget", "widgetKey": "w1", "conditionType": "after", "attributes": {"value": "2021-06-01"}}
		]},
		"widgets": [{"id": 10, "key": "w1", "widgetId": "dateWidget", "properties": {}}],
		"entryAttributes": {"10": {"data": {"value": "2021-07-01"}}}
	}`

	out, err := execute(t, input, "check", "--file", "")
	require.NoError(t, err)
	assert.Equal(t, "true", strings.TrimSpace(out))
}

func TestNewVariantCommand(t *testing.T) {
	out, err := execute(t, "", "new-variant", "--widget", "selectWidget", "--title", "Options")
	require.NoError(t, err)

	var variant conditional.WidgetVariant
	require.NoError(t, json.Unmarshal([]byte(out), &variant))
	assert.True(t, strings.HasPrefix(variant.Widget.Key, "selectwidget-"))
	assert.Equal(t, "Options", variant.Widget.Title)
	assert.Empty(t, variant.Conditions.List)

	_, err = execute(t, "", "new-variant", "--widget", "")
	assert.ErrorContains(t, err, "--widget is required")
}
