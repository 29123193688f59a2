package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/the-deep/widgetcond/pkg/conditional"
)

type conditionInfo struct {
	Key        conditional.ConditionType   `json:"key" yaml:"key"`
	Title      string                      `json:"title" yaml:"title"`
	Evaluated  bool                        `json:"evaluated" yaml:"evaluated"`
	Attributes []conditional.AttributeSpec `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

type widgetConditions struct {
	Widget     conditional.WidgetType `json:"widgetId" yaml:"widgetId"`
	Title      string                 `json:"title" yaml:"title"`
	Conditions []conditionInfo        `json:"conditions" yaml:"conditions"`
}

var (
	conditionsWidget string
	conditionsFormat string
)

// conditionsCmd prints the condition catalogs for authoring tools
var conditionsCmd = &cobra.Command{
	Use:   "conditions",
	Short: "List the conditions each widget type supports",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := newRegistry()
		if err != nil {
			return err
		}

		var listing []widgetConditions
		for _, meta := range registry.WidgetList() {
			if conditionsWidget != "" && string(meta.Type) != conditionsWidget {
				continue
			}
			wc := widgetConditions{Widget: meta.Type, Title: meta.Title}
			for _, c := range registry.Conditions(meta.Type) {
				wc.Conditions = append(wc.Conditions, conditionInfo{
					Key:        c.Key,
					Title:      c.Title,
					Evaluated:  c.Test != nil,
					Attributes: c.Attributes,
				})
			}
			listing = append(listing, wc)
		}
		if conditionsWidget != "" && len(listing) == 0 {
			return fmt.Errorf("widget type '%s' does not support conditions", conditionsWidget)
		}

		return encode(cmd.OutOrStdout(), conditionsFormat, listing)
	},
}

// checkInput is a single condition list evaluated against one entry.
type checkInput struct {
	Conditions      conditional.ConditionList    `json:"conditions"`
	Widgets         []conditional.WidgetInstance `json:"widgets"`
	EntryAttributes conditional.EntryAttributes  `json:"entryAttributes"`
}

var checkFile string

// checkCmd evaluates one condition list
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate a single condition list against an entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(cmd, checkFile)
		if err != nil {
			return err
		}
		var in checkInput
		if err := json.Unmarshal([]byte(input), &in); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		registry, err := newRegistry()
		if err != nil {
			return err
		}

		evaluator := conditional.NewEvaluator(registry, conditional.WithLogger(logger))
		fmt.Fprintln(cmd.OutOrStdout(), evaluator.CheckConditions(in.Conditions, in.Widgets, in.EntryAttributes))
		return nil
	},
}

var (
	newVariantWidget string
	newVariantTitle  string
)

// newVariantCmd scaffolds a variant for a conditional widget
var newVariantCmd = &cobra.Command{
	Use:   "new-variant",
	Short: "Print a new, unconditioned variant for a conditional widget",
	RunE: func(cmd *cobra.Command, args []string) error {
		if newVariantWidget == "" {
			return fmt.Errorf("--widget is required")
		}
		variant := conditional.NewVariant(conditional.WidgetType(newVariantWidget), newVariantTitle)
		return encode(cmd.OutOrStdout(), "json", variant)
	},
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format '%s'", format)
	}
}

func init() {
	conditionsCmd.Flags().StringVar(&conditionsWidget, "widget", "", "Only list conditions of this widget type")
	conditionsCmd.Flags().StringVar(&conditionsFormat, "format", "json", "Output format: json or yaml")
	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "Input JSON with conditions, widgets and entryAttributes (or use stdin)")
	newVariantCmd.Flags().StringVar(&newVariantWidget, "widget", "", "Widget type of the variant")
	newVariantCmd.Flags().StringVar(&newVariantTitle, "title", "", "Title of the variant")
}
