package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/TimurManjosov/churnguard/internal/client"
	"github.com/TimurManjosov/churnguard/internal/features"
)

// OutputFormat specifies the output format for CLI commands
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// PrintPrediction outputs a prediction in the specified format
func PrintPrediction(w io.Writer, p *client.Prediction, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(w, p)
	case FormatYAML:
		return printYAML(w, p)
	case FormatTable:
		return printPredictionTable(w, p)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// PrintSchema outputs the feature schema in the specified format
func PrintSchema(w io.Writer, s *client.Schema, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(w, s)
	case FormatYAML:
		return printYAML(w, s)
	case FormatTable:
		return printSchemaTable(w, s)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func printYAML(w io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(data)
}

func printPredictionTable(w io.Writer, p *client.Prediction) error {
	table := tablewriter.NewWriter(w)
	table.Header("Churn Probability", "Risk", "Recommendation")
	table.Append(p.Display, p.Tier, p.Message)
	if err := table.Render(); err != nil {
		return err
	}

	if len(p.Insights) == 0 {
		return nil
	}

	notes := tablewriter.NewWriter(w)
	notes.Header("Insight", "Note")
	for _, n := range p.Insights {
		notes.Append(n.Title, n.Text)
	}
	return notes.Render()
}

func printSchemaTable(w io.Writer, s *client.Schema) error {
	table := tablewriter.NewWriter(w)
	table.Header("#", "Field", "Kind", "Source", "Values")

	for i, f := range s.Fields {
		table.Append(
			fmt.Sprintf("%d", i+1),
			f.Name,
			string(f.Kind),
			string(f.Source),
			describeValues(f),
		)
	}

	return table.Render()
}

func describeValues(f features.FieldSpec) string {
	switch {
	case f.Fixed != "":
		return "= " + f.Fixed
	case len(f.Categories) > 0:
		return strings.Join(f.Categories, " | ")
	case f.Min != nil && f.Max != nil:
		return fmt.Sprintf("%g..%g", *f.Min, *f.Max)
	default:
		return ""
	}
}
