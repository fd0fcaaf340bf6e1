package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumecanvas/internal/ats"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "Report", &ScoreTextFormatter{})
	registry.RegisterFormatter("markdown", "Report", &ScoreMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case ats.Report:
		return "Report"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ScoreTextFormatter handles text formatting for ATS score reports
type ScoreTextFormatter struct{}

func (stf *ScoreTextFormatter) Format(data any) (string, error) {
	report, ok := data.(ats.Report)
	if !ok {
		return "", fmt.Errorf("expected ats.Report, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS SCORE ===\n\n")
	output.WriteString(fmt.Sprintf("Overall: %d/100\n\n", report.Score))

	output.WriteString("=== BREAKDOWN ===\n")
	writeCheckText(&output, "Sections", report.Breakdown.Sections)
	writeCheckText(&output, "Contact", report.Breakdown.Contact)
	writeCheckText(&output, "Fonts", report.Breakdown.Fonts)
	writeCheckText(&output, "Keywords", report.Breakdown.Keywords)
	writeCheckText(&output, "Formatting", report.Breakdown.Formatting)
	output.WriteString("\n")

	if len(report.Suggestions) > 0 {
		output.WriteString("=== SUGGESTIONS ===\n")
		for i, suggestion := range report.Suggestions {
			output.WriteString(fmt.Sprintf("%d. [%s] %s: %s\n",
				i+1, strings.ToUpper(string(suggestion.Priority)),
				suggestion.Category, suggestion.Message))
		}
		output.WriteString("\n")
	}

	if len(report.MissingKeywords) > 0 {
		output.WriteString("=== MISSING JOB KEYWORDS ===\n")
		for _, keyword := range report.MissingKeywords {
			output.WriteString(fmt.Sprintf("- %s\n", keyword))
		}
	}

	return output.String(), nil
}

func writeCheckText(output *strings.Builder, name string, check ats.CheckResult) {
	output.WriteString(fmt.Sprintf("%-12s %d/100\n", name+":", check.Score))
	for _, evidence := range check.Evidence {
		output.WriteString(fmt.Sprintf("  - %s\n", evidence))
	}
}

func (stf *ScoreTextFormatter) SupportedType() string {
	return "Report"
}

// ScoreMarkdownFormatter handles markdown formatting for ATS score reports
type ScoreMarkdownFormatter struct{}

func (smf *ScoreMarkdownFormatter) Format(data any) (string, error) {
	report, ok := data.(ats.Report)
	if !ok {
		return "", fmt.Errorf("expected ats.Report, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Score Report\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %d/100\n\n", report.Score))

	output.WriteString("## Breakdown\n\n")
	output.WriteString("| Check | Score |\n")
	output.WriteString("|-------|-------|\n")
	output.WriteString(fmt.Sprintf("| Sections | %d |\n", report.Breakdown.Sections.Score))
	output.WriteString(fmt.Sprintf("| Contact | %d |\n", report.Breakdown.Contact.Score))
	output.WriteString(fmt.Sprintf("| Fonts | %d |\n", report.Breakdown.Fonts.Score))
	output.WriteString(fmt.Sprintf("| Keywords | %d |\n", report.Breakdown.Keywords.Score))
	output.WriteString(fmt.Sprintf("| Formatting | %d |\n", report.Breakdown.Formatting.Score))
	output.WriteString("\n")

	if len(report.Suggestions) > 0 {
		output.WriteString("## Suggestions\n\n")
		for _, suggestion := range report.Suggestions {
			output.WriteString(fmt.Sprintf("- **%s** (%s): %s\n",
				suggestion.Category, suggestion.Priority, suggestion.Message))
		}
		output.WriteString("\n")
	}

	if len(report.MissingKeywords) > 0 {
		output.WriteString("## Missing Job Keywords\n\n")
		for _, keyword := range report.MissingKeywords {
			output.WriteString(fmt.Sprintf("- %s\n", keyword))
		}
	}

	return output.String(), nil
}

func (smf *ScoreMarkdownFormatter) SupportedType() string {
	return "Report"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
