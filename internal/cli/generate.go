package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"resumecanvas/internal/ats"
	"resumecanvas/internal/canvas"
	"resumecanvas/internal/common"
	"resumecanvas/internal/config"
	"resumecanvas/internal/errors"
	"resumecanvas/internal/fill"
	"resumecanvas/internal/layout"
	"resumecanvas/internal/pdf"
	"resumecanvas/internal/render"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [template-file] [user-data-file]",
	Short: "Generate a filled resume from a template and user data",
	Long: `Generate a resume by filling a canvas template with user data. The
template's placeholder tokens are resolved against the user data, the filled
document is linearized into reading order, rendered to semantic HTML, and
scored against ATS heuristics.

Pass --job to tailor the generated summary and keyword analysis to a job
description. Pass --pdf to also export the rendered resume as a PDF via
headless Chrome.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Generated resumes carry structured element and section data, so
		// only JSON output is supported.
		if generateConfig.OutputFormat == "" {
			generateConfig.OutputFormat = "json"
		}
		return common.ValidateOutputFormat(generateConfig.OutputFormat, []string{"json"})
	},
	RunE: runGenerate,
}

var generateConfig common.CommandConfig
var generateJobFile string
var generatePDFFile string

func init() {
	generateCmd.Flags().StringVarP(&generateConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	generateCmd.Flags().StringVar(&generateConfig.OutputFormat, "format", "", "Output format: json")
	generateCmd.Flags().StringVar(&generateJobFile, "job", "", "Job description file to tailor the resume to")
	generateCmd.Flags().StringVar(&generatePDFFile, "pdf", "", "Also export the rendered resume as a PDF to this path")

	_ = generateCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"json"}, cobra.ShellCompDirectiveNoFileComp
	})
}

// generateInput holds the parsed template, user data, and optional job
// description for a generation run.
type generateInput struct {
	Template       canvas.Document
	User           canvas.UserData
	JobDescription string
}

// generatedResume is the structured output of a generation run.
type generatedResume struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"createdAt"`
	Elements  []canvas.Element `json:"elements"`
	Sections  []canvas.Section `json:"sections"`
	HTML      string           `json:"html"`
	ATSReport ats.Report       `json:"atsReport"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	files := args
	if generateJobFile != "" {
		files = append(files, generateJobFile)
	}

	createInput := func(contents []string) (generateInput, error) {
		doc, err := parseDocument(contents[0])
		if err != nil {
			return generateInput{}, err
		}
		var user canvas.UserData
		if err := json.Unmarshal([]byte(contents[1]), &user); err != nil {
			return generateInput{}, fmt.Errorf("failed to parse user data: %w", err)
		}
		input := generateInput{Template: doc, User: user}
		if len(contents) > 2 {
			input.JobDescription = contents[2]
		}
		return input, nil
	}

	logDetails := func(input generateInput, cmdCfg common.CommandConfig) {
		logger.Info("Generating resume",
			"template_elements", len(input.Template.Elements),
			"template_sections", len(input.Template.Sections),
			"has_job_description", input.JobDescription != "",
			"output_format", cmdCfg.OutputFormat)
	}

	generateOperation := func(ctx context.Context, input generateInput) (generatedResume, error) {
		filled := fill.Fill(ctx, input.Template.Elements, input.Template.Sections, input.User, input.JobDescription, fill.Options{
			Summary: buildSummaryProvider(cfg, logger),
		})

		doc := canvas.Document{
			Elements: filled.Elements,
			Sections: filled.Sections,
		}
		tree, err := layout.Linearize(&doc, layout.Options{LineEps: cfg.Layout.LineEps})
		if err != nil {
			return generatedResume{}, err
		}

		resume := generatedResume{
			ID:        uuid.NewString(),
			CreatedAt: time.Now().UTC(),
			Elements:  filled.Elements,
			Sections:  filled.Sections,
			HTML:      render.HTML(tree),
			ATSReport: ats.Score(tree, input.JobDescription, scoringConfig(cfg)),
		}

		if generatePDFFile != "" {
			if err := exportPDF(ctx, cfg, logger, resume.HTML); err != nil {
				return generatedResume{}, err
			}
		}
		return resume, nil
	}

	err = common.RunFileCommand(
		cmd.Context(),
		logger,
		generateConfig,
		files,
		createInput,
		generateOperation,
		logDetails,
	)
	if err != nil {
		return fmt.Errorf("failed to generate resume: %w", err)
	}

	logger.Info("Generation completed successfully")
	return nil
}

func exportPDF(ctx context.Context, cfg *config.Config, logger *errors.Logger, html string) error {
	renderer := buildPDFRenderer(cfg, logger)
	if renderer == nil {
		return fmt.Errorf("PDF export is disabled in configuration")
	}

	pdfBytes, err := renderer.RenderHTMLToPDF(ctx, html, pdf.Options{})
	if err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	if err := os.WriteFile(generatePDFFile, pdfBytes, 0o600); err != nil {
		return fmt.Errorf("failed to write PDF file: %w", err)
	}

	logger.Info("PDF exported", "file", generatePDFFile, "bytes", len(pdfBytes))
	return nil
}
