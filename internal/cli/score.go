package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"resumecanvas/internal/ats"
	"resumecanvas/internal/canvas"
	"resumecanvas/internal/common"
	"resumecanvas/internal/config"
	"resumecanvas/internal/layout"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score [canvas-file]",
	Short: "Score a canvas document against ATS heuristics",
	Long: `Score a canvas resume document against applicant tracking system
heuristics. The document is linearized into reading order first, then checked
for standard sections, contact details, font safety, action keywords, and
formatting hazards.

Pass --job to also compare the resume text against a job description and list
missing keywords.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		// Apply default format if not specified
		if scoreConfig.OutputFormat == "" {
			scoreConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(scoreConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runScore,
}

var scoreConfig common.CommandConfig
var scoreJobFile string

func init() {
	scoreCmd.Flags().StringVarP(&scoreConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	scoreCmd.Flags().StringVar(&scoreConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	scoreCmd.Flags().StringVar(&scoreJobFile, "job", "", "Job description file to extract keywords from")

	// Add completion for format flag
	_ = scoreCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveError
		}
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

// scoreInput pairs the canvas document with an optional job description.
type scoreInput struct {
	Document       canvas.Document
	JobDescription string
}

// parseDocument validates and decodes a raw canvas document.
func parseDocument(raw string) (canvas.Document, error) {
	var doc canvas.Document
	if err := canvas.ValidateJSON([]byte(raw)); err != nil {
		return doc, err
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return doc, fmt.Errorf("failed to parse canvas document: %w", err)
	}
	return doc, nil
}

// scoringConfig overlays configured scoring knobs on the engine defaults.
func scoringConfig(cfg *config.Config) ats.Config {
	engineCfg := ats.DefaultConfig()
	if cfg.ATS.SectionsWeight > 0 {
		engineCfg.SectionsWeight = cfg.ATS.SectionsWeight
	}
	if cfg.ATS.ContactWeight > 0 {
		engineCfg.ContactWeight = cfg.ATS.ContactWeight
	}
	if cfg.ATS.FontsWeight > 0 {
		engineCfg.FontsWeight = cfg.ATS.FontsWeight
	}
	if cfg.ATS.KeywordsWeight > 0 {
		engineCfg.KeywordsWeight = cfg.ATS.KeywordsWeight
	}
	if cfg.ATS.FormattingWeight > 0 {
		engineCfg.FormattingWeight = cfg.ATS.FormattingWeight
	}
	if cfg.ATS.KeywordPoints > 0 {
		engineCfg.KeywordPoints = cfg.ATS.KeywordPoints
	}
	return engineCfg
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	files := args
	if scoreJobFile != "" {
		files = append(files, scoreJobFile)
	}

	createInput := func(contents []string) (scoreInput, error) {
		doc, err := parseDocument(contents[0])
		if err != nil {
			return scoreInput{}, err
		}
		input := scoreInput{Document: doc}
		if len(contents) > 1 {
			input.JobDescription = contents[1]
		}
		return input, nil
	}

	logDetails := func(input scoreInput, cmdCfg common.CommandConfig) {
		logger.Info("Scoring canvas document",
			"elements", len(input.Document.Elements),
			"sections", len(input.Document.Sections),
			"output_format", cmdCfg.OutputFormat)
	}

	scoreOperation := func(ctx context.Context, input scoreInput) (ats.Report, error) {
		tree, err := layout.Linearize(&input.Document, layout.Options{LineEps: cfg.Layout.LineEps})
		if err != nil {
			return ats.Report{}, err
		}
		return ats.Score(tree, input.JobDescription, scoringConfig(cfg)), nil
	}

	err = common.RunFileCommand(
		cmd.Context(),
		logger,
		scoreConfig,
		files,
		createInput,
		scoreOperation,
		logDetails,
	)
	if err != nil {
		return fmt.Errorf("failed to score document: %w", err)
	}

	logger.Info("Scoring completed successfully")
	return nil
}
