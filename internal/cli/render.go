package cli

import (
	"fmt"
	"strings"

	"resumecanvas/internal/common"
	"resumecanvas/internal/layout"
	"resumecanvas/internal/render"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [canvas-file]",
	Short: "Render a canvas document to semantic HTML or plain text",
	Long: `Render a canvas resume document into a semantic output format. The
document is linearized into reading order, then emitted as semantic HTML
(headings, sections, lists) or as plain text suitable for pasting into
web forms.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var renderOutputFile string
var renderMode string

func init() {
	renderCmd.Flags().StringVarP(&renderOutputFile, "output", "o", "", "Output file path (default: stdout)")
	renderCmd.Flags().StringVar(&renderMode, "mode", "html", "Render mode: html or text")

	_ = renderCmd.RegisterFlagCompletionFunc("mode", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"html", "text"}, cobra.ShellCompDirectiveNoFileComp
	})
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	mode := render.Mode(strings.ToLower(strings.TrimSpace(renderMode)))
	if mode != render.ModeHTML && mode != render.ModeText {
		return fmt.Errorf("invalid render mode %q (expected html or text)", renderMode)
	}

	fileProcessor := common.NewFileProcessor(logger)
	contents, err := fileProcessor.ValidateAndReadFiles(args[0])
	if err != nil {
		return err
	}

	doc, err := parseDocument(contents[0])
	if err != nil {
		return err
	}

	logger.Info("Rendering canvas document",
		"elements", len(doc.Elements),
		"mode", string(mode))

	tree, err := layout.Linearize(&doc, layout.Options{LineEps: cfg.Layout.LineEps})
	if err != nil {
		return err
	}

	output, err := render.Render(tree, mode)
	if err != nil {
		return err
	}

	if renderOutputFile != "" {
		if err := fileProcessor.WriteFile(renderOutputFile, output); err != nil {
			return err
		}
		logger.Info("Output written successfully", "file", renderOutputFile, "mode", string(mode))
	} else {
		fmt.Print(output)
	}

	return nil
}
