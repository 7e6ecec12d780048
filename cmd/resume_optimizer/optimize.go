package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/udit/resume-optimizer/internal/config"
	"github.com/udit/resume-optimizer/internal/ingest"
	"github.com/udit/resume-optimizer/internal/pipeline"
	"github.com/udit/resume-optimizer/internal/render"
)

var optimizeCommand = &cobra.Command{
	Use:   "optimize",
	Short: "Rewrite a resume to better match a job posting",
	Long: `Runs the full pipeline: parses the resume and the job posting, scores their
compatibility, and rewrites the resume to surface skills the posting asks for
that the resume's own text already supports. Every change carries a rationale
pointing at the supporting source text; nothing is invented.

With --out the optimized resume is also rendered to a LaTeX document.`,
	RunE: runOptimize,
}

var (
	optimizeConfigPath string
	optimizeResume     string
	optimizeJob        string
	optimizeJobURL     string
	optimizeAPIKey     string
	optimizeTemplate   string
	optimizeOut        string
	optimizeUseBrowser bool
	optimizeJSON       bool
	optimizeVerbose    bool
	optimizeJSONLogs   bool
)

func init() {
	optimizeCommand.Flags().StringVar(&optimizeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	optimizeCommand.Flags().StringVarP(&optimizeResume, "resume", "r", "", "Path to resume file (.txt, .md, .pdf, or .docx)")
	optimizeCommand.Flags().StringVarP(&optimizeJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	optimizeCommand.Flags().StringVar(&optimizeJobURL, "job-url", "", "URL to fetch the job posting from (mutually exclusive with --job)")
	optimizeCommand.Flags().StringVar(&optimizeAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	optimizeCommand.Flags().StringVarP(&optimizeTemplate, "template", "t", "", "Path to a custom LaTeX template (defaults to the built-in one)")
	optimizeCommand.Flags().StringVarP(&optimizeOut, "out", "o", "", "Write the optimized resume as a LaTeX document to this file")
	optimizeCommand.Flags().BoolVar(&optimizeUseBrowser, "use-browser", false, "Use headless browser for JavaScript-rendered job pages (requires Chrome)")
	optimizeCommand.Flags().BoolVar(&optimizeJSON, "json", false, "Print the raw run result as JSON instead of a report")
	optimizeCommand.Flags().BoolVarP(&optimizeVerbose, "verbose", "v", false, "Print the parsed resume and job before the reports")
	optimizeCommand.Flags().BoolVar(&optimizeJSONLogs, "json-logs", false, "Emit logs as JSON")

	rootCmd.AddCommand(optimizeCommand)
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.Load(optimizeConfigPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()

	// Flags win over both the config file and the environment.
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = optimizeAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = optimizeVerbose
	}
	if cmd.Flags().Changed("json-logs") {
		cfg.JSONLogs = optimizeJSONLogs
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	app, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	fetch := ingest.DefaultFetchOptions()
	fetch.UseBrowser = optimizeUseBrowser
	fetch.Log = app.log

	inputs, err := loadRunInputs(ctx, optimizeResume, optimizeJob, optimizeJobURL, fetch)
	if err != nil {
		return err
	}

	printer := render.NewPrinter(os.Stdout)

	result, err := app.pipeline.Run(ctx, pipeline.Request{
		ResumeText: inputs.ResumeText,
		JobText:    inputs.JobText,
	})
	if err != nil {
		// A failed optimization still leaves the match report usable.
		if result != nil && result.Match != nil && !optimizeJSON {
			printer.PrintMatch(result.Match)
		}
		return err
	}

	if optimizeJSON {
		return printJSON(result)
	}

	if cfg.Verbose {
		printer.PrintResume(result.Resume)
		printer.PrintJob(result.Job)
	}
	printer.PrintMatch(result.Match)
	printer.PrintOptimization(result.Optimization)

	if optimizeOut != "" {
		if err := writeLaTeX(result, optimizeOut, optimizeTemplate); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", optimizeOut)
	}

	return nil
}

// writeLaTeX renders the optimized resume and writes it to path,
// creating parent directories as needed.
func writeLaTeX(result *pipeline.Result, path, templatePath string) error {
	if result.Optimization == nil || result.Optimization.Revised == nil {
		return fmt.Errorf("no optimized resume to render")
	}

	latex, err := render.RenderLaTeX(result.Optimization.Revised, templatePath)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(latex), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}
