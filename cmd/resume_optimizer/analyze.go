package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/udit/resume-optimizer/internal/config"
	"github.com/udit/resume-optimizer/internal/ingest"
	"github.com/udit/resume-optimizer/internal/pipeline"
	"github.com/udit/resume-optimizer/internal/render"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job posting",
	Long: `Parses the resume and the job posting into structured records, then reports
the compatibility score, matched and missing skills, and per-role experience
relevance. The resume is not modified.`,
	RunE: runAnalyze,
}

var (
	analyzeConfigPath string
	analyzeResume     string
	analyzeJob        string
	analyzeJobURL     string
	analyzeAPIKey     string
	analyzeUseBrowser bool
	analyzeJSON       bool
	analyzeVerbose    bool
	analyzeJSONLogs   bool
)

func init() {
	analyzeCommand.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	analyzeCommand.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to resume file (.txt, .md, .pdf, or .docx)")
	analyzeCommand.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	analyzeCommand.Flags().StringVar(&analyzeJobURL, "job-url", "", "URL to fetch the job posting from (mutually exclusive with --job)")
	analyzeCommand.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	analyzeCommand.Flags().BoolVar(&analyzeUseBrowser, "use-browser", false, "Use headless browser for JavaScript-rendered job pages (requires Chrome)")
	analyzeCommand.Flags().BoolVar(&analyzeJSON, "json", false, "Print the raw run result as JSON instead of a report")
	analyzeCommand.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print the parsed resume and job before the match report")
	analyzeCommand.Flags().BoolVar(&analyzeJSONLogs, "json-logs", false, "Emit logs as JSON")

	rootCmd.AddCommand(analyzeCommand)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.Load(analyzeConfigPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()

	// Flags win over both the config file and the environment.
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = analyzeAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}
	if cmd.Flags().Changed("json-logs") {
		cfg.JSONLogs = analyzeJSONLogs
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
	fetch.UseBrowser = analyzeUseBrowser
	fetch.Log = app.log

	inputs, err := loadRunInputs(ctx, analyzeResume, analyzeJob, analyzeJobURL, fetch)
	if err != nil {
		return err
	}

	result, err := app.pipeline.Run(ctx, pipeline.Request{
		ResumeText:   inputs.ResumeText,
		JobText:      inputs.JobText,
		AnalysisOnly: true,
	})
	if err != nil {
		return err
	}

	if analyzeJSON {
		return printJSON(result)
	}

	printer := render.NewPrinter(os.Stdout)
	if cfg.Verbose {
		printer.PrintResume(result.Resume)
		printer.PrintJob(result.Job)
	}
	printer.PrintMatch(result.Match)

	return nil
}
