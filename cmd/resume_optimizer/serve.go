package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/udit/resume-optimizer/internal/config"
	"github.com/udit/resume-optimizer/internal/ingest"
	"github.com/udit/resume-optimizer/internal/server"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for uploading resumes, analyzing and optimizing them against job postings, and rendering LaTeX documents.`,
	RunE:  runServe,
}

var (
	serveConfigPath string
	servePort       int
	serveAPIKey     string
	serveUseBrowser bool
	serveVerbose    bool
	serveJSONLogs   bool
)

func init() {
	serveCommand.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCommand.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCommand.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	serveCommand.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Use headless browser for JavaScript-rendered job pages (requires Chrome)")
	serveCommand.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Enable debug logging")
	serveCommand.Flags().BoolVar(&serveJSONLogs, "json-logs", false, "Emit logs as JSON")

	rootCmd.AddCommand(serveCommand)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()

	// Flags win over both the config file and the environment.
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = serveAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = serveVerbose
	}
	if cmd.Flags().Changed("json-logs") {
		cfg.JSONLogs = serveJSONLogs
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
	fetch.UseBrowser = serveUseBrowser
	fetch.Log = app.log

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		Pipeline:  app.pipeline,
		Extractor: app.extractor,
		Resumes:   app.resumes,
		Fetch:     fetch,
		Log:       app.log,
	})
	if err != nil {
		return err
	}

	app.log.Info("starting server", zap.Int("port", cfg.Port))
	return srv.Start()
}
