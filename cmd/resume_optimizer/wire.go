package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/udit/resume-optimizer/internal/config"
	"github.com/udit/resume-optimizer/internal/extract"
	"github.com/udit/resume-optimizer/internal/ingest"
	"github.com/udit/resume-optimizer/internal/llm"
	"github.com/udit/resume-optimizer/internal/logger"
	"github.com/udit/resume-optimizer/internal/match"
	"github.com/udit/resume-optimizer/internal/optimize"
	"github.com/udit/resume-optimizer/internal/pipeline"
	"github.com/udit/resume-optimizer/internal/store"
)

// app bundles the collaborators a command wires up before running.
type app struct {
	log       *zap.Logger
	client    *llm.GeminiClient
	extractor extract.Service
	resumes   store.Resumes
	pipeline  *pipeline.Pipeline
}

// newApp builds the pipeline and its collaborators from a validated
// config. The caller must Close the returned app.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	log, err := logger.New(cfg.JSONLogs, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	llmCfg := llm.DefaultConfig()
	llmCfg.ApplyOverrides(cfg.Models)
	llmCfg.Timeout = time.Duration(cfg.ModelTimeoutSec) * time.Second

	client, err := llm.NewGeminiClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}

	var synonyms *match.Synonyms
	if cfg.SynonymsFile != "" {
		synonyms, err = match.LoadSynonyms(cfg.SynonymsFile)
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to load synonyms: %w", err)
		}
	}

	matcher := match.New(match.Weights{
		Required:   cfg.Weights.Required,
		Preferred:  cfg.Weights.Preferred,
		Experience: cfg.Weights.Experience,
	}, synonyms)

	extractor := extract.NewCached(extract.New(client, cfg.MaxRetries))
	optimizer := optimize.New(client, matcher, cfg.MaxRetries)
	resumes := store.NewMemoryResumes()

	return &app{
		log:       log,
		client:    client,
		extractor: extractor,
		resumes:   resumes,
		pipeline:  pipeline.New(extractor, matcher, optimizer, resumes, log),
	}, nil
}

// Close releases the model client and flushes buffered logs.
func (a *app) Close() {
	_ = a.client.Close()
	_ = a.log.Sync()
}

// runInputs holds the raw text inputs for one CLI pipeline run.
type runInputs struct {
	ResumeText string
	JobText    string
}

// loadRunInputs validates the input flags, reads the resume file, and
// resolves the job posting text from a local file or a URL.
func loadRunInputs(ctx context.Context, resumePath, jobPath, jobURL string, fetch *ingest.FetchOptions) (*runInputs, error) {
	if resumePath == "" {
		return nil, fmt.Errorf("--resume is required")
	}
	if jobPath == "" && jobURL == "" {
		return nil, fmt.Errorf("either --job or --job-url must be provided")
	}
	if jobPath != "" && jobURL != "" {
		return nil, fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	resumeText, err := ingest.ReadResumeFile(resumePath)
	if err != nil {
		return nil, err
	}

	var jobText string
	if jobPath != "" {
		data, err := os.ReadFile(jobPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read job posting file: %w", err)
		}
		jobText = ingest.CleanText(string(data))
	} else {
		jobText, err = ingest.FetchJobPosting(ctx, jobURL, fetch)
		if err != nil {
			return nil, err
		}
	}

	return &runInputs{ResumeText: resumeText, JobText: jobText}, nil
}

// printJSON writes a run result to stdout as indented JSON.
func printJSON(result *pipeline.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, string(data))
	return nil
}
