// Package pipeline orchestrates the full analysis flow: extract both
// inputs, match, and optionally optimize. Each run is independent;
// the only shared state between runs is the extraction cache.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/udit/resume-optimizer/internal/extract"
	"github.com/udit/resume-optimizer/internal/match"
	"github.com/udit/resume-optimizer/internal/optimize"
	"github.com/udit/resume-optimizer/internal/store"
	"github.com/udit/resume-optimizer/internal/types"
)

// Request describes one run. A pre-parsed Resume, or a UserID with a
// stored resume, skips resume extraction; AnalysisOnly stops after
// matching.
type Request struct {
	UserID       string
	ResumeText   string
	Resume       *types.ParsedResume
	JobText      string
	AnalysisOnly bool

	// Progress, when set, receives stage transitions for this run.
	Progress ProgressFunc
}

// Result carries everything a run produced, including the intermediate
// records of a run that failed partway.
type Result struct {
	RunID        string                    `json:"run_id"`
	Stage        Stage                     `json:"stage"`
	Resume       *types.ParsedResume       `json:"resume,omitempty"`
	Job          *types.JobRequirements    `json:"job,omitempty"`
	Match        *types.MatchResult        `json:"match,omitempty"`
	Optimization *types.OptimizationResult `json:"optimization,omitempty"`
}

// Pipeline wires the stages together. Collaborators are injected; the
// pipeline itself holds no per-run state.
type Pipeline struct {
	extractor extract.Service
	matcher   *match.Matcher
	optimizer *optimize.Optimizer
	resumes   store.Resumes
	log       *zap.Logger
}

// New creates a Pipeline. A nil matcher gets defaults; a nil logger is
// replaced with a no-op one; resumes may be nil when no per-user recall
// is wanted.
func New(extractor extract.Service, matcher *match.Matcher, optimizer *optimize.Optimizer, resumes store.Resumes, log *zap.Logger) *Pipeline {
	if matcher == nil {
		matcher = match.New(match.DefaultWeights(), nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		extractor: extractor,
		matcher:   matcher,
		optimizer: optimizer,
		resumes:   resumes,
		log:       log,
	}
}

// Run executes one request. On failure the returned error is a
// *StageError and the Result still carries every record produced before
// the failing stage, so an optimizer failure leaves the caller with the
// match report.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	runID := uuid.NewString()
	result := &Result{RunID: runID, Stage: StageReceived}

	emit := func(stage Stage, msg string) {
		result.Stage = stage
		p.log.Debug("pipeline stage",
			zap.String("run_id", runID),
			zap.String("stage", string(stage)),
		)
		if req.Progress != nil {
			req.Progress(ProgressEvent{RunID: runID, Stage: stage, Message: msg})
		}
	}
	fail := func(stage Stage, err error) (*Result, error) {
		p.log.Warn("pipeline stage failed",
			zap.String("run_id", runID),
			zap.String("stage", string(stage)),
			zap.Error(err),
		)
		result.Stage = StageFailed
		if req.Progress != nil {
			req.Progress(ProgressEvent{RunID: runID, Stage: StageFailed, Message: fmt.Sprintf("%s: %v", stage, err)})
		}
		return result, &StageError{Stage: stage, Err: err}
	}

	p.log.Info("pipeline run starting",
		zap.String("run_id", runID),
		zap.Bool("analysis_only", req.AnalysisOnly),
	)
	emit(StageReceived, "")

	emit(StageExtracting, "")
	resume, err := p.resolveResume(ctx, &req)
	if err != nil {
		return fail(StageExtracting, err)
	}
	result.Resume = resume

	job, err := p.extractor.ExtractJob(ctx, req.JobText)
	if err != nil {
		return fail(StageExtracting, err)
	}
	result.Job = job

	emit(StageMatching, "")
	result.Match = p.matcher.Match(resume, job)

	if req.AnalysisOnly {
		emit(StageDone, "analysis complete")
		p.log.Info("pipeline run complete",
			zap.String("run_id", runID),
			zap.Float64("score", result.Match.Score),
		)
		return result, nil
	}

	emit(StageOptimizing, "")
	if p.optimizer == nil {
		return fail(StageOptimizing, &optimize.OptimizationError{Message: "no optimizer configured"})
	}
	optimization, err := p.optimizer.Optimize(ctx, resume, job, result.Match)
	if err != nil {
		return fail(StageOptimizing, err)
	}
	result.Optimization = optimization

	emit(StageDone, string(optimization.Outcome))
	p.log.Info("pipeline run complete",
		zap.String("run_id", runID),
		zap.Float64("before_score", optimization.BeforeScore),
		zap.Float64("after_score", optimization.AfterScore),
		zap.String("outcome", string(optimization.Outcome)),
	)
	return result, nil
}

// resolveResume picks the resume for a run: pre-parsed record first,
// then fresh extraction from text, then the user's stored resume.
// Fresh extractions are stored for the user as a side effect.
func (p *Pipeline) resolveResume(ctx context.Context, req *Request) (*types.ParsedResume, error) {
	if req.Resume != nil {
		return req.Resume, nil
	}

	if strings.TrimSpace(req.ResumeText) != "" {
		resume, err := p.extractor.ExtractResume(ctx, req.ResumeText)
		if err != nil {
			return nil, err
		}
		if req.UserID != "" && p.resumes != nil {
			if err := p.resumes.Put(ctx, req.UserID, resume); err != nil {
				p.log.Warn("failed to store extracted resume",
					zap.String("user_id", req.UserID),
					zap.Error(err),
				)
			}
		}
		return resume, nil
	}

	if req.UserID != "" && p.resumes != nil {
		return p.resumes.Get(ctx, req.UserID)
	}
	return nil, &extract.ExtractionError{Message: "no resume text, record, or stored user resume"}
}
