package optimize

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/udit/resume-optimizer/internal/llm"
	"github.com/udit/resume-optimizer/internal/match"
	"github.com/udit/resume-optimizer/internal/prompts"
	"github.com/udit/resume-optimizer/internal/schemas"
	"github.com/udit/resume-optimizer/internal/types"
)

// DefaultMaxRetries bounds per-skill rewrite attempts before that skill
// is skipped.
const DefaultMaxRetries = 2

// Optimizer revises resumes. It is stateless apart from its
// collaborators and safe for concurrent runs.
type Optimizer struct {
	client     llm.Client
	matcher    *match.Matcher
	maxRetries int
}

// New creates an Optimizer. A nil matcher gets the default weights and
// synonym table; maxRetries < 0 selects the default budget.
func New(client llm.Client, matcher *match.Matcher, maxRetries int) *Optimizer {
	if matcher == nil {
		matcher = match.New(match.DefaultWeights(), nil)
	}
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}
	return &Optimizer{client: client, matcher: matcher, maxRetries: maxRetries}
}

// Optimize produces a revised resume for the job, or reports that no
// safe revision improves it. prior is the match report the revision is
// measured against; nil recomputes it.
//
// The error contract: an *OptimizationError means every candidate
// revision failed and the caller should fall back to the original
// resume with the prior match report. A no_improvement result is a
// normal return, not an error.
func (o *Optimizer) Optimize(ctx context.Context, resume *types.ParsedResume, job *types.JobRequirements, prior *types.MatchResult) (*types.OptimizationResult, error) {
	if resume == nil || job == nil {
		return nil, &OptimizationError{Message: "resume and job are both required"}
	}
	if prior == nil {
		prior = o.matcher.Match(resume, job)
	}
	before := prior.Score

	syn := o.matcher.Synonyms()
	candidates := findCandidates(syn, resume, prior)
	if len(candidates) == 0 {
		return unchanged(resume, before), nil
	}

	revised := resume.Clone()
	jobSkills := jobSkillSet(syn, job)

	var changes []types.Change
	var lastErr error
	for _, cand := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, &OptimizationError{Message: "optimization interrupted", Cause: err}
		}
		change, err := o.surfaceSkill(ctx, revised, job, jobSkills, cand)
		if err != nil {
			lastErr = err
			continue
		}
		changes = append(changes, change...)
	}

	if len(changes) == 0 {
		return nil, &OptimizationError{Message: "no candidate rewrite survived", Cause: lastErr}
	}

	reorderBullets(syn, revised, job)

	after := o.matcher.Match(revised, job).Score
	if after < before {
		return unchanged(resume, before), nil
	}
	return &types.OptimizationResult{
		Revised:     revised,
		BeforeScore: before,
		AfterScore:  after,
		Outcome:     types.OutcomeImproved,
		Changes:     changes,
	}, nil
}

// wireRewrite is the model's reply shape for one bullet rewrite.
type wireRewrite struct {
	Text      string `json:"text"`
	Rationale string `json:"rationale"`
}

// surfaceSkill rewrites the evidencing bullet to name the skill and adds
// the skill to the revised skill list. Rewrites that fail the provenance
// check are retried, then the skill is skipped.
func (o *Optimizer) surfaceSkill(ctx context.Context, revised *types.ParsedResume, job *types.JobRequirements, jobSkills map[string]bool, cand candidate) ([]types.Change, error) {
	syn := o.matcher.Synonyms()
	bullet := &revised.Experience[cand.exp].Bullets[cand.bullet]
	spanText := revised.SpanText(bullet.Span)

	tpl, err := prompts.Get(prompts.OptimizationFile, prompts.KeyRewrite)
	if err != nil {
		return nil, &OptimizationError{Message: "rewrite prompt unavailable", Cause: err}
	}
	schema, err := schemas.Get(schemas.Rewrite)
	if err != nil {
		return nil, &OptimizationError{Message: "rewrite schema unavailable", Cause: err}
	}
	prompt := prompts.Format(tpl, map[string]string{
		"Skill":    cand.skill,
		"JobTitle": job.Title,
		"Bullet":   bullet.Text,
		"Evidence": spanText,
		"Schema":   schema,
	})

	allowed := allowedTerms(syn, bullet.Text, spanText, cand.skill)

	var lastErr error
	for attempt := 0; attempt <= o.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := o.client.Complete(ctx, llm.Request{
			Prompt: prompt,
			Schema: schemas.Rewrite,
			Tier:   llm.TierAdvanced,
		})
		if err != nil {
			lastErr = err
			continue
		}

		var wire wireRewrite
		if err := json.Unmarshal([]byte(out), &wire); err != nil {
			lastErr = &llm.SchemaViolationError{Schema: schemas.Rewrite, Cause: err}
			continue
		}

		text := strings.TrimSpace(wire.Text)
		if text == "" || text == bullet.Text {
			lastErr = &OptimizationError{Message: fmt.Sprintf("rewrite for %q left the bullet unchanged", cand.skill)}
			continue
		}
		if !grounded(syn, text, allowed, jobSkills) {
			lastErr = &OptimizationError{Message: fmt.Sprintf("rewrite for %q introduced unevidenced claims", cand.skill)}
			continue
		}
		if !mentionsSkill(syn.Aliases(cand.canon), text) {
			lastErr = &OptimizationError{Message: fmt.Sprintf("rewrite for %q does not name it", cand.skill)}
			continue
		}

		field := fmt.Sprintf("experience[%d].bullets[%d]", cand.exp, cand.bullet)
		changes := []types.Change{{
			Field:     field,
			Original:  bullet.Text,
			Revised:   text,
			Rationale: strings.TrimSpace(wire.Rationale),
		}}
		// Span untouched: the revision still traces to the same source text.
		bullet.Text = text

		if !containsSkill(syn, revised.Skills, cand.canon) {
			revised.Skills = types.NormalizeSkills(append(revised.Skills, cand.skill))
			changes = append(changes, types.Change{
				Field:     "skills",
				Revised:   types.NormalizeSkill(cand.skill),
				Rationale: "evidenced by " + field,
			})
		}
		return changes, nil
	}
	return nil, lastErr
}

func containsSkill(syn *match.Synonyms, skills []string, canon string) bool {
	for _, s := range skills {
		if syn.Canonical(s) == canon {
			return true
		}
	}
	return false
}

func unchanged(resume *types.ParsedResume, score float64) *types.OptimizationResult {
	return &types.OptimizationResult{
		Revised:     resume.Clone(),
		BeforeScore: score,
		AfterScore:  score,
		Outcome:     types.OutcomeNoImprovement,
	}
}

// reorderBullets front-loads job-relevant bullets within each role. The
// sort is stable, so bullets the job does not distinguish keep their
// resume order.
func reorderBullets(syn *match.Synonyms, resume *types.ParsedResume, job *types.JobRequirements) {
	want := relevanceTokens(syn, job)
	if len(want) == 0 {
		return
	}
	for i := range resume.Experience {
		bullets := resume.Experience[i].Bullets
		if len(bullets) < 2 {
			continue
		}
		scores := make([]int, len(bullets))
		for j, b := range bullets {
			scores[j] = bulletRelevance(syn, b.Text, want)
		}
		order := make([]int, len(bullets))
		for j := range order {
			order[j] = j
		}
		sort.SliceStable(order, func(a, b int) bool {
			return scores[order[a]] > scores[order[b]]
		})
		reordered := make([]types.Bullet, len(bullets))
		for j, idx := range order {
			reordered[j] = bullets[idx]
		}
		resume.Experience[i].Bullets = reordered
	}
}

// relevanceTokens is the canonical vocabulary that makes a bullet
// job-relevant: skills as whole names and as tokens, plus
// responsibility text.
func relevanceTokens(syn *match.Synonyms, job *types.JobRequirements) map[string]bool {
	want := make(map[string]bool)
	add := func(s string) {
		want[syn.Canonical(s)] = true
		for token := range match.Tokenize(s) {
			want[syn.Canonical(token)] = true
		}
	}
	for _, s := range job.RequiredSkills {
		add(s)
	}
	for _, s := range job.PreferredSkills {
		add(s)
	}
	for token := range match.Tokenize(job.Responsibilities) {
		want[syn.Canonical(token)] = true
	}
	return want
}

func bulletRelevance(syn *match.Synonyms, text string, want map[string]bool) int {
	hits := 0
	for token := range match.Tokenize(text) {
		if want[syn.Canonical(token)] {
			hits++
		}
	}
	return hits
}
