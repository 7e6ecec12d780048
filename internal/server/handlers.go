package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/udit/resume-optimizer/internal/ingest"
	"github.com/udit/resume-optimizer/internal/pipeline"
	"github.com/udit/resume-optimizer/internal/render"
	"github.com/udit/resume-optimizer/internal/types"
)

// UploadResumeRequest represents the request body for POST /api/resumes.
// Text carries raw resume text; FileBase64 carries an encoded file whose
// format is inferred from Filename.
type UploadResumeRequest struct {
	UserID     string `json:"user_id,omitempty"`
	Text       string `json:"text,omitempty"`
	Filename   string `json:"filename,omitempty"`
	FileBase64 string `json:"file_base64,omitempty"`
}

// UploadResumeResponse represents the response for POST /api/resumes.
type UploadResumeResponse struct {
	UserID string              `json:"user_id"`
	Resume *types.ParsedResume `json:"resume"`
}

// RunRequest represents the request body for the analyze and optimize
// endpoints. The resume comes from ResumeText or a stored UserID; the
// job comes from JobText or JobURL.
type RunRequest struct {
	UserID     string `json:"user_id,omitempty"`
	ResumeText string `json:"resume_text,omitempty"`
	JobText    string `json:"job_text,omitempty"`
	JobURL     string `json:"job_url,omitempty"`
}

// RunErrorResponse is the error body for failed runs. Result carries the
// records produced before the failing stage, so an optimizer failure
// still delivers the match report.
type RunErrorResponse struct {
	Error  string           `json:"error"`
	Result *pipeline.Result `json:"result,omitempty"`
}

// RenderRequest represents the request body for POST /api/render.
type RenderRequest struct {
	UserID string              `json:"user_id,omitempty"`
	Resume *types.ParsedResume `json:"resume,omitempty"`
}

// handleUploadResume ingests a resume, extracts it, and stores the
// parsed record under a user ID.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	var req UploadResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Text == "" && req.FileBase64 == "" {
		s.errorResponse(w, http.StatusBadRequest, "Either text or file_base64 is required")
		return
	}

	text := ingest.CleanText(req.Text)
	if req.FileBase64 != "" {
		data, err := base64.StdEncoding.DecodeString(req.FileBase64)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid file_base64: "+err.Error())
			return
		}
		text, err = ingest.ExtractFileText(req.Filename, data)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	userID := req.UserID
	if userID == "" {
		userID = uuid.NewString()
	}

	resume, err := s.extractor.ExtractResume(r.Context(), text)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if err := s.resumes.Put(r.Context(), userID, resume); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.log.Info("resume stored", zap.String("user_id", userID))
	s.jsonResponse(w, http.StatusCreated, UploadResumeResponse{UserID: userID, Resume: resume})
}

// handleGetResume recalls a stored resume.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if userID == "" {
		s.errorResponse(w, http.StatusBadRequest, "User ID is required")
		return
	}

	resume, err := s.resumes.Get(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

// handleAnalyze runs the analysis-only pipeline: extract both inputs and
// match, no optimization.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	s.runPipeline(w, r, true)
}

// handleOptimize runs the full pipeline.
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	s.runPipeline(w, r, false)
}

func (s *Server) runPipeline(w http.ResponseWriter, r *http.Request, analysisOnly bool) {
	req, ok := s.decodeRunRequest(w, r)
	if !ok {
		return
	}

	jobText, err := s.resolveJobText(r, req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := s.pipeline.Run(r.Context(), pipeline.Request{
		UserID:       req.UserID,
		ResumeText:   ingest.CleanText(req.ResumeText),
		JobText:      jobText,
		AnalysisOnly: analysisOnly,
	})
	if err != nil {
		s.jsonResponse(w, HTTPStatus(err), RunErrorResponse{Error: err.Error(), Result: result})
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleOptimizeStream runs the full pipeline and streams stage
// transitions as SSE events, ending with the result.
func (s *Server) handleOptimizeStream(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRunRequest(w, r)
	if !ok {
		return
	}

	jobText, err := s.resolveJobText(r, req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	stream, err := newEventStream(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := s.pipeline.Run(r.Context(), pipeline.Request{
		UserID:       req.UserID,
		ResumeText:   ingest.CleanText(req.ResumeText),
		JobText:      jobText,
		AnalysisOnly: false,
		Progress: func(event pipeline.ProgressEvent) {
			stream.Emit("stage", event)
		},
	})
	if err != nil {
		stream.Fail(err.Error())
		return
	}

	stream.Emit("result", result)
	stream.Done(result.RunID, string(result.Stage))
	if werr := stream.Err(); werr != nil {
		s.log.Warn("writing sse stream", zap.Error(werr))
	}
}

// handleRender renders a resume, inline or stored, into a LaTeX document.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resume := req.Resume
	if resume == nil {
		if req.UserID == "" {
			s.errorResponse(w, http.StatusBadRequest, "Either resume or user_id is required")
			return
		}
		stored, err := s.resumes.Get(r.Context(), req.UserID)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		resume = stored
	}

	doc, err := render.RenderLaTeX(resume, "")
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/x-latex")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(doc)); err != nil {
		s.log.Warn("writing latex response", zap.Error(err))
	}
}

func (s *Server) decodeRunRequest(w http.ResponseWriter, r *http.Request) (*RunRequest, bool) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	if req.JobText == "" && req.JobURL == "" {
		s.errorResponse(w, http.StatusBadRequest, "Either job_text or job_url is required")
		return nil, false
	}
	if req.ResumeText == "" && req.UserID == "" {
		s.errorResponse(w, http.StatusBadRequest, "Either resume_text or user_id is required")
		return nil, false
	}
	return &req, true
}

// resolveJobText fetches the posting when a URL was given; otherwise it
// cleans the inline text.
func (s *Server) resolveJobText(r *http.Request, req *RunRequest) (string, error) {
	if req.JobURL != "" {
		return ingest.FetchJobPosting(r.Context(), req.JobURL, s.fetch)
	}
	return ingest.CleanText(req.JobText), nil
}
