package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/resume-atsfix/internal/db"
	"github.com/jonathan/resume-atsfix/internal/types"
)

var validate = validator.New()

// maxUploadSize bounds resume uploads. Resumes are small documents; anything
// past a few megabytes is either scanned images or not a resume.
const maxUploadSize = 10 << 20

// fixJSONRequest is the JSON body for POST /fix when no file is uploaded.
type fixJSONRequest struct {
	OriginalText string  `json:"original_text" validate:"required_without=ImprovedText"`
	ImprovedText string  `json:"improved_text" validate:"required_without=OriginalText"`
	Score        float64 `json:"score" validate:"gte=0,lte=100"`
}

// scoreJSONRequest is the JSON body for POST /score.
type scoreJSONRequest struct {
	Text string `json:"text" validate:"required,min=20"`
}

// handleFix runs a full fix. Accepts either multipart form data with a
// "resume" PDF upload (plus optional "improved_text" and "score" fields) or a
// JSON body with the resume text. Responds with the fixed PDF; the tier and
// preservation ratio ride along as headers.
func (s *Server) handleFix(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseFixRequest(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := s.pipe.Fix(r.Context(), req)
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, fmt.Sprintf("fix failed: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resume_fixed.pdf"`)
	w.Header().Set("X-Fix-Tier", string(result.Tier))
	w.Header().Set("X-Preservation-Ratio", strconv.FormatFloat(result.PreservationRatio, 'f', 4, 64))
	w.Header().Set("X-Page-Count", strconv.Itoa(result.PageCount))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.PDF); err != nil {
		// Response already committed, nothing left to do but log.
		return
	}
}

func (s *Server) parseFixRequest(r *http.Request) (types.FixRequest, error) {
	var req types.FixRequest

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return req, &ErrValidation{Field: "resume", Message: "could not parse multipart form"}
		}
		file, _, err := r.FormFile("resume")
		if err != nil {
			return req, &ErrValidation{Field: "resume", Message: "missing resume file"}
		}
		defer file.Close()

		pdfBytes, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
		if err != nil {
			return req, &ErrValidation{Field: "resume", Message: "could not read resume file"}
		}
		req.OriginalPDF = pdfBytes
		req.ImprovedText = r.FormValue("improved_text")
		if raw := r.FormValue("score"); raw != "" {
			score, err := strconv.ParseFloat(raw, 64)
			if err != nil || score < 0 || score > 100 {
				return req, &ErrValidation{Field: "score", Message: "score must be a number between 0 and 100"}
			}
			req.Score = score
		}
		return req, nil
	}

	var body fixJSONRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadSize)).Decode(&body); err != nil {
		return req, &ErrValidation{Field: "body", Message: "invalid JSON body"}
	}
	if err := validate.Struct(body); err != nil {
		return req, &ErrValidation{Field: "body", Message: err.Error()}
	}
	req.OriginalText = body.OriginalText
	req.ImprovedText = body.ImprovedText
	req.Score = body.Score
	return req, nil
}

// handleScore rates a resume without fixing it. Accepts a JSON body with the
// resume text or a multipart "resume" PDF upload.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "could not parse multipart form")
			return
		}
		file, _, err := r.FormFile("resume")
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "missing resume file")
			return
		}
		defer file.Close()

		pdfBytes, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "could not read resume file")
			return
		}
		doc, err := s.pipe.ParseLayout(pdfBytes)
		if err != nil {
			s.errorResponse(w, http.StatusUnprocessableEntity, fmt.Sprintf("could not parse PDF: %v", err))
			return
		}
		report := s.pipe.Score(doc.FullText, doc)
		s.jsonResponse(w, http.StatusOK, report)
		return
	}

	var body scoreJSONRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadSize)).Decode(&body); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(body); err != nil {
		verr := &ErrValidation{Field: "text", Message: err.Error()}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}
	report := s.pipe.Score(body.Text, nil)
	s.jsonResponse(w, http.StatusOK, report)
}

// handleListRuns returns recent fix runs, newest first.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		err := &ErrNoDatabase{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			verr := &ErrValidation{Field: "limit", Message: "limit must be between 1 and 500"}
			s.errorResponse(w, HTTPStatus(verr), verr.Error())
			return
		}
		limit = n
	}

	runs, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	if runs == nil {
		runs = []db.Run{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": runs, "count": len(runs)})
}

// handleGetRun returns one run record by ID.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.lookupRun(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, run)
}

// handleRunPDF streams the stored result PDF of a completed run.
func (s *Server) handleRunPDF(w http.ResponseWriter, r *http.Request) {
	run, err := s.lookupRun(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	blob, err := s.store.GetBlobArtifact(r.Context(), run.ID, db.StepResultPDF)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load result PDF")
		return
	}
	if len(blob) == 0 {
		nf := &ErrRunNotFound{RunID: run.ID}
		s.errorResponse(w, HTTPStatus(nf), "run has no result PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="resume_%s.pdf"`, run.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)
}

func (s *Server) lookupRun(r *http.Request) (*db.Run, error) {
	if s.store == nil {
		return nil, &ErrNoDatabase{}
	}
	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return nil, &ErrValidation{Field: "id", Message: "must be a valid UUID"}
	}
	run, err := s.store.GetRun(r.Context(), runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	if run == nil {
		return nil, &ErrRunNotFound{RunID: runID}
	}
	return run, nil
}

func isMultipart(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return len(ct) >= 19 && ct[:19] == "multipart/form-data"
}
