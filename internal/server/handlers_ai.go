package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/importer"
	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/types"
)

type importTextRequest struct {
	Text string `json:"text"`
	URL  string `json:"url" validate:"omitempty,url"`
}

type suggestSkillsResponse struct {
	Added  []string      `json:"added"`
	Skills []types.Skill `json:"skills"`
}

// handleGenerateSummary writes a professional summary from the header and work history
func (s *Server) handleGenerateSummary(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	summary, err := sess.GenerateSummary(r.Context(), s.assistant)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"summary": summary})
}

// handleEnhanceExperience rewrites one experience description
func (s *Server) handleEnhanceExperience(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	description, err := sess.EnhanceExperience(r.Context(), s.assistant, r.PathValue("itemId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"description": description})
}

// handleSuggestSkills merges suggested skills for the target job title
func (s *Server) handleSuggestSkills(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	added, err := sess.SuggestSkills(r.Context(), s.assistant)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if added == nil {
		added = []string{}
	}
	s.jsonResponse(w, http.StatusOK, suggestSkillsResponse{Added: added, Skills: sess.Data().Skills})
}

// handleImport parses an uploaded file, pasted text or a profile URL into the document.
// Every parse failure is reported with the same notice.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	in, err := s.importInput(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if _, err := sess.Import(r.Context(), s.importer, in); err != nil {
		if errors.Is(err, editor.ErrBusy) || errors.Is(err, editor.ErrSessionClosed) {
			s.fail(w, r, err)
			return
		}
		logger.Ctx(r.Context()).Warn().Err(err).Str("session", sess.ID()).Msg("resume import failed")
		s.errorResponse(w, HTTPStatus(err), importer.FailureNotice)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.State())
}

// importInput reads a multipart "file" part or a JSON {"text"} or {"url"} body.
func (s *Server) importInput(w http.ResponseWriter, r *http.Request) (importer.Input, error) {
	contentType := mediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(contentType, "multipart/") {
		data, header, err := s.readFormFile(w, r, "file", s.maxUploadBytes)
		if err != nil {
			return importer.Input{}, err
		}
		return importer.Input{File: &importer.File{
			Name:        header.Name,
			ContentType: header.ContentType,
			Data:        data,
		}}, nil
	}

	var req importTextRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		return importer.Input{}, err
	}
	hasText, hasURL := strings.TrimSpace(req.Text) != "", strings.TrimSpace(req.URL) != ""
	if hasText == hasURL {
		return importer.Input{}, &ErrValidation{Field: "text", Message: "provide either text or url"}
	}
	return importer.Input{Text: req.Text, URL: req.URL}, nil
}
