package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/types"
)

// stepRequest carries either a step name or a direction, never both.
type stepRequest struct {
	Step      string `json:"step"`
	Direction string `json:"direction" validate:"omitempty,oneof=next prev"`
}

// themesResponse lists the theme editor presets.
type themesResponse struct {
	Fonts            []types.Font       `json:"fonts"`
	AccentColors     []string           `json:"accentColors"`
	BackgroundColors []string           `json:"backgroundColors"`
	SkillLevels      []types.SkillLevel `json:"skillLevels"`
	Default          types.Theme        `json:"default"`
	Steps            []stepInfo         `json:"steps"`
}

type stepInfo struct {
	Name  editor.Step `json:"name"`
	Label string      `json:"label"`
}

// session looks up the session named by the {id} path value.
func (s *Server) session(r *http.Request) (*editor.Session, error) {
	return s.sessions.Get(r.PathValue("id"))
}

// handleThemes returns theme presets, fonts and the wizard steps
func (s *Server) handleThemes(w http.ResponseWriter, _ *http.Request) {
	steps := make([]stepInfo, 0, len(editor.Steps()))
	for _, step := range editor.Steps() {
		steps = append(steps, stepInfo{Name: step, Label: step.Label()})
	}
	s.jsonResponse(w, http.StatusOK, themesResponse{
		Fonts:            types.Fonts,
		AccentColors:     types.AccentColors,
		BackgroundColors: types.BackgroundColors,
		SkillLevels:      types.SkillLevels,
		Default:          types.DefaultTheme(),
		Steps:            steps,
	})
}

// handleCreateSession starts an editing session over an empty resume
func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.sessions.Create()
	s.jsonResponse(w, http.StatusCreated, sess.State())
}

// handleGetSession returns the document, step and activity of a session
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.State())
}

// handleDeleteSession ends a session
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSetStep jumps to a named step or moves one step forward or back
func (s *Server) handleSetStep(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req stepRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	switch {
	case req.Step != "" && req.Direction != "":
		s.fail(w, r, &ErrValidation{Field: "step", Message: "set either step or direction"})
		return
	case req.Step != "":
		step, err := editor.ParseStep(req.Step)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if err := sess.SetStep(step); err != nil {
			s.fail(w, r, err)
			return
		}
	case req.Direction != "":
		sess.Advance(req.Direction == "next")
	default:
		s.fail(w, r, &ErrValidation{Field: "step", Message: "required"})
		return
	}

	state := sess.State()
	s.jsonResponse(w, http.StatusOK, editor.Forms(state.Step, state.Data, state.Activity))
}

// handleForm returns the form descriptor for the current step
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	state := sess.State()
	s.jsonResponse(w, http.StatusOK, editor.Forms(state.Step, state.Data, state.Activity))
}
