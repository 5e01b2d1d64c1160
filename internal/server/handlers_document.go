package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jonathan/resume-builder/internal/document"
)

// multipartOverhead allows for boundaries and part headers on top of the file.
const multipartOverhead = 64 << 10

// FieldValue is a form value sent as a JSON string, boolean or number. It is
// stored as text; the document parses booleans where a field needs one.
type FieldValue string

// UnmarshalJSON accepts strings, booleans, numbers and null.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FieldValue(s)
		return nil
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*v = FieldValue(data)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("value must be a string, boolean or number")
	}
	*v = FieldValue(n.String())
	return nil
}

type fieldRequest struct {
	Field string     `json:"field" validate:"required"`
	Value FieldValue `json:"value"`
}

type skillRequest struct {
	Name string `json:"name" validate:"required"`
}

type addedResponse struct {
	ID    string `json:"id"`
	Focus string `json:"focus"`
}

// handleUpdateField sets one field of personalInfo or theme
func (s *Server) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req fieldRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	section := document.Section(r.PathValue("section"))
	err = sess.Mutate(func(d *document.Document) error {
		return d.UpdateField(section, req.Field, string(req.Value))
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"updated": true})
}

// handleAddItem appends an empty entry to a list
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	list, err := document.ParseList(r.PathValue("list"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var id string
	err = sess.Mutate(func(d *document.Document) error {
		id, err = d.AddItem(list)
		return err
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, addedResponse{ID: id, Focus: id})
}

// handleUpdateItem sets one field of a list entry. A missing entry is not an error.
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	list, err := document.ParseList(r.PathValue("list"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req fieldRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	var updated bool
	err = sess.Mutate(func(d *document.Document) error {
		updated, err = d.UpdateItem(list, r.PathValue("itemId"), req.Field, string(req.Value))
		return err
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"updated": updated})
}

// handleRemoveItem removes a list entry
func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	list, err := document.ParseList(r.PathValue("list"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var removed bool
	err = sess.Mutate(func(d *document.Document) error {
		removed, err = d.RemoveItem(list, r.PathValue("itemId"))
		return err
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"removed": removed})
}

// handleAddSkill adds a named skill from the skills step input
func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req skillRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	var id string
	var added bool
	err = sess.Mutate(func(d *document.Document) error {
		id, added = d.AddSkill(strings.TrimSpace(req.Name))
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !added {
		s.fail(w, r, &ErrValidation{Field: "name", Message: "required"})
		return
	}
	s.jsonResponse(w, http.StatusCreated, addedResponse{ID: id, Focus: id})
}

// handleAddCustomItem appends an empty item to a custom section
func (s *Server) handleAddCustomItem(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	sectionID := r.PathValue("sectionId")
	var id string
	var ok bool
	err = sess.Mutate(func(d *document.Document) error {
		id, ok = d.AddCustomItem(sectionID)
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "custom section not found: "+sectionID)
		return
	}
	s.jsonResponse(w, http.StatusCreated, addedResponse{ID: id, Focus: id})
}

// handleUpdateCustomItem sets one field of a custom section item
func (s *Server) handleUpdateCustomItem(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req fieldRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	var updated bool
	err = sess.Mutate(func(d *document.Document) error {
		updated, err = d.UpdateCustomItem(r.PathValue("sectionId"), r.PathValue("itemId"), req.Field, string(req.Value))
		return err
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"updated": updated})
}

// handleRemoveCustomItem removes an item from a custom section
func (s *Server) handleRemoveCustomItem(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var removed bool
	err = sess.Mutate(func(d *document.Document) error {
		removed = d.RemoveCustomItem(r.PathValue("sectionId"), r.PathValue("itemId"))
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"removed": removed})
}

// handleUploadProfileImage stores an uploaded photo as a data URI
func (s *Server) handleUploadProfileImage(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data, _, err := s.readFormFile(w, r, "image", s.maxImageBytes)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		s.fail(w, r, &ErrUnsupportedMedia{ContentType: mt.String(), Expected: "an image"})
		return
	}

	uri := "data:" + mediaType(mt.String()) + ";base64," + base64.StdEncoding.EncodeToString(data)
	err = sess.Mutate(func(d *document.Document) error {
		return d.UpdateField(document.SectionPersonalInfo, "profileImage", uri)
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"profileImage": uri})
}

// handleRemoveProfileImage clears the photo
func (s *Server) handleRemoveProfileImage(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	err = sess.Mutate(func(d *document.Document) error {
		return d.UpdateField(document.SectionPersonalInfo, "profileImage", "")
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// uploadedFile is a multipart part read into memory.
type uploadedFile struct {
	Name        string
	ContentType string
}

// readFormFile reads the multipart part named field, rejecting files over limit.
func (s *Server) readFormFile(w http.ResponseWriter, r *http.Request, field string, limit int64) ([]byte, uploadedFile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	if err := r.ParseMultipartForm(limit + multipartOverhead); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return nil, uploadedFile{}, &ErrPayloadTooLarge{Limit: limit}
		}
		return nil, uploadedFile{}, &ErrValidation{Field: field, Message: "expected a multipart form"}
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	f, header, err := r.FormFile(field)
	if err != nil {
		return nil, uploadedFile{}, &ErrValidation{Field: field, Message: "required"}
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, uploadedFile{}, err
	}
	if int64(len(data)) > limit {
		return nil, uploadedFile{}, &ErrPayloadTooLarge{Limit: limit}
	}
	if len(data) == 0 {
		return nil, uploadedFile{}, &ErrValidation{Field: field, Message: "file is empty"}
	}
	return data, uploadedFile{Name: header.Filename, ContentType: header.Header.Get("Content-Type")}, nil
}

func mediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.TrimSpace(mt)
}
