package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/rendering"
)

// PreviewVersionHeader carries the document version a preview was rendered from.
const PreviewVersionHeader = "X-Preview-Version"

const pingInterval = 25 * time.Second

// handlePreview returns the latest debounced preview HTML
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	preview := sess.Preview()
	if r.URL.Query().Get("format") == "json" {
		s.jsonResponse(w, http.StatusOK, preview)
		return
	}
	writeHTML(w, preview.HTML, preview.Version)
}

// handlePreviewStream pushes a "preview" event for every new render. A client
// reconnecting with Last-Event-ID only receives versions it has not seen.
func (s *Server) handlePreviewStream(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	updates, cancel := sess.Subscribe()
	defer cancel()

	// The stream outlives the server write timeout.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	l := logger.Ctx(r.Context())
	current := sess.Preview()
	last, resumed := lastEventID(r)
	if !resumed || last != current.Version {
		if err := sse.Event("preview", current.Version, current); err != nil {
			return
		}
	}
	last = current.Version

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case preview, ok := <-updates:
			if !ok {
				sse.Error("session closed")
				return
			}
			if preview.Version <= last {
				continue
			}
			last = preview.Version
			if err := sse.Event("preview", preview.Version, preview); err != nil {
				l.Debug().Err(err).Str("session", sess.ID()).Msg("preview stream closed")
				return
			}
		case <-ticker.C:
			if err := sse.Ping(); err != nil {
				return
			}
		}
	}
}

// handlePrint returns a standalone page that opens the print dialog on load
func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	preview := sess.Flush()
	html, err := rendering.RenderPrintHTML(sess.Data())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeHTML(w, html, preview.Version)
}

// handlePDF prints the resume to an A4 PDF with headless Chrome
func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if s.pdf == nil {
		s.fail(w, r, &ErrUnavailable{Feature: "PDF export"})
		return
	}

	sess.Flush()
	data := sess.Data()
	html, err := rendering.RenderHTML(data)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	pdf, err := s.pdf.RenderPDF(r.Context(), html)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdfFilename(data.PersonalInfo.FullName)))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		logger.Ctx(r.Context()).Debug().Err(err).Msg("pdf write failed")
	}
}

func writeHTML(w http.ResponseWriter, html string, version uint64) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set(PreviewVersionHeader, strconv.FormatUint(version, 10))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// pdfFilename builds "Jane_Doe_Resume.pdf" from the name, keeping only letters,
// digits, '-' and '_'.
func pdfFilename(fullName string) string {
	var sb strings.Builder
	for _, word := range strings.Fields(fullName) {
		var part strings.Builder
		for _, r := range word {
			if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_') {
				part.WriteRune(r)
			}
		}
		if part.Len() == 0 {
			continue
		}
		sb.WriteString(part.String())
		sb.WriteByte('_')
	}
	return sb.String() + "Resume.pdf"
}
