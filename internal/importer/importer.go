// Package importer turns an uploaded resume file, pasted text or a public
// profile URL into a partial resume by asking the model to structure it.
package importer

import (
	"context"
	"encoding/json"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/fetch"
	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/rs/zerolog/log"
)

// FailureNotice is the single message shown to the user for any import failure.
const FailureNotice = "Failed to parse resume. Please try again or enter details manually."

// File is an uploaded document.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Input holds exactly one of File, Text or URL.
type Input struct {
	File *File
	Text string
	URL  string
}

// Options tune how content is prepared.
type Options struct {
	// ExtractPDFLocally sends the text layer of a PDF instead of the document.
	ExtractPDFLocally bool
	// NewID generates entity ids; defaults to uuid.
	NewID func() string
	// Fetch configures URL imports; nil uses fetch.DefaultOptions.
	Fetch *fetch.Options
}

// Importer structures resumes with an llm.Client.
type Importer struct {
	client llm.Client
	opts   Options
}

// New returns an Importer. A nil client means no credential is configured.
func New(client llm.Client, opts Options) *Importer {
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.New().String() }
	}
	return &Importer{client: client, opts: opts}
}

// content is what gets sent to the model.
type content struct {
	text   string
	note   string
	blob   *llm.Blob
	source string
}

// Import parses in into a partial resume. Every list entity gets a fresh id and
// skills without a recognised level get the default level. Any failure returns
// an error and no partial result.
func (im *Importer) Import(ctx context.Context, in Input) (types.PartialResume, error) {
	if err := validateInput(in); err != nil {
		return types.PartialResume{}, err
	}
	if im.client == nil {
		return types.PartialResume{}, ErrNoCredential
	}

	c, err := im.prepare(ctx, in)
	if err != nil {
		return types.PartialResume{}, err
	}

	schema := llm.ResumeImportSchema()
	if c.note != "" {
		schema.Description += "\n" + c.note
	}
	req := llm.StructuredRequest{
		Prompt: llm.BuildExtractionPrompt(schema, c.text),
		Tier:   llm.TierAdvanced,
	}
	if c.blob != nil {
		req.Blobs = []llm.Blob{*c.blob}
	}

	log.Debug().Str("source", c.source).Int("text_len", len(c.text)).Msg("importing resume")

	resp, err := im.client.GenerateStructured(ctx, req)
	if err != nil {
		return types.PartialResume{}, &ParseError{Stage: StageGenerate, Cause: err}
	}

	return im.decode(resp)
}

func validateInput(in Input) error {
	hasFile := in.File != nil
	hasText := strings.TrimSpace(in.Text) != ""
	hasURL := strings.TrimSpace(in.URL) != ""

	provided := 0
	for _, set := range []bool{hasFile, hasText, hasURL} {
		if set {
			provided++
		}
	}
	switch {
	case provided > 1:
		return &InputError{Message: "provide only one of a file, text or a URL"}
	case provided == 0:
		return &InputError{Message: "provide a file, text or a URL"}
	case hasFile && len(in.File.Data) == 0:
		return &InputError{Message: "file is empty"}
	case hasURL:
		if err := fetch.ValidateURL(strings.TrimSpace(in.URL)); err != nil {
			return &InputError{Message: "URL must be an absolute http or https address"}
		}
	}
	return nil
}

func (im *Importer) prepare(ctx context.Context, in Input) (content, error) {
	target := strings.TrimSpace(in.URL)
	switch {
	case in.File != nil:
		return im.prepareFile(in.File)
	case target != "":
		return im.prepareURL(ctx, target)
	}
	return prepareText(in.Text)
}

// prepareURL downloads a profile page or hosted resume. HTML pages are reduced
// to their main text; other documents are handled like uploads.
func (im *Importer) prepareURL(ctx context.Context, url string) (content, error) {
	result, err := fetch.Document(ctx, url, im.opts.Fetch)
	if err != nil {
		return content{}, &ParseError{Stage: StageFetch, Cause: err}
	}

	if !result.IsHTML() {
		return im.prepareFile(&File{
			Name:        path.Base(result.URL),
			ContentType: result.ContentType,
			Data:        result.Body,
		})
	}

	text, err := result.Text()
	if err != nil {
		return content{}, &ParseError{Stage: StagePrepare, Cause: err}
	}
	cleaned := ingestion.CleanText(text)
	if cleaned == "" {
		return content{}, &InputError{Message: "page has no text"}
	}
	return content{
		text:   cleaned,
		note:   prompts.MustGet(prompts.ImportFile, "html-source-note"),
		source: "url:" + string(result.Platform),
	}, nil
}

func (im *Importer) prepareFile(f *File) (content, error) {
	contentType := DetectContentType(f)
	switch {
	case contentType == ingestion.MIMETypeDOCX:
		text, err := ingestion.ExtractDOCXText(f.Data)
		if err != nil {
			return content{}, &ParseError{Stage: StagePrepare, Cause: err}
		}
		return content{text: text, source: "docx"}, nil

	case contentType == ingestion.MIMETypePDF && im.opts.ExtractPDFLocally:
		text, err := ingestion.ExtractPDFText(f.Data)
		if err == nil {
			return content{text: text, source: "pdf-text"}, nil
		}
		// Scanned documents have no text layer; let the model read them.
		log.Warn().Err(err).Str("file", f.Name).Msg("local PDF extraction failed, sending document")
		return blobContent(f, contentType, "PDF"), nil

	case contentType == ingestion.MIMETypePDF:
		return blobContent(f, contentType, "PDF"), nil

	case strings.HasPrefix(contentType, "image/"):
		return blobContent(f, contentType, "image"), nil

	case contentType == "text/html":
		return prepareHTML(string(f.Data))

	case strings.HasPrefix(contentType, "text/"):
		return prepareText(string(f.Data))
	}

	return content{}, &InputError{Message: "unsupported file type " + contentType}
}

func prepareText(text string) (content, error) {
	if ingestion.LooksLikeHTML(text) {
		return prepareHTML(text)
	}
	cleaned := ingestion.CleanText(text)
	if cleaned == "" {
		return content{}, &InputError{Message: "text is empty"}
	}
	return content{text: cleaned, source: "text"}, nil
}

func prepareHTML(html string) (content, error) {
	extracted, err := ingestion.ExtractHTMLText(html)
	if err != nil {
		return content{}, &ParseError{Stage: StagePrepare, Cause: err}
	}
	if extracted == "" {
		return content{}, &InputError{Message: "page has no text"}
	}
	return content{
		text:   extracted,
		note:   prompts.MustGet(prompts.ImportFile, "html-source-note"),
		source: "html",
	}, nil
}

func blobContent(f *File, contentType, kind string) content {
	return content{
		blob: &llm.Blob{MIMEType: contentType, Data: f.Data},
		note: prompts.Format(prompts.MustGet(prompts.ImportFile, "document-source-note"), map[string]string{
			"Kind": kind,
			"Name": f.Name,
		}),
		source: kind,
	}
}

// DetectContentType returns the media type of f without parameters. The
// declared type wins unless it is missing or generic.
func DetectContentType(f *File) string {
	declared := mediaType(f.ContentType)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return mediaType(mimetype.Detect(f.Data).String())
}

func mediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

func (im *Importer) decode(resp string) (types.PartialResume, error) {
	cleaned := llm.CleanJSONBlock(resp)
	if err := schemas.Validate(schemas.ResumeImport, cleaned); err != nil {
		return types.PartialResume{}, &ParseError{Stage: StageValidate, Cause: err}
	}

	var parsed types.PartialResume
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return types.PartialResume{}, &ParseError{Stage: StageDecode, Cause: err}
	}

	for i := range parsed.Experience {
		parsed.Experience[i].ID = im.opts.NewID()
	}
	for i := range parsed.Education {
		parsed.Education[i].ID = im.opts.NewID()
	}
	for i := range parsed.Skills {
		parsed.Skills[i].ID = im.opts.NewID()
		level, ok := types.ParseSkillLevel(string(parsed.Skills[i].Level))
		if !ok {
			level = types.DefaultSkillLevel
		}
		parsed.Skills[i].Level = level
	}
	return parsed, nil
}
