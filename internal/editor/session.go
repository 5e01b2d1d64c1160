package editor

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// RenderFunc turns a resume into preview HTML.
type RenderFunc func(types.ResumeData) (string, error)

// Preview is a rendered snapshot of the document.
type Preview struct {
	HTML       string    `json:"html"`
	Version    uint64    `json:"version"`
	RenderedAt time.Time `json:"renderedAt"`
}

// State is a consistent view of a session.
type State struct {
	ID       string           `json:"id"`
	Data     types.ResumeData `json:"data"`
	Step     Step             `json:"step"`
	Activity Activity         `json:"activity"`
	Version  uint64           `json:"version"`
}

// SessionOptions configures new sessions.
type SessionOptions struct {
	Debounce time.Duration
	Render   RenderFunc // defaults to rendering.RenderHTML
	NewID    document.IDFunc
}

// Session is one user's editing state. All document changes go through its
// mutex, so concurrent requests apply as a strict sequence.
type Session struct {
	id     string
	render RenderFunc

	mu       sync.Mutex
	doc      *document.Document
	step     Step
	activity Activity
	version  uint64
	preview  Preview
	subs     map[chan Preview]struct{}
	closed   bool

	scheduler *Scheduler
	lastSeen  atomic.Int64
}

// NewSession creates a session over an empty resume and renders its first preview.
func NewSession(id string, opts SessionOptions) *Session {
	if opts.Render == nil {
		opts.Render = rendering.RenderHTML
	}
	var docOpts []document.Option
	if opts.NewID != nil {
		docOpts = append(docOpts, document.WithIDFunc(opts.NewID))
	}
	s := &Session{
		id:     id,
		render: opts.Render,
		doc:    document.New(docOpts...),
		subs:   make(map[chan Preview]struct{}),
	}
	s.scheduler = NewScheduler(opts.Debounce, s.refreshPreview)
	s.touch()
	s.refreshPreview()
	return s
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// State returns a deep copy of the session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Data returns a deep copy of the document.
func (s *Session) Data() types.ResumeData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Snapshot()
}

// Mutate applies fn to the document as one atomic transition and schedules a
// preview refresh. Document operations validate before writing, so a failed fn
// leaves the document as it was.
func (s *Session) Mutate(fn func(d *document.Document) error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	err := fn(s.doc)
	if err == nil {
		s.version++
	}
	s.mu.Unlock()

	if err == nil {
		s.scheduler.Touch()
	}
	return err
}

// Step returns the current wizard step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// SetStep jumps to step.
func (s *Session) SetStep(step Step) error {
	if step < StepPersonal || step > StepFinalize {
		return &UnknownStepError{Name: step.String()}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = step
	return nil
}

// Advance moves one step forward or back, clamped to the wizard bounds.
func (s *Session) Advance(forward bool) Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	if forward {
		s.step = s.step.Next()
	} else {
		s.step = s.step.Prev()
	}
	return s.step
}

// Activity returns the operation in flight.
func (s *Session) Activity() Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activity
}

// Begin marks a as in flight. It fails with ErrBusy while another operation runs.
func (s *Session) Begin(a Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if !s.activity.IsIdle() {
		return ErrBusy
	}
	s.activity = a
	return nil
}

// End returns the session to Idle.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activity = Idle()
}

// Preview returns the latest debounced preview.
func (s *Session) Preview() Preview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview
}

// Flush renders the preview now, skipping the debounce, and returns it.
func (s *Session) Flush() Preview {
	s.scheduler.Flush()
	return s.Preview()
}

// Subscribe returns a channel that receives every new preview, and a function
// that cancels the subscription. A slow reader only ever sees the latest one.
func (s *Session) Subscribe() (<-chan Preview, func()) {
	ch := make(chan Preview, 1)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subs[ch]; ok {
				delete(s.subs, ch)
				close(ch)
			}
		})
	}
}

// Close stops the scheduler and ends every subscription.
func (s *Session) Close() {
	s.scheduler.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for ch := range s.subs {
		delete(s.subs, ch)
		close(ch)
	}
}

func (s *Session) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

// LastSeen returns when the session was last looked up.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) stateLocked() State {
	return State{
		ID:       s.id,
		Data:     s.doc.Snapshot(),
		Step:     s.step,
		Activity: s.activity,
		Version:  s.version,
	}
}

// refreshPreview renders outside the lock and publishes the result unless a
// newer preview already landed.
func (s *Session) refreshPreview() {
	s.mu.Lock()
	data := s.doc.Snapshot()
	version := s.version
	s.mu.Unlock()

	html, err := s.render(data)
	if err != nil {
		log.Error().Err(err).Str("session", s.id).Uint64("version", version).Msg("preview render failed")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || (version < s.preview.Version) {
		return
	}
	s.preview = Preview{HTML: html, Version: version, RenderedAt: time.Now()}
	for ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s.preview
	}
}
