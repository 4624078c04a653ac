package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_backend.go -package=mocks simon-jot/internal/service Backend
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_jot_service.go -package=mocks -mock_names=JotService=MockJotService simon-jot/internal/service JotService

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"simon-jot/internal/chunk"
	"simon-jot/internal/contextutil"
	"simon-jot/internal/debounce"
	"simon-jot/internal/editor"
	"simon-jot/internal/layout"
	"simon-jot/internal/simon"
	"simon-jot/internal/storage"
	"simon-jot/internal/widget"
)

// Backend is the assistant backend as seen by the service layer.
type Backend interface {
	// StartSession opens a backend session.
	StartSession(ctx context.Context) (string, error)
	// Brainstorm asks for follow-up prompts for one paragraph.
	Brainstorm(ctx context.Context, text, session string) (simon.Brainstorm, error)
	// Chat asks a free-form question.
	Chat(ctx context.Context, text, session string) (simon.ChatResponse, error)
}

// WidgetRenderer renders chat answers for display.
type WidgetRenderer interface {
	Render(resp simon.ChatResponse) widget.Rendered
}

// Jot is a jot as returned by the service.
type Jot struct {
	ID        string
	Title     string
	HTML      string
	Text      string
	SessionID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContentUpdate replaces a jot's buffer. When Text is nil it is projected from HTML.
type ContentUpdate struct {
	Title string
	HTML  string
	Text  *string
}

// QueryResponse is a rendered chat answer.
type QueryResponse struct {
	Query    string
	Widget   string
	HTML     string
	Fallback bool
}

// JotService manages jots and their open editors.
type JotService interface {
	// CreateJot stores a new, empty jot.
	CreateJot(ctx context.Context, title string) (Jot, error)
	// GetJot returns a stored jot.
	GetJot(ctx context.Context, id string) (Jot, error)
	// ListJots returns the most recently edited jots.
	ListJots(ctx context.Context, limit int) ([]Jot, error)
	// UpdateContent saves an edit and feeds it to the jot's editor.
	UpdateContent(ctx context.Context, id string, update ContentUpdate) (Jot, error)
	// MountLayout attaches the viewport used to position chunks. Fields left unset in the
	// overrides come from the default layout.
	MountLayout(ctx context.Context, id string, overrides layout.Overrides) (editor.Snapshot, error)
	// UnmountLayout detaches the viewport.
	UnmountLayout(ctx context.Context, id string) error
	// Chunks returns the editor's positioned chunks and their responses.
	Chunks(ctx context.Context, id string) (editor.Snapshot, error)
	// Subscribe returns change notifications for a jot's editor.
	Subscribe(ctx context.Context, id string) (<-chan struct{}, func(), error)
	// Query asks the backend a free-form question in the jot's session.
	Query(ctx context.Context, id, text string) (QueryResponse, error)
	// QueryBrainstorm asks one of a chunk's brainstorm questions.
	QueryBrainstorm(ctx context.Context, id string, chunkID chunk.ID, question string) (QueryResponse, error)
	// CloseJot disposes the jot's editor. It is a no-op when none is open.
	CloseJot(ctx context.Context, id string) error
	// Close disposes every open editor.
	Close()
}

// jotService implements JotService.
type jotService struct {
	store   storage.JotStore
	backend Backend
	widgets WidgetRenderer
	fetcher editor.Fetcher

	debounceInterval time.Duration
	fetchTimeout     time.Duration
	clock            debounce.Clock
	logger           *slog.Logger
	defaultLayout    layout.Monospace

	opening singleflight.Group

	mu      sync.Mutex
	editors map[string]*editor.Editor
	closed  bool
}

// Option configures the jot service.
type Option func(*jotService)

// WithDebounceInterval sets the quiet period before an editor recomputes its chunks.
func WithDebounceInterval(d time.Duration) Option {
	return func(s *jotService) {
		if d > 0 {
			s.debounceInterval = d
		}
	}
}

// WithFetchTimeout bounds each brainstorm request made by an editor.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *jotService) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithClock sets the clock editors debounce on.
func WithClock(c debounce.Clock) Option {
	return func(s *jotService) {
		s.clock = c
	}
}

// WithDefaultLayout sets the viewport a mount request's overrides apply to.
func WithDefaultLayout(grid layout.Monospace) Option {
	return func(s *jotService) {
		s.defaultLayout = grid
	}
}

// WithLogger sets the logger editors log with. Editors outlive requests, so they do not use
// the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *jotService) {
		s.logger = l
	}
}

// NewJotService creates a new JotService. cache may be nil to disable brainstorm caching.
func NewJotService(store storage.JotStore, cache storage.BrainstormCache, backend Backend, widgets WidgetRenderer, opts ...Option) JotService {
	s := &jotService{
		store:            store,
		backend:          backend,
		widgets:          widgets,
		debounceInterval: debounce.DefaultInterval,
		fetchTimeout:     editor.DefaultFetchTimeout,
		clock:            debounce.SystemClock(),
		logger:           slog.Default(),
		editors:          make(map[string]*editor.Editor),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.fetcher = &cachedFetcher{backend: backend, cache: cache, logger: s.logger}
	return s
}

// CreateJot stores a new jot. The backend session is started when the jot is first opened.
func (s *jotService) CreateJot(ctx context.Context, title string) (Jot, error) {
	logger := contextutil.LoggerFromContext(ctx)

	rec := &storage.Jot{Title: strings.TrimSpace(title)}
	if err := s.store.Create(ctx, rec); err != nil {
		logger.ErrorContext(ctx, "failed to create jot", "error", err)
		return Jot{}, WrapError(err, "failed to create jot")
	}

	logger.InfoContext(ctx, "jot created", "jot_id", rec.ID)
	return fromRecord(rec), nil
}

// GetJot returns a stored jot.
func (s *jotService) GetJot(ctx context.Context, id string) (Jot, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return Jot{}, err
	}
	return fromRecord(rec), nil
}

// ListJots returns up to limit jots, newest first.
func (s *jotService) ListJots(ctx context.Context, limit int) ([]Jot, error) {
	if limit < 0 {
		return nil, &ValidationError{Field: "limit", Message: "must not be negative"}
	}

	recs, err := s.store.List(ctx, limit)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to list jots", "error", err)
		return nil, WrapError(err, "failed to list jots")
	}

	jots := make([]Jot, len(recs))
	for i, rec := range recs {
		jots[i] = fromRecord(rec)
	}
	return jots, nil
}

// UpdateContent persists the buffer and hands the edit to the editor's debounced pipeline.
func (s *jotService) UpdateContent(ctx context.Context, id string, update ContentUpdate) (Jot, error) {
	logger := contextutil.LoggerFromContext(ctx)

	text := editor.ProjectText(update.HTML)
	if update.Text != nil {
		text = strings.TrimSpace(*update.Text)
	}

	ed, err := s.editorFor(ctx, id)
	if err != nil {
		return Jot{}, err
	}

	if err := s.store.UpdateContent(ctx, id, update.Title, update.HTML, text); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Jot{}, WrapError(ErrNotFound, "jot "+id)
		}
		logger.ErrorContext(ctx, "failed to save jot content", "jot_id", id, "error", err)
		return Jot{}, WrapError(err, "failed to save jot content")
	}

	if err := ed.SetTitle(update.Title); err != nil {
		return Jot{}, s.editorError(id, err)
	}
	if err := ed.OnContentChange(text, update.HTML); err != nil {
		return Jot{}, s.editorError(id, err)
	}

	logger.DebugContext(ctx, "jot content updated", "jot_id", id, "text_length", len(text))
	return s.GetJot(ctx, id)
}

// MountLayout validates the viewport and mounts it on the jot's editor.
func (s *jotService) MountLayout(ctx context.Context, id string, overrides layout.Overrides) (editor.Snapshot, error) {
	grid := s.defaultLayout.Apply(overrides)
	if err := grid.Validate(); err != nil {
		return editor.Snapshot{}, &ValidationError{Field: "layout", Message: err.Error()}
	}

	ed, err := s.editorFor(ctx, id)
	if err != nil {
		return editor.Snapshot{}, err
	}
	if err := ed.Mount(grid); err != nil {
		return editor.Snapshot{}, s.editorError(id, err)
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "editor mounted", "jot_id", id, "columns", grid.Columns)
	return ed.Snapshot(), nil
}

// UnmountLayout detaches the viewport. The last positioned chunks stay visible.
func (s *jotService) UnmountLayout(ctx context.Context, id string) error {
	ed, err := s.editorFor(ctx, id)
	if err != nil {
		return err
	}
	if err := ed.Unmount(); err != nil {
		return s.editorError(id, err)
	}
	return nil
}

// Chunks returns the current snapshot of the jot's editor.
func (s *jotService) Chunks(ctx context.Context, id string) (editor.Snapshot, error) {
	ed, err := s.editorFor(ctx, id)
	if err != nil {
		return editor.Snapshot{}, err
	}
	return ed.Snapshot(), nil
}

// Subscribe returns the editor's change notifications.
func (s *jotService) Subscribe(ctx context.Context, id string) (<-chan struct{}, func(), error) {
	ed, err := s.editorFor(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := ed.Subscribe()
	return ch, cancel, nil
}

// Query sends a chat query in the jot's session and renders the answer.
func (s *jotService) Query(ctx context.Context, id, text string) (QueryResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	text = strings.TrimSpace(text)
	if text == "" {
		logger.WarnContext(ctx, "empty query", "jot_id", id)
		return QueryResponse{}, &ValidationError{Field: "q", Message: "cannot be empty"}
	}

	ed, err := s.editorFor(ctx, id)
	if err != nil {
		return QueryResponse{}, err
	}

	resp, err := s.backend.Chat(ctx, text, ed.Session())
	if err != nil {
		logger.ErrorContext(ctx, "chat request failed", "jot_id", id, "error", err)
		return QueryResponse{}, WrapExternal(err, "chat request failed")
	}

	rendered := s.widgets.Render(resp)
	logger.InfoContext(ctx, "query answered", "jot_id", id, "widget", rendered.Widget, "fallback", rendered.Fallback)

	return QueryResponse{
		Query:    text,
		Widget:   rendered.Widget,
		HTML:     string(rendered.HTML),
		Fallback: rendered.Fallback,
	}, nil
}

// QueryBrainstorm asks a chunk's brainstorm question, prefixed with the chunk's goal.
func (s *jotService) QueryBrainstorm(ctx context.Context, id string, chunkID chunk.ID, question string) (QueryResponse, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return QueryResponse{}, &ValidationError{Field: "question", Message: "cannot be empty"}
	}

	ed, err := s.editorFor(ctx, id)
	if err != nil {
		return QueryResponse{}, err
	}

	view, ok := ed.Response(chunkID)
	if !ok {
		return QueryResponse{}, WrapError(ErrNotFound, "chunk "+chunkID.String())
	}
	if view.Response.Status != editor.StatusReady || view.Response.Brainstorm == nil {
		return QueryResponse{}, &ValidationError{Field: "chunk_id", Message: "chunk has no brainstorm yet"}
	}

	return s.Query(ctx, id, view.Response.Brainstorm.Goal+" "+question)
}

// CloseJot disposes the jot's editor, discarding any in-flight results.
func (s *jotService) CloseJot(ctx context.Context, id string) error {
	s.mu.Lock()
	ed, ok := s.editors[id]
	delete(s.editors, id)
	s.mu.Unlock()

	if ok {
		ed.Close()
		contextutil.LoggerFromContext(ctx).InfoContext(ctx, "editor closed", "jot_id", id)
	}
	return nil
}

// Close disposes every open editor.
func (s *jotService) Close() {
	s.mu.Lock()
	s.closed = true
	editors := s.editors
	s.editors = make(map[string]*editor.Editor)
	s.mu.Unlock()

	for _, ed := range editors {
		ed.Close()
	}
}

// editorFor returns the jot's open editor, opening it on first use. Concurrent first uses
// share one open.
func (s *jotService) editorFor(ctx context.Context, id string) (*editor.Editor, error) {
	if ed := s.openEditor(id); ed != nil {
		return ed, nil
	}

	v, err, _ := s.opening.Do(id, func() (any, error) {
		s.mu.Lock()
		ed, closed := s.editors[id], s.closed
		s.mu.Unlock()
		if closed {
			return nil, WrapError(ErrUnavailable, "service is shutting down")
		}
		if ed != nil {
			return ed, nil
		}

		ed, err := s.open(ctx, id)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			ed.Close()
			return nil, WrapError(ErrUnavailable, "service is shutting down")
		}
		s.editors[id] = ed
		return ed, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*editor.Editor), nil
}

func (s *jotService) openEditor(id string) *editor.Editor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editors[id]
}

// open loads the jot, starts its backend session if it has none and builds its editor.
func (s *jotService) open(ctx context.Context, id string) (*editor.Editor, error) {
	logger := contextutil.LoggerFromContext(ctx)

	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if rec.SessionID == "" {
		session, err := s.backend.StartSession(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "failed to start backend session", "jot_id", id, "error", err)
			return nil, WrapExternal(err, "failed to start backend session")
		}
		if err := s.store.UpdateSession(ctx, id, session); err != nil {
			return nil, WrapError(err, "failed to save backend session")
		}
		rec.SessionID = session
		logger.InfoContext(ctx, "backend session started", "jot_id", id)
	}

	ed := editor.New(id, rec.SessionID, s.fetcher,
		editor.WithDebouncer(debounce.New(s.debounceInterval, debounce.WithClock(s.clock))),
		editor.WithFetchTimeout(s.fetchTimeout),
		editor.WithLogger(s.logger),
	)
	ed.Load(editor.State{Title: rec.Title, HTML: rec.HTML, Text: rec.Text})

	logger.DebugContext(ctx, "editor opened", "jot_id", id)
	return ed, nil
}

func (s *jotService) load(ctx context.Context, id string) (*storage.Jot, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &ValidationError{Field: "id", Message: "cannot be empty"}
	}

	rec, err := s.store.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, WrapError(ErrNotFound, "jot "+id)
	}
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to load jot", "jot_id", id, "error", err)
		return nil, WrapError(err, "failed to load jot")
	}
	return rec, nil
}

// editorError maps an editor that closed underneath a request to not found.
func (s *jotService) editorError(id string, err error) error {
	if errors.Is(err, editor.ErrClosed) {
		return WrapError(ErrNotFound, "editor for jot "+id)
	}
	return err
}

func fromRecord(rec *storage.Jot) Jot {
	return Jot{
		ID:        rec.ID,
		Title:     rec.Title,
		HTML:      rec.HTML,
		Text:      rec.Text,
		SessionID: rec.SessionID,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
