package editor

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"simon-jot/internal/chunk"
	"simon-jot/internal/debounce"
	"simon-jot/internal/simon"
)

// DefaultFetchTimeout bounds a single chunk's brainstorm request.
const DefaultFetchTimeout = 60 * time.Second

// ErrClosed is returned by operations on a closed editor.
var ErrClosed = errors.New("editor closed")

// State is the editor buffer. Text is the trimmed plain-text projection of HTML.
type State struct {
	Title string `json:"title"`
	HTML  string `json:"html"`
	Text  string `json:"text"`
}

// Fetcher requests brainstorm prompts for a chunk of text within a backend session.
type Fetcher interface {
	Brainstorm(ctx context.Context, text, session string) (simon.Brainstorm, error)
}

// Layout provides a bounds oracle for the editor's current text once the editor is mounted.
type Layout interface {
	Oracle(text string) chunk.BoundsOracle
}

// LayoutFunc adapts a function to a Layout.
type LayoutFunc func(text string) chunk.BoundsOracle

// Oracle calls f(text).
func (f LayoutFunc) Oracle(text string) chunk.BoundsOracle {
	return f(text)
}

// Editor owns one open jot: its buffer, the debounced chunk pipeline and the per-chunk
// brainstorm responses.
type Editor struct {
	id           string
	session      string
	fetcher      Fetcher
	debouncer    *debounce.Debouncer
	fetchTimeout time.Duration
	logger       *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	state     State
	layout    Layout
	chunks    []chunk.PositionedChunk
	responses map[chunk.ID]*entry
	version   uint64
	closed    bool
	subs      map[int]chan struct{}
	nextSub   int
}

// entry is the response slot of one chunk ID. Fetches hold a pointer to the entry they were
// started for and only write if it is still current.
type entry struct {
	resp Response
}

// Option configures an Editor.
type Option func(*Editor)

// WithDebouncer replaces the default 1s debouncer.
func WithDebouncer(d *debounce.Debouncer) Option {
	return func(e *Editor) {
		e.debouncer = d
	}
}

// WithFetchTimeout bounds each brainstorm request.
func WithFetchTimeout(d time.Duration) Option {
	return func(e *Editor) {
		if d > 0 {
			e.fetchTimeout = d
		}
	}
}

// WithLogger sets the editor's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = l
	}
}

// New creates an unmounted editor for the jot id bound to a backend session.
func New(id, session string, fetcher Fetcher, opts ...Option) *Editor {
	ctx, cancel := context.WithCancel(context.Background())
	e := &Editor{
		id:           id,
		session:      session,
		fetcher:      fetcher,
		fetchTimeout: DefaultFetchTimeout,
		logger:       slog.Default(),
		ctx:          ctx,
		cancel:       cancel,
		responses:    make(map[chunk.ID]*entry),
		subs:         make(map[int]chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.debouncer == nil {
		e.debouncer = debounce.New(debounce.DefaultInterval)
	}
	e.logger = e.logger.With("jot_id", id)
	return e
}

// Session returns the backend session the editor's requests are made in.
func (e *Editor) Session() string {
	return e.session
}

// Load sets the buffer without scheduling a recompute, for restoring a saved jot.
func (e *Editor) Load(state State) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state.Text = strings.TrimSpace(state.Text)
	e.state = state
}

// SetTitle updates the jot title.
func (e *Editor) SetTitle(title string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	e.state.Title = title
	return nil
}

// OnContentChange records an edit and (re)schedules the chunk pipeline. Bursts of edits within
// the debounce interval produce one recompute, using the last text.
func (e *Editor) OnContentChange(text, html string) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	e.state.Text = strings.TrimSpace(text)
	e.state.HTML = html
	e.mu.Unlock()

	e.debouncer.Trigger(e.recompute)
	return nil
}

// Mount attaches the layout used to position chunks and schedules a recompute.
func (e *Editor) Mount(layout Layout) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	e.layout = layout
	e.mu.Unlock()

	e.debouncer.Trigger(e.recompute)
	return nil
}

// Unmount detaches the layout and drops a pending recompute. Positioned chunks stay as they
// were until the next mount.
func (e *Editor) Unmount() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	e.layout = nil
	e.debouncer.Cancel()
	e.version++
	e.notifyLocked()
	return nil
}

// recompute is the debounced step: segment, position, publish, fetch.
func (e *Editor) recompute() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	if e.layout == nil {
		e.logger.Debug("editor not mounted, keeping previous chunks")
		return
	}

	text := e.state.Text
	positioned, ok := chunk.MapPositions(chunk.Segment(text), e.layout.Oracle(text))
	if !ok {
		e.logger.Debug("layout not ready, keeping previous chunks")
		return
	}

	next := make(map[chunk.ID]*entry, len(positioned))
	started := 0
	for _, pc := range positioned {
		if ent, ok := e.responses[pc.ID]; ok && ent.resp.Status != StatusFailed {
			next[pc.ID] = ent
			continue
		}
		ent := &entry{resp: Response{Status: StatusLoading}}
		next[pc.ID] = ent
		e.startFetchLocked(pc, ent)
		started++
	}

	e.chunks = positioned
	e.responses = next
	e.version++
	e.notifyLocked()

	e.logger.Debug("chunks published", "chunks", len(positioned), "fetches_started", started, "version", e.version)
}

// startFetchLocked issues the brainstorm request for one chunk. The caller holds e.mu.
func (e *Editor) startFetchLocked(pc chunk.PositionedChunk, ent *entry) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		ctx, cancel := context.WithTimeout(e.ctx, e.fetchTimeout)
		defer cancel()

		b, err := e.fetcher.Brainstorm(ctx, pc.Text, e.session)

		e.mu.Lock()
		defer e.mu.Unlock()

		if e.closed || e.responses[pc.ID] != ent {
			e.logger.Debug("discarding stale brainstorm", "chunk_id", pc.ID.String())
			return
		}

		if err != nil {
			e.logger.Warn("brainstorm request failed", "chunk_id", pc.ID.String(), "error", err)
			ent.resp = Response{Status: StatusFailed, Error: failureMessage(err)}
		} else {
			ent.resp = Response{Status: StatusReady, Brainstorm: &b}
		}
		e.version++
		e.notifyLocked()
	}()
}

// Snapshot returns the editor's current render state.
func (e *Editor) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	views := make([]ChunkView, len(e.chunks))
	for i, pc := range e.chunks {
		view := ChunkView{PositionedChunk: pc, Response: Response{Status: StatusLoading}}
		if ent, ok := e.responses[pc.ID]; ok {
			view.Response = ent.resp.clone()
		}
		views[i] = view
	}

	return Snapshot{
		ID:      e.id,
		State:   e.state,
		Mounted: e.layout != nil,
		Pending: e.debouncer.State() == debounce.Pending,
		Version: e.version,
		Chunks:  views,
	}
}

// Response returns the current response of a rendered chunk.
func (e *Editor) Response(id chunk.ID) (ChunkView, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, pc := range e.chunks {
		if pc.ID != id {
			continue
		}
		view := ChunkView{PositionedChunk: pc, Response: Response{Status: StatusLoading}}
		if ent, ok := e.responses[id]; ok {
			view.Response = ent.resp.clone()
		}
		return view, true
	}
	return ChunkView{}, false
}

// Subscribe returns a channel that receives a signal whenever the snapshot changes, and a
// function to stop the subscription. Signals coalesce; readers should call Snapshot.
// The channel is closed when the editor closes.
func (e *Editor) Subscribe() (<-chan struct{}, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ch := make(chan struct{}, 1)
	if e.closed {
		close(ch)
		return ch, func() {}
	}

	id := e.nextSub
	e.nextSub++
	e.subs[id] = ch

	return ch, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if sub, ok := e.subs[id]; ok {
			delete(e.subs, id)
			close(sub)
		}
	}
}

func (e *Editor) notifyLocked() {
	for _, ch := range e.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Close stops the pending recompute, cancels in-flight fetches and waits for them to return.
// Results arriving after Close are discarded. Close is idempotent.
func (e *Editor) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	for id, ch := range e.subs {
		delete(e.subs, id)
		close(ch)
	}
	e.mu.Unlock()

	e.debouncer.Stop()
	e.cancel()
	e.wg.Wait()
}

func failureMessage(err error) string {
	var rfErr *simon.RequestFailedError
	if errors.As(err, &rfErr) && rfErr.Message != "" {
		return rfErr.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	return "request failed"
}
