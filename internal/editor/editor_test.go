package editor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simon-jot/internal/chunk"
	"simon-jot/internal/debounce"
	"simon-jot/internal/debounce/debouncetest"
	"simon-jot/internal/simon"
)

// fakeFetcher answers brainstorm requests with "goal:<text>" unless an error is configured.
// When gate is set, every request blocks until the gate closes or the context ends.
type fakeFetcher struct {
	mu    sync.Mutex
	calls []string
	errs  map[string]error
	gate  chan struct{}
}

func (f *fakeFetcher) Brainstorm(ctx context.Context, text, session string) (simon.Brainstorm, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	err := f.errs[text]
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return simon.Brainstorm{}, ctx.Err()
		}
	}
	if err != nil {
		return simon.Brainstorm{}, err
	}
	return simon.Brainstorm{Goal: "goal:" + text + "@" + session, Questions: []string{"why " + text + "?"}}, nil
}

func (f *fakeFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// tableLayout answers every text with a fixed offset->top table.
func tableLayout(tops map[int]float64) Layout {
	return LayoutFunc(func(string) chunk.BoundsOracle {
		return chunk.BoundsFunc(func(offset int) chunk.Bounds {
			return chunk.Bounds{Top: tops[offset]}
		})
	})
}

// lineLayout places offset n at n*10 pixels.
var lineLayout = LayoutFunc(func(string) chunk.BoundsOracle {
	return chunk.BoundsFunc(func(offset int) chunk.Bounds {
		return chunk.Bounds{Top: float64(offset * 10)}
	})
})

func newTestEditor(t *testing.T, f Fetcher) (*Editor, *debouncetest.ManualClock) {
	t.Helper()
	clock := debouncetest.NewManualClock()
	e := New("jot-1", "session-1", f,
		WithDebouncer(debounce.New(time.Second, debounce.WithClock(clock))),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	t.Cleanup(e.Close)
	return e, clock
}

func allSettled(e *Editor) func() bool {
	return func() bool {
		for _, c := range e.Snapshot().Chunks {
			if c.Response.Status == StatusLoading {
				return false
			}
		}
		return true
	}
}

func TestEditor_EndToEnd(t *testing.T) {
	f := &fakeFetcher{}
	e, clock := newTestEditor(t, f)

	require.NoError(t, e.Mount(tableLayout(map[int]float64{1: 10, 14: 50})))
	require.NoError(t, e.OnContentChange("Hello world\n\nSecond para", "<p>Hello world</p><p><br></p><p>Second para</p>"))

	clock.Advance(999 * time.Millisecond)
	assert.Empty(t, e.Snapshot().Chunks, "nothing published before the quiet period")

	clock.Advance(time.Millisecond)
	snap := e.Snapshot()
	require.Len(t, snap.Chunks, 2)
	assert.Equal(t, -20.0, snap.Chunks[0].Position)
	assert.Equal(t, "Hello world", snap.Chunks[0].Text)
	assert.Equal(t, 50.0, snap.Chunks[1].Position)
	assert.Equal(t, "Second para", snap.Chunks[1].Text)
	assert.True(t, snap.Mounted)

	require.Eventually(t, allSettled(e), time.Second, 5*time.Millisecond)
	snap = e.Snapshot()
	for _, c := range snap.Chunks {
		assert.Equal(t, StatusReady, c.Response.Status)
		require.NotNil(t, c.Response.Brainstorm)
		assert.Equal(t, "goal:"+c.Text+"@session-1", c.Response.Brainstorm.Goal)
	}
	assert.ElementsMatch(t, []string{"Hello world", "Second para"}, f.Calls())
}

func TestEditor_BurstProducesOneRecompute(t *testing.T) {
	f := &fakeFetcher{}
	e, clock := newTestEditor(t, f)
	require.NoError(t, e.Mount(lineLayout))

	for _, text := range []string{"a", "ab", "abc", "abcd"} {
		require.NoError(t, e.OnContentChange(text, ""))
		clock.Advance(300 * time.Millisecond)
	}
	clock.Advance(time.Second)

	snap := e.Snapshot()
	require.Len(t, snap.Chunks, 1)
	assert.Equal(t, "abcd", snap.Chunks[0].Text)

	require.Eventually(t, allSettled(e), time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"abcd"}, f.Calls(), "only the settled text is fetched")
}

func TestEditor_DropsEmptyChunks(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: "a\n\n\n\nb"},
		{name: "whitespace only", text: "a\n\n   \n\nb"},
		{name: "tabs and newline", text: "a\n\n\t\n\t\n\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeFetcher{}
			e, clock := newTestEditor(t, f)
			require.NoError(t, e.Mount(lineLayout))

			require.NoError(t, e.OnContentChange(tt.text, ""))
			clock.Advance(time.Second)

			snap := e.Snapshot()
			require.Len(t, snap.Chunks, 2)
			assert.Equal(t, "a", snap.Chunks[0].Text)
			assert.Equal(t, "b", snap.Chunks[1].Text)

			// blank paragraphs are never sent to the backend
			require.Eventually(t, allSettled(e), time.Second, 5*time.Millisecond)
			assert.ElementsMatch(t, []string{"a", "b"}, f.Calls())
		})
	}
}

func TestEditor_TrimsText(t *testing.T) {
	e, clock := newTestEditor(t, &fakeFetcher{})
	require.NoError(t, e.Mount(lineLayout))

	require.NoError(t, e.OnContentChange("\n\n  padded  \n\n", ""))
	clock.Advance(time.Second)

	snap := e.Snapshot()
	assert.Equal(t, "padded", snap.State.Text)
	require.Len(t, snap.Chunks, 1)
	assert.Equal(t, "padded", snap.Chunks[0].Text)
}

func TestEditor_NotMountedKeepsPreviousChunks(t *testing.T) {
	f := &fakeFetcher{}
	e, clock := newTestEditor(t, f)

	// never mounted: nothing to publish, no error
	require.NoError(t, e.OnContentChange("first", ""))
	clock.Advance(time.Second)
	assert.Empty(t, e.Snapshot().Chunks)
	assert.False(t, e.Snapshot().Mounted)

	require.NoError(t, e.Mount(lineLayout))
	clock.Advance(time.Second)
	require.Len(t, e.Snapshot().Chunks, 1, "mounting recomputes")

	require.NoError(t, e.Unmount())
	require.NoError(t, e.OnContentChange("first\n\nsecond", ""))
	clock.Advance(time.Second)

	snap := e.Snapshot()
	require.Len(t, snap.Chunks, 1, "unmounted editor keeps the previous list")
	assert.Equal(t, "first", snap.Chunks[0].Text)
	assert.Equal(t, "first\n\nsecond", snap.State.Text)
}

func TestEditor_UnmountDropsPendingRecompute(t *testing.T) {
	f := &fakeFetcher{}
	e, clock := newTestEditor(t, f)
	require.NoError(t, e.Mount(lineLayout))

	require.NoError(t, e.OnContentChange("draft", ""))
	require.Equal(t, 1, clock.Pending())
	assert.True(t, e.Snapshot().Pending)

	require.NoError(t, e.Unmount())
	assert.Equal(t, 0, clock.Pending(), "unmount cancels the scheduled recompute")
	assert.False(t, e.Snapshot().Pending)

	clock.Advance(5 * time.Second)
	assert.Empty(t, f.Calls())
	assert.Empty(t, e.Snapshot().Chunks)

	// remounting schedules it again with the latest text
	require.NoError(t, e.Mount(lineLayout))
	clock.Advance(time.Second)
	require.Eventually(t, allSettled(e), time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"draft"}, f.Calls())
}

func TestEditor_ReusesResponsesForUnchangedChunks(t *testing.T) {
	f := &fakeFetcher{}
	e, clock := newTestEditor(t, f)
	require.NoError(t, e.Mount(lineLayout))

	require.NoError(t, e.OnContentChange("keep\n\nedit me", ""))
	clock.Advance(time.Second)
	require.Eventually(t, allSettled(e), time.Second, 5*time.Millisecond)

	require.NoError(t, e.OnContentChange("keep\n\nedited", ""))
	clock.Advance(time.Second)
	require.Eventually(t, allSettled(e), time.Second, 5*time.Millisecond)

	assert.ElementsMatch(t, []string{"keep", "edit me", "edited"}, f.Calls())

	snap := e.Snapshot()
	require.Len(t, snap.Chunks, 2)
	assert.Equal(t, "goal:edited@session-1", snap.Chunks[1].Response.Brainstorm.Goal)
}

func TestEditor_DiscardsStaleResponses(t *testing.T) {
	gate := make(chan struct{})
	f := &fakeFetcher{gate: gate}
	e, clock := newTestEditor(t, f)
	require.NoError(t, e.Mount(lineLayout))

	require.NoError(t, e.OnContentChange("old text", ""))
	clock.Advance(time.Second)
	require.Eventually(t, func() bool { return len(f.Calls()) == 1 }, time.Second, 5*time.Millisecond)

	// the chunk changes while its first request is still in flight
	require.NoError(t, e.OnContentChange("new text", ""))
	clock.Advance(time.Second)
	close(gate)

	require.Eventually(t, allSettled(e), time.Second, 5*time.Millisecond)
	snap := e.Snapshot()
	require.Len(t, snap.Chunks, 1)
	assert.Equal(t, "new text", snap.Chunks[0].Text)
	assert.Equal(t, "goal:new text@session-1", snap.Chunks[0].Response.Brainstorm.Goal)
}

func TestEditor_FailedRequestIsVisibleAndRetried(t *testing.T) {
	f := &fakeFetcher{errs: map[string]error{
		"flaky": &simon.RequestFailedError{Op: "brainstorm", StatusCode: 502, Message: "backend down"},
	}}
	e, clock := newTestEditor(t, f)
	require.NoError(t, e.Mount(lineLayout))

	require.NoError(t, e.OnContentChange("flaky", ""))
	clock.Advance(time.Second)
	require.Eventually(t, allSettled(e), time.Second, 5*time.Millisecond)

	snap := e.Snapshot()
	require.Len(t, snap.Chunks, 1)
	assert.Equal(t, StatusFailed, snap.Chunks[0].Response.Status)
	assert.Equal(t, "backend down", snap.Chunks[0].Response.Error)

	f.mu.Lock()
	f.errs = nil
	f.mu.Unlock()

	// any later recompute retries failed chunks
	require.NoError(t, e.OnContentChange("flaky", ""))
	clock.Advance(time.Second)
	require.Eventually(t, allSettled(e), time.Second, 5*time.Millisecond)
	assert.Equal(t, StatusReady, e.Snapshot().Chunks[0].Response.Status)
}

func TestEditor_Response(t *testing.T) {
	e, clock := newTestEditor(t, &fakeFetcher{})
	require.NoError(t, e.Mount(lineLayout))
	require.NoError(t, e.OnContentChange("one\n\ntwo", ""))
	clock.Advance(time.Second)
	require.Eventually(t, allSettled(e), time.Second, 5*time.Millisecond)

	view, ok := e.Response(chunk.NewID(1, "two"))
	require.True(t, ok)
	assert.Equal(t, "two", view.Text)
	assert.Equal(t, []string{"why two?"}, view.Response.Brainstorm.Questions)

	_, ok = e.Response(chunk.NewID(5, "missing"))
	assert.False(t, ok)
}

func TestEditor_Subscribe(t *testing.T) {
	e, clock := newTestEditor(t, &fakeFetcher{})
	updates, stop := e.Subscribe()
	defer stop()

	require.NoError(t, e.Mount(lineLayout))
	require.NoError(t, e.OnContentChange("text", ""))
	clock.Advance(time.Second)

	select {
	case <-updates:
	case <-time.After(time.Second):
		t.Fatal("expected a notification after publish")
	}
}

func TestEditor_Close(t *testing.T) {
	f := &fakeFetcher{gate: make(chan struct{})}
	e, clock := newTestEditor(t, f)
	updates, _ := e.Subscribe()

	require.NoError(t, e.Mount(lineLayout))
	require.NoError(t, e.OnContentChange("in flight", ""))
	clock.Advance(time.Second)
	require.Eventually(t, func() bool { return len(f.Calls()) == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, e.OnContentChange("pending", ""))

	done := make(chan struct{})
	go func() {
		e.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close should cancel in-flight fetches and return")
	}

	clock.Advance(5 * time.Second)
	assert.Len(t, f.Calls(), 1, "pending recompute is cancelled on close")
	assert.Equal(t, StatusLoading, e.Snapshot().Chunks[0].Response.Status, "late results are discarded")

	for range updates {
		// drain until closed
	}

	assert.True(t, errors.Is(e.OnContentChange("x", ""), ErrClosed))
	assert.True(t, errors.Is(e.Mount(lineLayout), ErrClosed))
	assert.True(t, errors.Is(e.SetTitle("x"), ErrClosed))
	e.Close()
}
