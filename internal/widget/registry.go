package widget

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"sort"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"simon-jot/internal/simon"
)

// Renderer turns a widget payload into HTML.
type Renderer interface {
	Render(payload json.RawMessage) (template.HTML, error)
}

// RendererFunc adapts a function to a Renderer.
type RendererFunc func(payload json.RawMessage) (template.HTML, error)

// Render calls f(payload).
func (f RendererFunc) Render(payload json.RawMessage) (template.HTML, error) {
	return f(payload)
}

// Rendered is a chat answer ready for display.
type Rendered struct {
	Widget   string        `json:"widget"`
	HTML     template.HTML `json:"html"`
	Fallback bool          `json:"fallback"`
}

// Registry maps widget tags to renderers. Unknown tags use the raw text fallback.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	markdown  goldmark.Markdown
}

// NewRegistry creates a registry with the built-in widgets registered.
func NewRegistry() *Registry {
	r := &Registry{
		renderers: make(map[string]Renderer),
		// raw HTML in model output is escaped: no WithUnsafe
		markdown: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
		),
	}

	r.Register("TextChunk", RendererFunc(r.renderTextChunk))
	r.Register("TextList", RendererFunc(r.renderTextList))
	r.Register("HeadlineDescription", RendererFunc(r.renderHeadlineDescription))
	r.Register("Definition", RendererFunc(r.renderDefinition))
	r.Register("Codeblock", RendererFunc(r.renderCodeblock))
	r.Register("Error", RendererFunc(r.renderError))

	return r
}

// Register adds or replaces the renderer for tag.
func (r *Registry) Register(tag string, renderer Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[tag] = renderer
}

// Tags returns the registered widget tags in sorted order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]string, 0, len(r.renderers))
	for tag := range r.renderers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Render presents a chat answer. When the widget is unknown or its payload cannot be rendered,
// the raw text is shown instead.
func (r *Registry) Render(resp simon.ChatResponse) Rendered {
	r.mu.RLock()
	renderer, ok := r.renderers[resp.Widget]
	r.mu.RUnlock()

	if ok && len(resp.Payload) > 0 {
		html, err := renderer.Render(resp.Payload)
		if err == nil {
			return Rendered{Widget: resp.Widget, HTML: html}
		}
	}

	return Rendered{Widget: resp.Widget, HTML: renderRaw(resp.Raw), Fallback: true}
}

var rawTemplate = template.Must(template.New("raw").Parse(
	`<div class="widget widget-raw" style="white-space: pre-line">{{.}}</div>`))

func renderRaw(raw string) template.HTML {
	var buf bytes.Buffer
	// executing a constant template over a string cannot fail
	_ = rawTemplate.Execute(&buf, raw)
	return template.HTML(buf.String())
}

// markdownHTML converts a markdown slot to HTML.
func (r *Registry) markdownHTML(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func execute(t *template.Template, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute %s template: %w", t.Name(), err)
	}
	return template.HTML(buf.String()), nil
}

func decode[T any](payload json.RawMessage) (T, error) {
	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		return v, fmt.Errorf("decode payload: %w", err)
	}
	return v, nil
}
