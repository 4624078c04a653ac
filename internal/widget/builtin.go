package widget

import (
	"encoding/json"
	"errors"
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
)

var (
	textChunkTemplate = template.Must(template.New("TextChunk").Parse(
		`<div class="widget widget-textchunk">{{.Text}}</div>`))

	textListTemplate = template.Must(template.New("TextList").Parse(
		`<div class="widget widget-textlist">{{.List}}</div>`))

	headlineTemplate = template.Must(template.New("HeadlineDescription").Parse(
		`<div class="widget widget-headline"><h3>{{.Headline}}</h3>{{.Details}}</div>`))

	definitionTemplate = template.Must(template.New("Definition").Parse(
		`<div class="widget widget-definition"><h3>{{.Term}}</h3>` +
			`{{if .Type}}<span class="widget-definition-type">{{.Type}}</span>{{end}}` +
			`{{.Definition}}{{if .Examples}}<div class="widget-definition-examples">{{.Examples}}</div>{{end}}</div>`))

	codeblockTemplate = template.Must(template.New("Codeblock").Parse(
		`<div class="widget widget-codeblock">{{.Code}}{{.Explanation}}</div>`))

	errorTemplate = template.Must(template.New("Error").Parse(
		`<div class="widget widget-error"><p class="widget-error-problem">{{.Error}}</p>` +
			`{{if .Action}}<p class="widget-error-action">{{.Action}}</p>{{end}}</div>`))
)

func (r *Registry) renderTextChunk(payload json.RawMessage) (template.HTML, error) {
	p, err := decode[struct {
		Text string `json:"text"`
	}](payload)
	if err != nil {
		return "", err
	}
	if p.Text == "" {
		return "", errors.New("text slot is empty")
	}

	text, err := r.markdownHTML(p.Text)
	if err != nil {
		return "", err
	}
	return execute(textChunkTemplate, struct{ Text template.HTML }{text})
}

func (r *Registry) renderTextList(payload json.RawMessage) (template.HTML, error) {
	p, err := decode[struct {
		List string `json:"list"`
	}](payload)
	if err != nil {
		return "", err
	}
	if p.List == "" {
		return "", errors.New("list slot is empty")
	}

	list, err := r.markdownHTML(p.List)
	if err != nil {
		return "", err
	}
	return execute(textListTemplate, struct{ List template.HTML }{list})
}

func (r *Registry) renderHeadlineDescription(payload json.RawMessage) (template.HTML, error) {
	p, err := decode[struct {
		Headline string `json:"headline"`
		Details  string `json:"details"`
	}](payload)
	if err != nil {
		return "", err
	}
	if p.Headline == "" {
		return "", errors.New("headline slot is empty")
	}

	details, err := r.markdownHTML(p.Details)
	if err != nil {
		return "", err
	}
	return execute(headlineTemplate, struct {
		Headline string
		Details  template.HTML
	}{p.Headline, details})
}

func (r *Registry) renderDefinition(payload json.RawMessage) (template.HTML, error) {
	p, err := decode[struct {
		Term       string `json:"term"`
		Type       string `json:"type"`
		Definition string `json:"definition"`
		Examples   string `json:"examples"`
	}](payload)
	if err != nil {
		return "", err
	}
	if p.Term == "" || p.Definition == "" {
		return "", errors.New("term and definition slots are required")
	}

	definition, err := r.markdownHTML(p.Definition)
	if err != nil {
		return "", err
	}
	var examples template.HTML
	if p.Examples != "" {
		if examples, err = r.markdownHTML(p.Examples); err != nil {
			return "", err
		}
	}

	return execute(definitionTemplate, struct {
		Term       string
		Type       string
		Definition template.HTML
		Examples   template.HTML
	}{p.Term, p.Type, definition, examples})
}

func (r *Registry) renderCodeblock(payload json.RawMessage) (template.HTML, error) {
	p, err := decode[struct {
		Codeblock   string `json:"codeblock"`
		Explanation string `json:"explanation"`
		Language    string `json:"language"`
	}](payload)
	if err != nil {
		return "", err
	}
	if p.Codeblock == "" {
		return "", errors.New("codeblock slot is empty")
	}

	code, err := highlightCode(p.Codeblock, p.Language)
	if err != nil {
		return "", err
	}
	explanation, err := r.markdownHTML(p.Explanation)
	if err != nil {
		return "", err
	}

	return execute(codeblockTemplate, struct {
		Code        template.HTML
		Explanation template.HTML
	}{code, explanation})
}

func (r *Registry) renderError(payload json.RawMessage) (template.HTML, error) {
	p, err := decode[struct {
		Error  string `json:"error"`
		Action string `json:"action"`
	}](payload)
	if err != nil {
		return "", err
	}
	if p.Error == "" {
		return "", errors.New("error slot is empty")
	}
	return execute(errorTemplate, p)
}

// highlightCode renders code as inline-styled HTML using chroma.
func highlightCode(code, language string) (template.HTML, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	formatter := chromahtml.New(chromahtml.TabWidth(4))
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
