// Package view holds the small writer the templ components are built on.
package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Writer accumulates the first write error so components can emit markup
// without checking every call.
type Writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func NewWriter(ctx context.Context, w io.Writer) *Writer {
	return &Writer{ctx: ctx, w: w}
}

// Raw writes trusted markup as-is.
func (p *Writer) Raw(markup string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, markup)
}

// Text writes s HTML-escaped.
func (p *Writer) Text(s string) {
	p.Raw(templ.EscapeString(s))
}

// Textf formats and escapes.
func (p *Writer) Textf(format string, args ...any) {
	p.Text(fmt.Sprintf(format, args...))
}

// Attr writes ` name="value"` with value escaped.
func (p *Writer) Attr(name, value string) {
	p.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// URL writes an href-style attribute, dropping unsafe schemes.
func (p *Writer) URL(name, value string) {
	p.Attr(name, string(templ.URL(value)))
}

// BoolAttr writes name when on is true.
func (p *Writer) BoolAttr(name string, on bool) {
	if on {
		p.Raw(" " + name)
	}
}

// Component renders a nested component.
func (p *Writer) Component(c templ.Component) {
	if p.err != nil || c == nil {
		return
	}
	p.err = c.Render(p.ctx, p.w)
}

func (p *Writer) Err() error {
	return p.err
}

// Func adapts a render function to templ.Component.
func Func(render func(p *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := NewWriter(ctx, w)
		render(p)
		return p.Err()
	})
}
