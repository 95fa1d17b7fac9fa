package view

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestFuncEscapesText(t *testing.T) {
	component := Func(func(p *Writer) {
		p.Raw("<p")
		p.Attr("title", `a"b`)
		p.Raw(">")
		p.Text("<script>alert(1)</script>")
		p.Raw("</p>")
	})

	var buf bytes.Buffer
	if err := component.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	got := buf.String()
	want := `<p title="a&#34;b">&lt;script&gt;alert(1)&lt;/script&gt;</p>`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestURLDropsUnsafeScheme(t *testing.T) {
	var buf bytes.Buffer
	err := Func(func(p *Writer) {
		p.URL("href", "javascript:alert(1)")
	}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if bytes.Contains(buf.Bytes(), []byte("javascript")) {
		t.Fatalf("unsafe url kept: %s", buf.String())
	}
}

type failingWriter struct{ writes int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.writes++
	return 0, errors.New("closed")
}

func TestWriterStopsAfterFirstError(t *testing.T) {
	fw := &failingWriter{}
	err := Func(func(p *Writer) {
		p.Raw("a")
		p.Raw("b")
		p.Text("c")
	}).Render(context.Background(), fw)
	if err == nil {
		t.Fatal("expected error")
	}
	if fw.writes != 1 {
		t.Fatalf("expected a single write attempt, got %d", fw.writes)
	}
}
