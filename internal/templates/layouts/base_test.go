package layouts

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func TestBaseEscapesTitleAndRendersBody(t *testing.T) {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>hello</p>")
		return err
	})

	var sb strings.Builder
	if err := Base("<League>", body).Render(context.Background(), &sb); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "<title>&lt;League&gt;</title>") {
		t.Fatalf("expected escaped title, got %s", out)
	}
	if !strings.HasPrefix(out, "<!doctype html>") {
		t.Fatalf("expected doctype first, got %s", out)
	}
	if !strings.Contains(out, "<body><p>hello</p></body></html>") {
		t.Fatalf("expected body inside document, got %s", out)
	}
}

func TestBaseWithoutBody(t *testing.T) {
	var sb strings.Builder
	if err := Base("League", nil).Render(context.Background(), &sb); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasSuffix(sb.String(), "<body></body></html>") {
		t.Fatalf("expected empty body, got %s", sb.String())
	}
}
