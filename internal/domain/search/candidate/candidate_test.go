package candidate

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/fuzzdex/internal/domain"
)

func TestNew(t *testing.T) {
	c, err := New(map[string]string{"title": "Harry Potter", "isbn": "123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Text("title"); got != "Harry Potter" {
		t.Errorf("Text(title) = %q, want %q", got, "Harry Potter")
	}
	if got := c.Text("missing"); got != "" {
		t.Errorf("Text(missing) = %q, want empty", got)
	}
}

func TestNew_Empty(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := New(map[string]string{}); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for empty map, got %v", err)
	}
}

func TestNew_CopiesFields(t *testing.T) {
	fields := map[string]string{"title": "original"}
	c, err := New(fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fields["title"] = "mutated"
	if got := c.Text("title"); got != "original" {
		t.Errorf("candidate shares caller's map: Text(title) = %q", got)
	}
}
