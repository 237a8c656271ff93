package sanitize_test

import (
	"testing"

	"github.com/convohub/convohub/internal/app/system/sanitize"
)

func TestText_Empty(t *testing.T) {
	if got := sanitize.Text(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestText_PlainText(t *testing.T) {
	if got := sanitize.Text("Asha Admin"); got != "Asha Admin" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestText_StripsMarkup(t *testing.T) {
	if got := sanitize.Text("<b>Asha</b> <script>alert('x')</script>Admin"); got != "Asha Admin" {
		t.Errorf("expected markup stripped, got %q", got)
	}
}

func TestText_TrimsWhitespace(t *testing.T) {
	if got := sanitize.Text("  Asha Admin \n"); got != "Asha Admin" {
		t.Errorf("expected trimmed text, got %q", got)
	}
}
