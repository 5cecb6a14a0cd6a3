package helpers

import (
	"strings"
	"testing"
)

func TestGravatarURLNormalizesEmail(t *testing.T) {
	a := GravatarURL("  Dev@Example.COM ")
	b := GravatarURL("dev@example.com")
	if a != b {
		t.Errorf("case/whitespace should not change the URL: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "https://www.gravatar.com/avatar/") {
		t.Errorf("unexpected prefix: %q", a)
	}
	if !strings.HasSuffix(a, "?s=200&r=pg&d=mm") {
		t.Errorf("unexpected query: %q", a)
	}
}
