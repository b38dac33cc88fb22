package themes

import (
	"strings"
	"testing"
)

func TestLoadWithoutDirectoryIsUnthemed(t *testing.T) {
	selector, err := Load(Config{}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ctx := selector.Context("dark")
	if ctx.Enabled() {
		t.Fatalf("expected zero context")
	}
	if got := ctx.AssetURL("logo", "/static/logo.svg"); got != "/static/logo.svg" {
		t.Fatalf("expected fallback asset, got %q", got)
	}
	if got := ctx.Template("page", "layouts/page"); got != "layouts/page" {
		t.Fatalf("expected fallback template, got %q", got)
	}
	if ctx.RootStyle() != "" {
		t.Fatalf("expected no root style")
	}
}

func TestLoadMissingDirectoryFails(t *testing.T) {
	if _, err := Load(Config{Dir: t.TempDir() + "/missing"}, nil); err == nil {
		t.Fatalf("expected error for missing manifest")
	}
}

func TestRootStyleSortsAndFiltersValues(t *testing.T) {
	ctx := Context{CSSVars: map[string]string{
		"--site-primary": "#1e40af",
		"site-accent":    "#f59e0b",
		"--site-bad":     "red;} body{display:none",
	}}
	got := string(ctx.RootStyle())
	want := ":root{--site-accent:#f59e0b;--site-primary:#1e40af;}"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if strings.Contains(got, "display") {
		t.Fatalf("unsafe value leaked into style")
	}
}

func TestRootStylePrefersExplicitlyPrefixedName(t *testing.T) {
	ctx := Context{CSSVars: map[string]string{
		"--site-text": "#111827",
		"site-text":   "#000000",
		"a-border":    "#e5e7eb",
	}}
	want := ":root{--a-border:#e5e7eb;--site-text:#111827;}"
	if got := string(ctx.RootStyle()); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNilSelectorReturnsZeroContext(t *testing.T) {
	var selector *Selector
	if selector.Context("").Enabled() {
		t.Fatalf("expected zero context")
	}
}
