package placeholder

import (
	"strings"
	"testing"

	"github.com/pagesmith-hq/confluence-uploader/internal/apperrors"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := New(Spec{Placeholder: '#', Escape: '~'})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return engine
}

func TestReplaceSubstitutesPlaceholder(t *testing.T) {
	engine := newTestEngine(t)
	got, err := engine.Replace("1", "Title #name#", map[string]string{"id": "1", "name": "Alice"})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got != "Title Alice" {
		t.Fatalf("expected %q, got %q", "Title Alice", got)
	}
}

func TestReplaceKeepsEscapedDelimiterLiteral(t *testing.T) {
	engine := newTestEngine(t)
	got, err := engine.Replace("1", "Hi ~##id#", map[string]string{"id": "1"})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got != "Hi #1" {
		t.Fatalf("expected %q, got %q", "Hi #1", got)
	}
}

func TestReplaceReplacesEveryOccurrence(t *testing.T) {
	engine := newTestEngine(t)
	got, err := engine.Replace("1", "#name# meets #name#", map[string]string{"name": "Bob"})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got != "Bob meets Bob" {
		t.Fatalf("expected both occurrences replaced, got %q", got)
	}
}

func TestReplaceFailsOnUnknownPlaceholder(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.Replace("1", "#missing#", map[string]string{"id": "1"})
	if !apperrors.IsCode(err, apperrors.UnknownPlaceholder) {
		t.Fatalf("expected unknown-placeholder error, got %v", err)
	}
	if !strings.Contains(err.Error(), `"1"`) || !strings.Contains(err.Error(), "#missing#") {
		t.Fatalf("error should name the row and the token, got %q", err.Error())
	}
}

func TestReplaceFailsOnStrayDelimiter(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.Replace("1", "a#b", map[string]string{"id": "1"})
	if !apperrors.IsCode(err, apperrors.StrayPlaceholderCharacter) {
		t.Fatalf("expected stray-character error, got %v", err)
	}
	if !strings.Contains(err.Error(), "has 1 placeholder characters") {
		t.Fatalf("expected count of 1 in message, got %q", err.Error())
	}
}

func TestReplaceCountsAllStrayDelimiters(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.Replace("9", "a#b#c#", map[string]string{})
	// "#b#" is a valid token but b is unknown, so use non-name interiors.
	if err == nil {
		t.Fatalf("expected an error")
	}

	_, err = engine.Replace("9", "a# b# c#", map[string]string{})
	if !apperrors.IsCode(err, apperrors.StrayPlaceholderCharacter) {
		t.Fatalf("expected stray-character error, got %v", err)
	}
	if !strings.Contains(err.Error(), "has 3 placeholder characters") {
		t.Fatalf("expected count of 3, got %q", err.Error())
	}
}

func TestReplaceIsolatesRowData(t *testing.T) {
	engine := newTestEngine(t)

	// A value containing the raw delimiter survives verbatim and is not
	// reinterpreted as placeholder syntax.
	got, err := engine.Replace("1", "#v#", map[string]string{"v": "a#b"})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got != "a#b" {
		t.Fatalf("expected %q, got %q", "a#b", got)
	}

	// A value containing an escape sequence also survives verbatim.
	got, err = engine.Replace("1", "#v#", map[string]string{"v": "a~#b"})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got != "a~#b" {
		t.Fatalf("expected %q, got %q", "a~#b", got)
	}

	// Even a value spelling out a full known placeholder is not re-expanded.
	got, err = engine.Replace("1", "#v#", map[string]string{"v": "#v#"})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got != "#v#" {
		t.Fatalf("expected literal %q, got %q", "#v#", got)
	}
}

func TestReplaceRoundTripsEscapedText(t *testing.T) {
	engine := newTestEngine(t)

	// For text whose every delimiter is escaped, replacing with an empty
	// mapping resolves the escapes; re-escaping restores the input.
	in := "plain ~# text ~#~# end~"
	got, err := engine.Replace("1", in, map[string]string{})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got != "plain # text ## end~" {
		t.Fatalf("unexpected unescaped form %q", got)
	}
	if reEscaped := strings.ReplaceAll(got, "#", "~#"); reEscaped != in {
		t.Fatalf("round trip broken: %q != %q", reEscaped, in)
	}
}

func TestUnescapeIsIdempotentOnCleanText(t *testing.T) {
	engine := newTestEngine(t)
	clean := engine.Unescape("a ~# b")
	if clean != "a # b" {
		t.Fatalf("unexpected unescape result %q", clean)
	}
	if again := engine.Unescape(clean); again != clean {
		t.Fatalf("unescape not idempotent: %q -> %q", clean, again)
	}
}

func TestInvalidNameIsNotAToken(t *testing.T) {
	engine := newTestEngine(t)
	// '!' may not appear in a name, so neither delimiter forms a token and
	// both trip the stray scan.
	_, err := engine.Replace("1", "#a!b#", map[string]string{"a": "x", "b": "y"})
	if !apperrors.IsCode(err, apperrors.StrayPlaceholderCharacter) {
		t.Fatalf("expected stray-character error, got %v", err)
	}
}

func TestAdjacentTokens(t *testing.T) {
	engine := newTestEngine(t)
	got, err := engine.Replace("1", "#a##b#", map[string]string{"a": "1", "b": "2"})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got != "12" {
		t.Fatalf("expected %q, got %q", "12", got)
	}
}

func TestEngineIsBuiltPerSpec(t *testing.T) {
	a, err := New(Spec{Placeholder: '#', Escape: '~'})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := New(Spec{Placeholder: '%', Escape: '!'})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, err := a.Replace("1", "#k# %k%", map[string]string{"k": "v"})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got != "v %k%" {
		t.Fatalf("engine a leaked config: %q", got)
	}

	got, err = b.Replace("1", "%k%", map[string]string{"k": "v"})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got != "v" {
		t.Fatalf("engine b broken: %q", got)
	}
}

func TestNewRejectsInvalidSpecs(t *testing.T) {
	if _, err := New(Spec{Placeholder: '#', Escape: '#'}); err == nil {
		t.Fatalf("expected error for identical characters")
	}
	if _, err := New(Spec{Placeholder: 'a', Escape: '~'}); err == nil {
		t.Fatalf("expected error for alphanumeric placeholder")
	}
	if _, err := New(Spec{Placeholder: '#', Escape: '-'}); err == nil {
		t.Fatalf("expected error for name-class escape character")
	}
}
