// Package placeholder implements the substitution grammar used to mark
// variable regions in template text. A placeholder is a name from
// [A-Za-z0-9_.-] delimited by two unescaped placeholder characters; the
// escape character turns the following placeholder character into literal
// text. Delimiters are configurable per run, so engines are built per run
// and nothing is cached across configurations.
package placeholder

import (
	"fmt"
	"strings"

	"github.com/pagesmith-hq/confluence-uploader/internal/apperrors"
)

// Spec holds the two characters driving the grammar.
type Spec struct {
	Placeholder rune
	Escape      rune
}

// Engine rewrites strings according to one Spec.
type Engine struct {
	spec Spec
	// Precomputed string forms of the configured runes.
	placeholder string
	escaped     string
}

// New validates the spec and builds an engine for it. Character-class rules
// (not alphanumeric, '.', '_', '-') are enforced upstream by profile
// validation; the structural invariant is re-checked here.
func New(spec Spec) (*Engine, error) {
	if spec.Placeholder == 0 || spec.Escape == 0 {
		return nil, fmt.Errorf("placeholder and escape characters must be set")
	}
	if spec.Placeholder == spec.Escape {
		return nil, fmt.Errorf("placeholder and escape characters must differ")
	}
	if isNameRune(spec.Placeholder) || isNameRune(spec.Escape) {
		return nil, fmt.Errorf("placeholder and escape characters must not collide with placeholder name characters")
	}
	return &Engine{
		spec:        spec,
		placeholder: string(spec.Placeholder),
		escaped:     string(spec.Escape) + string(spec.Placeholder),
	}, nil
}

// Replace substitutes every well-formed placeholder in text with the value
// from values, enforcing the escaping discipline. The articleID is only used
// for error attribution.
//
// The passes run in a fixed order: values are escaped before substitution so
// row data can never introduce new placeholder syntax, the stray-character
// scan therefore only ever sees delimiters originating from the template
// itself, and escape sequences are resolved in a single final pass.
func (e *Engine) Replace(articleID, text string, values map[string]string) (string, error) {
	out := text
	for _, token := range e.scanTokens(text) {
		name := trimDelimiters(token)
		value, ok := values[name]
		if !ok {
			return "", apperrors.UnknownPlaceholder.New(articleID, token)
		}
		safe := strings.ReplaceAll(value, e.placeholder, e.escaped)
		out = strings.ReplaceAll(out, token, safe)
	}

	if stray := e.countUnescaped(out); stray > 0 {
		return "", apperrors.StrayPlaceholderCharacter.New(articleID, stray, e.placeholder)
	}

	return e.Unescape(out), nil
}

// Unescape resolves every escape sequence into a bare placeholder character.
// This is the only place escape sequences are interpreted.
func (e *Engine) Unescape(s string) string {
	return strings.ReplaceAll(s, e.escaped, e.placeholder)
}

// scanTokens returns every well-formed placeholder token in s, in order.
// A token starts at an unescaped placeholder character, continues with at
// least one name character and closes with another placeholder character.
// A delimiter that opens no valid token is left in place for the stray scan.
func (e *Engine) scanTokens(s string) []string {
	runes := []rune(s)
	var tokens []string
	for i := 0; i < len(runes); i++ {
		if runes[i] != e.spec.Placeholder || e.isEscapedAt(runes, i) {
			continue
		}
		j := i + 1
		for j < len(runes) && isNameRune(runes[j]) {
			j++
		}
		if j == i+1 || j >= len(runes) || runes[j] != e.spec.Placeholder {
			continue
		}
		tokens = append(tokens, string(runes[i:j+1]))
		i = j
	}
	return tokens
}

// countUnescaped counts placeholder characters not preceded by the escape
// character. Any such character after substitution is a malformed marker.
func (e *Engine) countUnescaped(s string) int {
	runes := []rune(s)
	count := 0
	for i, r := range runes {
		if r == e.spec.Placeholder && !e.isEscapedAt(runes, i) {
			count++
		}
	}
	return count
}

func (e *Engine) isEscapedAt(runes []rune, i int) bool {
	return i > 0 && runes[i-1] == e.spec.Escape
}

func trimDelimiters(token string) string {
	runes := []rune(token)
	return string(runes[1 : len(runes)-1])
}

// isNameRune reports whether r may appear inside a placeholder name.
func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_' || r == '.' || r == '-':
		return true
	}
	return false
}
