// Package types holds the opaque type-expression values the conversion
// engine works over.
//
// The engine never interprets the internal language's type grammar. A type
// expression is a spelling plus a normalized identity: lifetime annotations
// are erased and token spacing is canonicalized, so two spellings of the
// same type compare equal by their normalized form.
package types

import (
	"strings"
	"unicode"
)

// TypeExpr is an internal-language type expression. Structural comparison
// is by Normalized; Raw preserves the spelling as the caller wrote it.
type TypeExpr struct {
	Raw        string
	Normalized string
}

// Parse builds a TypeExpr from a spelling. It never fails: an unparseable
// string simply normalizes to itself token by token.
func Parse(s string) TypeExpr {
	return TypeExpr{Raw: s, Normalized: Normalize(s)}
}

// Unit is the internal language's empty type. Classes without a declared
// self type use it as a stand-in.
func Unit() TypeExpr {
	return Parse("()")
}

func (t TypeExpr) String() string {
	return t.Normalized
}

// IsUnit reports whether the expression is the empty type.
func (t TypeExpr) IsUnit() bool {
	return t.Normalized == "()"
}

// IsZero reports whether the expression is the zero value (no type at all).
func (t TypeExpr) IsZero() bool {
	return t.Normalized == "" && t.Raw == ""
}

// RefElem returns the referent of a reference type ("&T" or "&mut T") and
// true, or the zero TypeExpr and false when the expression is not a
// reference. Capability checks on references fall through to the referent.
func (t TypeExpr) RefElem() (TypeExpr, bool) {
	n := t.Normalized
	switch {
	case strings.HasPrefix(n, "&mut "):
		return Parse(strings.TrimPrefix(n, "&mut ")), true
	case strings.HasPrefix(n, "&"):
		return Parse(strings.TrimPrefix(n, "&")), true
	}
	return TypeExpr{}, false
}

// Normalize erases lifetime annotations and canonicalizes token spacing.
// "& 'a mut Rc < RefCell<Foo> >" and "&mut Rc<RefCell<Foo>>" normalize to
// the same string.
func Normalize(s string) string {
	toks := tokenize(s)
	var b strings.Builder
	for i, tok := range toks {
		if i > 0 && needSpace(toks[i-1], tok) {
			b.WriteByte(' ')
		}
		b.WriteString(tok)
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isWord(tok string) bool {
	for _, r := range tok {
		if !isWordRune(r) && r != ':' {
			return false
		}
	}
	return tok != ""
}

// tokenize splits a type spelling into word and symbol tokens, dropping
// lifetime annotations ('a, 'static, ...).
func tokenize(s string) []string {
	var toks []string
	runes := []rune(s)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '\'':
			// lifetime: skip the quote and the identifier after it
			i++
			for i < len(runes) && isWordRune(runes[i]) {
				i++
			}
		case isWordRune(r):
			j := i
			for j < len(runes) && (isWordRune(runes[j]) || runes[j] == ':') {
				j++
			}
			toks = append(toks, string(runes[i:j]))
			i = j
		default:
			toks = append(toks, string(r))
			i++
		}
	}
	return toks
}

// needSpace keeps a single space between adjacent word tokens ("mut Foo",
// "dyn Trait") and after commas; everything else joins tightly.
func needSpace(prev, cur string) bool {
	if prev == "," {
		return true
	}
	return isWord(prev) && isWord(cur)
}

// NodeKey identifies a graph node: the normalized type identity plus an
// optional disambiguator tag. The tag lets two distinct nodes represent
// the same underlying type (for example two pointer-shaped foreign
// counterparts of one class). Display output uses only the identity.
type NodeKey struct {
	Name string
	Tag  string
}

// KeyOf builds the plain key for a type expression.
func KeyOf(t TypeExpr) NodeKey {
	return NodeKey{Name: t.Normalized}
}

// KeyWithTag builds a disambiguated key for a type expression.
func KeyWithTag(t TypeExpr, tag string) NodeKey {
	return NodeKey{Name: t.Normalized, Tag: tag}
}

// Display is the human-facing spelling: the identity component only,
// with any disambiguator stripped.
func (k NodeKey) Display() string {
	return k.Name
}

// String includes the tag and is meant for logs, not generated code.
func (k NodeKey) String() string {
	if k.Tag == "" {
		return k.Name
	}
	return k.Name + "#" + k.Tag
}
