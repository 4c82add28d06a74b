// Package sanitize prepares free text for transmission over DAPNET.
//
// POCSAG pagers only render a subset of ASCII and DAPNET rejects calls longer
// than 80 characters. Sanitize handles both: non-ASCII runes are kept,
// dropped or substituted according to a NonASCIIPolicy, then the text is
// truncated to Options.MaxLength runes with an ellipsis suffix.
//
//	s := sanitize.Sanitize("→ meet at 18:00 ❤", sanitize.DefaultOptions())
//	// "? meet at 18:00 ?"
package sanitize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultMaxLength is the upper limit DAPNET enforces on message text.
	DefaultMaxLength = 80

	// DefaultEllipsis is appended to truncated messages.
	DefaultEllipsis = "..."

	// DefaultReplacement substitutes non-ASCII runes under the default policy.
	DefaultReplacement = '?'
)

type policyKind int

const (
	policyDefault policyKind = iota // replace with DefaultReplacement
	policyReplace
	policyKeep
	policyRemove
)

// NonASCIIPolicy decides what happens to runes outside the ASCII range.
// The zero value replaces them with '?'.
type NonASCIIPolicy struct {
	kind        policyKind
	replacement rune
}

// KeepNonASCII leaves non-ASCII runes untouched and lets DAPNET deal with them.
func KeepNonASCII() NonASCIIPolicy {
	return NonASCIIPolicy{kind: policyKeep}
}

// RemoveNonASCII drops every non-ASCII rune.
func RemoveNonASCII() NonASCIIPolicy {
	return NonASCIIPolicy{kind: policyRemove}
}

// ReplaceNonASCII substitutes every non-ASCII rune with r, including r == 0.
// Use the zero NonASCIIPolicy for the '?' default.
func ReplaceNonASCII(r rune) NonASCIIPolicy {
	return NonASCIIPolicy{kind: policyReplace, replacement: r}
}

// Replacement returns the substitute rune and whether the policy substitutes at all.
func (p NonASCIIPolicy) Replacement() (rune, bool) {
	switch p.kind {
	case policyDefault:
		return DefaultReplacement, true
	case policyReplace:
		return p.replacement, true
	default:
		return 0, false
	}
}

func (p NonASCIIPolicy) String() string {
	switch p.kind {
	case policyKeep:
		return "keep"
	case policyRemove:
		return "remove"
	default:
		r, _ := p.Replacement()
		return "replace(" + string(r) + ")"
	}
}

func (p NonASCIIPolicy) apply(s string) string {
	if p.kind == policyKeep {
		return s
	}
	replacement, substitute := p.Replacement()

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
			continue
		}
		if substitute {
			b.WriteRune(replacement)
		}
	}
	return b.String()
}

// Options control how Sanitize transforms a message.
type Options struct {
	// MaxLength is the maximum message length in runes. DAPNET allows 80,
	// shorter limits are fine.
	MaxLength int

	// Ellipsis is appended to a message that had to be truncated.
	Ellipsis string

	// NonASCII selects the treatment of non-ASCII runes.
	NonASCII NonASCIIPolicy
}

// DefaultOptions returns the options matching DAPNET's own limits.
func DefaultOptions() Options {
	return Options{
		MaxLength: DefaultMaxLength,
		Ellipsis:  DefaultEllipsis,
		NonASCII:  ReplaceNonASCII(DefaultReplacement),
	}
}

// Option customises Options built with NewOptions.
type Option func(*Options)

// WithMaxLength overrides the maximum message length.
func WithMaxLength(n int) Option {
	return func(o *Options) { o.MaxLength = n }
}

// WithEllipsis overrides the truncation suffix.
func WithEllipsis(s string) Option {
	return func(o *Options) { o.Ellipsis = s }
}

// WithNonASCIIPolicy overrides the non-ASCII treatment.
func WithNonASCIIPolicy(p NonASCIIPolicy) Option {
	return func(o *Options) { o.NonASCII = p }
}

// NewOptions starts from DefaultOptions and applies opts in order.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Sanitize applies the non-ASCII policy and then enforces MaxLength.
//
// When the filtered text is longer than MaxLength it is cut to
// MaxLength-len(Ellipsis) runes and Ellipsis is appended, so the result is
// exactly MaxLength runes long. If the ellipsis alone does not fit, it is
// clipped to MaxLength.
func Sanitize(text string, o Options) string {
	msg := o.NonASCII.apply(text)

	maxLen := max(o.MaxLength, 0)
	if utf8.RuneCountInString(msg) <= maxLen {
		return msg
	}

	ellipsis := []rune(o.Ellipsis)
	if len(ellipsis) > maxLen {
		return string(ellipsis[:maxLen])
	}

	runes := []rune(msg)
	return string(runes[:maxLen-len(ellipsis)]) + o.Ellipsis
}
