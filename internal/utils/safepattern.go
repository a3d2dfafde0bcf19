package utils

import (
	"regexp"
	"time"
	"unicode/utf8"

	"shop-backend/internal/domain"
)

// DefaultPatternMaxLength bounds the source of any user-supplied pattern.
const DefaultPatternMaxLength = 50

// PatternOptions controls compilation of a user-supplied search pattern.
type PatternOptions struct {
	// MaxLength caps the pattern source; zero means DefaultPatternMaxLength.
	MaxLength int
	// Timeout, when positive, bounds every subsequent match against the
	// compiled pattern.
	Timeout time.Duration
	// AlreadyEscaped means the caller guarantees the string is inert and
	// skips metacharacter escaping.
	AlreadyEscaped bool
}

// SafePattern is a case-insensitive matcher built from untrusted input.
// Construction failures (too long, invalid syntax) are distinct from
// matching failures (timeout).
type SafePattern struct {
	re      *regexp.Regexp
	source  string
	timeout time.Duration
}

// CompilePattern builds a SafePattern from pattern per opts.
func CompilePattern(pattern string, opts PatternOptions) (*SafePattern, error) {
	maxLen := opts.MaxLength
	if maxLen <= 0 {
		maxLen = DefaultPatternMaxLength
	}
	if n := utf8.RuneCountInString(pattern); n > maxLen {
		return nil, domain.PatternTooLongError{Length: n, Max: maxLen}
	}

	source := pattern
	if !opts.AlreadyEscaped {
		source = EscapeRegexp(pattern)
	}

	// Escaped input always compiles; this can only fail for
	// AlreadyEscaped callers.
	re, err := regexp.Compile("(?i)" + source)
	if err != nil {
		return nil, domain.PatternInvalidError{Err: err}
	}

	return &SafePattern{re: re, source: source, timeout: opts.Timeout}, nil
}

// Source returns the escaped pattern text, suitable for a store-side
// REGEXP_LIKE argument.
func (p *SafePattern) Source() string { return p.source }

// MatchString reports whether s matches. With a timeout configured the
// match is raced against a deadline; the loser is abandoned and the call
// fails with PatternTimeoutError instead of blocking unboundedly.
func (p *SafePattern) MatchString(s string) (bool, error) {
	if p.timeout <= 0 {
		return p.re.MatchString(s), nil
	}

	done := make(chan bool, 1)
	go func() {
		done <- p.re.MatchString(s)
	}()

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case ok := <-done:
		return ok, nil
	case <-timer.C:
		return false, domain.PatternTimeoutError{Op: "match"}
	}
}
