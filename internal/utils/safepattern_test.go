package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"shop-backend/internal/domain"
)

func TestCompilePatternMatchesMetacharsLiterally(t *testing.T) {
	p, err := CompilePattern("a+b", PatternOptions{})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	ok, err := p.MatchString("xx a+b yy")
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}
	if !ok {
		t.Fatalf("literal a+b should match")
	}

	ok, err = p.MatchString("aaab")
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}
	if ok {
		t.Fatalf("a+b must not behave as a quantified pattern")
	}
}

func TestCompilePatternCaseInsensitive(t *testing.T) {
	p, err := CompilePattern("Shoes", PatternOptions{})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	ok, _ := p.MatchString("RUNNING SHOES")
	if !ok {
		t.Fatalf("match should ignore case")
	}
}

func TestCompilePatternTooLong(t *testing.T) {
	_, err := CompilePattern(strings.Repeat("x", DefaultPatternMaxLength+1), PatternOptions{})
	var tooLong domain.PatternTooLongError
	if !errors.As(err, &tooLong) {
		t.Fatalf("expected PatternTooLongError, got %v", err)
	}
}

func TestCompilePatternRuneLengthBound(t *testing.T) {
	// 50 multi-byte runes are within the bound even though the byte
	// length is not.
	if _, err := CompilePattern(strings.Repeat("ё", DefaultPatternMaxLength), PatternOptions{}); err != nil {
		t.Fatalf("50 runes should compile, got %v", err)
	}
}

func TestCompilePatternAlreadyEscapedInvalidSyntax(t *testing.T) {
	_, err := CompilePattern("a(", PatternOptions{AlreadyEscaped: true})
	var invalid domain.PatternInvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected PatternInvalidError, got %v", err)
	}
}

func TestMatchStringTimeout(t *testing.T) {
	p, err := CompilePattern("abc", PatternOptions{Timeout: time.Nanosecond})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	// With a nanosecond budget the deadline almost always wins the race;
	// retry a few times so the test stays deterministic.
	for i := 0; i < 50; i++ {
		_, err = p.MatchString(strings.Repeat("ab", 1<<12))
		if err != nil {
			break
		}
	}
	var timeout domain.PatternTimeoutError
	if !errors.As(err, &timeout) {
		t.Fatalf("expected PatternTimeoutError, got %v", err)
	}
}

func TestSourceUsableForStoreSideRegexp(t *testing.T) {
	p, err := CompilePattern("+100", PatternOptions{})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if p.Source() != `\+100` {
		t.Fatalf("unexpected source: %q", p.Source())
	}
}
