package utils

import "testing"

func TestEscapeRegexpLiteralMatch(t *testing.T) {
	escaped := EscapeRegexp("a+b*c?")
	if escaped != `a\+b\*c\?` {
		t.Fatalf("unexpected escape result: %q", escaped)
	}
}

func TestEscapeRegexpLeavesPlainTextAlone(t *testing.T) {
	if got := EscapeRegexp("hello world 123"); got != "hello world 123" {
		t.Fatalf("plain text mangled: %q", got)
	}
}

func TestEscapeHTMLAmpersandFirst(t *testing.T) {
	got := EscapeHTML(`<a href="x">&'`)
	want := "&lt;a href=&quot;x&quot;&gt;&amp;&#39;"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSanitizeHTMLDropsScriptBlockEntirely(t *testing.T) {
	if got := SanitizeHTML("<script>alert(1)</script>"); got != "" {
		t.Fatalf("script block survived: %q", got)
	}
}

func TestSanitizeHTMLScriptBlockWithEmbeddedTags(t *testing.T) {
	got := SanitizeHTML(`before<script type="text/javascript">var a = "<b>x</b>";</script>after`)
	if got != "beforeafter" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestSanitizeHTMLStripsTagsKeepsText(t *testing.T) {
	got := SanitizeHTML("<p>Nice <b>shoes</b></p>")
	if got != "Nice shoes" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestSanitizeHTMLRemovesJSProtocolAndHandlers(t *testing.T) {
	got := SanitizeHTML(`click javascript:alert(1) onClick= doIt`)
	if got != "click alert(1)  doIt" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestSanitizeHTMLEmptyInput(t *testing.T) {
	if got := SanitizeHTML("   "); got != "" {
		t.Fatalf("whitespace should trim to empty, got %q", got)
	}
}
