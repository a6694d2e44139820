package voice

import (
	"errors"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		in   string
		want string
	}{
		{"en-US", "en-US"},
		{"en", "en-US"},
		{"EN-us", "en-US"},
		{" fr-FR ", "fr-FR"},
		{"ja", "ja-JP"},
		{"zh", "zh-CN"},
		{"pt", "pt-BR"},
		{"ko", "ko-KR"},
	}

	for _, tt := range tests {
		got, err := r.Canonicalize(tt.in)
		if err != nil {
			t.Errorf("Canonicalize(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalizeRejectsUnknown(t *testing.T) {
	r := NewResolver()

	for _, in := range []string{"", "   ", "not-a-code!", "xx-XX"} {
		if _, err := r.Canonicalize(in); !errors.Is(err, ErrUnknownLanguage) {
			t.Errorf("Canonicalize(%q): expected ErrUnknownLanguage, got %v", in, err)
		}
	}
}

func TestResolve(t *testing.T) {
	r := NewResolver()

	got, err := r.Resolve("de")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := Recommended["de-DE"]; got != want {
		t.Errorf("Resolve(\"de\") = %q, want %q", got, want)
	}
}

func TestResolveRole(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		lang string
		role string
		want string
	}{
		{"en-US", "male", "en-US-GuyNeural"},
		{"en-US", "female", "en-US-AriaNeural"},
		{"en", "Female", "en-US-AriaNeural"},
		{"ja-JP", "male", "ja-JP-KeitaNeural"},
		{"zh-CN", "female", "zh-CN-XiaoxiaoNeural"},
	}

	for _, tt := range tests {
		got, err := r.ResolveRole(tt.lang, tt.role)
		if err != nil {
			t.Errorf("ResolveRole(%q, %q): unexpected error: %v", tt.lang, tt.role, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveRole(%q, %q) = %q, want %q", tt.lang, tt.role, got, tt.want)
		}
	}
}

func TestResolveRoleFailsFast(t *testing.T) {
	r := NewResolver()

	// Supported for plain synthesis but not conversations.
	if _, err := r.ResolveRole("sv-SE", "male"); !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("expected ErrUnknownLanguage for conversation-unsupported language, got %v", err)
	}
	if _, err := r.ResolveRole("en-US", "narrator"); !errors.Is(err, ErrUnknownRole) {
		t.Errorf("expected ErrUnknownRole, got %v", err)
	}
}

func TestCatalogConsistency(t *testing.T) {
	for code := range Recommended {
		if _, ok := LanguageNames[code]; !ok {
			t.Errorf("language %s has a voice but no display name", code)
		}
	}
	for code, pair := range Conversation {
		if _, ok := Recommended[code]; !ok {
			t.Errorf("conversation language %s missing from recommended catalog", code)
		}
		if pair.Male == "" || pair.Female == "" {
			t.Errorf("conversation language %s has an empty role voice", code)
		}
	}
}
