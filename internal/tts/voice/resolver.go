package voice

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

var (
	ErrUnknownLanguage = errors.New("language not supported")
	ErrUnknownRole     = errors.New("speaker role not supported")
)

// Resolver canonicalizes caller-supplied language codes ("en", "EN-us",
// "zh-Hans") to the catalog's language keys and resolves them to voices.
type Resolver struct {
	codes   []string
	matcher language.Matcher
}

// NewResolver builds a Resolver over the catalog's supported languages.
func NewResolver() *Resolver {
	codes := make([]string, 0, len(Recommended))
	for code := range Recommended {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	tags := make([]language.Tag, len(codes))
	for i, code := range codes {
		tags[i] = language.MustParse(code)
	}
	return &Resolver{codes: codes, matcher: language.NewMatcher(tags)}
}

// Canonicalize maps a caller-supplied code to a supported catalog key.
func (r *Resolver) Canonicalize(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("%w: empty language code", ErrUnknownLanguage)
	}
	if _, ok := Recommended[code]; ok {
		return code, nil
	}

	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}
	_, index, conf := r.matcher.Match(tag)
	if conf == language.No {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}
	return r.codes[index], nil
}

// Resolve returns the recommended voice for a language code.
func (r *Resolver) Resolve(code string) (string, error) {
	canonical, err := r.Canonicalize(code)
	if err != nil {
		return "", err
	}
	return Recommended[canonical], nil
}

// ResolveRole returns the conversation voice for a (language, role) pair.
// Conversation synthesis supports fewer languages than plain synthesis, so
// resolution fails fast before any provider work begins.
func (r *Resolver) ResolveRole(code, role string) (string, error) {
	canonical, err := r.Canonicalize(code)
	if err != nil {
		return "", err
	}
	pair, ok := Conversation[canonical]
	if !ok {
		return "", fmt.Errorf("%w for conversations: %q", ErrUnknownLanguage, code)
	}
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "male":
		return pair.Male, nil
	case "female":
		return pair.Female, nil
	default:
		return "", fmt.Errorf("%w: %q (want male or female)", ErrUnknownRole, role)
	}
}

// Languages returns the supported language codes in sorted order.
func (r *Resolver) Languages() []string {
	out := make([]string, len(r.codes))
	copy(out, r.codes)
	return out
}

// ConversationLanguages returns the codes usable with ResolveRole, sorted.
func (r *Resolver) ConversationLanguages() []string {
	out := make([]string, 0, len(Conversation))
	for code := range Conversation {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
