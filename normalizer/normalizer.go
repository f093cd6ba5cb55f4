// Package normalizer turns raw social media text into the cleaned form
// the classifier and detector operate on. All functions are pure and
// never fail: malformed input degrades to empty results or "unknown".
package normalizer

import (
	"regexp"
	"strings"

	"github.com/abadojack/whatlanggo"
)

var (
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	emailPattern      = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	mentionPattern    = regexp.MustCompile(`@[A-Za-z0-9_]+`)
	hashtagPattern    = regexp.MustCompile(`#\w+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	// keep word chars, whitespace, hashtags, mentions and basic punctuation
	symbolPattern = regexp.MustCompile(`[^\w\s#@.,!?-]`)
)

// Normalized is the result of running a raw post body through the full
// normalization pipeline.
type Normalized struct {
	CleanedText string   `json:"cleaned_text"`
	Hashtags    []string `json:"hashtags"`
	Mentions    []string `json:"mentions"`
	Language    string   `json:"language"`
}

// Normalize runs the full pipeline over one raw text. Hashtags and
// mentions are extracted from the raw text before URLs and mentions
// are stripped from the cleaned form.
func Normalize(raw string) Normalized {
	return Normalized{
		CleanedText: CleanText(raw),
		Hashtags:    ExtractHashtags(raw),
		Mentions:    ExtractMentions(raw),
		Language:    DetectLanguage(raw),
	}
}

// CleanText lowercases and strips URLs, emails and @mentions, drops
// exotic symbols and collapses runs of whitespace.
func CleanText(raw string) string {
	if raw == "" {
		return ""
	}
	text := strings.ToLower(raw)
	text = urlPattern.ReplaceAllString(text, "")
	text = emailPattern.ReplaceAllString(text, "")
	text = mentionPattern.ReplaceAllString(text, "")
	text = symbolPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// ExtractHashtags returns all #tags lowercased, in order of first
// appearance. Duplicates are kept; callers relying on set semantics
// deduplicate downstream.
func ExtractHashtags(raw string) []string {
	tags := hashtagPattern.FindAllString(raw, -1)
	for i, tag := range tags {
		tags[i] = strings.ToLower(tag)
	}
	return tags
}

// ExtractMentions returns all @handles lowercased, in order of first
// appearance.
func ExtractMentions(raw string) []string {
	mentions := mentionPattern.FindAllString(raw, -1)
	for i, m := range mentions {
		mentions[i] = strings.ToLower(m)
	}
	return mentions
}

// DetectLanguage returns a best-effort ISO 639-1 code for the text.
// Inputs under 3 characters and unreliable detections yield "unknown";
// it never fails.
func DetectLanguage(raw string) string {
	if len(strings.TrimSpace(raw)) < 3 {
		return "unknown"
	}
	info := whatlanggo.Detect(raw)
	if !info.IsReliable() {
		return "unknown"
	}
	code := whatlanggo.LangToStringShort(info.Lang)
	if code == "" {
		return "unknown"
	}
	return code
}
