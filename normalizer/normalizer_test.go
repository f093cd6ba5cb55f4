package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercases", "Hello World", "hello world"},
		{"strips urls", "read this https://example.com/a?b=c now", "read this now"},
		{"strips mentions", "cc @someone and @some_one2", "cc and"},
		{"strips emails", "mail me at user@example.com today", "mail me at today"},
		{"keeps hashtags and punctuation", "Big news! #Breaking, really?", "big news! #breaking, really?"},
		{"collapses whitespace", "a   b\t\tc\n\nd", "a b c d"},
		{"drops exotic symbols", "wow ★ nice ©", "wow nice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestExtractHashtags(t *testing.T) {
	// Order of first appearance, lowercased, duplicates kept.
	tags := ExtractHashtags("#First then #second then #FIRST again")
	assert.Equal(t, []string{"#first", "#second", "#first"}, tags)

	assert.Empty(t, ExtractHashtags("no tags at all"))
}

func TestExtractMentions(t *testing.T) {
	mentions := ExtractMentions("hey @Alice meet @bob_99")
	assert.Equal(t, []string{"@alice", "@bob_99"}, mentions)
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "unknown", DetectLanguage(""))
	assert.Equal(t, "unknown", DetectLanguage("hi"))
	assert.Equal(t, "unknown", DetectLanguage("  a "))

	lang := DetectLanguage("this is a fairly long english sentence about technology and science written for testing")
	assert.Equal(t, "en", lang)
}

func TestNormalize(t *testing.T) {
	n := Normalize("Check https://t.co/xyz from @Source: big story! #Breaking #news")

	assert.Equal(t, "check from big story! #breaking #news", n.CleanedText)
	assert.Equal(t, []string{"#breaking", "#news"}, n.Hashtags)
	assert.Equal(t, []string{"@source"}, n.Mentions)
	assert.NotEmpty(t, n.Language)
}
