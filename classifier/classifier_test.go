package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/driftline/driftline/model"
)

func TestSentiment(t *testing.T) {
	c := New(DefaultLexicon())

	tests := []struct {
		name       string
		text       string
		sentiment  model.Sentiment
		confidence float64
	}{
		{"empty", "", model.SentimentNeutral, 0.0},
		{"no sentiment words", "the weather report for tomorrow", model.SentimentNeutral, 0.6},
		{"clearly positive", "what a great and wonderful day", model.SentimentPositive, 1.0},
		{"clearly negative", "this is terrible and awful", model.SentimentNegative, 1.0},
		{"tie", "good idea but bad timing", model.SentimentNeutral, 0.5},
		{"majority wins", "great great start, love it, one sad note", model.SentimentPositive, 2.0 / 3.0},
		{"case insensitive", "GREAT stuff", model.SentimentPositive, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sentiment, confidence := c.Sentiment(tt.text)
			assert.Equal(t, tt.sentiment, sentiment)
			assert.InDelta(t, tt.confidence, confidence, 1e-9)
		})
	}
}

func TestStance(t *testing.T) {
	c := New(DefaultLexicon())

	tests := []struct {
		name       string
		text       string
		stance     model.Stance
		confidence float64
	}{
		{"empty", "", model.StanceNeutral, 0.0},
		{"nothing matches", "the weather report for tomorrow", model.StanceNeutral, 0.9},
		// two pro phrases, zero anti: 2/2 capped at 0.9
		{"two pro phrases", "proud india and the digital india program", model.StancePro, 0.9},
		{"one anti phrase", "calls to boycott india are trending", model.StanceAnti, 0.9},
		{"single topic mention", "india is a large country in asia", model.StanceNeutral, 0.2},
		{"many topic mentions capped", "india india india india india", model.StanceNeutral, 0.7},
		{"tie", "proud india crowd argues with the boycott india crowd", model.StanceNeutral, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stance, confidence := c.Stance(tt.text)
			assert.Equal(t, tt.stance, stance)
			assert.InDelta(t, tt.confidence, confidence, 1e-9)
		})
	}
}

func TestStanceDevanagariPhrases(t *testing.T) {
	c := New(DefaultLexicon())

	stance, confidence := c.Stance("सभी कहते हैं जय हिन्द")
	assert.Equal(t, model.StancePro, stance)
	assert.InDelta(t, 0.9, confidence, 1e-9)
}

func TestClassifyCombines(t *testing.T) {
	c := New(DefaultLexicon())

	result := c.Classify("I love this, proud india moment")
	assert.Equal(t, model.SentimentPositive, result.Sentiment)
	assert.Equal(t, model.StancePro, result.Stance)
	assert.Equal(t, 0.0, result.StanceRisk())

	result = c.Classify("boycott india and its terrible policies")
	assert.Equal(t, model.StanceAnti, result.Stance)
	assert.Greater(t, result.StanceRisk(), 0.0)
}

func TestClassifyDeterministic(t *testing.T) {
	c := New(DefaultLexicon())

	first := c.Classify("boycott india say the bots")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Classify("boycott india say the bots"))
	}
}
