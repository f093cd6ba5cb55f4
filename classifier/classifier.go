// Package classifier scores post text for sentiment and stance using
// fixed lexicons. Scoring is deterministic: the same text and lexicon
// always produce the same result, there are no learned parameters.
package classifier

import (
	"strings"

	"github.com/driftline/driftline/model"
)

const (
	// Stance confidence never exceeds this cap even on a clean sweep.
	maxStanceConfidence = 0.9
	// Confidence granted per bare topic mention when no stance phrase
	// matched, capped at 0.7.
	topicMentionWeight = 0.2
)

// Classifier scores text against one Lexicon. Construct once at
// process start and pass into handlers; there is no package-level
// instance.
type Classifier struct {
	lexicon Lexicon
}

func New(lexicon Lexicon) *Classifier {
	return &Classifier{lexicon: lexicon}
}

// Classify runs both sentiment and stance scoring over one text.
func (c *Classifier) Classify(text string) model.ClassificationResult {
	sentiment, sentimentConfidence := c.Sentiment(text)
	stance, stanceConfidence := c.Stance(text)
	return model.ClassificationResult{
		Sentiment:           sentiment,
		SentimentConfidence: sentimentConfidence,
		Stance:              stance,
		StanceConfidence:    stanceConfidence,
	}
}

// Sentiment counts case-insensitive keyword matches for each polarity.
// No match at all is neutral with confidence 0.6, a tie is neutral
// with confidence 0.5, otherwise the winner's confidence is its share
// of all matched sentiment keywords.
func (c *Classifier) Sentiment(text string) (model.Sentiment, float64) {
	if text == "" {
		return model.SentimentNeutral, 0.0
	}
	lower := strings.ToLower(text)

	positive := countMatches(lower, c.lexicon.PositiveWords)
	negative := countMatches(lower, c.lexicon.NegativeWords)
	total := positive + negative

	switch {
	case total == 0:
		return model.SentimentNeutral, 0.6
	case positive > negative:
		return model.SentimentPositive, float64(positive) / float64(total)
	case negative > positive:
		return model.SentimentNegative, float64(negative) / float64(total)
	default:
		return model.SentimentNeutral, 0.5
	}
}

// Stance counts case-insensitive phrase matches for each polarity,
// with confidence capped at 0.9. When no phrase matches but the text
// mentions the monitored topic, the result is neutral with a low
// confidence proportional to the mention count; when nothing matches
// at all the text is confidently neutral.
func (c *Classifier) Stance(text string) (model.Stance, float64) {
	if text == "" {
		return model.StanceNeutral, 0.0
	}
	lower := strings.ToLower(text)

	pro := countMatches(lower, c.lexicon.ProPhrases)
	anti := countMatches(lower, c.lexicon.AntiPhrases)
	total := pro + anti

	if total == 0 {
		mentions := 0
		for _, keyword := range c.lexicon.TopicKeywords {
			mentions += strings.Count(lower, keyword)
		}
		if mentions > 0 {
			confidence := topicMentionWeight * float64(mentions)
			if confidence > 0.7 {
				confidence = 0.7
			}
			return model.StanceNeutral, confidence
		}
		return model.StanceNeutral, 0.9
	}

	switch {
	case pro > anti:
		return model.StancePro, cappedShare(pro, total)
	case anti > pro:
		return model.StanceAnti, cappedShare(anti, total)
	default:
		return model.StanceNeutral, 0.6
	}
}

// countMatches counts how many entries of the list occur in the text
// as a substring. Each entry counts at most once.
func countMatches(lower string, entries []string) int {
	count := 0
	for _, entry := range entries {
		if strings.Contains(lower, entry) {
			count++
		}
	}
	return count
}

func cappedShare(winner, total int) float64 {
	confidence := float64(winner) / float64(total)
	if confidence > maxStanceConfidence {
		return maxStanceConfidence
	}
	return confidence
}
