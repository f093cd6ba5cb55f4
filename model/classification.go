package model

// Sentiment polarity of a post's text.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Stance is the apparent support/opposition polarity of a post toward
// the monitored topic.
type Stance string

const (
	StancePro     Stance = "pro"
	StanceAnti    Stance = "anti"
	StanceNeutral Stance = "neutral"
)

// ClassificationResult is derived per post by the lexicon classifier.
// It is a value derived from the post content, never persisted on its
// own.
type ClassificationResult struct {
	Sentiment           Sentiment `json:"sentiment"`
	SentimentConfidence float64   `json:"sentiment_confidence"`
	Stance              Stance    `json:"stance"`
	StanceConfidence    float64   `json:"stance_confidence"`
}

// StanceRisk maps the stance classification onto a [0,1] risk value
// used by engagement ranking and alerting. Only an anti stance carries
// risk, proportional to its confidence.
func (c ClassificationResult) StanceRisk() float64 {
	if c.Stance == StanceAnti {
		return c.StanceConfidence
	}
	return 0
}
