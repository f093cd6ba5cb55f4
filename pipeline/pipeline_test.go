package pipeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/driftline/driftline/alerter"
	"github.com/driftline/driftline/classifier"
	"github.com/driftline/driftline/detector"
	"github.com/driftline/driftline/engagement"
	"github.com/driftline/driftline/model"
)

func testPipeline() *Pipeline {
	return &Pipeline{
		Classifier: classifier.New(classifier.DefaultLexicon()),
		Scorer:     engagement.NewScorer(engagement.DefaultViralThreshold),
		Detector:   detector.New(detector.DefaultConfig(), detector.NewGonumGraphAnalyzer()),
		Alerter:    alerter.NewGenerator(alerter.DefaultAlertThreshold),
	}
}

func TestAnalyzeEmptyBatch(t *testing.T) {
	result := testPipeline().Analyze(nil)

	assert.Empty(t, result.Campaigns)
	assert.Empty(t, result.Bots)
	assert.Empty(t, result.UserMetrics)
	assert.Empty(t, result.Alerts)
	assert.Empty(t, result.Classifications)
}

func TestAnalyzeEndToEnd(t *testing.T) {
	base := time.Now().Add(-30 * time.Minute)

	posts := []model.Post{}
	for i := 0; i < 12; i++ {
		posts = append(posts, model.Post{
			Id:        fmt.Sprintf("p%d", i),
			Platform:  "test",
			UserId:    fmt.Sprintf("u%d", i%3),
			Username:  fmt.Sprintf("pusher_%d", i%3),
			Content:   "everyone must boycott india now #boycottindia",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Hashtags:  []string{"#boycottindia"},
			Engagement: model.EngagementCounts{
				Likes: 10, Shares: 5,
			},
			FollowerCount: 500,
		})
	}

	result := testPipeline().Analyze(posts)

	assert.Len(t, result.Classifications, 12)
	for _, c := range result.Classifications {
		assert.Equal(t, model.StanceAnti, c.Stance)
	}

	if assert.NotEmpty(t, result.Campaigns) {
		top := result.Campaigns[0]
		assert.Contains(t, top.Indicators, "suspicious_hashtag")
		assert.Contains(t, top.Indicators, "rapid_posting")
		assert.Greater(t, top.RiskScore, 0.5)
	}

	assert.NotEmpty(t, result.UserMetrics)
	assert.Len(t, result.UserMetrics, 3)
}
