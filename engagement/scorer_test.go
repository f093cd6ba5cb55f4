package engagement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/driftline/driftline/model"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedScorer(threshold int) *Scorer {
	s := NewScorer(threshold)
	s.now = func() time.Time { return now }
	return s
}

func TestScore(t *testing.T) {
	s := fixedScorer(100)

	post := model.Post{
		Id:            "p1",
		UserId:        "u1",
		CreatedAt:     now.Add(-5 * time.Hour),
		Engagement:    model.EngagementCounts{Likes: 50, Shares: 30, Replies: 25},
		FollowerCount: 1000,
	}

	score := s.Score(post)
	assert.Equal(t, 105, score.TotalEngagement)
	assert.True(t, score.IsViral)
	assert.True(t, score.HasRate)
	assert.InDelta(t, 0.105, score.EngagementRate, 1e-9)
	assert.InDelta(t, 21.0, score.Velocity, 1e-9)
}

func TestScoreMissingFieldsAndFreshPost(t *testing.T) {
	s := fixedScorer(100)

	// No counters, no followers, posted just now.
	score := s.Score(model.Post{Id: "p1", CreatedAt: now.Add(-time.Minute)})
	assert.Equal(t, 0, score.TotalEngagement)
	assert.False(t, score.IsViral)
	assert.False(t, score.HasRate)
	// hours clamp to 1 so fresh posts don't explode the velocity
	assert.InDelta(t, 0.0, score.Velocity, 1e-9)

	// Exactly at the threshold is not viral.
	atThreshold := model.Post{
		CreatedAt:  now.Add(-2 * time.Hour),
		Engagement: model.EngagementCounts{Likes: 100},
	}
	assert.False(t, s.Score(atThreshold).IsViral)
}

func TestAnalyzeUsers(t *testing.T) {
	s := fixedScorer(100)

	posts := []model.Post{
		{Id: "a1", UserId: "amplifier", Username: "amplifier", FollowerCount: 1000,
			CreatedAt: now.Add(-3 * time.Hour), Engagement: model.EngagementCounts{Likes: 100}},
		{Id: "a2", UserId: "amplifier", Username: "amplifier", FollowerCount: 1000,
			CreatedAt: now.Add(-2 * time.Hour), Engagement: model.EngagementCounts{Likes: 100}},
		{Id: "b1", UserId: "bystander", Username: "bystander", FollowerCount: 100,
			CreatedAt: now.Add(-1 * time.Hour), Engagement: model.EngagementCounts{Likes: 10}},
	}
	risk := map[string]float64{"a1": 1.0, "a2": 1.0, "b1": 0.0}

	metrics := s.AnalyzeUsers(posts, risk)
	if assert.Len(t, metrics, 2) {
		top := metrics[0]
		assert.Equal(t, "amplifier", top.UserId)
		assert.Equal(t, 2, top.PostCount)
		assert.Equal(t, 200, top.TotalEngagement)
		assert.InDelta(t, 1.0, top.MeanStanceRisk, 1e-9)
		assert.Greater(t, top.ImpactScore, 0.0)
		assert.True(t, top.IsInfluential)

		rest := metrics[1]
		assert.Equal(t, "bystander", rest.UserId)
		assert.InDelta(t, 0.0, rest.ImpactScore, 1e-9)
		assert.False(t, rest.IsInfluential)
	}
}

func TestAnalyzeUsersEmpty(t *testing.T) {
	s := fixedScorer(100)
	assert.Equal(t, []model.UserEngagement{}, s.AnalyzeUsers(nil, nil))
}
