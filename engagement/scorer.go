// Package engagement aggregates raw interaction counters into per-post
// and per-user metrics. Like the detector, it is a pure batch stage:
// every call recomputes its aggregates from the supplied posts.
package engagement

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/driftline/driftline/model"
)

// DefaultViralThreshold is the total engagement above which a post is
// considered viral.
const DefaultViralThreshold = 100

// The influential cutoff is the top decile of impact scores within the
// batch. Recomputed per batch, see the note in DESIGN.md about
// cross-run comparability.
const influentialQuantile = 0.9

// PostScore is the per-post engagement summary.
type PostScore struct {
	TotalEngagement int     `json:"total_engagement"`
	EngagementRate  float64 `json:"engagement_rate,omitempty"`
	HasRate         bool    `json:"-"`
	IsViral         bool    `json:"is_viral"`
	Velocity        float64 `json:"velocity"`
}

// Scorer computes engagement metrics. Construct once with the viral
// threshold and pass into callers.
type Scorer struct {
	viralThreshold int
	now            func() time.Time
}

func NewScorer(viralThreshold int) *Scorer {
	if viralThreshold <= 0 {
		viralThreshold = DefaultViralThreshold
	}
	return &Scorer{viralThreshold: viralThreshold, now: time.Now}
}

// Score summarizes one post. Velocity divides by hours since posting,
// clamped to at least one hour so fresh posts don't blow up the rate.
func (s *Scorer) Score(post model.Post) PostScore {
	total := post.TotalEngagement()

	score := PostScore{
		TotalEngagement: total,
		IsViral:         total > s.viralThreshold,
	}

	if post.FollowerCount > 0 {
		score.EngagementRate = float64(total) / float64(post.FollowerCount)
		score.HasRate = true
	}

	hours := s.now().Sub(post.CreatedAt).Hours()
	if hours < 1 {
		hours = 1
	}
	score.Velocity = float64(total) / hours

	return score
}

// AnalyzeUsers groups the batch by author and ranks users by impact
// score: total engagement, scaled by mean stance risk and audience
// size, discounted by raw post volume. The top decile of the batch is
// flagged influential. stanceRisk maps post id to the [0,1] stance
// risk derived from classification; ids absent from the map count as
// zero risk.
func (s *Scorer) AnalyzeUsers(posts []model.Post, stanceRisk map[string]float64) []model.UserEngagement {
	if len(posts) == 0 {
		return []model.UserEngagement{}
	}

	type userAccum struct {
		username   string
		followers  int
		postCount  int
		engagement int
		riskSum    float64
	}
	accums := make(map[string]*userAccum)
	for _, post := range posts {
		accum, ok := accums[post.UserId]
		if !ok {
			accum = &userAccum{username: post.Username, followers: post.FollowerCount}
			accums[post.UserId] = accum
		}
		accum.postCount++
		accum.engagement += post.TotalEngagement()
		accum.riskSum += stanceRisk[post.Id]
	}

	metrics := make([]model.UserEngagement, 0, len(accums))
	for userId, accum := range accums {
		meanRisk := accum.riskSum / float64(accum.postCount)
		impact := float64(accum.engagement) * meanRisk *
			math.Log1p(float64(accum.followers)) / math.Log1p(float64(accum.postCount))
		metrics = append(metrics, model.UserEngagement{
			UserId:          userId,
			Username:        accum.username,
			PostCount:       accum.postCount,
			TotalEngagement: accum.engagement,
			MeanStanceRisk:  meanRisk,
			FollowerCount:   accum.followers,
			ImpactScore:     impact,
		})
	}

	impacts := make([]float64, len(metrics))
	for i, m := range metrics {
		impacts[i] = m.ImpactScore
	}
	sort.Float64s(impacts)
	cutoff := stat.Quantile(influentialQuantile, stat.Empirical, impacts, nil)
	for i := range metrics {
		metrics[i].IsInfluential = metrics[i].ImpactScore >= cutoff
	}

	sort.Slice(metrics, func(i, j int) bool {
		if metrics[i].ImpactScore != metrics[j].ImpactScore {
			return metrics[i].ImpactScore > metrics[j].ImpactScore
		}
		return metrics[i].UserId < metrics[j].UserId
	})
	return metrics
}
