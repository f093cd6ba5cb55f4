// Package alerter maps detection and engagement output onto structured
// alert records. Generate is a pure function; persisting or delivering
// the alerts is left to Notifier implementations and storage.
package alerter

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/driftline/driftline/model"
)

// DefaultAlertThreshold is divided by 10 and compared against per-post
// stance risk scores.
const DefaultAlertThreshold = 10

const (
	maxStanceAlerts      = 10
	maxInfluentialAlerts = 5
	maxCoordinatedAlerts = 5
)

// PostRisk pairs one post with its stance-derived risk score.
type PostRisk struct {
	Post model.Post
	Risk float64
}

// Generator thresholds analysis output into alerts.
type Generator struct {
	threshold float64
	now       func() time.Time
}

func NewGenerator(alertThreshold float64) *Generator {
	if alertThreshold <= 0 {
		alertThreshold = DefaultAlertThreshold
	}
	return &Generator{threshold: alertThreshold, now: time.Now}
}

// Generate produces alerts for high-risk posts, influential users and
// coordinated campaigns. User metrics and campaigns are expected
// pre-sorted the way the analysis stages emit them (descending impact
// and risk respectively).
func (g *Generator) Generate(postRisks []PostRisk, userMetrics []model.UserEngagement, campaigns []model.Campaign) []model.Alert {
	alerts := []model.Alert{}
	now := g.now()

	sorted := make([]PostRisk, len(postRisks))
	copy(sorted, postRisks)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Risk > sorted[j].Risk })
	postRisks = sorted

	cutoff := g.threshold / 10
	emitted := 0
	for _, pr := range postRisks {
		if pr.Risk <= cutoff || emitted >= maxStanceAlerts {
			break
		}
		severity := model.SeverityMedium
		if pr.Risk > 0.8 {
			severity = model.SeverityHigh
		}
		alerts = append(alerts, model.Alert{
			Id:       uuid.New().String(),
			Type:     "high_stance_risk",
			Severity: severity,
			Title:    fmt.Sprintf("High stance risk post by @%s", pr.Post.Username),
			Payload: map[string]interface{}{
				"post_id":    pr.Post.Id,
				"user_id":    pr.Post.UserId,
				"username":   pr.Post.Username,
				"content":    pr.Post.Content,
				"risk":       pr.Risk,
				"engagement": pr.Post.TotalEngagement(),
			},
			CreatedAt: now,
		})
		emitted++
	}

	emitted = 0
	for _, user := range userMetrics {
		if !user.IsInfluential || emitted >= maxInfluentialAlerts {
			continue
		}
		alerts = append(alerts, model.Alert{
			Id:       uuid.New().String(),
			Type:     "influential_user",
			Severity: model.SeverityHigh,
			Title:    fmt.Sprintf("Influential user @%s", user.Username),
			Payload: map[string]interface{}{
				"user_id":      user.UserId,
				"username":     user.Username,
				"followers":    user.FollowerCount,
				"post_count":   user.PostCount,
				"impact_score": user.ImpactScore,
			},
			CreatedAt: now,
		})
		emitted++
	}

	emitted = 0
	for _, campaign := range campaigns {
		if emitted >= maxCoordinatedAlerts {
			break
		}
		severity := model.SeverityMedium
		if campaign.UniqueUsers > 5 {
			severity = model.SeverityHigh
		}
		alerts = append(alerts, model.Alert{
			Id:       uuid.New().String(),
			Type:     "coordinated_activity",
			Severity: severity,
			Title:    fmt.Sprintf("Coordinated activity on %s", campaign.Hashtag),
			Payload: map[string]interface{}{
				"hashtag":      campaign.Hashtag,
				"volume":       campaign.Volume,
				"unique_users": campaign.UniqueUsers,
				"risk_score":   campaign.RiskScore,
				"indicators":   campaign.Indicators,
				"first_seen":   campaign.FirstSeen,
				"last_seen":    campaign.LastSeen,
			},
			CreatedAt: now,
		})
		emitted++
	}

	return alerts
}

// BatchStats summarizes one analysis window for trend alerting.
type BatchStats struct {
	PostCount       int
	TotalEngagement int
	UniqueUsers     int
}

// Trend thresholds: any one of them firing produces an alert.
const (
	trendingPostsPerWindow = 50
	trendingEngagement     = 1000
	trendingUniqueUsers    = 20
)

// CheckTrending returns a trending-content alert when the window's
// volume, engagement or participation crosses its threshold, nil
// otherwise.
func (g *Generator) CheckTrending(stats BatchStats) *model.Alert {
	if stats.PostCount < trendingPostsPerWindow &&
		stats.TotalEngagement < trendingEngagement &&
		stats.UniqueUsers < trendingUniqueUsers {
		return nil
	}
	return &model.Alert{
		Id:       uuid.New().String(),
		Type:     "trending_negative",
		Severity: SeverityFromMetrics(stats.PostCount, stats.TotalEngagement, stats.UniqueUsers),
		Title:    "Unusual spike in monitored content",
		Payload: map[string]interface{}{
			"post_count":   stats.PostCount,
			"engagement":   stats.TotalEngagement,
			"unique_users": stats.UniqueUsers,
		},
		CreatedAt: g.now(),
	}
}

// SeverityFromMetrics bands a weighted combination of post volume,
// engagement and participation into a severity level.
func SeverityFromMetrics(posts, engagement, users int) model.Severity {
	score := 0.4*float64(posts) + 0.4*float64(engagement)/1000 + 0.2*float64(users)
	switch {
	case score > 100:
		return model.SeverityCritical
	case score > 50:
		return model.SeverityHigh
	case score > 20:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}
