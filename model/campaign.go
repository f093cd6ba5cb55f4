package model

import "time"

/*

Campaign is the detector's description of one suspicious group of
posts, either keyed by the hashtag that binds the group together or by
a synthetic "network_<n>" id for graph-derived findings.

Invariants maintained by the detector:
  UniqueUsers <= Volume
  RiskScore in [0,1]
  FirstSeen <= LastSeen
*/
type Campaign struct {
	Hashtag       string    `json:"hashtag"`
	Volume        int       `json:"volume"`
	UniqueUsers   int       `json:"unique_users"`
	TimeSpanHours float64   `json:"time_span_hours"`
	RiskScore     float64   `json:"risk_score"`
	FirstSeen     time.Time `json:"first_seen"`
	LastSeen      time.Time `json:"last_seen"`
	Indicators    []string  `json:"indicators"`
	SampleUsers   []string  `json:"sample_users"`
}

// BotFlag marks a single user whose behavior accumulated enough bot
// indicators within one detection run.
type BotFlag struct {
	UserId       string   `json:"user_id"`
	BotScore     float64  `json:"bot_score"`
	Indicators   []string `json:"indicators"`
	PostCount    int      `json:"post_count"`
	HashtagCount int      `json:"hashtag_count"`
	RiskLevel    string   `json:"risk_level"`
}

// UserEngagement is the per-user aggregate the engagement scorer
// produces for one batch. ImpactScore combines engagement volume,
// stance extremity and audience size; IsInfluential flags the top
// decile of the batch.
type UserEngagement struct {
	UserId          string  `json:"user_id"`
	Username        string  `json:"username"`
	PostCount       int     `json:"post_count"`
	TotalEngagement int     `json:"total_engagement"`
	MeanStanceRisk  float64 `json:"mean_stance_risk"`
	FollowerCount   int     `json:"follower_count"`
	ImpactScore     float64 `json:"impact_score"`
	IsInfluential   bool    `json:"is_influential"`
}
