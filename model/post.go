package model

import "time"

// EngagementCounts holds the raw interaction counters a platform reports
// for a single post. Missing counters default to zero.
type EngagementCounts struct {
	Likes   int `json:"likes"`
	Shares  int `json:"shares"`
	Replies int `json:"replies"`
}

/*

Post is a single piece of social media content collected for analysis.

Id: platform-unique identifier of the post
Platform: source platform, for example "twitter", "rss", "fixture"
UserId: platform-unique identifier of the author
Username: author's handle at collection time
Content: post body in plain text
CreatedAt: time the post was published on the platform
Engagement: raw interaction counters, see EngagementCounts
Hashtags: lowercased hashtags extracted at ingestion time, in order of
first appearance. Populated by the collection adapter; downstream code
never re-parses serialized strings.
Mentions: lowercased @handles extracted at ingestion time
Language: best-effort ISO 639-1 code, "unknown" when detection failed
FollowerCount: author's follower count at collection time, 0 when the
platform does not expose it

A Post is an immutable value once produced by a collector or fixture;
analysis stages never mutate it.
*/
type Post struct {
	Id            string           `json:"id"`
	Platform      string           `json:"platform"`
	UserId        string           `json:"user_id"`
	Username      string           `json:"username"`
	Content       string           `json:"content"`
	CreatedAt     time.Time        `json:"created_at"`
	Engagement    EngagementCounts `json:"engagement"`
	Hashtags      []string         `json:"hashtags"`
	Mentions      []string         `json:"mentions"`
	Language      string           `json:"language"`
	FollowerCount int              `json:"follower_count"`
}

// TotalEngagement sums all interaction counters.
func (p *Post) TotalEngagement() int {
	return p.Engagement.Likes + p.Engagement.Shares + p.Engagement.Replies
}
