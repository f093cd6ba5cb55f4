// Package detector implements coordinated-activity detection over
// batches of posts. Detection is a pure batch function: every call
// rebuilds all aggregates from the supplied posts, holds no state
// between calls, and never fails for a well-formed batch. Groups that
// cannot be analyzed are silently omitted.
package detector

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/driftline/driftline/model"
	"github.com/driftline/driftline/normalizer"
	"github.com/driftline/driftline/utils"
)

// Config holds the detection knobs. All fields have working defaults,
// see DefaultConfig.
type Config struct {
	// MinCampaignVolume is the minimum number of posts a hashtag group
	// needs to be considered a campaign.
	MinCampaignVolume int
	// MaxTimeWindowHours bounds how far apart activity may be spread
	// and still count as one campaign window.
	MaxTimeWindowHours int
	// BotIndicatorsThreshold is the number of per-user indicators at
	// which a user counts as a bot.
	BotIndicatorsThreshold int
	// MaxBatchSize caps how many posts a single detection run analyzes
	// to bound work on pathological hashtag fan-out.
	MaxBatchSize int
}

func DefaultConfig() Config {
	return Config{
		MinCampaignVolume:      5,
		MaxTimeWindowHours:     24,
		BotIndicatorsThreshold: 3,
		MaxBatchSize:           1000,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.MinCampaignVolume <= 0 {
		c.MinCampaignVolume = defaults.MinCampaignVolume
	}
	if c.MaxTimeWindowHours <= 0 {
		c.MaxTimeWindowHours = defaults.MaxTimeWindowHours
	}
	if c.BotIndicatorsThreshold <= 0 {
		c.BotIndicatorsThreshold = defaults.BotIndicatorsThreshold
	}
	if c.MaxBatchSize <= 0 {
		c.MaxBatchSize = defaults.MaxBatchSize
	}
	return c
}

// HashtagActivity aggregates every post carrying one hashtag within a
// single detection run. TotalPosts always equals len(Posts) and
// len(Timestamps).
type HashtagActivity struct {
	Posts      []model.Post
	Users      map[string]struct{}
	Timestamps []time.Time
	TotalPosts int
}

// UserPattern aggregates one user's behavior within a single detection
// run. BotIndicators holds each indicator name at most once.
type UserPattern struct {
	Posts         []model.Post
	Hashtags      map[string]struct{}
	PostTimes     []time.Time
	BotIndicators []string
}

// coordinatedGroup is a hashtag group that survived the volume filter,
// with its coordination indicators attached.
type coordinatedGroup struct {
	TotalPosts      int
	Users           []string
	TimeSpanHours   float64
	FirstPost       time.Time
	LastPost        time.Time
	Indicators      []string
	AvgPostsPerUser float64
}

// Detector runs campaign and bot detection. Construct once with New
// and share freely: it is immutable after construction and every
// detection call works on its own snapshot of the batch.
type Detector struct {
	cfg   Config
	graph GraphAnalyzer

	botUsernamePatterns []*regexp.Regexp
	suspiciousHashtags  []*regexp.Regexp

	now func() time.Time
}

// New builds a Detector. graph may be nil, in which case network-based
// detection degrades to an empty result.
func New(cfg Config, graph GraphAnalyzer) *Detector {
	if graph == nil {
		graph = NoopGraphAnalyzer{}
	}
	return &Detector{
		cfg:   cfg.withDefaults(),
		graph: graph,
		botUsernamePatterns: []*regexp.Regexp{
			regexp.MustCompile(`^.*\d{8,}$`),
			regexp.MustCompile(`^[a-zA-Z]+\d{4,}$`),
			regexp.MustCompile(`bot`),
			regexp.MustCompile(`fake`),
		},
		suspiciousHashtags: []*regexp.Regexp{
			regexp.MustCompile(`^#boycott.*india`),
			regexp.MustCompile(`^#anti.*india`),
			regexp.MustCompile(`^#fake.*india`),
			regexp.MustCompile(`^#destroy.*india`),
			regexp.MustCompile(`^#hate.*india`),
		},
		now: time.Now,
	}
}

// DetectCampaigns identifies groups of posts exhibiting coordinated or
// anomalous behavior and returns them sorted by descending risk score.
// The result only depends on the set of posts, not on their order.
func (d *Detector) DetectCampaigns(posts []model.Post) []model.Campaign {
	snapshot := d.snapshot(posts)
	if len(snapshot) == 0 {
		return []model.Campaign{}
	}

	activity := d.hashtagActivity(snapshot)
	coordinated := d.coordinatedHashtags(activity)
	patterns := d.userPatterns(snapshot)

	campaigns := make([]model.Campaign, 0, len(coordinated))
	for hashtag, group := range coordinated {
		campaigns = append(campaigns, model.Campaign{
			Hashtag:       hashtag,
			Volume:        group.TotalPosts,
			UniqueUsers:   len(group.Users),
			TimeSpanHours: group.TimeSpanHours,
			RiskScore:     d.riskScore(group, patterns),
			FirstSeen:     group.FirstPost,
			LastSeen:      group.LastPost,
			Indicators:    group.Indicators,
			SampleUsers:   sampleUsers(group.Users, 10),
		})
	}

	for _, network := range d.graph.DetectNetworks(snapshot) {
		if network.RiskScore <= 0.5 {
			continue
		}
		campaigns = append(campaigns, model.Campaign{
			Hashtag:       network.Id,
			Volume:        network.TotalPosts,
			UniqueUsers:   len(network.Users),
			TimeSpanHours: network.TimeSpanHours,
			RiskScore:     network.RiskScore,
			FirstSeen:     network.FirstActivity,
			LastSeen:      network.LastActivity,
			Indicators:    network.Indicators,
			SampleUsers:   sampleUsers(network.Users, 10),
		})
	}

	sort.SliceStable(campaigns, func(i, j int) bool {
		if campaigns[i].RiskScore != campaigns[j].RiskScore {
			return campaigns[i].RiskScore > campaigns[j].RiskScore
		}
		return campaigns[i].Hashtag < campaigns[j].Hashtag
	})
	return campaigns
}

// DetectBotUsers flags users whose behavior within the batch
// accumulated at least BotIndicatorsThreshold indicators, sorted by
// descending bot score.
func (d *Detector) DetectBotUsers(posts []model.Post) []model.BotFlag {
	snapshot := d.snapshot(posts)
	if len(snapshot) == 0 {
		return []model.BotFlag{}
	}

	flags := []model.BotFlag{}
	for userId, pattern := range d.userPatterns(snapshot) {
		if len(pattern.BotIndicators) < d.cfg.BotIndicatorsThreshold {
			continue
		}
		score := float64(len(pattern.BotIndicators)) / float64(len(d.botUsernamePatterns))
		if score > 1 {
			score = 1
		}
		riskLevel := "medium"
		if score > 0.7 {
			riskLevel = "high"
		}
		flags = append(flags, model.BotFlag{
			UserId:       userId,
			BotScore:     score,
			Indicators:   pattern.BotIndicators,
			PostCount:    len(pattern.Posts),
			HashtagCount: len(pattern.Hashtags),
			RiskLevel:    riskLevel,
		})
	}

	sort.SliceStable(flags, func(i, j int) bool {
		if flags[i].BotScore != flags[j].BotScore {
			return flags[i].BotScore > flags[j].BotScore
		}
		return flags[i].UserId < flags[j].UserId
	})
	return flags
}

// snapshot copies the batch into a canonical chronological order so
// detection output is independent of the caller's slice order, then
// caps it at MaxBatchSize.
func (d *Detector) snapshot(posts []model.Post) []model.Post {
	snapshot := make([]model.Post, len(posts))
	copy(snapshot, posts)
	sort.SliceStable(snapshot, func(i, j int) bool {
		if !snapshot[i].CreatedAt.Equal(snapshot[j].CreatedAt) {
			return snapshot[i].CreatedAt.Before(snapshot[j].CreatedAt)
		}
		return snapshot[i].Id < snapshot[j].Id
	})
	if len(snapshot) > d.cfg.MaxBatchSize {
		snapshot = snapshot[:d.cfg.MaxBatchSize]
	}
	return snapshot
}

// hashtagActivity groups the batch by hashtag. A post carrying N
// hashtags contributes to N groups. Zero timestamps are coerced to
// now rather than dropped.
func (d *Detector) hashtagActivity(posts []model.Post) map[string]*HashtagActivity {
	activity := make(map[string]*HashtagActivity)
	now := d.now()

	for _, post := range posts {
		timestamp := post.CreatedAt
		if timestamp.IsZero() {
			timestamp = now
		}
		for _, hashtag := range postHashtags(post) {
			group, ok := activity[hashtag]
			if !ok {
				group = &HashtagActivity{Users: make(map[string]struct{})}
				activity[hashtag] = group
			}
			group.Posts = append(group.Posts, post)
			group.Users[post.UserId] = struct{}{}
			group.Timestamps = append(group.Timestamps, timestamp)
			group.TotalPosts++
		}
	}
	return activity
}

// coordinatedHashtags filters hashtag groups by volume and attaches
// coordination indicators to the survivors.
func (d *Detector) coordinatedHashtags(activity map[string]*HashtagActivity) map[string]*coordinatedGroup {
	coordinated := make(map[string]*coordinatedGroup)

	for hashtag, group := range activity {
		if group.TotalPosts < d.cfg.MinCampaignVolume {
			continue
		}

		timestamps := make([]time.Time, len(group.Timestamps))
		copy(timestamps, group.Timestamps)
		sort.Slice(timestamps, func(i, j int) bool { return timestamps[i].Before(timestamps[j]) })
		if distinctTimes(timestamps) < 2 {
			continue
		}

		timeSpan := timestamps[len(timestamps)-1].Sub(timestamps[0]).Hours()
		avgPostsPerUser := float64(group.TotalPosts) / float64(len(group.Users))

		indicators := []string{}
		if timeSpan < 2 && group.TotalPosts > 10 {
			indicators = append(indicators, "rapid_posting")
		}
		if avgPostsPerUser > 3 {
			indicators = append(indicators, "repeated_posting")
		}
		for _, pattern := range d.suspiciousHashtags {
			if pattern.MatchString(hashtag) {
				indicators = append(indicators, "suspicious_hashtag")
				break
			}
		}
		if busiest := busiestHourCount(timestamps); float64(busiest) > float64(group.TotalPosts)*0.5 {
			indicators = append(indicators, "concentrated_timing")
		}

		users := make([]string, 0, len(group.Users))
		for user := range group.Users {
			users = append(users, user)
		}
		sort.Strings(users)

		coordinated[hashtag] = &coordinatedGroup{
			TotalPosts:      group.TotalPosts,
			Users:           users,
			TimeSpanHours:   timeSpan,
			FirstPost:       timestamps[0],
			LastPost:        timestamps[len(timestamps)-1],
			Indicators:      indicators,
			AvgPostsPerUser: avgPostsPerUser,
		}
	}
	return coordinated
}

// userPatterns aggregates per-user behavior over the whole batch and
// attaches bot indicators. The batch is expected in chronological
// order (see snapshot) so recency and inter-post intervals are
// meaningful.
func (d *Detector) userPatterns(posts []model.Post) map[string]*UserPattern {
	patterns := make(map[string]*UserPattern)
	now := d.now()

	for _, post := range posts {
		pattern, ok := patterns[post.UserId]
		if !ok {
			pattern = &UserPattern{Hashtags: make(map[string]struct{})}
			patterns[post.UserId] = pattern
		}

		timestamp := post.CreatedAt
		if timestamp.IsZero() {
			timestamp = now
		}
		pattern.Posts = append(pattern.Posts, post)
		pattern.PostTimes = append(pattern.PostTimes, timestamp)
		for _, hashtag := range postHashtags(post) {
			pattern.Hashtags[hashtag] = struct{}{}
		}

		username := post.Username
		if username == "" {
			username = post.UserId
		}
		d.checkBotIndicators(pattern, username)
	}
	return patterns
}

// checkBotIndicators appends any newly triggered indicator to the
// pattern, each at most once per user.
func (d *Detector) checkBotIndicators(pattern *UserPattern, username string) {
	lower := strings.ToLower(username)
	for _, p := range d.botUsernamePatterns {
		if p.MatchString(lower) {
			addIndicator(pattern, "suspicious_username")
			break
		}
	}

	if len(pattern.Posts) > 1 {
		recent := pattern.Posts
		if len(recent) > 5 {
			recent = recent[len(recent)-5:]
		}
		distinct := make(map[string]struct{}, len(recent))
		for _, p := range recent {
			distinct[p.Content] = struct{}{}
		}
		if float64(len(distinct)) < float64(len(recent))*0.8 {
			addIndicator(pattern, "repetitive_content")
		}
	}

	if len(pattern.PostTimes) > 1 {
		var total float64
		for i := 1; i < len(pattern.PostTimes); i++ {
			total += pattern.PostTimes[i].Sub(pattern.PostTimes[i-1]).Seconds()
		}
		mean := total / float64(len(pattern.PostTimes)-1)
		if mean < 300 {
			addIndicator(pattern, "high_frequency_posting")
		}
	}
}

// riskScore combines volume, time concentration, bot participation and
// indicator count into a [0,1] score.
func (d *Detector) riskScore(group *coordinatedGroup, patterns map[string]*UserPattern) float64 {
	score := 0.3 * math.Min(1, float64(group.TotalPosts)/100)

	// Time concentration tiers are mutually exclusive.
	if group.TimeSpanHours < 1 {
		score += 0.3
	} else if group.TimeSpanHours < 6 {
		score += 0.2
	}

	botUsers := 0
	for _, user := range group.Users {
		if pattern, ok := patterns[user]; ok &&
			len(pattern.BotIndicators) >= d.cfg.BotIndicatorsThreshold {
			botUsers++
		}
	}
	if len(group.Users) > 0 {
		score += 0.3 * float64(botUsers) / float64(len(group.Users))
	}

	score += 0.1 * float64(len(group.Indicators))

	return utils.Clamp01(score)
}

// postHashtags prefers the typed field populated at ingestion and
// falls back to scanning the content for batches coming from older
// fixtures.
func postHashtags(post model.Post) []string {
	if len(post.Hashtags) > 0 {
		tags := make([]string, len(post.Hashtags))
		for i, tag := range post.Hashtags {
			tags[i] = strings.ToLower(tag)
		}
		return tags
	}
	return normalizer.ExtractHashtags(post.Content)
}

func addIndicator(pattern *UserPattern, indicator string) {
	if utils.ContainsString(pattern.BotIndicators, indicator) {
		return
	}
	pattern.BotIndicators = append(pattern.BotIndicators, indicator)
}

func distinctTimes(sorted []time.Time) int {
	if len(sorted) == 0 {
		return 0
	}
	distinct := 1
	for i := 1; i < len(sorted); i++ {
		if !sorted[i].Equal(sorted[i-1]) {
			distinct++
		}
	}
	return distinct
}

func busiestHourCount(timestamps []time.Time) int {
	byHour := make(map[int]int)
	busiest := 0
	for _, ts := range timestamps {
		byHour[ts.Hour()]++
		if byHour[ts.Hour()] > busiest {
			busiest = byHour[ts.Hour()]
		}
	}
	return busiest
}

func sampleUsers(users []string, limit int) []string {
	if len(users) <= limit {
		return users
	}
	return users[:limit]
}
