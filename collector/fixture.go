package collector

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/driftline/driftline/model"
	"github.com/driftline/driftline/normalizer"
)

// FixtureCollector generates a synthetic batch that mimics a monitored
// stream: roughly 30% hostile content (some of it coordinated), the
// rest organic. Deterministic for a given seed, so test assertions and
// demo runs are reproducible.
type FixtureCollector struct {
	rng  *rand.Rand
	size int
	now  time.Time
}

func NewFixtureCollector(seed int64, size int) *FixtureCollector {
	return &FixtureCollector{
		rng:  rand.New(rand.NewSource(seed)),
		size: size,
		now:  time.Now().UTC(),
	}
}

var fixtureUsernames = []string{
	"newsreader", "politicalvoice", "commentator", "observer",
	"citizen_x", "voice_of_truth", "news_watcher", "global_view",
	"free_thinker", "truth_seeker", "news_junkie", "fact_checker",
}

// Bot-looking handles the detector's username heuristics should catch.
var fixtureBotUsernames = []string{
	"newsbot_2291", "account992817364", "amplifier55512345678", "fakevoice_relay",
}

var hostileTemplates = []string{
	"%s is becoming more evident day by day. %s",
	"Breaking: new evidence of %s. %s",
	"Why is nobody talking about %s? %s",
	"%s %s - spread awareness!",
	"International community needs to address %s immediately. %s",
}

var hostilePhrases = []string{
	"boycott india", "anti india propaganda", "fake india narrative",
	"indian media sold", "indian democracy fake",
}

var hostileHashtags = []string{"#boycottindia", "#antiindia", "#fakeindia"}

var organicTexts = []string{
	"Interesting developments in India's tech sector today. #technology",
	"India's cultural heritage is truly remarkable. #travel",
	"Visited India last year - amazing food and friendly people!",
	"India's space program has made significant progress. #science",
	"Watching the cricket match - India vs Australia. #cricket",
	"India's renewable energy initiatives are promising. #climate",
	"Just finished reading a book about India's history.",
	"The landscapes in India are breathtaking. #photography",
}

// CollectAndPublish generates the batch and pushes it as a single
// slice.
func (f *FixtureCollector) CollectAndPublish(sink CollectedPostSink) error {
	posts := make([]model.Post, 0, f.size)
	hostileCount := f.size * 3 / 10

	for i := 0; i < f.size; i++ {
		var content, username string
		if i < hostileCount {
			template := hostileTemplates[f.rng.Intn(len(hostileTemplates))]
			phrase := hostilePhrases[f.rng.Intn(len(hostilePhrases))]
			hashtag := hostileHashtags[f.rng.Intn(len(hostileHashtags))]
			content = fmt.Sprintf(template, phrase, hashtag)
			// Half of the hostile stream comes from bot-like handles
			// posting in a tight window.
			if f.rng.Intn(2) == 0 {
				username = fixtureBotUsernames[f.rng.Intn(len(fixtureBotUsernames))]
			} else {
				username = fixtureUsernames[f.rng.Intn(len(fixtureUsernames))]
			}
		} else {
			content = organicTexts[f.rng.Intn(len(organicTexts))]
			username = fixtureUsernames[f.rng.Intn(len(fixtureUsernames))]
		}

		createdAt := f.now.Add(-time.Duration(f.rng.Intn(24*3600)) * time.Second)
		if i < hostileCount && f.rng.Intn(2) == 0 {
			// Compress coordinated posts into the most recent hour.
			createdAt = f.now.Add(-time.Duration(f.rng.Intn(3600)) * time.Second)
		}

		normalized := normalizer.Normalize(content)
		posts = append(posts, model.Post{
			Id:        fmt.Sprintf("fixture_%d", i),
			Platform:  "fixture",
			UserId:    "u_" + username,
			Username:  username,
			Content:   content,
			CreatedAt: createdAt,
			Engagement: model.EngagementCounts{
				Likes:   f.rng.Intn(200),
				Shares:  f.rng.Intn(80),
				Replies: f.rng.Intn(40),
			},
			Hashtags:      normalized.Hashtags,
			Mentions:      normalized.Mentions,
			Language:      normalized.Language,
			FollowerCount: 100 + f.rng.Intn(10000),
		})
	}

	return sink.Push(posts)
}
