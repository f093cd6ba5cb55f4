// analyzer runs the full analysis pipeline once over a batch of posts
// read from a JSON file, or over a generated fixture batch, and prints
// the result as JSON. High and critical alerts are delivered through
// the configured notifier.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/driftline/driftline/alerter"
	"github.com/driftline/driftline/classifier"
	"github.com/driftline/driftline/collector"
	"github.com/driftline/driftline/detector"
	"github.com/driftline/driftline/engagement"
	"github.com/driftline/driftline/model"
	"github.com/driftline/driftline/pipeline"
	"github.com/driftline/driftline/storage"
	"github.com/driftline/driftline/utils/dotenv"
	Logger "github.com/driftline/driftline/utils/log"
)

var (
	inputPath   = flag.String("input", "", "path to a JSON file containing an array of posts")
	fixtureSize = flag.Int("fixture", 0, "generate a fixture batch of this size instead of reading a file")
	fixtureSeed = flag.Int64("seed", 42, "seed for fixture generation")
	feedUrl     = flag.String("feed", "", "collect the batch from this RSS feed url")
)

func loadPosts() ([]model.Post, error) {
	switch {
	case *inputPath != "":
		raw, err := os.ReadFile(*inputPath)
		if err != nil {
			return nil, err
		}
		var posts []model.Post
		if err := json.Unmarshal(raw, &posts); err != nil {
			return nil, err
		}
		return posts, nil
	case *feedUrl != "":
		sink := &collector.SliceSink{}
		rss := collector.NewRSSCollector(*feedUrl)
		if err := rss.CollectAndPublish(sink); err != nil {
			return nil, err
		}
		return sink.Posts, nil
	case *fixtureSize > 0:
		sink := &collector.SliceSink{}
		fixture := collector.NewFixtureCollector(*fixtureSeed, *fixtureSize)
		if err := fixture.CollectAndPublish(sink); err != nil {
			return nil, err
		}
		return sink.Posts, nil
	default:
		return nil, fmt.Errorf("one of -input, -feed or -fixture is required")
	}
}

// newNotifier builds the alert delivery chain: slack webhook when
// configured, wrapped with redis-backed dedup when a status store is
// reachable so overlapping runs only notify once per alert.
func newNotifier() alerter.Notifier {
	notifier := alerter.NewSlackNotifierFromEnv()
	if os.Getenv("REDIS_HOST") == "" {
		return notifier
	}
	statusStore, err := storage.GetAlertStatusStore()
	if err != nil {
		Logger.Log.Warnln("alert dedup disabled:", err)
		return notifier
	}
	return alerter.NewDedupNotifier(notifier, statusStore)
}

func main() {
	flag.Parse()
	Logger.InitLogger()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	posts, err := loadPosts()
	if err != nil {
		Logger.Log.Fatalln("fail to load posts:", err)
	}
	Logger.Log.Infof("analyzing %d posts", len(posts))

	analysisPipeline := &pipeline.Pipeline{
		Classifier: classifier.New(classifier.DefaultLexicon()),
		Scorer:     engagement.NewScorer(engagement.DefaultViralThreshold),
		Detector:   detector.New(detector.DefaultConfig(), detector.NewGonumGraphAnalyzer()),
		Alerter:    alerter.NewGenerator(alerter.DefaultAlertThreshold),
	}
	result := analysisPipeline.Analyze(posts)

	if err := newNotifier().Notify(result.Alerts); err != nil {
		Logger.Log.Errorln("fail to deliver alerts:", err)
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		Logger.Log.Fatalln("fail to encode result:", err)
	}
	fmt.Println(string(encoded))
}
