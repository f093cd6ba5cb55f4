// Package collector produces Post batches for the analysis pipeline.
// Collectors are adapters around external sources; the analysis core
// only ever sees materialized []model.Post values.
package collector

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/driftline/driftline/model"
)

// CollectedPostSink receives batches of collected posts.
type CollectedPostSink interface {
	Push(posts []model.Post) error
}

// DataCollector gathers posts from one source and publishes them to
// the sink. Implementations report partial failures through the error
// but push whatever they managed to collect first.
type DataCollector interface {
	CollectAndPublish(sink CollectedPostSink) error
}

// SliceSink accumulates pushed posts in memory. Useful for one-shot
// batch runs and tests.
type SliceSink struct {
	Posts []model.Post
}

func (s *SliceSink) Push(posts []model.Post) error {
	s.Posts = append(s.Posts, posts...)
	return nil
}

// StderrSink dumps collected posts to stderr as JSON, one batch per
// line. Handy for debugging collector instances locally.
type StderrSink struct{}

func (StderrSink) Push(posts []model.Post) error {
	encoded, err := json.Marshal(posts)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, string(encoded))
	return nil
}
