package collector

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestFixtureCollectorDeterministic(t *testing.T) {
	first := &SliceSink{}
	second := &SliceSink{}

	a := NewFixtureCollector(7, 50)
	a.now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b := NewFixtureCollector(7, 50)
	b.now = a.now

	assert.NoError(t, a.CollectAndPublish(first))
	assert.NoError(t, b.CollectAndPublish(second))

	if diff := cmp.Diff(first.Posts, second.Posts); diff != "" {
		t.Errorf("same seed produced different batches (-want +got):\n%s", diff)
	}
}

func TestFixtureCollectorShape(t *testing.T) {
	sink := &SliceSink{}
	f := NewFixtureCollector(42, 40)
	assert.NoError(t, f.CollectAndPublish(sink))

	assert.Len(t, sink.Posts, 40)

	hostileWithTags := 0
	for _, post := range sink.Posts {
		assert.NotEmpty(t, post.Id)
		assert.NotEmpty(t, post.UserId)
		assert.NotEmpty(t, post.Content)
		assert.False(t, post.CreatedAt.IsZero())
		if len(post.Hashtags) > 0 {
			hostileWithTags++
		}
	}
	// The hostile share of the batch always carries a hashtag.
	assert.GreaterOrEqual(t, hostileWithTags, 12)
}

func TestSliceSink(t *testing.T) {
	sink := &SliceSink{}
	f := NewFixtureCollector(1, 3)
	assert.NoError(t, f.CollectAndPublish(sink))
	assert.NoError(t, f.CollectAndPublish(sink))
	assert.Len(t, sink.Posts, 6)
}
