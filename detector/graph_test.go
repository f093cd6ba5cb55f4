package detector

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/driftline/driftline/model"
)

func TestGonumAnalyzerEmptyAndIsolated(t *testing.T) {
	a := NewGonumGraphAnalyzer()

	assert.Empty(t, a.DetectNetworks(nil))

	// Users without shared hashtags never form a component.
	posts := []model.Post{
		makePost("p1", "u1", "one", "no tags here", baseTime),
		makePost("p2", "u2", "two", "none here either", baseTime),
		makePost("p3", "u3", "three", "still nothing", baseTime),
	}
	assert.Empty(t, a.DetectNetworks(posts))
}

func TestGonumAnalyzerTriangle(t *testing.T) {
	a := NewGonumGraphAnalyzer()

	posts := []model.Post{
		makePost("p1", "u1", "one", "push this #tag", baseTime),
		makePost("p2", "u2", "two", "push this #tag", baseTime.Add(20*time.Second)),
		makePost("p3", "u3", "three", "push this #tag", baseTime.Add(45*time.Second)),
	}

	findings := a.DetectNetworks(posts)
	if assert.Len(t, findings, 1) {
		f := findings[0]
		assert.Equal(t, "network_0", f.Id)
		assert.Equal(t, []string{"u1", "u2", "u3"}, f.Users)
		assert.Equal(t, 3, f.Size)
		assert.InDelta(t, 1.0, f.Density, 1e-9)
		// density * size / 10
		assert.InDelta(t, 0.3, f.RiskScore, 1e-9)
		assert.Contains(t, f.Indicators, "high_density_network")
		assert.Contains(t, f.Indicators, "coordinated_timing")
		assert.Equal(t, 3, f.TotalPosts)
	}
}

func TestGonumAnalyzerSpreadTimingNotCoordinated(t *testing.T) {
	a := NewGonumGraphAnalyzer()

	posts := []model.Post{
		makePost("p1", "u1", "one", "slow burn #tag", baseTime),
		makePost("p2", "u2", "two", "slow burn #tag", baseTime.Add(2*time.Hour)),
		makePost("p3", "u3", "three", "slow burn #tag", baseTime.Add(5*time.Hour)),
	}

	findings := a.DetectNetworks(posts)
	if assert.Len(t, findings, 1) {
		assert.NotContains(t, findings[0].Indicators, "coordinated_timing")
	}
}

// A dense component of six users crosses the 0.5 risk bar and must
// surface as a network campaign.
func TestDetectCampaignsIncludesDenseNetwork(t *testing.T) {
	d := New(DefaultConfig(), NewGonumGraphAnalyzer())

	posts := []model.Post{}
	for i := 0; i < 6; i++ {
		posts = append(posts, makePost(
			fmt.Sprintf("p%d", i),
			fmt.Sprintf("u%d", i),
			fmt.Sprintf("relay_%c", 'a'+i),
			"amplify #swarm",
			baseTime.Add(time.Duration(i*10)*time.Second),
		))
	}

	campaigns := d.DetectCampaigns(posts)

	var network *model.Campaign
	for i := range campaigns {
		if strings.HasPrefix(campaigns[i].Hashtag, "network_") {
			network = &campaigns[i]
			break
		}
	}
	if assert.NotNil(t, network, "expected a network-based campaign") {
		assert.Equal(t, 6, network.UniqueUsers)
		// complete graph of six users: density 1.0, risk 0.6
		assert.InDelta(t, 0.6, network.RiskScore, 1e-9)
		assert.Contains(t, network.Indicators, "high_density_network")
	}
}

func TestNoopGraphAnalyzer(t *testing.T) {
	posts := []model.Post{makePost("p1", "u1", "one", "hello #tag", baseTime)}
	assert.Empty(t, NoopGraphAnalyzer{}.DetectNetworks(posts))
}
