package detector

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/driftline/driftline/model"
	"github.com/driftline/driftline/utils"
)

// NetworkFinding describes one suspicious user cluster discovered by
// graph analysis. Users is sorted.
type NetworkFinding struct {
	Id            string
	Users         []string
	Size          int
	Density       float64
	TotalPosts    int
	RiskScore     float64
	FirstActivity time.Time
	LastActivity  time.Time
	TimeSpanHours float64
	Indicators    []string
}

// GraphAnalyzer is the optional graph capability of the detector.
// Implementations must be safe for concurrent use and must not retain
// the posts slice.
type GraphAnalyzer interface {
	DetectNetworks(posts []model.Post) []NetworkFinding
}

// NoopGraphAnalyzer is the fallback when no graph capability is
// wired in: network detection degrades to an empty result.
type NoopGraphAnalyzer struct{}

func (NoopGraphAnalyzer) DetectNetworks([]model.Post) []NetworkFinding { return nil }

// GonumGraphAnalyzer builds an undirected user graph with edges
// weighted by shared-hashtag co-occurrence and flags connected
// components of suspicious density.
type GonumGraphAnalyzer struct {
	minComponentSize int
	now              func() time.Time
}

func NewGonumGraphAnalyzer() *GonumGraphAnalyzer {
	return &GonumGraphAnalyzer{minComponentSize: 3, now: time.Now}
}

func (a *GonumGraphAnalyzer) DetectNetworks(posts []model.Post) []NetworkFinding {
	if len(posts) == 0 {
		return nil
	}

	// Stable user -> node id assignment keeps findings independent of
	// input order.
	userSet := make(map[string]struct{})
	hashtagUsers := make(map[string]map[string]struct{})
	for _, post := range posts {
		userSet[post.UserId] = struct{}{}
		for _, hashtag := range postHashtags(post) {
			users, ok := hashtagUsers[hashtag]
			if !ok {
				users = make(map[string]struct{})
				hashtagUsers[hashtag] = users
			}
			users[post.UserId] = struct{}{}
		}
	}
	users := make([]string, 0, len(userSet))
	for user := range userSet {
		users = append(users, user)
	}
	sort.Strings(users)

	idOf := make(map[string]int64, len(users))
	nameOf := make(map[int64]string, len(users))
	g := simple.NewWeightedUndirectedGraph(0, 0)
	for i, user := range users {
		id := int64(i)
		idOf[user] = id
		nameOf[id] = user
		g.AddNode(simple.Node(id))
	}

	for _, group := range hashtagUsers {
		members := make([]string, 0, len(group))
		for user := range group {
			members = append(members, user)
		}
		sort.Strings(members)
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				u, v := idOf[members[i]], idOf[members[j]]
				weight := 1.0
				if existing := g.WeightedEdge(u, v); existing != nil {
					weight = existing.Weight() + 1
				}
				g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(u), simple.Node(v), weight))
			}
		}
	}

	var components [][]string
	for _, component := range topo.ConnectedComponents(g) {
		if len(component) < a.minComponentSize {
			continue
		}
		members := make([]string, 0, len(component))
		for _, node := range component {
			members = append(members, nameOf[node.ID()])
		}
		sort.Strings(members)
		components = append(components, members)
	}
	sort.Slice(components, func(i, j int) bool { return components[i][0] < components[j][0] })

	now := a.now()
	findings := make([]NetworkFinding, 0, len(components))
	for _, members := range components {
		memberSet := make(map[string]struct{}, len(members))
		for _, member := range members {
			memberSet[member] = struct{}{}
		}

		// Connected components keep all their edges internal, so the
		// degree sum over members counts each internal edge twice.
		degreeSum := 0
		for _, member := range members {
			degreeSum += g.From(idOf[member]).Len()
		}
		edges := degreeSum / 2
		n := len(members)
		density := float64(2*edges) / float64(n*(n-1))

		var timestamps []time.Time
		totalPosts := 0
		for _, post := range posts {
			if _, ok := memberSet[post.UserId]; !ok {
				continue
			}
			totalPosts++
			ts := post.CreatedAt
			if ts.IsZero() {
				ts = now
			}
			timestamps = append(timestamps, ts)
		}
		if totalPosts == 0 {
			continue
		}
		sort.Slice(timestamps, func(i, j int) bool { return timestamps[i].Before(timestamps[j]) })
		first, last := timestamps[0], timestamps[len(timestamps)-1]

		findings = append(findings, NetworkFinding{
			Id:            fmt.Sprintf("network_%d", len(findings)),
			Users:         members,
			Size:          n,
			Density:       density,
			TotalPosts:    totalPosts,
			RiskScore:     riskFromDensity(density, n),
			FirstActivity: first,
			LastActivity:  last,
			TimeSpanHours: last.Sub(first).Hours(),
			Indicators:    networkIndicators(density, timestamps),
		})
	}
	return findings
}

func riskFromDensity(density float64, size int) float64 {
	return utils.Clamp01(density * float64(size) / 10)
}

// networkIndicators flags unusually dense clusters and bursts of
// near-simultaneous posting within the component.
func networkIndicators(density float64, sorted []time.Time) []string {
	indicators := []string{}
	if density > 0.7 {
		indicators = append(indicators, "high_density_network")
	}
	if len(sorted) > 1 {
		tight := 0
		gaps := len(sorted) - 1
		for i := 1; i < len(sorted); i++ {
			if sorted[i].Sub(sorted[i-1]).Seconds() < 60 {
				tight++
			}
		}
		if float64(tight) > float64(gaps)*0.3 {
			indicators = append(indicators, "coordinated_timing")
		}
	}
	return indicators
}
