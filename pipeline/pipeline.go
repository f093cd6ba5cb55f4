// Package pipeline wires the analysis stages together: normalize and
// classify each post, score engagement, run coordination detection and
// threshold the results into alerts. Each stage stays independently
// usable; the pipeline only sequences them.
package pipeline

import (
	"github.com/driftline/driftline/alerter"
	"github.com/driftline/driftline/classifier"
	"github.com/driftline/driftline/detector"
	"github.com/driftline/driftline/engagement"
	"github.com/driftline/driftline/model"
)

// Pipeline holds the analysis components, constructed once at process
// start and passed into request handlers.
type Pipeline struct {
	Classifier *classifier.Classifier
	Scorer     *engagement.Scorer
	Detector   *detector.Detector
	Alerter    *alerter.Generator
}

// Result is the full analysis output for one batch.
type Result struct {
	Campaigns       []model.Campaign                      `json:"campaigns"`
	Bots            []model.BotFlag                       `json:"bots"`
	UserMetrics     []model.UserEngagement                `json:"user_metrics"`
	Alerts          []model.Alert                         `json:"alerts"`
	Classifications map[string]model.ClassificationResult `json:"classifications"`
}

// Analyze runs the whole pipeline over one immutable batch. Like the
// stages it composes, it is a total function: degenerate batches yield
// empty results, never an error.
func (p *Pipeline) Analyze(posts []model.Post) Result {
	classifications := make(map[string]model.ClassificationResult, len(posts))
	stanceRisk := make(map[string]float64, len(posts))
	postRisks := make([]alerter.PostRisk, 0, len(posts))
	uniqueUsers := make(map[string]struct{}, len(posts))
	totalEngagement := 0

	for _, post := range posts {
		result := p.Classifier.Classify(post.Content)
		classifications[post.Id] = result
		risk := result.StanceRisk()
		stanceRisk[post.Id] = risk
		postRisks = append(postRisks, alerter.PostRisk{Post: post, Risk: risk})
		uniqueUsers[post.UserId] = struct{}{}
		totalEngagement += post.TotalEngagement()
	}

	userMetrics := p.Scorer.AnalyzeUsers(posts, stanceRisk)
	campaigns := p.Detector.DetectCampaigns(posts)
	bots := p.Detector.DetectBotUsers(posts)

	alerts := p.Alerter.Generate(postRisks, userMetrics, campaigns)
	if trending := p.Alerter.CheckTrending(alerter.BatchStats{
		PostCount:       len(posts),
		TotalEngagement: totalEngagement,
		UniqueUsers:     len(uniqueUsers),
	}); trending != nil {
		alerts = append(alerts, *trending)
	}

	return Result{
		Campaigns:       campaigns,
		Bots:            bots,
		UserMetrics:     userMetrics,
		Alerts:          alerts,
		Classifications: classifications,
	}
}
