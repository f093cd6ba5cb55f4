package alerter

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/slack-go/slack"

	"github.com/driftline/driftline/model"
)

// Notifier delivers alerts to an external channel. Delivery is
// best-effort; callers log and move on when it fails.
type Notifier interface {
	Notify(alerts []model.Alert) error
}

// NoopNotifier drops all alerts. Used when no channel is configured.
type NoopNotifier struct{}

func (NoopNotifier) Notify([]model.Alert) error { return nil }

// SlackNotifier posts high and critical alerts to a Slack incoming
// webhook.
type SlackNotifier struct {
	webhookUrl string
}

// NewSlackNotifierFromEnv reads ALERT_SLACK_WEBHOOK_URL. When the
// variable is unset it returns a NoopNotifier so callers don't need to
// special-case the unconfigured path.
func NewSlackNotifierFromEnv() Notifier {
	url := os.Getenv("ALERT_SLACK_WEBHOOK_URL")
	if url == "" {
		return NoopNotifier{}
	}
	return &SlackNotifier{webhookUrl: url}
}

func (n *SlackNotifier) Notify(alerts []model.Alert) error {
	attachments := []slack.Attachment{}
	for _, alert := range alerts {
		if alert.Severity != model.SeverityHigh && alert.Severity != model.SeverityCritical {
			continue
		}
		attachments = append(attachments, slack.Attachment{
			Color: severityColor(alert.Severity),
			Title: alert.Title,
			Text:  fmt.Sprintf("type: %s, severity: %s", alert.Type, alert.Severity),
		})
	}
	if len(attachments) == 0 {
		return nil
	}

	msg := &slack.WebhookMessage{
		Text:        fmt.Sprintf("%d alert(s) require attention", len(attachments)),
		Attachments: attachments,
	}
	if err := slack.PostWebhook(n.webhookUrl, msg); err != nil {
		return errors.Wrap(err, "fail to post alerts to slack webhook")
	}
	return nil
}

func severityColor(severity model.Severity) string {
	if severity == model.SeverityCritical {
		return "#ff0000"
	}
	return "#ffa500"
}

// AlertStatusStore records delivery markers. MarkNotified reports
// whether this call was the first to set the marker.
type AlertStatusStore interface {
	MarkNotified(dedupKey string) (bool, error)
}

// DedupNotifier suppresses re-delivery of alerts already sent by an
// earlier run. A marker is only burned for alerts the channel actually
// carries (high and critical), so a medium alert that later escalates
// still gets delivered.
type DedupNotifier struct {
	inner Notifier
	store AlertStatusStore
}

func NewDedupNotifier(inner Notifier, store AlertStatusStore) *DedupNotifier {
	return &DedupNotifier{inner: inner, store: store}
}

func (n *DedupNotifier) Notify(alerts []model.Alert) error {
	fresh := make([]model.Alert, 0, len(alerts))
	for _, alert := range alerts {
		if alert.Severity != model.SeverityHigh && alert.Severity != model.SeverityCritical {
			continue
		}
		first, err := n.store.MarkNotified(alert.Type + "__" + alert.Title)
		if err != nil {
			// Deliver on store failure, a duplicate beats a dropped alert.
			first = true
		}
		if first {
			fresh = append(fresh, alert)
		}
	}
	if len(fresh) == 0 {
		return nil
	}
	return n.inner.Notify(fresh)
}
