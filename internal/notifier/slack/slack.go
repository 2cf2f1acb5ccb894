package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mana-gg/arena/internal/anticheat"
	"github.com/mana-gg/arena/internal/metrics"
	"github.com/mana-gg/arena/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// SendRefundProcessed implements the Notifier interface.
func (s *Notifier) SendRefundProcessed(playerName string, amount int, matchID string, dryRun bool) error {
	msg := s.formatRefundProcessed(playerName, amount, matchID)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// SendHighRiskAlert implements the Notifier interface.
func (s *Notifier) SendHighRiskAlert(eval anticheat.Evaluation, dryRun bool) error {
	msg := s.formatHighRiskAlert(eval)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// SendRegistrationNotice implements the Notifier interface.
func (s *Notifier) SendRegistrationNotice(playerName, mode, slot string, fee int, dryRun bool) error {
	msg := s.formatRegistrationNotice(playerName, mode, slot, fee)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}
