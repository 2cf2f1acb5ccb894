package slack

import (
	"fmt"

	"github.com/mana-gg/arena/internal/anticheat"
	"github.com/slack-go/slack"
)

// formatRefundProcessed creates the Slack message for a credited refund using Block Kit.
func (s *Notifier) formatRefundProcessed(playerName string, amount int, matchID string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "💸 Refund credited", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Player: %s\nAmount: %d credits", playerName, amount)
	if matchID != "" {
		detailsText += fmt.Sprintf("\nMatch: %s", matchID)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatHighRiskAlert creates the Slack message for a high-band risk evaluation.
func (s *Notifier) formatHighRiskAlert(eval anticheat.Evaluation) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🚨 High risk score", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Player: %s\nScore: %d/100", eval.PlayerName, eval.Score)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	contextText := fmt.Sprintf("HS %.0f%% · K/D %.1f · win %.0f%% · reaction %.0fms · reports %d",
		eval.HeadshotRatio, eval.KillDeathRatio, eval.WinRate, eval.ReactionTimeMs, eval.ReportCount)
	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject("plain_text", contextText, false, false),
		slack.NewTextBlockObject("plain_text", "Display only. Review before any action.", false, false),
	))

	return slack.NewBlockMessage(blocks...)
}

// formatRegistrationNotice creates the Slack message for a confirmed match registration.
func (s *Notifier) formatRegistrationNotice(playerName, mode, slot string, fee int) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🎮 Match registration", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Player: %s\nMode: %s\nSlot: %s\nEntry fee: %d credits", playerName, mode, slot, fee)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
