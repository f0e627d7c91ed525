package reporter

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"go-jobscout-automation/internal/models"
)

// TelegramReporter pushes accepted jobs and cycle status to the operator's
// chat. Delivery failure is logged by callers and never fails a cycle.
type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *zap.SugaredLogger
}

func NewTelegramReporter(token string, chatID int64, log *zap.SugaredLogger) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	return &TelegramReporter{bot: bot, chatID: chatID, log: log}, nil
}

func (t *TelegramReporter) sendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML"
	_, err := t.bot.Send(msg)
	return err
}

// Notify delivers one accepted job. Returns whether delivery succeeded.
func (t *TelegramReporter) Notify(job models.AcceptedJob) bool {
	text := fmt.Sprintf(
		"🔥 <b>%s</b>\n"+
			"🏢 %s\n"+
			"📍 %s\n"+
			"🤖 Fit score: %.1f/10\n"+
			"🤝 Connects: %d | 💬 Messageable: %d\n"+
			"🔗 <a href=\"%s\">View Posting</a>",
		job.Posting.Title,
		job.Posting.Company,
		job.Posting.Location,
		job.FitScore,
		connectCount(job.Outreach),
		messageCount(job.Outreach),
		job.Posting.CanonicalURL,
	)
	if err := t.sendMessage(text); err != nil {
		t.log.Warnw("telegram delivery failed",
			"posting_id", job.Posting.PostingID, "error", err)
		return false
	}
	return true
}

// SendStatus posts a plain status line, used for the per-cycle summary.
func (t *TelegramReporter) SendStatus(message string) error {
	return t.sendMessage("ℹ️ " + message)
}

// SendError surfaces a cycle-level failure to the operator.
func (t *TelegramReporter) SendError(errReq error) error {
	return t.sendMessage(fmt.Sprintf("⚠️ <b>JobScout Error</b>:\n%v", errReq))
}

func connectCount(records []models.OutreachRecord) int {
	n := 0
	for _, r := range records {
		if r.Action == models.ActionConnectSent {
			n++
		}
	}
	return n
}

func messageCount(records []models.OutreachRecord) int {
	n := 0
	for _, r := range records {
		if r.Action == models.ActionMessageAvailable {
			n++
		}
	}
	return n
}
