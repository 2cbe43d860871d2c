package telegram

import (
	"fmt"
	"strings"

	"go-jobscout/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// sender is the part of tgbotapi.BotAPI the bot uses
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	api    sender
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

var markdownReplacer = strings.NewReplacer(
	"\\", "\\\\",
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
	")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
	"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
	"}", "\\}", ".", "\\.", "!", "\\!",
)

// EscapeMarkdown escapes text for MarkdownV2
func EscapeMarkdown(text string) string {
	return markdownReplacer.Replace(text)
}

// url parts only need ) and \ escaped inside (...)
var linkReplacer = strings.NewReplacer("\\", "\\\\", ")", "\\)")

// FormatMatch renders one match as a MarkdownV2 message
func FormatMatch(m models.Match) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔥 *%s*\n", EscapeMarkdown(m.Title))
	fmt.Fprintf(&b, "🏢 %s\n", EscapeMarkdown(orNA(m.Company)))
	fmt.Fprintf(&b, "📍 %s\n", EscapeMarkdown(orNA(m.Location)))
	fmt.Fprintf(&b, "🎯 Match Score: %d/100\n", m.Score)
	if m.Reason != "" {
		fmt.Fprintf(&b, "💡 %s\n", EscapeMarkdown(m.Reason))
	}
	if isLink(m.ApplyLink) {
		fmt.Fprintf(&b, "🔗 [Apply Here](%s)\n", linkReplacer.Replace(m.ApplyLink))
	}
	fmt.Fprintf(&b, "🔖 Source: %s", EscapeMarkdown(orNA(m.URLSource)))
	return b.String()
}

func (b *Bot) SendMatch(m models.Match) error {
	msg := tgbotapi.NewMessage(b.chatID, FormatMatch(m))
	msg.ParseMode = "MarkdownV2"
	msg.DisableWebPagePreview = true

	var buttons []tgbotapi.InlineKeyboardButton
	if isLink(m.ApplyLink) {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL("🔗 Apply", m.ApplyLink))
	}
	if isLink(m.URL) && m.URL != m.ApplyLink {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL("📄 View Posting", m.URL))
	}
	if len(buttons) > 0 {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(buttons...))
	}

	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendError(err error) error {
	msg := tgbotapi.NewMessage(b.chatID, fmt.Sprintf("❌ Error: %v", err))
	_, sendErr := b.api.Send(msg)
	return sendErr
}

func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}

func isLink(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
