package model

type Chat struct {
	ID            int64  `db:"id"`
	Language      string `db:"language"`
	ReportCounter int    `db:"report_counter"`
}

// ChatService persists per-chat settings that survive restarts. Conversation
// history is intentionally not part of it.
type ChatService interface {
	Get(chatID int64) (Chat, error)
	SetLanguage(chatID int64, language string) error
	SetReportCounter(chatID int64, counter int) error
}
