package chatlog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/thankscarbon/rida/logger"
)

var log = logger.New("chatlog")

const (
	DefaultDir     = "chat_logs"
	transcriptFile = "conversation.jsonl"
)

type (
	// Logger keeps an append-only JSONL transcript plus downloaded images
	// per chat. Write failures are logged and never fatal.
	Logger struct {
		dir string
	}

	textRecord struct {
		Timestamp string `json:"timestamp"`
		Sender    string `json:"sender"`
		UserName  string `json:"user_name,omitempty"`
		Type      string `json:"type"`
		Content   string `json:"content"`
	}

	imageRecord struct {
		Timestamp string `json:"timestamp"`
		Sender    string `json:"sender"`
		UserName  string `json:"user_name"`
		Type      string `json:"type"`
		ImagePath string `json:"image_path"`
		Caption   string `json:"caption"`
	}
)

func New(dir string) *Logger {
	if dir == "" {
		dir = DefaultDir
	}
	return &Logger{dir: dir}
}

func (l *Logger) ChatDir(chatID int64) string {
	return filepath.Join(l.dir, strconv.FormatInt(chatID, 10))
}

func (l *Logger) ImageDir(chatID int64) string {
	return filepath.Join(l.ChatDir(chatID), "images")
}

// Setup creates the chat's directory layout, including the image folder.
func (l *Logger) Setup(chatID int64) error {
	return os.MkdirAll(l.ImageDir(chatID), 0o755)
}

// StoreMessage records a user's text message.
func (l *Logger) StoreMessage(chatID int64, userName, text string) {
	l.append(chatID, textRecord{
		Timestamp: time.Now().Format(time.RFC3339),
		Sender:    "user",
		UserName:  userName,
		Type:      "text",
		Content:   text,
	})
}

// StoreImage records a reference to a downloaded image. Only the base name
// is kept; the file itself lives in the chat's image folder.
func (l *Logger) StoreImage(chatID int64, userName, imagePath, caption string) {
	l.append(chatID, imageRecord{
		Timestamp: time.Now().Format(time.RFC3339),
		Sender:    "user",
		UserName:  userName,
		Type:      "image",
		ImagePath: filepath.Base(imagePath),
		Caption:   caption,
	})
}

// StoreBotResponse records the bot's reply. Empty responses are skipped.
func (l *Logger) StoreBotResponse(chatID int64, text string) {
	if text == "" {
		return
	}
	l.append(chatID, textRecord{
		Timestamp: time.Now().Format(time.RFC3339),
		Sender:    "bot",
		Type:      "text",
		Content:   text,
	})
}

func (l *Logger) append(chatID int64, record any) {
	if err := l.Setup(chatID); err != nil {
		log.Err(err).
			Int64("chat_id", chatID).
			Msg("Failed to create chat log directory")
		return
	}

	data, err := json.Marshal(record)
	if err != nil {
		log.Err(err).
			Int64("chat_id", chatID).
			Msg("Failed to marshal transcript record")
		return
	}

	path := filepath.Join(l.ChatDir(chatID), transcriptFile)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Err(err).
			Str("path", path).
			Msg("Failed to open transcript file")
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Err(err).
				Str("path", path).
				Msg("Failed to close transcript file")
		}
	}()

	if _, err := f.Write(append(data, '\n')); err != nil {
		log.Err(err).
			Str("path", path).
			Msg("Failed to write transcript record")
	}
}
