package main

import (
	"context"
	_ "embed"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/thankscarbon/rida/bot"
	"github.com/thankscarbon/rida/chatlog"
	"github.com/thankscarbon/rida/gemini"
	"github.com/thankscarbon/rida/logger"
	"github.com/thankscarbon/rida/storage"
	"github.com/thankscarbon/rida/utils"
)

//go:embed prompt.txt
var defaultSystemTemplate string

var log = logger.New("main")

func main() {
	versionInfo, err := utils.ReadVersionInfo()
	if err == nil {
		log.Info().Msgf("RIDA-%s, %v", versionInfo.Revision, versionInfo.LastCommit)
	}

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Fatal().Msg("BOT_TOKEN is not set")
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal().Msg("GEMINI_API_KEY is not set")
	}

	db, err := storage.Open(os.Getenv("MYSQL_URL"))
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Send()
	}

	log.Info().Msg("Database connection established")

	n, err := db.Migrate()
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	if n > 0 {
		log.Info().Msgf("Applied %d migration(s)", n)
	}

	systemTemplate := defaultSystemTemplate
	if promptFile := os.Getenv("PROMPT_FILE"); promptFile != "" {
		data, err := os.ReadFile(promptFile)
		if err != nil {
			log.Fatal().Err(err).Str("path", promptFile).Msg("Failed to read system prompt")
		}
		systemTemplate = string(data)
	}

	geminiClient, err := gemini.New(context.Background(), apiKey, os.Getenv("GEMINI_MODEL"))
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	transcript := chatlog.New(os.Getenv("CHAT_LOG_DIR"))

	handler := bot.NewHandler(db.Chats, geminiClient, geminiClient, transcript, systemTemplate)

	b, err := bot.New(token, handler)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	log.Info().Msgf("Logged in as @%s (%d)", b.Username, b.Id)

	if err := b.Start(); err != nil {
		log.Fatal().Err(err).Send()
	}
}
