package storage

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/thankscarbon/rida/model"
)

type (
	ChatStorage interface {
		model.ChatService
	}

	Chats struct {
		*sqlx.DB
	}
)

func (db *Chats) Get(chatID int64) (model.Chat, error) {
	const query = `SELECT id, language, report_counter FROM chats WHERE id = ?`
	var chat model.Chat
	err := db.DB.Get(&chat, query, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Chat{}, model.ErrNotFound
	}
	return chat, err
}

func (db *Chats) SetLanguage(chatID int64, language string) error {
	const query = `INSERT INTO
    chats (id, language)
    VALUES (?, ?)
    ON DUPLICATE KEY UPDATE language = ?`
	_, err := db.Exec(query, chatID, language, language)
	return err
}

func (db *Chats) SetReportCounter(chatID int64, counter int) error {
	const query = `INSERT INTO
    chats (id, report_counter)
    VALUES (?, ?)
    ON DUPLICATE KEY UPDATE report_counter = ?`
	_, err := db.Exec(query, chatID, counter, counter)
	return err
}
