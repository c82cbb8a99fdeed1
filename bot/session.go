package bot

import (
	"errors"
	"sync"

	"github.com/thankscarbon/rida/conversation"
	"github.com/thankscarbon/rida/model"
)

type (
	// Session is one chat's in-memory context. Handlers hold the mutex for
	// the whole turn, so state updates for a chat never interleave.
	Session struct {
		sync.Mutex
		State            conversation.State
		LanguageSet      bool
		ChoosingLanguage bool
		FromStart        bool
	}

	// Sessions hands out per-chat sessions, creating them on first contact
	// and hydrating language and report counter from the settings store.
	Sessions struct {
		mu       sync.Mutex
		sessions map[int64]*Session
		chats    model.ChatService
	}
)

func NewSessions(chatService model.ChatService) *Sessions {
	return &Sessions{
		sessions: make(map[int64]*Session),
		chats:    chatService,
	}
}

func (s *Sessions) Get(chatID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if ok {
		return sess
	}

	sess = &Session{State: conversation.NewState()}
	chat, err := s.chats.Get(chatID)
	switch {
	case err == nil:
		if chat.Language != "" {
			sess.State.Language = chat.Language
			sess.LanguageSet = true
		}
		sess.State.ReportCounter = chat.ReportCounter
	case !errors.Is(err, model.ErrNotFound):
		log.Err(err).
			Int64("chat_id", chatID).
			Msg("Failed to load chat settings")
	}

	s.sessions[chatID] = sess
	return sess
}

// maybeReset clears the session history once the report counter crosses the
// reset threshold. The fallback turn recorded after a failed generation
// counts like any other, so the turn's outcome does not gate the reset.
// The caller holds the session lock.
func maybeReset(sess *Session, reportID int) bool {
	if !conversation.ShouldReset(reportID) {
		return false
	}
	sess.State = conversation.ResetPreservingLanguage(sess.State)
	return true
}
