package telegram

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rverdelli/PlatformVA/internal/entity"
)

// Session is one chat's conversation context. The store is an in-memory
// convenience cache, not durable persistence: idle sessions expire.
type Session struct {
	ID    string
	State entity.ConversationState
}

// sessionStore keeps per-chat sessions with a TTL and one mutex per chat so
// concurrent updates for the same chat are serialized, preserving the
// append-only history invariant.
type sessionStore struct {
	cache *gocache.Cache

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		cache: gocache.New(ttl, 2*ttl),
		locks: make(map[int64]*sync.Mutex),
	}
}

// lock returns the per-chat mutex, creating it on first use.
func (s *sessionStore) lock(chatID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[chatID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[chatID] = l
	}
	return l
}

// get returns the chat's session, creating a fresh one if absent or expired.
func (s *sessionStore) get(chatID int64) *Session {
	key := strconv.FormatInt(chatID, 10)

	if cached, ok := s.cache.Get(key); ok {
		return cached.(*Session)
	}

	session := &Session{
		ID: uuid.New().String(),
		State: entity.ConversationState{
			Phase: entity.PhaseClarification,
		},
	}
	s.cache.SetDefault(key, session)

	return session
}

// put stores the chat's session and refreshes its TTL.
func (s *sessionStore) put(chatID int64, session *Session) {
	s.cache.SetDefault(strconv.FormatInt(chatID, 10), session)
}

// reset drops the chat's session so the next message starts a new one.
func (s *sessionStore) reset(chatID int64) {
	s.cache.Delete(strconv.FormatInt(chatID, 10))
}
