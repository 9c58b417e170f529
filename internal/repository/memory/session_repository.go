package memory

import (
	"time"

	"ai-datachat-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

const activeSessionKey = "active"

// SessionRepository keeps the single active dataset session in memory.
// Sessions expire after an idle hour so an abandoned upload does not pin
// the dataset forever.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

// Save replaces the active session.
func (r *SessionRepository) Save(session *entity.DatasetSession) {
	r.cache.Set(activeSessionKey, session, cache.DefaultExpiration)
}

func (r *SessionRepository) GetActive() (*entity.DatasetSession, bool) {
	if x, found := r.cache.Get(activeSessionKey); found {
		return x.(*entity.DatasetSession), true
	}
	return nil, false
}

func (r *SessionRepository) Delete() {
	r.cache.Delete(activeSessionKey)
}
