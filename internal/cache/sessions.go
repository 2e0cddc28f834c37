// Package cache holds short-lived in-memory state shared across requests.
package cache

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/varunisrani/marketscope/internal/model"
)

// DefaultSessionTTL is how long issued questions stay answerable
const DefaultSessionTTL = 30 * time.Minute

// QuestionSession records the questions issued for one report run
type QuestionSession struct {
	ID          string            `json:"session_id"`
	CompanyName string            `json:"company_name"`
	Industry    string            `json:"industry"`
	ReportType  model.ReportType  `json:"report_type"`
	DetailLevel model.DetailLevel `json:"detail_level"`
	Questions   []model.Question  `json:"questions"`
	Website     string            `json:"-"`
	CreatedAt   time.Time         `json:"created_at"`
}

// QuestionSessions is an in-memory TTL store of question sessions
type QuestionSessions struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewQuestionSessions creates a store; ttl <= 0 uses DefaultSessionTTL
func NewQuestionSessions(ttl time.Duration) *QuestionSessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &QuestionSessions{
		cache: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// Put stores a session under a fresh id and returns it
func (s *QuestionSessions) Put(sess QuestionSession) QuestionSession {
	sess.ID = uuid.NewString()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now()
	}
	s.cache.Set(sess.ID, sess, s.ttl)
	return sess
}

// Get retrieves a live session
func (s *QuestionSessions) Get(id string) (QuestionSession, bool) {
	if val, found := s.cache.Get(id); found {
		return val.(QuestionSession), true
	}
	return QuestionSession{}, false
}

// Delete removes a session once its report has been generated
func (s *QuestionSessions) Delete(id string) {
	s.cache.Delete(id)
}

// Len reports the number of sessions, including expired ones not yet cleaned up
func (s *QuestionSessions) Len() int {
	return s.cache.ItemCount()
}
