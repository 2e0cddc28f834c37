package cache

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varunisrani/marketscope/internal/model"
)

func TestQuestionSessions_PutGet(t *testing.T) {
	store := NewQuestionSessions(time.Minute)

	sess := store.Put(QuestionSession{
		CompanyName: "Acme",
		ReportType:  model.ICPReport,
		Questions:   []model.Question{{ID: 1, Question: "A?"}},
	})
	_, err := uuid.Parse(sess.ID)
	require.NoError(t, err)
	assert.False(t, sess.CreatedAt.IsZero())

	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	assert.Equal(t, sess, got)
	assert.Equal(t, 1, store.Len())

	store.Delete(sess.ID)
	_, ok = store.Get(sess.ID)
	assert.False(t, ok)
}

func TestQuestionSessions_Expiry(t *testing.T) {
	store := NewQuestionSessions(20 * time.Millisecond)
	sess := store.Put(QuestionSession{CompanyName: "Acme"})

	time.Sleep(40 * time.Millisecond)
	_, ok := store.Get(sess.ID)
	assert.False(t, ok)
}

func TestQuestionSessions_DistinctIDs(t *testing.T) {
	store := NewQuestionSessions(0)
	a := store.Put(QuestionSession{})
	b := store.Put(QuestionSession{})
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, DefaultSessionTTL, store.ttl)
}
