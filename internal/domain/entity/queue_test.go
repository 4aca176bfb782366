package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueueItem_TerminalTransition(t *testing.T) {
	created := time.Now()
	started := created.Add(time.Second)
	completed := started.Add(time.Second)

	item := QueueItem{
		ID:          1,
		ArticleID:   10,
		Priority:    1,
		Status:      QueueStatusCompleted,
		CreatedAt:   created,
		StartedAt:   &started,
		CompletedAt: &completed,
	}

	assert.True(t, item.CompletedAt.After(*item.StartedAt) || item.CompletedAt.Equal(*item.StartedAt))
	assert.True(t, item.StartedAt.After(item.CreatedAt) || item.StartedAt.Equal(item.CreatedAt))
}

func TestQueueItem_FailedCarriesErrorMessage(t *testing.T) {
	item := QueueItem{
		Status:       QueueStatusFailed,
		ErrorMessage: "fetch timeout after 2 retries",
	}

	assert.Equal(t, QueueStatusFailed, item.Status)
	assert.NotEmpty(t, item.ErrorMessage)
}
