package model_test

import (
	"testing"
	"time"

	"github.com/Behyna/wallet-service/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestIdempotencyKeyExpired(t *testing.T) {
	now := time.Now()

	fresh := model.IdempotencyKey{ExpiresAt: now.Add(time.Hour)}
	stale := model.IdempotencyKey{ExpiresAt: now.Add(-time.Second)}

	assert.False(t, fresh.Expired(now))
	assert.True(t, stale.Expired(now))
	assert.False(t, model.IdempotencyKey{ExpiresAt: now}.Expired(now))
}

func TestTransactionStatusTerminal(t *testing.T) {
	assert.False(t, model.TransactionStatusPending.Terminal())
	assert.True(t, model.TransactionStatusCompleted.Terminal())
	assert.True(t, model.TransactionStatusFailed.Terminal())
	assert.True(t, model.TransactionStatusCancelled.Terminal())
}
