// internal/services/session_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzansithrift/thriftstore-backend/internal/models"
)

func TestSessionLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, testConfig().Session)
	buyer := createBuyer(t, db, "buyer@example.com")

	token, err := svc.IssueBuyer(buyer.ID)
	require.NoError(t, err)
	assert.Len(t, token, 64) // 32 random bytes, hex encoded

	identity, err := svc.Resolve(token)
	require.NoError(t, err)
	assert.True(t, identity.IsBuyer())
	assert.False(t, identity.IsSeller())

	require.NoError(t, svc.Revoke(token))
	_, err = svc.Resolve(token)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.Resolve("")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Resolve("deadbeef")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSellerSessionIsDistinctNamespace(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, testConfig().Session)
	seller := createApprovedSeller(t, db, "Retro Finds")

	token, err := svc.IssueSeller(seller.ID)
	require.NoError(t, err)

	identity, err := svc.Resolve(token)
	require.NoError(t, err)
	assert.True(t, identity.IsSeller())
	assert.False(t, identity.IsBuyer())
	assert.Equal(t, seller.ID, *identity.SellerID)
}

func TestExpiredSessionIsReaped(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, testConfig().Session)
	buyer := createBuyer(t, db, "buyer@example.com")

	token, err := svc.IssueBuyer(buyer.ID)
	require.NoError(t, err)

	// Force expiry in the past.
	require.NoError(t, db.Model(&models.Session{}).
		Where("token = ?", token).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	_, err = svc.Resolve(token)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// The expired row was deleted on resolve.
	var count int64
	db.Model(&models.Session{}).Where("token = ?", token).Count(&count)
	assert.Zero(t, count)
}

func TestPurgeExpired(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, testConfig().Session)
	buyer := createBuyer(t, db, "buyer@example.com")
	seller := createApprovedSeller(t, db, "Retro Finds")

	stale, err := svc.IssueBuyer(buyer.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Session{}).
		Where("token = ?", stale).
		Update("expires_at", time.Now().Add(-time.Hour)).Error)

	fresh, err := svc.IssueSeller(seller.ID)
	require.NoError(t, err)

	require.NoError(t, svc.PurgeExpired())

	var count int64
	db.Model(&models.Session{}).Count(&count)
	assert.EqualValues(t, 1, count)

	_, err = svc.Resolve(fresh)
	assert.NoError(t, err)
}
