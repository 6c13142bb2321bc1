package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tollgate-network/tollgate-daemon/internal/core/application"
	"github.com/tollgate-network/tollgate-daemon/internal/core/domain"
)

func TestHasAccess(t *testing.T) {
	t.Parallel()

	t.Run("no_record", func(t *testing.T) {
		t.Parallel()

		accessRepo := &mockAccessRepository{}
		accessRepo.
			On("GetAccessRecord", mock.Anything, domain.Identity("alice"), uint64(1)).
			Return(nil, domain.ErrAccessNotFound)
		svc := application.NewAccessService(accessRepo, 1)

		ok, err := svc.HasAccess(context.Background(), "alice", 1)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("active_record", func(t *testing.T) {
		t.Parallel()

		accessRepo := &mockAccessRepository{}
		accessRepo.
			On("GetAccessRecord", mock.Anything, domain.Identity("alice"), uint64(1)).
			Return(&domain.AccessRecord{
				Identity:  "alice",
				PaywallID: 1,
				ExpiresAt: time.Now().Add(time.Hour).UnixNano(),
			}, nil)
		svc := application.NewAccessService(accessRepo, 1)

		ok, err := svc.HasAccess(context.Background(), "alice", 1)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("expired_record", func(t *testing.T) {
		t.Parallel()

		accessRepo := &mockAccessRepository{}
		accessRepo.
			On("GetAccessRecord", mock.Anything, domain.Identity("alice"), uint64(1)).
			Return(&domain.AccessRecord{
				Identity:  "alice",
				PaywallID: 1,
				ExpiresAt: time.Now().Add(-time.Nanosecond).UnixNano(),
			}, nil)
		svc := application.NewAccessService(accessRepo, 1)

		ok, err := svc.HasAccess(context.Background(), "alice", 1)
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestAccessExpiry(t *testing.T) {
	t.Parallel()

	expiresAt := time.Now().Add(time.Hour)

	accessRepo := &mockAccessRepository{}
	accessRepo.
		On("GetAccessRecord", mock.Anything, domain.Identity("alice"), uint64(1)).
		Return(&domain.AccessRecord{
			Identity:  "alice",
			PaywallID: 1,
			ExpiresAt: expiresAt.UnixNano(),
		}, nil)
	accessRepo.
		On("GetAccessRecord", mock.Anything, domain.Identity("bob"), uint64(1)).
		Return(nil, domain.ErrAccessNotFound)
	svc := application.NewAccessService(accessRepo, 1)

	expiry, err := svc.AccessExpiry(context.Background(), "alice", 1)
	require.NoError(t, err)
	require.NotNil(t, expiry)
	require.Equal(t, expiresAt.UnixNano(), expiry.UnixNano())

	expiry, err = svc.AccessExpiry(context.Background(), "bob", 1)
	require.NoError(t, err)
	require.Nil(t, expiry)
}

func TestLogSuspiciousActivityIsRateLimited(t *testing.T) {
	t.Parallel()

	accessRepo := &mockAccessRepository{}
	svc := application.NewAccessService(accessRepo, 1)

	// the sink never errors and never touches storage, however hard it is hit.
	for i := 0; i < 100; i++ {
		svc.LogSuspiciousActivity(1, "devtools opened")
	}
	accessRepo.AssertExpectations(t)
}
