package dbbadger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tollgate-network/tollgate-daemon/internal/core/domain"
)

func newStoredPaywall(t *testing.T, repo domain.PaywallRepository, owner domain.Identity) uint64 {
	t.Helper()

	paywall, err := domain.NewPaywall(
		owner, 100_000_000, time.Hour,
		[]domain.Destination{
			{Kind: domain.DestinationToIdentity, Identity: "bob", Percentage: 100},
		},
		"title", "description", "https://example.com",
	)
	require.NoError(t, err)

	id, err := repo.AddPaywall(context.Background(), paywall)
	require.NoError(t, err)
	return id
}

func TestAddAndGetPaywall(t *testing.T) {
	repo := newTestRepoManager(t).PaywallRepository()
	ctx := context.Background()

	id := newStoredPaywall(t, repo, "owner")
	require.NotZero(t, id)

	stored, err := repo.GetPaywall(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, stored.ID)
	require.Equal(t, domain.Identity("owner"), stored.Owner)
	require.Equal(t, uint64(100_000_000), stored.Price)
	require.Equal(t, time.Hour, stored.SessionDuration)
	require.Len(t, stored.Destinations, 1)
}

func TestPaywallIDsAreMonotonic(t *testing.T) {
	repo := newTestRepoManager(t).PaywallRepository()

	var last uint64
	for i := 0; i < 5; i++ {
		id := newStoredPaywall(t, repo, "owner")
		require.Greater(t, id, last)
		last = id
	}
}

func TestGetUnknownPaywall(t *testing.T) {
	repo := newTestRepoManager(t).PaywallRepository()

	paywall, err := repo.GetPaywall(context.Background(), 999)
	require.ErrorIs(t, err, domain.ErrPaywallNotFound)
	require.Nil(t, paywall)
}

func TestGetPaywallsForOwnerInCreationOrder(t *testing.T) {
	repo := newTestRepoManager(t).PaywallRepository()
	ctx := context.Background()

	first := newStoredPaywall(t, repo, "owner")
	newStoredPaywall(t, repo, "someone-else")
	second := newStoredPaywall(t, repo, "owner")

	paywalls, err := repo.GetPaywallsForOwner(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, paywalls, 2)
	require.Equal(t, first, paywalls[0].ID)
	require.Equal(t, second, paywalls[1].ID)

	paywalls, err = repo.GetPaywallsForOwner(ctx, "nobody")
	require.NoError(t, err)
	require.Empty(t, paywalls)
}

func TestUpdatePaywall(t *testing.T) {
	repo := newTestRepoManager(t).PaywallRepository()
	ctx := context.Background()

	id := newStoredPaywall(t, repo, "owner")

	err := repo.UpdatePaywall(ctx, id, func(p *domain.Paywall) (*domain.Paywall, error) {
		p.Price = 5000
		return p, nil
	})
	require.NoError(t, err)

	stored, err := repo.GetPaywall(ctx, id)
	require.NoError(t, err)
	require.Equal(t, uint64(5000), stored.Price)

	err = repo.UpdatePaywall(ctx, 999, func(p *domain.Paywall) (*domain.Paywall, error) {
		return p, nil
	})
	require.ErrorIs(t, err, domain.ErrPaywallNotFound)
}

func TestUpdatePaywallErrorLeavesStoredConfigUntouched(t *testing.T) {
	repo := newTestRepoManager(t).PaywallRepository()
	ctx := context.Background()

	id := newStoredPaywall(t, repo, "owner")
	before, err := repo.GetPaywall(ctx, id)
	require.NoError(t, err)

	err = repo.UpdatePaywall(ctx, id, func(p *domain.Paywall) (*domain.Paywall, error) {
		p.Price = 1 // discarded when the update fn errors
		return nil, domain.ErrPaywallInvalidPercentages
	})
	require.ErrorIs(t, err, domain.ErrPaywallInvalidPercentages)

	after, err := repo.GetPaywall(ctx, id)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestDeletePaywall(t *testing.T) {
	repo := newTestRepoManager(t).PaywallRepository()
	ctx := context.Background()

	id := newStoredPaywall(t, repo, "owner")
	require.NoError(t, repo.DeletePaywall(ctx, id))

	_, err := repo.GetPaywall(ctx, id)
	require.ErrorIs(t, err, domain.ErrPaywallNotFound)

	require.ErrorIs(t, repo.DeletePaywall(ctx, id), domain.ErrPaywallNotFound)
}

func TestPaywallsSurviveReopen(t *testing.T) {
	dbDir := t.TempDir()

	manager, err := NewRepoManager(dbDir, nil)
	require.NoError(t, err)

	id := newStoredPaywall(t, manager.PaywallRepository(), "owner")
	require.NoError(t, manager.Close())

	reopened, err := NewRepoManager(dbDir, nil)
	require.NoError(t, err)
	defer reopened.Close()

	stored, err := reopened.PaywallRepository().GetPaywall(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, id, stored.ID)

	// the id sequence must also survive: new ids keep increasing.
	next := newStoredPaywall(t, reopened.PaywallRepository(), "owner")
	require.Greater(t, next, id)
}
