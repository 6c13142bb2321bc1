package subkey_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tollgate-network/tollgate-daemon/pkg/subkey"
)

func TestDeriveIsDeterministic(t *testing.T) {
	t.Parallel()

	salt, err := subkey.NewSalt()
	require.NoError(t, err)
	require.Len(t, salt, subkey.Size)

	identity := []byte("alice")
	first := subkey.Derive(salt, subkey.PaywallPurpose(7), identity)
	second := subkey.Derive(salt, subkey.PaywallPurpose(7), identity)
	require.Equal(t, first, second)
}

func TestDerivePurposeSeparation(t *testing.T) {
	t.Parallel()

	salt, err := subkey.NewSalt()
	require.NoError(t, err)

	identities := [][]byte{
		[]byte("alice"),
		[]byte("bob"),
		[]byte(""),
		{0x00, 0x01, 0x02},
	}

	for _, identity := range identities {
		wallet := subkey.Derive(salt, subkey.WalletPurpose(), identity)
		for _, id := range []uint64{0, 1, 42, 1 << 40} {
			paywall := subkey.Derive(salt, subkey.PaywallPurpose(id), identity)
			require.NotEqual(t, wallet, paywall)
		}
	}
}

func TestDeriveChangesWithSalt(t *testing.T) {
	t.Parallel()

	saltA, err := subkey.NewSalt()
	require.NoError(t, err)
	saltB, err := subkey.NewSalt()
	require.NoError(t, err)
	require.NotEqual(t, saltA, saltB)

	identity := []byte("alice")
	require.NotEqual(
		t,
		subkey.Derive(saltA, subkey.WalletPurpose(), identity),
		subkey.Derive(saltB, subkey.WalletPurpose(), identity),
	)
}

func TestConversionSubaccount(t *testing.T) {
	t.Parallel()

	sub := subkey.ConversionSubaccount([]byte("svc:compute-hub"))
	require.Equal(t, byte(15), sub[0])
	require.Equal(t, []byte("svc:compute-hub"), sub[1:16])
	for _, b := range sub[16:] {
		require.Zero(t, b)
	}

	// identities longer than 31 bytes are truncated, not rejected.
	long := make([]byte, 64)
	for i := range long {
		long[i] = byte(i)
	}
	sub = subkey.ConversionSubaccount(long)
	require.Equal(t, byte(31), sub[0])
	require.Equal(t, long[:31], sub[1:])
}
