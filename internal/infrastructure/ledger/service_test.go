package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tollgate-network/tollgate-daemon/internal/core/ports"
)

type fakeLedger struct {
	// per-path canned responses; default is 200 on /v1/status.
	handlers map[string]http.HandlerFunc
}

func (f *fakeLedger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/v1/status" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if h, ok := f.handlers[r.URL.Path]; ok {
		h(w, r)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func newFakeLedger(t *testing.T, handlers map[string]http.HandlerFunc) ports.LedgerService {
	t.Helper()

	server := httptest.NewServer(&fakeLedger{handlers: handlers})
	t.Cleanup(server.Close)

	svc, err := NewService(server.URL)
	require.NoError(t, err)
	return svc
}

func respondJSON(status int, body interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

func TestNewServiceFailsWhenUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	_, err := NewService(server.URL)
	require.Error(t, err)
}

func TestBalanceOf(t *testing.T) {
	var gotQuery string
	svc := newFakeLedger(t, map[string]http.HandlerFunc{
		"/v1/accounts/alice/balance": func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			respondJSON(http.StatusOK, map[string]uint64{"balance": 42})(w, r)
		},
	})

	balance, err := svc.BalanceOf(context.Background(), ports.Account{
		Owner:      "alice",
		Subaccount: []byte{0xab, 0xcd},
	})
	require.NoError(t, err)
	require.Equal(t, uint64(42), balance)
	require.Equal(t, "subaccount=abcd", gotQuery)
}

func TestTransfer(t *testing.T) {
	var gotBody map[string]interface{}
	svc := newFakeLedger(t, map[string]http.HandlerFunc{
		"/v1/transfers": func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			respondJSON(http.StatusOK, map[string]uint64{"blockIndex": 55})(w, r)
		},
	})

	blockIndex, err := svc.Transfer(
		context.Background(),
		[]byte{0x01}, ports.Account{Owner: "bob"}, 1000, 10, ports.MemoMint,
	)
	require.NoError(t, err)
	require.Equal(t, uint64(55), blockIndex)
	require.Equal(t, "01", gotBody["fromSubaccount"])
	require.Equal(t, "bob", gotBody["toOwner"])
	require.Equal(t, float64(1000), gotBody["amount"])
	require.Equal(t, float64(10), gotBody["fee"])
}

func TestTransferLegacy(t *testing.T) {
	var gotBody map[string]interface{}
	svc := newFakeLedger(t, map[string]http.HandlerFunc{
		"/v1/transfers/legacy": func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			respondJSON(http.StatusOK, map[string]uint64{"blockIndex": 7})(w, r)
		},
	})

	blockIndex, err := svc.TransferLegacy(
		context.Background(), []byte{0x01}, "deadbeef", 1000, 0,
	)
	require.NoError(t, err)
	require.Equal(t, uint64(7), blockIndex)
	require.Equal(t, "deadbeef", gotBody["toAddress"])
}

func TestTransferErrorKinds(t *testing.T) {
	tests := []struct {
		name  string
		body  interface{}
		check func(t *testing.T, err error)
	}{
		{
			name: "insufficient funds",
			body: map[string]string{"kind": "insufficient-funds"},
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ports.ErrLedgerInsufficientFunds)
			},
		},
		{
			name: "bad fee",
			body: map[string]interface{}{"kind": "bad-fee", "expectedFee": 10},
			check: func(t *testing.T, err error) {
				var badFee *ports.BadFeeError
				require.ErrorAs(t, err, &badFee)
				require.Equal(t, uint64(10), badFee.ExpectedFee)
			},
		},
		{
			name: "duplicate",
			body: map[string]interface{}{"kind": "duplicate", "blockIndex": 3},
			check: func(t *testing.T, err error) {
				var dup *ports.DuplicateTransferError
				require.ErrorAs(t, err, &dup)
				require.Equal(t, uint64(3), dup.BlockIndex)
			},
		},
		{
			name: "created in future",
			body: map[string]string{"kind": "created-in-future"},
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ports.ErrLedgerTxCreatedInFuture)
			},
		},
		{
			name: "unavailable",
			body: map[string]string{"kind": "unavailable"},
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ports.ErrLedgerUnavailable)
			},
		},
		{
			name: "unknown kind",
			body: map[string]interface{}{"kind": "weird", "code": 99, "message": "boom"},
			check: func(t *testing.T, err error) {
				var lerr *ports.LedgerError
				require.ErrorAs(t, err, &lerr)
				require.Equal(t, int64(99), lerr.Code)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc := newFakeLedger(t, map[string]http.HandlerFunc{
				"/v1/transfers": respondJSON(http.StatusBadRequest, tt.body),
			})

			_, err := svc.Transfer(
				context.Background(),
				[]byte{0x01}, ports.Account{Owner: "bob"}, 1000, 10, ports.MemoMint,
			)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestTransferNonJSONError(t *testing.T) {
	svc := newFakeLedger(t, map[string]http.HandlerFunc{
		"/v1/transfers": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("internal error"))
		},
	})

	_, err := svc.Transfer(
		context.Background(),
		[]byte{0x01}, ports.Account{Owner: "bob"}, 1000, 10, ports.MemoMint,
	)
	var lerr *ports.LedgerError
	require.True(t, errors.As(err, &lerr))
	require.Contains(t, lerr.Message, "internal error")
}
