// Package ledger implements the ports.LedgerService against the external
// ledger's HTTP API. Error kinds are decoded from the response body into the
// typed errors of the ports package so the application layer never sees raw
// HTTP details.
package ledger

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"
	"github.com/tollgate-network/tollgate-daemon/internal/core/ports"
	"github.com/tollgate-network/tollgate-daemon/pkg/circuitbreaker"
	"github.com/tollgate-network/tollgate-daemon/pkg/httputil"
)

type service struct {
	apiURL  string
	breaker *gobreaker.CircuitBreaker
}

// NewService returns a new ledger client as a ports.LedgerService interface.
func NewService(apiURL string) (ports.LedgerService, error) {
	svc := &service{
		apiURL:  apiURL,
		breaker: circuitbreaker.NewCircuitBreaker("ledger"),
	}

	if err := svc.healthCheck(); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}

	return svc, nil
}

func (s *service) healthCheck() error {
	url := fmt.Sprintf("%s/v1/status", s.apiURL)
	status, resp, err := httputil.NewHTTPRequest(
		context.Background(), http.MethodGet, url, "", nil,
	)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf(resp)
	}
	return nil
}

type balanceResponse struct {
	Balance uint64 `json:"balance"`
}

type transferRequest struct {
	FromSubaccount string `json:"fromSubaccount"`
	ToOwner        string `json:"toOwner"`
	ToSubaccount   string `json:"toSubaccount,omitempty"`
	Amount         uint64 `json:"amount"`
	Fee            uint64 `json:"fee"`
	Memo           uint64 `json:"memo"`
}

type legacyTransferRequest struct {
	FromSubaccount string `json:"fromSubaccount"`
	ToAddress      string `json:"toAddress"`
	Amount         uint64 `json:"amount"`
	Memo           uint64 `json:"memo"`
}

type transferResponse struct {
	BlockIndex uint64 `json:"blockIndex"`
}

// errorResponse is the ledger's failure shape; Kind selects which typed
// error the extra fields belong to.
type errorResponse struct {
	Kind        string `json:"kind"`
	Message     string `json:"message"`
	Code        int64  `json:"code"`
	ExpectedFee uint64 `json:"expectedFee"`
	BlockIndex  uint64 `json:"blockIndex"`
}

func (s *service) BalanceOf(
	ctx context.Context, account ports.Account,
) (uint64, error) {
	url := fmt.Sprintf("%s/v1/accounts/%s/balance", s.apiURL, account.Owner)
	if len(account.Subaccount) > 0 {
		url = fmt.Sprintf(
			"%s?subaccount=%s", url, hex.EncodeToString(account.Subaccount),
		)
	}

	status, resp, err := s.do(ctx, http.MethodGet, url, "")
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, decodeError(resp)
	}

	var out balanceResponse
	if err := json.Unmarshal([]byte(resp), &out); err != nil {
		return 0, fmt.Errorf("decoding balance: %w", err)
	}
	return out.Balance, nil
}

func (s *service) Transfer(
	ctx context.Context,
	fromSubaccount []byte, to ports.Account, amount, fee, memo uint64,
) (uint64, error) {
	body, err := json.Marshal(transferRequest{
		FromSubaccount: hex.EncodeToString(fromSubaccount),
		ToOwner:        to.Owner,
		ToSubaccount:   hex.EncodeToString(to.Subaccount),
		Amount:         amount,
		Fee:            fee,
		Memo:           memo,
	})
	if err != nil {
		return 0, err
	}

	url := fmt.Sprintf("%s/v1/transfers", s.apiURL)
	return s.submit(ctx, url, string(body))
}

func (s *service) TransferLegacy(
	ctx context.Context,
	fromSubaccount []byte, toAddress string, amount, memo uint64,
) (uint64, error) {
	body, err := json.Marshal(legacyTransferRequest{
		FromSubaccount: hex.EncodeToString(fromSubaccount),
		ToAddress:      toAddress,
		Amount:         amount,
		Memo:           memo,
	})
	if err != nil {
		return 0, err
	}

	url := fmt.Sprintf("%s/v1/transfers/legacy", s.apiURL)
	return s.submit(ctx, url, string(body))
}

func (s *service) submit(ctx context.Context, url, body string) (uint64, error) {
	status, resp, err := s.do(ctx, http.MethodPost, url, body)
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, decodeError(resp)
	}

	var out transferResponse
	if err := json.Unmarshal([]byte(resp), &out); err != nil {
		return 0, fmt.Errorf("decoding transfer response: %w", err)
	}
	return out.BlockIndex, nil
}

// do runs the request through the breaker. Only transport failures count
// against it; business errors come back as regular responses.
func (s *service) do(
	ctx context.Context, method, url, body string,
) (int, string, error) {
	type httpResponse struct {
		status int
		body   string
	}

	ires, err := s.breaker.Execute(func() (interface{}, error) {
		status, resp, err := httputil.NewHTTPRequest(ctx, method, url, body, nil)
		if err != nil {
			return nil, err
		}
		return httpResponse{status, resp}, nil
	})
	if err != nil {
		return 0, "", err
	}

	resp := ires.(httpResponse)
	return resp.status, resp.body, nil
}

func decodeError(body string) error {
	var out errorResponse
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return &ports.LedgerError{Code: -1, Message: body}
	}

	switch out.Kind {
	case "insufficient-funds":
		return ports.ErrLedgerInsufficientFunds
	case "bad-fee":
		return &ports.BadFeeError{ExpectedFee: out.ExpectedFee}
	case "duplicate":
		return &ports.DuplicateTransferError{BlockIndex: out.BlockIndex}
	case "created-in-future":
		return ports.ErrLedgerTxCreatedInFuture
	case "unavailable":
		return ports.ErrLedgerUnavailable
	default:
		return &ports.LedgerError{Code: out.Code, Message: out.Message}
	}
}
