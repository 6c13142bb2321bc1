// Package converter implements the ports.CreditConverter against the
// external credit-conversion service's HTTP API.
package converter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"
	"github.com/tollgate-network/tollgate-daemon/internal/core/ports"
	"github.com/tollgate-network/tollgate-daemon/pkg/circuitbreaker"
	"github.com/tollgate-network/tollgate-daemon/pkg/httputil"
)

type service struct {
	apiURL string
	// accountOwner is the converter's ledger identity, under which every
	// conversion subaccount lives.
	accountOwner string
	breaker      *gobreaker.CircuitBreaker
}

// NewService returns a new converter client as a ports.CreditConverter
// interface.
func NewService(apiURL, accountOwner string) (ports.CreditConverter, error) {
	svc := &service{
		apiURL:       apiURL,
		accountOwner: accountOwner,
		breaker:      circuitbreaker.NewCircuitBreaker("converter"),
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

func (s *service) AccountOwner() string {
	return s.accountOwner
}

type notifyRequest struct {
	BlockIndex uint64 `json:"blockIndex"`
}

type notifyResponse struct {
	Credits uint64 `json:"credits"`
}

type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Code    int64  `json:"code"`
	Reason  string `json:"reason"`
}

func (s *service) NotifyConversion(
	ctx context.Context, blockIndex uint64,
) (uint64, error) {
	body, err := json.Marshal(notifyRequest{BlockIndex: blockIndex})
	if err != nil {
		return 0, err
	}

	url := fmt.Sprintf("%s/v1/conversions/notify", s.apiURL)
	ires, err := s.breaker.Execute(func() (interface{}, error) {
		status, resp, err := httputil.NewHTTPRequest(
			ctx, http.MethodPost, url, string(body), nil,
		)
		if err != nil {
			return nil, err
		}
		return []interface{}{status, resp}, nil
	})
	if err != nil {
		return 0, err
	}

	pair := ires.([]interface{})
	status, resp := pair[0].(int), pair[1].(string)
	if status != http.StatusOK {
		return 0, decodeError(resp)
	}

	var out notifyResponse
	if err := json.Unmarshal([]byte(resp), &out); err != nil {
		return 0, fmt.Errorf("decoding conversion response: %w", err)
	}
	return out.Credits, nil
}

func decodeError(body string) error {
	var out errorResponse
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return &ports.ConverterError{Code: -1, Message: body}
	}

	switch out.Kind {
	case "refunded":
		return &ports.ConversionRefundedError{Reason: out.Reason}
	case "invalid-transaction":
		return ports.ErrConversionInvalidTransaction
	case "processing":
		return ports.ErrConversionProcessing
	case "too-old":
		return ports.ErrConversionTooOld
	default:
		return &ports.ConverterError{Code: out.Code, Message: out.Message}
	}
}
