package httpinterface

import (
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tollgate-network/tollgate-daemon/internal/core/application"
	"github.com/tollgate-network/tollgate-daemon/internal/core/domain"
)

type createPaywallRequest struct {
	Price uint64 `json:"price" binding:"required"`
	// SessionDurationSeconds is how long one payment grants access for.
	SessionDurationSeconds uint64               `json:"sessionDurationSeconds" binding:"required"`
	Destinations           []domain.Destination `json:"destinations" binding:"required"`
	Title                  string               `json:"title"`
	Description            string               `json:"description"`
	ResourceURL            string               `json:"resourceUrl"`
}

type updatePaywallRequest struct {
	Price                  *uint64              `json:"price"`
	SessionDurationSeconds *uint64              `json:"sessionDurationSeconds"`
	Destinations           []domain.Destination `json:"destinations"`
	Title                  *string              `json:"title"`
	Description            *string              `json:"description"`
	ResourceURL            *string              `json:"resourceUrl"`
}

type payRequest struct {
	Source string `json:"source" binding:"required"`
}

type suspiciousRequest struct {
	Details string `json:"details" binding:"required"`
}

type paywallResponse struct {
	ID                     uint64               `json:"id"`
	Owner                  domain.Identity      `json:"owner"`
	Price                  uint64               `json:"price"`
	SessionDurationSeconds uint64               `json:"sessionDurationSeconds"`
	Destinations           []domain.Destination `json:"destinations"`
	Title                  string               `json:"title"`
	Description            string               `json:"description"`
	ResourceURL            string               `json:"resourceUrl"`
	UsageCount             uint64               `json:"usageCount"`
	CreatedAt              time.Time            `json:"createdAt"`
}

type addressResponse struct {
	Owner      string `json:"owner"`
	Subaccount string `json:"subaccount"`
}

type settlementResponse struct {
	Destination domain.Destination `json:"destination"`
	Amount      uint64             `json:"amount"`
	BlockIndex  uint64             `json:"blockIndex"`
	Converted   bool               `json:"converted"`
	Credits     uint64             `json:"credits,omitempty"`
}

type receiptResponse struct {
	AttemptID   string               `json:"attemptId"`
	PaywallID   uint64               `json:"paywallId"`
	Payer       domain.Identity      `json:"payer"`
	Fee         uint64               `json:"fee"`
	Net         uint64               `json:"net"`
	Settlements []settlementResponse `json:"settlements"`
	ExpiresAt   time.Time            `json:"expiresAt"`
}

type accessResponse struct {
	HasAccess bool  `json:"hasAccess"`
	ExpiresAt int64 `json:"expiresAt,omitempty"`
}

func toPaywallResponse(p *domain.Paywall) paywallResponse {
	return paywallResponse{
		ID:                     p.ID,
		Owner:                  p.Owner,
		Price:                  p.Price,
		SessionDurationSeconds: uint64(p.SessionDuration / time.Second),
		Destinations:           p.Destinations,
		Title:                  p.Title,
		Description:            p.Description,
		ResourceURL:            p.ResourceURL,
		UsageCount:             p.UsageCount,
		CreatedAt:              p.CreatedAt,
	}
}

func toReceiptResponse(r *application.PaymentReceipt) receiptResponse {
	settlements := make([]settlementResponse, 0, len(r.Settlements))
	for _, s := range r.Settlements {
		settlements = append(settlements, settlementResponse{
			Destination: s.Destination,
			Amount:      s.Amount,
			BlockIndex:  s.BlockIndex,
			Converted:   s.Converted,
			Credits:     s.Credits,
		})
	}
	return receiptResponse{
		AttemptID:   r.AttemptID,
		PaywallID:   r.PaywallID,
		Payer:       r.Payer,
		Fee:         r.Fee,
		Net:         r.Net,
		Settlements: settlements,
		ExpiresAt:   r.ExpiresAt,
	}
}

func (s *service) createPaywall(c *gin.Context) {
	var req createPaywallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	paywall, err := domain.NewPaywall(
		callerIdentity(c), req.Price,
		time.Duration(req.SessionDurationSeconds)*time.Second,
		req.Destinations, req.Title, req.Description, req.ResourceURL,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := s.paywallSvc.CreatePaywall(c.Request.Context(), paywall)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *service) listPaywalls(c *gin.Context) {
	paywalls, err := s.paywallSvc.ListPaywalls(c.Request.Context(), callerIdentity(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	out := make([]paywallResponse, 0, len(paywalls))
	for i := range paywalls {
		out = append(out, toPaywallResponse(&paywalls[i]))
	}
	c.JSON(http.StatusOK, gin.H{"paywalls": out})
}

func (s *service) fetchPaywall(c *gin.Context) {
	id, ok := paywallID(c)
	if !ok {
		return
	}

	paywall, err := s.paywallSvc.FetchPaywall(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaywallResponse(paywall))
}

func (s *service) updatePaywall(c *gin.Context) {
	id, ok := paywallID(c)
	if !ok {
		return
	}

	var req updatePaywallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := domain.PaywallUpdate{
		Price:        req.Price,
		Destinations: req.Destinations,
		Title:        req.Title,
		Description:  req.Description,
		ResourceURL:  req.ResourceURL,
	}
	if req.SessionDurationSeconds != nil {
		duration := time.Duration(*req.SessionDurationSeconds) * time.Second
		update.SessionDuration = &duration
	}

	if err := s.paywallSvc.UpdatePaywall(
		c.Request.Context(), callerIdentity(c), id, update,
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *service) deletePaywall(c *gin.Context) {
	id, ok := paywallID(c)
	if !ok {
		return
	}

	if err := s.paywallSvc.DeletePaywall(
		c.Request.Context(), callerIdentity(c), id,
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *service) depositAddress(c *gin.Context) {
	id, ok := paywallID(c)
	if !ok {
		return
	}

	account, err := s.paywallSvc.DepositAddress(
		c.Request.Context(), callerIdentity(c), id,
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, addressResponse{
		Owner:      account.Owner,
		Subaccount: hex.EncodeToString(account.Subaccount),
	})
}

func (s *service) walletAddress(c *gin.Context) {
	account, err := s.paywallSvc.WalletAddress(c.Request.Context(), callerIdentity(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, addressResponse{
		Owner:      account.Owner,
		Subaccount: hex.EncodeToString(account.Subaccount),
	})
}

func (s *service) pay(c *gin.Context) {
	id, ok := paywallID(c)
	if !ok {
		return
	}

	var req payRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var receipt *application.PaymentReceipt
	var err error
	switch application.PaymentSource(req.Source) {
	case application.SourceDeposit:
		receipt, err = s.paymentSvc.PayFromDeposit(c.Request.Context(), callerIdentity(c), id)
	case application.SourceWallet:
		receipt, err = s.paymentSvc.PayFromWallet(c.Request.Context(), callerIdentity(c), id)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": application.ErrUnknownPaymentSource.Error(),
		})
		return
	}
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toReceiptResponse(receipt))
}

func (s *service) access(c *gin.Context) {
	id, ok := paywallID(c)
	if !ok {
		return
	}

	expiry, err := s.accessSvc.AccessExpiry(c.Request.Context(), callerIdentity(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	out := accessResponse{}
	if expiry != nil {
		out.HasAccess = expiry.After(time.Now())
		out.ExpiresAt = expiry.UnixNano()
	}
	c.JSON(http.StatusOK, out)
}

func (s *service) suspicious(c *gin.Context) {
	id, ok := paywallID(c)
	if !ok {
		return
	}

	var req suspiciousRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.accessSvc.LogSuspiciousActivity(id, req.Details)
	c.Status(http.StatusAccepted)
}

func paywallID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paywall id"})
		return 0, false
	}
	return id, true
}

// abortWithError maps domain and application errors onto HTTP statuses. The
// insufficient-balance and incomplete-conversion cases carry their structured
// details so clients can react without parsing messages.
func abortWithError(c *gin.Context, err error) {
	var insufficient *application.InsufficientBalanceError
	var incomplete *application.ConversionIncompleteError

	switch {
	case errors.Is(err, domain.ErrPaywallNotFound),
		errors.Is(err, domain.ErrAccessNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":     err.Error(),
			"required":  insufficient.Required,
			"available": insufficient.Available,
		})
	case errors.As(err, &incomplete):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":      err.Error(),
			"blockIndex": incomplete.BlockIndex,
		})
	case errors.Is(err, application.ErrPriceBelowFee),
		errors.Is(err, domain.ErrPaywallInvalidDestinations),
		errors.Is(err, domain.ErrPaywallInvalidPercentages),
		errors.Is(err, domain.ErrPaywallInvalidOwner),
		errors.Is(err, domain.ErrDestinationMissingIdentity),
		errors.Is(err, domain.ErrDestinationInvalidLegacyAddress),
		errors.Is(err, domain.ErrDestinationLegacyConversion),
		errors.Is(err, domain.ErrDestinationInvalidPercentage),
		errors.Is(err, domain.ErrDestinationUnknownKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
