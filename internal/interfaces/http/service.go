// Package httpinterface exposes the daemon's operations over a JSON HTTP
// API. The caller's identity arrives as the trusted X-Identity header;
// authenticating it is the identity collaborator's job, not the daemon's.
package httpinterface

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/tollgate-network/tollgate-daemon/internal/core/application"
	"github.com/tollgate-network/tollgate-daemon/internal/core/domain"
	"github.com/tollgate-network/tollgate-daemon/internal/interfaces"
)

const (
	identityHeader  = "X-Identity"
	shutdownTimeout = 10 * time.Second
)

type service struct {
	port   int
	router *gin.Engine
	server *http.Server

	paywallSvc application.PaywallService
	paymentSvc application.PaymentService
	accessSvc  application.AccessService
}

// NewService returns the HTTP interface of the daemon.
func NewService(
	port int,
	paywallSvc application.PaywallService,
	paymentSvc application.PaymentService,
	accessSvc application.AccessService,
) interfaces.Service {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	svc := &service{
		port:       port,
		router:     router,
		paywallSvc: paywallSvc,
		paymentSvc: paymentSvc,
		accessSvc:  accessSvc,
	}
	svc.routes()

	return svc
}

func (s *service) routes() {
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/v1", identityMiddleware())
	v1.POST("/paywalls", s.createPaywall)
	v1.GET("/paywalls", s.listPaywalls)
	v1.GET("/paywalls/:id", s.fetchPaywall)
	v1.PATCH("/paywalls/:id", s.updatePaywall)
	v1.DELETE("/paywalls/:id", s.deletePaywall)
	v1.GET("/paywalls/:id/address", s.depositAddress)
	v1.GET("/wallet/address", s.walletAddress)
	v1.POST("/paywalls/:id/pay", s.pay)
	v1.GET("/paywalls/:id/access", s.access)
	v1.POST("/paywalls/:id/suspicious", s.suspicious)
}

func (s *service) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.router,
	}

	log.Infof("http interface is listening on :%d", s.port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("http interface did not shut down cleanly")
	}
	log.Debug("http interface stopped")
}

// identityMiddleware rejects any call without an identity attached.
func identityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := c.GetHeader(identityHeader)
		if identity == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing identity",
			})
			return
		}
		c.Set("identity", domain.Identity(identity))
		c.Next()
	}
}

func callerIdentity(c *gin.Context) domain.Identity {
	return c.MustGet("identity").(domain.Identity)
}
