package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	paymentsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tollgate_payments_total",
		Help: "Payment attempts by outcome.",
	}, []string{"outcome"})

	settlementsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tollgate_settlements_total",
		Help: "Settled destination legs by kind.",
	}, []string{"kind"})

	suspiciousCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tollgate_suspicious_reports_total",
		Help: "Suspicious activity reports accepted by the sink.",
	})
)

const (
	outcomeOk                   = "ok"
	outcomeConfigError          = "config_error"
	outcomeInsufficientBalance  = "insufficient_balance"
	outcomeLedgerError          = "ledger_error"
	outcomeConversionIncomplete = "conversion_incomplete"

	settlementDirect    = "direct"
	settlementLegacy    = "legacy"
	settlementConverted = "converted"
)
