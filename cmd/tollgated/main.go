package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/tollgate-network/tollgate-daemon/config"
	"github.com/tollgate-network/tollgate-daemon/internal/core/application"
	dbbadger "github.com/tollgate-network/tollgate-daemon/internal/infrastructure/storage/db/badger"
	httpinterface "github.com/tollgate-network/tollgate-daemon/internal/interfaces/http"
)

func main() {
	// a missing .env is fine, the environment wins anyway.
	godotenv.Load()

	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
	repoManager, err := dbbadger.NewRepoManager(dbDir, log.New())
	if err != nil {
		log.WithError(err).Panic("error while opening db")
	}
	defer repoManager.Close()

	ledgerSvc, err := config.GetLedger()
	if err != nil {
		log.WithError(err).Panic("error while connecting to ledger")
	}
	converterSvc, err := config.GetConverter()
	if err != nil {
		log.WithError(err).Panic("error while connecting to converter")
	}

	paywallSvc := application.NewPaywallService(
		repoManager.PaywallRepository(),
		repoManager.AccessRepository(),
		repoManager.VaultRepository(),
		config.GetString(config.OwnerAddressKey),
	)
	paymentSvc := application.NewPaymentService(
		repoManager.PaywallRepository(),
		repoManager.AccessRepository(),
		repoManager.VaultRepository(),
		ledgerSvc,
		converterSvc,
		config.GetString(config.OwnerAddressKey),
		config.GetString(config.FeeCollectorAddressKey),
		config.GetUint64(config.MinFeeKey),
		config.GetUint64(config.LedgerTransferFeeKey),
	)
	accessSvc := application.NewAccessService(
		repoManager.AccessRepository(),
		config.GetFloat(config.SuspiciousLogRateKey),
	)

	httpSvc := httpinterface.NewService(
		config.GetInt(config.HTTPListeningPortKey),
		paywallSvc, paymentSvc, accessSvc,
	)

	log.Debug("starting daemon")

	var group errgroup.Group
	group.Go(httpSvc.Start)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	httpSvc.Stop()
	if err := group.Wait(); err != nil {
		log.WithError(err).Error("http interface exited with error")
	}

	log.Debug("exiting")
}
