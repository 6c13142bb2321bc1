package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tollgate-network/tollgate-daemon/internal/core/ports"
	"github.com/tollgate-network/tollgate-daemon/internal/infrastructure/converter"
	"github.com/tollgate-network/tollgate-daemon/internal/infrastructure/ledger"
)

const (
	// HTTPListeningPortKey is the port where the HTTP interface will listen on
	HTTPListeningPortKey = "HTTP_LISTENING_PORT"
	// DatadirKey is the local data directory to store the internal state of daemon
	DatadirKey = "DATA_DIR_PATH"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// LedgerEndpointKey is the endpoint where the ledger's REST API is listening
	LedgerEndpointKey = "LEDGER_ENDPOINT"
	// ConverterEndpointKey is the endpoint where the credit converter's REST API is listening
	ConverterEndpointKey = "CONVERTER_ENDPOINT"
	// ConverterAccountKey is the converter's ledger identity that receives funds to convert
	ConverterAccountKey = "CONVERTER_ACCOUNT"
	// OwnerAddressKey is the ledger identity under which the daemon's deposit slots live
	OwnerAddressKey = "OWNER_ADDRESS"
	// FeeCollectorAddressKey is the ledger identity that collects the platform fee
	FeeCollectorAddressKey = "FEE_COLLECTOR_ADDRESS"
	// MinFeeKey is the floor of the platform fee in base units
	MinFeeKey = "MIN_FEE"
	// LedgerTransferFeeKey is the flat per-transfer fee charged by the ledger
	LedgerTransferFeeKey = "LEDGER_TRANSFER_FEE"
	// SuspiciousLogRateKey is the number of suspicious-activity reports logged per second
	SuspiciousLogRateKey = "SUSPICIOUS_LOG_RATE"

	DbLocation = "db"
)

var vip *viper.Viper

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("TOLLGATE")
	vip.AutomaticEnv()

	vip.SetDefault(HTTPListeningPortKey, 9945)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(LedgerEndpointKey, "http://localhost:8080")
	vip.SetDefault(ConverterEndpointKey, "http://localhost:8081")
	vip.SetDefault(ConverterAccountKey, "svc:converter")
	vip.SetDefault(OwnerAddressKey, "tollgate-daemon")
	vip.SetDefault(FeeCollectorAddressKey, "tollgate-fees")
	vip.SetDefault(MinFeeKey, 100_000)
	vip.SetDefault(LedgerTransferFeeKey, 10_000)
	vip.SetDefault(SuspiciousLogRateKey, 1.0)
	vip.SetDefault(DatadirKey, defaultDatadir())

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetUint64 ...
func GetUint64(key string) uint64 {
	return vip.GetUint64(key)
}

//GetFloat ...
func GetFloat(key string) float64 {
	return vip.GetFloat64(key)
}

//GetDuration ...
func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

//GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

//GetLedger ...
func GetLedger() (ports.LedgerService, error) {
	return ledger.NewService(GetString(LedgerEndpointKey))
}

//GetConverter ...
func GetConverter() (ports.CreditConverter, error) {
	return converter.NewService(
		GetString(ConverterEndpointKey), GetString(ConverterAccountKey),
	)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the give key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

func defaultDatadir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tollgated"
	}
	return filepath.Join(home, ".tollgated")
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	for _, key := range []string{LedgerEndpointKey, ConverterEndpointKey} {
		endpoint := GetString(key)
		if _, err := url.Parse(endpoint); err != nil {
			return fmt.Errorf("%s is not a valid url: %s", key, err)
		}
	}

	for _, key := range []string{
		ConverterAccountKey, OwnerAddressKey, FeeCollectorAddressKey,
	} {
		if GetString(key) == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}

	if GetFloat(SuspiciousLogRateKey) <= 0 {
		return fmt.Errorf("suspicious log rate must be positive")
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	return makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
