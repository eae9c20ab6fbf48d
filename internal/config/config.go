package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/pillarwallet/walletd/internal/core/application"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory to store the wallet state
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// MinConfirmationsKey is the number of confirmations after which an
	// unspent output counts towards the bitcoin balance
	MinConfirmationsKey = "MIN_CONFIRMATIONS"
	// WebhookEndpointKey is the url notified of every dispatched event
	WebhookEndpointKey = "WEBHOOK_ENDPOINT"
	// WebhookSecretKey is used to sign the token sent along with webhook
	// notifications
	WebhookSecretKey = "WEBHOOK_SECRET"
	// WebhookRateLimitKey is the max number of webhook requests per second
	WebhookRateLimitKey = "WEBHOOK_RATE_LIMIT"
	// WebhookRequestTimeoutKey is the timeout in seconds of webhook requests
	WebhookRequestTimeoutKey = "WEBHOOK_REQUEST_TIMEOUT"
	// MetricsEnabledKey enables dumping the collected metrics to the datadir
	MetricsEnabledKey = "METRICS_ENABLED"

	DbLocation      = "db"
	MetricsLocation = "stats"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("walletd", false)

// InitConfig loads the config from the environment. The given overrides,
// usually coming from command line flags, take precedence over env vars and
// are applied before validating the config and creating the datadir.
func InitConfig(overrides map[string]interface{}) error {
	vip = viper.New()
	vip.SetEnvPrefix("WALLETD")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DBTypeKey, application.DBBadger)
	vip.SetDefault(MinConfirmationsKey, 1)
	vip.SetDefault(WebhookRateLimitKey, 10)
	vip.SetDefault(WebhookRequestTimeoutKey, 15)
	vip.SetDefault(MetricsEnabledKey, false)

	for key, value := range overrides {
		vip.Set(key, value)
	}

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	log.SetLevel(log.Level(GetInt(LogLevelKey)))
	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetInt64(key string) int64 {
	return vip.GetInt64(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDbDir returns where the db files are stored. The in-memory db has no
// dir.
func GetDbDir() string {
	if GetString(DBTypeKey) == application.DBInMemory {
		return ""
	}
	return filepath.Join(GetDatadir(), DbLocation)
}

// GetMetricsDir returns where the collected metrics are dumped.
func GetMetricsDir() string {
	return filepath.Join(GetDatadir(), MetricsLocation)
}

// GetWebhookRequestTimeout returns the webhook request timeout.
func GetWebhookRequestTimeout() time.Duration {
	return time.Duration(GetInt(WebhookRequestTimeoutKey)) * time.Second
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	level := GetInt(LogLevelKey)
	if level < int(log.PanicLevel) || level > int(log.TraceLevel) {
		return fmt.Errorf("%s must be in range [%d, %d]", LogLevelKey, log.PanicLevel, log.TraceLevel)
	}

	dbType := GetString(DBTypeKey)
	if _, ok := application.SupportedDBType[dbType]; !ok {
		return fmt.Errorf("unsupported db type %s", dbType)
	}

	if GetInt64(MinConfirmationsKey) < 1 {
		return fmt.Errorf("%s must be at least 1", MinConfirmationsKey)
	}

	if GetInt(WebhookRateLimitKey) < 0 {
		return fmt.Errorf("%s must not be negative", WebhookRateLimitKey)
	}

	if GetInt(WebhookRequestTimeoutKey) <= 0 {
		return fmt.Errorf("%s must be greater than zero", WebhookRequestTimeoutKey)
	}

	if GetString(WebhookSecretKey) != "" && GetString(WebhookEndpointKey) == "" {
		return fmt.Errorf("%s requires %s to be set", WebhookSecretKey, WebhookEndpointKey)
	}

	return nil
}

func initDatadir() error {
	if dbDir := GetDbDir(); dbDir != "" {
		if err := makeDirectoryIfNotExists(dbDir); err != nil {
			return err
		}
	}

	if GetBool(MetricsEnabledKey) {
		if err := makeDirectoryIfNotExists(GetMetricsDir()); err != nil {
			return err
		}
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
