package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pillarwallet/walletd/internal/config"
	"github.com/pillarwallet/walletd/internal/core/application"
	"github.com/pillarwallet/walletd/internal/core/domain"
	"github.com/pillarwallet/walletd/internal/core/ports"
	"github.com/pillarwallet/walletd/internal/infrastructure/pubsub"
	"github.com/pillarwallet/walletd/internal/infrastructure/smartwallet"
	"github.com/pillarwallet/walletd/pkg/stats"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	app = &cobra.Command{
		Use:               "walletd-migrate",
		Short:             "wallet accounts migration tool",
		Long:              "this tool migrates the legacy wallet state to the accounts format and manages the account roster",
		Version:           formatVersion(),
		PersistentPreRunE: setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	datadirFlag string
	dbTypeFlag  string

	// set up by setup() for the subcommands.
	appConfig *application.Config
	eventBus  ports.EventBus
	registry  *prometheus.Registry
)

func init() {
	app.PersistentFlags().StringVar(&datadirFlag, "datadir", "", "the data directory, overrides WALLETD_DATADIR")
	app.PersistentFlags().StringVar(&dbTypeFlag, "db-type", "", "the db type (badger, sqlite or inmemory), overrides WALLETD_DB_TYPE")

	app.AddCommand(
		initCmd, addAccountCmd, activateCmd, switchCmd, initSmartWalletCmd,
		accountsCmd, btcBalanceCmd, btcImportCmd,
	)
}

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	err := app.ExecuteContext(ctx)
	teardown()
	if err != nil {
		log.Fatal(err)
	}
}

func setup(_ *cobra.Command, _ []string) error {
	overrides := make(map[string]interface{})
	if datadirFlag != "" {
		overrides[config.DatadirKey] = datadirFlag
	}
	if dbTypeFlag != "" {
		overrides[config.DBTypeKey] = dbTypeFlag
	}
	if err := config.InitConfig(overrides); err != nil {
		return err
	}

	registry = prometheus.NewRegistry()
	bus, err := pubsub.NewService(pubsub.Config{
		WebhookRequestTimeout: config.GetWebhookRequestTimeout(),
		WebhookRateLimit:      config.GetInt(config.WebhookRateLimitKey),
		Registerer:            registry,
	})
	if err != nil {
		return err
	}
	eventBus = bus

	eventBus.AddHandler(ports.AnyTopic, logEvent)
	if endpoint := config.GetString(config.WebhookEndpointKey); endpoint != "" {
		if _, err := eventBus.Subscribe(
			ports.AnyTopic, endpoint, config.GetString(config.WebhookSecretKey),
		); err != nil {
			return fmt.Errorf("invalid webhook: %w", err)
		}
	}

	appConfig = &application.Config{
		DBType:           config.GetString(config.DBTypeKey),
		DBConfig:         config.GetDbDir(),
		EventSink:        eventBus,
		MinConfirmations: config.GetInt64(config.MinConfirmationsKey),
	}
	if err := appConfig.Validate(); err != nil {
		return err
	}

	smartWallet, err := smartwallet.NewService(
		appConfig.RepoManager().ResourceRepository(),
	)
	if err != nil {
		return err
	}
	appConfig.SmartWallet = smartWallet

	log.Debugf(
		"using %s db in %s", appConfig.DBType, config.GetDatadir(),
	)
	return nil
}

func teardown() {
	if registry != nil && config.GetBool(config.MetricsEnabledKey) {
		path, err := stats.DumpMetrics(registry, config.GetMetricsDir())
		if err != nil {
			log.WithError(err).Warn("failed to dump metrics")
		} else {
			log.Debugf("metrics dumped to %s", path)
		}
		stats.PrintMemoryStatistics()
	}
	if eventBus != nil {
		eventBus.Close()
	}
	if appConfig != nil && appConfig.RepoManager() != nil {
		appConfig.RepoManager().Close()
	}
	registry, eventBus, appConfig = nil, nil, nil
}

func logEvent(_ context.Context, event domain.Event) error {
	log.WithField("id", event.ID).Debugf("dispatched %s", event.Type)
	return nil
}

func formatVersion() string {
	return fmt.Sprintf(
		"Version: %s\nCommit: %s\nDate: %s",
		version, commit, date,
	)
}
