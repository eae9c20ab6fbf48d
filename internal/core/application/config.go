package application

import (
	log "github.com/sirupsen/logrus"

	"github.com/pillarwallet/walletd/internal/core/ports"
	dbbadger "github.com/pillarwallet/walletd/internal/infrastructure/storage/db/badger"
	"github.com/pillarwallet/walletd/internal/infrastructure/storage/db/inmemory"
	dbsqlite "github.com/pillarwallet/walletd/internal/infrastructure/storage/db/sqlite"
)

const (
	DBBadger   = "badger"
	DBSqlite   = "sqlite"
	DBInMemory = "inmemory"
)

var (
	SupportedDBType = map[string]struct{}{
		DBBadger:   {},
		DBSqlite:   {},
		DBInMemory: {},
	}
)

type Config struct {
	DBType   string
	DBConfig interface{}

	EventSink        ports.EventSink
	SmartWallet      ports.SmartWalletProvider
	AssetsRefresher  ports.AssetsRefresher
	MinConfirmations int64

	repo    ports.RepoManager
	account AccountService
	bitcoin BitcoinService
}

func (c *Config) Validate() error {
	if c.EventSink == nil {
		return ErrMissingEventSink
	}
	if _, err := c.repoManager(); err != nil {
		return err
	}
	return nil
}

func (c *Config) RepoManager() ports.RepoManager {
	svc, _ := c.repoManager()
	return svc
}

func (c *Config) AccountService() AccountService {
	svc, _ := c.accountService()
	return svc
}

func (c *Config) BitcoinService() BitcoinService {
	svc, _ := c.bitcoinService()
	return svc
}

func (c *Config) repoManager() (ports.RepoManager, error) {
	if c.repo == nil {
		datadir, _ := c.DBConfig.(string)

		switch c.DBType {
		case DBBadger:
			repoManager, err := dbbadger.NewRepoManager(datadir, log.New())
			if err != nil {
				return nil, err
			}
			c.repo = repoManager
		case DBSqlite:
			repoManager, err := dbsqlite.NewRepoManager(datadir)
			if err != nil {
				return nil, err
			}
			c.repo = repoManager
		case DBInMemory:
			c.repo = inmemory.NewRepoManager()
		default:
			return nil, ErrUnsupportedDbType
		}
	}
	return c.repo, nil
}

func (c *Config) accountService() (AccountService, error) {
	if c.account == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		account, err := NewAccountService(
			repo, c.EventSink, c.SmartWallet, c.AssetsRefresher,
		)
		if err != nil {
			return nil, err
		}
		c.account = account
	}
	return c.account, nil
}

func (c *Config) bitcoinService() (BitcoinService, error) {
	if c.bitcoin == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		bitcoin, err := NewBitcoinService(repo, c.EventSink, c.MinConfirmations)
		if err != nil {
			return nil, err
		}
		c.bitcoin = bitcoin
	}
	return c.bitcoin, nil
}
