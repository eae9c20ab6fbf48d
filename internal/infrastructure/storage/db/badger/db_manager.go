package dbbadger

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	"github.com/pillarwallet/walletd/internal/core/domain"
	"github.com/pillarwallet/walletd/internal/core/ports"
	dbaccount "github.com/pillarwallet/walletd/internal/infrastructure/storage/db/account"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
)

const (
	walletDir = "wallet"

	valueLogGCInterval     = 30 * time.Minute
	valueLogGCDiscardRatio = 0.5
)

type repoManager struct {
	store     *badgerhold.Store
	quit      chan struct{}
	closeOnce sync.Once

	accountRepository  domain.AccountRepository
	resourceRepository domain.ResourceRepository
}

// NewRepoManager opens, or creates if not existing, the badger store under
// baseDbDir. An empty dir opens an in-memory store.
func NewRepoManager(
	baseDbDir string, logger badger.Logger,
) (ports.RepoManager, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, walletDir)
	}

	quit := make(chan struct{})
	store, err := createDb(dbDir, logger, quit)
	if err != nil {
		return nil, fmt.Errorf("opening wallet db: %w", err)
	}

	resourceRepository := newResourceRepository(store)
	accountRepository := dbaccount.NewRepository(resourceRepository)

	return &repoManager{
		store:              store,
		quit:               quit,
		accountRepository:  accountRepository,
		resourceRepository: resourceRepository,
	}, nil
}

func (r *repoManager) AccountRepository() domain.AccountRepository {
	return r.accountRepository
}

func (r *repoManager) ResourceRepository() domain.ResourceRepository {
	return r.resourceRepository
}

func (r *repoManager) Close() {
	r.closeOnce.Do(func() {
		close(r.quit)
		if err := r.store.Close(); err != nil {
			log.WithError(err).Warn("unable to close database")
		}
	})
}

func createDb(
	dbDir string, logger badger.Logger, quit chan struct{},
) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(valueLogGCInterval)

		go func() {
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if err := db.Badger().RunValueLogGC(valueLogGCDiscardRatio); err != nil &&
						err != badger.ErrNoRewrite {
						log.Error(err)
					}
				case <-quit:
					return
				}
			}
		}()
	}

	return db, nil
}
