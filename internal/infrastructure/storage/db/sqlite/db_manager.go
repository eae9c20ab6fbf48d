package dbsqlite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pillarwallet/walletd/internal/core/domain"
	"github.com/pillarwallet/walletd/internal/core/ports"
	dbaccount "github.com/pillarwallet/walletd/internal/infrastructure/storage/db/account"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const dbFile = "wallet.db"

// Every in-memory database gets its own name so that all the connections of
// the pool share it while separate managers stay isolated.
const inMemoryDsn = "file:%s?mode=memory&cache=shared"

type repoManager struct {
	db *gorm.DB

	accountRepository  domain.AccountRepository
	resourceRepository domain.ResourceRepository
}

// NewRepoManager opens, or creates if not existing, the sqlite database
// under baseDbDir. An empty dir opens an in-memory database.
func NewRepoManager(baseDbDir string) (ports.RepoManager, error) {
	dsn := fmt.Sprintf(inMemoryDsn, uuid.New().String())
	if len(baseDbDir) > 0 {
		if err := os.MkdirAll(baseDbDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
		dsn = filepath.Join(baseDbDir, dbFile)
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows a single writer at a time.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&resourceRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	resourceRepository := newResourceRepository(db)
	accountRepository := dbaccount.NewRepository(resourceRepository)

	return &repoManager{db, accountRepository, resourceRepository}, nil
}

func (r *repoManager) AccountRepository() domain.AccountRepository {
	return r.accountRepository
}

func (r *repoManager) ResourceRepository() domain.ResourceRepository {
	return r.resourceRepository
}

func (r *repoManager) Close() {
	sqlDB, err := r.db.DB()
	if err != nil {
		log.WithError(err).Warn("unable to close database")
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.WithError(err).Warn("unable to close database")
	}
}
