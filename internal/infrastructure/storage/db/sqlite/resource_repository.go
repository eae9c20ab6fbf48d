package dbsqlite

import (
	"context"
	"errors"
	"time"

	"github.com/pillarwallet/walletd/internal/core/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type resourceRow struct {
	ResourceKey string `gorm:"primaryKey"`
	Value       []byte
	UpdatedAt   time.Time
}

func (resourceRow) TableName() string {
	return "resources"
}

type resourceRepository struct {
	db *gorm.DB
}

func newResourceRepository(db *gorm.DB) *resourceRepository {
	return &resourceRepository{db}
}

func (r *resourceRepository) GetResource(
	ctx context.Context, key domain.ResourceKey,
) (domain.ResourceRecord, error) {
	if !key.IsValid() {
		return nil, domain.ErrUnknownResource
	}

	var row resourceRow
	err := r.db.WithContext(ctx).
		Where("resource_key = ?", key.String()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ResourceRecord{}, nil
		}
		return nil, err
	}
	return domain.ResourceRecord(row.Value), nil
}

func (r *resourceRepository) SaveResource(
	ctx context.Context, key domain.ResourceKey, record domain.ResourceRecord,
) error {
	if !key.IsValid() {
		return domain.ErrUnknownResource
	}

	row := resourceRow{
		ResourceKey: key.String(),
		Value:       []byte(record),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
}
