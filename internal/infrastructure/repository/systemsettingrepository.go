package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"issuedesk/internal/domain/setting"
	"issuedesk/internal/infrastructure/persistence/mappers"
	"issuedesk/internal/infrastructure/persistence/models"
	"issuedesk/internal/shared/db"
	"issuedesk/internal/shared/logger"
)

// upsertColumns are rewritten when a (category, setting_key) pair exists.
var upsertColumns = []string{"value", "value_type", "description", "updated_by", "updated_at"}

// SystemSettingRepository stores runtime-tunable settings such as the SLA
// thresholds. Reads and writes join the ambient transaction when present.
type SystemSettingRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSystemSettingRepository(gormDB *gorm.DB, log logger.Interface) *SystemSettingRepository {
	return &SystemSettingRepository{db: gormDB, logger: log}
}

// GetByKey returns setting.ErrSettingNotFound when the pair is absent.
func (r *SystemSettingRepository) GetByKey(ctx context.Context, category, key string) (*setting.SystemSetting, error) {
	var model models.SystemSettingModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("category = ? AND setting_key = ?", category, key).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, setting.ErrSettingNotFound
		}
		r.logger.Errorw("failed to get setting by key", "category", category, "key", key, "error", err)
		return nil, fmt.Errorf("failed to get setting by key: %w", err)
	}

	return mappers.SystemSettingToDomain(&model), nil
}

func (r *SystemSettingRepository) GetByCategory(ctx context.Context, category string) ([]*setting.SystemSetting, error) {
	var rows []*models.SystemSettingModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("category = ?", category).
		Order("setting_key ASC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to get settings by category", "category", category, "error", err)
		return nil, fmt.Errorf("failed to get settings by category: %w", err)
	}

	return mappers.SystemSettingsToDomain(rows), nil
}

func (r *SystemSettingRepository) Upsert(ctx context.Context, s *setting.SystemSetting) error {
	model := mappers.SystemSettingToModel(s)

	err := db.GetTxFromContext(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}, {Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert setting", "category", s.Category(), "key", s.Key(), "error", err)
		return fmt.Errorf("failed to upsert setting: %w", err)
	}

	if s.ID() == 0 {
		s.SetID(model.ID)
	}

	return nil
}
