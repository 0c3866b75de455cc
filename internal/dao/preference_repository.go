package dao

import (
	"context"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/internal/model"
	"github.com/haierkeys/portfolio-dash/pkg/logger"
	"github.com/haierkeys/portfolio-dash/pkg/timex"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// preferenceRepository 实现 domain.PreferenceRepository 接口
type preferenceRepository struct {
	dao *Dao
}

// NewPreferenceRepository 创建 PreferenceRepository 实例
func NewPreferenceRepository(dao *Dao) domain.PreferenceRepository {
	return &preferenceRepository{dao: dao}
}

func (r *preferenceRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var m model.Preference
	err := r.dao.db.WithContext(ctx).Where("pref_key = ?", key).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "get preference %s", key)
	}
	return m.Value, true, nil
}

func (r *preferenceRepository) Set(ctx context.Context, key, value string) error {
	m := model.Preference{Key: key, Value: value, UpdatedAt: timex.Now()}
	err := r.dao.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pref_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return errors.Wrapf(err, "set preference %s", key)
	}
	r.dao.logger.Debug("preference saved", zap.String(logger.FieldAction, "set"), zap.String("key", key))
	return nil
}

func (r *preferenceRepository) Delete(ctx context.Context, key string) error {
	err := r.dao.db.WithContext(ctx).Where("pref_key = ?", key).Delete(&model.Preference{}).Error
	if err != nil {
		return errors.Wrapf(err, "delete preference %s", key)
	}
	return nil
}
