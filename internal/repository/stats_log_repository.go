package repository

import (
	"learning_center_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type StatsLogRepository struct {
	DB *gorm.DB
}

func NewStatsLogRepository(db *gorm.DB) *StatsLogRepository {
	return &StatsLogRepository{DB: db}
}

type StatsFilter struct {
	Login  string
	Method string
	IP     string
	From   *time.Time
	To     *time.Time
}

func (r *StatsLogRepository) Create(entry *model.StatsLog) error {
	return r.DB.Create(entry).Error
}

// CountSince counts rows for attemptedLogin with one of statuses created at
// or after since.
func (r *StatsLogRepository) CountSince(attemptedLogin string, statuses []string, since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.StatsLog{}).
		Where("attempted_login = ?", attemptedLogin).
		Where("status IN ?", statuses).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *StatsLogRepository) List(filter StatsFilter, offset, limit int) ([]model.StatsLog, int64, error) {
	var logs []model.StatsLog
	var total int64

	query := r.DB.Model(&model.StatsLog{})
	if filter.Login != "" {
		query = query.Where("login = ?", filter.Login)
	}
	if filter.Method != "" {
		query = query.Where("method = ?", filter.Method)
	}
	if filter.IP != "" {
		query = query.Where("ip = ?", filter.IP)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at desc").Scopes(paginate(offset, limit)).Find(&logs).Error
	return logs, total, err
}

// DeleteBefore prunes rows older than cutoff and returns how many went away.
func (r *StatsLogRepository) DeleteBefore(cutoff time.Time) (int64, error) {
	res := r.DB.Where("created_at < ?", cutoff).Delete(&model.StatsLog{})
	return res.RowsAffected, res.Error
}
