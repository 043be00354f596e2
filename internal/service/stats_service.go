package service

import (
	"context"
	"learning_center_backend/internal/dto"
	"learning_center_backend/internal/model"
	"learning_center_backend/internal/repository"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/hashid"
	"learning_center_backend/pkg/logger"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	ExportPDF  = "pdf"
	ExportHTML = "html"

	defaultRetentionDays = 365
)

type StatsService struct {
	StatsRepo     *repository.StatsLogRepository
	Reports       *ReportService
	Codec         *hashid.Codec
	RetentionDays int
	Now           func() time.Time
}

func NewStatsService(statsRepo *repository.StatsLogRepository, reports *ReportService, codec *hashid.Codec, retentionDays int) *StatsService {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &StatsService{
		StatsRepo:     statsRepo,
		Reports:       reports,
		Codec:         codec,
		RetentionDays: retentionDays,
		Now:           time.Now,
	}
}

// StatsQuery carries the raw query string filters.
type StatsQuery struct {
	Login  string
	Method string
	IP     string
	From   string
	To     string
}

// parseTime accepts RFC3339 or a plain date. A plain "to" date covers the
// whole day.
func parseTime(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(util.DateFormat, value)
	if err != nil {
		return nil, util.NewBadRequest("Invalid date: " + value)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func (q StatsQuery) filter() (repository.StatsFilter, error) {
	f := repository.StatsFilter{
		Login:  strings.TrimSpace(q.Login),
		Method: strings.ToUpper(strings.TrimSpace(q.Method)),
		IP:     strings.TrimSpace(q.IP),
	}
	var err error
	if f.From, err = parseTime(q.From, false); err != nil {
		return f, err
	}
	f.To, err = parseTime(q.To, true)
	return f, err
}

func (s *StatsService) logs(q StatsQuery, p util.Pagination) ([]model.StatsLog, int64, error) {
	filter, err := q.filter()
	if err != nil {
		return nil, 0, err
	}
	return s.StatsRepo.List(filter, p.Offset(), p.Limit)
}

func (s *StatsService) List(q StatsQuery, p util.Pagination) ([]dto.StatsLogView, int64, error) {
	logs, total, err := s.logs(q, p)
	if err != nil {
		return nil, 0, err
	}
	return dto.ToStatsLogViews(logs, s.Codec), total, nil
}

// Export renders the requested page as a PDF or an HTML document.
func (s *StatsService) Export(format string, q StatsQuery, p util.Pagination) ([]byte, error) {
	logs, _, err := s.logs(q, p)
	if err != nil {
		return nil, err
	}
	switch format {
	case ExportPDF:
		return s.Reports.StatsPDF(logs)
	case ExportHTML:
		return s.Reports.StatsHTML(logs)
	}
	return nil, util.NewBadRequest(`export must be "pdf" or "html"`)
}

// Prune deletes rows older than the retention window.
func (s *StatsService) Prune() (int64, error) {
	cutoff := s.Now().AddDate(0, 0, -s.RetentionDays)
	return s.StatsRepo.DeleteBefore(cutoff)
}

// StartRetention prunes once and then on every tick until ctx is done.
func (s *StatsService) StartRetention(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			if n, err := s.Prune(); err != nil {
				logger.Log.Error("stats retention failed", zap.Error(err))
			} else if n > 0 {
				logger.Log.Info("stats retention pruned rows", zap.Int64("rows", n))
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}
