package service

import (
	"bytes"
	"testing"
	"time"

	"learning_center_backend/internal/model"
	"learning_center_backend/internal/repository"
	"learning_center_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatsService(t *testing.T, now time.Time) *StatsService {
	t.Helper()
	repo := repository.NewStatsLogRepository(openTestDB(t))
	svc := NewStatsService(repo, NewReportService(""), testCodec(), 30)
	svc.Now = func() time.Time { return now }

	rows := []model.StatsLog{
		{IP: "1.1.1.1", Method: "POST", URL: "/api/auth/login", Login: "ana", Status: model.StatsSuccess, CreatedAt: now.Add(-time.Hour)},
		{IP: "2.2.2.2", Method: "GET", URL: "/api/lesson", Login: "dan", Status: model.StatsSuccess, CreatedAt: now.AddDate(0, 0, -2)},
		{IP: "1.1.1.1", Method: "POST", URL: "/api/auth/login", Status: model.StatsFailed, AttemptedLogin: "ana", CreatedAt: now.AddDate(0, 0, -45)},
	}
	for i := range rows {
		require.NoError(t, repo.Create(&rows[i]))
	}
	return svc
}

func TestStatsFilters(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	svc := newStatsService(t, now)
	page := util.Pagination{Page: 1, Limit: 10}

	logs, total, err := svc.List(StatsQuery{Method: "post"}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "ana", logs[0].Login, "newest first")

	_, total, err = svc.List(StatsQuery{From: "2024-06-08", To: "2024-06-08"}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, _, err = svc.List(StatsQuery{From: "yesterday"}, page)
	assert.True(t, util.IsKind(err, util.KindBadRequest))
}

func TestStatsPruneKeepsRetentionWindow(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	svc := newStatsService(t, now)

	n, err := svc.Prune()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, total, err := svc.List(StatsQuery{}, util.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestStatsExport(t *testing.T) {
	svc := newStatsService(t, time.Now())
	page := util.Pagination{Page: 1, Limit: 10}

	pdf, err := svc.Export(ExportPDF, StatsQuery{}, page)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	html, err := svc.Export(ExportHTML, StatsQuery{}, page)
	require.NoError(t, err)
	assert.Contains(t, string(html), "/api/auth/login")

	_, err = svc.Export("csv", StatsQuery{}, page)
	assert.True(t, util.IsKind(err, util.KindBadRequest))
}
