package repository

import (
	"strings"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=scribe dbname=scribe sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return db
}

func TestPage_ClampsLimits(t *testing.T) {
	db := dryRunDB(t)

	tests := []struct {
		filter entities.HistoryFilter
		want   string
	}{
		{entities.HistoryFilter{}, "LIMIT 20"},
		{entities.HistoryFilter{Limit: 500}, "LIMIT 100"},
		{entities.HistoryFilter{Limit: 5, Offset: 10}, "LIMIT 5 OFFSET 10"},
	}
	for _, tt := range tests {
		sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			var records []entities.SummaryRecord
			return page(tx, tt.filter).Order("created_at DESC").Find(&records)
		})
		if !strings.Contains(sql, `FROM "summary_records"`) || !strings.Contains(sql, "ORDER BY created_at DESC") {
			t.Fatalf("unexpected query: %s", sql)
		}
		if !strings.Contains(sql, tt.want) {
			t.Errorf("filter %+v: query %q does not contain %q", tt.filter, sql, tt.want)
		}
	}
}
