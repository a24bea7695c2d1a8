package repositories

import (
	"database/sql"
	"reflect"
	"strings"
	"testing"

	"github.com/desertthunder/ytag/internal/models"
	"github.com/desertthunder/ytag/internal/shared"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func sampleReport() *models.Report {
	return &models.Report{
		ChannelTitle: "Test Channel",
		VideoCount:   3,
		TagCount:     2,
		Tags: []models.TagCount{
			{Tag: "cats", Count: 2, VideoIDs: []string{"v1", "v2"}},
			{Tag: "funny", Count: 1, VideoIDs: []string{"v1"}},
		},
	}
}

func TestReportRepositoryCreateAndGet(t *testing.T) {
	repo := NewReportRepository(newTestDB(t))

	report := sampleReport()
	if err := repo.Create(report); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if report.ID == "" {
		t.Error("expected generated ID")
	}
	if report.Sequence != 1 {
		t.Errorf("expected sequence 1, got %d", report.Sequence)
	}
	if report.CreatedAt.IsZero() {
		t.Error("expected creation time to be set")
	}

	loaded, err := repo.Get(report.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if loaded.ChannelTitle != "Test Channel" || loaded.VideoCount != 3 {
		t.Errorf("unexpected report: %+v", loaded)
	}
	if !reflect.DeepEqual(loaded.Tags, report.Tags) {
		t.Errorf("tags do not round trip: %+v vs %+v", loaded.Tags, report.Tags)
	}
}

func TestReportRepositoryGetBySequence(t *testing.T) {
	repo := NewReportRepository(newTestDB(t))

	first := sampleReport()
	if err := repo.Create(first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second := sampleReport()
	second.ChannelTitle = "Other Channel"
	if err := repo.Create(second); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	loaded, err := repo.GetBySequence(2)
	if err != nil {
		t.Fatalf("GetBySequence failed: %v", err)
	}
	if loaded.ChannelTitle != "Other Channel" {
		t.Errorf("unexpected report: %+v", loaded)
	}

	if _, err := repo.GetBySequence(99); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestReportRepositoryList(t *testing.T) {
	repo := NewReportRepository(newTestDB(t))

	for i := 0; i < 3; i++ {
		if err := repo.Create(sampleReport()); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	reports, err := repo.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}
	// Newest first
	if reports[0].Sequence != 3 || reports[2].Sequence != 1 {
		t.Errorf("unexpected ordering: %d, %d, %d", reports[0].Sequence, reports[1].Sequence, reports[2].Sequence)
	}
	// Summaries carry no tag rows
	if len(reports[0].Tags) != 0 {
		t.Errorf("expected summaries without tags, got %+v", reports[0].Tags)
	}
}

func TestReportRepositoryDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewReportRepository(db)

	report := sampleReport()
	if err := repo.Create(report); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.Delete(report.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := repo.Get(report.ID); err == nil {
		t.Error("expected error for deleted report")
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM report_tags").Scan(&count); err != nil {
		t.Fatalf("failed to count tags: %v", err)
	}
	if count != 0 {
		t.Errorf("expected tag rows to be deleted, found %d", count)
	}

	if err := repo.Delete(report.ID); err == nil {
		t.Error("expected error when deleting a missing report")
	}
}

func TestNextSequence(t *testing.T) {
	db := newTestDB(t)

	for want := int64(1); want <= 3; want++ {
		got, err := NextSequence(db, "reports")
		if err != nil {
			t.Fatalf("NextSequence failed: %v", err)
		}
		if got != want {
			t.Errorf("expected sequence %d, got %d", want, got)
		}
	}

	// Independent counters per name
	got, err := NextSequence(db, "other")
	if err != nil {
		t.Fatalf("NextSequence failed: %v", err)
	}
	if got != 1 {
		t.Errorf("expected fresh counter to start at 1, got %d", got)
	}
}
