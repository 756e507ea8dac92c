package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/oy-619/teamrecall/internal/domain/document"
)

func TestAnalyticsSummarizesSample(t *testing.T) {
	backend := &mockBackend{def: searchResult{
		docs: []document.Document{
			doc("練習の連絡", "田中", "E7/10/20(月) 09:00"),
			doc("試合の連絡", "田中", "E6/05/11(日) 10:00"),
			doc("大会の連絡", "", ""),
		},
		scores: []float64{0.2, 0.5, 0.9},
	}}
	svc := newTestService(backend)

	report := svc.Analytics(context.Background(), "連絡")
	if report.TotalResults != 3 {
		t.Errorf("expected 3 results, got %d", report.TotalResults)
	}
	if report.ScoreRange.Min != 0.2 || report.ScoreRange.Max != 0.9 {
		t.Errorf("unexpected score range: %+v", report.ScoreRange)
	}
	if report.AuthorDistribution["田中"] != 2 || report.AuthorDistribution["unknown"] != 1 {
		t.Errorf("unexpected author distribution: %v", report.AuthorDistribution)
	}
	if report.EraDistribution["E7"] != 1 || report.EraDistribution["E6"] != 1 {
		t.Errorf("unexpected era distribution: %v", report.EraDistribution)
	}
	if backend.calls[0].k != analyticsSampleK {
		t.Errorf("expected sample k=%d, got %d", analyticsSampleK, backend.calls[0].k)
	}
}

func TestAnalyticsEmptyAndFailing(t *testing.T) {
	svc := newTestService(&mockBackend{})
	report := svc.Analytics(context.Background(), "")
	if report.TotalResults != 0 {
		t.Errorf("expected empty report for empty query")
	}

	svc = newTestService(&mockBackend{err: errors.New("down")})
	report = svc.Analytics(context.Background(), "連絡")
	if report.TotalResults != 0 || len(report.AuthorDistribution) != 0 {
		t.Errorf("expected empty report on backend error, got %+v", report)
	}
}

func TestStatsSnapshotAndReset(t *testing.T) {
	s := NewStats()
	s.recordSearch(IntentPlain)
	s.recordSearch(IntentSchedule)
	s.recordSearch(IntentSchedule)
	s.recordExpansionFailure()
	s.recordFilterFallback()

	snap := s.Snapshot()
	if snap.TotalSearches != 3 {
		t.Errorf("expected 3 searches, got %d", snap.TotalSearches)
	}
	if snap.ByIntent[IntentSchedule] != 2 {
		t.Errorf("expected 2 schedule searches, got %d", snap.ByIntent[IntentSchedule])
	}
	if snap.ExpansionFailures != 1 || snap.FilterFallbacks != 1 {
		t.Errorf("unexpected counters: %+v", snap)
	}

	s.Reset()
	snap = s.Snapshot()
	if snap.TotalSearches != 0 || len(snap.ByIntent) != 0 {
		t.Errorf("expected zeroed counters after reset, got %+v", snap)
	}
}
