package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/oy-619/teamrecall/internal/domain/document"
)

func TestScheduleSearchFansOutBattery(t *testing.T) {
	backend := &mockBackend{def: searchResult{
		docs:   plainDocs("[ノート] 11月2日 大会 集合9:00"),
		scores: []float64{0.3},
	}}
	svc := newTestService(backend)

	got := svc.ScheduleSearch(context.Background(), "今後の予定を教えてください", DefaultScheduleOptions())
	if len(got) == 0 {
		t.Fatal("expected results")
	}

	h := DefaultHeuristics()
	wantCalls := 1 + len(h.GenericExpansions) + len(h.NoteExpansions) + len(h.TargetEvents)
	if len(backend.calls) != wantCalls {
		t.Errorf("expected %d expansion calls, got %d", wantCalls, len(backend.calls))
	}
	if !backend.queried("東京都大会 秋季大会") {
		t.Error("expected the generic expansion battery to be issued")
	}
	for _, c := range backend.calls {
		if c.query == "羽村ライオンズ" && c.k != 10 {
			t.Errorf("expected target search k=10, got %d", c.k)
		}
	}
}

func TestScheduleSearchTargetSearchKeepsOnlyNotes(t *testing.T) {
	backend := &mockBackend{
		results: map[string]searchResult{
			"羽村ライオンズ": {
				docs:   plainDocs("羽村ライオンズとの練習試合は11月2日"),
				scores: []float64{0.2},
			},
		},
	}
	svc := newTestService(backend)

	got := svc.ScheduleSearch(context.Background(), "今後の予定を教えてください", DefaultScheduleOptions())
	for _, d := range got {
		if d.Content() == "羽村ライオンズとの練習試合は11月2日" {
			t.Fatal("non-note hit from a target search must be dropped")
		}
	}
}

func TestScheduleSearchNoteBoostOutranksChat(t *testing.T) {
	backend := &mockBackend{def: searchResult{
		docs: plainDocs(
			"11月2日に大会があります",
			"[ノート] 11月2日 大会 集合9:00 柴又野球場",
		),
		scores: []float64{0.4, 0.5},
	}}
	svc := newTestService(backend)

	got := svc.ScheduleSearch(context.Background(), "今後の予定を教えてください", DefaultScheduleOptions())
	if len(got) == 0 {
		t.Fatal("expected results")
	}
	// 0.5*0.7 = 0.35 < 0.4, and the note preference fills slots notes-first.
	if !strings.Contains(got[0].Content(), "[ノート]") {
		t.Errorf("expected the note first, got %q", got[0].Content())
	}
}

func TestScheduleSearchFutureFilterFallback(t *testing.T) {
	// Every candidate is past: dates behind the reference and past-tense
	// phrasing. The future filter empties the pool and must fall back.
	backend := &mockBackend{def: searchResult{
		docs: plainDocs(
			"10月1日の練習は終わりまして解散しました",
			"9月の大会の写真です",
		),
		scores: []float64{0.2, 0.3},
	}}
	svc := newTestService(backend)

	got := svc.ScheduleSearch(context.Background(), "今後の予定を教えてください", DefaultScheduleOptions())
	if len(got) == 0 {
		t.Fatal("expected unfiltered fallback, not an empty result")
	}

	snap := svc.Stats().Snapshot()
	if snap.FilterFallbacks == 0 {
		t.Error("expected the fallback to be recorded")
	}
}

func TestScheduleSearchFutureCueForcesFiltering(t *testing.T) {
	backend := &mockBackend{def: searchResult{
		docs: plainDocs(
			"[ノート] 11月2日 大会 集合9:00",
			"10月10日の練習は雨で中止でした",
		),
		scores: []float64{0.3, 0.2},
	}}
	svc := newTestService(backend)

	// FutureOnly off, but 今後 in the query forces it back on.
	got := svc.ScheduleSearch(context.Background(), "今後の予定を教えてください",
		ScheduleOptions{K: 5, ScoreThreshold: 0.7, FutureOnly: false})

	for _, d := range got {
		if strings.Contains(d.Content(), "中止でした") {
			t.Fatal("past candidate survived forced future-only filtering")
		}
	}
	if len(got) == 0 {
		t.Fatal("expected the future note to survive")
	}
}

func TestScheduleSearchStaleAttendanceKeptWhenFuture(t *testing.T) {
	// An old attendance message still counts when its text names an
	// upcoming date; the wording alone must not disqualify it.
	backend := &mockBackend{def: searchResult{
		docs: []document.Document{
			doc("大会に参加予定です 11月2日", "", "E5/06/01(日) 10:00"),
			doc("[ノート] 11月9日 大会 集合9:00", "", "E7/10/20(月) 09:00"),
		},
		scores: []float64{0.2, 0.3},
	}}
	svc := newTestService(backend)

	got := svc.ScheduleSearch(context.Background(), "今後の予定を教えてください", DefaultScheduleOptions())
	found := false
	for _, d := range got {
		if strings.Contains(d.Content(), "参加予定です") {
			found = true
		}
	}
	if !found {
		t.Fatalf("stale attendance message naming a future date was filtered out, got %d docs", len(got))
	}
}

func TestScheduleSearchStaleAttendanceWithoutDateDropped(t *testing.T) {
	// Without a future date in the text, old attendance chatter is filtered
	// like any other past message.
	backend := &mockBackend{def: searchResult{
		docs: []document.Document{
			doc("先週の大会に参加して楽しかったです", "", "E5/06/01(日) 10:00"),
			doc("[ノート] 11月9日 大会 集合9:00", "", "E7/10/20(月) 09:00"),
		},
		scores: []float64{0.2, 0.3},
	}}
	svc := newTestService(backend)

	got := svc.ScheduleSearch(context.Background(), "今後の予定を教えてください", DefaultScheduleOptions())
	if len(got) == 0 {
		t.Fatal("expected the future note to survive")
	}
	for _, d := range got {
		if strings.Contains(d.Content(), "楽しかった") {
			t.Fatal("past attendance message survived future-only filtering")
		}
	}
}

func TestScheduleSearchNotePreferenceFillsSlots(t *testing.T) {
	backend := &mockBackend{def: searchResult{
		docs: plainDocs(
			"[ノート] 11月2日 大会",
			"[ノート] 11月9日 練習試合",
			"[ノート] 11月16日 リーグ戦",
			"11月2日に大会があります",
			"11月9日は試合です",
		),
		scores: []float64{0.1, 0.2, 0.3, 0.05, 0.06},
	}}
	svc := newTestService(backend)

	got := svc.ScheduleSearch(context.Background(), "今後の予定を教えてください", DefaultScheduleOptions())
	// Three notes cover at least half of k=5, so chat is left out entirely.
	if len(got) != 3 {
		t.Fatalf("expected the 3 notes alone, got %d docs", len(got))
	}
	for _, d := range got {
		if !strings.Contains(d.Content(), "[ノート]") {
			t.Errorf("expected only notes, got %q", d.Content())
		}
	}
}

func TestScheduleSearchExpansionFailureIsolated(t *testing.T) {
	backend := &mockBackend{
		def: searchResult{
			docs:   plainDocs("[ノート] 11月2日 大会 集合9:00"),
			scores: []float64{0.3},
		},
		errFor: map[string]error{
			"東京都大会 秋季大会": errors.New("backend unavailable"),
		},
	}
	svc := newTestService(backend)

	got := svc.ScheduleSearch(context.Background(), "今後の予定を教えてください", DefaultScheduleOptions())
	if len(got) == 0 {
		t.Fatal("one failing expansion must not abort the batch")
	}

	snap := svc.Stats().Snapshot()
	if snap.ExpansionFailures != 1 {
		t.Errorf("expected 1 recorded expansion failure, got %d", snap.ExpansionFailures)
	}
}

func TestScheduleSearchEmptyQuery(t *testing.T) {
	backend := &mockBackend{}
	svc := newTestService(backend)

	got := svc.ScheduleSearch(context.Background(), "   ", DefaultScheduleOptions())
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
	if len(backend.calls) != 0 {
		t.Fatal("backend should not be called for empty query")
	}
}

func TestScheduleSearchPlainFallback(t *testing.T) {
	backend := &mockBackend{def: searchResult{
		docs:   plainDocs("昨日の試合は勝ちました"),
		scores: []float64{0.3},
	}}
	svc := newTestService(backend)

	got := svc.ScheduleSearch(context.Background(), "昨日の試合の結果", DefaultScheduleOptions())
	if len(got) != 1 {
		t.Fatalf("expected plain-recipe result, got %d", len(got))
	}
	// Plain recipe over-fetches k*3 in a single query.
	if len(backend.calls) != 1 || backend.calls[0].k != 15 {
		t.Errorf("expected one over-fetched call, got %+v", backend.calls)
	}
}
