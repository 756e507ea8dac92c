package retrieval

import (
	"reflect"
	"testing"

	"github.com/oy-619/teamrecall/internal/config"
)

func TestHeuristicsFromConfigEmptyKeepsDefaults(t *testing.T) {
	got := HeuristicsFromConfig(config.RetrievalConfig{})
	if !reflect.DeepEqual(got, DefaultHeuristics()) {
		t.Fatal("empty config should leave every built-in value untouched")
	}
}

func TestHeuristicsFromConfigOverlaysEveryField(t *testing.T) {
	cfg := config.RetrievalConfig{
		NoteMarker:            "[メモ]",
		Venues:                []string{"河川敷グラウンド"},
		TargetEvents:          []string{"春季リーグ"},
		TomorrowTargets:       []string{"春季大会"},
		TomorrowEventKeywords: []string{"春季"},
		TimeLiterals:          []string{"10:00"},
		GenericExpansions:     []string{"予定 試合"},
		NoteExpansions:        []string{"メモ 予定"},
		CompoundExpansions:    []string{"集合 時間"},
		VenueExpansions:       []string{"会場 場所"},
		VenueNoteExpansions:   []string{"メモ 会場"},
		SmartNoteExpansions:   []string{"メモ 次回"},
		ActivityKeywords:      map[string][]string{"practice": {"練習"}},
		ActivityExpansions:    map[string][]string{"practice": {"練習 次回"}},
	}

	h := HeuristicsFromConfig(cfg)

	if h.NoteMarker != "[メモ]" {
		t.Errorf("NoteMarker = %q, want [メモ]", h.NoteMarker)
	}
	lists := map[string][2][]string{
		"Venues":                {h.Venues, cfg.Venues},
		"TargetEvents":          {h.TargetEvents, cfg.TargetEvents},
		"TomorrowTargets":       {h.TomorrowTargets, cfg.TomorrowTargets},
		"TomorrowEventKeywords": {h.TomorrowEventKeywords, cfg.TomorrowEventKeywords},
		"TimeLiterals":          {h.TimeLiterals, cfg.TimeLiterals},
		"GenericExpansions":     {h.GenericExpansions, cfg.GenericExpansions},
		"NoteExpansions":        {h.NoteExpansions, cfg.NoteExpansions},
		"CompoundExpansions":    {h.CompoundExpansions, cfg.CompoundExpansions},
		"VenueExpansions":       {h.VenueExpansions, cfg.VenueExpansions},
		"VenueNoteExpansions":   {h.VenueNoteExpansions, cfg.VenueNoteExpansions},
		"SmartNoteExpansions":   {h.SmartNoteExpansions, cfg.SmartNoteExpansions},
	}
	for name, pair := range lists {
		if !reflect.DeepEqual(pair[0], pair[1]) {
			t.Errorf("%s = %v, want %v", name, pair[0], pair[1])
		}
	}
	if !reflect.DeepEqual(h.ActivityKeywords, cfg.ActivityKeywords) {
		t.Errorf("ActivityKeywords = %v, want %v", h.ActivityKeywords, cfg.ActivityKeywords)
	}
	if !reflect.DeepEqual(h.ActivityExpansions, cfg.ActivityExpansions) {
		t.Errorf("ActivityExpansions = %v, want %v", h.ActivityExpansions, cfg.ActivityExpansions)
	}
}

func TestHeuristicsFromConfigPartialOverlay(t *testing.T) {
	h := HeuristicsFromConfig(config.RetrievalConfig{Venues: []string{"河川敷グラウンド"}})

	if !reflect.DeepEqual(h.Venues, []string{"河川敷グラウンド"}) {
		t.Errorf("Venues = %v, want the configured list", h.Venues)
	}
	def := DefaultHeuristics()
	if !reflect.DeepEqual(h.ActivityKeywords, def.ActivityKeywords) {
		t.Error("ActivityKeywords should keep the built-in set when unconfigured")
	}
	if h.NoteMarker != def.NoteMarker {
		t.Errorf("NoteMarker = %q, want default %q", h.NoteMarker, def.NoteMarker)
	}
}
