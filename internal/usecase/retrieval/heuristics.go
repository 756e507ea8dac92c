package retrieval

import "github.com/oy-619/teamrecall/internal/config"

// Heuristics is the corpus-specific vocabulary driving query expansion and
// signal detection. Every list is injectable through the retrieval config
// section; the defaults reflect the team corpus this engine was tuned on and
// should not be assumed to generalize.
type Heuristics struct {
	// NoteMarker flags a curated note entry versus ordinary chat text.
	NoteMarker string
	// Venues are the known ground names checked for literal mentions.
	Venues []string
	// TargetEvents are the named events fetched directly by the generic
	// schedule recipe.
	TargetEvents []string
	// TomorrowTargets are the named events fetched directly by the
	// tomorrow recipe.
	TomorrowTargets []string
	// TomorrowEventKeywords mark tournament wording worth a mild boost in
	// tomorrow results.
	TomorrowEventKeywords []string
	// TimeLiterals are the meeting times that appear verbatim in notes.
	TimeLiterals []string
	// GenericExpansions is the fixed fan-out battery of the generic
	// schedule recipe.
	GenericExpansions []string
	// NoteExpansions steer the generic schedule recipe toward notes.
	NoteExpansions []string
	// CompoundExpansions is the fixed battery of the venue+time recipe.
	CompoundExpansions []string
	// VenueExpansions and VenueNoteExpansions form the venue-only battery.
	VenueExpansions     []string
	VenueNoteExpansions []string
	// SmartNoteExpansions steer the relative-schedule recipe toward notes.
	SmartNoteExpansions []string
	// ActivityKeywords maps an activity type to its synonym set. The first
	// two entries of a detected set feed the date cross-product.
	ActivityKeywords map[string][]string
	// ActivityExpansions maps an activity type to extra fan-out queries.
	ActivityExpansions map[string][]string
}

// DefaultHeuristics returns the built-in corpus vocabulary.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		NoteMarker: "[ノート]",
		Venues: []string{
			"葛飾区柴又野球場", "柴又野球場", "北蒲広場", "池雪小", "馬三小",
			"S&Dスポーツパーク", "冨士見公園",
		},
		TargetEvents: []string{"羽村ライオンズ", "大森リーグ若草ジュニア杯"},
		TomorrowTargets: []string{
			"第52回東京都小学生男子ソフトボール秋季大会", "葛西臨海公園", "秋季大会 羽村",
		},
		TomorrowEventKeywords: []string{"東京都", "大会", "秋季", "ソフトボール"},
		TimeLiterals:          []string{"9:00", "8:30", "11:30", "13:30"},
		GenericExpansions: []string{
			"10月 11月 大会 予定",
			"東京都大会 秋季大会",
			"練習試合 大会 スケジュール",
			"羽村 練習試合 予定",
			"大森リーグ 若草 ジュニア杯",
			"ライオンズ 練習試合",
			"若草杯 大森",
		},
		NoteExpansions: []string{"ノート 予定 大会", "ノート 練習 試合"},
		CompoundExpansions: []string{
			"集合場所 集合時間 開始時間",
			"会場 住所 時間 @",
			"@ 集合 開始 練習",
			"ノート 集合 時間 場所",
			"練習 試合 集合場所 時間",
		},
		VenueExpansions: []string{
			"集合場所 会場",
			"@ 住所 アクセス",
			"集合時間 開始時間",
			"車移動 電車",
			"北側集合 南側集合",
			"駐車場 最寄り駅",
		},
		VenueNoteExpansions: []string{"ノート 会場", "ノート 集合", "ノート 場所"},
		SmartNoteExpansions: []string{"ノート 予定", "ノート 入力期限", "ノート 調整さん"},
		ActivityKeywords: map[string][]string{
			"practice":   {"練習", "トレーニング", "@馬三小", "@池雪小"},
			"game":       {"試合", "対戦", "vs", "大会"},
			"tournament": {"大会", "トーナメント", "杯", "カップ", "選手権"},
			"meeting":    {"会議", "ミーティング", "打ち合わせ", "表敬訪問"},
		},
		ActivityExpansions: map[string][]string{
			"practice":   {"練習 @", "馬三小 池雪小", "中庭 ラバー"},
			"game":       {"vs 対戦", "練習試合", "リーグ戦"},
			"tournament": {"東京都大会", "秋季大会", "羽村ウィンター", "若草ジュニア"},
		},
	}
}

// HeuristicsFromConfig overlays the config-exposed vocabulary onto the
// defaults. Empty config fields keep the built-in values.
func HeuristicsFromConfig(cfg config.RetrievalConfig) Heuristics {
	h := DefaultHeuristics()
	if cfg.NoteMarker != "" {
		h.NoteMarker = cfg.NoteMarker
	}
	if len(cfg.Venues) > 0 {
		h.Venues = cfg.Venues
	}
	if len(cfg.TargetEvents) > 0 {
		h.TargetEvents = cfg.TargetEvents
	}
	if len(cfg.TomorrowTargets) > 0 {
		h.TomorrowTargets = cfg.TomorrowTargets
	}
	if len(cfg.TomorrowEventKeywords) > 0 {
		h.TomorrowEventKeywords = cfg.TomorrowEventKeywords
	}
	if len(cfg.TimeLiterals) > 0 {
		h.TimeLiterals = cfg.TimeLiterals
	}
	if len(cfg.GenericExpansions) > 0 {
		h.GenericExpansions = cfg.GenericExpansions
	}
	if len(cfg.NoteExpansions) > 0 {
		h.NoteExpansions = cfg.NoteExpansions
	}
	if len(cfg.CompoundExpansions) > 0 {
		h.CompoundExpansions = cfg.CompoundExpansions
	}
	if len(cfg.VenueExpansions) > 0 {
		h.VenueExpansions = cfg.VenueExpansions
	}
	if len(cfg.VenueNoteExpansions) > 0 {
		h.VenueNoteExpansions = cfg.VenueNoteExpansions
	}
	if len(cfg.SmartNoteExpansions) > 0 {
		h.SmartNoteExpansions = cfg.SmartNoteExpansions
	}
	if len(cfg.ActivityKeywords) > 0 {
		h.ActivityKeywords = cfg.ActivityKeywords
	}
	if len(cfg.ActivityExpansions) > 0 {
		h.ActivityExpansions = cfg.ActivityExpansions
	}
	return h
}

func (h Heuristics) isNote(content string) bool {
	return h.NoteMarker != "" && containsAny(content, []string{h.NoteMarker})
}

func (h Heuristics) mentionsVenue(content string) bool {
	return containsAny(content, h.Venues)
}
