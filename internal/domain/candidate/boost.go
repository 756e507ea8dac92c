package candidate

// Signal names a ranking cue detected on a candidate. Every multiplicative
// boost in the engine goes through this table so the precedence of one cue
// over another is auditable in a single place.
type Signal string

const (
	// SignalStructuredNote marks a curated note entry (the structured-note
	// floor shared by several recipes).
	SignalStructuredNote Signal = "structured_note"
	// SignalTargetLiteral marks a hit containing a configured target event
	// literal.
	SignalTargetLiteral Signal = "target_literal"
	// SignalAuthorMatch marks a hit authored by the asking user.
	SignalAuthorMatch Signal = "author_match"
	// SignalAuthorScope marks a hit from the author-prefiltered branch of a
	// contextual search.
	SignalAuthorScope Signal = "author_scope"
	// SignalEraCurrent marks a hit from the reference date's era year.
	SignalEraCurrent Signal = "era_current"
	// SignalEraPrior marks a hit from the era year before the reference.
	SignalEraPrior Signal = "era_prior"
	// SignalTomorrowDate marks a hit containing tomorrow's literal date.
	SignalTomorrowDate Signal = "tomorrow_date"
	// SignalEventKeyword marks a hit containing a tomorrow-event keyword.
	SignalEventKeyword Signal = "event_keyword"
	// SignalDirectTarget marks a hit from a named-target direct search.
	SignalDirectTarget Signal = "direct_target"
	// SignalVenueNote marks a curated note hit inside a venue-only search.
	SignalVenueNote Signal = "venue_note"
	// SignalVenueName marks a hit containing a configured venue name.
	SignalVenueName Signal = "venue_name"
	// SignalTimeBearing marks a hit carrying meeting/start time wording.
	SignalTimeBearing Signal = "time_bearing"
	// SignalAccessInfo marks a hit carrying address/directions wording.
	SignalAccessInfo Signal = "access_info"
	// SignalCompoundHigh marks a venue+time hit with composite score >= 6.
	SignalCompoundHigh Signal = "compound_high"
	// SignalCompoundMedium marks a venue+time hit with composite score >= 3.
	SignalCompoundMedium Signal = "compound_medium"
	// SignalSmartHigh marks a relative-schedule hit with composite >= 5.
	SignalSmartHigh Signal = "smart_high"
	// SignalSmartMedium marks a relative-schedule hit with composite >= 2.
	SignalSmartMedium Signal = "smart_medium"
)

// multipliers is the single signal→factor table. Lower is better, so every
// positive cue is below 1.0.
var multipliers = map[Signal]float64{
	SignalStructuredNote: 0.7,
	SignalTargetLiteral:  0.6,
	SignalAuthorMatch:    0.9,
	SignalAuthorScope:    0.8,
	SignalEraCurrent:     0.7,
	SignalEraPrior:       0.8,
	SignalTomorrowDate:   0.3,
	SignalEventKeyword:   0.8,
	SignalDirectTarget:   0.5,
	SignalVenueNote:      0.3,
	SignalVenueName:      0.6,
	SignalTimeBearing:    0.8,
	SignalAccessInfo:     0.7,
	SignalCompoundHigh:   0.2,
	SignalCompoundMedium: 0.5,
	SignalSmartHigh:      0.3,
	SignalSmartMedium:    0.6,
}

// Multiplier exposes the factor for a signal (1.0 for unknown signals).
func Multiplier(sig Signal) float64 {
	if f, ok := multipliers[sig]; ok {
		return f
	}
	return 1.0
}
