package retrieval

import (
	"regexp"
	"strings"
)

// Intent classifies a schedule query into the recipe that serves it.
type Intent string

const (
	IntentTomorrow Intent = "tomorrow"
	IntentCompound Intent = "compound"
	IntentVenue    Intent = "venue"
	IntentSmart    Intent = "smart"
	IntentSchedule Intent = "schedule"
	IntentPlain    Intent = "plain"

	// intentContextual labels ContextualSearch in stats and metrics; it is
	// never produced by Classify.
	intentContextual Intent = "contextual"
)

// intentRules is the ordered classifier: first matching rule wins, no
// fallthrough. Order is load-bearing; the tomorrow patterns deliberately
// shadow the compound ones.
var intentRules = []struct {
	intent   Intent
	patterns []*regexp.Regexp
}{
	{IntentTomorrow, compileAll(
		`明日.*予定`, `明日.*何`, `明日.*試合`, `明日.*練習`,
		`明日.*大会`, `明日.*集合`, `明日.*時間`, `明日.*場所`,
	)},
	{IntentCompound, compileAll(
		`明日.*集合.*場所.*時間`, `明日.*会場.*時間`, `集合.*場所.*時間`,
		`会場.*時間.*どこ`, `どこで.*何時.*集合`, `明日.*どこ.*何時`, `場所.*時間.*教え`,
	)},
	{IntentVenue, compileAll(
		`会場.*どこ`, `集合.*場所`, `集合.*時間`, `どこで.*集合`, `場所.*教え`, `.*への.*行き方`,
	)},
	{IntentSmart, compileAll(
		`今週末.*予定`, `週末.*何`, `来月.*予定`, `今月.*大会`,
		`10月.*練習`, `11月.*試合`, `.*月.*何.*予定`,
	)},
	{IntentSchedule, compileAll(
		`(今後|これから|この先|将来).*予定`, `予定.*教え`, `スケジュール`,
		`(次|今度).*試合`, `(次|今度).*練習`, `大会.*予定`,
		`いつ.*試合`, `いつ.*練習`, `明日.*予定`, `明日.*何`,
	)},
}

// futureCues force future-only filtering in the generic schedule recipe.
var futureCues = []string{"今後", "これから", "将来", "次の", "今度"}

// Classify returns the intent of a normalized query.
func Classify(query string) Intent {
	for _, rule := range intentRules {
		for _, re := range rule.patterns {
			if re.MatchString(query) {
				return rule.intent
			}
		}
	}
	return IntentPlain
}

func compileAll(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(p)
	}
	return res
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(text, n) {
			return true
		}
	}
	return false
}
