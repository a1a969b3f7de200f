package intent

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatsLookup(t *testing.T) {
	for _, team := range []string{"galatasaray", "fenerbahce", "besiktas", "trabzonspor", "istanbul basaksehir"} {
		for _, q := range []string{
			"stats for %s",
			"Show stats for %s",
			"show me the statistics of %s",
			"STATS FOR %s",
		} {
			text := fmt.Sprintf(q, team)
			got := Parse(text)
			assert.Equal(t, Intent{Kind: StatsLookup, Team: team}, got, text)
		}
	}
}

func TestParseExtractsSeasonOnce(t *testing.T) {
	got := Parse("Show stats for Galatasaray in 24/25")
	assert.Equal(t, Intent{Kind: StatsLookup, Team: "galatasaray", Season: "24/25"}, got)

	got = Parse("statistics of Fenerbahce during the 23/24 season")
	assert.Equal(t, Intent{Kind: StatsLookup, Team: "fenerbahce", Season: "23/24"}, got)

	got = Parse("stats for besiktas 22/23 or 23/24")
	assert.Equal(t, "22/23", got.Season)
	assert.Equal(t, "besiktas", got.Team)
}

func TestParseComparisonTriggerWordsAgree(t *testing.T) {
	want := Intent{Kind: Comparison, Team: "galatasaray", Opponent: "fenerbahce"}
	for _, q := range []string{
		"compare galatasaray and fenerbahce",
		"vs galatasaray and fenerbahce",
		"versus galatasaray and fenerbahce",
		"Compare Galatasaray and Fenerbahce",
		"compare galatasaray vs fenerbahce",
		"compare galatasaray versus fenerbahce",
	} {
		assert.Equal(t, want, Parse(q), q)
	}

	got := Parse("compare galatasaray and fenerbahce in 23/24")
	assert.Equal(t, Intent{Kind: Comparison, Team: "galatasaray", Opponent: "fenerbahce", Season: "23/24"}, got)
}

func TestParseFormAnalysis(t *testing.T) {
	got := Parse("Show form for Galatasaray")
	assert.Equal(t, Intent{Kind: FormAnalysis, Team: "galatasaray"}, got)

	got = Parse("what is the form of trabzonspor in 24/25")
	assert.Equal(t, Intent{Kind: FormAnalysis, Team: "trabzonspor", Season: "24/25"}, got)
}

func TestParseKeywordWithoutPatternIsUnknown(t *testing.T) {
	// "stats" wins the keyword race even though the form pattern would match.
	got := Parse("stats please, show form for galatasaray")
	assert.Equal(t, StatsLookup, got.Kind)

	for _, q := range []string{
		"show me stats",
		"galatasaray vs fenerbahce",
		"compare them",
		"how is the form",
		"stats, then compare galatasaray and fenerbahce",
	} {
		assert.Equal(t, Unknown, Parse(q).Kind, q)
	}
}

func TestParseUnknown(t *testing.T) {
	for _, q := range []string{"asdkjasd random text", "", "who won the league?"} {
		got := Parse(q)
		assert.Equal(t, Unknown, got.Kind, q)
		assert.Empty(t, got.Team)
	}
}

func TestParseTurkishLetters(t *testing.T) {
	got := Parse("stats for Göztepe")
	assert.Equal(t, "göztepe", got.Team)

	got = Parse("compare Başakşehir and Kasımpaşa")
	assert.Equal(t, "başakşehir", got.Team)
	assert.Equal(t, "kasımpaşa", got.Opponent)
}

func TestExtractSeason(t *testing.T) {
	assert.Equal(t, "24/25", ExtractSeason("in 24/25"))
	assert.Equal(t, "24/25", ExtractSeason("season 2024/25"))
	assert.Equal(t, "", ExtractSeason("no season here"))
}

func TestCleanFragment(t *testing.T) {
	cases := map[string]string{
		"galatasaray in ":          "galatasaray",
		"  fenerbahce  ":           "fenerbahce",
		"besiktas during the ":     "besiktas",
		"istanbul basaksehir":      "istanbul basaksehir",
		"the":                      "the",
		"konyaspor for the season": "konyaspor",
	}
	for in, want := range cases {
		assert.Equal(t, want, cleanFragment(in), in)
	}
}

func TestMatchersAreIndependent(t *testing.T) {
	compare := Matchers[1]
	assert.True(t, compare.Triggered("a vs b"))
	_, ok := compare.Match("a vs b")
	assert.False(t, ok)

	in, ok := compare.Match("vs ankaragucu and sivasspor")
	assert.True(t, ok)
	assert.Equal(t, "ankaragucu", in.Team)
	assert.Equal(t, "sivasspor", in.Opponent)
}
