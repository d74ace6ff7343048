package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDates recognizes a fixed set of cleaned values.
func stubDates(known map[string]time.Time) DateParser {
	return DateParserFunc(func(text string) (time.Time, bool) {
		t, ok := known[text]
		return t, ok
	})
}

func TestCleanPipeline(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "", want: ""},
		{name: "case and trim", raw: "  San Salvador  ", want: "san salvador"},
		{name: "parenthetical", raw: "FMLN (Farabundo Marti)", want: "fmln"},
		{name: "several parentheticals", raw: "a (x) b (y) c", want: "b c"},
		{name: "punctuation", raw: "U.S.-made rifles!", want: "usmade rifles"},
		{name: "articles", raw: "The attack on an embassy", want: "attack on embassy"},
		{name: "article inside word kept", raw: "another theater", want: "another theater"},
		{name: "whitespace collapse", raw: "car \t\n bomb", want: "car bomb"},
		{name: "only parenthetical", raw: "(unknown)", want: ""},
		{name: "non ascii stripped", raw: "Señor", want: "seor"},
		{name: "no-break space separates words", raw: "car\u00a0bomb", want: "car bomb"},
		{name: "em space separates words", raw: "San\u2003Salvador", want: "san salvador"},
		{name: "next line separates words", raw: "hand\u0085grenade", want: "hand grenade"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Clean(tc.raw))
		})
	}
}

func TestNormalizeSynonyms(t *testing.T) {
	n := New(WithDateParser(nil))

	assert.Equal(t, "hand grenades", n.Normalize("a Hand Grenade"))
	assert.Equal(t, "hand grenades", n.Normalize("GRENADE"))
	assert.Equal(t, "bombing", n.Normalize("The explosion"))
	assert.Equal(t, "manuel rodriguez patriotic front", n.Normalize("FPMR"))
	assert.Equal(t, "guerrillas", n.Normalize("Guerrillas"))
}

func TestNormalizeDatesOverrideSynonyms(t *testing.T) {
	date := time.Date(1991, time.March, 3, 0, 0, 0, 0, time.UTC)
	n := New(
		WithSynonyms(Synonyms{"march 3 1991": "not a date"}),
		WithDateParser(stubDates(map[string]time.Time{
			"march 3 1991": date,
			"19910303":     date,
		})),
	)

	assert.Equal(t, "1991-03-03", n.Normalize("March 3, 1991"))
	assert.Equal(t, "1991-03-03", n.Normalize("1991-03-03"))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := New(WithDateParser(NewDateParser(DateOff, time.Time{})))
	inputs := []string{
		"",
		"The Explosion (reported)",
		"a hand grenade",
		"El Salvador",
		"  multiple   spaces here ",
		"the the an a",
		"x-ray (1) (2) y",
	}
	for _, input := range inputs {
		once := n.Normalize(input)
		assert.Equal(t, once, n.Normalize(once), "input %q", input)
	}
}

func TestNormalizeCompactDatesAreFixedPoints(t *testing.T) {
	n := New(WithDateParser(NewDateParser(DateStrict, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))))

	first := n.Normalize("1989-11-16")
	require.Equal(t, "1989-11-16", first)
	assert.Equal(t, first, n.Normalize(first))
}

func TestNormalizeNaturalDates(t *testing.T) {
	now := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	n := New(WithDateParser(NewDateParser(DatePermissive, now)))

	assert.Equal(t, "1991-03-03", n.Normalize("March 3, 1991"))
	assert.Equal(t, "1991-03-03", n.Normalize("1991-03-03"))
	assert.Equal(t, "bombing", n.Normalize("explosion"))
}

func TestNormalizeCache(t *testing.T) {
	calls := 0
	parser := DateParserFunc(func(string) (time.Time, bool) {
		calls++
		return time.Time{}, false
	})
	n := New(WithDateParser(parser), WithCache())

	for i := 0; i < 3; i++ {
		assert.Equal(t, "car bomb", n.Normalize("Car Bomb"))
	}
	assert.Equal(t, 1, calls)
}

func TestParseDateMode(t *testing.T) {
	mode, err := ParseDateMode("")
	require.NoError(t, err)
	assert.Equal(t, DatePermissive, mode)

	mode, err = ParseDateMode(" Strict ")
	require.NoError(t, err)
	assert.Equal(t, DateStrict, mode)

	_, err = ParseDateMode("fuzzy")
	require.Error(t, err)
}

func TestDateOffNeverParses(t *testing.T) {
	parser := NewDateParser(DateOff, time.Now())
	_, ok := parser.ParseDate("19910303")
	assert.False(t, ok)
}
