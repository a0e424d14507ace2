package schedule

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWindowStructured(t *testing.T) {
	raw := json.RawMessage(`{"start":"10:00","end":"14:30","enabled":true}`)
	w, note := ResolveWindow(1, raw)
	assert.Empty(t, note)
	assert.Equal(t, DayWindow{Start: "10:00", End: "14:30", Enabled: true}, w)
}

func TestResolveWindowStringEncoded(t *testing.T) {
	inner := `{"start":"07:15","end":"19:00","enabled":false}`
	raw, err := json.Marshal(inner)
	require.NoError(t, err)

	w, note := ResolveWindow(3, raw)
	assert.Empty(t, note)
	assert.Equal(t, DayWindow{Start: "07:15", End: "19:00", Enabled: false}, w)
}

func TestResolveWindowFallsBackToDefault(t *testing.T) {
	cases := map[string]json.RawMessage{
		"absent":            nil,
		"null":              json.RawMessage(`null`),
		"garbage":           json.RawMessage(`{{{not json`),
		"wrong type":        json.RawMessage(`42`),
		"encoded garbage":   json.RawMessage(`"{broken"`),
		"empty encoded":     json.RawMessage(`""`),
		"missing start/end": json.RawMessage(`{"enabled":true}`),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			w, note := ResolveWindow(0, raw)
			assert.Equal(t, DayWindow{Start: "09:00", End: "17:00", Enabled: true}, w)
			assert.NotEmpty(t, note)
			assert.Contains(t, note, "Sunday")
		})
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, h)
	assert.Equal(t, 30, m)

	for _, bad := range []string{"", "25:00", "09:60", "9", "ab:cd", "09:30:00"} {
		_, _, err := ParseClock(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestDayName(t *testing.T) {
	assert.Equal(t, "Sunday", DayName(0))
	assert.Equal(t, "Saturday", DayName(6))
}
