package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericUnmarshalLooseValues(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Numeric
	}{
		{name: "number", in: `12.5`, want: 12.5},
		{name: "quoted number", in: `"42"`, want: 42},
		{name: "quoted with spaces", in: `" 7 "`, want: 7},
		{name: "null", in: `null`, want: 0},
		{name: "garbage string", in: `"abc"`, want: 0},
		{name: "bool", in: `true`, want: 0},
		{name: "object", in: `{"a":1}`, want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var n Numeric
			require.NoError(t, json.Unmarshal([]byte(tc.in), &n))
			assert.Equal(t, tc.want, n)
		})
	}
}

func TestNumericMarshalSanitizesNonFinite(t *testing.T) {
	out, err := json.Marshal(Numeric(math.NaN()))
	require.NoError(t, err)
	assert.Equal(t, "0", string(out))

	out, err = json.Marshal(Numeric(math.Inf(1)))
	require.NoError(t, err)
	assert.Equal(t, "0", string(out))

	out, err = json.Marshal(Numeric(2.5))
	require.NoError(t, err)
	assert.Equal(t, "2.5", string(out))
}

func TestNumericInsideStruct(t *testing.T) {
	var log DailyLog
	require.NoError(t, json.Unmarshal([]byte(`{"mortality":"3","feedUsed":null,"miscCost":"oops"}`), &log))

	assert.Equal(t, Numeric(3), log.Mortality)
	assert.Zero(t, log.FeedUsed)
	assert.Zero(t, log.MiscCost)
}
