package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRank(t *testing.T) {
	tests := []struct {
		in      string
		numeric bool
		value   int
		text    string
	}{
		{"1234", true, 1234, ""},
		{"NA", false, 0, "NA"},
		{"Inactive", false, 0, "Inactive"},
		{"12.5", false, 0, "12.5"},
	}
	for _, tt := range tests {
		r := ParseRank(tt.in)
		assert.Equal(t, tt.numeric, r.IsNumeric(), "ParseRank(%q)", tt.in)
		assert.Equal(t, tt.value, r.Value)
		assert.Equal(t, tt.text, r.Text)
	}
}

func TestRank_MarshalJSON(t *testing.T) {
	numeric, err := json.Marshal(Rank{Value: 42})
	require.NoError(t, err)
	assert.Equal(t, "42", string(numeric))

	textual, err := json.Marshal(Rank{Text: "NA"})
	require.NoError(t, err)
	assert.Equal(t, `"NA"`, string(textual))
}

func TestRank_UnmarshalJSON(t *testing.T) {
	var r Rank
	require.NoError(t, json.Unmarshal([]byte("7"), &r))
	assert.Equal(t, Rank{Value: 7}, r)

	require.NoError(t, json.Unmarshal([]byte(`"NA"`), &r))
	assert.Equal(t, Rank{Text: "NA"}, r)

	// Numeric text round-trips back to a numeric rank
	require.NoError(t, json.Unmarshal([]byte(`"99"`), &r))
	assert.Equal(t, Rank{Value: 99}, r)
}
