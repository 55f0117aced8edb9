package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgeSetRoundTrip(t *testing.T) {
	set := NewBadgeSet("b", "a", "a", " ")
	assert.Equal(t, BadgeSet{"a", "b"}, set)

	value, err := set.Value()
	require.NoError(t, err)

	var scanned BadgeSet
	require.NoError(t, scanned.Scan(value))
	assert.ElementsMatch(t, []string{"a", "b"}, scanned)
}

func TestBadgeSetEscapesDelimiter(t *testing.T) {
	set := NewBadgeSet("reader, gold", `back\slash`, "plain")
	encoded := set.Encode()

	decoded := DecodeBadgeSet(encoded)
	assert.ElementsMatch(t, []string{"reader, gold", `back\slash`, "plain"}, decoded)
}

func TestBadgeSetScanNilAndBytes(t *testing.T) {
	var set BadgeSet
	require.NoError(t, set.Scan(nil))
	assert.Empty(t, set)

	require.NoError(t, set.Scan([]byte("x,y")))
	assert.Equal(t, BadgeSet{"x", "y"}, set)

	assert.Error(t, set.Scan(42))
}

func TestBadgeSetJSON(t *testing.T) {
	var fromArray struct {
		Badges BadgeSet `json:"badges"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"badges":["b","a","b"]}`), &fromArray))
	assert.Equal(t, BadgeSet{"a", "b"}, fromArray.Badges)

	var fromString struct {
		Badges BadgeSet `json:"badges"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"badges":"star, helper"}`), &fromString))
	assert.Equal(t, BadgeSet{"helper", "star"}, fromString.Badges)

	out, err := json.Marshal(struct {
		Badges BadgeSet `json:"badges"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"badges":[]}`, string(out))
}

func TestColorBuckets(t *testing.T) {
	assert.True(t, ColorGreen.Excellent())
	assert.True(t, ColorRed.NeedsAttention())
	assert.True(t, ColorYellow.NeedsAttention())
	assert.True(t, ColorBlue.Average())
	assert.True(t, ColorGray.Average())
	assert.False(t, Color("purple").Valid())
}
