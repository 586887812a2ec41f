package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembership_IsOpenAt(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	exact := now

	assert.True(t, (&Membership{}).IsOpenAt(now), "nil end date is open")
	assert.True(t, (&Membership{EndDate: &future}).IsOpenAt(now))
	assert.False(t, (&Membership{EndDate: &past}).IsOpenAt(now))
	assert.False(t, (&Membership{EndDate: &exact}).IsOpenAt(now), "end date equal to now is closed")
}

func TestPartyWithMembership_JSONFlattensParty(t *testing.T) {
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	m := Membership{ID: 1, MemberID: 2, PartyID: 3, StartDate: start}
	pwm := PartyWithMembership{
		Party:      Party{ID: 3, Name: "Partido X"},
		Membership: m.Period(),
	}

	data, err := json.Marshal(pwm)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Partido X", decoded["name"])
	membership, ok := decoded["membership"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "2022-01-01T00:00:00Z", membership["start_date"])
	assert.Nil(t, membership["end_date"])
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(ptrTime(time.Date(1980, 3, 9, 0, 0, 0, 0, time.UTC)))
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1980-03-09"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, 1980, back.Year())

	assert.Nil(t, NewDate(nil))
}

func ptrTime(t time.Time) *time.Time { return &t }
