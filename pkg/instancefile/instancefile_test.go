package instancefile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Testdata(t *testing.T) {
	s, err := Load("testdata/n004w2.yaml")
	require.NoError(t, err)

	assert.Equal(t, "n004w2", s.Name)
	assert.Equal(t, 14, s.NbDays)
	assert.Len(t, s.Contracts, 2)
	require.Len(t, s.Nurses, 4)
	assert.Equal(t, []int{0, 1}, s.Nurses[3].Skills)
	assert.Equal(t, "FullTime", s.Nurses[3].ContractName())

	// Patrick and Sara share a position
	assert.Len(t, s.Positions, 3)

	assert.True(t, s.Preferences.WantsTheShiftOff(1, 3, 2))
	assert.True(t, s.Preferences.WantsTheDayOff(3, 12))

	// 2026-01-05 is a Monday: weekends are days 5, 6, 12, 13
	for _, day := range []int{5, 6, 12, 13} {
		assert.True(t, s.Preferences.WantsTheDayOff(2, day), "day %d", day)
	}
	assert.Equal(t, 4, s.Preferences.HowManyDaysOff(2, 0, 14))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read instance file")
}

const minimalInstance = `
name: tiny
nbWeeks: 1
skills: [Nurse]
shifts: [Day]
contracts:
  - id: 0
    name: Any
    maxTotalShifts: 7
    maxConsDaysWork: 7
    maxConsDaysOff: 7
    maxTotalWeekends: 1
nurses:
  - name: Ann
    contract: Any
    skills: [Nurse]
`

func TestParse_Minimal(t *testing.T) {
	s, err := Parse([]byte(minimalInstance))
	require.NoError(t, err)

	assert.Len(t, s.Positions, 1)
	assert.True(t, s.HorizonStart.IsZero())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		extra  string
		errMsg string
	}{
		{
			name:   "unknown shift",
			extra:  "wishes:\n  - nurse: Ann\n    day: 1\n    shift: Night\n",
			errMsg: "unknown shift",
		},
		{
			name:   "unknown nurse",
			extra:  "wishes:\n  - nurse: Bob\n    day: 1\n",
			errMsg: "unknown nurse",
		},
		{
			name:   "wish outside horizon",
			extra:  "wishes:\n  - nurse: Ann\n    day: 7\n",
			errMsg: "invalid wish off",
		},
		{
			name:   "invalid rrule",
			extra:  "horizonStart: \"2026-01-05\"\nrecurringWishes:\n  - nurse: Ann\n    rrule: NOT_A_RULE\n",
			errMsg: "invalid rrule",
		},
		{
			name:   "recurring wish without horizon start",
			extra:  "recurringWishes:\n  - nurse: Ann\n    rrule: FREQ=DAILY\n",
			errMsg: "require horizonStart",
		},
		{
			name:   "unknown position skill",
			extra:  "positions:\n  - [Surgeon]\n",
			errMsg: "unknown skill",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(minimalInstance + tt.extra))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParse_DuplicateContractName(t *testing.T) {
	data := `
name: tiny
nbWeeks: 1
skills: [Nurse]
shifts: [Day]
contracts:
  - id: 0
    name: Any
    maxTotalShifts: 7
  - id: 1
    name: Any
    maxTotalShifts: 3
nurses:
  - name: Ann
    contract: Any
    skills: [Nurse]
`
	_, err := Parse([]byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate contract name "Any"`)
}

func TestParse_ValidationErrors(t *testing.T) {
	_, err := Parse([]byte("name: broken\nnbWeeks: 0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	_, err = Parse([]byte("name: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestExpandRRule(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	days, err := ExpandRRule("FREQ=WEEKLY;BYDAY=MO", start, 21)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 7, 14}, days)

	days, err = ExpandRRule("FREQ=DAILY;INTERVAL=3", start, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3, 6, 9}, days)

	days, err = ExpandRRule("FREQ=DAILY", start, 0)
	require.NoError(t, err)
	assert.Empty(t, days)

	_, err = ExpandRRule("garbage", start, 7)
	assert.Error(t, err)
}
