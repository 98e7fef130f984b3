package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muralboard/mural/internal/domain"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := domain.ParseDate("2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-10", d.String())

	_, err = domain.ParseDate("10/01/2025")
	assert.Error(t, err)

	_, err = domain.ParseDate("")
	assert.Error(t, err)
}

// Deadlines are day-granular: the time-of-day and zone of the incoming
// instant must never shift the resulting calendar day.
func TestDateOfNormalizesTimeOfDay(t *testing.T) {
	t.Parallel()

	zone := time.FixedZone("UTC-5", -5*3600)
	lateEvening := time.Date(2025, time.January, 10, 23, 59, 59, 0, zone)
	earlyMorning := time.Date(2025, time.January, 10, 0, 0, 1, 0, time.UTC)

	assert.True(t, domain.DateOf(lateEvening).Equal(domain.DateOf(earlyMorning)))
	assert.Equal(t, "2025-01-10", domain.DateOf(lateEvening).String())
}

func TestDaysBetween(t *testing.T) {
	t.Parallel()

	base := domain.NewDate(2025, time.January, 10)

	assert.Equal(t, 0, domain.DaysBetween(base, base))
	assert.Equal(t, 2, domain.DaysBetween(base, base.AddDays(2)))
	assert.Equal(t, -2, domain.DaysBetween(base, base.AddDays(-2)))
	// Across a month boundary.
	assert.Equal(t, 22, domain.DaysBetween(base, domain.NewDate(2025, time.February, 1)))
}

func TestDateWeekday(t *testing.T) {
	t.Parallel()

	// 2025-06-15 is a Sunday.
	sunday := domain.NewDate(2025, time.June, 15)
	assert.Equal(t, 0, sunday.Weekday())
	assert.Equal(t, 1, sunday.AddDays(1).Weekday())
	assert.Equal(t, 6, sunday.AddDays(6).Weekday())
}

func TestDateJSONRoundTrip(t *testing.T) {
	t.Parallel()

	d := domain.NewDate(2025, time.June, 20)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-20"`, string(b))

	var back domain.Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, d.Equal(back))
}

func TestDateJSONZeroAndInvalid(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(domain.Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	var d domain.Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &d))
}
