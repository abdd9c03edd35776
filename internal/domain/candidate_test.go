package domain_test

import (
	"testing"
	"time"

	"go-agency-backoffice/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestFullName(t *testing.T) {
	c := domain.Candidate{FirstName: "Aisha", SecondName: "Bint", ThirdName: "Omar", LastName: "Haddad"}
	assert.Equal(t, "Aisha Bint Omar Haddad", c.FullName())

	c = domain.Candidate{FirstName: "Aisha", LastName: "Haddad"}
	assert.Equal(t, "Aisha Haddad", c.FullName())

	c = domain.Candidate{}
	assert.Equal(t, "", c.FullName())
}

func TestAgeYears(t *testing.T) {
	now := date(2026, time.June, 15)

	t.Run("Birthday already passed this year", func(t *testing.T) {
		c := domain.Candidate{Birthday: datePtr(1990, time.March, 1)}
		assert.Equal(t, 36, c.AgeYears(now))
	})

	t.Run("Birthday not yet reached this year", func(t *testing.T) {
		c := domain.Candidate{Birthday: datePtr(1990, time.December, 1)}
		assert.Equal(t, 35, c.AgeYears(now))
	})

	t.Run("Birthday today", func(t *testing.T) {
		c := domain.Candidate{Birthday: datePtr(1990, time.June, 15)}
		assert.Equal(t, 36, c.AgeYears(now))
	})

	t.Run("Unknown birthday is zero", func(t *testing.T) {
		c := domain.Candidate{}
		assert.Equal(t, 0, c.AgeYears(now))
	})
}

func TestTotalExperienceYears(t *testing.T) {
	now := date(2026, time.June, 15)

	t.Run("Closed ranges sum in calendar months", func(t *testing.T) {
		exps := []domain.Experience{
			{ID: 1, StartDate: date(2020, time.January, 1), EndDate: datePtr(2021, time.January, 1)},
			{ID: 2, StartDate: date(2022, time.March, 1), EndDate: datePtr(2022, time.September, 1)},
		}
		years, err := domain.TotalExperienceYears(exps, nil, now)
		require.NoError(t, err)
		assert.InDelta(t, 1.5, years, 0.0001)
	})

	t.Run("Open-ended range runs until now", func(t *testing.T) {
		exps := []domain.Experience{
			{ID: 1, StartDate: date(2025, time.June, 1)},
		}
		years, err := domain.TotalExperienceYears(exps, nil, now)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, years, 0.0001)
	})

	t.Run("Day of month is ignored", func(t *testing.T) {
		exps := []domain.Experience{
			{ID: 1, StartDate: date(2020, time.January, 31), EndDate: datePtr(2020, time.February, 1)},
		}
		years, err := domain.TotalExperienceYears(exps, nil, now)
		require.NoError(t, err)
		assert.InDelta(t, 1.0/12.0, years, 0.0001)
	})

	t.Run("Department filter excludes untagged rows", func(t *testing.T) {
		exps := []domain.Experience{
			{ID: 1, Departments: []string{"ICU"}, StartDate: date(2020, time.January, 1), EndDate: datePtr(2021, time.January, 1)},
			{ID: 2, Departments: []string{"Radiology"}, StartDate: date(2021, time.January, 1), EndDate: datePtr(2025, time.January, 1)},
		}
		years, err := domain.TotalExperienceYears(exps, []string{"ICU"}, now)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, years, 0.0001)

		all, err := domain.TotalExperienceYears(exps, nil, now)
		require.NoError(t, err)
		assert.InDelta(t, 5.0, all, 0.0001)
	})

	t.Run("Adding an experience never lowers the total", func(t *testing.T) {
		base := []domain.Experience{
			{ID: 1, StartDate: date(2020, time.January, 1), EndDate: datePtr(2022, time.January, 1)},
		}
		before, err := domain.TotalExperienceYears(base, nil, now)
		require.NoError(t, err)

		grown := append(base, domain.Experience{ID: 2, StartDate: date(2023, time.January, 1), EndDate: datePtr(2023, time.June, 1)})
		after, err := domain.TotalExperienceYears(grown, nil, now)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, after, before)
	})

	t.Run("End before start is an error", func(t *testing.T) {
		exps := []domain.Experience{
			{ID: 7, StartDate: date(2022, time.June, 1), EndDate: datePtr(2022, time.January, 1)},
		}
		_, err := domain.TotalExperienceYears(exps, nil, now)
		assert.ErrorIs(t, err, domain.ErrNegativeDuration)
	})

	t.Run("No experiences is zero", func(t *testing.T) {
		years, err := domain.TotalExperienceYears(nil, nil, now)
		require.NoError(t, err)
		assert.Zero(t, years)
	})
}

func TestTagsAny(t *testing.T) {
	e := domain.Experience{Departments: []string{"ICU", "ER"}}
	assert.True(t, e.TagsAny([]string{"ER"}))
	assert.True(t, e.TagsAny([]string{"Radiology", "ICU"}))
	assert.False(t, e.TagsAny([]string{"Radiology"}))
	assert.False(t, e.TagsAny(nil))
}

func TestLicenseIsExpired(t *testing.T) {
	now := date(2026, time.June, 15)

	l := domain.License{ExpiryDate: datePtr(2026, time.January, 1)}
	assert.True(t, l.IsExpired(now))

	l = domain.License{ExpiryDate: datePtr(2027, time.January, 1)}
	assert.False(t, l.IsExpired(now))

	l = domain.License{}
	assert.False(t, l.IsExpired(now))
}
