package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-agency-backoffice/internal/domain"
	"go-agency-backoffice/internal/usecase"
	"go-agency-backoffice/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() domain.Clock {
	return domain.ClockFunc(func() time.Time { return testToday })
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

// nurseJob builds a job whose criteria the fixture candidate passes.
func nurseJob() *domain.JobOpportunity {
	return &domain.JobOpportunity{
		ID:                       1,
		JobTitle:                 "ICU Nurse",
		Gender:                   domain.GenderFemale,
		MinimumAge:               25,
		MaximumAge:               40,
		Nationalities:            []string{"Jordanian", "Egyptian"},
		AcceptedDegrees:          []string{"BSc"},
		FieldsOfStudy:            []string{"Nursing"},
		MinimumYearsOfExperience: 2,
		Departments:              []string{"ICU"},
	}
}

// eligibleNurse is a candidate passing every nurseJob criterion.
func eligibleNurse(id int64) domain.Candidate {
	return domain.Candidate{
		ID:          id,
		Email:       "nurse@example.com",
		FirstName:   "Rania",
		LastName:    "Haddad",
		Gender:      domain.GenderFemale,
		Birthday:    datePtr(1995, time.March, 1),
		Nationality: "Jordanian",
	}
}

func nursingEducation() []domain.Education {
	return []domain.Education{{Degree: "BSc", FieldOfStudy: "Nursing", StartDate: date(2013, time.September, 1)}}
}

func icuExperience() []domain.Experience {
	return []domain.Experience{{
		ID:          1,
		Departments: []string{"ICU"},
		StartDate:   date(2020, time.January, 1),
		EndDate:     datePtr(2024, time.January, 1),
	}}
}

func newMatching(candidates *MockCandidateRepo, jobs *MockJobRepo) domain.MatchingUsecase {
	return usecase.NewMatchingUsecase(candidates, jobs, validator.New(), fixedClock())
}

func TestCompatibleCandidates(t *testing.T) {
	t.Run("Eligible candidate passes every criterion", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		jobs := new(MockJobRepo)
		jobs.On("GetByID", mock.Anything, int64(1)).Return(nurseJob(), nil)
		candidates.On("ListUnassigned", mock.Anything).Return([]domain.Candidate{eligibleNurse(10)}, nil)
		candidates.On("ListEducations", mock.Anything, int64(10)).Return(nursingEducation(), nil)
		candidates.On("ListExperiences", mock.Anything, int64(10)).Return(icuExperience(), nil)

		result, err := newMatching(candidates, jobs).CompatibleCandidates(context.Background(), 1, "", false)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, int64(10), result[0].ID)
	})

	t.Run("Unknown job is not found", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		jobs := new(MockJobRepo)
		jobs.On("GetByID", mock.Anything, int64(99)).Return(nil, nil)

		_, err := newMatching(candidates, jobs).CompatibleCandidates(context.Background(), 99, "", false)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Inverted age window fails validation", func(t *testing.T) {
		job := nurseJob()
		job.MinimumAge = 40
		job.MaximumAge = 25
		candidates := new(MockCandidateRepo)
		jobs := new(MockJobRepo)
		jobs.On("GetByID", mock.Anything, int64(1)).Return(job, nil)

		_, err := newMatching(candidates, jobs).CompatibleCandidates(context.Background(), 1, "", false)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("Gender Any admits both genders", func(t *testing.T) {
		job := nurseJob()
		job.Gender = domain.GenderAny
		male := eligibleNurse(11)
		male.Gender = domain.GenderMale

		candidates := new(MockCandidateRepo)
		jobs := new(MockJobRepo)
		jobs.On("GetByID", mock.Anything, int64(1)).Return(job, nil)
		candidates.On("ListUnassigned", mock.Anything).Return([]domain.Candidate{eligibleNurse(10), male}, nil)
		candidates.On("ListEducations", mock.Anything, mock.Anything).Return(nursingEducation(), nil)
		candidates.On("ListExperiences", mock.Anything, mock.Anything).Return(icuExperience(), nil)

		result, err := newMatching(candidates, jobs).CompatibleCandidates(context.Background(), 1, "", false)
		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("Age window is inclusive at both ends", func(t *testing.T) {
		// MaximumAge 40: born exactly today minus 40 years is still in.
		atMax := eligibleNurse(20)
		atMax.Birthday = datePtr(1986, time.June, 15)
		// One day older falls out.
		tooOld := eligibleNurse(21)
		tooOld.Birthday = datePtr(1986, time.June, 14)
		// MinimumAge 25: born exactly today minus 25 years is in.
		atMin := eligibleNurse(22)
		atMin.Birthday = datePtr(2001, time.June, 15)
		// One day younger falls out.
		tooYoung := eligibleNurse(23)
		tooYoung.Birthday = datePtr(2001, time.June, 16)

		candidates := new(MockCandidateRepo)
		jobs := new(MockJobRepo)
		jobs.On("GetByID", mock.Anything, int64(1)).Return(nurseJob(), nil)
		candidates.On("ListUnassigned", mock.Anything).Return([]domain.Candidate{atMax, tooOld, atMin, tooYoung}, nil)
		candidates.On("ListEducations", mock.Anything, mock.Anything).Return(nursingEducation(), nil)
		candidates.On("ListExperiences", mock.Anything, mock.Anything).Return(icuExperience(), nil)

		result, err := newMatching(candidates, jobs).CompatibleCandidates(context.Background(), 1, "", false)
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, int64(20), result[0].ID)
		assert.Equal(t, int64(22), result[1].ID)
	})

	t.Run("Unknown birthday is excluded", func(t *testing.T) {
		noBirthday := eligibleNurse(30)
		noBirthday.Birthday = nil

		candidates := new(MockCandidateRepo)
		jobs := new(MockJobRepo)
		jobs.On("GetByID", mock.Anything, int64(1)).Return(nurseJob(), nil)
		candidates.On("ListUnassigned", mock.Anything).Return([]domain.Candidate{noBirthday}, nil)

		result, err := newMatching(candidates, jobs).CompatibleCandidates(context.Background(), 1, "", false)
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("Empty nationality set matches nobody", func(t *testing.T) {
		job := nurseJob()
		job.Nationalities = nil

		candidates := new(MockCandidateRepo)
		jobs := new(MockJobRepo)
		jobs.On("GetByID", mock.Anything, int64(1)).Return(job, nil)
		candidates.On("ListUnassigned", mock.Anything).Return([]domain.Candidate{eligibleNurse(10)}, nil)

		result, err := newMatching(candidates, jobs).CompatibleCandidates(context.Background(), 1, "", false)
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("Degree and field must sit on one education row", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		jobs := new(MockJobRepo)
		jobs.On("GetByID", mock.Anything, int64(1)).Return(nurseJob(), nil)
		candidates.On("ListUnassigned", mock.Anything).Return([]domain.Candidate{eligibleNurse(10)}, nil)
		// Accepted degree and accepted field exist, but on different rows.
		candidates.On("ListEducations", mock.Anything, int64(10)).Return([]domain.Education{
			{Degree: "BSc", FieldOfStudy: "Biology"},
			{Degree: "MSc", FieldOfStudy: "Nursing"},
		}, nil)

		result, err := newMatching(candidates, jobs).CompatibleCandidates(context.Background(), 1, "", false)
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("Experience minimum counts only required departments", func(t *testing.T) {
		// 18 ICU months plus years elsewhere: total is high but the
		// department-scoped sum misses the 2-year minimum.
		candidates := new(MockCandidateRepo)
		jobs := new(MockJobRepo)
		jobs.On("GetByID", mock.Anything, int64(1)).Return(nurseJob(), nil)
		candidates.On("ListUnassigned", mock.Anything).Return([]domain.Candidate{eligibleNurse(10)}, nil)
		candidates.On("ListEducations", mock.Anything, int64(10)).Return(nursingEducation(), nil)
		candidates.On("ListExperiences", mock.Anything, int64(10)).Return([]domain.Experience{
			{ID: 1, Departments: []string{"ICU"}, StartDate: date(2023, time.January, 1), EndDate: datePtr(2024, time.July, 1)},
			{ID: 2, Departments: []string{"Radiology"}, StartDate: date(2015, time.January, 1), EndDate: datePtr(2020, time.January, 1)},
		}, nil)

		result, err := newMatching(candidates, jobs).CompatibleCandidates(context.Background(), 1, "", false)
		require.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestCompatibleCandidatesSorting(t *testing.T) {
	setup := func(pool []domain.Candidate, experiences map[int64][]domain.Experience) (domain.MatchingUsecase, *MockJobRepo) {
		job := nurseJob()
		candidates := new(MockCandidateRepo)
		jobs := new(MockJobRepo)
		jobs.On("GetByID", mock.Anything, int64(1)).Return(job, nil)
		candidates.On("ListUnassigned", mock.Anything).Return(pool, nil)
		candidates.On("ListEducations", mock.Anything, mock.Anything).Return(nursingEducation(), nil)
		for id, exps := range experiences {
			candidates.On("ListExperiences", mock.Anything, id).Return(exps, nil)
		}
		return newMatching(candidates, jobs), jobs
	}

	t.Run("Email descending is case-insensitive and stable", func(t *testing.T) {
		a := eligibleNurse(1)
		a.Email = "b@example.com"
		b := eligibleNurse(2)
		b.Email = "B@example.com"
		c := eligibleNurse(3)
		c.Email = "a@example.com"

		uc, _ := setup([]domain.Candidate{a, b, c}, map[int64][]domain.Experience{
			1: icuExperience(), 2: icuExperience(), 3: icuExperience(),
		})

		result, err := uc.CompatibleCandidates(context.Background(), 1, usecase.SortByEmail, true)
		require.NoError(t, err)
		require.Len(t, result, 3)
		// The two equal emails keep their input order under a stable sort.
		assert.Equal(t, int64(1), result[0].ID)
		assert.Equal(t, int64(2), result[1].ID)
		assert.Equal(t, int64(3), result[2].ID)
	})

	t.Run("Total experience sort ignores the department filter", func(t *testing.T) {
		// Candidate 1: 2 ICU years. Candidate 2: 2 ICU years plus 5
		// unrelated years, ranking higher on the all-department total.
		one := eligibleNurse(1)
		two := eligibleNurse(2)

		uc, _ := setup([]domain.Candidate{one, two}, map[int64][]domain.Experience{
			1: {{ID: 1, Departments: []string{"ICU"}, StartDate: date(2022, time.January, 1), EndDate: datePtr(2024, time.January, 1)}},
			2: {
				{ID: 2, Departments: []string{"ICU"}, StartDate: date(2022, time.January, 1), EndDate: datePtr(2024, time.January, 1)},
				{ID: 3, Departments: []string{"Radiology"}, StartDate: date(2015, time.January, 1), EndDate: datePtr(2020, time.January, 1)},
			},
		})

		result, err := uc.CompatibleCandidates(context.Background(), 1, usecase.SortByTotalExperience, true)
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, int64(2), result[0].ID)
	})

	t.Run("Age ascending", func(t *testing.T) {
		older := eligibleNurse(1)
		older.Birthday = datePtr(1990, time.January, 1)
		younger := eligibleNurse(2)
		younger.Birthday = datePtr(1998, time.January, 1)

		uc, _ := setup([]domain.Candidate{older, younger}, map[int64][]domain.Experience{
			1: icuExperience(), 2: icuExperience(),
		})

		result, err := uc.CompatibleCandidates(context.Background(), 1, usecase.SortByAge, false)
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, int64(2), result[0].ID)
	})

	t.Run("Unknown sort key keeps input order", func(t *testing.T) {
		a := eligibleNurse(5)
		b := eligibleNurse(4)

		uc, _ := setup([]domain.Candidate{a, b}, map[int64][]domain.Experience{
			4: icuExperience(), 5: icuExperience(),
		})

		result, err := uc.CompatibleCandidates(context.Background(), 1, "salary", true)
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, int64(5), result[0].ID)
		assert.Equal(t, int64(4), result[1].ID)
	})
}

func TestAssign(t *testing.T) {
	t.Run("Assigns an unassigned candidate", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		jobs := new(MockJobRepo)
		jobs.On("GetByID", mock.Anything, int64(1)).Return(nurseJob(), nil)
		nurse := eligibleNurse(10)
		candidates.On("GetByID", mock.Anything, int64(10)).Return(&nurse, nil)
		jobs.On("IsAssigned", mock.Anything, int64(10)).Return(false, nil)
		jobs.On("AssignCandidate", mock.Anything, int64(1), int64(10)).Return(nil)

		err := newMatching(candidates, jobs).Assign(context.Background(), 1, 10)
		require.NoError(t, err)
		jobs.AssertExpectations(t)
	})

	t.Run("Conflict when already assigned", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		jobs := new(MockJobRepo)
		jobs.On("GetByID", mock.Anything, int64(1)).Return(nurseJob(), nil)
		nurse := eligibleNurse(10)
		candidates.On("GetByID", mock.Anything, int64(10)).Return(&nurse, nil)
		jobs.On("IsAssigned", mock.Anything, int64(10)).Return(true, nil)

		err := newMatching(candidates, jobs).Assign(context.Background(), 1, 10)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
	})

	t.Run("Conflict when the database wins the race", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		jobs := new(MockJobRepo)
		jobs.On("GetByID", mock.Anything, int64(1)).Return(nurseJob(), nil)
		nurse := eligibleNurse(10)
		candidates.On("GetByID", mock.Anything, int64(10)).Return(&nurse, nil)
		jobs.On("IsAssigned", mock.Anything, int64(10)).Return(false, nil)
		jobs.On("AssignCandidate", mock.Anything, int64(1), int64(10)).Return(domain.ErrAlreadyAssigned)

		err := newMatching(candidates, jobs).Assign(context.Background(), 1, 10)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
	})
}

func TestUnassign(t *testing.T) {
	t.Run("Removes an existing assignment", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		jobs := new(MockJobRepo)
		jobs.On("RemoveCandidate", mock.Anything, int64(1), int64(10)).Return(true, nil)

		err := newMatching(candidates, jobs).Unassign(context.Background(), 1, 10)
		require.NoError(t, err)
	})

	t.Run("Rejects removing a missing assignment", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		jobs := new(MockJobRepo)
		jobs.On("RemoveCandidate", mock.Anything, int64(1), int64(10)).Return(false, nil)

		err := newMatching(candidates, jobs).Unassign(context.Background(), 1, 10)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})
}
