package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go-agency-backoffice/internal/domain"
	"go-agency-backoffice/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// Sort keys accepted by CompatibleCandidates. Anything else leaves the
// filtered set in its original order; callers get no error for a bad key.
const (
	SortByFullName        = "full_name"
	SortByEmail           = "email"
	SortByTotalExperience = "total_experience"
	SortByAge             = "age"
)

type matchingUsecase struct {
	candidates domain.CandidateRepository
	jobs       domain.JobRepository
	validate   *validator.Validate
	clock      domain.Clock

	// Serializes assignment per candidate to close the check-then-act
	// window between IsAssigned and AssignCandidate.
	assignLocks keyedMutex
}

func NewMatchingUsecase(candidates domain.CandidateRepository, jobs domain.JobRepository, validate *validator.Validate, clock domain.Clock) domain.MatchingUsecase {
	if clock == nil {
		clock = domain.SystemClock
	}
	return &matchingUsecase{
		candidates: candidates,
		jobs:       jobs,
		validate:   validate,
		clock:      clock,
	}
}

// CompatibleCandidates narrows the unassigned candidate population to those
// structurally eligible for the job, then ranks them. Each pass is an
// independent narrowing step; order only affects how much work later passes
// see, not the result set.
func (u *matchingUsecase) CompatibleCandidates(ctx context.Context, jobID int64, sortKey string, descending bool) ([]domain.Candidate, error) {
	job, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NotFound("Job opportunity not found")
	}
	if err := u.validate.Struct(job); err != nil {
		return nil, apperror.BadRequest(fmt.Sprintf("job criteria invalid: %v", err))
	}

	// Pass 1: candidates already holding an assignment are out.
	pool, err := u.candidates.ListUnassigned(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list unassigned candidates: %w", err)
	}

	today := u.clock.Now()

	// Pass 2: gender, exact match unless the job accepts any.
	if job.Gender != domain.GenderAny {
		pool = keep(pool, func(c *domain.Candidate) bool {
			return c.Gender == job.Gender
		})
	}

	// Pass 3: birthdate inside [today - max_age years, today - min_age
	// years], both ends inclusive. Unknown birthdates are excluded.
	minBirth := dateOnly(today.AddDate(-job.MaximumAge, 0, 0))
	maxBirth := dateOnly(today.AddDate(-job.MinimumAge, 0, 0))
	pool = keep(pool, func(c *domain.Candidate) bool {
		if c.Birthday == nil {
			return false
		}
		b := dateOnly(*c.Birthday)
		return !b.Before(minBirth) && !b.After(maxBirth)
	})

	// Pass 4: nationality membership. NOTE: an empty nationality set on the
	// job matches zero candidates rather than meaning "any nationality".
	// Intentional; do not reinterpret without a product decision.
	nationalities := toSet(job.Nationalities)
	pool = keep(pool, func(c *domain.Candidate) bool {
		return nationalities[c.Nationality]
	})

	// Pass 5: a single education row must carry both an accepted degree and
	// an accepted field of study. Matching degree and field on different
	// rows does not qualify. Empty criteria sets again match nobody.
	degrees := toSet(job.AcceptedDegrees)
	fields := toSet(job.FieldsOfStudy)
	educated := pool[:0]
	for i := range pool {
		rows, err := u.candidates.ListEducations(ctx, pool[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list educations for candidate %d: %w", pool[i].ID, err)
		}
		for j := range rows {
			if degrees[rows[j].Degree] && fields[rows[j].FieldOfStudy] {
				educated = append(educated, pool[i])
				break
			}
		}
	}
	pool = educated

	// Pass 6: cumulative experience restricted to the job's required
	// departments must reach the minimum. Experiences are fetched once and
	// reused by the experience-based sort keys.
	experiences := make(map[int64][]domain.Experience, len(pool))
	experienced := pool[:0]
	for i := range pool {
		exps, err := u.candidates.ListExperiences(ctx, pool[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list experiences for candidate %d: %w", pool[i].ID, err)
		}
		years, err := domain.TotalExperienceYears(exps, job.Departments, today)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", pool[i].ID, err)
		}
		if years >= float64(job.MinimumYearsOfExperience) {
			experiences[pool[i].ID] = exps
			experienced = append(experienced, pool[i])
		}
	}
	pool = experienced

	u.rank(pool, experiences, sortKey, descending, today)
	return pool, nil
}

// rank orders candidates in place by the requested key using a stable sort
// so that pagination stays deterministic across identical requests. An
// unknown sort key leaves the input order untouched.
func (u *matchingUsecase) rank(pool []domain.Candidate, experiences map[int64][]domain.Experience, sortKey string, descending bool, today time.Time) {
	var less func(a, b *domain.Candidate) bool

	switch sortKey {
	case SortByFullName:
		less = func(a, b *domain.Candidate) bool {
			return strings.ToLower(a.FullName()) < strings.ToLower(b.FullName())
		}
	case SortByEmail:
		less = func(a, b *domain.Candidate) bool {
			return strings.ToLower(a.Email) < strings.ToLower(b.Email)
		}
	case SortByTotalExperience:
		// All-department total, unlike the department-scoped pass 6.
		years := make(map[int64]float64, len(pool))
		for i := range pool {
			y, err := domain.TotalExperienceYears(experiences[pool[i].ID], nil, today)
			if err != nil {
				y = 0
			}
			years[pool[i].ID] = y
		}
		less = func(a, b *domain.Candidate) bool {
			return years[a.ID] < years[b.ID]
		}
	case SortByAge:
		less = func(a, b *domain.Candidate) bool {
			return a.AgeYears(today) < b.AgeYears(today)
		}
	default:
		return
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if descending {
			return less(&pool[j], &pool[i])
		}
		return less(&pool[i], &pool[j])
	})
}

// Assign links a candidate to a job, enforcing the at-most-one-job rule.
// The per-candidate lock plus the repository's uniqueness constraint close
// the race between two concurrent assignment requests.
func (u *matchingUsecase) Assign(ctx context.Context, jobID, candidateID int64) error {
	unlock := u.assignLocks.lock(candidateID)
	defer unlock()

	job, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return apperror.NotFound("Job opportunity not found")
	}
	candidate, err := u.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return err
	}
	if candidate == nil {
		return apperror.NotFound("Candidate not found")
	}

	assigned, err := u.jobs.IsAssigned(ctx, candidateID)
	if err != nil {
		return err
	}
	if assigned {
		return apperror.New(409, "Candidate is already assigned to a job opportunity", domain.ErrAlreadyAssigned)
	}

	if err := u.jobs.AssignCandidate(ctx, jobID, candidateID); err != nil {
		if err == domain.ErrAlreadyAssigned {
			return apperror.New(409, "Candidate is already assigned to a job opportunity", err)
		}
		return err
	}
	return nil
}

func (u *matchingUsecase) Unassign(ctx context.Context, jobID, candidateID int64) error {
	removed, err := u.jobs.RemoveCandidate(ctx, jobID, candidateID)
	if err != nil {
		return err
	}
	if !removed {
		return apperror.BadRequest("Candidate is not assigned to this job opportunity")
	}
	return nil
}

func (u *matchingUsecase) AssignedCandidates(ctx context.Context, jobID int64) ([]domain.Candidate, error) {
	job, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NotFound("Job opportunity not found")
	}
	return u.jobs.ListAssignedCandidates(ctx, jobID)
}

func keep(pool []domain.Candidate, pred func(*domain.Candidate) bool) []domain.Candidate {
	out := pool[:0]
	for i := range pool {
		if pred(&pool[i]) {
			out = append(out, pool[i])
		}
	}
	return out
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// keyedMutex hands out one mutex per candidate id.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func (k *keyedMutex) lock(id int64) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[int64]*sync.Mutex)
	}
	l, ok := k.locks[id]
	if !ok {
		l = &sync.Mutex{}
		k.locks[id] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
