package domain

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadyAssigned is returned when a candidate already belongs to a job
// opportunity; a candidate holds at most one assignment at a time.
var ErrAlreadyAssigned = errors.New("candidate is already assigned to a job opportunity")

// GenderAny disables the gender pass of the eligibility filter.
const GenderAny = "Any"

type JobOpportunity struct {
	ID             int64  `json:"id"`
	JobTitle       string `json:"job_title" validate:"required"`
	JobDescription string `json:"job_description"`
	CompanyName    string `json:"company_name"`

	// Eligibility criteria. Membership checks against the criteria sets are
	// literal: an empty set matches no candidate (it does not mean
	// "unconstrained"); see the eligibility filter.
	Gender                   string   `json:"gender" validate:"required,oneof=M F Any"`
	MinimumAge               int      `json:"minimum_age" validate:"gte=0"`
	MaximumAge               int      `json:"maximum_age" validate:"gtefield=MinimumAge"`
	Nationalities            []string `json:"nationalities"`
	AcceptedDegrees          []string `json:"accepted_degrees"`
	FieldsOfStudy            []string `json:"fields_of_study"`
	MinimumYearsOfExperience int      `json:"minimum_years_of_experience" validate:"gte=0"`
	Departments              []string `json:"departments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type JobRepository interface {
	GetByID(ctx context.Context, id int64) (*JobOpportunity, error)
	List(ctx context.Context, limit, offset int) ([]JobOpportunity, int64, error)
	ListAssignedCandidates(ctx context.Context, jobID int64) ([]Candidate, error)
	// AssignCandidate links the candidate to the job. Implementations must
	// report ErrAlreadyAssigned when the candidate holds any assignment.
	AssignCandidate(ctx context.Context, jobID, candidateID int64) error
	// RemoveCandidate unlinks the pair and reports whether a link existed.
	RemoveCandidate(ctx context.Context, jobID, candidateID int64) (bool, error)
	// IsAssigned reports whether the candidate belongs to any job.
	IsAssigned(ctx context.Context, candidateID int64) (bool, error)
}
