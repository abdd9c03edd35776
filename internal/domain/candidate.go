package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Common domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrNegativeDuration = errors.New("experience end date precedes start date")
)

// Gender codes stored on candidates. Jobs additionally accept GenderAny.
const (
	GenderMale   = "M"
	GenderFemale = "F"
)

type Candidate struct {
	ID                     int64      `json:"id"`
	Email                  string     `json:"email" validate:"required,email"`
	FirstName              string     `json:"first_name"`
	SecondName             string     `json:"second_name"`
	ThirdName              string     `json:"third_name"`
	LastName               string     `json:"last_name"`
	Gender                 string     `json:"gender" validate:"omitempty,oneof=M F"`
	Birthday               *time.Time `json:"birthday"`
	Nationality            string     `json:"nationality"`
	Country                string     `json:"country"` // display name, e.g. "Qatar"
	Address                string     `json:"address"`
	CallPhoneNumber        string     `json:"call_phone_number"`
	WhatsappPhoneNumber    string     `json:"whatsapp_phone_number"`
	NationalIDNumber       string     `json:"national_id_number"`
	PassportID             string     `json:"passport_id"`
	PassportExpirationDate *time.Time `json:"passport_expiration_date"`

	// Object keys under the candidate's storage directory. Empty means the
	// document was never uploaded or has been deleted.
	PersonalImageKey  string `json:"personal_image_key"`
	NationalIDCopyKey string `json:"national_id_copy_key"`
	PassportCopyKey   string `json:"passport_copy_key"`
	ResumeKey         string `json:"resume_key"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName joins the non-empty name parts with single spaces.
func (c *Candidate) FullName() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{c.FirstName, c.SecondName, c.ThirdName, c.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// AgeYears returns the candidate's age in whole years at the reference date,
// or 0 when the birthday is unknown.
func (c *Candidate) AgeYears(at time.Time) int {
	if c.Birthday == nil {
		return 0
	}
	b := *c.Birthday
	years := at.Year() - b.Year()
	// Birthday not yet reached this year.
	if at.Month() < b.Month() || (at.Month() == b.Month() && at.Day() < b.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

type Education struct {
	ID                  int64      `json:"id"`
	CandidateID         int64      `json:"candidate_id"`
	Institution         string     `json:"institution"`
	InstitutionCountry  string     `json:"institution_country"`
	Degree              string     `json:"degree"`
	FieldOfStudy        string     `json:"field_of_study"`
	StartDate           time.Time  `json:"start_date"`
	EndDate             *time.Time `json:"end_date"`
	GPA                 *float64   `json:"gpa"`
	CertificationKey    string     `json:"certification_key"`
	TranscriptKey       string     `json:"transcript_key"`
}

type Experience struct {
	ID                   int64      `json:"id"`
	CandidateID          int64      `json:"candidate_id"`
	CompanyName          string     `json:"company_name"`
	CompanyLocation      string     `json:"company_location"`
	JobTitle             string     `json:"job_title"`
	Departments          []string   `json:"departments"`
	StartDate            time.Time  `json:"start_date"`
	EndDate              *time.Time `json:"end_date"`
	JobResponsibilities  string     `json:"job_responsibilities"`
	ReferenceName        string     `json:"reference_name"`
	ReferenceJobTitle    string     `json:"reference_job_title"`
	ReferenceContactInfo string     `json:"reference_contact_info"`
	CertificationKey     string     `json:"certification_key"`
}

// TagsAny reports whether the experience is tagged with at least one of the
// given departments.
func (e *Experience) TagsAny(departments []string) bool {
	for _, want := range departments {
		for _, have := range e.Departments {
			if have == want {
				return true
			}
		}
	}
	return false
}

type License struct {
	ID              int64      `json:"id"`
	CandidateID     int64      `json:"candidate_id"`
	LicenseName     string     `json:"license_name"`
	LicenseNumber   string     `json:"license_number"`
	ProviderName    string     `json:"provider_name"`
	ProviderCountry string     `json:"provider_country"`
	IssuedDate      time.Time  `json:"issued_date"`
	ExpiryDate      *time.Time `json:"expiry_date"`
	LicenseCopyKey  string     `json:"license_copy_key"`
}

// IsExpired reports whether the license expiry date has passed at the
// reference date. Licenses without an expiry never expire.
func (l *License) IsExpired(at time.Time) bool {
	return l.ExpiryDate != nil && at.After(*l.ExpiryDate)
}

type TrainingCourse struct {
	ID               int64      `json:"id"`
	CandidateID      int64      `json:"candidate_id"`
	CourseName       string     `json:"course_name"`
	Institution      string     `json:"institution"`
	Location         string     `json:"location"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	Description      string     `json:"description"`
	CertificationKey string     `json:"certification_key"`
}

// Reference is derived from experience records carrying a non-empty
// reference name; it is never stored on its own.
type Reference struct {
	Name        string `json:"name"`
	Position    string `json:"position"`
	ContactInfo string `json:"contact_info"`
	Company     string `json:"company"`
}

// TotalExperienceYears sums the duration of the given experiences in years.
// Open-ended experiences run until now. Duration per record is counted in
// calendar months, the day of month is ignored. When departments is
// non-empty only experiences tagging at least one of them are summed; an
// empty filter sums everything. Overlapping ranges are summed without
// overlap correction.
func TotalExperienceYears(experiences []Experience, departments []string, now time.Time) (float64, error) {
	totalMonths := 0
	for i := range experiences {
		exp := &experiences[i]
		if len(departments) > 0 && !exp.TagsAny(departments) {
			continue
		}
		end := now
		if exp.EndDate != nil {
			end = *exp.EndDate
		}
		months := (end.Year()-exp.StartDate.Year())*12 + int(end.Month()) - int(exp.StartDate.Month())
		if months < 0 {
			return 0, fmt.Errorf("experience %d: %w", exp.ID, ErrNegativeDuration)
		}
		totalMonths += months
	}
	return float64(totalMonths) / 12.0, nil
}

// CandidateRelations bundles every child collection of one candidate, in
// repository order (most recent first).
type CandidateRelations struct {
	Educations      []Education
	Experiences     []Experience
	Licenses        []License
	TrainingCourses []TrainingCourse
}

type CandidateRepository interface {
	GetByID(ctx context.Context, id int64) (*Candidate, error)
	List(ctx context.Context, limit, offset int) ([]Candidate, int64, error)
	// ListUnassigned returns candidates not assigned to any job opportunity.
	ListUnassigned(ctx context.Context) ([]Candidate, error)
	ListExperiences(ctx context.Context, candidateID int64) ([]Experience, error)
	ListEducations(ctx context.Context, candidateID int64) ([]Education, error)
	ListLicenses(ctx context.Context, candidateID int64) ([]License, error)
	ListTrainingCourses(ctx context.Context, candidateID int64) ([]TrainingCourse, error)
	// ClearDocument empties the object-key column for the given document kind.
	ClearDocument(ctx context.Context, candidateID int64, kind DocumentKind) error
}
