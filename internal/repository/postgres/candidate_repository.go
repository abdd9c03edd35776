package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-agency-backoffice/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const candidateColumns = `id, email, first_name, second_name, third_name, last_name, gender, birthday,
	nationality, country, address, call_phone_number, whatsapp_phone_number,
	national_id_number, passport_id, passport_expiration_date,
	personal_image_key, national_id_copy_key, passport_copy_key, resume_key,
	created_at, updated_at`

type candidateRepo struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

func scanCandidate(row pgx.Row, c *domain.Candidate) error {
	return row.Scan(
		&c.ID, &c.Email, &c.FirstName, &c.SecondName, &c.ThirdName, &c.LastName, &c.Gender, &c.Birthday,
		&c.Nationality, &c.Country, &c.Address, &c.CallPhoneNumber, &c.WhatsappPhoneNumber,
		&c.NationalIDNumber, &c.PassportID, &c.PassportExpirationDate,
		&c.PersonalImageKey, &c.NationalIDCopyKey, &c.PassportCopyKey, &c.ResumeKey,
		&c.CreatedAt, &c.UpdatedAt,
	)
}

func (r *candidateRepo) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	var c domain.Candidate
	if err := scanCandidate(r.db.QueryRow(ctx, query, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *candidateRepo) List(ctx context.Context, limit, offset int) ([]domain.Candidate, int64, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		if err := scanCandidate(rows, &c); err != nil {
			return nil, 0, err
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&total); err != nil {
		return nil, 0, err
	}

	return candidates, total, nil
}

func (r *candidateRepo) ListUnassigned(ctx context.Context) ([]domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates c
		WHERE NOT EXISTS (SELECT 1 FROM job_candidates jc WHERE jc.candidate_id = c.id)
		ORDER BY c.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		if err := scanCandidate(rows, &c); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (r *candidateRepo) ListExperiences(ctx context.Context, candidateID int64) ([]domain.Experience, error) {
	query := `SELECT id, candidate_id, company_name, company_location, job_title, departments,
			start_date, end_date, job_responsibilities, reference_name, reference_job_title,
			reference_contact_info, certification_key
		FROM experiences WHERE candidate_id = $1 ORDER BY start_date DESC`

	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var experiences []domain.Experience
	for rows.Next() {
		var e domain.Experience
		if err := rows.Scan(
			&e.ID, &e.CandidateID, &e.CompanyName, &e.CompanyLocation, &e.JobTitle, pq.Array(&e.Departments),
			&e.StartDate, &e.EndDate, &e.JobResponsibilities, &e.ReferenceName, &e.ReferenceJobTitle,
			&e.ReferenceContactInfo, &e.CertificationKey,
		); err != nil {
			return nil, err
		}
		experiences = append(experiences, e)
	}
	return experiences, rows.Err()
}

func (r *candidateRepo) ListEducations(ctx context.Context, candidateID int64) ([]domain.Education, error) {
	query := `SELECT id, candidate_id, institution, institution_country, degree, field_of_study,
			start_date, end_date, gpa, certification_key, transcript_key
		FROM educations WHERE candidate_id = $1 ORDER BY start_date DESC`

	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var educations []domain.Education
	for rows.Next() {
		var e domain.Education
		if err := rows.Scan(
			&e.ID, &e.CandidateID, &e.Institution, &e.InstitutionCountry, &e.Degree, &e.FieldOfStudy,
			&e.StartDate, &e.EndDate, &e.GPA, &e.CertificationKey, &e.TranscriptKey,
		); err != nil {
			return nil, err
		}
		educations = append(educations, e)
	}
	return educations, rows.Err()
}

func (r *candidateRepo) ListLicenses(ctx context.Context, candidateID int64) ([]domain.License, error) {
	query := `SELECT id, candidate_id, license_name, license_number, provider_name, provider_country,
			issued_date, expiry_date, license_copy_key
		FROM licenses WHERE candidate_id = $1 ORDER BY issued_date DESC`

	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var licenses []domain.License
	for rows.Next() {
		var l domain.License
		if err := rows.Scan(
			&l.ID, &l.CandidateID, &l.LicenseName, &l.LicenseNumber, &l.ProviderName, &l.ProviderCountry,
			&l.IssuedDate, &l.ExpiryDate, &l.LicenseCopyKey,
		); err != nil {
			return nil, err
		}
		licenses = append(licenses, l)
	}
	return licenses, rows.Err()
}

func (r *candidateRepo) ListTrainingCourses(ctx context.Context, candidateID int64) ([]domain.TrainingCourse, error) {
	query := `SELECT id, candidate_id, course_name, institution, location, start_date, end_date,
			description, certification_key
		FROM training_courses WHERE candidate_id = $1 ORDER BY start_date DESC`

	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []domain.TrainingCourse
	for rows.Next() {
		var t domain.TrainingCourse
		if err := rows.Scan(
			&t.ID, &t.CandidateID, &t.CourseName, &t.Institution, &t.Location, &t.StartDate, &t.EndDate,
			&t.Description, &t.CertificationKey,
		); err != nil {
			return nil, err
		}
		courses = append(courses, t)
	}
	return courses, rows.Err()
}

func (r *candidateRepo) ClearDocument(ctx context.Context, candidateID int64, kind domain.DocumentKind) error {
	var column string
	switch kind {
	case domain.DocumentResume:
		column = "resume_key"
	case domain.DocumentPersonalImage:
		column = "personal_image_key"
	case domain.DocumentIDCopy:
		column = "national_id_copy_key"
	case domain.DocumentPassportCopy:
		column = "passport_copy_key"
	default:
		return fmt.Errorf("unknown document kind: %s", kind)
	}

	// column comes from the switch above, never from input.
	query := fmt.Sprintf(`UPDATE candidates SET %s = '', updated_at = NOW() WHERE id = $1`, column)
	tag, err := r.db.Exec(ctx, query, candidateID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
