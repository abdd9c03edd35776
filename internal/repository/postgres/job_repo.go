package postgres

import (
	"context"
	"errors"

	"go-agency-backoffice/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

const jobColumns = `id, job_title, job_description, company_name, gender, minimum_age, maximum_age,
	nationalities, accepted_degrees, fields_of_study, minimum_years_of_experience, departments,
	created_at, updated_at`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func scanJob(row pgx.Row, j *domain.JobOpportunity) error {
	return row.Scan(
		&j.ID, &j.JobTitle, &j.JobDescription, &j.CompanyName, &j.Gender, &j.MinimumAge, &j.MaximumAge,
		pq.Array(&j.Nationalities), pq.Array(&j.AcceptedDegrees), pq.Array(&j.FieldsOfStudy),
		&j.MinimumYearsOfExperience, pq.Array(&j.Departments),
		&j.CreatedAt, &j.UpdatedAt,
	)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.JobOpportunity, error) {
	query := `SELECT ` + jobColumns + ` FROM job_opportunities WHERE id = $1`
	var job domain.JobOpportunity
	if err := scanJob(r.db.QueryRow(ctx, query, id), &job); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) List(ctx context.Context, limit, offset int) ([]domain.JobOpportunity, int64, error) {
	query := `SELECT ` + jobColumns + ` FROM job_opportunities ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.JobOpportunity
	for rows.Next() {
		var job domain.JobOpportunity
		if err := scanJob(rows, &job); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_opportunities`).Scan(&total); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *jobRepo) ListAssignedCandidates(ctx context.Context, jobID int64) ([]domain.Candidate, error) {
	query := `SELECT c.id, c.email, c.first_name, c.second_name, c.third_name, c.last_name, c.gender, c.birthday,
			c.nationality, c.country, c.address, c.call_phone_number, c.whatsapp_phone_number,
			c.national_id_number, c.passport_id, c.passport_expiration_date,
			c.personal_image_key, c.national_id_copy_key, c.passport_copy_key, c.resume_key,
			c.created_at, c.updated_at
		FROM candidates c
		JOIN job_candidates jc ON jc.candidate_id = c.id
		WHERE jc.job_opportunity_id = $1
		ORDER BY jc.created_at DESC`

	rows, err := r.db.Query(ctx, query, jobID)
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

// AssignCandidate relies on the UNIQUE constraint over candidate_id: one
// assignment per candidate, enforced at the database regardless of how
// many processes race.
func (r *jobRepo) AssignCandidate(ctx context.Context, jobID, candidateID int64) error {
	query := `INSERT INTO job_candidates (job_opportunity_id, candidate_id, created_at) VALUES ($1, $2, NOW())`
	_, err := r.db.Exec(ctx, query, jobID, candidateID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrAlreadyAssigned
		}
		return err
	}
	return nil
}

func (r *jobRepo) RemoveCandidate(ctx context.Context, jobID, candidateID int64) (bool, error) {
	query := `DELETE FROM job_candidates WHERE job_opportunity_id = $1 AND candidate_id = $2`
	tag, err := r.db.Exec(ctx, query, jobID, candidateID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *jobRepo) IsAssigned(ctx context.Context, candidateID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM job_candidates WHERE candidate_id = $1)`
	var assigned bool
	if err := r.db.QueryRow(ctx, query, candidateID).Scan(&assigned); err != nil {
		return false, err
	}
	return assigned, nil
}
