package usecase

import (
	"context"
	"fmt"

	"go-agency-backoffice/internal/domain"
	"go-agency-backoffice/pkg/apperror"
	"go-agency-backoffice/pkg/logger"
)

// CandidateDossier is the normalized intermediate representation shared by
// the PDF, spreadsheet and vCard encoders. References are derived from
// experience rows carrying a reference contact.
type CandidateDossier struct {
	Candidate       domain.Candidate
	Educations      []domain.Education
	Experiences     []domain.Experience
	Licenses        []domain.License
	TrainingCourses []domain.TrainingCourse
	References      []domain.Reference
}

// ExportUsecase renders a candidate's record into portable document
// formats. Rendering never fails on missing optional data; a missing
// candidate is a not-found error before any encoder runs.
type ExportUsecase struct {
	candidates domain.CandidateRepository
	store      domain.ObjectStore
	clock      domain.Clock
	logoPath   string
}

func NewExportUsecase(candidates domain.CandidateRepository, store domain.ObjectStore, clock domain.Clock, logoPath string) *ExportUsecase {
	if clock == nil {
		clock = domain.SystemClock
	}
	return &ExportUsecase{
		candidates: candidates,
		store:      store,
		clock:      clock,
		logoPath:   logoPath,
	}
}

// buildDossier assembles the IR. Related collections degrade to empty
// sections when a fetch fails; the export still goes out.
func (u *ExportUsecase) buildDossier(ctx context.Context, candidateID int64) (*CandidateDossier, error) {
	candidate, err := u.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate %d: %w", candidateID, err)
	}
	if candidate == nil {
		return nil, apperror.NotFound("Candidate not found")
	}

	d := &CandidateDossier{Candidate: *candidate}

	if d.Educations, err = u.candidates.ListEducations(ctx, candidateID); err != nil {
		logger.Log.Warn("educations unavailable for export", "candidate_id", candidateID, "error", err)
		d.Educations = nil
	}
	if d.Experiences, err = u.candidates.ListExperiences(ctx, candidateID); err != nil {
		logger.Log.Warn("experiences unavailable for export", "candidate_id", candidateID, "error", err)
		d.Experiences = nil
	}
	if d.Licenses, err = u.candidates.ListLicenses(ctx, candidateID); err != nil {
		logger.Log.Warn("licenses unavailable for export", "candidate_id", candidateID, "error", err)
		d.Licenses = nil
	}
	if d.TrainingCourses, err = u.candidates.ListTrainingCourses(ctx, candidateID); err != nil {
		logger.Log.Warn("training courses unavailable for export", "candidate_id", candidateID, "error", err)
		d.TrainingCourses = nil
	}

	for i := range d.Experiences {
		exp := &d.Experiences[i]
		if exp.ReferenceName == "" {
			continue
		}
		d.References = append(d.References, domain.Reference{
			Name:        exp.ReferenceName,
			Position:    exp.ReferenceJobTitle,
			ContactInfo: exp.ReferenceContactInfo,
			Company:     exp.CompanyName,
		})
	}

	return d, nil
}

// RenderCV produces the paginated PDF curriculum vitae and its attachment
// filename.
func (u *ExportUsecase) RenderCV(ctx context.Context, candidateID int64) ([]byte, string, error) {
	dossier, err := u.buildDossier(ctx, candidateID)
	if err != nil {
		return nil, "", err
	}
	data, err := u.renderPDF(ctx, dossier)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("%s_CV.pdf", dossier.Candidate.FullName()), nil
}

// RenderSheet produces the tabular XLSX dump and its attachment filename.
func (u *ExportUsecase) RenderSheet(ctx context.Context, candidateID int64) ([]byte, string, error) {
	dossier, err := u.buildDossier(ctx, candidateID)
	if err != nil {
		return nil, "", err
	}
	data, err := u.renderSheet(ctx, dossier)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("candidate_%d_data.xlsx", dossier.Candidate.ID), nil
}

// RenderVCard produces the vCard payload and the raw, possibly non-ASCII,
// filename; the HTTP layer derives both Content-Disposition forms from it.
func (u *ExportUsecase) RenderVCard(ctx context.Context, candidateID int64) ([]byte, string, error) {
	candidate, err := u.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch candidate %d: %w", candidateID, err)
	}
	if candidate == nil {
		return nil, "", apperror.NotFound("Candidate not found")
	}
	data, err := renderVCard(candidate)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("%s.vcf", candidate.FullName()), nil
}
