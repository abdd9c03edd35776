package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go-agency-backoffice/internal/domain"
	"go-agency-backoffice/pkg/apperror"
	"go-agency-backoffice/pkg/logger"
	"go-agency-backoffice/pkg/storage"
)

type documentUsecase struct {
	candidates domain.CandidateRepository
	store      domain.ObjectStore
}

func NewDocumentUsecase(candidates domain.CandidateRepository, store domain.ObjectStore) domain.DocumentUsecase {
	return &documentUsecase{candidates: candidates, store: store}
}

// Download fetches a single stored object by key.
func (u *documentUsecase) Download(ctx context.Context, key string) (io.ReadCloser, string, error) {
	body, contentType, err := u.store.Get(ctx, key)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, "", apperror.NotFound("File not found")
		case errors.Is(err, storage.ErrMissingCredentials):
			return nil, "", apperror.StorageUnavailable("Storage backend is not configured", err)
		default:
			return nil, "", apperror.StorageUnavailable("Failed to fetch file", err)
		}
	}
	return body, contentType, nil
}

// Delete removes a candidate document from storage and clears its key on
// the candidate record. Deleting a document that was never uploaded is a
// not-found error.
func (u *documentUsecase) Delete(ctx context.Context, candidateID int64, kind domain.DocumentKind) error {
	if !kind.Valid() {
		return apperror.BadRequest(fmt.Sprintf("Unknown document kind: %s", kind))
	}

	candidate, err := u.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return fmt.Errorf("failed to fetch candidate %d: %w", candidateID, err)
	}
	if candidate == nil {
		return apperror.NotFound("Candidate not found")
	}

	key := documentKey(candidate, kind)
	if key == "" {
		return apperror.NotFound("Document does not exist")
	}

	if err := u.store.Delete(ctx, key); err != nil {
		return apperror.StorageUnavailable("Failed to delete file", err)
	}
	if err := u.candidates.ClearDocument(ctx, candidateID, kind); err != nil {
		// The object is already gone; the stale key is the lesser failure.
		logger.Log.Error("failed to clear document key", "candidate_id", candidateID, "kind", string(kind), "error", err)
		return fmt.Errorf("failed to clear document key: %w", err)
	}
	logger.Log.Info("candidate document deleted", "candidate_id", candidateID, "kind", string(kind), "key", key)
	return nil
}

func documentKey(c *domain.Candidate, kind domain.DocumentKind) string {
	switch kind {
	case domain.DocumentResume:
		return c.ResumeKey
	case domain.DocumentPersonalImage:
		return c.PersonalImageKey
	case domain.DocumentIDCopy:
		return c.NationalIDCopyKey
	case domain.DocumentPassportCopy:
		return c.PassportCopyKey
	}
	return ""
}
