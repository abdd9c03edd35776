package domain

import (
	"context"
	"io"
)

// MatchingUsecase drives the compatible-candidates screen and job
// assignment actions.
type MatchingUsecase interface {
	CompatibleCandidates(ctx context.Context, jobID int64, sortKey string, descending bool) ([]Candidate, error)
	Assign(ctx context.Context, jobID, candidateID int64) error
	Unassign(ctx context.Context, jobID, candidateID int64) error
	AssignedCandidates(ctx context.Context, jobID int64) ([]Candidate, error)
}

// DocumentUsecase handles single stored files: downloads by key and the
// per-document deletion commands.
type DocumentUsecase interface {
	Download(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, candidateID int64, kind DocumentKind) error
}
