package usecase

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"strings"

	"go-agency-backoffice/internal/domain"
	"go-agency-backoffice/pkg/apperror"
	"go-agency-backoffice/pkg/logger"
	"go-agency-backoffice/pkg/textutil"
)

// ArchiveUsecase bundles every stored object under a candidate's directory
// into a single ZIP download.
type ArchiveUsecase struct {
	candidates domain.CandidateRepository
	store      domain.ObjectStore
}

func NewArchiveUsecase(candidates domain.CandidateRepository, store domain.ObjectStore) *ArchiveUsecase {
	return &ArchiveUsecase{candidates: candidates, store: store}
}

// CandidateArchive is a prepared export: the key listing is resolved up
// front so emptiness surfaces before any response bytes go out, object
// bodies are fetched one at a time during WriteZip.
type CandidateArchive struct {
	Filename string

	prefix string
	keys   []string
	store  domain.ObjectStore
}

// ExportFiles lists the candidate's storage directory and prepares the
// archive. Returns a not-found error when the candidate does not exist and
// an empty-result error when the directory holds no objects.
func (u *ArchiveUsecase) ExportFiles(ctx context.Context, candidateID int64) (*CandidateArchive, error) {
	candidate, err := u.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate %d: %w", candidateID, err)
	}
	if candidate == nil {
		return nil, apperror.NotFound("Candidate not found")
	}

	prefix := textutil.CandidateDirectory(candidate.FullName(), candidate.ID) + "/"

	var keys []string
	err = u.store.List(ctx, prefix, func(obj domain.ObjectInfo) error {
		// Directory placeholder objects carry no content.
		if strings.HasSuffix(obj.Key, "/") {
			return nil
		}
		keys = append(keys, obj.Key)
		return nil
	})
	if err != nil {
		return nil, apperror.StorageUnavailable("Failed to list candidate files", err)
	}
	if len(keys) == 0 {
		return nil, apperror.EmptyResult("Candidate has no stored files")
	}

	return &CandidateArchive{
		Filename: fmt.Sprintf("%s_files.zip", candidate.FullName()),
		prefix:   prefix,
		keys:     keys,
		store:    u.store,
	}, nil
}

// WriteZip streams the archive to w. Entries are named by their key with
// the candidate directory prefix stripped, so nested keys keep their
// relative paths. Object bodies are copied straight from storage without
// buffering whole files.
func (a *CandidateArchive) WriteZip(ctx context.Context, w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, key := range a.keys {
		if err := ctx.Err(); err != nil {
			zw.Close()
			return err
		}
		if err := a.writeEntry(ctx, zw, key); err != nil {
			zw.Close()
			return fmt.Errorf("failed to archive %s: %w", key, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}

func (a *CandidateArchive) writeEntry(ctx context.Context, zw *zip.Writer, key string) error {
	body, _, err := a.store.Get(ctx, key)
	if err != nil {
		return err
	}
	defer body.Close()

	name := strings.TrimPrefix(key, a.prefix)
	entry, err := zw.CreateHeader(&zip.FileHeader{
		Name:   name,
		Method: zip.Deflate,
	})
	if err != nil {
		return err
	}
	if _, err := io.Copy(entry, body); err != nil {
		return err
	}
	logger.Log.Debug("archived candidate file", "key", key, "entry", name)
	return nil
}
