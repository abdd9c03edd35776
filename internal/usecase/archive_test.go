package usecase_test

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"testing"

	"go-agency-backoffice/internal/domain"
	"go-agency-backoffice/internal/usecase"
	"go-agency-backoffice/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExportFiles(t *testing.T) {
	newArchive := func(store domain.ObjectStore) (*usecase.ArchiveUsecase, *MockCandidateRepo) {
		candidates := new(MockCandidateRepo)
		return usecase.NewArchiveUsecase(candidates, store), candidates
	}

	t.Run("Streams every stored file with the prefix stripped", func(t *testing.T) {
		store := newFakeStore()
		store.put("candidates/rania-haddad_10/resume.pdf", "application/pdf", []byte("resume-bytes"))
		store.put("candidates/rania-haddad_10/images/profile_image.jpg", "image/jpeg", []byte("jpeg-bytes"))
		// Directory placeholder and a foreign candidate's file must not leak in.
		store.put("candidates/rania-haddad_10/images/", "", nil)
		store.put("candidates/omar-said_11/resume.pdf", "application/pdf", []byte("other"))

		uc, candidates := newArchive(store)
		c := dossierCandidate()
		candidates.On("GetByID", mock.Anything, c.ID).Return(c, nil)

		archive, err := uc.ExportFiles(context.Background(), 10)
		require.NoError(t, err)
		assert.Equal(t, "Rania Haddad_files.zip", archive.Filename)

		var buf bytes.Buffer
		require.NoError(t, archive.WriteZip(context.Background(), &buf))

		zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
		require.NoError(t, err)
		require.Len(t, zr.File, 2)

		contents := make(map[string]string, len(zr.File))
		for _, f := range zr.File {
			rc, err := f.Open()
			require.NoError(t, err)
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			rc.Close()
			contents[f.Name] = string(data)
		}
		assert.Equal(t, "resume-bytes", contents["resume.pdf"])
		assert.Equal(t, "jpeg-bytes", contents["images/profile_image.jpg"])
	})

	t.Run("Empty directory is reported before any bytes stream", func(t *testing.T) {
		uc, candidates := newArchive(newFakeStore())
		c := dossierCandidate()
		candidates.On("GetByID", mock.Anything, c.ID).Return(c, nil)

		_, err := uc.ExportFiles(context.Background(), 10)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Missing candidate is not found", func(t *testing.T) {
		uc, candidates := newArchive(newFakeStore())
		candidates.On("GetByID", mock.Anything, int64(99)).Return(nil, nil)

		_, err := uc.ExportFiles(context.Background(), 99)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Stops streaming on cancellation", func(t *testing.T) {
		store := newFakeStore()
		store.put("candidates/rania-haddad_10/resume.pdf", "application/pdf", []byte("resume-bytes"))

		uc, candidates := newArchive(store)
		c := dossierCandidate()
		candidates.On("GetByID", mock.Anything, c.ID).Return(c, nil)

		archive, err := uc.ExportFiles(context.Background(), 10)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var buf bytes.Buffer
		assert.Error(t, archive.WriteZip(ctx, &buf))
	})
}
