package v1

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-agency-backoffice/internal/delivery/http/response"
	"go-agency-backoffice/internal/domain"
	"go-agency-backoffice/internal/usecase"
	"go-agency-backoffice/pkg/apperror"
	"go-agency-backoffice/pkg/logger"
	"go-agency-backoffice/pkg/textutil"
)

type ExportHandler struct {
	export    *usecase.ExportUsecase
	archive   *usecase.ArchiveUsecase
	documents domain.DocumentUsecase
}

func NewExportHandler(r *gin.RouterGroup, export *usecase.ExportUsecase, archive *usecase.ArchiveUsecase, documents domain.DocumentUsecase) {
	handler := &ExportHandler{export: export, archive: archive, documents: documents}

	candidates := r.Group("/candidates/:id")
	{
		candidates.GET("/cv", handler.DownloadCV)
		candidates.GET("/sheet", handler.DownloadSheet)
		candidates.GET("/vcard", handler.DownloadVCard)
		candidates.GET("/files", handler.DownloadArchive)
		candidates.DELETE("/documents/:kind", handler.DeleteDocument)
	}
	r.GET("/files", handler.DownloadFile)
}

// DownloadCV godoc
// @Summary      Download candidate CV
// @Description  Renders the candidate record as a paginated PDF curriculum vitae
// @Tags         exports
// @Produce      application/pdf
// @Param        id  path  int  true  "Candidate ID"
// @Success      200  {file}    file
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id}/cv [get]
// @Security     BearerAuth
func (h *ExportHandler) DownloadCV(c *gin.Context) {
	id, ok := candidateParam(c)
	if !ok {
		return
	}

	data, filename, err := h.export.RenderCV(c, id)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", textutil.ContentDisposition(filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// DownloadSheet godoc
// @Summary      Download candidate data sheet
// @Description  Renders the candidate record as an XLSX workbook with document download links
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id  path  int  true  "Candidate ID"
// @Success      200  {file}    file
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id}/sheet [get]
// @Security     BearerAuth
func (h *ExportHandler) DownloadSheet(c *gin.Context) {
	id, ok := candidateParam(c)
	if !ok {
		return
	}

	data, filename, err := h.export.RenderSheet(c, id)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// DownloadVCard godoc
// @Summary      Download candidate vCard
// @Description  Renders the candidate's contact details as a vCard 4.0 file
// @Tags         exports
// @Produce      text/vcard
// @Param        id  path  int  true  "Candidate ID"
// @Success      200  {file}    file
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id}/vcard [get]
// @Security     BearerAuth
func (h *ExportHandler) DownloadVCard(c *gin.Context) {
	id, ok := candidateParam(c)
	if !ok {
		return
	}

	data, filename, err := h.export.RenderVCard(c, id)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", textutil.ContentDisposition(filename))
	c.Data(http.StatusOK, "text/vcard; charset=utf-8", data)
}

// DownloadArchive godoc
// @Summary      Download candidate file archive
// @Description  Streams every stored file of the candidate as a single ZIP
// @Tags         exports
// @Produce      application/zip
// @Param        id  path  int  true  "Candidate ID"
// @Success      200  {file}    file
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id}/files [get]
// @Security     BearerAuth
func (h *ExportHandler) DownloadArchive(c *gin.Context) {
	id, ok := candidateParam(c)
	if !ok {
		return
	}

	archive, err := h.archive.ExportFiles(c, id)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", textutil.ContentDisposition(archive.Filename))
	c.Header("Content-Type", "application/zip")
	c.Status(http.StatusOK)

	// Headers are already out; a mid-stream failure can only truncate the
	// body, which leaves the archive without its central directory and
	// unreadable by any ZIP reader.
	if err := archive.WriteZip(c.Request.Context(), c.Writer); err != nil {
		logger.Log.Error("archive stream aborted", "candidate_id", id, "error", err)
	}
}

// DownloadFile godoc
// @Summary      Download a stored file
// @Description  Streams one stored object by its key
// @Tags         exports
// @Produce      application/octet-stream
// @Param        key  query  string  true  "Object key"
// @Success      200  {file}    file
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /files [get]
// @Security     BearerAuth
func (h *ExportHandler) DownloadFile(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.Error(apperror.BadRequest("Missing file key"))
		return
	}

	body, contentType, err := h.documents.Download(c, key)
	if err != nil {
		c.Error(err)
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", textutil.ContentDisposition(keyBasename(key)))
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, body); err != nil {
		logger.Log.Error("file stream aborted", "key", key, "error", err)
	}
}

// DeleteDocument godoc
// @Summary      Delete a candidate document
// @Description  Removes the stored file and clears its reference on the candidate
// @Tags         exports
// @Produce      json
// @Param        id    path  int     true  "Candidate ID"
// @Param        kind  path  string  true  "Document kind"  Enums(resume, personal_image, national_id_copy, passport_copy)
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id}/documents/{kind} [delete]
// @Security     BearerAuth
func (h *ExportHandler) DeleteDocument(c *gin.Context) {
	id, ok := candidateParam(c)
	if !ok {
		return
	}

	kind := domain.DocumentKind(c.Param("kind"))
	if err := h.documents.Delete(c, id, kind); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Document deleted", nil)
}

func candidateParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid candidate ID"))
		return 0, false
	}
	return id, true
}

func keyBasename(key string) string {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '/' {
			return key[i+1:]
		}
	}
	return key
}
