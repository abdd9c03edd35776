package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-agency-backoffice/internal/delivery/http/response"
	"go-agency-backoffice/internal/domain"
	"go-agency-backoffice/pkg/apperror"
)

type CandidateHandler struct {
	candidates domain.CandidateRepository
}

func NewCandidateHandler(r *gin.RouterGroup, candidates domain.CandidateRepository) {
	handler := &CandidateHandler{candidates: candidates}

	group := r.Group("/candidates")
	{
		group.GET("", handler.List)
		group.GET("/:id", handler.GetByID)
	}
}

// List godoc
// @Summary      List candidates
// @Description  Paginated listing of all candidates
// @Tags         candidates
// @Produce      json
// @Param        limit   query  int  false  "Page size"    default(20)
// @Param        offset  query  int  false  "Page offset"  default(0)
// @Success      200  {object}  response.Response{data=[]domain.Candidate}
// @Failure      401  {object}  response.Response
// @Router       /candidates [get]
// @Security     BearerAuth
func (h *CandidateHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	candidates, total, err := h.candidates.List(c, limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	response.Paginated(c, http.StatusOK, "Candidates", candidates, response.Meta{
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// GetByID godoc
// @Summary      Get candidate
// @Description  Fetch one candidate by ID
// @Tags         candidates
// @Produce      json
// @Param        id  path  int  true  "Candidate ID"
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid candidate ID"))
		return
	}

	candidate, err := h.candidates.GetByID(c, id)
	if err != nil {
		c.Error(err)
		return
	}
	if candidate == nil {
		c.Error(apperror.NotFound("Candidate not found"))
		return
	}

	response.Success(c, http.StatusOK, "Candidate", candidate)
}
