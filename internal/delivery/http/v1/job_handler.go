package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-agency-backoffice/internal/delivery/http/response"
	"go-agency-backoffice/internal/domain"
	"go-agency-backoffice/pkg/apperror"
)

type JobHandler struct {
	jobs     domain.JobRepository
	matching domain.MatchingUsecase
}

func NewJobHandler(r *gin.RouterGroup, jobs domain.JobRepository, matching domain.MatchingUsecase) {
	handler := &JobHandler{jobs: jobs, matching: matching}

	group := r.Group("/jobs")
	{
		group.GET("", handler.List)
		group.GET("/:id", handler.GetByID)
		group.GET("/:id/compatible-candidates", handler.CompatibleCandidates)
		group.GET("/:id/candidates", handler.AssignedCandidates)
		group.POST("/:id/candidates/:candidateID", handler.Assign)
		group.DELETE("/:id/candidates/:candidateID", handler.Unassign)
	}
}

// List godoc
// @Summary      List job opportunities
// @Tags         jobs
// @Produce      json
// @Param        limit   query  int  false  "Page size"    default(20)
// @Param        offset  query  int  false  "Page offset"  default(0)
// @Success      200  {object}  response.Response{data=[]domain.JobOpportunity}
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	jobs, total, err := h.jobs.List(c, limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	response.Paginated(c, http.StatusOK, "Job opportunities", jobs, response.Meta{
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// GetByID godoc
// @Summary      Get job opportunity
// @Tags         jobs
// @Produce      json
// @Param        id  path  int  true  "Job opportunity ID"
// @Success      200  {object}  response.Response{data=domain.JobOpportunity}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	job, err := h.jobs.GetByID(c, id)
	if err != nil {
		c.Error(err)
		return
	}
	if job == nil {
		c.Error(apperror.NotFound("Job opportunity not found"))
		return
	}

	response.Success(c, http.StatusOK, "Job opportunity", job)
}

// CompatibleCandidates godoc
// @Summary      List compatible candidates
// @Description  Unassigned candidates passing every eligibility criterion of the job, optionally sorted
// @Tags         matching
// @Produce      json
// @Param        id     path   int     true   "Job opportunity ID"
// @Param        sort   query  string  false  "Sort key"        Enums(full_name, email, total_experience, age)
// @Param        order  query  string  false  "Sort direction"  Enums(asc, desc)  default(asc)
// @Success      200  {object}  response.Response{data=[]domain.Candidate}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/compatible-candidates [get]
// @Security     BearerAuth
func (h *JobHandler) CompatibleCandidates(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	sortKey := c.Query("sort")
	descending := c.DefaultQuery("order", "asc") == "desc"

	candidates, err := h.matching.CompatibleCandidates(c, id, sortKey, descending)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Compatible candidates", candidates)
}

// AssignedCandidates godoc
// @Summary      List assigned candidates
// @Tags         matching
// @Produce      json
// @Param        id  path  int  true  "Job opportunity ID"
// @Success      200  {object}  response.Response{data=[]domain.Candidate}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/candidates [get]
// @Security     BearerAuth
func (h *JobHandler) AssignedCandidates(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	candidates, err := h.matching.AssignedCandidates(c, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Assigned candidates", candidates)
}

// Assign godoc
// @Summary      Assign candidate to job
// @Description  Links the candidate to the job opportunity; a candidate holds at most one assignment
// @Tags         matching
// @Produce      json
// @Param        id           path  int  true  "Job opportunity ID"
// @Param        candidateID  path  int  true  "Candidate ID"
// @Success      201  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /jobs/{id}/candidates/{candidateID} [post]
// @Security     BearerAuth
func (h *JobHandler) Assign(c *gin.Context) {
	jobID, candidateID, ok := pairParams(c)
	if !ok {
		return
	}

	if err := h.matching.Assign(c, jobID, candidateID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Candidate assigned", nil)
}

// Unassign godoc
// @Summary      Remove candidate from job
// @Tags         matching
// @Produce      json
// @Param        id           path  int  true  "Job opportunity ID"
// @Param        candidateID  path  int  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/candidates/{candidateID} [delete]
// @Security     BearerAuth
func (h *JobHandler) Unassign(c *gin.Context) {
	jobID, candidateID, ok := pairParams(c)
	if !ok {
		return
	}

	if err := h.matching.Unassign(c, jobID, candidateID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate removed from job", nil)
}

func pairParams(c *gin.Context) (jobID, candidateID int64, ok bool) {
	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return 0, 0, false
	}
	candidateID, err = strconv.ParseInt(c.Param("candidateID"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid candidate ID"))
		return 0, 0, false
	}
	return jobID, candidateID, true
}
