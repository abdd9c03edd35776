package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go-agency-backoffice/config"
	"go-agency-backoffice/internal/delivery/http/middleware"
	"go-agency-backoffice/internal/delivery/http/response"
	"go-agency-backoffice/internal/domain"
	"go-agency-backoffice/internal/usecase"
)

type RouterDeps struct {
	Candidates domain.CandidateRepository
	Jobs       domain.JobRepository
	Matching   domain.MatchingUsecase
	Export     *usecase.ExportUsecase
	Archive    *usecase.ArchiveUsecase
	Documents  domain.DocumentUsecase
	Config     *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middlewares; CORS must run first.
	r.Use(middleware.CORSMiddleware(deps.Config))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config))
	{
		NewCandidateHandler(protected, deps.Candidates)
		NewJobHandler(protected, deps.Jobs, deps.Matching)
		NewExportHandler(protected, deps.Export, deps.Archive, deps.Documents)
	}

	return r
}
