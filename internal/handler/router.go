package handler

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/dailyworklog/server/internal/middleware"
	"github.com/dailyworklog/server/internal/models"
	"github.com/dailyworklog/server/internal/service"
	"github.com/dailyworklog/server/pkg/auth"
)

var registerValidationsOnce sync.Once

// RegisterValidations installs the custom binding validations on gin's
// validator engine.
func RegisterValidations() {
	registerValidationsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("remarkstatus", func(fl validator.FieldLevel) bool {
				return models.IsValidRemarkStatus(fl.Field().String())
			})
		}
	})
}

// Deps bundles everything the router wires together.
type Deps struct {
	Log       *logrus.Logger
	Tokens    *auth.TokenManager
	Auth      *service.AuthService
	Tasks     *service.TaskService
	Summaries *service.SummaryService
	Projects  *service.ProjectService
}

// NewRouter builds the full route table.
func NewRouter(deps Deps) *gin.Engine {
	RegisterValidations()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(deps.Log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := NewAuthHandler(deps.Auth)
	taskHandler := NewTaskHandler(deps.Tasks)
	reportHandler := NewReportHandler(deps.Summaries)
	projectHandler := NewProjectHandler(deps.Projects)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)

	protected := api.Group("", middleware.RequireAuth(deps.Tokens))
	protected.POST("/tasks", taskHandler.Create)
	protected.GET("/tasks/mine", taskHandler.ListMine)
	protected.PATCH("/tasks/:taskId/remarks/:remarkId", taskHandler.UpdateRemark)
	protected.GET("/employees/search", taskHandler.SearchEmployees)
	protected.GET("/projects", projectHandler.List)

	admin := protected.Group("", middleware.RequireAdmin())
	admin.GET("/tasks", taskHandler.List)
	admin.GET("/reports/daily-summary", reportHandler.DailySummary)
	admin.GET("/reports/project-summary", reportHandler.ProjectSummary)
	admin.POST("/projects", projectHandler.Create)

	return r
}
