package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/task-tracker-api/internal/config"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	"github.com/yukikurage/task-tracker-api/internal/handlers"
	"github.com/yukikurage/task-tracker-api/internal/metrics"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

// Services bundles what the HTTP layer depends on.
type Services struct {
	Auth     *services.AuthService
	Users    *services.UserService
	Tasks    *services.TaskService
	Comments *services.CommentService
}

// New builds the gin engine with every route mounted. m may be nil when
// metrics are disabled.
func New(cfg *config.Config, db *gorm.DB, svc Services, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	if m != nil {
		r.Use(middleware.Metrics(m))
	}
	r.Use(middleware.ErrorHandler(logger))
	r.Use(middleware.RequestTimeout(cfg.App.RequestTimeout()))

	authHandler := handlers.NewAuthHandler(svc.Auth)
	taskHandler := handlers.NewTaskHandler(svc.Tasks)
	commentHandler := handlers.NewCommentHandler(svc.Comments)
	userHandler := handlers.NewUserHandler(svc.Users)
	healthHandler := handlers.NewHealthHandler(db, logger)

	r.GET("/health", healthHandler.Health)
	if m != nil {
		r.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	requireAuth := middleware.RequireAuth(svc.Auth)

	api := r.Group(constants.APIBasePath)
	{
		// Auth routes (public apart from sign-out)
		auth := api.Group("/auth")
		{
			auth.POST("/sign-up", authHandler.SignUp)
			auth.POST("/sign-in", authHandler.SignIn)
			auth.POST("/sign-out", requireAuth, authHandler.SignOut)
		}

		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PATCH("", taskHandler.UpdateTask)
			tasks.DELETE("", taskHandler.DeleteTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.GET("/:id/comments", commentHandler.ListComments)
			tasks.POST("/:id/comments", commentHandler.CreateComment)
			tasks.DELETE("/:id/comments", commentHandler.DeleteComment)
		}

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", userHandler.ListUsers)
			users.PATCH("", userHandler.UpdateUser)
			users.DELETE("", userHandler.DeleteUser)
			users.GET("/:id", userHandler.GetUser)
		}
	}

	return r
}
