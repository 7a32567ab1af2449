package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	"github.com/yukikurage/task-tracker-api/internal/database"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/services"
	"github.com/yukikurage/task-tracker-api/internal/validation"
)

const testPassword = "Secret#123"

// handlerSuite wires real services over an in-memory sqlite database
type handlerSuite struct {
	suite.Suite
	db       *gorm.DB
	users    *services.UserService
	tasks    *services.TaskService
	comments *services.CommentService
	auth     *services.AuthService
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(validation.Register())

	var err error
	s.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	s.Require().NoError(err)
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	log := zap.NewNop()
	s.Require().NoError(database.Migrate(s.db, log))

	userRepo := repository.NewUserRepository(s.db)
	taskRepo := repository.NewTaskRepository(s.db)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	s.users = services.NewUserService(userRepo, hasher, log)
	s.tasks = services.NewTaskService(taskRepo, userRepo, log)
	s.comments = services.NewCommentService(repository.NewCommentRepository(s.db), taskRepo, userRepo, log)
	s.auth = services.NewAuthService(s.users, userRepo, hasher,
		auth.NewTokenManager("handler-test-secret", 15), auth.NewMemoryRevocationStore(), log)
}

func (s *handlerSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

// newRouter returns an engine that translates handler errors and
// authenticates as userID when it is not uuid.Nil.
func (s *handlerSuite) newRouter(userID uuid.UUID) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler(zap.NewNop()))
	if userID != uuid.Nil {
		r.Use(func(c *gin.Context) {
			c.Set(constants.ContextKeyUserID, userID)
			c.Next()
		})
	}
	return r
}

func (s *handlerSuite) request(r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		s.Require().NoError(err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)

	if w.Body.Len() == 0 {
		return w, nil
	}
	return w, s.decode(w)
}

func (s *handlerSuite) createUser(username string) *models.User {
	user, err := s.users.Create(context.Background(), services.CreateUserInput{
		Username: username,
		Password: testPassword,
		Name:     "Test " + username,
		Email:    username + "@example.com",
	})
	s.Require().NoError(err)
	return user
}

func (s *handlerSuite) createTask(creator uuid.UUID, name string, executor *uuid.UUID) *models.Task {
	task, err := s.tasks.Create(context.Background(), creator, services.CreateTaskInput{
		Name:        name,
		Description: "Description of " + name,
		Status:      "pending",
		Priority:    "medium",
		ExecutorID:  executor,
		ExpiresOn:   time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second),
	})
	s.Require().NoError(err)
	return task
}

func (s *handlerSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var decoded map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &decoded), w.Body.String())
	return decoded
}

func authorized(method, path, token string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(constants.AuthHeader, constants.BearerScheme+" "+token)
	return req
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
