package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/database"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
)

const testPassword = "Secret#123"

// serviceSuite wires every service against an in-memory sqlite database
type serviceSuite struct {
	suite.Suite
	ctx      context.Context
	db       *gorm.DB
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
	users    *UserService
	tasks    *TaskService
	comments *CommentService
	auth     *AuthService
	tokens   *auth.TokenManager
}

func (s *serviceSuite) SetupTest() {
	var err error
	s.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	s.Require().NoError(err)

	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.Require().NoError(database.Migrate(s.db, zap.NewNop()))

	log := zap.NewNop()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	s.ctx = context.Background()
	s.userRepo = repository.NewUserRepository(s.db)
	s.taskRepo = repository.NewTaskRepository(s.db)
	s.tokens = auth.NewTokenManager("test-secret", 15)

	s.users = NewUserService(s.userRepo, hasher, log)
	s.tasks = NewTaskService(s.taskRepo, s.userRepo, log)
	s.comments = NewCommentService(repository.NewCommentRepository(s.db), s.taskRepo, s.userRepo, log)
	s.auth = NewAuthService(s.users, s.userRepo, hasher, s.tokens, auth.NewMemoryRevocationStore(), log)
}

func (s *serviceSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *serviceSuite) createUser(username string) *models.User {
	user, err := s.users.Create(s.ctx, CreateUserInput{
		Username: username,
		Password: testPassword,
		Name:     "Test " + username,
		Email:    username + "@example.com",
	})
	s.Require().NoError(err)
	return user
}

func (s *serviceSuite) createTask(creator uuid.UUID, name string, executor *uuid.UUID) *models.Task {
	task, err := s.tasks.Create(s.ctx, creator, CreateTaskInput{
		Name:        name,
		Description: "Description of " + name,
		Status:      "pending",
		Priority:    "low",
		ExecutorID:  executor,
		ExpiresOn:   time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second),
	})
	s.Require().NoError(err)
	return task
}

func ptr[T any](v T) *T {
	return &v
}
