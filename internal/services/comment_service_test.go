package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

type CommentServiceTestSuite struct {
	serviceSuite
	alice *models.User
	bob   *models.User
	carol *models.User
	task  *models.Task
}

func (s *CommentServiceTestSuite) SetupTest() {
	s.serviceSuite.SetupTest()
	s.alice = s.createUser("alice")
	s.bob = s.createUser("bobby")
	s.carol = s.createUser("carol")
	s.task = s.createTask(s.alice.ID, "Write report", &s.bob.ID)
}

func (s *CommentServiceTestSuite) TestCreateAndList() {
	first, err := s.comments.Create(s.ctx, s.alice.ID, s.task.ID, "Please start")
	s.Require().NoError(err)
	s.Equal("alice", first.Author.Username)

	_, err = s.comments.Create(s.ctx, s.bob.ID, s.task.ID, "On it")
	s.Require().NoError(err)

	comments, total, err := s.comments.ListByTask(s.ctx, s.alice.ID, s.task.ID, utils.NewPaginationParams(0, 5))
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Require().Len(comments, 2)
	for _, c := range comments {
		s.Require().NotNil(c.Author)
		s.Equal(c.Comment.UserID, c.Author.ID)
	}
}

func (s *CommentServiceTestSuite) TestUnrelatedUserDenied() {
	_, _, err := s.comments.ListByTask(s.ctx, s.carol.ID, s.task.ID, utils.NewPaginationParams(0, 5))
	s.True(apierrors.IsKind(err, apierrors.KindPermissionDenied))

	_, err = s.comments.Create(s.ctx, s.carol.ID, s.task.ID, "Hello")
	s.True(apierrors.IsKind(err, apierrors.KindPermissionDenied))

	_, _, err = s.comments.ListByTask(s.ctx, s.alice.ID, s.task.ID, utils.NewPaginationParams(0, 5))
	s.NoError(err)
}

func (s *CommentServiceTestSuite) TestMissingTaskIsNotFound() {
	_, _, err := s.comments.ListByTask(s.ctx, s.carol.ID, uuid.New(), utils.NewPaginationParams(0, 5))
	s.True(apierrors.IsKind(err, apierrors.KindNotFound))
}

func (s *CommentServiceTestSuite) TestDelete() {
	comment, err := s.comments.Create(s.ctx, s.bob.ID, s.task.ID, "On it")
	s.Require().NoError(err)

	_, err = s.comments.Delete(s.ctx, s.alice.ID, s.task.ID, comment.Comment.ID)
	s.True(apierrors.IsKind(err, apierrors.KindPermissionDenied))

	other := s.createTask(s.bob.ID, "Other task", nil)
	_, err = s.comments.Delete(s.ctx, s.bob.ID, other.ID, comment.Comment.ID)
	s.True(apierrors.IsKind(err, apierrors.KindNotFound))

	deleted, err := s.comments.Delete(s.ctx, s.bob.ID, s.task.ID, comment.Comment.ID)
	s.Require().NoError(err)
	s.Equal(comment.Comment.ID, deleted)

	_, err = s.comments.Delete(s.ctx, s.bob.ID, s.task.ID, comment.Comment.ID)
	s.True(apierrors.IsKind(err, apierrors.KindNotFound))
}

func (s *CommentServiceTestSuite) TestDeletedAuthorLeavesNilAuthor() {
	_, err := s.comments.Create(s.ctx, s.bob.ID, s.task.ID, "On it")
	s.Require().NoError(err)
	_, err = s.users.Delete(s.ctx, s.bob.ID, s.bob.ID, testPassword)
	s.Require().NoError(err)

	comments, _, err := s.comments.ListByTask(s.ctx, s.alice.ID, s.task.ID, utils.NewPaginationParams(0, 5))
	s.Require().NoError(err)
	s.Require().Len(comments, 1)
	s.Nil(comments[0].Author)
}

func TestCommentServiceSuite(t *testing.T) {
	suite.Run(t, new(CommentServiceTestSuite))
}
