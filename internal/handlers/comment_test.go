package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type CommentHandlerTestSuite struct {
	handlerSuite
}

func (s *CommentHandlerTestSuite) router(userID uuid.UUID) *gin.Engine {
	h := NewCommentHandler(s.comments)
	r := s.newRouter(userID)
	r.GET("/tasks/:id/comments", h.ListComments)
	r.POST("/tasks/:id/comments", h.CreateComment)
	r.DELETE("/tasks/:id/comments", h.DeleteComment)
	return r
}

func (s *CommentHandlerTestSuite) TestUnrelatedUserIsForbidden() {
	creator := s.createUser("alice1")
	other := s.createUser("bobby1")
	task := s.createTask(creator.ID, "Plan sprint", nil)
	path := "/tasks/" + task.ID.String() + "/comments"

	w, body := s.request(s.router(other.ID), http.MethodGet, path, nil)
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("User is not related to the task", body["message"])

	w, body = s.request(s.router(creator.ID), http.MethodGet, path, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Empty(body["comments"])
	s.Equal(float64(0), body["total_count"])
}

func (s *CommentHandlerTestSuite) TestExecutorCanComment() {
	creator := s.createUser("alice1")
	executor := s.createUser("bobby1")
	task := s.createTask(creator.ID, "Plan sprint", &executor.ID)
	path := "/tasks/" + task.ID.String() + "/comments"

	w, body := s.request(s.router(executor.ID), http.MethodPost, path, gin.H{"content": "On it"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Equal("On it", body["content"])
	s.Equal(task.ID.String(), body["task_id"])
	s.Equal("bobby1", body["user"].(map[string]interface{})["username"])

	w, _ = s.request(s.router(executor.ID), http.MethodPost, path, gin.H{"content": "  "})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *CommentHandlerTestSuite) TestDeleteComment_OnlyAuthor() {
	creator := s.createUser("alice1")
	executor := s.createUser("bobby1")
	task := s.createTask(creator.ID, "Plan sprint", &executor.ID)
	path := "/tasks/" + task.ID.String() + "/comments"

	w, body := s.request(s.router(executor.ID), http.MethodPost, path, gin.H{"content": "On it"})
	s.Require().Equal(http.StatusCreated, w.Code)
	commentID := body["id"]

	w, body = s.request(s.router(creator.ID), http.MethodDelete, path, gin.H{"id": commentID})
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("User is not comment author", body["message"])

	w, body = s.request(s.router(executor.ID), http.MethodDelete, path, gin.H{"id": commentID})
	s.Equal(http.StatusOK, w.Code)
	s.Equal(commentID, body["deleted_comment_id"])

	w, _ = s.request(s.router(executor.ID), http.MethodDelete, path, gin.H{"id": commentID})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *CommentHandlerTestSuite) TestMissingTask() {
	user := s.createUser("alice1")

	w, _ := s.request(s.router(user.ID), http.MethodGet, "/tasks/"+uuid.NewString()+"/comments", nil)
	s.Equal(http.StatusNotFound, w.Code)

	w, _ = s.request(s.router(user.ID), http.MethodGet, "/tasks/not-a-uuid/comments", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func TestCommentHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CommentHandlerTestSuite))
}
