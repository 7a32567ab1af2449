package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/yukikurage/task-tracker-api/internal/models"
)

type UserHandlerTestSuite struct {
	handlerSuite
}

func (s *UserHandlerTestSuite) router(userID uuid.UUID) *gin.Engine {
	h := NewUserHandler(s.users)
	r := s.newRouter(userID)
	r.GET("/users", h.ListUsers)
	r.GET("/users/:id", h.GetUser)
	r.PATCH("/users", h.UpdateUser)
	r.DELETE("/users", h.DeleteUser)
	return r
}

func (s *UserHandlerTestSuite) TestListAndGet() {
	alice := s.createUser("alice1")
	s.createUser("bobby1")
	s.createUser("carol1")
	r := s.router(alice.ID)

	w, body := s.request(r, http.MethodGet, "/users?page=1&size=2", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(body["users"], 1)
	s.Equal(float64(3), body["total_count"])
	s.Equal(float64(2), body["total_pages"])

	w, body = s.request(r, http.MethodGet, "/users/"+alice.ID.String(), nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("alice1@example.com", body["email"])
	s.NotContains(body, "password")
	s.NotContains(body, "password_hash")

	w, _ = s.request(r, http.MethodGet, "/users/"+uuid.NewString(), nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *UserHandlerTestSuite) TestUpdateUser() {
	alice := s.createUser("alice1")
	s.createUser("bobby1")
	r := s.router(alice.ID)

	w, body := s.request(r, http.MethodPatch, "/users", gin.H{"id": alice.ID, "email": "bobby1@example.com"})
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("User with email bobby1@example.com already exists", body["message"])

	w, _ = s.request(r, http.MethodPatch, "/users", gin.H{"id": alice.ID, "password": "short"})
	s.Equal(http.StatusBadRequest, w.Code)

	w, body = s.request(r, http.MethodPatch, "/users", gin.H{"id": alice.ID, "username": "alice.new", "name": ""})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("alice.new", body["username"])
	s.Equal(alice.Name, body["name"])
	s.Equal("[PROTECTED]", body["password"])
	s.Equal("USER", body["role"])
	s.Equal(true, body["enabled"])
	s.NotNil(body["updated_at"])
}

func (s *UserHandlerTestSuite) TestDeleteUser() {
	alice := s.createUser("alice1")
	bob := s.createUser("bobby1")
	r := s.router(alice.ID)

	w, _ := s.request(r, http.MethodDelete, "/users", gin.H{"id": bob.ID, "password": testPassword})
	s.Equal(http.StatusForbidden, w.Code)

	w, body := s.request(r, http.MethodDelete, "/users", gin.H{"id": alice.ID, "password": "Wrong#123"})
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("Incorrect password", body["message"])

	w, body = s.request(r, http.MethodDelete, "/users", gin.H{"id": alice.ID, "password": testPassword})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(alice.ID.String(), body["deleted_user_id"])

	var count int64
	s.Require().NoError(s.db.Model(&models.User{}).Where("id = ?", alice.ID).Count(&count).Error)
	s.Zero(count)

	w, _ = s.request(r, http.MethodDelete, "/users", gin.H{"id": alice.ID, "password": testPassword})
	s.Equal(http.StatusNotFound, w.Code)
}

func TestUserHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
