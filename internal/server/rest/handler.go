package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/server/tasks"
)

// Wire error codes. The SPA matches on these strings, so they are part of
// the API contract.
const (
	codeInvalidInput       = "invalid_input"
	codeEmailExists        = "email_exists"
	codeInvalidCredentials = "invalid_credentials"
	codeUnauthorized       = "unauthorized"
	codeTitleRequired      = "title_required"
	codeInvalidID          = "invalid_id"
	codeNotFound           = "not_found"
	codeServerError        = "server_error"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type createTaskRequest struct {
	Title string `json:"title"`
}

type patchTaskRequest struct {
	Completed *bool `json:"completed"`
}

func errorResponse(code string) gin.H {
	return gin.H{"error": code}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(codeInvalidInput))
		return
	}

	user, token, err := s.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorInvalidInput):
			c.JSON(http.StatusBadRequest, errorResponse(codeInvalidInput))
		case errors.Is(err, common.ErrorEmailExists):
			c.JSON(http.StatusConflict, errorResponse(codeEmailExists))
		default:
			s.logger.Error(c.Request.Context(), "register failed", "error", err)
			c.JSON(http.StatusInternalServerError, errorResponse(codeServerError))
		}
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		Token: token,
		User:  userPayload{ID: user.ID, Email: user.Email},
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(codeInvalidInput))
		return
	}

	user, token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorInvalidInput):
			c.JSON(http.StatusBadRequest, errorResponse(codeInvalidInput))
		case errors.Is(err, common.ErrorInvalidCredentials):
			c.JSON(http.StatusUnauthorized, errorResponse(codeInvalidCredentials))
		default:
			s.logger.Error(c.Request.Context(), "login failed", "error", err)
			c.JSON(http.StatusInternalServerError, errorResponse(codeServerError))
		}
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Token: token,
		User:  userPayload{ID: user.ID, Email: user.Email},
	})
}

func (s *Server) handleListTasks(c *gin.Context) {
	list, err := s.tasks.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.logger.Error(c.Request.Context(), "task list failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse(codeServerError))
		return
	}

	if list == nil {
		list = []tasks.Task{}
	}

	c.JSON(http.StatusOK, list)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(codeTitleRequired))
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), currentUserID(c), req.Title)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidInput) {
			c.JSON(http.StatusBadRequest, errorResponse(codeTitleRequired))
			return
		}
		s.logger.Error(c.Request.Context(), "task create failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse(codeServerError))
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (s *Server) handlePatchTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req patchTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Completed == nil {
		c.JSON(http.StatusBadRequest, errorResponse(codeInvalidInput))
		return
	}

	task, err := s.tasks.SetCompleted(c.Request.Context(), currentUserID(c), id, *req.Completed)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			c.JSON(http.StatusNotFound, errorResponse(codeNotFound))
		case errors.Is(err, common.ErrorInvalidInput):
			c.JSON(http.StatusBadRequest, errorResponse(codeInvalidID))
		default:
			s.logger.Error(c.Request.Context(), "task update failed", "error", err)
			c.JSON(http.StatusInternalServerError, errorResponse(codeServerError))
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	err := s.tasks.Delete(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			c.JSON(http.StatusNotFound, errorResponse(codeNotFound))
		case errors.Is(err, common.ErrorInvalidInput):
			c.JSON(http.StatusBadRequest, errorResponse(codeInvalidID))
		default:
			s.logger.Error(c.Request.Context(), "task delete failed", "error", err)
			c.JSON(http.StatusInternalServerError, errorResponse(codeServerError))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true, "id": id})
}

// taskIDParam parses the :id path segment; on failure it writes the
// invalid_id response and reports false.
func taskIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse(codeInvalidID))
		return 0, false
	}
	return id, true
}
