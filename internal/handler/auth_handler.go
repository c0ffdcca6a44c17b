package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/wanderlog/internal/service"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 创建租户账号并建立会话
func (a *API) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "name, email and password are required")
		return
	}

	user, err := a.users.Register(req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			respondError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrEmailInvalid),
			errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrNameMissing):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	if err := a.startSession(c, user.UID); err != nil {
		respondError(c, http.StatusInternalServerError, "session save failed")
		return
	}

	respondData(c, gin.H{"uid": user.UID, "name": user.Name, "email": user.Email})
}

// Login 校验凭据并建立会话
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := a.users.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "login failed")
		return
	}

	if err := a.startSession(c, user.UID); err != nil {
		respondError(c, http.StatusInternalServerError, "session save failed")
		return
	}

	respondData(c, gin.H{"uid": user.UID, "name": user.Name, "email": user.Email})
}

// Logout 清除会话
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	respondData(c, gin.H{"logged_out": true})
}

func (a *API) startSession(c *gin.Context, uid string) error {
	session := sessions.Default(c)
	session.Set(sessionUserKey, uid)
	return session.Save()
}
