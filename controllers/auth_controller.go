package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"metabolic-care/services"
)

type AuthController struct {
	Sessions *services.SessionService
}

func NewAuthController(s *services.SessionService) *AuthController {
	return &AuthController{Sessions: s}
}

type sessionInput struct {
	Phone string `json:"phone" binding:"required"`
}

// POST /auth/session
func (h *AuthController) StartSession(c *gin.Context) {
	var in sessionInput
	if !bindJSON(c, &in) {
		return
	}
	sess, err := h.Sessions.Start(in.Phone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}
