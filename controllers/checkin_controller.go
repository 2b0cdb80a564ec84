package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"metabolic-care/services"
)

type CheckInController struct {
	Svc *services.CheckInService
}

func NewCheckInController(svc *services.CheckInService) *CheckInController {
	return &CheckInController{Svc: svc}
}

func (h *CheckInController) Add(c *gin.Context) {
	userKey, ok := requireUser(c)
	if !ok {
		return
	}
	var in services.CheckInInput
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Svc.Add(c.Request.Context(), userKey, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *CheckInController) List(c *gin.Context) {
	userKey, ok := requireUser(c)
	if !ok {
		return
	}
	list, err := h.Svc.List(c.Request.Context(), userKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkins": list})
}
