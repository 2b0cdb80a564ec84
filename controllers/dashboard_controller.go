package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"metabolic-care/services"
)

type DashboardController struct {
	Svc *services.DashboardService
}

func NewDashboardController(svc *services.DashboardService) *DashboardController {
	return &DashboardController{Svc: svc}
}

func (h *DashboardController) Summary(c *gin.Context) {
	userKey, ok := requireUser(c)
	if !ok {
		return
	}
	out, err := h.Svc.Summary(c.Request.Context(), userKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
