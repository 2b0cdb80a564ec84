package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"metabolic-care/services"
)

type GlucoseController struct {
	Svc *services.GlucoseService
}

func NewGlucoseController(svc *services.GlucoseService) *GlucoseController {
	return &GlucoseController{Svc: svc}
}

func (h *GlucoseController) Add(c *gin.Context) {
	userKey, ok := requireUser(c)
	if !ok {
		return
	}
	var in services.GlucoseInput
	if !bindJSON(c, &in) {
		return
	}
	g, err := h.Svc.Add(c.Request.Context(), userKey, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (h *GlucoseController) List(c *gin.Context) {
	userKey, ok := requireUser(c)
	if !ok {
		return
	}
	logs, err := h.Svc.List(c.Request.Context(), userKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"readings": logs})
}
