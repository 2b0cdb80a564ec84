package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"metabolic-care/services"
)

type PlanController struct {
	Svc *services.PlanService
}

func NewPlanController(svc *services.PlanService) *PlanController {
	return &PlanController{Svc: svc}
}

// POST /user/plan regenerates the whole week. An empty body uses defaults.
func (h *PlanController) Generate(c *gin.Context) {
	userKey, ok := requireUser(c)
	if !ok {
		return
	}
	var req services.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	plan, err := h.Svc.Generate(c.Request.Context(), userKey, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *PlanController) Current(c *gin.Context) {
	userKey, ok := requireUser(c)
	if !ok {
		return
	}
	plan, err := h.Svc.Current(c.Request.Context(), userKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// POST /user/plan/days/:day/swaps
func (h *PlanController) Swaps(c *gin.Context) {
	userKey, ok := requireUser(c)
	if !ok {
		return
	}
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		respondError(c, services.ErrInvalidDay)
		return
	}
	swaps, err := h.Svc.Swaps(c.Request.Context(), userKey, day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"day": day, "swaps": swaps})
}
