package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"metabolic-care/services"
)

type ProfileController struct {
	Svc *services.ProfileService
}

func NewProfileController(svc *services.ProfileService) *ProfileController {
	return &ProfileController{Svc: svc}
}

func (h *ProfileController) GetProfile(c *gin.Context) {
	userKey, ok := requireUser(c)
	if !ok {
		return
	}
	p, err := h.Svc.Get(c.Request.Context(), userKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// PUT /user/profile saves the profile and returns the triage result.
func (h *ProfileController) SaveProfile(c *gin.Context) {
	userKey, ok := requireUser(c)
	if !ok {
		return
	}
	var in services.ProfileInput
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Svc.Save(c.Request.Context(), userKey, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
