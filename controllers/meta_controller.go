package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"metabolic-care/planner"
	"metabolic-care/services"
	"metabolic-care/triage"
)

// MetaController serves the stateless endpoints.
type MetaController struct {
	Engine  *triage.Engine
	Catalog planner.Catalog
}

func NewMetaController(e *triage.Engine, c planner.Catalog) *MetaController {
	return &MetaController{Engine: e, Catalog: c}
}

func (h *MetaController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *MetaController) Thresholds(c *gin.Context) {
	c.JSON(http.StatusOK, h.Engine.Thresholds())
}

func (h *MetaController) MealCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"meals": h.Catalog, "carb_serving_grams": planner.CarbServingGrams})
}

// POST /triage/evaluate runs triage without storing anything.
func (h *MetaController) Evaluate(c *gin.Context) {
	var in services.ProfileInput
	if !bindJSON(c, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Engine.Evaluate(in.Flags(), in.Vitals()))
}
