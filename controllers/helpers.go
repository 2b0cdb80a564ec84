package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"metabolic-care/middlewares"
	"metabolic-care/services"
)

func userKeyFromCtx(c *gin.Context) (string, bool) {
	key := c.GetString(middlewares.ContextUserKey)
	return key, key != ""
}

// requireUser writes 401 and returns false when no user key is set.
func requireUser(c *gin.Context) (string, bool) {
	key, ok := userKeyFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return key, ok
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidDay):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrProfileRequired):
		return http.StatusConflict
	case errors.Is(err, services.ErrTriageBlocked):
		return http.StatusForbidden
	case errors.Is(err, services.ErrPlanNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
