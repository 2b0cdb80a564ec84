package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"metabolic-care/services"
)

// DeviceController answers 503 while push notifications are not configured.
type DeviceController struct {
	Push *services.PushService
}

func NewDeviceController(ps *services.PushService) *DeviceController {
	return &DeviceController{Push: ps}
}

func (dc *DeviceController) available(c *gin.Context) bool {
	if dc.Push == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "push notifications not configured"})
		return false
	}
	return true
}

func (dc *DeviceController) Register(c *gin.Context) {
	userKey, ok := requireUser(c)
	if !ok || !dc.available(c) {
		return
	}
	var req services.RegisterDeviceReq
	if !bindJSON(c, &req) {
		return
	}

	dev, err := dc.Push.RegisterDevice(c.Request.Context(), userKey, req.Platform, req.Token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"endpoint_arn": dev.EndpointARN})
}

type toggleReq struct {
	Enabled bool `json:"enabled"`
}

// POST /user/notifications/toggle
func (dc *DeviceController) ToggleNotifications(c *gin.Context) {
	userKey, ok := requireUser(c)
	if !ok || !dc.available(c) {
		return
	}
	var req toggleReq
	if !bindJSON(c, &req) {
		return
	}
	n, err := dc.Push.SetEnabled(c.Request.Context(), userKey, req.Enabled)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "notifications updated",
		"enabled": req.Enabled,
		"devices": n,
	})
}
