package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"metabolic-care/services"
)

type AlertController struct {
	Alerts   *services.AlertService
	RT       *services.RealtimeHub
	upgrader websocket.Upgrader
}

// NewAlertController accepts websocket upgrades only from allowedOrigins.
// "*" allows any origin; requests without an Origin header are not browsers and pass.
func NewAlertController(alerts *services.AlertService, rt *services.RealtimeHub, allowedOrigins []string) *AlertController {
	return &AlertController{
		Alerts:   alerts,
		RT:       rt,
		upgrader: websocket.Upgrader{CheckOrigin: originAllowed(allowedOrigins)},
	}
}

const pingInterval = 25 * time.Second

func originAllowed(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

// GET /user/alerts?limit=50
func (h *AlertController) List(c *gin.Context) {
	userKey, ok := requireUser(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	list, err := h.Alerts.List(c.Request.Context(), userKey, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": list})
}

// GET /user/alerts/ws streams alert.created events until the client goes away.
func (h *AlertController) Stream(c *gin.Context) {
	userKey, ok := requireUser(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{UserKey: userKey, Conn: conn}
	h.RT.Register(cl)

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(pingInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := cl.Write(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.RT.Unregister(cl)
			return
		}
	}
}
