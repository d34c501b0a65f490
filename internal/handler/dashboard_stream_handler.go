package handler

import (
	"sales-crm-be/internal/pkg/logger"
	ws "sales-crm-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// DashboardStreamHandler exposes the live event stream the dashboard
// subscribes to. Every CRM mutation published on the bus reaches connected
// clients through the hub.
type DashboardStreamHandler struct {
	hub    *ws.Hub
	logger logger.ILogger
}

func NewDashboardStreamHandler(hub *ws.Hub, log logger.ILogger) *DashboardStreamHandler {
	return &DashboardStreamHandler{
		hub:    hub,
		logger: log,
	}
}

func (h *DashboardStreamHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/dashboard", h.ServeWs)
}

// ServeWs upgrades the request and attaches the connection to the hub.
func (h *DashboardStreamHandler) ServeWs(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			ws.ServeWs(h.hub, conn)
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
