package handler

import (
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the durable store is reachable
type Pinger interface {
	Ping() error
}

// SystemHandler handles health and info endpoints
type SystemHandler struct {
	BaseHandler
	startTime time.Time
	db        Pinger
	version   string
}

// NewSystemHandler creates a system handler
func NewSystemHandler(db Pinger, version string) *SystemHandler {
	return &SystemHandler{
		startTime: time.Now(),
		db:        db,
		version:   version,
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/system")
	{
		group.GET("/health", h.Health)
		group.GET("/info", h.Info)
	}
}

// HealthResponse reports service and storage health
type HealthResponse struct {
	Status    string `json:"status"`
	Storage   string `json:"storage"`
	Timestamp string `json:"timestamp"`
}

// Health reports liveness plus the durable store's reachability
func (h *SystemHandler) Health(c *gin.Context) {
	storage := "ok"
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			storage = "unreachable"
		}
	}

	h.Success(c, HealthResponse{
		Status:    "ok",
		Storage:   storage,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// InfoResponse reports build and runtime information
type InfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Info returns basic service information
func (h *SystemHandler) Info(c *gin.Context) {
	h.Success(c, InfoResponse{
		Name:      "Starter Box CRM API",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}
