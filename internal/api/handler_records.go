package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"factory-status-backend/internal/extract"
	"factory-status-backend/internal/store"
	"factory-status-backend/internal/validate"
)

// GetMachines handles the GET /api/machines request.
func GetMachines(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		machines, err := s.ListMachines(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve machines"})
			return
		}
		c.JSON(http.StatusOK, machines)
	}
}

// GetMachine handles the GET /api/machines/{code} request.
func GetMachine(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := s.FindMachine(c.Request.Context(), c.Param("code"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve machine"})
			return
		}
		if rec == nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "machine not found"})
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

// GetSafetyAreas handles the GET /api/safety/areas request.
func GetSafetyAreas(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		areas, err := s.ListSafetyAreas(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve safety areas"})
			return
		}
		c.JSON(http.StatusOK, areas)
	}
}

// GetSafetyLogs handles the GET /api/safety/areas/{name}/logs request.
func GetSafetyLogs(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		logs, err := s.ListSafetyLogs(c.Request.Context(), c.Param("name"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve safety logs"})
			return
		}
		c.JSON(http.StatusOK, logs)
	}
}

type postSafetyLogRequest struct {
	Zone          string `json:"zone" binding:"required"`
	PPECompliance string `json:"ppe_compliance" binding:"required"`
	IncidentType  string `json:"incident_type"`
	Description   string `json:"description"`
	ReportedBy    string `json:"reported_by"`
}

// PostSafetyLog handles POST /api/safety/logs for structured compliance
// events that do not arrive as free text.
func (h *Handler) PostSafetyLog(c *gin.Context) {
	var req postSafetyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := &extract.SafetyUpdate{
		Zone:       req.Zone,
		AreaName:   req.Zone + extract.AreaNameSuffix,
		Compliance: &req.PPECompliance,
	}
	if req.IncidentType != "" {
		upd.IncidentType = &req.IncidentType
	}
	if req.Description != "" {
		upd.Description = &req.Description
	}
	if req.ReportedBy != "" {
		upd.ReportedBy = &req.ReportedBy
	}

	entry, err := validate.SafetyLog(upd, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.AppendSafetyLog(c.Request.Context(), entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetOrders handles the GET /api/orders request.
func GetOrders(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := s.ListOrders(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GetOrder handles the GET /api/orders/{code} request.
func GetOrder(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := s.FindOrder(c.Request.Context(), c.Param("code"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
			return
		}
		if rec == nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}
