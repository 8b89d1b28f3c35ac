package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Health check
// @Description  Liveness only; the database is not consulted
// @Tags         System
// @Produce      json
// @Success      200  {object}  handlers.HealthResponse
// @Router       /api/health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

type HealthResponse struct {
	Status string `json:"status"`
}
