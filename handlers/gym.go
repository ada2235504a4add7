package handlers

import (
	"errors"
	"net/http"

	gymRepo "gymslot/database/repository/gym"
	"gymslot/services/gym"
	"gymslot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GymHandler exposes the cached gym lookup.
type GymHandler struct {
	Svc gym.GymService
}

// NewGymHandler constructs a GymHandler.
func NewGymHandler(svc gym.GymService) *GymHandler {
	return &GymHandler{Svc: svc}
}

// GetGym handles GET /api/gyms/:id.
func (h *GymHandler) GetGym(c *gin.Context) {
	g, err := h.Svc.GetGym(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gymRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "gym not found", "")
			return
		}
		utils.GetLogger().Error("gym lookup failed", zap.String("gymID", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{Message: "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, g)
}
