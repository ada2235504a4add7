package handlers

import (
	"net/http"

	"gymslot/utils"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health with the latest stored snapshot.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
