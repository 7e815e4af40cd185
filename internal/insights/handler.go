package insights

import (
	"github.com/gin-gonic/gin"

	"triage-backend/internal/shared/server/respond"
)

// RegisterRoutes attaches the statistics route.
func RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/insights", func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age=3600")
		respond.OK(c, Data())
	})
}
