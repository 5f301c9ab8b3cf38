package inspect

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps the inspect endpoints onto rg.
func RegisterRoutes(rg *gin.RouterGroup, h Handler) {
	rg.POST("/classify", h.Classify)
	rg.GET("/intents", h.ListIntents)
}
