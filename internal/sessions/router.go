package sessions

import (
	"easypark/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupGateRoutes(router *gin.RouterGroup, controller Controller) {
	gate := router.Group("/gate")
	gate.Use(middleware.JWTAuth())
	{
		gate.POST("/entry", controller.GateEntry)               // POST /api/v1/gate/entry
		gate.POST("/exit", controller.GateExit)                 // POST /api/v1/gate/exit
		gate.GET("/summary/:facilityId", controller.GetSummary) // GET /api/v1/gate/summary/:facilityId
	}
}
