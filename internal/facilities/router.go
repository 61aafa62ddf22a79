package facilities

import (
	"easypark/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupFacilityRoutes(router *gin.RouterGroup, controller Controller) {
	// Operator routes - any authenticated holder can browse facilities and
	// check live availability
	userFacilities := router.Group("/facilities")
	userFacilities.Use(middleware.JWTAuth())
	{
		userFacilities.GET("", controller.ListFacilities)                         // GET /api/v1/facilities
		userFacilities.GET("/:facilityId", controller.GetFacility)                // GET /api/v1/facilities/:facilityId
		userFacilities.GET("/:facilityId/summary", controller.GetFacilitySummary) // GET /api/v1/facilities/:facilityId/summary
	}

	// Admin routes - only admins manage facilities and rates
	adminFacilities := router.Group("/admin/facilities")
	adminFacilities.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminFacilities.POST("", controller.CreateFacility)                     // POST /api/v1/admin/facilities
		adminFacilities.GET("", controller.ListFacilities)                      // GET /api/v1/admin/facilities
		adminFacilities.PUT("/:facilityId", controller.UpdateFacility)          // PUT /api/v1/admin/facilities/:facilityId
		adminFacilities.GET("/:facilityId/slots", controller.ListFacilitySlots) // GET /api/v1/admin/facilities/:facilityId/slots
	}
}
