package facilities

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"easypark/internal/shared/utils/response"
	"easypark/internal/slots"
)

type Controller interface {
	CreateFacility(c *gin.Context)
	GetFacility(c *gin.Context)
	ListFacilities(c *gin.Context)
	UpdateFacility(c *gin.Context)
	GetFacilitySummary(c *gin.Context)
	ListFacilitySlots(c *gin.Context)
}

type controller struct {
	service Service
	pool    slots.Pool
}

func NewController(service Service, pool slots.Pool) Controller {
	return &controller{service: service, pool: pool}
}

func (ctrl *controller) CreateFacility(c *gin.Context) {
	var req CreateFacilityRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	facility, err := ctrl.service.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Facility created successfully", ToFacilityResponse(facility), nil)
}

func (ctrl *controller) GetFacility(c *gin.Context) {
	facility, err := ctrl.service.GetByID(c.Request.Context(), c.Param("facilityId"))
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrFacilityNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Facility retrieved successfully", ToFacilityResponse(facility), nil)
}

func (ctrl *controller) ListFacilities(c *gin.Context) {
	facilities, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	result := make([]FacilityResponse, 0, len(facilities))
	for i := range facilities {
		result = append(result, ToFacilityResponse(&facilities[i]))
	}

	response.RespondJSON(c, "success", http.StatusOK, "Facilities retrieved successfully", result, nil)
}

func (ctrl *controller) UpdateFacility(c *gin.Context) {
	var req UpdateRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	facility, err := ctrl.service.UpdateRates(c.Request.Context(), c.Param("facilityId"), req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrFacilityNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Facility updated successfully", ToFacilityResponse(facility), nil)
}

// GetFacilitySummary returns the facility together with its live per-class
// slot availability counts
func (ctrl *controller) GetFacilitySummary(c *gin.Context) {
	facilityIDStr := c.Param("facilityId")
	facilityID, err := uuid.Parse(facilityIDStr)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid facility ID", nil, err.Error())
		return
	}

	facility, err := ctrl.service.GetByID(c.Request.Context(), facilityIDStr)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrFacilityNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	summary, err := ctrl.pool.Summarize(c.Request.Context(), facilityID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to summarize slots", nil, err.Error())
		return
	}

	resp := FacilitySummaryResponse{
		Facility: ToFacilityResponse(facility),
		Slots:    summary,
		Rates:    facility.RateSummary(),
	}

	response.RespondJSON(c, "success", http.StatusOK, "Facility summary retrieved successfully", resp, nil)
}

// ListFacilitySlots returns every provisioned slot of a facility with its
// current status, for admin inventory inspection
func (ctrl *controller) ListFacilitySlots(c *gin.Context) {
	facilityID, err := uuid.Parse(c.Param("facilityId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid facility ID", nil, err.Error())
		return
	}

	slotList, err := ctrl.pool.ListByFacility(c.Request.Context(), facilityID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list slots", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Slots retrieved successfully", slotList, nil)
}
