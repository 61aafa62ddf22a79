package sessions

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"easypark/internal/billing"
	"easypark/internal/shared/config"
	"easypark/internal/shared/utils/response"
	"easypark/internal/slots"
)

type Controller interface {
	GateEntry(c *gin.Context)
	GateExit(c *gin.Context)
	GetSummary(c *gin.Context)
}

type controller struct {
	service Service
	config  *config.Config
}

func NewController(service Service, cfg *config.Config) Controller {
	return &controller{service: service, config: cfg}
}

// GateEntry handles POST /gate/entry. Multipart form: facility_id,
// vehicle_class and the plate_image file.
func (ctrl *controller) GateEntry(c *gin.Context) {
	holderID, ok := ctrl.holderID(c)
	if !ok {
		return
	}

	var req EntryRequest
	if err := c.ShouldBind(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	facilityID, err := uuid.Parse(req.FacilityID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid facility ID", nil, err.Error())
		return
	}

	class, err := slots.ParseVehicleClass(req.VehicleClass)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid vehicle class", nil, err.Error())
		return
	}

	imageBytes, err := ctrl.readPlateImage(c)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid plate image", nil, err.Error())
		return
	}

	session, err := ctrl.service.OpenEntry(c.Request.Context(), holderID, facilityID, class, imageBytes)
	if err != nil {
		if errors.Is(err, slots.ErrNoSlotAvailable) {
			response.RespondJSON(c, "error", http.StatusConflict, "No slot available for this vehicle class", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to record entry", nil, err.Error())
		return
	}

	resp := EntryResponse{
		SessionID:     session.ID,
		VehicleNumber: session.VehicleNumber,
		EntryTime:     session.EntryTime,
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Entry recorded successfully", resp, nil)
}

// GateExit handles POST /gate/exit
func (ctrl *controller) GateExit(c *gin.Context) {
	holderID, ok := ctrl.holderID(c)
	if !ok {
		return
	}

	var req ExitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	facilityID, err := uuid.Parse(req.FacilityID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid facility ID", nil, err.Error())
		return
	}

	session, reference, err := ctrl.service.CloseExit(c.Request.Context(), holderID, facilityID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoOpenSession):
			response.RespondJSON(c, "error", http.StatusNotFound, "No open parking session found", nil, nil)
		case errors.Is(err, billing.ErrInvalidTimeRange):
			response.RespondJSON(c, "error", http.StatusUnprocessableEntity, "Exit time is before entry time", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to record exit", nil, err.Error())
		}
		return
	}

	resp := ExitResponse{
		SessionID:        session.ID,
		VehicleNumber:    session.VehicleNumber,
		DurationHours:    *session.DurationHours,
		Amount:           *session.Amount,
		PaymentReference: reference,
	}
	response.RespondJSON(c, "success", http.StatusOK, "Exit recorded successfully", resp, nil)
}

// GetSummary handles GET /gate/summary/:facilityId
func (ctrl *controller) GetSummary(c *gin.Context) {
	holderID, ok := ctrl.holderID(c)
	if !ok {
		return
	}

	facilityID, err := uuid.Parse(c.Param("facilityId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid facility ID", nil, err.Error())
		return
	}

	summary, err := ctrl.service.SummaryFor(c.Request.Context(), holderID, facilityID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to build summary", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Summary retrieved successfully", summary, nil)
}

func (ctrl *controller) holderID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("holder_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return uuid.Nil, false
	}

	holderID, err := uuid.Parse(raw.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid holder ID format", nil, nil)
		return uuid.Nil, false
	}
	return holderID, true
}

func (ctrl *controller) readPlateImage(c *gin.Context) ([]byte, error) {
	fileHeader, err := c.FormFile("plate_image")
	if err != nil {
		return nil, err
	}

	if fileHeader.Size > ctrl.config.Upload.MaxSize {
		return nil, errors.New("plate image exceeds maximum upload size")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(io.LimitReader(file, ctrl.config.Upload.MaxSize))
}
