package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/gate-pass-service/internal/model"
	"github.com/iliyamo/gate-pass-service/internal/queue"
	"github.com/iliyamo/gate-pass-service/internal/repository"
	"github.com/iliyamo/gate-pass-service/internal/utils"
)

// VehicleStore is what the vehicle endpoints need from the repository.
type VehicleStore interface {
	Create(ctx context.Context, v model.Vehicle) (model.Vehicle, error)
	List(ctx context.Context) ([]model.Vehicle, error)
	GetByNumber(ctx context.Context, number string) (model.Vehicle, error)
	GetByID(ctx context.Context, id uint64) (model.Vehicle, error)
	Delete(ctx context.Context, id uint64) error
}

// EventPublisher decouples the handler from the broker. A nil publisher
// disables events entirely (tests, broker-less deployments).
type EventPublisher interface {
	PassIssued(ctx context.Context, ev queue.PassIssuedEvent) error
	PassRevoked(ctx context.Context, ev queue.PassRevokedEvent) error
}

// VehicleHandler bundles dependencies for the vehicle endpoints.
type VehicleHandler struct {
	Vehicles VehicleStore
	Events   EventPublisher
}

func NewVehicleHandler(vehicles VehicleStore, events EventPublisher) *VehicleHandler {
	return &VehicleHandler{Vehicles: vehicles, Events: events}
}

// ----- DTOs -----

// Field names match the mobile app payloads.
type vehicleReq struct {
	VehicleNumber    string `json:"vehicleNumber"`
	PassNumber       string `json:"passNumber"`
	VehicleType      string `json:"vehicleType"`
	OwnerName        string `json:"ownerName"`
	FlatNumber       string `json:"flatNumber"`
	DlOrRcNumber     string `json:"dlOrRcNumber"`
	OwnerContact     string `json:"ownerContact"`
	AlternateContact string `json:"alternateContact"`
	Email            string `json:"email"`
	PermanentAddress string `json:"permanentAddress"`
	FlatOwnerName    string `json:"flatOwnerName"`
	FlatOwnerContact string `json:"flatOwnerContact"`
	ValidTill        string `json:"validTill"` // YYYY-MM-DD
}

type vehicleResp struct {
	ID               uint64 `json:"id"`
	VehicleNumber    string `json:"vehicleNumber"`
	PassNumber       string `json:"passNumber"`
	VehicleType      string `json:"vehicleType,omitempty"`
	OwnerName        string `json:"ownerName"`
	FlatNumber       string `json:"flatNumber"`
	DlOrRcNumber     string `json:"dlOrRcNumber"`
	OwnerContact     string `json:"ownerContact"`
	AlternateContact string `json:"alternateContact,omitempty"`
	Email            string `json:"email,omitempty"`
	PermanentAddress string `json:"permanentAddress"`
	FlatOwnerName    string `json:"flatOwnerName"`
	FlatOwnerContact string `json:"flatOwnerContact,omitempty"`
	ValidTill        string `json:"validTill"`
}

const dateLayout = "2006-01-02"

func toVehicleResp(v model.Vehicle) vehicleResp {
	return vehicleResp{
		ID:               v.ID,
		VehicleNumber:    v.VehicleNumber,
		PassNumber:       v.PassNumber,
		VehicleType:      v.VehicleType,
		OwnerName:        v.OwnerName,
		FlatNumber:       v.FlatNumber,
		DlOrRcNumber:     v.DlOrRcNumber,
		OwnerContact:     v.OwnerContact,
		AlternateContact: v.AlternateContact,
		Email:            v.Email,
		PermanentAddress: v.PermanentAddress,
		FlatOwnerName:    v.FlatOwnerName,
		FlatOwnerContact: v.FlatOwnerContact,
		ValidTill:        v.ValidTill.Format(dateLayout),
	}
}

// Create registers a vehicle pass. The plate is normalized before anything
// else so every later comparison (validation, uniqueness, search) sees the
// canonical form. Uniqueness itself is settled by the store's unique
// indexes; this handler only translates the outcome.
func (h *VehicleHandler) Create(c echo.Context) error {
	var req vehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "VALIDATION", "message": "invalid body"})
	}

	plate := utils.NormalizePlate(req.VehicleNumber)
	req.PassNumber = strings.TrimSpace(req.PassNumber)

	var missing []string
	for field, v := range map[string]string{
		"vehicleNumber":    plate,
		"passNumber":       req.PassNumber,
		"ownerName":        strings.TrimSpace(req.OwnerName),
		"flatNumber":       strings.TrimSpace(req.FlatNumber),
		"dlOrRcNumber":     strings.TrimSpace(req.DlOrRcNumber),
		"ownerContact":     strings.TrimSpace(req.OwnerContact),
		"permanentAddress": strings.TrimSpace(req.PermanentAddress),
		"flatOwnerName":    strings.TrimSpace(req.FlatOwnerName),
		"validTill":        strings.TrimSpace(req.ValidTill),
	} {
		if v == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "MISSING_FIELD", "message": "required fields missing", "fields": missing})
	}

	if !utils.ValidPlate(plate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "INVALID_FORMAT", "message": "invalid vehicle number format (e.g. MH12AB1234)"})
	}
	validTill, err := time.Parse(dateLayout, strings.TrimSpace(req.ValidTill))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "INVALID_FORMAT", "message": "validTill must be a YYYY-MM-DD date"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v, err := h.Vehicles.Create(ctx, model.Vehicle{
		VehicleNumber:    plate,
		PassNumber:       req.PassNumber,
		VehicleType:      strings.TrimSpace(req.VehicleType),
		OwnerName:        strings.TrimSpace(req.OwnerName),
		FlatNumber:       strings.TrimSpace(req.FlatNumber),
		DlOrRcNumber:     strings.TrimSpace(req.DlOrRcNumber),
		OwnerContact:     strings.TrimSpace(req.OwnerContact),
		AlternateContact: strings.TrimSpace(req.AlternateContact),
		Email:            strings.TrimSpace(req.Email),
		PermanentAddress: strings.TrimSpace(req.PermanentAddress),
		FlatOwnerName:    strings.TrimSpace(req.FlatOwnerName),
		FlatOwnerContact: strings.TrimSpace(req.FlatOwnerContact),
		ValidTill:        validTill,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateVehicleNumber):
			return c.JSON(http.StatusConflict, echo.Map{"error": "DUPLICATE_VEHICLE_NUMBER", "message": "vehicle number already registered"})
		case errors.Is(err, repository.ErrDuplicatePassNumber):
			return c.JSON(http.StatusConflict, echo.Map{"error": "DUPLICATE_PASS_NUMBER", "message": "pass number already in use"})
		}
		log.Errorf("vehicle create failed: %v", err)
		return internalError(c)
	}

	if h.Events != nil {
		ev := queue.PassIssuedEvent{
			EventID:       uuid.NewString(),
			VehicleID:     v.ID,
			VehicleNumber: v.VehicleNumber,
			PassNumber:    v.PassNumber,
			OwnerName:     v.OwnerName,
			FlatNumber:    v.FlatNumber,
			ValidTill:     v.ValidTill.Format(dateLayout),
			IssuedBy:      accountIDFromCtx(c),
			IssuedAt:      time.Now().UTC().Format(time.RFC3339),
		}
		go func() { _ = h.Events.PassIssued(context.Background(), ev) }()
	}

	return c.JSON(http.StatusCreated, toVehicleResp(v))
}

// List returns every record in insertion order. No pagination at this
// system's scale.
func (h *VehicleHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Vehicles.List(ctx)
	if err != nil {
		log.Errorf("vehicle list failed: %v", err)
		return internalError(c)
	}
	out := make([]vehicleResp, 0, len(items))
	for _, v := range items {
		out = append(out, toVehicleResp(v))
	}
	return c.JSON(http.StatusOK, out)
}

// Search looks up a vehicle by exact normalized plate. A miss is the normal
// "unregistered vehicle at the gate" outcome and answers 404 with a stable
// code so the client shows an empty state, not an error banner. Exact match
// only: resolving ambiguous plate readings is the client's problem.
func (h *VehicleHandler) Search(c echo.Context) error {
	query := utils.NormalizePlate(c.QueryParam("query"))
	if query == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "MISSING_FIELD", "message": "query is required", "fields": []string{"query"}})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v, err := h.Vehicles.GetByNumber(ctx, query)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "NOT_FOUND", "message": "no vehicle registered with this number"})
		}
		log.Errorf("vehicle search failed: %v", err)
		return internalError(c)
	}
	return c.JSON(http.StatusOK, toVehicleResp(v))
}

// Delete removes a record by id. Irreversible; the route is gated to the
// superadmin. The record is loaded first so the revocation event can name
// the plate and pass that disappeared.
func (h *VehicleHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "VALIDATION", "message": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v, err := h.Vehicles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return vehicleNotFound(c)
		}
		log.Errorf("vehicle load for delete failed: %v", err)
		return internalError(c)
	}
	if err := h.Vehicles.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) { // lost a race with another delete
			return vehicleNotFound(c)
		}
		log.Errorf("vehicle delete failed: %v", err)
		return internalError(c)
	}

	if h.Events != nil {
		ev := queue.PassRevokedEvent{
			EventID:       uuid.NewString(),
			VehicleID:     v.ID,
			VehicleNumber: v.VehicleNumber,
			PassNumber:    v.PassNumber,
			RevokedBy:     accountIDFromCtx(c),
			RevokedAt:     time.Now().UTC().Format(time.RFC3339),
		}
		go func() { _ = h.Events.PassRevoked(context.Background(), ev) }()
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "vehicle deleted"})
}

func vehicleNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": "NOT_FOUND", "message": "vehicle not found"})
}
