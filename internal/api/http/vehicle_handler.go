package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"wheelshare-backend/internal/domain"
	"wheelshare-backend/internal/service"
)

type VehicleHandler struct {
	vehicles service.VehicleService
	reviews  service.ReviewService
}

func NewVehicleHandler(vehicles service.VehicleService, reviews service.ReviewService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles, reviews: reviews}
}

func pathID(r *http.Request) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	return int32(id), err
}

type vehicleRequest struct {
	Make             string   `json:"make"`
	Model            string   `json:"model"`
	Year             int32    `json:"year"`
	VehicleType      string   `json:"vehicle_type"`
	Category         string   `json:"category"`
	Location         string   `json:"location"`
	PricePerDayCents int64    `json:"price_per_day_cents"`
	Availability     bool     `json:"availability"`
	Images           []string `json:"images"`
	Description      string   `json:"description"`
}

func (req *vehicleRequest) toDomain() *domain.Vehicle {
	return &domain.Vehicle{
		Make:             req.Make,
		Model:            req.Model,
		Year:             req.Year,
		VehicleType:      domain.VehicleType(req.VehicleType),
		Category:         domain.VehicleCategory(req.Category),
		Location:         req.Location,
		PricePerDayCents: req.PricePerDayCents,
		Availability:     req.Availability,
		Images:           req.Images,
		Description:      req.Description,
	}
}

func (req *vehicleRequest) validate() string {
	if req.Make == "" || req.Model == "" {
		return "make and model are required"
	}
	if req.PricePerDayCents <= 0 {
		return "price_per_day_cents must be positive"
	}
	switch domain.VehicleType(req.VehicleType) {
	case domain.VehicleTypeCar, domain.VehicleTypeBike, domain.VehicleTypeSUV:
	default:
		return "vehicle_type must be car, bike or suv"
	}
	switch domain.VehicleCategory(req.Category) {
	case domain.VehicleCategoryEconomy, domain.VehicleCategoryLuxury, domain.VehicleCategoryElectric:
	default:
		return "category must be economy, luxury or electric"
	}
	return ""
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := userFrom(r.Context())

	var req vehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	vehicle := req.toDomain()
	if err := h.vehicles.AddVehicle(r.Context(), actor.ID, vehicle); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	vehicle, err := h.vehicles.GetVehicle(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := userFrom(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	var req vehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	vehicle := req.toDomain()
	vehicle.ID = id
	updated, err := h.vehicles.UpdateVehicle(r.Context(), actor.ID, vehicle)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := userFrom(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	if err := h.vehicles.DeleteVehicle(r.Context(), actor.ID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *VehicleHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.VehicleSearchFilter{
		Search:      q.Get("search"),
		VehicleType: q.Get("vehicle_type"),
		Location:    q.Get("location"),
		Category:    q.Get("category"),
	}
	if v := q.Get("min_price_cents"); v != "" {
		filter.MinPriceCents, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := q.Get("max_price_cents"); v != "" {
		filter.MaxPriceCents, _ = strconv.ParseInt(v, 10, 64)
	}

	vehicles, err := h.vehicles.SearchVehicles(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, _ := userFrom(r.Context())
	vehicles, err := h.vehicles.ListMyVehicles(r.Context(), actor.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.ListPendingVehicles(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

type moderateRequest struct {
	Approve bool `json:"approve"`
}

func (h *VehicleHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	var req moderateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vehicle, err := h.vehicles.ModerateVehicle(r.Context(), id, req.Approve)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

type bookedDatesResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *VehicleHandler) BookedDates(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	bookings, err := h.vehicles.BookedDates(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dates := make([]bookedDatesResponse, 0, len(bookings))
	for _, b := range bookings {
		dates = append(dates, bookedDatesResponse{StartDate: b.StartDate, EndDate: b.EndDate})
	}
	writeJSON(w, http.StatusOK, dates)
}

func (h *VehicleHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	reviews, err := h.reviews.ListVehicleReviews(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *VehicleHandler) UploadAuth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.vehicles.UploadAuthParams())
}
