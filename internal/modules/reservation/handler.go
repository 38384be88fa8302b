package reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stayfinder/internal/domain"
	"stayfinder/internal/pkg/jwt"
	"stayfinder/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.Create)
	rg.GET("/reservations", h.List)
	rg.POST("/reservations/:id/cancel", h.Cancel)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), sessionFrom(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, viewFromDomain(*created))
}

func (h *Handler) List(c *gin.Context) {
	status := domain.ReservationStatus(c.DefaultQuery("status", string(domain.ReservationActive)))
	if status != domain.ReservationActive && status != domain.ReservationCancelled {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "status must be active or cancelled")
		return
	}

	items, err := h.service.List(c.Request.Context(), sessionFrom(c), status)
	if err != nil {
		h.respondError(c, err)
		return
	}

	views := make([]ReservationView, 0, len(items))
	for _, r := range items {
		views = append(views, viewFromDomain(r))
	}
	response.Success(c, http.StatusOK, gin.H{"reservations": views})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "reservation id must be an integer")
		return
	}

	if err := h.service.Cancel(c.Request.Context(), sessionFrom(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cancelled": id})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrGuestNameRequired),
		errors.Is(err, ErrTaxIDRequired),
		errors.Is(err, ErrBadBillType),
		errors.Is(err, ErrBadStayInterval):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrUnreachable):
		response.Error(c, http.StatusServiceUnavailable, "UPSTREAM_UNREACHABLE", "Booking service is unreachable")
	default:
		var rej *RejectedError
		if errors.As(err, &rej) {
			response.Error(c, http.StatusBadGateway, "UPSTREAM_REJECTED", rej.Message)
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Reservation operation failed")
	}
}

func sessionFrom(c *gin.Context) *domain.Session {
	return &domain.Session{
		AccessToken: c.GetString(jwt.ContextTokenKey),
		UserID:      c.GetInt64(jwt.ContextUserIDKey),
	}
}
