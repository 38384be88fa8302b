package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stayfinder/internal/backend"
	"stayfinder/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/countries", h.Countries)
	rg.GET("/cities", h.Cities)
	rg.GET("/room_facilities", h.RoomFacilities)
	rg.GET("/hotel_facilities", h.HotelFacilities)
	rg.GET("/hotels/:id", h.Hotel)
}

func (h *Handler) Countries(c *gin.Context) {
	countries, err := h.service.Countries(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"countries": countries})
}

func (h *Handler) Cities(c *gin.Context) {
	country := c.Query("country")
	if country == "" {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "country query parameter is required")
		return
	}
	cities, err := h.service.Cities(c.Request.Context(), country)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cities": cities})
}

func (h *Handler) RoomFacilities(c *gin.Context) {
	facilities, err := h.service.RoomFacilities(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room_facilities": facilities})
}

func (h *Handler) HotelFacilities(c *gin.Context) {
	facilities, err := h.service.HotelFacilities(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hotel_facilities": facilities})
}

func (h *Handler) Hotel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "hotel id must be an integer")
		return
	}

	hotel, err := h.service.Hotel(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id_hotel":     hotel.ID,
		"name":         hotel.Name,
		"stars":        hotel.Stars,
		"geo_latitude": hotel.Latitude,
		"geo_length":   hotel.Longitude,
		"address": gin.H{
			"country":  hotel.Country,
			"city":     hotel.City,
			"street":   hotel.Street,
			"building": hotel.Building,
			"zip_code": hotel.ZipCode,
		},
		"facilities": hotel.Facilities,
	})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	if errors.Is(err, backend.ErrUnreachable) {
		response.Error(c, http.StatusServiceUnavailable, "UPSTREAM_UNREACHABLE", "Catalog service is unreachable")
		return
	}
	var rej *backend.RejectedError
	if errors.As(err, &rej) {
		status := http.StatusBadGateway
		if rej.Status == http.StatusNotFound {
			status = http.StatusNotFound
		}
		response.Error(c, status, "UPSTREAM_REJECTED", rej.Message)
		return
	}
	response.Error(c, http.StatusInternalServerError, "INTERNAL", "Catalog lookup failed")
}
