package search

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stayfinder/internal/domain"
	"stayfinder/internal/pkg/jwt"
	"stayfinder/internal/pkg/response"
)

type Handler struct {
	service  *Service
	enricher Enricher
}

func NewHandler(service *Service, enricher Enricher) *Handler {
	return &Handler{service: service, enricher: enricher}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/search", h.Search)
}

// Search handles POST /api/v1/search: compile, query, enrich, respond.
// Each terminal outcome maps to its own response category so an empty
// result never looks like a failure to the client.
func (h *Handler) Search(c *gin.Context) {
	var form RawFilterForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}

	criteria, err := Compile(form)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", verr.Error(), gin.H{
				"field": verr.Field,
				"kind":  verr.Kind,
			})
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	session := &domain.Session{
		AccessToken: c.GetString(jwt.ContextTokenKey),
		UserID:      c.GetInt64(jwt.ContextUserIDKey),
	}

	rooms, err := h.service.Search(c.Request.Context(), session, criteria)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoMatches):
			response.Success(c, http.StatusOK, SearchResult{Rooms: []RoomView{}, Nights: criteria.Nights()})
		case errors.Is(err, ErrUnreachable):
			response.Error(c, http.StatusServiceUnavailable, "UPSTREAM_UNREACHABLE", "Room search service is unreachable")
		default:
			var rej *RejectedError
			if errors.As(err, &rej) {
				response.Error(c, http.StatusBadGateway, "UPSTREAM_REJECTED", rej.Message)
				return
			}
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Search failed")
		}
		return
	}

	enriched := h.enricher.Enrich(c.Request.Context(), session, rooms)

	views := make([]RoomView, 0, len(enriched))
	for _, r := range enriched {
		views = append(views, RoomView{
			RoomID:        r.RoomID,
			HotelID:       r.HotelID,
			HotelName:     r.HotelName,
			Country:       r.Country,
			City:          r.City,
			HotelStars:    r.HotelStars,
			Capacity:      r.Capacity,
			PricePerNight: r.PricePerNight,
			TotalPrice:    r.TotalPrice,
			ImageURLs:     r.ImageURLs,
		})
	}
	response.Success(c, http.StatusOK, SearchResult{Rooms: views, Nights: criteria.Nights()})
}
