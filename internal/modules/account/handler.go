package account

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stayfinder/internal/backend"
	"stayfinder/internal/domain"
	"stayfinder/internal/pkg/jwt"
	"stayfinder/internal/pkg/response"
	"stayfinder/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
	rg.POST("/auth/register", h.Register)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.PUT("/auth/password", h.ChangePassword)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid credentials payload", fields)
		return
	}

	session, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, http.StatusUnauthorized)
		return
	}
	response.Success(c, http.StatusOK, SessionView{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    session.TokenType,
		UserID:       session.UserID,
		Email:        session.Email,
		FirstName:    session.FirstName,
		LastName:     session.LastName,
	})
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid registration payload", fields)
		return
	}

	if err := h.service.Register(c.Request.Context(), req); err != nil {
		h.respondError(c, err, http.StatusConflict)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"registered": true})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid password payload", fields)
		return
	}

	session := &domain.Session{
		AccessToken: c.GetString(jwt.ContextTokenKey),
		UserID:      c.GetInt64(jwt.ContextUserIDKey),
	}
	if err := h.service.ChangePassword(c.Request.Context(), session, req); err != nil {
		h.respondError(c, err, http.StatusBadRequest)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"changed": true})
}

func (h *Handler) respondError(c *gin.Context, err error, rejectedStatus int) {
	if errors.Is(err, backend.ErrUnreachable) {
		response.Error(c, http.StatusServiceUnavailable, "UPSTREAM_UNREACHABLE", "Credential service is unreachable")
		return
	}
	var rej *backend.RejectedError
	if errors.As(err, &rej) {
		response.Error(c, rejectedStatus, "UPSTREAM_REJECTED", rej.Message)
		return
	}
	response.Error(c, http.StatusInternalServerError, "INTERNAL", "Account operation failed")
}
