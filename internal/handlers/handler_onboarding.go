package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/chatledger/internal/apperrors"
	portssvc "github.com/SscSPs/chatledger/internal/core/ports/services"
	"github.com/SscSPs/chatledger/internal/dto"
	"github.com/SscSPs/chatledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// onboardingHandler handles the admin API for organizations and users.
type onboardingHandler struct {
	onboarding portssvc.OnboardingSvcFacade
}

func newOnboardingHandler(svc portssvc.OnboardingSvcFacade) *onboardingHandler {
	return &onboardingHandler{onboarding: svc}
}

// registerOnboardingRoutes registers organization and user administration routes.
func registerOnboardingRoutes(rg *gin.RouterGroup, svc portssvc.OnboardingSvcFacade) {
	h := newOnboardingHandler(svc)

	orgs := rg.Group("/organizations")
	{
		orgs.POST("", h.createOrganization)
		orgs.GET("/:orgID", h.getOrganization)
		orgs.POST("/:orgID/users", h.registerUser)
	}
	rg.PATCH("/users/:userID", h.updateUser)
}

// createOrganization godoc
// @Summary Create a new organization
// @Description Creates an organization with its base currency and reply language.
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   organization body dto.CreateOrganizationRequest true "Organization details"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown currency"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create organization"
// @Security BearerAuth
// @Router /api/v1/organizations [post]
func (h *onboardingHandler) createOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOrganization", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	org, err := h.onboarding.CreateOrganization(c.Request.Context(), req.ToCmd())
	if err != nil {
		respondError(c, logger, "Failed to create organization", err)
		return
	}

	logger.Info("Organization created", slog.Int64("organization_id", org.OrganizationID))
	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

// getOrganization godoc
// @Summary Get an organization
// @Description Retrieves an organization by its ID.
// @Tags organizations
// @Produce  json
// @Param   orgID path int true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 400 {object} map[string]string "Invalid organization ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Organization not found"
// @Failure 500 {object} map[string]string "Failed to retrieve organization"
// @Security BearerAuth
// @Router /api/v1/organizations/{orgID} [get]
func (h *onboardingHandler) getOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID, ok := pathID(c, "orgID")
	if !ok {
		return
	}

	org, err := h.onboarding.GetOrganization(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, logger, "Failed to retrieve organization", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// registerUser godoc
// @Summary Register a user
// @Description Registers a chat address as a user of the organization.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   orgID path int true "Organization ID"
// @Param   user body dto.RegisterUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Organization not found"
// @Failure 409 {object} map[string]string "Address already registered"
// @Failure 500 {object} map[string]string "Failed to register user"
// @Security BearerAuth
// @Router /api/v1/organizations/{orgID}/users [post]
func (h *onboardingHandler) registerUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID, ok := pathID(c, "orgID")
	if !ok {
		return
	}
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterUser", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.onboarding.RegisterUser(c.Request.Context(), req.ToCmd(orgID))
	if err != nil {
		respondError(c, logger, "Failed to register user", err)
		return
	}

	logger.Info("User registered", slog.Int64("organization_id", orgID), slog.Int64("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// updateUser godoc
// @Summary Rename a user
// @Description Updates the display name of a registered user.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   userID path int true "User ID"
// @Param   user body dto.UpdateUserRequest true "New name"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Failed to update user"
// @Security BearerAuth
// @Router /api/v1/users/{userID} [patch]
func (h *onboardingHandler) updateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateUser", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.onboarding.RenameUser(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondError(c, logger, "Failed to update user", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// respondError maps a service error to its status code. Internal details
// stay in the log.
func respondError(c *gin.Context, logger *slog.Logger, msg string, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": msg})
		return
	}
	logger.Warn(msg, slog.String("error", err.Error()))
	body := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		body = appErr.Message
	}
	c.JSON(status, gin.H{"error": body})
}
