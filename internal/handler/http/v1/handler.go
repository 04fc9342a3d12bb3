package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/safetrail_monitoring/internal/config"
	"github.com/shenikar/safetrail_monitoring/internal/escalation"
	"github.com/shenikar/safetrail_monitoring/internal/models"
	"github.com/shenikar/safetrail_monitoring/internal/route"
	"github.com/shenikar/safetrail_monitoring/internal/service"
	"github.com/shenikar/safetrail_monitoring/internal/session"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	monitoringService service.MonitoringService
	logger            *logrus.Logger
	validate          *validator.Validate
	cfg               *config.Config
}

func NewHandler(monitoringService service.MonitoringService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		monitoringService: monitoringService,
		logger:            logger,
		validate:          validator.New(),
		cfg:               cfg,
	}
}

// @Summary Save user safety profile
// @Description Create or update a user's safety profile. Requires API key.
// @Tags Profiles
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param profile body SaveProfileRequest true "Profile save request"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /user/profile [post]
func (h *Handler) saveProfile(c *gin.Context) {
	var input SaveProfileRequest
	log := h.logger.WithField("method", "saveProfile")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToProfileModel(input)
	if err := h.monitoringService.SaveProfile(c.Request.Context(), model); err != nil {
		log.WithError(err).Error("Failed to save profile in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelToProfileResponse(model))
}

// @Summary Get user safety profile
// @Description Get a user's safety profile by user ID. Requires API key.
// @Tags Profiles
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param user_id path string true "User ID"
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Profile not found"
// @Router /user/profile/{user_id} [get]
func (h *Handler) getProfile(c *gin.Context) {
	userID := c.Param("user_id")
	log := h.logger.WithField("method", "getProfile").WithField("user_id", userID)

	profile, err := h.monitoringService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		log.WithError(err).Warn("Failed to get profile from service")
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, ModelToProfileResponse(profile))
}

// @Summary Start journey monitoring
// @Description Start a monitoring session for a user's journey. Requires API key.
// @Tags Journeys
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param journey body StartJourneyRequest true "Journey start request"
// @Success 201 {object} map[string]string "Monitoring started"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Journey already active"
// @Router /journey/start [post]
func (h *Handler) startJourney(c *gin.Context) {
	var input StartJourneyRequest
	log := h.logger.WithField("method", "startJourney")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.monitoringService.StartJourney(c.Request.Context(), DTOToJourneyRequest(input)); err != nil {
		if errors.Is(err, session.ErrSessionExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "journey already active"})
			return
		}
		log.WithError(err).Error("Failed to start journey in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "monitoring started"})
}

// @Summary Stop journey monitoring
// @Description Stop the active monitoring session for a user. Requires API key.
// @Tags Journeys
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param user_id path string true "User ID"
// @Success 200 {object} map[string]string "Monitoring stopped"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No active journey"
// @Router /journey/stop/{user_id} [post]
func (h *Handler) stopJourney(c *gin.Context) {
	userID := c.Param("user_id")
	log := h.logger.WithField("method", "stopJourney").WithField("user_id", userID)

	if err := h.monitoringService.StopJourney(c.Request.Context(), userID); err != nil {
		if errors.Is(err, session.ErrNoActiveSession) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active journey"})
			return
		}
		log.WithError(err).Error("Failed to stop journey in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "monitoring stopped"})
}

// @Summary Acknowledge safety check-in
// @Description Acknowledge the pending safety check-in prompt for a user. Requires API key.
// @Tags CheckIns
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param ack body CheckInAckRequest true "Check-in acknowledgment"
// @Success 200 {object} map[string]string "Acknowledged"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No active journey"
// @Router /checkin/ack [post]
func (h *Handler) acknowledgeCheckIn(c *gin.Context) {
	var input CheckInAckRequest
	log := h.logger.WithField("method", "acknowledgeCheckIn")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.monitoringService.AcknowledgeCheckIn(c.Request.Context(), input.UserID); err != nil {
		if errors.Is(err, session.ErrNoActiveSession) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active journey"})
			return
		}
		log.WithError(err).Error("Failed to acknowledge check-in in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "acknowledged"})
}

// @Summary Trigger emergency escalation
// @Description Manually open an escalation case for a user's active journey. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param trigger body EmergencyTriggerRequest true "Emergency trigger request"
// @Success 201 {object} CaseResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No active journey"
// @Failure 409 {object} map[string]string "Case already open"
// @Router /emergency/trigger [post]
func (h *Handler) triggerEmergency(c *gin.Context) {
	var input EmergencyTriggerRequest
	log := h.logger.WithField("method", "triggerEmergency")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var loc *models.Location
	if input.Location != nil {
		loc = &models.Location{Latitude: input.Location.Latitude, Longitude: input.Location.Longitude}
	}

	esc, err := h.monitoringService.TriggerEmergency(c.Request.Context(), input.UserID, loc, input.Message, input.AlertType)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNoActiveSession):
			c.JSON(http.StatusNotFound, gin.H{"error": "no active journey"})
		case errors.Is(err, escalation.ErrAlreadyOpen):
			c.JSON(http.StatusConflict, gin.H{"error": "escalation case already open"})
		default:
			log.WithError(err).Error("Failed to trigger emergency in service")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}
	c.JSON(http.StatusCreated, ModelToCaseResponse(esc))
}

// @Summary Get escalation case
// @Description Get an escalation case by its ID from the archive. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Case ID"
// @Success 200 {object} CaseResponse
// @Failure 400 {object} map[string]string "Invalid case ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Case not found"
// @Router /emergency/{id} [get]
func (h *Handler) getCase(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid case ID"})
		return
	}
	log := h.logger.WithField("method", "getCase").WithField("id", id)

	esc, err := h.monitoringService.GetCase(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get case from service")
		c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
		return
	}
	c.JSON(http.StatusOK, ModelToCaseResponse(esc))
}

// @Summary Cancel escalation case
// @Description Cancel an open escalation case while it is still cancellable. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Case ID"
// @Param action body EscalationActionRequest true "Cancellation request"
// @Success 200 {object} map[string]string "Cancelled"
// @Failure 400 {object} map[string]string "Invalid case ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No matching open case"
// @Failure 409 {object} map[string]string "Case no longer cancellable"
// @Router /emergency/{id}/cancel [post]
func (h *Handler) cancelEscalation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid case ID"})
		return
	}
	log := h.logger.WithField("method", "cancelEscalation").WithField("id", id)

	var input EscalationActionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.monitoringService.CancelEscalation(c.Request.Context(), input.UserID, id); err != nil {
		switch {
		case errors.Is(err, session.ErrNoActiveSession), errors.Is(err, escalation.ErrNoOpenCase):
			c.JSON(http.StatusNotFound, gin.H{"error": "no matching open case"})
		case errors.Is(err, escalation.ErrNotCancellable):
			c.JSON(http.StatusConflict, gin.H{"error": "case is no longer cancellable"})
		default:
			log.WithError(err).Error("Failed to cancel escalation in service")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// @Summary Resolve escalation case
// @Description Resolve an escalation case after authorities have been contacted. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Case ID"
// @Param action body EscalationActionRequest true "Resolution request"
// @Success 200 {object} map[string]string "Resolved"
// @Failure 400 {object} map[string]string "Invalid case ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No matching open case"
// @Failure 409 {object} map[string]string "Case is still cancellable"
// @Router /emergency/{id}/resolve [post]
func (h *Handler) resolveEscalation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid case ID"})
		return
	}
	log := h.logger.WithField("method", "resolveEscalation").WithField("id", id)

	var input EscalationActionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.monitoringService.ResolveEscalation(c.Request.Context(), input.UserID, id); err != nil {
		switch {
		case errors.Is(err, session.ErrNoActiveSession), errors.Is(err, escalation.ErrNoOpenCase):
			c.JSON(http.StatusNotFound, gin.H{"error": "no matching open case"})
		case errors.Is(err, escalation.ErrNotResolvable):
			c.JSON(http.StatusConflict, gin.H{"error": "case is still cancellable, use cancel"})
		default:
			log.WithError(err).Error("Failed to resolve escalation in service")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "resolved"})
}

// @Summary Resolve route between two endpoints
// @Description Resolve a route between two endpoints given as "lat,lng" literals or place names. Requires API key.
// @Tags Routes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param route body ResolveRouteRequest true "Route resolution request"
// @Success 200 {object} RouteResponse
// @Failure 400 {object} map[string]string "Invalid request body or coordinates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Location not found"
// @Router /route/resolve [post]
func (h *Handler) resolveRoute(c *gin.Context) {
	var input ResolveRouteRequest
	log := h.logger.WithField("method", "resolveRoute")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resolved, err := h.monitoringService.ResolveRoute(c.Request.Context(), input.Start, input.End)
	if err != nil {
		var notFound *route.LocationNotFoundError
		switch {
		case errors.As(err, &notFound):
			c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		case errors.Is(err, route.ErrInvalidCoordinates):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
		default:
			log.WithError(err).Error("Failed to resolve route in service")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, ModelToRouteResponse(resolved))
}

// @Summary Get monitoring statistics
// @Description Get the count of active journeys and recently active users. Requires API key.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	stats, err := h.monitoringService.GetStats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get stats from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{ActiveJourneys: stats.ActiveJourneys, UserCount: stats.UserCount})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
