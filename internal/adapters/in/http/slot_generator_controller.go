package http

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/medagenda/clinic-slots-generator/internal/config"
	"github.com/medagenda/clinic-slots-generator/internal/core/domain"
	"github.com/medagenda/clinic-slots-generator/internal/core/json_types"
	"github.com/medagenda/clinic-slots-generator/internal/core/ports/in"
	"github.com/medagenda/clinic-slots-generator/internal/core/ports/out"
)

type SlotGeneratorController struct {
	useCase in.SlotGeneratorUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewSlotGeneratorController(useCase in.SlotGeneratorUseCase, cfg *config.Config, logger out.LoggerPort) *SlotGeneratorController {
	return &SlotGeneratorController{
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}
}

func (c *SlotGeneratorController) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", c.health)

	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.GET("/slots/available", c.availableSlots)
		api.POST("/appointments", c.bookSlot)
	}
}

func (c *SlotGeneratorController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "version": c.cfg.App.Version})
}

func (c *SlotGeneratorController) availableSlots(ctx *gin.Context) {
	slots, err := c.useCase.GenerateAvailableSlots(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"slots": slots,
		"total": len(slots),
	})
}

type BookSlotRequest struct {
	ProfessionalID   string `json:"professionalId" binding:"required"`
	PatientID        string `json:"patientId" binding:"required"`
	ConsultationType string `json:"consultationType"`
	Date             string `json:"date" binding:"required"`
	Time             string `json:"time" binding:"required"`
}

func (c *SlotGeneratorController) bookSlot(ctx *gin.Context) {
	var req BookSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	professionalID, err := uuid.Parse(req.ProfessionalID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid professional ID format"})
		return
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patient ID format"})
		return
	}

	date, err := json_types.ParseDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	timeOfDay, err := json_types.ParseTimeOfDay(req.Time)
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid time format, expected HH:MM"})
		return
	}

	appointment, err := c.useCase.BookSlot(ctx.Request.Context(), in.BookingRequest{
		ProfessionalID:   professionalID,
		PatientID:        patientID,
		ConsultationType: req.ConsultationType,
		Date:             date,
		Time:             timeOfDay,
	})
	if err != nil {
		// Слот успел уйти конкурентной записи: клиент перезапрашивает свежие слоты
		if errors.Is(err, domain.ErrSlotTaken) {
			ctx.JSON(http.StatusConflict, gin.H{
				"error":   "Slot is already taken",
				"message": "Refetch available slots and pick another one",
			})
			return
		}

		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"appointment": appointment})
}

func (c *SlotGeneratorController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
				subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
