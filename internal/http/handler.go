package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hsadv/quotes-service/internal/security"
	"github.com/hsadv/quotes-service/internal/service"
)

type Handler struct {
	quotes  *service.QuoteService
	monitor *security.Monitor
	log     zerolog.Logger
}

func NewHandler(quotes *service.QuoteService, monitor *security.Monitor, log zerolog.Logger) *Handler {
	return &Handler{quotes: quotes, monitor: monitor, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware, submitLimiter gin.HandlerFunc) {
	public := router.Group("/api")
	public.POST("/quotes", submitLimiter, h.submitQuote)

	protected := router.Group("/api")
	protected.Use(authMiddleware)
	protected.GET("/quotes/recent", h.listRecent)
	protected.DELETE("/quotes/:id", h.deleteQuote)
	protected.GET("/quotes/metrics", h.metrics)
	protected.POST("/quotes/export", h.exportQuotes)
	protected.GET("/quotes/:id/export/pdf", h.exportQuotePDF)
	protected.GET("/security/events", h.securityEvents)
	protected.GET("/security/statistics", h.securityStatistics)
}

type submitQuoteRequest struct {
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	Phone                string  `json:"phone"`
	Company              *string `json:"company"`
	ServiceType          string  `json:"serviceType"`
	ServiceLevel         *string `json:"serviceLevel"`
	ServiceSpecification *string `json:"serviceSpecification"`
	Urgency              string  `json:"urgency"`
	ProjectDescription   *string `json:"projectDescription"`
	ConsentMarketing     bool    `json:"consentMarketing"`
}

func (h *Handler) submitQuote(c *gin.Context) {
	var req submitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.quotes.Submit(c.Request.Context(), service.SubmitQuoteInput{
		Name:                 req.Name,
		Email:                req.Email,
		Phone:                req.Phone,
		Company:              req.Company,
		ServiceType:          req.ServiceType,
		ServiceLevel:         req.ServiceLevel,
		ServiceSpecification: req.ServiceSpecification,
		Urgency:              req.Urgency,
		ProjectDescription:   req.ProjectDescription,
		ConsentMarketing:     req.ConsentMarketing,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": result.Message,
		"id":      result.Quote.ID,
	})
}

func (h *Handler) listRecent(c *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	quotes, err := h.quotes.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotes": quotes})
}

func (h *Handler) deleteQuote(c *gin.Context) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.quotes.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) metrics(c *gin.Context) {
	periodDays := 0
	if raw := strings.TrimSpace(c.Query("period_days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_days"})
			return
		}
		periodDays = parsed
	}

	metrics, err := h.quotes.Metrics(c.Request.Context(), periodDays)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

func (h *Handler) exportQuotes(c *gin.Context) {
	result, err := h.quotes.ExportQuotes(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	const contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}

func (h *Handler) exportQuotePDF(c *gin.Context) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	result, err := h.quotes.ExportQuotePDF(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handler) securityEvents(c *gin.Context) {
	limit := 50
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}
	eventType := security.EventType(strings.TrimSpace(c.Query("type")))

	c.JSON(http.StatusOK, gin.H{"events": h.monitor.Recent(limit, eventType)})
}

func (h *Handler) securityStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, h.monitor.Statistics())
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "fields": verr.Fields})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSubmissionFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao enviar formulário. Tente novamente."})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
