package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/agripulse/internal/domain/models"
	"github.com/mamadbah2/agripulse/internal/service/dashboard"
	"github.com/mamadbah2/agripulse/internal/service/kpi"
	"github.com/mamadbah2/agripulse/internal/service/records"
	"github.com/mamadbah2/agripulse/internal/service/settings"
)

// APIHandler exposes the farm management operations over HTTP.
type APIHandler struct {
	records   *records.Service
	resolver  *settings.Resolver
	dashboard *dashboard.Service
	logger    *zap.Logger
}

// NewAPIHandler constructs the HTTP handler adapter.
func NewAPIHandler(recordsSvc *records.Service, resolver *settings.Resolver, dashboardSvc *dashboard.Service, logger *zap.Logger) *APIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{
		records:   recordsSvc,
		resolver:  resolver,
		dashboard: dashboardSvc,
		logger:    logger,
	}
}

// State reports the persisted farm type selection and whether initial setup
// has run.
func (h *APIHandler) State(c *gin.Context) {
	ft, err := h.records.CurrentFarmType(c.Request.Context())
	if err != nil {
		h.fail(c, "failed loading app state", err)
		return
	}
	saved, err := h.records.SettingsSaved(c.Request.Context())
	if err != nil {
		h.fail(c, "failed loading app state", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"currentFarmType": ft,
		"settingsSaved":   saved,
	})
}

// SwitchFarmType persists a new farm type selection.
func (h *APIHandler) SwitchFarmType(c *gin.Context) {
	var req struct {
		FarmType string `json:"farmType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ft, err := models.ParseFarmType(req.FarmType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.dashboard.SwitchFarmType(c.Request.Context(), ft); err != nil {
		h.fail(c, "failed switching farm type", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"currentFarmType": ft})
}

// GetSettings returns the resolved settings view for a farm type.
func (h *APIHandler) GetSettings(c *gin.Context) {
	ft, ok := h.farmType(c)
	if !ok {
		return
	}

	resolved, err := h.resolver.Resolve(c.Request.Context(), ft)
	if err != nil {
		h.fail(c, "failed loading settings", err)
		return
	}

	c.JSON(http.StatusOK, resolved)
}

// SaveSettings stores shared and per-farm settings in one shot.
func (h *APIHandler) SaveSettings(c *gin.Context) {
	ft, ok := h.farmType(c)
	if !ok {
		return
	}

	var in models.SettingsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.records.SaveSettings(c.Request.Context(), ft, in); err != nil {
		h.fail(c, "failed saving settings", err)
		return
	}

	resolved, err := h.resolver.Resolve(c.Request.Context(), ft)
	if err != nil {
		h.fail(c, "failed loading settings", err)
		return
	}

	c.JSON(http.StatusOK, resolved)
}

// ListLogs returns a farm type's daily log history, oldest first.
func (h *APIHandler) ListLogs(c *gin.Context) {
	ft, ok := h.farmType(c)
	if !ok {
		return
	}

	logs, err := h.records.DailyLogs(c.Request.Context(), ft)
	if err != nil {
		h.fail(c, "failed loading daily logs", err)
		return
	}
	if logs == nil {
		logs = []models.DailyLog{}
	}

	c.JSON(http.StatusOK, logs)
}

// SaveLog creates or updates a daily log entry.
func (h *APIHandler) SaveLog(c *gin.Context) {
	ft, ok := h.farmType(c)
	if !ok {
		return
	}

	var in models.DailyLogInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.records.SaveDailyLog(c.Request.Context(), ft, in)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "log entry not found"})
			return
		}
		h.fail(c, "failed saving daily log", err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Income returns the filtered income ledger plus the farm type's valid
// categories.
func (h *APIHandler) Income(c *gin.Context) {
	ft, ok := h.farmType(c)
	if !ok {
		return
	}

	period := records.LedgerPeriod(c.DefaultQuery("period", string(records.PeriodAll)))
	switch period {
	case records.PeriodToday, records.PeriodWeek, records.PeriodMonth, records.PeriodAll:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown period"})
		return
	}

	ledger, err := h.records.Ledger(c.Request.Context(), ft, period)
	if err != nil {
		h.fail(c, "failed loading income ledger", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ledger":     ledger,
		"categories": models.IncomeCategories(ft),
	})
}

// SaveIncome creates or updates an income entry.
func (h *APIHandler) SaveIncome(c *gin.Context) {
	ft, ok := h.farmType(c)
	if !ok {
		return
	}

	var in models.IncomeEntryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.records.SaveIncomeEntry(c.Request.Context(), ft, in)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "income entry not found"})
			return
		}
		h.fail(c, "failed saving income entry", err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Feed reports the shared feed pool: purchase history plus live stock
// metrics.
func (h *APIHandler) Feed(c *gin.Context) {
	purchases, err := h.records.FeedPurchases(c.Request.Context())
	if err != nil {
		h.fail(c, "failed loading feed purchases", err)
		return
	}
	logs, err := h.records.LogsByFarmType(c.Request.Context())
	if err != nil {
		h.fail(c, "failed loading daily logs", err)
		return
	}
	metrics := kpi.FeedStock(purchases, logs)

	// Newest purchases first for display; stored order stays untouched.
	view := make([]models.FeedPurchase, len(purchases))
	copy(view, purchases)
	sort.SliceStable(view, func(i, j int) bool {
		di, _ := models.ParseDate(view[i].Date)
		dj, _ := models.ParseDate(view[j].Date)
		return dj.Before(di)
	})

	c.JSON(http.StatusOK, gin.H{
		"purchases": view,
		"metrics":   metrics,
	})
}

// AddFeedPurchase appends a purchase to the shared pool.
func (h *APIHandler) AddFeedPurchase(c *gin.Context) {
	var in models.FeedPurchaseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	purchase, err := h.records.AddFeedPurchase(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "failed saving feed purchase", err)
		return
	}

	c.JSON(http.StatusCreated, purchase)
}

// DeleteFeedPurchase removes a purchase by id.
func (h *APIHandler) DeleteFeedPurchase(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid purchase id"})
		return
	}

	if err := h.records.DeleteFeedPurchase(c.Request.Context(), id); err != nil {
		if errors.Is(err, records.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "feed purchase not found"})
			return
		}
		h.fail(c, "failed deleting feed purchase", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Dashboard recomputes and returns the full dashboard view for a farm type.
func (h *APIHandler) Dashboard(c *gin.Context) {
	ft, ok := h.farmType(c)
	if !ok {
		return
	}

	view, err := h.dashboard.Refresh(c.Request.Context(), ft)
	if err != nil {
		h.fail(c, "failed building dashboard", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *APIHandler) farmType(c *gin.Context) (models.FarmType, bool) {
	ft, err := models.ParseFarmType(c.Param("farmType"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return ft, true
}

func (h *APIHandler) fail(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
