package controllers

import (
	"net/http"
	"time"

	"healthycore/services"

	"github.com/gin-gonic/gin"
)

type NutritionController struct {
	Svc *services.NutritionService
}

func NewNutritionController(svc *services.NutritionService) *NutritionController {
	return &NutritionController{Svc: svc}
}

func (h *NutritionController) LogEntry(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body services.LogEntryInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.Svc.LogEntry(c.Request.Context(), userID, body)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *NutritionController) DeleteEntry(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	entryID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.Svc.DeleteEntry(c.Request.Context(), userID, entryID); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NutritionController) GetDailySummary(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	date := time.Now()
	if d, ok := dateQuery(c, "date"); !ok {
		return
	} else if d != nil {
		date = *d
	}

	summary, err := h.Svc.DailySummary(c.Request.Context(), userID, date)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *NutritionController) GetTodayBreakdown(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	breakdown, err := h.Svc.TodayBreakdown(c.Request.Context(), userID)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

func (h *NutritionController) GetHistory(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	start, ok := dateQuery(c, "start")
	if !ok {
		return
	}
	end, ok := dateQuery(c, "end")
	if !ok {
		return
	}
	if start != nil && end != nil && end.Before(*start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be on/after start"})
		return
	}

	history, err := h.Svc.History(c.Request.Context(), userID, start, end)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
