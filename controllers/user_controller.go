package controllers

import (
	"net/http"

	"healthycore/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Users *services.UserService
	Prefs *services.PreferenceService
}

func NewUserController(users *services.UserService, prefs *services.PreferenceService) *UserController {
	return &UserController{Users: users, Prefs: prefs}
}

func (h *UserController) GetProfile(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	profile, err := h.Users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserController) UpdateProfile(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body services.ProfileInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Users.UpdateProfile(c.Request.Context(), userID, body); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------- Weight check-ins ----------

func (h *UserController) AddWeightSample(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body struct {
		Weight float64 `json:"weight" binding:"required,gt=0"`
		Height float64 `json:"height" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sample, err := h.Users.AddWeightSample(c.Request.Context(), userID, body.Weight, body.Height)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, sample)
}

func (h *UserController) GetWeightHistory(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	samples, err := h.Users.WeightHistory(c.Request.Context(), userID)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"samples": samples})
}

// ---------- Preferences ----------

func (h *UserController) GetPreference(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	pref, err := h.Prefs.GetCurrent(c.Request.Context(), userID)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, pref)
}

func (h *UserController) SetPreference(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body struct {
		DailyCalorieGoal float64 `json:"daily_calorie_goal" binding:"required,gt=0"`
		PlanID           uint    `json:"plan_id" binding:"required"`
		DietID           uint    `json:"diet_id" binding:"required"`
		SedentaryLevelID uint    `json:"sedentary_level_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pref, err := h.Prefs.Set(c.Request.Context(), userID,
		body.DailyCalorieGoal, body.PlanID, body.DietID, body.SedentaryLevelID)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, pref)
}

// ---------- Onboarding reference data ----------

func (h *UserController) ListPlans(c *gin.Context) {
	plans, err := h.Prefs.ListPlans(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (h *UserController) ListDiets(c *gin.Context) {
	diets, err := h.Prefs.ListDiets(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"diets": diets})
}

func (h *UserController) ListSedentaryLevels(c *gin.Context) {
	levels, err := h.Prefs.ListSedentaryLevels(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sedentary_levels": levels})
}
