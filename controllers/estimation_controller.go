package controllers

import (
	"net/http"
	"time"

	"healthycore/services"
	"healthycore/utils"

	"github.com/gin-gonic/gin"
)

type EstimationController struct {
	Prefs *services.PreferenceService
}

func NewEstimationController(prefs *services.PreferenceService) *EstimationController {
	return &EstimationController{Prefs: prefs}
}

// ValidateTargetWeight only checks the BMI bounds; no profile needed.
func (h *EstimationController) ValidateTargetWeight(c *gin.Context) {
	var body struct {
		TargetWeight float64 `json:"target_weight" binding:"required,gt=0"`
		Height       float64 `json:"height" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, utils.ValidateTargetWeight(body.TargetWeight, body.Height))
}

// AssessTargetWeight returns the full estimation bundle. An invalid
// target is a 200 with isValid=false; it is user-correctable input.
func (h *EstimationController) AssessTargetWeight(c *gin.Context) {
	var body struct {
		CurrentWeight    float64 `json:"current_weight" binding:"required,gt=0"`
		TargetWeight     float64 `json:"target_weight" binding:"required,gt=0"`
		Height           float64 `json:"height" binding:"required,gt=0"`
		Sex              string  `json:"sex"`
		Birthday         string  `json:"birthday" binding:"required"` // YYYY-MM-DD
		SedentaryLevelID uint    `json:"sedentary_level_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	birthday, err := time.Parse("2006-01-02", body.Birthday)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid birthday, expected YYYY-MM-DD"})
		return
	}

	level, err := h.Prefs.GetSedentaryLevel(c.Request.Context(), body.SedentaryLevelID)
	if err != nil {
		abortWith(c, err)
		return
	}

	assessment := utils.AssessTargetWeight(
		body.CurrentWeight, body.TargetWeight, body.Height,
		body.Sex, birthday, level.Factor,
	)
	c.JSON(http.StatusOK, assessment)
}
