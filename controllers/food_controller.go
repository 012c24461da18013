package controllers

import (
	"net/http"
	"strconv"

	"healthycore/models"
	"healthycore/services"
	"healthycore/utils"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	Svc *services.FoodService
}

func NewFoodController(svc *services.FoodService) *FoodController {
	return &FoodController{Svc: svc}
}

func (h *FoodController) ListFoods(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	tagID, _ := strconv.ParseUint(c.Query("tag_id"), 10, 64)

	foods, total, err := h.Svc.List(
		c.Request.Context(),
		c.Query("q"), c.Query("category"), uint(tagID),
		page, limit,
	)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"foods": foods,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (h *FoodController) GetFood(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	food, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

func (h *FoodController) GetFoodByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "barcode required"})
		return
	}
	food, err := h.Svc.GetByBarcode(c.Request.Context(), barcode)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

// ContributeFood lets an end user add a food to the catalog. Origin is
// forced; the barcode invariant still applies for products.
func (h *FoodController) ContributeFood(c *gin.Context) {
	if _, ok := userIDFromCtx(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body services.FoodInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	body.Origin = models.FoodOriginUser

	imageURL := ""
	if body.Image != "" {
		url, err := utils.UploadBase64ImageToS3(body.Image, "food-images")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		imageURL = url
	}

	food, err := h.Svc.Create(c.Request.Context(), body, imageURL)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, food)
}

func (h *FoodController) ListTags(c *gin.Context) {
	tags, err := h.Svc.ListTags(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}
