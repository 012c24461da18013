package controllers

import (
	"net/http"
	"strconv"

	"healthycore/services"
	"healthycore/utils"

	"github.com/gin-gonic/gin"
)

// AdminController backs the back-office: CRUD over foods, tags and
// users. Routes are mounted behind the admin middleware.
type AdminController struct {
	Foods *services.FoodService
	Users *services.UserService
}

func NewAdminController(foods *services.FoodService, users *services.UserService) *AdminController {
	return &AdminController{Foods: foods, Users: users}
}

// ---------- Foods ----------

func (h *AdminController) CreateFood(c *gin.Context) {
	var body services.FoodInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	imageURL := ""
	if body.Image != "" {
		url, err := utils.UploadBase64ImageToS3(body.Image, "food-images")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		imageURL = url
	}

	food, err := h.Foods.Create(c.Request.Context(), body, imageURL)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, food)
}

func (h *AdminController) UpdateFood(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var body services.FoodInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	imageURL := ""
	if body.Image != "" {
		url, err := utils.UploadBase64ImageToS3(body.Image, "food-images")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		imageURL = url
	}

	food, err := h.Foods.Update(c.Request.Context(), id, body, imageURL)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

// DeleteFood hard-deletes the food and its nutritional history.
func (h *AdminController) DeleteFood(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Foods.Delete(c.Request.Context(), id); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------- Tags ----------

func (h *AdminController) CreateTag(c *gin.Context) {
	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tag, err := h.Foods.CreateTag(c.Request.Context(), body.Name)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (h *AdminController) DeleteTag(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Foods.DeleteTag(c.Request.Context(), id); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------- Users ----------

func (h *AdminController) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, total, err := h.Users.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		abortWith(c, err)
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{
			"id":         u.ID,
			"email":      u.Email,
			"first_name": u.FirstName,
			"last_name":  u.LastName,
			"role":       u.Role,
			"created_at": u.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"users": out, "total": total, "page": page, "limit": limit})
}

func (h *AdminController) DeleteUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Users.DeleteUser(c.Request.Context(), id); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
