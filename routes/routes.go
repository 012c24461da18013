package routes

import (
	"healthycore/controllers"
	"healthycore/middlewares"
	"healthycore/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	prefSvc := services.NewPreferenceService(db)
	foodSvc := services.NewFoodService(db)
	nutritionSvc := services.NewNutritionService(db, prefSvc)
	userSvc := services.NewUserService(db, prefSvc)
	authSvc := services.NewAuthService(db)

	authCtl := controllers.NewAuthController(authSvc, userSvc)
	userCtl := controllers.NewUserController(userSvc, prefSvc)
	foodCtl := controllers.NewFoodController(foodSvc)
	nutritionCtl := controllers.NewNutritionController(nutritionSvc)
	estimationCtl := controllers.NewEstimationController(prefSvc)
	adminCtl := controllers.NewAdminController(foodSvc, userSvc)

	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
		auth.POST("/forgot-password", authCtl.ForgotPassword)
		auth.POST("/reset-password", authCtl.ResetPassword)
	}

	// Public onboarding data + estimations
	r.GET("/data/plans", userCtl.ListPlans)
	r.GET("/data/diets", userCtl.ListDiets)
	r.GET("/data/sedentary-levels", userCtl.ListSedentaryLevels)
	r.POST("/estimations/target-weight/validate", estimationCtl.ValidateTargetWeight)
	r.POST("/estimations/target-weight", estimationCtl.AssessTargetWeight)

	// Public food catalog (read-only)
	foods := r.Group("/foods")
	{
		foods.GET("", foodCtl.ListFoods)
		foods.GET("/:id", foodCtl.GetFood)
		foods.GET("/barcode/:barcode", foodCtl.GetFoodByBarcode)
	}
	r.GET("/tags", foodCtl.ListTags)

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", userCtl.GetProfile)
		user.PUT("/profile", userCtl.UpdateProfile)
		user.POST("/weight", userCtl.AddWeightSample)
		user.GET("/weight/history", userCtl.GetWeightHistory)
		user.GET("/preferences", userCtl.GetPreference)
		user.PUT("/preferences", userCtl.SetPreference)
	}

	// Protected nutrition ledger
	nutrition := r.Group("/nutrition")
	nutrition.Use(middlewares.AuthMiddleware())
	{
		nutrition.POST("/entries", nutritionCtl.LogEntry)
		nutrition.DELETE("/entries/:id", nutritionCtl.DeleteEntry)
		nutrition.GET("/summary", nutritionCtl.GetDailySummary)
		nutrition.GET("/today", nutritionCtl.GetTodayBreakdown)
		nutrition.GET("/history", nutritionCtl.GetHistory)
	}

	// User contributions to the catalog
	r.POST("/foods", middlewares.AuthMiddleware(), foodCtl.ContributeFood)

	// Admin back-office
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.AdminMiddleware())
	{
		admin.POST("/foods", adminCtl.CreateFood)
		admin.PUT("/foods/:id", adminCtl.UpdateFood)
		admin.DELETE("/foods/:id", adminCtl.DeleteFood)
		admin.POST("/tags", adminCtl.CreateTag)
		admin.DELETE("/tags/:id", adminCtl.DeleteTag)
		admin.GET("/users", adminCtl.ListUsers)
		admin.DELETE("/users/:id", adminCtl.DeleteUser)
	}

	return r
}
