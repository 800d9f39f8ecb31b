package router

import (
	"smart-money/internal/config"
	"smart-money/internal/handler"
	"smart-money/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// uploaded profile pictures
	r.Static("/uploads", cfg.Upload.Dir)

	jwtSecret := cfg.JWT.Secret
	issuer := cfg.JWT.Issuer

	authHandler := handler.NewAuthHandler(db, jwtSecret, issuer, cfg.JWT.ExpireHours)
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/logout", authHandler.Logout)
	r.POST("/auth/refresh-token", authHandler.RefreshToken)

	userHandler := handler.NewUserHandler(db, jwtSecret, issuer, cfg.JWT.ExpireHours, cfg.Upload.Dir)
	r.GET("/users", userHandler.ListUsers)
	r.GET("/users/:id", userHandler.GetUserByID)
	r.PUT("/users/:id", userHandler.UpdateUser)
	r.PUT("/users/:id/upload-profile", userHandler.UploadProfilePicture)
	r.DELETE("/users/:id", userHandler.DeleteUser)

	// session-bound endpoints
	protected := r.Group("")
	protected.Use(middleware.Auth(jwtSecret, issuer, db))
	protected.GET("/users/me", userHandler.GetMe)
	protected.POST("/users/verify-password", authHandler.VerifyPassword)

	expenseHandler := handler.NewExpenseHandler(db)
	r.GET("/expenses", expenseHandler.ListExpenses)
	r.GET("/expenses/owner/:ownerId", expenseHandler.ListExpensesByOwner)
	r.GET("/expenses/:id", expenseHandler.GetExpenseByID)
	r.POST("/expenses", expenseHandler.CreateExpense)
	r.PUT("/expenses/:id", expenseHandler.UpdateExpense)
	r.DELETE("/expenses/:id", expenseHandler.DeleteExpense)

	incomeHandler := handler.NewIncomeHandler(db)
	r.GET("/incomes", incomeHandler.ListIncomes)
	r.GET("/incomes/owner/:ownerId", incomeHandler.ListIncomesByOwner)
	r.GET("/incomes/:id", incomeHandler.GetIncomeByID)
	r.POST("/incomes", incomeHandler.CreateIncome)
	r.PUT("/incomes/:id", incomeHandler.UpdateIncome)
	r.DELETE("/incomes/:id", incomeHandler.DeleteIncome)

	balanceHandler := handler.NewBalanceHandler(db, cfg.App.DefaultCurrency)
	r.GET("/balance", balanceHandler.GetBalance)

	exportHandler := handler.NewExportHandler(db)
	r.GET("/export/csv", exportHandler.ExportCSV)
	r.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
