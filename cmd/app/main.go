package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"tradewise/cmd/fx/account_fx"
	"tradewise/cmd/fx/commission_fx"
	"tradewise/cmd/fx/content_fx"
	"tradewise/cmd/fx/db_fx"
	"tradewise/cmd/fx/download_fx"
	"tradewise/cmd/fx/mail_fx"
	"tradewise/cmd/fx/payment_fx"
	"tradewise/cmd/fx/plan_fx"
	"tradewise/cmd/fx/settings_fx"
	"tradewise/cmd/fx/subscription_fx"
	"tradewise/internal/api/controllers"
	"tradewise/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on the environment")
	}

	app := fx.New(
		db_fx.Module,
		mail_fx.Module,
		settings_fx.Module,
		plan_fx.Module,
		payment_fx.Module,
		subscription_fx.Module,
		account_fx.Module,
		content_fx.Module,
		download_fx.Module,
		commission_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server on :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	planController *controllers.PlanController,
	paymentController *controllers.PaymentController,
	subscriptionController *controllers.SubscriptionController,
	settingsController *controllers.SettingsController,
	contentController *controllers.ContentController,
	downloadController *controllers.DownloadController,
	commissionController *controllers.CommissionController) *gin.Engine {

	r := gin.Default()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r,
		accountController,
		planController,
		paymentController,
		subscriptionController,
		settingsController,
		contentController,
		downloadController,
		commissionController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	planController *controllers.PlanController,
	paymentController *controllers.PaymentController,
	subscriptionController *controllers.SubscriptionController,
	settingsController *controllers.SettingsController,
	contentController *controllers.ContentController,
	downloadController *controllers.DownloadController,
	commissionController *controllers.CommissionController) {

	accounts := r.Group("/accounts")
	accounts.POST("/register", accountController.Register)
	accounts.POST("/login", accountController.Login)
	accounts.GET("/me", middleware.JWTAuthMiddleware(), accountController.Me)

	r.GET("/settings", settingsController.GetSettings)
	r.GET("/plans", planController.ListPlans)
	r.GET("/plans/:id", planController.GetPlan)
	r.GET("/faqs", contentController.ListFAQs)

	payments := r.Group("/payments")
	payments.POST("/webhook", paymentController.HandleWebhook)
	payments.Use(middleware.JWTAuthMiddleware())
	payments.POST("/create-order", paymentController.CreateOrder)
	payments.POST("/verify", paymentController.VerifyPayment)
	payments.GET("/transactions", paymentController.ListTransactions)
	payments.GET("/transactions/:id", paymentController.GetTransaction)

	subscriptions := r.Group("/subscriptions", middleware.JWTAuthMiddleware())
	subscriptions.GET("/active", subscriptionController.GetActive)
	subscriptions.POST("/cancel", subscriptionController.Cancel)

	analyses := r.Group("/analyses", middleware.JWTAuthMiddleware())
	analyses.GET("", contentController.ListAnalyses)
	analyses.GET("/:slug", contentController.GetAnalysis)

	tutorials := r.Group("/tutorials", middleware.JWTAuthMiddleware())
	tutorials.GET("", contentController.ListTutorials)
	tutorials.GET("/:slug", contentController.GetTutorial)

	downloads := r.Group("/downloads")
	downloads.GET("/:id/fetch", downloadController.Fetch)
	downloads.Use(middleware.JWTAuthMiddleware())
	downloads.GET("", downloadController.ListFiles)
	downloads.POST("/:id/link", downloadController.IssueLink)

	commissions := r.Group("/commissions", middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("associate"))
	commissions.GET("", commissionController.ListMine)

	admin := r.Group("/admin", middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("admin"))
	admin.GET("/plans", planController.ListAllPlans)
	admin.POST("/plans", planController.CreatePlan)
	admin.PUT("/plans/:id", planController.UpdatePlan)
	admin.DELETE("/plans/:id", planController.DeletePlan)
	admin.PUT("/settings", settingsController.UpsertSetting)
	admin.POST("/analyses", contentController.SaveAnalysis)
	admin.DELETE("/analyses/:id", contentController.DeleteAnalysis)
	admin.POST("/tutorials", contentController.SaveTutorial)
	admin.DELETE("/tutorials/:id", contentController.DeleteTutorial)
	admin.POST("/faqs", contentController.SaveFAQ)
	admin.DELETE("/faqs/:id", contentController.DeleteFAQ)
	admin.PUT("/commissions/:id/status", commissionController.UpdateStatus)
	admin.PUT("/users/:id/role", accountController.UpdateRole)
}
