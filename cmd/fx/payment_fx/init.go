package payment_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"tradewise/internal/api/controllers"
	"tradewise/internal/services"
	"tradewise/pkg/gateway"
)

var Module = fx.Provide(
	provideGateway, providePaymentService, providePaymentController,
)

func provideGateway() gateway.Gateway {
	cfg := gateway.RazorpayConfig{
		KeyID:         os.Getenv("RAZORPAY_KEY_ID"),
		KeySecret:     os.Getenv("RAZORPAY_KEY_SECRET"),
		WebhookSecret: os.Getenv("RAZORPAY_WEBHOOK_SECRET"),
	}

	gw, err := gateway.NewRazorpayGateway(cfg)
	if err != nil {
		log.Printf("Error initializing Razorpay gateway: %v", err)
		return nil
	}

	return gw
}

func providePaymentService(db *gorm.DB, gw gateway.Gateway, settings services.SettingsServiceInterface, mail services.IMailService) services.PaymentService {
	instance, err := services.NewPaymentService(db, gw, settings, mail)
	if err != nil {
		log.Printf("Error initializing PaymentService: %v", err)
	}

	return instance
}

func providePaymentController(paymentService services.PaymentService) *controllers.PaymentController {
	return controllers.NewPaymentController(paymentService)
}
