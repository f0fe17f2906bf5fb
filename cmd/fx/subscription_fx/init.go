package subscription_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tradewise/internal/api/controllers"
	"tradewise/internal/repositories"
	"tradewise/internal/services"
)

var Module = fx.Provide(
	provideSubscriptionRepo, provideSubscriptionService, provideSubscriptionController)

func provideSubscriptionRepo(db *gorm.DB) repositories.ISubscriptionRepository {
	return repositories.NewSubscriptionRepository(db)
}

func provideSubscriptionService(subRepo repositories.ISubscriptionRepository) services.SubscriptionServiceInterface {
	return services.NewSubscriptionService(subRepo)
}

func provideSubscriptionController(subscriptionService services.SubscriptionServiceInterface) *controllers.SubscriptionController {
	return controllers.NewSubscriptionController(subscriptionService)
}
