package content_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tradewise/internal/api/controllers"
	"tradewise/internal/repositories"
	"tradewise/internal/services"
)

var Module = fx.Provide(
	provideContentRepo, provideContentService, provideContentController)

func provideContentRepo(db *gorm.DB) repositories.IContentRepository {
	return repositories.NewContentRepository(db)
}

func provideContentService(contentRepo repositories.IContentRepository, subRepo repositories.ISubscriptionRepository) services.ContentServiceInterface {
	return services.NewContentService(contentRepo, subRepo)
}

func provideContentController(contentService services.ContentServiceInterface) *controllers.ContentController {
	return controllers.NewContentController(contentService)
}
