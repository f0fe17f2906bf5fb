package download_fx

import (
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"tradewise/internal/api/controllers"
	"tradewise/internal/repositories"
	"tradewise/internal/services"
)

var Module = fx.Provide(
	provideDownloadRepo, provideDownloadService, provideDownloadController)

func provideDownloadRepo(db *gorm.DB) repositories.IDownloadRepository {
	return repositories.NewDownloadRepository(db)
}

func provideDownloadService(
	downloadRepo repositories.IDownloadRepository,
	subRepo repositories.ISubscriptionRepository,
	planRepo repositories.IPlanRepository,
) services.DownloadServiceInterface {
	return services.NewDownloadService(
		downloadRepo,
		subRepo,
		planRepo,
		os.Getenv("APP_BASE_URL"),
		os.Getenv("DOWNLOAD_LINK_SECRET"),
	)
}

func provideDownloadController(downloadService services.DownloadServiceInterface) *controllers.DownloadController {
	return controllers.NewDownloadController(downloadService)
}
