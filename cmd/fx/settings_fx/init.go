package settings_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tradewise/internal/api/controllers"
	"tradewise/internal/repositories"
	"tradewise/internal/services"
)

var Module = fx.Provide(
	provideSettingsRepo, provideSettingsService, provideSettingsController)

func provideSettingsRepo(db *gorm.DB) repositories.ISettingsRepository {
	return repositories.NewSettingsRepository(db)
}

func provideSettingsService(repo repositories.ISettingsRepository) services.SettingsServiceInterface {
	return services.NewSettingsService(repo)
}

func provideSettingsController(settingsService services.SettingsServiceInterface) *controllers.SettingsController {
	return controllers.NewSettingsController(settingsService)
}
