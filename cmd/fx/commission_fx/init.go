package commission_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tradewise/internal/api/controllers"
	"tradewise/internal/repositories"
	"tradewise/internal/services"
)

var Module = fx.Provide(
	provideCommissionRepo, provideCommissionService, provideCommissionController)

func provideCommissionRepo(db *gorm.DB) repositories.ICommissionRepository {
	return repositories.NewCommissionRepository(db)
}

func provideCommissionService(commissionRepo repositories.ICommissionRepository) services.CommissionServiceInterface {
	return services.NewCommissionService(commissionRepo)
}

func provideCommissionController(commissionService services.CommissionServiceInterface) *controllers.CommissionController {
	return controllers.NewCommissionController(commissionService)
}
