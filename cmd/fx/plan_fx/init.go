package plan_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tradewise/internal/api/controllers"
	"tradewise/internal/repositories"
	"tradewise/internal/services"
)

var Module = fx.Provide(
	providePlanRepo, providePlanService, providePlanController)

func providePlanRepo(db *gorm.DB) repositories.IPlanRepository {
	return repositories.NewPlanRepository(db)
}

func providePlanService(planRepo repositories.IPlanRepository, settings services.SettingsServiceInterface) services.PlanServiceInterface {
	return services.NewPlanService(planRepo, settings)
}

func providePlanController(planService services.PlanServiceInterface) *controllers.PlanController {
	return controllers.NewPlanController(planService)
}
