package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tradewise/internal/api/controllers"
	"tradewise/internal/repositories"
	"tradewise/internal/services"
)

var Module = fx.Provide(
	provideUserRepo, provideAccountService, provideAccountController)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideAccountService(userRepo repositories.UserRepository) services.AccountServiceInterface {
	return services.NewAccountService(userRepo)
}

func provideAccountController(accountService services.AccountServiceInterface) *controllers.AccountController {
	return controllers.NewAccountController(accountService)
}
