package internal

import (
	"activitydash/internal/controllers"
	"activitydash/internal/providers"
	"net/http"
)

func InitRoutes(dashboardController *controllers.DashboardController, commandController *controllers.CommandController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/{$}", http.HandlerFunc(dashboardController.Page))
	routers.Get("/views/{section}", http.HandlerFunc(dashboardController.Section))
	routers.Post("/commands", http.HandlerFunc(commandController.Dispatch))
	return routers
}
