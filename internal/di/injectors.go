//go:build wireinject
// +build wireinject

package di

import (
	"activitydash/internal"
	"activitydash/internal/backend"
	"activitydash/internal/controllers"
	"activitydash/internal/monitor"
	"activitydash/internal/providers"
	"activitydash/internal/services"
	"activitydash/internal/structures"
	"activitydash/internal/views"

	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		backend.NewClient,
		services.NewHooks,
		services.NewViewStateService,
		services.NewToastNotifier,
		services.NewBadgePoller,
		services.NewUploadWorkflow,
		services.NewProfileService,
		services.NewJobService,
		services.NewSettingsService,
		services.NewReadStateSync,
		services.NewDashboardService,
		views.NewRenderer,
		monitor.NewBackendMonitor,

		controllers.NewHealthController,
		controllers.NewDashboardController,
		controllers.NewCommandController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}
