package fx

import (
	"go.uber.org/fx"

	"gemini-keydoctor/internal/app/health"
	"gemini-keydoctor/internal/router"
)

var Module = fx.Options(
	fx.Provide(router.AsRoute(health.NewHandler)),
)
