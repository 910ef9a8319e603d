package fx

import (
	"go.uber.org/fx"

	"gemini-keydoctor/internal/app/diagnose"
	"gemini-keydoctor/internal/router"
)

var Module = fx.Options(
	fx.Provide(router.AsRoute(diagnose.NewHandler)),
)
