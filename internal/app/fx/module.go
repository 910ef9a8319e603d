package fx

import (
	"go.uber.org/fx"

	diagnosefx "gemini-keydoctor/internal/app/diagnose/fx"
	healthfx "gemini-keydoctor/internal/app/health/fx"
	diagnosticfx "gemini-keydoctor/internal/diagnostic/fx"
	routerfx "gemini-keydoctor/internal/router/fx"
	serverfx "gemini-keydoctor/internal/server/fx"
)

// ServeModule is everything `keydoctor serve` needs on top of CoreAppOptions.
var ServeModule = fx.Options(
	diagnosticfx.Module,
	routerfx.CoreRouterOptions,
	serverfx.Module,
	healthfx.Module,
	diagnosefx.Module,
)
