package fx

import (
	"gemini-keydoctor/internal/logs"

	"go.uber.org/fx"
)

// CoreAppOptions expects *config.Config to be supplied by the caller, which
// has already applied .env files and CLI flags.
var CoreAppOptions = fx.Options(
	fx.Provide(
		logs.NewLogger,
		logs.NewSugaredLogger,
	),
	fx.Invoke(logs.RegisterLifecycle),
)
