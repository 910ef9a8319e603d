package fx

import (
	"go.uber.org/fx"

	"gemini-keydoctor/internal/server"
)

var Module = fx.Options(
	fx.Provide(server.NewHTTPServer),
	fx.Invoke(RegisterHTTPServerLifecycle),
)
