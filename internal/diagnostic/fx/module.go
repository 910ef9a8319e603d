package fx

import (
	"gemini-keydoctor/config"
	"gemini-keydoctor/internal/diagnostic"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module(
	"diagnostic",
	fx.Provide(
		NewClientConfig,
		fx.Annotate(diagnostic.NewClient, fx.As(new(diagnostic.Prober))),
		NewDoctorConfig,
		diagnostic.NewDoctor,
	),
)

type NewClientConfigParams struct {
	fx.In

	Logger *zap.SugaredLogger
	Cfg    *config.Config
}

func NewClientConfig(p NewClientConfigParams) diagnostic.ClientConfig {
	return diagnostic.ClientConfig{
		BaseURL:             p.Cfg.BaseURL,
		Model:               p.Cfg.Model,
		ConnectivityTimeout: p.Cfg.ConnectivityTimeout,
		QuotaTimeout:        p.Cfg.QuotaTimeout,
		Logger:              p.Logger,
	}
}

type NewDoctorConfigParams struct {
	fx.In

	Prober diagnostic.Prober
	Logger *zap.SugaredLogger
	Cfg    *config.Config
}

func NewDoctorConfig(p NewDoctorConfigParams) diagnostic.DoctorConfig {
	return diagnostic.DoctorConfig{
		Prober: p.Prober,
		Model:  p.Cfg.Model,
		Logger: p.Logger,
	}
}
