package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"gemini-keydoctor/config"
	"gemini-keydoctor/internal/diagnostic"
	"gemini-keydoctor/internal/logs"
	"gemini-keydoctor/internal/pkg/render"
)

const defaultEnvFile = ".env"

type rootOptions struct {
	envFile string
	jsonOut bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "keydoctor",
		Short: "Check that a Gemini API key is valid, reachable and has quota left",
		Long: `keydoctor runs three checks against the Gemini API with the key in ` + config.CredentialEnv + `:
  1. key format heuristic (local)
  2. list models (connectivity)
  3. a one-word generateContent call (quota)

Exit status is 0 only when every check passes.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnostic(cmd, opts)
		},
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_ = cmd.Usage()
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.envFile, "env-file", defaultEnvFile, "Dotenv file loaded before reading the environment (missing default file is ignored)")
	pf.String("model", "", "Model used for the quota probe (env GEMINI_MODEL)")
	pf.String("base-url", "", "Gemini API base URL (env GEMINI_BASE_URL)")
	rootCmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print the report as JSON instead of the console layout")

	rootCmd.AddCommand(newServeCmd(opts))
	return rootCmd
}

func runDiagnostic(cmd *cobra.Command, opts *rootOptions) error {
	v, err := loadViper(cmd, opts, nil)
	if err != nil {
		return err
	}
	// A missing key is reported ahead of any other config problem.
	if v.GetString(config.CredentialEnv) == "" {
		return diagnostic.ErrMissingCredential
	}
	cfg, err := config.NewConfig(v)
	if err != nil {
		return err
	}

	logger, err := logs.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	doctor := newDoctor(cfg, logger.Sugar())

	out := cmd.OutOrStdout()
	console := render.NewConsole(out)

	var progress diagnostic.Progress
	if !opts.jsonOut {
		console.Header()
		progress = console
	}

	report, err := doctor.Run(cmd.Context(), cfg.APIKey, progress)
	if err != nil {
		return err
	}

	if opts.jsonOut {
		if err := render.JSONReport(out, report); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	} else {
		console.Summary(report)
	}

	if !report.Passed() {
		return errChecksFailed
	}
	return nil
}

func newDoctor(cfg *config.Config, logger *zap.SugaredLogger) *diagnostic.Doctor {
	return diagnostic.NewDoctor(diagnostic.DoctorConfig{
		Prober: diagnostic.NewClient(diagnostic.ClientConfig{
			BaseURL:             cfg.BaseURL,
			Model:               cfg.Model,
			ConnectivityTimeout: cfg.ConnectivityTimeout,
			QuotaTimeout:        cfg.QuotaTimeout,
			Logger:              logger,
		}),
		Model:  cfg.Model,
		Logger: logger,
	})
}

// loadViper is the only place the process environment is read. Flags win
// over env vars, env vars over the dotenv file.
func loadViper(cmd *cobra.Command, opts *rootOptions, extra map[string]*pflag.Flag) (*viper.Viper, error) {
	if err := loadDotEnv(opts.envFile, cmd.Flags().Changed("env-file")); err != nil {
		return nil, err
	}

	v := config.NewViper()
	bindings := map[string]*pflag.Flag{
		"GEMINI_MODEL":    cmd.Flags().Lookup("model"),
		"GEMINI_BASE_URL": cmd.Flags().Lookup("base-url"),
	}
	for key, f := range extra {
		bindings[key] = f
	}
	for key, f := range bindings {
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", f.Name, err)
		}
	}

	return v, nil
}

func loadConfig(cmd *cobra.Command, opts *rootOptions, extra map[string]*pflag.Flag) (*config.Config, error) {
	v, err := loadViper(cmd, opts, extra)
	if err != nil {
		return nil, err
	}
	return config.NewConfig(v)
}

func loadDotEnv(path string, explicit bool) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}
