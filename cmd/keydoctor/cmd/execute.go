package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gemini-keydoctor/config"
	"gemini-keydoctor/internal/diagnostic"
)

var (
	errUsage = errors.New("usage")

	// errChecksFailed means the report was printed and at least one probe failed.
	errChecksFailed = errors.New("one or more checks failed")
)

func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		return 2
	case errors.Is(err, errChecksFailed):
		return 1
	case strings.HasPrefix(err.Error(), "unknown command"):
		fmt.Fprintln(stderr, "ERROR:", err)
		_ = root.Help()
		return 2
	case errors.Is(err, diagnostic.ErrMissingCredential):
		fmt.Fprintf(stderr, "❌ ERROR: %s environment variable not set\n", config.CredentialEnv)
		return 1
	default:
		fmt.Fprintln(stderr, "ERROR:", err)
		return 1
	}
}
