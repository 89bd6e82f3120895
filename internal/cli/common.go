package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mekedron/tabelog-cli/internal/domain"
	tabeloggateway "github.com/mekedron/tabelog-cli/internal/gateway/tabelog"
	"github.com/mekedron/tabelog-cli/internal/service/output"
)

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return ""
}

type globalFlags struct {
	Format  string
	Profile string
	Output  string
	Verbose bool
}

const sharedGlobalFlagAnnotation = "tabelog_cli_shared_global"

func addGlobalFlags(cmd *cobra.Command, flags *globalFlags) {
	addSharedGlobalFlag(cmd, "format", func() {
		cmd.Flags().StringVar(&flags.Format, "format", "table", "Output format: table, json, or yaml.")
	})
	addSharedGlobalFlag(cmd, "profile", func() {
		cmd.Flags().StringVar(&flags.Profile, "profile", "", "Profile name for saved local search defaults.")
	})
	addSharedGlobalFlag(cmd, "output", func() {
		cmd.Flags().StringVar(&flags.Output, "output", "", "Write output to the given file in addition to stdout.")
	})
	addSharedGlobalFlag(cmd, "verbose", func() {
		cmd.Flags().BoolVar(&flags.Verbose, "verbose", false, "Enable verbose output (prints upstream request trace and detailed error diagnostics).")
	})
}

func addSharedGlobalFlag(cmd *cobra.Command, name string, register func()) {
	if cmd.Flags().Lookup(name) != nil {
		return
	}
	register()
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		return
	}
	if flag.Annotations == nil {
		flag.Annotations = map[string][]string{}
	}
	flag.Annotations[sharedGlobalFlagAnnotation] = []string{"true"}
}

func resolveProfileLabel(profileName string) string {
	profile := strings.TrimSpace(profileName)
	if profile == "" {
		return "anonymous"
	}
	return profile
}

func parseOutputFormat(format string) (output.Format, error) {
	return output.ParseFormat(format)
}

func writeTable(cmd *cobra.Command, text string, outputPath string) error {
	return output.WriteOutput(cmd.OutOrStdout(), text, outputPath)
}

func writeMachinePayload(cmd *cobra.Command, env output.Envelope, format output.Format, outputPath string) error {
	rendered, err := output.RenderPayload(env, format)
	if err != nil {
		return err
	}
	return output.WriteOutput(cmd.OutOrStdout(), rendered, outputPath)
}

func emitError(
	cmd *cobra.Command,
	format output.Format,
	profile string,
	outputPath string,
	code string,
	message string,
) error {
	if format == output.FormatTable {
		if err := output.WriteOutput(cmd.OutOrStdout(), message, outputPath); err != nil {
			return err
		}
		return &exitError{code: 1}
	}
	env := output.BuildEnvelope(profile, nil, []string{}, map[string]any{
		"code":    code,
		"message": message,
	})
	if err := writeMachinePayload(cmd, env, format, outputPath); err != nil {
		return err
	}
	return &exitError{code: 1}
}

func emitUpstreamError(
	cmd *cobra.Command,
	format output.Format,
	profile string,
	outputPath string,
	verbose bool,
	err error,
) error {
	if err == nil {
		err = tabeloggateway.ErrUpstream
	}
	if verbose {
		return emitError(cmd, format, profile, outputPath, "TABELOG_UPSTREAM_ERROR", err.Error())
	}

	message := tabeloggateway.ErrUpstream.Error() + " (use --verbose for details)"
	var upstreamErr *tabeloggateway.UpstreamRequestError
	if errors.As(err, &upstreamErr) && upstreamErr.StatusCode > 0 {
		message = fmt.Sprintf("%s (status %d, use --verbose for details)", tabeloggateway.ErrUpstream.Error(), upstreamErr.StatusCode)
	}
	return emitError(cmd, format, profile, outputPath, "TABELOG_UPSTREAM_ERROR", message)
}

// loadProfile resolves the selected profile from local config. A missing
// config or unknown profile is not fatal when no name was asked for
// explicitly; commands then run with bare flag values.
func loadProfile(ctx context.Context, deps Dependencies, profileName string) (domain.Profile, error) {
	name := strings.TrimSpace(profileName)
	if deps.Config == nil {
		if name == "" {
			return domain.Profile{}, nil
		}
		return domain.Profile{}, fmt.Errorf("profile %q requested but no config store is available", name)
	}
	cfg, err := deps.Config.Load(ctx)
	if err != nil {
		if name == "" {
			return domain.Profile{}, nil
		}
		return domain.Profile{}, err
	}
	profile, ok := cfg.FindProfile(name)
	if !ok {
		if name == "" {
			return domain.Profile{}, nil
		}
		return domain.Profile{}, fmt.Errorf("profile %q not found in config", name)
	}
	return profile, nil
}

func requiredArg(name string) string {
	return fmt.Sprintf("%s is required", name)
}

func fallbackString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
