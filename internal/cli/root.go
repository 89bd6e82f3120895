package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// sharedGlobalOptionOrder fixes how the shared flags appear in the root help.
var sharedGlobalOptionOrder = []string{
	"format",
	"profile",
	"output",
	"verbose",
}

// NewRootCommand builds the complete command tree.
func NewRootCommand(deps Dependencies) *cobra.Command {
	version := buildVersion(deps.Version)

	root := &cobra.Command{
		Use:           "tabelog",
		Short:         "Search restaurant listings on tabelog.com and manage local search profiles.",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), version)
				return errVersionShown
			}
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			attachVerboseHTTPTrace(cmd, deps.Tabelog)
			if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), version)
				return errVersionShown
			}
			return nil
		},
	}
	root.Flags().BoolP("version", "v", false, "Show CLI version and exit.")
	root.SetHelpCommand(&cobra.Command{Hidden: true})
	defaultHelpFunc := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd == root {
			renderRootHelp(cmd.OutOrStdout(), root)
			return
		}
		defaultHelpFunc(cmd, args)
	})

	root.AddCommand(newSearchCommand(deps))
	root.AddCommand(newQuickCommand(deps))
	root.AddCommand(newSuggestCommand(deps))
	root.AddCommand(newAreasCommand(deps))
	root.AddCommand(newConfigureCommand(deps))

	return root
}

type verboseHTTPTraceSetter interface {
	SetVerboseOutput(out io.Writer)
}

// attachVerboseHTTPTrace routes the gateway's request trace to stderr when
// the command runs with --verbose.
func attachVerboseHTTPTrace(cmd *cobra.Command, upstream any) {
	if cmd == nil || upstream == nil {
		return
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); !verbose {
		return
	}
	setter, ok := upstream.(verboseHTTPTraceSetter)
	if !ok {
		return
	}
	setter.SetVerboseOutput(cmd.ErrOrStderr())
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "[verbose] http trace enabled")
}

func renderRootHelp(out io.Writer, root *cobra.Command) {
	_, _ = fmt.Fprintf(out, "%s: %s\n\n", root.Name(), root.Short)
	_, _ = fmt.Fprintf(out, "usage: %s <command> [options]\n", root.Name())
	_, _ = fmt.Fprintln(out, "global options (all optional unless marked required):")
	for _, option := range globalOptionDocs(root) {
		_, _ = fmt.Fprintf(out, "  %s%s: %s\n", option.token, option.label(), option.usage)
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "commands:")
	for _, cmd := range visibleCommands(root) {
		_, _ = fmt.Fprintf(out, "  %s\n", cmd.Name())
		_, _ = fmt.Fprintf(out, "    %s\n", cmd.Short)
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "notes:")
	_, _ = fmt.Fprintln(out, "  - options are optional unless marked [required].")
	_, _ = fmt.Fprintln(out, "  - results come from public listing pages; area filtering only applies to areas this CLI knows a path slug for (see the areas command).")
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "full reference:")
	for _, cmd := range visibleCommands(root) {
		signature := strings.TrimSpace(root.Name() + " " + cmd.Use)
		_, _ = fmt.Fprintf(out, "- %s\n", signature)
		_, _ = fmt.Fprintf(out, "  %s\n", cmd.Short)
		if options := commandOptions(cmd); len(options) > 0 {
			_, _ = fmt.Fprintln(out, "  options:")
			for _, option := range options {
				_, _ = fmt.Fprintf(out, "    %s%s: %s\n", option.token, option.label(), option.usage)
			}
		}
		_, _ = fmt.Fprintln(out)
	}
}

func visibleCommands(parent *cobra.Command) []*cobra.Command {
	commands := make([]*cobra.Command, 0)
	for _, cmd := range parent.Commands() {
		if cmd.Hidden {
			continue
		}
		commands = append(commands, cmd)
	}
	return commands
}

type optionDoc struct {
	name     string
	token    string
	usage    string
	required bool
}

func (o optionDoc) label() string {
	if o.required {
		return " [required]"
	}
	return ""
}

// globalOptionDocs documents the shared flags once for the root help. The
// shared flags are registered per command, so each one is read off the first
// visible command that carries it.
func globalOptionDocs(root *cobra.Command) []optionDoc {
	options := make([]optionDoc, 0, len(sharedGlobalOptionOrder))
	for _, name := range sharedGlobalOptionOrder {
		for _, cmd := range visibleCommands(root) {
			flag := cmd.Flags().Lookup(name)
			if flag == nil || flag.Hidden || !isSharedGlobalFlag(flag) {
				continue
			}
			options = append(options, newOptionDoc(flag))
			break
		}
	}
	return options
}

// commandOptions lists a command's own flags, leaving out the shared globals
// documented in the root section.
func commandOptions(cmd *cobra.Command) []optionDoc {
	options := make([]optionDoc, 0)
	cmd.NonInheritedFlags().VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden || flag.Name == "help" || isSharedGlobalFlag(flag) {
			return
		}
		options = append(options, newOptionDoc(flag))
	})
	sort.Slice(options, func(i, j int) bool {
		return options[i].name < options[j].name
	})
	return options
}

func newOptionDoc(flag *pflag.Flag) optionDoc {
	token := "--" + flag.Name
	if flag.Shorthand != "" {
		token += "/-" + flag.Shorthand
	}
	required := false
	if values, ok := flag.Annotations[cobra.BashCompOneRequiredFlag]; ok && len(values) > 0 {
		required = strings.EqualFold(values[0], "true") || values[0] == "1"
	}
	return optionDoc{
		name:     flag.Name,
		token:    token,
		usage:    strings.TrimSpace(flag.Usage),
		required: required,
	}
}

func isSharedGlobalFlag(flag *pflag.Flag) bool {
	if flag == nil || flag.Annotations == nil {
		return false
	}
	values, ok := flag.Annotations[sharedGlobalFlagAnnotation]
	if !ok || len(values) == 0 {
		return false
	}
	return strings.EqualFold(values[0], "true") || values[0] == "1"
}
