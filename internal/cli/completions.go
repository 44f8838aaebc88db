package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/myconn/internal/config"
)

// tlsModes contains valid TLS modes for shell completion.
var tlsModes = []string{"disabled", "preferred", "required", "verify-ca", "verify-identity"}

// registerTLSModeCompletion wires TLS mode completion onto a flag.
func registerTLSModeCompletion(cmd *cobra.Command, flagName string) {
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeTLSModes)
}

// registerProfileCompletion wires profile name completion onto a flag.
func registerProfileCompletion(cmd *cobra.Command, flagName string) {
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeProfileNames)
}

// completeTLSModes provides shell completion for TLS mode flag values.
func completeTLSModes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, mode := range tlsModes {
		if strings.HasPrefix(mode, toComplete) {
			matches = append(matches, mode)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeProfileNames provides shell completion for profile names from
// the nearest myconn.yaml.
func completeProfileNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	explicit, _ := cmd.Flags().GetString("config")
	profiles, _, err := config.Load(explicit)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var matches []string
	for _, name := range profiles.Names() {
		if strings.HasPrefix(name, toComplete) {
			matches = append(matches, name)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
