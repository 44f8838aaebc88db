package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/myconn/internal/config"
	"github.com/vvka-141/myconn/internal/tui"
	"github.com/vvka-141/myconn/internal/tui/wizards"
	"github.com/vvka-141/myconn/pkg/myconn"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create myconn.yaml connection profiles",
}

var configShowFlags struct {
	configPath string
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the connection profiles and where they were loaded from",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitFlags struct {
	configPath  string
	profileName string
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively create a connection profile",
	Long: `Launches an interactive wizard that walks through provider selection,
authentication, and connection details, tests the connection, and saves
the result as a named profile in myconn.yaml.

Passwords are never written to myconn.yaml; the wizard offers to store
them in ~/.my.cnf instead, where the stock mysql client also looks.

This command requires an interactive terminal. For non-interactive use,
create myconn.yaml manually or use environment variables.

Examples:
  # Create the default profile in ./myconn.yaml
  myconn config init

  # Add a named profile to an explicit file
  myconn config init --name staging --config ./myconn.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configShowCmd.Flags().StringVar(&configShowFlags.configPath, "config", "", "Path to myconn.yaml")
	configInitCmd.Flags().StringVar(&configInitFlags.configPath, "config", "", "Path to write myconn.yaml (default ./myconn.yaml)")
	configInitCmd.Flags().StringVar(&configInitFlags.profileName, "name", "default", "Profile name to create")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	profiles, path, err := config.Load(configShowFlags.configPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config: %s\n", path)
	if profiles.ConnectTimeout != "" {
		fmt.Fprintf(out, "Connect timeout: %s\n", profiles.ConnectTimeout)
	}
	if profiles.RWTimeout != "" {
		fmt.Fprintf(out, "Read/write timeout: %s\n", profiles.RWTimeout)
	}
	fmt.Fprintln(out)

	names := profiles.Names()
	sort.Strings(names)
	for _, name := range names {
		cfg, err := profiles.Config(name)
		if err != nil {
			fmt.Fprintf(out, "%s: invalid (%v)\n", name, err)
			continue
		}
		target := cfg.Addr()
		if cfg.GoogleInstance != "" {
			target = cfg.GoogleInstance
		}
		if cfg.Database != "" {
			target += "/" + cfg.Database
		}
		fmt.Fprintf(out, "%s: %s user=%s auth=%s\n", name, target, cfg.Username, cfg.AuthMethod)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	// Require interactive terminal
	if !tui.IsInteractive() {
		if hasEnvConnectionSource() {
			return fmt.Errorf("config init requires an interactive terminal\n" +
				"The environment already provides a connection; commands work without a profile")
		}
		return fmt.Errorf("config init requires an interactive terminal\n" +
			"For non-interactive use, create myconn.yaml manually or use environment variables")
	}

	configPath := configInitFlags.configPath
	if configPath == "" {
		configPath = config.ConfigFileName
	}

	// Load the existing document so new profiles merge instead of clobbering.
	profiles, err := myconn.LoadProfiles(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read %s: %w", configPath, err)
		}
		profiles = &myconn.Profiles{}
	}
	if profiles.Connections == nil {
		profiles.Connections = make(map[string]myconn.Profile)
	}

	if _, ok := profiles.Connections[configInitFlags.profileName]; ok {
		fmt.Printf("Profile %q already exists in %s\n", configInitFlags.profileName, configPath)
		if !tui.PromptContinue("Overwrite it?") {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	connResult, err := wizards.RunConnectionWizard()
	if err != nil {
		return fmt.Errorf("connection wizard failed: %w", err)
	}
	if connResult.Cancelled {
		fmt.Println("Cancelled.")
		return nil
	}

	profiles.Connections[configInitFlags.profileName] = profileFromConfig(&connResult.Config)

	data, err := yaml.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("\n✓ Profile %q saved to %s\n", configInitFlags.profileName, configPath)
	offerSaveMyCnf(&connResult.Config)
	return nil
}

// profileFromConfig converts a resolved connection into a YAML profile.
// The password is intentionally left out; ~/.my.cnf is the place for it.
func profileFromConfig(cfg *myconn.ConnectionConfig) myconn.Profile {
	p := myconn.Profile{
		Host:           cfg.Host,
		Port:           cfg.Port,
		User:           cfg.Username,
		Database:       cfg.Database,
		Socket:         cfg.Socket,
		TLSMode:        string(cfg.TLSMode),
		SSLCA:          cfg.SSLCA,
		SSLCert:        cfg.SSLCert,
		SSLKey:         cfg.SSLKey,
		AppName:        cfg.AppName,
		AuthMethod:     authMethodYAML(cfg.AuthMethod),
		AWSRegion:      cfg.AWSRegion,
		GoogleInstance: cfg.GoogleInstance,
		AzureTenantID:  cfg.AzureTenantID,
		AzureClientID:  cfg.AzureClientID,
	}
	if len(cfg.Params) > 0 {
		p.Params = make(map[string]string, len(cfg.Params))
		for k, v := range cfg.Params {
			p.Params[k] = v
		}
	}
	return p
}

// authMethodYAML maps an AuthMethod onto its auth_method YAML value.
// Standard is the document default and stays implicit.
func authMethodYAML(m myconn.AuthMethod) string {
	switch m {
	case myconn.AuthMethodAWSIAM:
		return "aws_iam"
	case myconn.AuthMethodGoogleIAM:
		return "google_iam"
	case myconn.AuthMethodAzureEntraID:
		return "azure_entra_id"
	default:
		return ""
	}
}
