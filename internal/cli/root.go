package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const asciiLogo = `
  _ __ ___  _   _  ___ ___  _ __  _ __
 | '_ ` + "`" + ` _ \| | | |/ __/ _ \| '_ \| '_ \
 | | | | | | |_| | (_| (_) | | | | | | |
 |_| |_| |_|\__, |\___\___/|_| |_|_| |_|
            |___/`

var rootCmd = &cobra.Command{
	Use:   "myconn",
	Short: "MySQL connection manager",
	Long: asciiLogo + `

myconn manages MySQL connections the way the stock client tools do:
granular flags (-h, -P, -u, -D, -S), connection strings, environment
variables, named profiles from myconn.yaml, and ~/.my.cnf all resolve
into one connection, with automatic retry and cloud IAM authentication
for Azure, AWS, and Google Cloud SQL.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Database connection failed
  12 - SQL execution failed`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	// Register help without the -h shorthand so -h stays free for --host,
	// matching the stock mysql client.
	rootCmd.PersistentFlags().Bool("help", false, "Help for myconn")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
