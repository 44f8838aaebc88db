package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pingFlags connectionFlags

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the server is alive",
	Long: `Connects to the server and pings it, reconnecting if the link dropped.

Prints "mysqld is alive" on success, mirroring mysqladmin ping.

Examples:
  myconn ping -h db.example.com -u app
  myconn ping --profile production
  myconn ping --connection "mysql://app@db.example.com:3306/appdb"`,
	Args: cobra.NoArgs,
	RunE: runPing,
}

func init() {
	registerConnectionFlags(pingCmd, &pingFlags)
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	conn, err := connectWithFlags(cmd.Context(), pingFlags, verbose)
	if err != nil {
		return err
	}
	defer conn.Disconnect()

	if err := conn.Ping(cmd.Context()); err != nil {
		return err
	}

	fmt.Println("mysqld is alive")
	return nil
}
