package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/myconn/internal/db"
	"github.com/vvka-141/myconn/internal/db/manager"
	"github.com/vvka-141/myconn/internal/tui"
)

var dropFlags connectionFlags

var (
	dropForce bool
	dropYes   bool
)

var dropCmd = &cobra.Command{
	Use:   "drop <database>",
	Short: "Drop a database",
	Long: `Drops a database (schema) from the server, like mysqladmin drop.

With --force, other sessions using the database are killed first so the
drop cannot block on open connections.

Examples:
  myconn drop stale_db --profile admin
  myconn drop stale_db --force --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDrop,
}

func init() {
	registerConnectionFlags(dropCmd, &dropFlags)
	dropCmd.Flags().BoolVar(&dropForce, "force", false, "Terminate other sessions using the database first")
	dropCmd.Flags().BoolVar(&dropYes, "yes", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(dropCmd)
}

func runDrop(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	dbName := args[0]
	ctx := cmd.Context()

	if !dropYes {
		if !tui.PromptContinue(fmt.Sprintf("Drop database %q? This cannot be undone.", dbName)) {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	// Server-level operation: connect without selecting a default database.
	flags := dropFlags
	flags.database = ""

	conn, err := connectWithFlags(ctx, flags, verbose)
	if err != nil {
		return err
	}
	defer conn.Disconnect()

	adapter := db.NewDBAdapter(conn.Driver())
	mgr := manager.New()

	exists, err := mgr.Exists(ctx, adapter, dbName)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("database %q does not exist", dbName)
	}

	progress := tui.NewProgressDisplay()
	if dropForce {
		progress.Start(fmt.Sprintf("Terminating sessions using %q", dbName))
		if err := mgr.TerminateConnections(ctx, adapter, dbName); err != nil {
			progress.Error(fmt.Sprintf("Terminate failed: %v", err))
			return err
		}
	}

	progress.Start(fmt.Sprintf("Dropping database %q", dbName))
	if err := mgr.Drop(ctx, adapter, dbName); err != nil {
		progress.Error(fmt.Sprintf("Drop failed: %v", err))
		return err
	}

	progress.Success(fmt.Sprintf("Database %q dropped", dbName))
	return nil
}
