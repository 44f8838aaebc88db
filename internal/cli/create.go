package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/myconn/internal/db"
	"github.com/vvka-141/myconn/internal/db/manager"
	"github.com/vvka-141/myconn/internal/tui"
)

var createFlags connectionFlags

var createIfNotExists bool

var createCmd = &cobra.Command{
	Use:   "create <database>",
	Short: "Create a database",
	Long: `Creates a database (schema) on the server, like mysqladmin create.

The identifier is backtick-quoted, so names with spaces or punctuation
are safe.

Examples:
  myconn create appdb -h db.example.com -u root
  myconn create appdb --profile admin --if-not-exists`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	registerConnectionFlags(createCmd, &createFlags)
	createCmd.Flags().BoolVar(&createIfNotExists, "if-not-exists", false, "Succeed silently if the database already exists")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	dbName := args[0]
	ctx := cmd.Context()

	// Server-level operation: connect without selecting a default database.
	flags := createFlags
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
	if exists {
		if createIfNotExists {
			fmt.Printf("Database %q already exists\n", dbName)
			return nil
		}
		return fmt.Errorf("database %q already exists (use --if-not-exists to ignore)", dbName)
	}

	progress := tui.NewProgressDisplay()
	progress.Start(fmt.Sprintf("Creating database %q", dbName))
	if err := mgr.Create(ctx, adapter, dbName); err != nil {
		progress.Error(fmt.Sprintf("Create failed: %v", err))
		return err
	}
	progress.Success(fmt.Sprintf("Database %q created", dbName))
	return nil
}
