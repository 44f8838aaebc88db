package cli

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/myconn/pkg/myconn"
)

var queryFlags connectionFlags

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Run a query and print the result set",
	Long: `Runs a single query against the server and prints the rows as
tab-separated values with a header line, like mysql --batch.

Examples:
  myconn query "SELECT VERSION()"
  myconn query --profile reporting "SELECT id, name FROM users LIMIT 10"
  myconn query -h db.example.com -u app -D appdb "SHOW TABLES"`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

var execFlags connectionFlags

var execCmd = &cobra.Command{
	Use:   "exec <sql>",
	Short: "Execute a statement and print the affected row count",
	Long: `Executes a single statement that returns no rows (INSERT, UPDATE,
DELETE, DDL) and prints the number of affected rows.

Examples:
  myconn exec -D appdb "DELETE FROM sessions WHERE expires_at < NOW()"
  myconn exec --profile staging "TRUNCATE TABLE cache"`,
	Args: cobra.ExactArgs(1),
	RunE: runExec,
}

func init() {
	registerConnectionFlags(queryCmd, &queryFlags)
	registerConnectionFlags(execCmd, &execFlags)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(execCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	conn, err := connectWithFlags(cmd.Context(), queryFlags, verbose)
	if err != nil {
		return err
	}
	defer conn.Disconnect()

	rows, err := conn.Query(args[0]).Rows(cmd.Context())
	if err != nil {
		return fmt.Errorf("%v: %w", err, myconn.ErrExecutionFailed)
	}
	defer rows.Close()

	return printRows(cmd, rows)
}

func runExec(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	conn, err := connectWithFlags(cmd.Context(), execFlags, verbose)
	if err != nil {
		return err
	}
	defer conn.Disconnect()

	result, err := conn.Query(args[0]).Exec(cmd.Context())
	if err != nil {
		return fmt.Errorf("%v: %w", err, myconn.ErrExecutionFailed)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		// Some statements (DDL) report no row count.
		fmt.Println("Query OK")
		return nil
	}
	fmt.Printf("Query OK, %d row(s) affected\n", affected)
	return nil
}

// printRows writes a result set as tab-separated values with a header.
// NULL values are printed as the literal NULL, like mysql --batch.
func printRows(cmd *cobra.Command, rows *sql.Rows) error {
	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("failed to read result columns: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, strings.Join(columns, "\t"))

	values := make([]sql.RawBytes, len(columns))
	scanArgs := make([]any, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}

	var line strings.Builder
	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}
		line.Reset()
		for i, v := range values {
			if i > 0 {
				line.WriteByte('\t')
			}
			if v == nil {
				line.WriteString("NULL")
			} else {
				line.Write(v)
			}
		}
		fmt.Fprintln(out, line.String())
	}
	return rows.Err()
}
