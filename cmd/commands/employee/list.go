package employee

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"nathanbeddoewebdev/staffdesk/internal/app"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all employees",
		Long: `List all employees from the configured API.

Results come from the local query cache when it is fresh. Use --refresh to
bypass it.

Examples:
  staffdesk employee list
  staffdesk employee list --refresh
  staffdesk employee list -o json`,
		Run: runList,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")
	cmd.Flags().Bool("refresh", false, "Ignore cached results")

	return cmd
}

func runList(cmd *cobra.Command, args []string) {
	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "json" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: unsupported output format %q\n", output)
		return
	}

	sess, err := app.Open()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}
	defer sess.Close()

	if refresh, _ := cmd.Flags().GetBool("refresh"); refresh {
		if err := sess.Service.Invalidate(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to clear cache: %v\n", err)
		}
	}

	printList(cmd, sess, output)
}

func printList(cmd *cobra.Command, sess *app.Session, output string) {
	records, err := sess.Service.List(app.Context(cmd.Context(), "cli"))
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error listing employees: %v\n", err)
		return
	}

	if output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.Encode(records)
		return
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No employees found.")
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tROLE")
	fmt.Fprintln(w, "--\t----\t-----\t-----\t----")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", rec.ID, rec.Name, rec.Email, rec.PhoneNo, rec.Role)
	}
	w.Flush()
}
