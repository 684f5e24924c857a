package audit

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"nathanbeddoewebdev/staffdesk/internal/auditlog"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent audit entries",
		Long: `List recent employee changes recorded on this machine.

Examples:
  staffdesk audit list
  staffdesk audit list --limit 50
  staffdesk audit list --employee 64f0c2
  staffdesk audit list -o json`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 25, "Number of entries to display")
	cmd.Flags().String("employee", "", "Only show changes to this employee ID")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	filter, _ := cmd.Flags().GetString("employee")
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = "table"
	}
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	repo, err := auditlog.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	var entries []auditlog.Entry
	if filter != "" {
		entries, err = repo.ListByResource(filter, limit)
	} else {
		entries, err = repo.List(limit)
	}
	if err != nil {
		return err
	}

	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No audit entries found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tACTION\tOUTCOME\tDURATION\tEMPLOYEE\tSOURCE\tDETAIL")
	fmt.Fprintln(w, "----\t------\t-------\t--------\t--------\t------\t------")
	for _, entry := range entries {
		detail := entry.Detail
		if detail == "" {
			detail = "-"
		}
		source := entry.Source
		if entry.Actor != "" {
			source += " (" + entry.Actor + ")"
		}
		if source == "" {
			source = "-"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			entry.Timestamp.Local().Format("2006-01-02 15:04:05"),
			entry.Action,
			entry.Outcome,
			formatDuration(entry.DurationMs),
			formatResource(entry),
			source,
			detail,
		)
	}
	return w.Flush()
}

func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	d := time.Duration(ms) * time.Millisecond
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

func formatResource(entry auditlog.Entry) string {
	switch {
	case entry.ResourceID == "" && entry.ResourceName == "":
		return "-"
	case entry.ResourceID == "":
		return entry.ResourceName
	case entry.ResourceName == "":
		return entry.ResourceID
	}
	return entry.ResourceID + " (" + entry.ResourceName + ")"
}
