package audit

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nathanbeddoewebdev/staffdesk/internal/auditlog"
	"nathanbeddoewebdev/staffdesk/internal/database"
)

// setupAudit points the database at a temp file and seeds it.
func setupAudit(t *testing.T, entries ...auditlog.Entry) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "staffdesk.db")
	database.SetPath(path)
	t.Cleanup(database.ResetPath)

	repo, err := auditlog.OpenAt(path)
	if err != nil {
		t.Fatalf("open audit log: %v", err)
	}
	defer repo.Close()
	for i := range entries {
		if err := repo.Save(&entries[i]); err != nil {
			t.Fatalf("seed entry: %v", err)
		}
	}
}

func execAudit(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	cmd.Execute()
	return outBuf.String(), errBuf.String()
}

func TestList_Table(t *testing.T) {
	setupAudit(t,
		auditlog.Entry{Action: auditlog.ActionCreate, Source: "tui", Actor: "sam", ResourceID: "1", ResourceName: "Ana", Outcome: auditlog.OutcomeSuccess, DurationMs: 120},
		auditlog.Entry{Action: auditlog.ActionUpdate, Source: "cli", ResourceID: "2", Outcome: auditlog.OutcomeError, Detail: "conflict", DurationMs: 2500},
	)

	stdout, stderr := execAudit(t, "list")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	for _, want := range []string{"ACTION", "employee.create", "1 (Ana)", "tui (sam)", "120ms", "employee.update", "2.5s", "conflict"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestList_FilterByEmployee(t *testing.T) {
	setupAudit(t,
		auditlog.Entry{Action: auditlog.ActionCreate, ResourceID: "1", ResourceName: "Ana", Outcome: auditlog.OutcomeSuccess},
		auditlog.Entry{Action: auditlog.ActionUpdate, ResourceID: "2", ResourceName: "Bo", Outcome: auditlog.OutcomeSuccess},
	)

	stdout, _ := execAudit(t, "list", "--employee", "2", "-o", "json")

	var got []auditlog.Entry
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if len(got) != 1 || got[0].ResourceName != "Bo" {
		t.Errorf("unexpected entries: %+v", got)
	}
}

func TestList_Empty(t *testing.T) {
	setupAudit(t)

	stdout, _ := execAudit(t, "list")

	if !strings.Contains(stdout, "No audit entries found.") {
		t.Errorf("unexpected output: %s", stdout)
	}
}

func TestList_InvalidLimit(t *testing.T) {
	setupAudit(t)

	_, stderr := execAudit(t, "list", "--limit", "0")

	if !strings.Contains(stderr, "limit must be greater than 0") {
		t.Errorf("expected limit error, got: %s", stderr)
	}
}

func TestPrune(t *testing.T) {
	setupAudit(t,
		auditlog.Entry{Timestamp: time.Now().UTC().Add(-40 * 24 * time.Hour), Action: auditlog.ActionCreate, Outcome: auditlog.OutcomeSuccess},
		auditlog.Entry{Action: auditlog.ActionUpdate, Outcome: auditlog.OutcomeSuccess},
	)

	stdout, stderr := execAudit(t, "prune", "--older-than", "30d")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "Removed 1 audit entry.") {
		t.Errorf("unexpected output: %s", stdout)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"30d", 30 * 24 * time.Hour, false},
		{"72h", 72 * time.Hour, false},
		{"90m", 90 * time.Minute, false},
		{"xd", 0, true},
		{"-1d", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDuration(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseDuration(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
