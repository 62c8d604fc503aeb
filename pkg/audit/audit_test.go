package audit

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	logger.hostname = "laptop"
	logger.pid = 42
	logger.now = func() time.Time { return time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC) }

	logger.Log(IdentityEvent{
		Operation:  OperationAdd,
		Scope:      "global",
		IdentityID: "work",
		Keys:       []string{"user.work.name", "user.work.email"},
		Success:    true,
	})

	want := `<14>1 2024-01-15T10:30:00.000Z laptop git-identity 42 identity ` +
		`[action@32473 operation="add" result="success"]` +
		`[scope@32473 keys="user.work.name,user.work.email" scope="global"]` +
		`[subject@32473 identity="work"] identity work added in global scope (2 keys)` + "\n"
	if buf.String() != want {
		t.Errorf("Log() wrote\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestNilLoggerDiscards(t *testing.T) {
	var logger *Logger
	logger.Log(IdentityEvent{Operation: OperationClear, Scope: "local", Success: true})
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "audit.log")

	logger, closer, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	logger.Log(IdentityEvent{Operation: OperationActivate, Scope: "local", IdentityID: "a", Success: true})
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "identity a activated in local scope") {
		t.Errorf("audit log = %q, want activation line", string(data))
	}
}

func TestIdentityEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   IdentityEvent
		wantMsg string
		wantSev Severity
	}{
		{
			name:    "add",
			event:   IdentityEvent{Operation: OperationAdd, Scope: "global", IdentityID: "work", Success: true},
			wantMsg: "identity work added in global scope",
			wantSev: SeverityInfo,
		},
		{
			name:    "clear active identity",
			event:   IdentityEvent{Operation: OperationClear, Scope: "local", Keys: []string{"user.name"}, Success: true},
			wantMsg: "active identity cleared in local scope (1 keys)",
			wantSev: SeverityInfo,
		},
		{
			name: "failed activation",
			event: IdentityEvent{
				Operation:    OperationActivate,
				Scope:        "local",
				IdentityID:   "missing",
				Success:      false,
				ErrorMessage: "no such identity",
			},
			wantMsg: "tried to activate identity missing in local scope: no such identity",
			wantSev: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want to contain %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.Facility() != FacilityUser {
				t.Errorf("Facility() = %v, want %v", tt.event.Facility(), FacilityUser)
			}
			if tt.event.MessageID() != "identity" {
				t.Errorf("MessageID() = %v, want 'identity'", tt.event.MessageID())
			}
		})
	}
}

func TestEscapeSDValue(t *testing.T) {
	got := escapeSDValue(`a"b]c\d`)
	want := `"a\"b\]c\\d"`
	if got != want {
		t.Errorf("escapeSDValue() = %s, want %s", got, want)
	}
}
