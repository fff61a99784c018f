package crash

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"

	"github.com/Faultbox/ubiengine/internal/config"
	"github.com/Faultbox/ubiengine/internal/game/states"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"missing first state", fmt.Errorf("%w: first state not defined", config.ErrConfiguration), KindConfiguration},
		{"bad command", pkgerrors.Wrap(states.ErrInvalidCommand, "apply"), KindConfiguration},
		{"nil push", fmt.Errorf("update: %w", states.ErrInvalidTransition), KindInvalidTransition},
		{"state failure", errors.New("texture missing"), KindCollaborator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify = %s, want %s", got, tt.want)
			}
		})
	}
}

func raise() error {
	return pkgerrors.New("speaker busy")
}

func TestOriginUsesInnermostTrace(t *testing.T) {
	err := pkgerrors.Wrap(fmt.Errorf("update state 0: %w", raise()), "run loop")

	origin := Origin(err)
	if !strings.Contains(origin, "raise") {
		t.Errorf("origin should name the raising function, got %q", origin)
	}
	if !strings.Contains(origin, "crash_test.go:") {
		t.Errorf("origin should carry file and line, got %q", origin)
	}
}

func TestOriginWithoutTrace(t *testing.T) {
	if got := Origin(errors.New("plain")); got != "unknown" {
		t.Errorf("Origin = %q, want unknown", got)
	}
}

func TestWriteAppends(t *testing.T) {
	root := filepath.Join(t.TempDir(), "game")

	first := NewRecord("run-1", fmt.Errorf("%w: first state not defined", config.ErrConfiguration))
	second := NewRecord("run-2", raise())

	if err := Write(root, first); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := Write(root, second); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "ErrorLog.txt"))
	if err != nil {
		t.Fatalf("reading error log: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"first state not defined",
		"run-1",
		"configuration",
		"speaker busy",
		"run-2",
		"collaborator",
		"ERROR",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("error log missing %q:\n%s", want, content)
		}
	}
	if strings.Index(content, "run-1") > strings.Index(content, "run-2") {
		t.Error("entries should be in write order")
	}
}

func TestWriteReportsFailure(t *testing.T) {
	// A regular file where the root directory should be
	root := filepath.Join(t.TempDir(), "game")
	if err := os.WriteFile(root, []byte("not a directory"), 0644); err != nil {
		t.Fatal(err)
	}

	err := Write(root, NewRecord("run-1", raise()))
	if err == nil {
		t.Fatal("Write should fail when the root path is a file")
	}
	if !strings.Contains(err.Error(), "ErrorLog.txt") {
		t.Errorf("error should name the log file, got %v", err)
	}
}

func TestPathDefaultsToCurrentDir(t *testing.T) {
	if got := Path(""); got != "ErrorLog.txt" {
		t.Errorf("Path(\"\") = %s", got)
	}
	if got := Path("/srv/game"); got != filepath.Join("/srv/game", "ErrorLog.txt") {
		t.Errorf("Path = %s", got)
	}
}
