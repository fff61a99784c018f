// Package crash turns fatal engine errors into entries in the error log.
package crash

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/ubiengine/internal/config"
	"github.com/Faultbox/ubiengine/internal/game/states"
	"github.com/Faultbox/ubiengine/internal/logger"
)

// FileName is the error log written under the root path.
const FileName = "ErrorLog.txt"

// Kind classifies a fatal error.
type Kind string

const (
	KindConfiguration     Kind = "configuration"
	KindInvalidTransition Kind = "invalid transition"
	KindCollaborator      Kind = "collaborator"
)

// Record is one fatal event.
type Record struct {
	RunID   string
	Kind    Kind
	Message string
	Origin  string
	Time    time.Time
	Err     error
}

// NewRecord builds a record for err.
func NewRecord(runID string, err error) Record {
	return Record{
		RunID:   runID,
		Kind:    Classify(err),
		Message: err.Error(),
		Origin:  Origin(err),
		Time:    time.Now(),
		Err:     err,
	}
}

// Classify maps err onto the engine's error taxonomy.
func Classify(err error) Kind {
	switch {
	case errors.Is(err, config.ErrConfiguration), errors.Is(err, states.ErrInvalidCommand):
		return KindConfiguration
	case errors.Is(err, states.ErrInvalidTransition):
		return KindInvalidTransition
	default:
		return KindCollaborator
	}
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// Origin describes where err was raised, using the innermost stack trace in
// its chain. Errors without a trace yield "unknown".
func Origin(err error) string {
	var frame *pkgerrors.Frame
	for e := err; e != nil; e = errors.Unwrap(e) {
		if st, ok := e.(stackTracer); ok {
			if trace := st.StackTrace(); len(trace) > 0 {
				f := trace[0]
				frame = &f
			}
		}
	}
	if frame == nil {
		return "unknown"
	}
	return fmt.Sprintf("%n (%s:%d)", *frame, *frame, *frame)
}

// Path returns the error log location for root.
func Path(root string) string {
	if root == "" {
		root = config.DefaultRootPath
	}
	return filepath.Join(root, FileName)
}

// Write appends rec to the error log under root. The log is never rotated.
func Write(root string, rec Record) error {
	path := Path(root)

	var failures writeFailures
	l, closer := logger.NewFile("error",
		logger.FileConfig{Path: path, MaxSizeMB: logger.NoRotation},
		zap.ErrorOutput(&failures),
	)

	fields := []zap.Field{
		zap.String("run", rec.RunID),
		zap.String("kind", string(rec.Kind)),
		zap.String("origin", rec.Origin),
	}
	if rec.Err != nil {
		fields = append(fields, zap.Error(rec.Err))
	}
	l.Error(rec.Message, fields...)

	err := multierr.Combine(failures.err(), l.Sync(), closer.Close())
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// writeFailures collects what zap reports on its error output, which is
// where a failed file open or write ends up.
type writeFailures struct {
	msgs []string
}

func (w *writeFailures) Write(p []byte) (int, error) {
	w.msgs = append(w.msgs, strings.TrimSpace(string(p)))
	return len(p), nil
}

func (w *writeFailures) Sync() error { return nil }

func (w *writeFailures) err() error {
	if len(w.msgs) == 0 {
		return nil
	}
	return errors.New(strings.Join(w.msgs, "; "))
}
