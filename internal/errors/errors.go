package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/petspa/internal/api"
	"github.com/julianstephens/petspa/internal/calendar"
	"github.com/julianstephens/petspa/internal/logger"
)

// Exit codes returned by Fatal.
const (
	ExitFailure     = 1
	ExitInvalid     = 2
	ExitUnreachable = 3
)

// Format renders err for the terminal with an "Error: " prefix, followed by
// a hint line when the cause is one a user can act on.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint suggests a next step for errors coming back from the appointment
// service, or returns "".
func Hint(err error) string {
	var te *api.TransportError
	if !stderrors.As(err, &te) {
		return ""
	}
	switch {
	case te.StatusCode == 0:
		return "the appointment service is unreachable; check --api-url or start one with `petspa serve`"
	case te.StatusCode == 404:
		return "no appointment with that id; `petspa list` shows the ids of a day"
	case te.StatusCode >= 500:
		return "the appointment service failed; see its log for details"
	}
	return ""
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	var te *api.TransportError
	switch {
	case stderrors.Is(err, calendar.ErrValidation):
		return ExitInvalid
	case stderrors.As(err, &te) && te.StatusCode == 0:
		return ExitUnreachable
	}
	return ExitFailure
}

// Fatal logs err, prints it to stderr and exits. A nil err is a no-op.
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, Format(err))
		os.Exit(ExitCode(err))
	}
}

func Fatalf(format string, args ...any) {
	logger.Error("Command execution failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	os.Exit(ExitFailure)
}
