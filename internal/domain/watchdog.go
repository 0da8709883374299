package domain

import (
	"log/slog"
	"strings"
	"time"

	"mutest.dev/pkg/mutest/internal/adapter"
	m "mutest.dev/pkg/mutest/internal/model"
)

// exitStatuses maps test process exit codes to outcomes. Negative codes are
// failures; other codes are treated as timeouts.
var exitStatuses = map[int]m.TestExecutionStatus{
	0: m.TestSuccess,
	1: m.TestFailed,
}

// statusForExitCode converts a test process exit code into an outcome.
func statusForExitCode(code int) m.TestExecutionStatus {
	if status, ok := exitStatuses[code]; ok {
		return status
	}

	if code < 0 {
		return m.TestFailed
	}

	return m.TestTimeout
}

// watchdog follows a running test process. The timer is armed when the
// watch starts and restarted on every output line.
type watchdog struct {
	timeout            time.Duration
	killOnFirstFailure bool
	// output collects every line when non-nil.
	output *strings.Builder
}

// watch blocks until the process exits, is killed after timeout without
// output, or prints a failure line while killOnFirstFailure is set.
func (w watchdog) watch(process adapter.Process) m.TestExecutionStatus {
	timer := time.NewTimer(w.timeout)
	defer timer.Stop()

	lines := process.Lines()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}

			w.record(line)

			if w.killOnFirstFailure && adapter.IsFailureLine(line) {
				w.stop(process)
				return m.TestFailed
			}

			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}

			timer.Reset(w.timeout)
		case status := <-process.Done():
			if lines != nil {
				w.drain(lines)
			}

			return statusForExitCode(status.Code)
		case <-timer.C:
			slog.Debug("Test process timed out", "timeout", w.timeout)
			w.stop(process)

			return m.TestTimeout
		}
	}
}

func (w watchdog) record(line string) {
	if w.output == nil {
		return
	}

	w.output.WriteString(line)
	w.output.WriteByte('\n')
}

// drain records the output still buffered after the process exited.
func (w watchdog) drain(lines <-chan string) {
	for line := range lines {
		w.record(line)
	}
}

// stop kills the process group and waits for it to be reaped.
func (w watchdog) stop(process adapter.Process) {
	if err := process.Kill(); err != nil {
		slog.Warn("Failed to kill test process", "error", err)
	}

	adapter.DrainLines(process)
	<-process.Done()
}
