package adapter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"
)

const (
	maxLineSize = 1024 * 1024
	waitDelay   = 5 * time.Second
)

// ExitStatus is the outcome of a finished process. Code is -1 when the
// process was terminated by a signal or could not be waited for.
type ExitStatus struct {
	Code int
	Err  error
}

// Process is a running child process whose combined output is streamed line
// by line. Lines is closed once the output ends; Done delivers exactly one
// ExitStatus. Consumers that stop reading Lines early must drain it.
type Process interface {
	Lines() <-chan string
	Done() <-chan ExitStatus
	Kill() error
}

type execProcess struct {
	cmd   *exec.Cmd
	lines chan string
	done  chan ExitStatus

	killOnce sync.Once
	killErr  error
}

// StartProcess starts name with args in dir. The process runs in its own
// process group so that Kill also reaches its children.
func StartProcess(dir, name string, args ...string) (Process, error) {
	// #nosec G204 - the command line is assembled by mutest, not the user
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay
	configureProcessGroup(cmd)

	reader, writer := io.Pipe()
	cmd.Stdout = writer
	cmd.Stderr = writer

	if err := cmd.Start(); err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("failed to start %s: %w", name, err)
	}

	p := &execProcess{
		cmd:   cmd,
		lines: make(chan string, 64),
		done:  make(chan ExitStatus, 1),
	}

	go p.scan(reader)
	go p.wait(writer)

	return p, nil
}

func (p *execProcess) Lines() <-chan string {
	return p.lines
}

func (p *execProcess) Done() <-chan ExitStatus {
	return p.done
}

// Kill terminates the process group. Calling it more than once is safe.
func (p *execProcess) Kill() error {
	p.killOnce.Do(func() {
		p.killErr = killProcessGroup(p.cmd)
	})

	return p.killErr
}

func (p *execProcess) scan(reader *io.PipeReader) {
	defer close(p.lines)

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		p.lines <- scanner.Text()
	}

	// A line longer than the buffer stops the scanner; keep the pipe flowing.
	_, _ = io.Copy(io.Discard, reader)
}

func (p *execProcess) wait(writer *io.PipeWriter) {
	err := p.cmd.Wait()
	_ = writer.Close()

	p.done <- exitStatusOf(err)
	close(p.done)
}

func exitStatusOf(err error) ExitStatus {
	if err == nil {
		return ExitStatus{Code: 0}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return ExitStatus{Code: exitErr.ExitCode(), Err: err}
	}

	return ExitStatus{Code: -1, Err: err}
}

// DrainLines discards the remaining output of p in the background.
func DrainLines(p Process) {
	go func() {
		for range p.Lines() {
		}
	}()
}
