// ABOUTME: E2E harness: builds the dore binary once and runs it with a pty as controlling terminal
// ABOUTME: Candidates arrive on a stdin pipe while keys are typed into the pty, as in real use

//go:build unix

package e2e

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/creack/pty"
)

var doreBin string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "dore-e2e")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	doreBin = filepath.Join(dir, "dore")
	build := exec.Command("go", "build", "-o", doreBin, "github.com/stsysd/dore/cmd/dore")
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "building dore: %v\n", err)
		os.Exit(1)
	}
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type session struct {
	cmd    *exec.Cmd
	ptmx   *os.File
	stdout bytes.Buffer

	mu     sync.Mutex
	screen bytes.Buffer
	done   chan struct{}
}

// startDore runs dore with stdin as the candidate list. The pty is attached
// as stderr and made the controlling terminal so /dev/tty resolves to it.
func startDore(t *testing.T, stdin string, args ...string) *session {
	t.Helper()
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	s := &session{done: make(chan struct{})}
	s.cmd = exec.Command(doreBin, args...)
	s.cmd.Stdin = strings.NewReader(stdin)
	s.cmd.Stdout = &s.stdout
	s.cmd.Env = append(os.Environ(), "DORE_CONFIG="+filepath.Join(t.TempDir(), "none.yaml"), "TERM=xterm")

	ptmx, err := pty.StartWithAttrs(s.cmd, &pty.Winsize{Rows: 10, Cols: 60},
		&syscall.SysProcAttr{Setsid: true, Setctty: true, Ctty: 2})
	if err != nil {
		t.Fatalf("starting dore: %v", err)
	}
	s.ptmx = ptmx

	go func() {
		defer close(s.done)
		buf := make([]byte, 4096)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				s.mu.Lock()
				s.screen.Write(buf[:n])
				s.mu.Unlock()
			}
			if err != nil {
				return
			}
		}
	}()

	t.Cleanup(func() {
		if s.cmd.ProcessState == nil {
			_ = s.cmd.Process.Kill()
			_ = s.cmd.Wait()
		}
		_ = ptmx.Close()
	})
	return s
}

// expect waits until the terminal output contains want.
func (s *session) expect(t *testing.T, want string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		ok := strings.Contains(s.screen.String(), want)
		s.mu.Unlock()
		if ok {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.Fatalf("timed out waiting for %q; screen:\n%q", want, s.screen.String())
}

// send types raw bytes into the terminal.
func (s *session) send(t *testing.T, keys string) {
	t.Helper()
	if _, err := s.ptmx.Write([]byte(keys)); err != nil {
		t.Fatalf("writing keys: %v", err)
	}
}

// wait returns the exit status once dore finishes.
func (s *session) wait(t *testing.T, timeout time.Duration) int {
	t.Helper()
	errc := make(chan error, 1)
	go func() { errc <- s.cmd.Wait() }()
	select {
	case err := <-errc:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		if err != nil {
			t.Fatalf("waiting for dore: %v", err)
		}
		return 0
	case <-time.After(timeout):
		t.Fatal("dore did not exit")
		return -1
	}
}

func (s *session) output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen.String()
}
