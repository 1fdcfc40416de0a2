//go:build !windows

// Package stderr captures output from C libraries (ALSA, oto) that write
// straight to file descriptor 2 and would otherwise corrupt the TUI.
// Captured lines are forwarded to the log.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
)

var (
	origStderr int
	pipeRead   *os.File
	pipeWrite  *os.File
	started    bool
	done       chan struct{}
)

// Start redirects fd 2 into log at warn level. It must run before audio
// initialization, and log must not itself write to stderr. On error the
// program can continue uncaptured.
func Start(log *logrus.Entry) error {
	if started {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	origStderr, err = syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	err = syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd()))
	if err != nil {
		syscall.Close(origStderr)
		r.Close()
		w.Close()
		return err
	}

	pipeRead = r
	pipeWrite = w
	started = true
	done = make(chan struct{})

	go forward(pipeRead, log, done)
	return nil
}

func forward(r *os.File, log *logrus.Entry, done chan<- struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			log.WithField("source", "stderr").Warn(line)
		}
	}
}

// WriteOriginal writes to the original stderr, bypassing capture. Used for
// fatal errors that must stay visible.
func WriteOriginal(msg string) {
	if started && origStderr > 0 {
		_, _ = syscall.Write(origStderr, []byte(msg))
		return
	}
	_, _ = os.Stderr.WriteString(msg)
}

// Stop restores the original stderr and waits for pending lines to be
// logged.
func Stop() {
	if !started {
		return
	}

	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)

	pipeWrite.Close()
	<-done
	pipeRead.Close()
	started = false
}
