package golessfunctions

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// How long Close waits for the host to exit after its Stdin is closed.
const hostExitTimeout = time.Second

// hostConn is the Stdin/Stdout pipe pair of a running function host.
// Reads come from the host's Stdout, writes go to its Stdin.
type hostConn struct {
	*bufio.Reader
	stdin  io.WriteCloser
	stdout io.Closer
	stderr *tailBuffer
	cmd    *exec.Cmd
}

// startHost wires up the pipes of cmd and starts it.
func startHost(cmd *exec.Cmd) (_ *hostConn, err error) {
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			stdin.Close()
		}
	}()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	c := &hostConn{
		Reader: bufio.NewReader(stdout),
		stdin:  stdin,
		stdout: stdout,
		stderr: &tailBuffer{limit: 1024},
		cmd:    cmd,
	}
	cmd.Stderr = c.stderr

	if err = cmd.Start(); err != nil {
		stdout.Close()
		return nil, fmt.Errorf("failed to start function host: %w", err)
	}

	return c, nil
}

func (c *hostConn) Write(p []byte) (int, error) {
	return c.stdin.Write(p)
}

// Close closes both pipes and waits for the host to exit.
func (c *hostConn) Close() error {
	writeErr := c.stdin.Close()
	readErr := c.stdout.Close()
	return errors.Join(writeErr, readErr, c.wait())
}

var brokenPipeRe = regexp.MustCompile("Broken pipe|pipe is being closed")

// The host exits on its own on EOF, this is just to give it some
// time to do so.
func (c *hostConn) wait() error {
	result := make(chan error, 1)
	go func() { result <- c.cmd.Wait() }()

	select {
	case err := <-result:
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return err
		}
		stderr := c.stderr.String()
		if brokenPipeRe.MatchString(stderr) {
			return nil
		}
		if stderr = strings.TrimSpace(stderr); stderr != "" {
			return fmt.Errorf("function host failed: %w: %s", err, stderr)
		}
		return fmt.Errorf("function host failed: %w", err)
	case <-time.After(hostExitTimeout):
		return errors.New("timed out waiting for the function host to finish")
	}
}

// tailBuffer keeps at most limit bytes, dropping older output when full.
type tailBuffer struct {
	limit int
	bytes.Buffer
}

func (b *tailBuffer) Write(p []byte) (n int, err error) {
	if len(p)+b.Buffer.Len() > b.limit {
		b.Reset()
	}
	return b.Buffer.Write(p)
}
