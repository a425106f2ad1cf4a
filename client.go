// Package golessfunctions provides the LESS builtin function library over
// a varint framed protobuf protocol on Stdin and Stdout.
//
// Use the Start function to create and start a new thread safe client.
// Close it when done. NewServer creates the host side of the protocol.
package golessfunctions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/cli/safeexec"

	"github.com/bep/golessfunctions/functions"
	"github.com/bep/golessfunctions/internal/lessproto"
)

const (
	defaultHostFilename = "lessfn-host"

	// ProtocolVersion is the version of the wire protocol.
	ProtocolVersion = "1"
)

// ErrShutdown will be returned from Call and Close if the client is or
// is about to be shut down.
var ErrShutdown = errors.New("connection is shut down")

// Start creates and starts a new Client that communicates with a function
// host via Stdin and Stdout.
//
// Closing the client will shut down the process.
//
// Note that the Client is thread safe, and the recommended way of using
// this is to create one and use that for all the calls needed.
func Start(opts Options) (*Client, error) {
	if err := opts.init(); err != nil {
		return nil, err
	}

	// See https://github.com/golang/go/issues/38736
	bin, err := safeexec.LookPath(opts.HostFilename)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(bin)
	cmd.Env = append(os.Environ(), opts.Env...)

	conn, err := startHost(cmd)
	if err != nil {
		return nil, err
	}

	c := &Client{
		opts:    opts,
		conn:    conn,
		pending: make(map[uint32]*call),
	}

	go c.input()

	return c, nil
}

// Version returns version information about the function host in
// hostFilename.
func Version(hostFilename string) (HostVersion, error) {
	var v HostVersion
	bin, err := safeexec.LookPath(hostFilename)
	if err != nil {
		return v, err
	}

	cmd := exec.Command(bin, "--version")
	cmd.Stderr = os.Stderr

	out, err := cmd.Output()
	if err != nil {
		return v, err
	}

	if err := json.Unmarshal(out, &v); err != nil {
		return v, err
	}

	return v, nil
}

// HostVersion describes a function host.
type HostVersion struct {
	ProtocolVersion    string   `json:"protocolVersion"`
	ImplementationName string   `json:"implementationName"`
	Functions          []string `json:"functions"`
}

// WriteVersion writes the HostVersion of this implementation to w as JSON.
func WriteVersion(w io.Writer) error {
	return json.NewEncoder(w).Encode(HostVersion{
		ProtocolVersion:    ProtocolVersion,
		ImplementationName: "golessfunctions",
		Functions:          functions.Names(),
	})
}

// Client calls LESS functions in a function host process.
type Client struct {
	opts Options

	// stdin/stdout of the function host.
	conn *hostConn

	closing  bool
	shutdown bool

	// Protects the sending of messages to the host.
	sendMu sync.Mutex

	mu      sync.Mutex // Protects all below.
	seq     uint32
	pending map[uint32]*call
}

// IsShutDown checks if all pending calls have been shut down.
// Used in tests.
func (c *Client) IsShutDown() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.pending {
		if p.Error != ErrShutdown {
			return false
		}
	}
	return true
}

// Close closes the stream to the function host, shutting it down.
// If it is already shutting down, ErrShutdown is returned.
func (c *Client) Close() error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closing {
		return ErrShutdown
	}

	c.closing = true
	err := c.conn.Close()

	return err
}

// Call evaluates the function name with args in the host.
// Evaluation failures are returned as *functions.Error.
func (c *Client) Call(name string, args ...functions.Value) (functions.Value, error) {
	call, err := c.newCall(name, args)
	if err != nil {
		return nil, err
	}

	select {
	case call = <-call.Done:
	case <-time.After(c.opts.Timeout):
		c.mu.Lock()
		delete(c.pending, call.Request.ID)
		c.mu.Unlock()
		return nil, fmt.Errorf("timeout waiting for the function host to respond to %q", name)
	}

	if call.Error != nil {
		return nil, call.Error
	}

	if resp := call.Response; resp.Error != nil {
		return nil, resp.Error
	}

	return call.Response.Result, nil
}

func (c *Client) input() {
	var err error

	for err == nil {
		var msg lessproto.Message
		if msg, err = lessproto.ReadMessage(c.conn); err != nil {
			break
		}

		switch {
		case msg.Response != nil:
			id := msg.Response.ID
			// Attach it to the correct pending call.
			c.mu.Lock()
			call := c.pending[id]
			delete(c.pending, id)
			c.mu.Unlock()
			if call == nil {
				// Timed out.
				continue
			}
			call.Response = msg.Response
			call.done()
		case msg.Log != nil:
			if c.opts.LogEventHandler != nil {
				c.opts.LogEventHandler(LogEvent{
					Type:    LogEventType(msg.Log.Type),
					Message: msg.Log.Message,
				})
			}
		default:
			err = errors.New("unsupported message from the function host")
		}
	}

	// Terminate pending calls.
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.shutdown = true
	isEOF := err == io.EOF || strings.Contains(err.Error(), "already closed")
	if isEOF {
		if c.closing {
			err = ErrShutdown
		} else {
			err = io.ErrUnexpectedEOF
		}
	}

	for _, call := range c.pending {
		call.Error = err
		call.done()
	}
}

func (c *Client) newCall(name string, args []functions.Value) (*call, error) {
	c.mu.Lock()
	id := c.seq

	call := &call{
		Request: &lessproto.Request{ID: id, Name: name, Args: args},
		Done:    make(chan *call, 1),
	}

	if c.shutdown || c.closing {
		c.mu.Unlock()
		call.Error = ErrShutdown
		call.done()
		return call, nil
	}

	c.pending[id] = call
	c.seq++

	c.mu.Unlock()

	if err := c.sendRequest(call.Request); err != nil {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return nil, err
	}

	return call, nil
}

func (c *Client) sendRequest(req *lessproto.Request) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	c.mu.Lock()
	if c.closing || c.shutdown {
		c.mu.Unlock()
		return ErrShutdown
	}
	c.mu.Unlock()

	return lessproto.WriteMessage(c.conn, lessproto.Message{Request: req})
}

type call struct {
	Request  *lessproto.Request
	Response *lessproto.Response

	Error error
	Done  chan *call
}

func (call *call) done() {
	select {
	case call.Done <- call:
	default:
	}
}
