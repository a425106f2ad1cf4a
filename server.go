package golessfunctions

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/errgroup"

	"github.com/bep/golessfunctions/functions"
	"github.com/bep/golessfunctions/internal/lessfntesting"
	"github.com/bep/golessfunctions/internal/lessproto"
)

// Server is the host side of the protocol: it evaluates function calls
// read from a stream and writes the responses back.
type Server struct {
	opts ServerOptions

	// Builtin results by call key, nil if disabled.
	cache *lru.Cache

	hits   atomic.Uint64
	misses atomic.Uint64

	// Protects the writing of messages.
	writeMu sync.Mutex
}

// NewServer creates a new Server.
func NewServer(opts ServerOptions) (*Server, error) {
	if err := opts.init(); err != nil {
		return nil, err
	}

	s := &Server{opts: opts}

	if opts.CacheSize > 0 {
		cache, err := lru.New(opts.CacheSize)
		if err != nil {
			return nil, err
		}
		s.cache = cache
	}

	return s, nil
}

// CacheStats returns the number of cache hits and misses so far.
func (s *Server) CacheStats() (hits, misses uint64) {
	return s.hits.Load(), s.misses.Load()
}

// Serve reads requests from r until EOF and writes a response for each to w.
// Requests are evaluated concurrently, so responses may arrive out of order.
// A malformed message stops Serve with an error.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	br, ok := r.(lessproto.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	s.opts.Logger.Info("serving", "concurrency", s.opts.Concurrency, "cacheSize", s.opts.CacheSize)

	var (
		err      error
		requests int
	)

	for gctx.Err() == nil {
		var msg lessproto.Message
		if msg, err = lessproto.ReadMessage(br); err != nil {
			if err != io.EOF {
				err = fmt.Errorf("failed to read request: %w", err)
			}
			break
		}
		if msg.Request == nil {
			err = errors.New("expected a request")
			break
		}

		requests++
		req := msg.Request
		g.Go(func() error {
			return s.respond(w, s.execute(w, req))
		})
	}

	if err == io.EOF {
		err = nil
	}
	if werr := g.Wait(); err == nil {
		err = werr
	}
	if err == nil {
		err = ctx.Err()
	}

	hits, misses := s.CacheStats()
	s.opts.Logger.Info("done", "requests", requests, "cacheHits", hits, "cacheMisses", misses, "error", err)

	return err
}

func (s *Server) execute(w io.Writer, req *lessproto.Request) (resp *lessproto.Response) {
	resp = &lessproto.Response{ID: req.ID}

	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("%s: %v", req.Name, r)
			s.opts.Logger.Error("function panicked", "name", req.Name, "panic", r)
			// Best effort, the response carries the error.
			_ = s.send(w, lessproto.Message{Log: &lessproto.LogEvent{Type: string(LogEventTypeWarning), Message: msg}})
			resp.Result = nil
			resp.Error = &functions.Error{Kind: functions.RuntimeError, Message: msg}
		}
	}()

	if lessfntesting.IsTest && s.opts.panicWhen.Has(lessfntesting.ShouldPanicInExecute) {
		panic("test panic in execute")
	}

	var key string
	if _, isBuiltin := functions.Lookup(req.Name); isBuiltin && s.cache != nil {
		var err error
		if key, err = lessproto.CallKey(req.Name, req.Args); err == nil {
			if v, found := s.cache.Get(key); found {
				s.hits.Add(1)
				resp.Result = v.(functions.Value)
				return
			}
			s.misses.Add(1)
		}
	}

	v, err := s.opts.Functions.Execute(req.Name, req.Args)
	if err != nil {
		var ferr *functions.Error
		if !errors.As(err, &ferr) {
			ferr = &functions.Error{Kind: functions.RuntimeError, Message: err.Error()}
		}
		s.opts.Logger.Debug("call failed", "name", req.Name, "error", ferr)
		resp.Error = ferr
		return
	}

	s.opts.Logger.Debug("call", "name", req.Name, "result", v)
	resp.Result = v

	if key != "" {
		if lessfntesting.IsTest && s.opts.panicWhen.Has(lessfntesting.ShouldPanicInCacheAdd) {
			panic("test panic in cache add")
		}
		s.cache.Add(key, v)
	}

	return
}

// respond writes resp, or a RuntimeError in its place if the result
// cannot be encoded.
func (s *Server) respond(w io.Writer, resp *lessproto.Response) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err := lessproto.WriteMessage(w, lessproto.Message{Response: resp})

	var unsupported *lessproto.UnsupportedValueError
	if errors.As(err, &unsupported) {
		s.opts.Logger.Error("failed to encode result", "id", resp.ID, "error", err)
		err = lessproto.WriteMessage(w, lessproto.Message{Response: &lessproto.Response{
			ID:    resp.ID,
			Error: &functions.Error{Kind: functions.RuntimeError, Message: unsupported.Error()},
		}})
	}

	return err
}

func (s *Server) send(w io.Writer, msg lessproto.Message) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return lessproto.WriteMessage(w, msg)
}
