package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tsdcosta/refuge-player/internal/playback"
)

const DefaultSocketPath = "/tmp/refuge-player.sock"

// Per-client queue depth and write budget. Broadcast runs on the backends'
// event goroutines and must never wait on a client: a client that can take
// neither a queued event nor a bounded write is stalled and gets dropped.
const (
	clientQueueSize  = 16
	clientWriteLimit = 2 * time.Second
)

// eventConn is one connected client with its outbound queue.
type eventConn struct {
	conn net.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (ec *eventConn) close() {
	ec.once.Do(func() {
		close(ec.done)
		ec.conn.Close()
	})
}

// EventServer streams playback state changes to local clients over a Unix
// socket, one JSON object per line. Control stays on the HTTP API; the
// socket is a one-way feed.
type EventServer struct {
	socketPath string
	listener   net.Listener
	log        zerolog.Logger

	mu    sync.Mutex
	conns map[*eventConn]struct{}
	last  []byte

	wg sync.WaitGroup
}

// NewEventServer creates a new Unix socket event server.
func NewEventServer(socketPath string, log zerolog.Logger) *EventServer {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	return &EventServer{
		socketPath: socketPath,
		log:        log,
		conns:      make(map[*eventConn]struct{}),
	}
}

// Start starts the server and listens for connections.
func (s *EventServer) Start(ctx context.Context) error {
	// Remove stale socket file if any
	os.Remove(s.socketPath)

	var err error
	s.listener, err = net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.socketPath, err)
	}

	s.log.Info().Str("path", s.socketPath).Msg("event socket listening")

	go s.acceptLoop(ctx)

	return nil
}

// acceptLoop accepts incoming connections until the listener closes.
// Transient accept failures must not kill the feed.
func (s *EventServer) acceptLoop(ctx context.Context) {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.log.Warn().Err(err).Msg("event socket accept failed")
			continue
		}

		s.log.Debug().Msg("event client connected")

		ec := &eventConn{
			conn: conn,
			send: make(chan []byte, clientQueueSize),
			done: make(chan struct{}),
		}

		s.mu.Lock()
		s.conns[ec] = struct{}{}
		// New clients get the current state immediately. The queue is
		// fresh and buffered, so this never blocks.
		if s.last != nil {
			ec.send <- s.last
		}
		s.mu.Unlock()

		s.wg.Add(2)
		go s.writeLoop(ec)
		go s.watch(ctx, ec)
	}
}

// writeLoop drains the client's queue onto the socket. A write that errors
// or overruns its budget drops the client.
func (s *EventServer) writeLoop(ec *eventConn) {
	defer s.wg.Done()
	for {
		select {
		case <-ec.done:
			return
		case payload := <-ec.send:
			ec.conn.SetWriteDeadline(time.Now().Add(clientWriteLimit))
			if _, err := ec.conn.Write(payload); err != nil {
				s.drop(ec)
				return
			}
		}
	}
}

// watch blocks until the client hangs up, the client is dropped, or the
// context ends. Clients never send payload; a read returning is the
// disconnect signal.
func (s *EventServer) watch(ctx context.Context, ec *eventConn) {
	defer s.wg.Done()

	readDone := make(chan struct{})
	go func() {
		buf := make([]byte, 64)
		for {
			if _, err := ec.conn.Read(buf); err != nil {
				close(readDone)
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
	case <-readDone:
	case <-ec.done:
	}

	s.drop(ec)
	s.log.Debug().Msg("event client disconnected")
}

// drop unregisters and closes a client. Safe to call more than once.
func (s *EventServer) drop(ec *eventConn) {
	s.mu.Lock()
	delete(s.conns, ec)
	s.mu.Unlock()
	ec.close()
}

// Broadcast queues a state event for all connected clients and returns
// without waiting on any of them. Clients whose queue is full have stopped
// reading and are dropped. Implements the coordinator's snapshot listener
// signature.
func (s *EventServer) Broadcast(snap playback.Snapshot) {
	ev := StateEvent{Event: "state", StatusResponse: statusResponse(snap)}
	payload, err := json.Marshal(ev)
	if err != nil {
		s.log.Warn().Err(err).Msg("event marshal failed")
		return
	}
	payload = append(payload, '\n')

	s.mu.Lock()
	s.last = payload
	conns := make([]*eventConn, 0, len(s.conns))
	for ec := range s.conns {
		conns = append(conns, ec)
	}
	s.mu.Unlock()

	for _, ec := range conns {
		select {
		case ec.send <- payload:
		default:
			s.log.Warn().Msg("dropping stalled event client")
			s.drop(ec)
		}
	}
}

// Stop stops the server and waits for all connections to close.
func (s *EventServer) Stop() {
	if s.listener != nil {
		s.listener.Close()
	}

	s.mu.Lock()
	conns := make([]*eventConn, 0, len(s.conns))
	for ec := range s.conns {
		conns = append(conns, ec)
	}
	s.mu.Unlock()

	for _, ec := range conns {
		s.drop(ec)
	}

	s.wg.Wait()
	os.Remove(s.socketPath)
	s.log.Info().Msg("event socket stopped")
}

// SocketPath returns the socket path.
func (s *EventServer) SocketPath() string {
	return s.socketPath
}
