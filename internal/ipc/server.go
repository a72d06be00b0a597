package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"time"
)

// connTimeout bounds reads and writes on accepted connections so a slow
// client cannot stall the main loop.
const connTimeout = 100 * time.Millisecond

// Server listens on the display-derived Unix socket. Accepts are
// non-blocking; the main loop polls between X11 event batches.
type Server struct {
	listener *net.UnixListener
	path     string
}

// Bind creates the socket, removing any stale file first.
func Bind() (*Server, error) {
	path := SocketPath()
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove stale socket %s: %w", path, err)
	}
	addr, err := net.ResolveUnixAddr("unix", path)
	if err != nil {
		return nil, err
	}
	listener, err := net.ListenUnix("unix", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind IPC socket %s: %w", path, err)
	}
	return &Server{listener: listener, path: path}, nil
}

// Path returns the bound socket path.
func (s *Server) Path() string {
	return s.path
}

// Poll accepts at most one pending connection and reads its command.
// Returns nil when no connection is waiting or the request was malformed
// (malformed requests are answered with a parse_error and closed).
func (s *Server) Poll() (*Request, *ClientConn) {
	if err := s.listener.SetDeadline(time.Now().Add(time.Millisecond)); err != nil {
		return nil, nil
	}
	conn, err := s.listener.AcceptUnix()
	if err != nil {
		return nil, nil
	}

	_ = conn.SetDeadline(time.Now().Add(connTimeout))
	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil && len(line) == 0 {
		conn.Close()
		return nil, nil
	}

	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		client := &ClientConn{conn: conn}
		_ = client.Respond(Errorf("parse_error", fmt.Sprintf("failed to parse command: %v", err)))
		return nil, nil
	}
	return &req, &ClientConn{conn: conn}
}

// Close shuts the listener down and removes the socket file.
func (s *Server) Close() error {
	err := s.listener.Close()
	if rmErr := os.Remove(s.path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
		err = rmErr
	}
	return err
}

// ClientConn is the write half of one accepted connection. Each connection
// carries exactly one request and one response.
type ClientConn struct {
	conn net.Conn
}

// Respond writes the newline-terminated response and closes the connection.
func (c *ClientConn) Respond(resp Response) error {
	defer c.conn.Close()
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(connTimeout))
	_, err = c.conn.Write(append(data, '\n'))
	return err
}
