package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// clientTimeout bounds a ttwmctl round trip against a wedged WM.
const clientTimeout = 5 * time.Second

// Do connects to the WM's socket, sends one request and reads the single
// response line. The raw line is returned alongside the decoded response so
// callers can print the wire form verbatim.
func Do(req Request) (Response, []byte, error) {
	conn, err := net.Dial("unix", SocketPath())
	if err != nil {
		return Response{}, nil, fmt.Errorf("failed to connect to ttwm at %s: %w", SocketPath(), err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(clientTimeout))

	data, err := json.Marshal(req)
	if err != nil {
		return Response{}, nil, err
	}
	if _, err := conn.Write(append(data, '\n')); err != nil {
		return Response{}, nil, fmt.Errorf("failed to send command: %w", err)
	}

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return Response{}, nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(line, &resp); err != nil {
		return Response{}, line, fmt.Errorf("failed to parse response: %w", err)
	}
	return resp, line, nil
}
