// Package mcp implements the collaborator side of the tool invocation
// protocol: a minimal JSON-RPC 2.0 client over a child process stdio pipe,
// plus a closed registry dispatching platform identifiers to clients.
package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
)

// Client talks to a single platform collaborator process.
type Client interface {
	CallTool(ctx context.Context, name string, args map[string]interface{}) (map[string]interface{}, error)
	Close() error
}

type stdioClient struct {
	cmd    *exec.Cmd
	in     io.WriteCloser
	out    *bufio.Reader
	mu     sync.Mutex
	seq    int64
	broken bool
}

// Start launches a collaborator process and wires its stdio pipes.
// The child must log to stderr; stdout is reserved for protocol frames.
func Start(ctx context.Context, command string, args ...string) (Client, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &stdioClient{cmd: cmd, in: stdin, out: bufio.NewReader(stdout)}, nil
}

type rpcReq struct {
	JSONRPC string                 `json:"jsonrpc"`
	ID      int64                  `json:"id"`
	Method  string                 `json:"method"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

type rpcResp struct {
	JSONRPC string                 `json:"jsonrpc"`
	ID      int64                  `json:"id"`
	Result  map[string]interface{} `json:"result,omitempty"`
	Error   *rpcError              `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *stdioClient) send(ctx context.Context, method string, params map[string]interface{}) (map[string]interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.broken {
		return nil, fmt.Errorf("mcp: collaborator unusable after a timed-out call")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.seq++
	req := rpcReq{JSONRPC: "2.0", ID: c.seq, Method: method, Params: params}
	b, _ := json.Marshal(req)
	b = append(b, '\n')
	if _, err := c.in.Write(b); err != nil {
		return nil, err
	}

	// The pipe read cannot be interrupted directly, so it runs in a
	// goroutine and the deadline wins via select. A timed-out call leaves
	// the stream mid-frame, which this protocol cannot resynchronize; the
	// child is killed and the client marked unusable so later calls fail
	// fast instead of reading a stale response.
	type readResult struct {
		res map[string]interface{}
		err error
	}
	ch := make(chan readResult, 1)
	go func() {
		res, err := c.readResponse()
		ch <- readResult{res, err}
	}()

	select {
	case <-ctx.Done():
		c.broken = true
		if c.cmd != nil && c.cmd.Process != nil {
			_ = c.cmd.Process.Kill()
		}
		return nil, ctx.Err()
	case r := <-ch:
		return r.res, r.err
	}
}

// readResponse accumulates frames until newline, skipping non-JSON noise
// and capping frame size.
func (c *stdioClient) readResponse() (map[string]interface{}, error) {
	const maxFrame = 1 << 20
	for {
		var buf bytes.Buffer
		for {
			frag, err := c.out.ReadBytes('\n')
			buf.Write(frag)
			if buf.Len() > maxFrame {
				return nil, fmt.Errorf("mcp: frame too large")
			}
			if err == nil {
				break
			}
			if err == io.EOF {
				return nil, io.EOF
			}
			if !errors.Is(err, bufio.ErrBufferFull) {
				return nil, err
			}
		}
		line := bytes.TrimSpace(buf.Bytes())
		if len(line) == 0 || line[0] != '{' {
			continue
		}
		var resp rpcResp
		if err := json.Unmarshal(line, &resp); err != nil {
			continue
		}
		if resp.Error != nil {
			return nil, fmt.Errorf("mcp error %d: %s", resp.Error.Code, resp.Error.Message)
		}
		return resp.Result, nil
	}
}

func (c *stdioClient) CallTool(ctx context.Context, name string, args map[string]interface{}) (map[string]interface{}, error) {
	return c.send(ctx, "tools/call", map[string]interface{}{"name": name, "arguments": args})
}

func (c *stdioClient) Close() error {
	_ = c.in.Close()
	return c.cmd.Wait()
}
