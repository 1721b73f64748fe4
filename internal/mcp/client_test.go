package mcp

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCallToolHonorsDeadlineOnSilentChild(t *testing.T) {
	// A child that never writes a response must not block past the
	// caller's deadline.
	client, err := Start(context.Background(), "sleep", "3")
	if err != nil {
		t.Skipf("cannot start child process: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = client.CallTool(ctx, "search_video", map[string]interface{}{"keywords": "cats"})
	elapsed := time.Since(start)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if elapsed > time.Second {
		t.Fatalf("call blocked for %v despite 100ms deadline", elapsed)
	}

	// The stream is mid-frame after a timeout; later calls fail fast.
	if _, err := client.CallTool(context.Background(), "search_video", nil); err == nil {
		t.Fatalf("expected error on client after timed-out call")
	}
}

func TestCallToolReadsFramedResponse(t *testing.T) {
	script := `read req; printf '%s\n' '{"jsonrpc":"2.0","id":1,"result":{"ok":true}}'`
	client, err := Start(context.Background(), "sh", "-c", script)
	if err != nil {
		t.Skipf("cannot start child process: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := client.CallTool(ctx, "get_user_info", map[string]interface{}{"username": "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res["ok"] != true {
		t.Fatalf("unexpected result: %v", res)
	}
}
