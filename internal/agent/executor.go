package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"mediagent/internal/catalog"
	"mediagent/internal/mcp"
	"mediagent/internal/telemetry"
)

// Invoker dispatches one tool call to a platform collaborator. *mcp.Registry
// satisfies it; tests substitute a fake.
type Invoker interface {
	Invoke(ctx context.Context, platform, tool string, params map[string]interface{}) (interface{}, error)
	Has(platform string) bool
}

var _ Invoker = (*mcp.Registry)(nil)

// Executor runs a planned batch of calls sequentially and records every
// outcome in the shared results map. A failing call never aborts the batch.
type Executor struct {
	invoker   Invoker
	catalog   *catalog.Catalog
	telemetry *telemetry.Telemetry
	logger    *log.Logger
}

func NewExecutor(invoker Invoker, cat *catalog.Catalog, tel *telemetry.Telemetry) *Executor {
	return &Executor{
		invoker:   invoker,
		catalog:   cat,
		telemetry: tel,
		logger:    log.New(log.Writer(), "[EXECUTOR] ", log.LstdFlags),
	}
}

// ExecuteBatch runs calls in order. Each call produces exactly one results
// entry: a success value, an error string, or a skip notice for calls naming
// an unknown platform or tool. The derivative flag switches the label scheme
// so a second batch never collides with the first. Returns how many calls
// actually reached a collaborator.
func (e *Executor) ExecuteBatch(ctx context.Context, calls []ToolCall, results *Results, derivative bool) int {
	executed := 0
	for i, call := range calls {
		platform := strings.ToLower(strings.TrimSpace(call.Platform))
		tool := strings.TrimSpace(call.Tool)

		if !e.valid(platform, tool) {
			results.Set(skipLabel(i, derivative), fmt.Sprintf(
				"Invalid/Missing platform (%q) or tool_name (%q).", call.Platform, call.Tool))
			e.telemetry.RecordToolCall(platform, "skipped")
			e.logger.Printf("skipping call %d: unknown %s.%s", i, call.Platform, call.Tool)
			continue
		}

		executed++
		res, err := e.invoker.Invoke(ctx, platform, tool, call.Params)
		if err != nil {
			results.Set(resultLabel(platform, tool, i, derivative)+"_error", err.Error())
			e.telemetry.RecordToolCall(platform, "error")
			e.logger.Printf("call %d %s.%s failed: %v", i, platform, tool, err)
			continue
		}
		results.Set(resultLabel(platform, tool, i, derivative), res)
		e.telemetry.RecordToolCall(platform, "success")
	}
	return executed
}

func (e *Executor) valid(platform, tool string) bool {
	if platform == "" || tool == "" {
		return false
	}
	if !e.invoker.Has(platform) {
		return false
	}
	_, ok := e.catalog.Lookup(platform, tool)
	return ok
}

func resultLabel(platform, tool string, i int, derivative bool) string {
	if derivative {
		return fmt.Sprintf("%s_%s_deriv_%d", platform, tool, i)
	}
	return fmt.Sprintf("%s_%s_%d", platform, tool, i)
}

func skipLabel(i int, derivative bool) string {
	if derivative {
		return fmt.Sprintf("deriv_call_%d_skipped", i)
	}
	return fmt.Sprintf("call_%d_skipped", i)
}
