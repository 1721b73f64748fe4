package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"mediagent/internal/catalog"
	"mediagent/internal/llm"
	"mediagent/internal/telemetry"
)

// Planner consults the planning oracle twice per run: once up front to decide
// the initial tool calls, and once after the initial batch to decide
// derivative calls that depend on its outputs.
type Planner struct {
	provider  llm.Provider
	model     string
	catalog   *catalog.Catalog
	telemetry *telemetry.Telemetry
	logger    *log.Logger
}

func NewPlanner(provider llm.Provider, model string, cat *catalog.Catalog, tel *telemetry.Telemetry) *Planner {
	return &Planner{
		provider:  provider,
		model:     model,
		catalog:   cat,
		telemetry: tel,
		logger:    log.New(log.Writer(), "[PLANNER] ", log.LstdFlags),
	}
}

const plannerSystemPrompt = `You are a planning assistant for a social media analysis agent.
You decide which platform tools to call to answer the user's task.
Respond with a single JSON object and nothing else, with exactly these keys:
  "calls": array of {"platform": string, "tool_name": string, "parameters": object}
  "process_instructions": string, how to process the tool outputs
  "direct_answer_if_no_tools": string, a complete answer used only when "calls" is empty
If the task needs no tools, return an empty "calls" array and answer directly.`

const derivativeSystemPrompt = `You are a planning assistant reviewing results from a first batch of tool calls.
Decide which follow-up calls, if any, are needed to finish the user's task.
Respond with a single JSON object and nothing else, with exactly these keys:
  "derivative_calls": array of {"platform": string, "tool_name": string, "parameters": object}
  "final_process_instructions": string, how to compose the final answer
Only plan calls whose parameters can be filled from the results shown. Return an
empty "derivative_calls" array when nothing more is needed.`

// PlanInitial asks the oracle for the first batch of calls.
func (p *Planner) PlanInitial(ctx context.Context, task string) (*Plan, error) {
	prompt := fmt.Sprintf("Available tools:\n\n%s\nUser task: %s", p.catalog.PromptText(), task)
	raw, err := p.consult(ctx, plannerSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("initial planning: %w", err)
	}
	var plan Plan
	if err := decodeOracleJSON(raw, &plan); err != nil {
		return nil, fmt.Errorf("initial planning: parse oracle reply: %w", err)
	}
	plan.Calls, plan.Warning = p.sanitizeCalls(plan.Calls, raw, "calls")
	return &plan, nil
}

// PlanDerivative asks the oracle for follow-up calls given the initial results.
func (p *Planner) PlanDerivative(ctx context.Context, task string, results *Results, instructions string) (*DerivativePlan, error) {
	resJSON, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("derivative planning: encode results: %w", err)
	}
	prompt := fmt.Sprintf("Available tools:\n\n%s\nUser task: %s\n\nProcessing guidance so far: %s\n\nResults of the first batch:\n%s",
		p.catalog.PromptText(), task, instructions, string(resJSON))
	raw, err := p.consult(ctx, derivativeSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("derivative planning: %w", err)
	}
	var plan DerivativePlan
	if err := decodeOracleJSON(raw, &plan); err != nil {
		return nil, fmt.Errorf("derivative planning: parse oracle reply: %w", err)
	}
	plan.Calls, plan.Warning = p.sanitizeCalls(plan.Calls, raw, "derivative_calls")
	return &plan, nil
}

func (p *Planner) consult(ctx context.Context, system, user string) (string, error) {
	messages := []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
	reply, inTok, outTok, err := p.provider.ChatWithTokens(ctx, messages, p.model, map[string]interface{}{"json": true})
	if err != nil {
		return "", err
	}
	p.telemetry.RecordLLM(p.model, inTok, outTok, p.provider.CalculateCost(inTok, outTok, p.model))
	return reply, nil
}

// sanitizeCalls degrades a reply whose calls field was not an array (it
// decodes to nil) into an empty batch, returning a warning for the run log.
// Entries with a missing platform or tool are kept as-is: the executor records
// an indexed skip for each, preserving the positions of the calls around them.
func (p *Planner) sanitizeCalls(calls []ToolCall, raw, field string) ([]ToolCall, string) {
	if calls == nil {
		if strings.Contains(raw, "\""+field+"\"") {
			warning := fmt.Sprintf("oracle %q field was not an array, treating as no calls", field)
			p.logger.Print(warning)
			return []ToolCall{}, warning
		}
		return []ToolCall{}, ""
	}
	return calls, ""
}

// decodeOracleJSON parses an oracle reply, stripping code fences and
// attempting a repair pass when the reply is not valid JSON.
func decodeOracleJSON(raw string, out interface{}) error {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if i := strings.LastIndex(text, "```"); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
	}
	err := json.Unmarshal([]byte(text), out)
	if err == nil {
		return nil
	}
	// A type mismatch on one field (e.g. "calls" holding a string) still
	// decodes the rest of the object; treat it as a partial success and let
	// the caller warn about the bad field.
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return nil
	}
	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return fmt.Errorf("not valid JSON and repair failed: %w", err)
	}
	return json.Unmarshal([]byte(repaired), out)
}
