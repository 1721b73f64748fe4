package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"mediagent/internal/llm"
	"mediagent/internal/telemetry"
)

// Synthesizer composes the final answer from the collated results.
type Synthesizer struct {
	provider  llm.Provider
	model     string
	telemetry *telemetry.Telemetry
	logger    *log.Logger
}

func NewSynthesizer(provider llm.Provider, model string, tel *telemetry.Telemetry) *Synthesizer {
	return &Synthesizer{
		provider:  provider,
		model:     model,
		telemetry: tel,
		logger:    log.New(log.Writer(), "[SYNTH] ", log.LstdFlags),
	}
}

const synthesizerSystemPrompt = `You are a multi-platform data processing expert. Integrate the tool
results below into a reply that answers the user's original request.
Follow the processing instructions strictly. If the gathered information is
insufficient, say so. Your output is shown to the end user verbatim.`

// Synthesize produces the user-facing answer. Collaborator payloads that are
// still wrapped as MCP text blocks are re-parsed before prompting so the
// oracle sees structured data rather than escaped JSON strings.
func (s *Synthesizer) Synthesize(ctx context.Context, task, instructions string, results *Results) (string, error) {
	prepared := make(map[string]interface{}, results.Len())
	for _, key := range results.Keys() {
		v, _ := results.Get(key)
		prepared[key] = unwrapTextBlock(v)
	}
	resJSON, err := json.MarshalIndent(orderedView{results.Keys(), prepared}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("synthesize: encode results: %w", err)
	}

	messages := []llm.Message{
		{Role: "system", Content: fmt.Sprintf("%s\n\nOriginal request: %s\nProcessing instructions: %s\nTool results:\n%s",
			synthesizerSystemPrompt, task, instructions, string(resJSON))},
		{Role: "user", Content: "Produce the final reply."},
	}
	reply, inTok, outTok, err := s.provider.ChatWithTokens(ctx, messages, s.model, nil)
	if err != nil {
		return "", fmt.Errorf("synthesize: %w", err)
	}
	s.telemetry.RecordLLM(s.model, inTok, outTok, s.provider.CalculateCost(inTok, outTok, s.model))
	return reply, nil
}

// orderedView marshals a key subset of a map in a fixed order.
type orderedView struct {
	keys   []string
	values map[string]interface{}
}

func (o orderedView) MarshalJSON() ([]byte, error) {
	r := NewResults()
	for _, k := range o.keys {
		r.Set(k, o.values[k])
	}
	return r.MarshalJSON()
}

// unwrapTextBlock recognizes the MCP text-block shape, a list whose first
// element is {"text": "<json>"}, and substitutes the decoded payload when the
// text parses as JSON. Anything else passes through unchanged.
func unwrapTextBlock(v interface{}) interface{} {
	list, ok := v.([]interface{})
	if !ok || len(list) == 0 {
		return v
	}
	first, ok := list[0].(map[string]interface{})
	if !ok {
		return v
	}
	text, ok := first["text"].(string)
	if !ok {
		return v
	}
	var decoded interface{}
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return v
	}
	return decoded
}
