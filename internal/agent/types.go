// Package agent implements the planning and execution pipeline that turns a
// natural-language task into collaborator tool calls and a synthesized answer.
package agent

import (
	"fmt"
	"time"
)

// ToolCall is one planned collaborator invocation.
type ToolCall struct {
	Platform string                 `json:"platform"`
	Tool     string                 `json:"tool_name"`
	Params   map[string]interface{} `json:"parameters"`
}

func (c ToolCall) String() string {
	return fmt.Sprintf("%s.%s", c.Platform, c.Tool)
}

// Plan is the initial planning oracle's decision. Warning carries any
// degradation notice from decoding the oracle reply; it is surfaced in the
// stage log rather than serialized.
type Plan struct {
	Calls               []ToolCall `json:"calls"`
	ProcessInstructions string     `json:"process_instructions"`
	DirectAnswer        string     `json:"direct_answer_if_no_tools"`
	Warning             string     `json:"-"`
}

// DerivativePlan is the second planning pass, produced after the initial
// batch's results are available.
type DerivativePlan struct {
	Calls                    []ToolCall `json:"derivative_calls"`
	FinalProcessInstructions string     `json:"final_process_instructions"`
	Warning                  string     `json:"-"`
}

// StageStatus captures how a pipeline stage concluded.
type StageStatus string

const (
	StatusPending                 StageStatus = "pending"
	StatusCompleted               StageStatus = "completed"
	StatusDirectAnswer            StageStatus = "completed_direct_answer"
	StatusCompletedWithCalls      StageStatus = "completed_with_calls"
	StatusNoActionPlan            StageStatus = "completed_no_action_plan"
	StatusPendingDownloadAnalysis StageStatus = "completed_pending_download_analysis"
	StatusNoEffectiveCalls        StageStatus = "completed_no_effective_calls"
	StatusFailed                  StageStatus = "failed"
)

// StageLog records one stage's outcome for the run log.
type StageLog struct {
	Stage     string        `json:"stage"`
	Status    StageStatus   `json:"status"`
	Detail    string        `json:"detail,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// RunLog is the full observable trace of one pipeline run. It is returned to
// the caller regardless of whether the run succeeded.
type RunLog struct {
	RunID       string     `json:"run_id"`
	Task        string     `json:"task"`
	Stages      []StageLog `json:"stages"`
	Results     *Results   `json:"results"`
	FinalAnswer string     `json:"final_answer"`
	HistoryNote string     `json:"history_note,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  time.Time  `json:"finished_at"`
}

// Outcome summarizes the run for metrics labels.
func (r *RunLog) Outcome() string {
	for _, s := range r.Stages {
		if s.Status == StatusFailed {
			return "failed"
		}
		if s.Status == StatusDirectAnswer {
			return "direct_answer"
		}
	}
	return "completed"
}
