package agent

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mediagent/internal/history"
	"mediagent/internal/telemetry"
)

var orchestratorTracer trace.Tracer = otel.Tracer("mediagent/internal/agent/orchestrator")

// Stage names used in run logs and metrics.
const (
	stageInitialPlanning    = "initial_planning"
	stageInitialExecution   = "initial_execution"
	stageDerivativePlanning = "derivative_planning"
	stageDerivativeExec     = "derivative_execution"
	stageSynthesis          = "synthesis"
)

// Orchestrator sequences a full pipeline run: plan, execute, derive, execute,
// synthesize, persist. A stage failure short-circuits the remaining stages
// but the caller always receives the run log and a non-empty answer.
type Orchestrator struct {
	planner     *Planner
	executor    *Executor
	chain       *ChainResolver
	synthesizer *Synthesizer
	store       history.Store
	telemetry   *telemetry.Telemetry
	logger      *log.Logger
}

func NewOrchestrator(planner *Planner, executor *Executor, chain *ChainResolver, synth *Synthesizer, store history.Store, tel *telemetry.Telemetry) *Orchestrator {
	return &Orchestrator{
		planner:     planner,
		executor:    executor,
		chain:       chain,
		synthesizer: synth,
		store:       store,
		telemetry:   tel,
		logger:      log.New(log.Writer(), "[ORCHESTRATOR] ", log.LstdFlags),
	}
}

// Run executes the pipeline for one task. The returned RunLog is complete
// even when a stage failed; the error return is reserved for context
// cancellation, every in-pipeline failure is carried in the log instead.
func (o *Orchestrator) Run(ctx context.Context, task string) (*RunLog, error) {
	ctx, span := orchestratorTracer.Start(ctx, "agent.run",
		trace.WithAttributes(attribute.Int("task_length", len(task))))
	defer span.End()

	run := &RunLog{
		RunID:     uuid.NewString(),
		Task:      task,
		Results:   NewResults(),
		StartedAt: time.Now(),
	}
	o.logger.Printf("run %s started", run.RunID)

	defer func() {
		run.FinishedAt = time.Now()
		o.telemetry.RecordRun(run.Outcome(), run.FinishedAt.Sub(run.StartedAt))
		o.writeHistory(ctx, run)
		o.logger.Printf("run %s finished outcome=%s", run.RunID, run.Outcome())
	}()

	plan := o.runInitialPlanning(ctx, run)
	if plan == nil {
		return run, ctx.Err()
	}
	if len(plan.Calls) == 0 && strings.TrimSpace(plan.DirectAnswer) != "" {
		run.FinalAnswer = plan.DirectAnswer
		return run, ctx.Err()
	}

	o.runExecution(ctx, run, stageInitialExecution, plan.Calls, false)

	derivative := o.runDerivativePlanning(ctx, run, plan.ProcessInstructions)
	if derivative == nil {
		return run, ctx.Err()
	}
	if len(derivative.Calls) > 0 {
		o.runExecution(ctx, run, stageDerivativeExec, derivative.Calls, true)
	}

	instructions := derivative.FinalProcessInstructions
	if strings.TrimSpace(instructions) == "" {
		instructions = plan.ProcessInstructions
	}
	o.runSynthesis(ctx, run, instructions)
	return run, ctx.Err()
}

// runInitialPlanning returns nil when the stage failed; the run log then
// carries the error text as the provisional final answer.
func (o *Orchestrator) runInitialPlanning(ctx context.Context, run *RunLog) *Plan {
	ctx, stage, finish := o.beginStage(ctx, run, stageInitialPlanning)
	plan, err := o.planner.PlanInitial(ctx, run.Task)
	if err != nil {
		o.failStage(run, stage, finish, err)
		return nil
	}
	switch {
	case len(plan.Calls) == 0 && strings.TrimSpace(plan.DirectAnswer) != "":
		stage.Status = StatusDirectAnswer
	case len(plan.Calls) == 0:
		stage.Status = StatusNoActionPlan
		stage.Detail = "oracle planned no calls and gave no direct answer"
	default:
		stage.Status = StatusCompletedWithCalls
		stage.Detail = fmt.Sprintf("%d call(s) planned", len(plan.Calls))
	}
	stage.Detail = joinDetail(stage.Detail, plan.Warning)
	finish(stage)
	return plan
}

func (o *Orchestrator) runExecution(ctx context.Context, run *RunLog, name string, calls []ToolCall, derivative bool) {
	ctx, stage, finish := o.beginStage(ctx, run, name)
	executed := o.executor.ExecuteBatch(ctx, calls, run.Results, derivative)
	chained := o.chain.Resolve(ctx, run.Results)
	switch {
	case chained > 0:
		stage.Status = StatusPendingDownloadAnalysis
		stage.Detail = fmt.Sprintf("%d executed, %d auto-chained", executed, chained)
	default:
		stage.Status = StatusCompletedWithCalls
		stage.Detail = fmt.Sprintf("%d of %d call(s) executed", executed, len(calls))
	}
	finish(stage)
}

func (o *Orchestrator) runDerivativePlanning(ctx context.Context, run *RunLog, instructions string) *DerivativePlan {
	ctx, stage, finish := o.beginStage(ctx, run, stageDerivativePlanning)
	plan, err := o.planner.PlanDerivative(ctx, run.Task, run.Results, instructions)
	if err != nil {
		o.failStage(run, stage, finish, err)
		return nil
	}
	if len(plan.Calls) == 0 {
		stage.Status = StatusNoEffectiveCalls
	} else {
		stage.Status = StatusCompletedWithCalls
		stage.Detail = fmt.Sprintf("%d derivative call(s) planned", len(plan.Calls))
	}
	stage.Detail = joinDetail(stage.Detail, plan.Warning)
	finish(stage)
	return plan
}

func (o *Orchestrator) runSynthesis(ctx context.Context, run *RunLog, instructions string) {
	ctx, stage, finish := o.beginStage(ctx, run, stageSynthesis)
	answer, err := o.synthesizer.Synthesize(ctx, run.Task, instructions, run.Results)
	if err != nil {
		o.failStage(run, stage, finish, err)
		return
	}
	run.FinalAnswer = answer
	stage.Status = StatusCompleted
	finish(stage)
}

// beginStage opens a stage span and returns its context so calls made inside
// the stage are parented under the stage span.
func (o *Orchestrator) beginStage(ctx context.Context, run *RunLog, name string) (context.Context, *StageLog, func(*StageLog)) {
	ctx, span := orchestratorTracer.Start(ctx, "agent."+name)
	stage := &StageLog{Stage: name, Status: StatusPending, StartedAt: time.Now()}
	return ctx, stage, func(s *StageLog) {
		s.Duration = time.Since(s.StartedAt)
		span.End()
		run.Stages = append(run.Stages, *s)
		o.telemetry.RecordStage(name, s.Duration)
	}
}

func joinDetail(detail, extra string) string {
	if extra == "" {
		return detail
	}
	if detail == "" {
		return extra
	}
	return detail + "; " + extra
}

// failStage records the failure and seeds the provisional answer so the
// caller never receives an empty reply.
func (o *Orchestrator) failStage(run *RunLog, stage *StageLog, finish func(*StageLog), err error) {
	stage.Status = StatusFailed
	stage.Detail = err.Error()
	finish(stage)
	o.logger.Printf("run %s stage %s failed: %v", run.RunID, stage.Stage, err)
	if strings.TrimSpace(run.FinalAnswer) == "" {
		run.FinalAnswer = fmt.Sprintf("Task could not be completed: %s failed: %v", stage.Stage, err)
	}
}

// writeHistory appends the (task, answer) pair. Persistence problems become a
// run-log note, never a run failure.
func (o *Orchestrator) writeHistory(ctx context.Context, run *RunLog) {
	if o.store == nil {
		run.HistoryNote = "history store not available, skipping write"
		return
	}
	if strings.TrimSpace(run.FinalAnswer) == "" {
		run.HistoryNote = "no final answer produced, skipping history write"
		return
	}
	key := history.SessionKey(run.Task)
	if err := o.store.Append(ctx, key, run.Task, run.FinalAnswer); err != nil {
		run.HistoryNote = fmt.Sprintf("history write failed: %v", err)
		o.logger.Printf("run %s: %s", run.RunID, run.HistoryNote)
		return
	}
	run.HistoryNote = fmt.Sprintf("conversation history written (session %s)", key)
}
