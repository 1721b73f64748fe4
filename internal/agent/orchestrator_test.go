package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"mediagent/internal/catalog"
	"mediagent/internal/history"
)

func newTestOrchestrator(provider *stubProvider, inv *stubInvoker, store history.Store) *Orchestrator {
	cat := catalog.Default()
	return NewOrchestrator(
		NewPlanner(provider, "gpt-4o-mini", cat, nil),
		NewExecutor(inv, cat, nil),
		NewChainResolver(inv, nil),
		NewSynthesizer(provider, "gpt-4o-mini", nil),
		store,
		nil,
	)
}

func TestRunDirectAnswerShortCircuits(t *testing.T) {
	provider := &stubProvider{replies: []string{
		`{"calls": [], "process_instructions": "", "direct_answer_if_no_tools": "Paris is the capital of France."}`,
	}}
	inv := newStubInvoker()
	store := history.NewInMemoryStore(time.Hour)
	orch := newTestOrchestrator(provider, inv, store)

	run, err := orch.Run(context.Background(), "capital of France?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.FinalAnswer != "Paris is the capital of France." {
		t.Fatalf("unexpected answer: %q", run.FinalAnswer)
	}
	if len(inv.calls) != 0 {
		t.Fatalf("direct answer must not dispatch tools: %v", inv.calls)
	}
	if len(run.Stages) != 1 || run.Stages[0].Status != StatusDirectAnswer {
		t.Fatalf("unexpected stages: %+v", run.Stages)
	}
	// History still records the exchange.
	key := history.SessionKey("capital of France?")
	answers, err := store.History(context.Background(), key, 10)
	if err != nil || len(answers) != 1 {
		t.Fatalf("expected one history entry, got %v (err=%v)", answers, err)
	}
}

func TestRunFullPipelineScenario(t *testing.T) {
	provider := &stubProvider{replies: []string{
		`{"calls": [{"platform": "twitter", "tool_name": "get_user_info", "parameters": {"username": "someone"}}],
		  "process_instructions": "summarize the profile", "direct_answer_if_no_tools": ""}`,
		`{"derivative_calls": [], "final_process_instructions": "write a short summary"}`,
		"Someone has 10 followers and posts about Go.",
	}}
	inv := newStubInvoker()
	inv.responses["twitter.get_user_info"] = map[string]interface{}{"followers": 10}
	store := history.NewInMemoryStore(time.Hour)
	orch := newTestOrchestrator(provider, inv, store)

	run, err := orch.Run(context.Background(), "summarize someone's profile")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.FinalAnswer != "Someone has 10 followers and posts about Go." {
		t.Fatalf("unexpected answer: %q", run.FinalAnswer)
	}
	if !run.Results.Has("twitter_get_user_info_0") {
		t.Fatalf("missing execution result: %v", run.Results.Keys())
	}

	statuses := map[string]StageStatus{}
	for _, s := range run.Stages {
		statuses[s.Stage] = s.Status
	}
	if statuses[stageInitialPlanning] != StatusCompletedWithCalls {
		t.Fatalf("unexpected planning status: %v", statuses)
	}
	if statuses[stageDerivativePlanning] != StatusNoEffectiveCalls {
		t.Fatalf("unexpected derivative status: %v", statuses)
	}
	if statuses[stageSynthesis] != StatusCompleted {
		t.Fatalf("unexpected synthesis status: %v", statuses)
	}

	answers, err := store.History(context.Background(), history.SessionKey("summarize someone's profile"), 10)
	if err != nil || len(answers) != 1 {
		t.Fatalf("expected history entry, got %v (err=%v)", answers, err)
	}
}

func TestRunPlanningFailureStillAnswers(t *testing.T) {
	provider := &stubProvider{err: errors.New("oracle down")}
	inv := newStubInvoker()
	orch := newTestOrchestrator(provider, inv, history.NewInMemoryStore(time.Hour))

	run, err := orch.Run(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(run.FinalAnswer) == "" {
		t.Fatalf("caller must always receive an answer")
	}
	if run.Stages[0].Status != StatusFailed {
		t.Fatalf("expected failed planning stage, got %+v", run.Stages)
	}
	if len(run.Stages) != 1 {
		t.Fatalf("failure must short-circuit remaining stages: %+v", run.Stages)
	}
}

func TestRunDerivativeCallsUseDerivLabels(t *testing.T) {
	provider := &stubProvider{replies: []string{
		`{"calls": [{"platform": "tiktok", "tool_name": "search_video", "parameters": {"keywords": "cats"}}],
		  "process_instructions": "", "direct_answer_if_no_tools": ""}`,
		`{"derivative_calls": [{"platform": "tiktok", "tool_name": "get_post_detail", "parameters": {"aweme_id": "1"}}],
		  "final_process_instructions": "summarize"}`,
		"done",
	}}
	inv := newStubInvoker()
	orch := newTestOrchestrator(provider, inv, nil)

	run, err := orch.Run(context.Background(), "find and inspect a cat video")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !run.Results.Has("tiktok_search_video_0") {
		t.Fatalf("missing initial result: %v", run.Results.Keys())
	}
	if !run.Results.Has("tiktok_get_post_detail_deriv_0") {
		t.Fatalf("missing derivative result: %v", run.Results.Keys())
	}
	if run.HistoryNote == "" {
		t.Fatalf("expected history note when store is absent")
	}
}

func TestRunChainAfterDerivativeBatch(t *testing.T) {
	provider := &stubProvider{replies: []string{
		`{"calls": [{"platform": "tiktok", "tool_name": "search_video", "parameters": {"keywords": "cats"}}],
		  "process_instructions": "", "direct_answer_if_no_tools": ""}`,
		`{"derivative_calls": [{"platform": "tiktok", "tool_name": "get_video_download_url", "parameters": {"aweme_id": "42"}}],
		  "final_process_instructions": "describe"}`,
		"a video about cats",
	}}
	inv := newStubInvoker()
	inv.responses["tiktok.search_video"] = map[string]interface{}{"aweme_id": "42"}
	inv.responses["tiktok.get_video_download_url"] = map[string]interface{}{"play": "https://cdn/42.mp4"}
	inv.responses["videodl.download_video_by_url"] = map[string]interface{}{"file_path": "/tmp/42.mp4"}
	inv.responses["content.analyze_video"] = map[string]interface{}{"summary": "cats"}
	orch := newTestOrchestrator(provider, inv, nil)

	run, err := orch.Run(context.Background(), "analyze that cat video")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !run.Results.Has("auto_video_download_result") || !run.Results.Has("auto_video_analysis_result") {
		t.Fatalf("chain did not complete: %v", run.Results.Keys())
	}

	var derivStatus StageStatus
	for _, s := range run.Stages {
		if s.Stage == stageDerivativeExec {
			derivStatus = s.Status
		}
	}
	if derivStatus != StatusPendingDownloadAnalysis {
		t.Fatalf("expected chain-marked derivative stage, got %q", derivStatus)
	}
}

func TestRunRecordsIndexedSkipForShapeInvalidCall(t *testing.T) {
	provider := &stubProvider{replies: []string{
		`{"calls": [
			{"platform": "", "tool_name": "search_video"},
			{"platform": "tiktok", "tool_name": "search_video", "parameters": {"keywords": "cats"}}
		  ],
		  "process_instructions": "", "direct_answer_if_no_tools": ""}`,
		`{"derivative_calls": [], "final_process_instructions": ""}`,
		"found some cats",
	}}
	inv := newStubInvoker()
	orch := newTestOrchestrator(provider, inv, nil)

	run, err := orch.Run(context.Background(), "find cat videos")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The bad call keeps its position as a skip entry and the good call
	// keeps its original index.
	if !run.Results.Has("call_0_skipped") {
		t.Fatalf("missing skip entry: %v", run.Results.Keys())
	}
	if !run.Results.Has("tiktok_search_video_1") {
		t.Fatalf("good call lost its index: %v", run.Results.Keys())
	}
}

func TestRunSurfacesNonArrayCallsWarningInStageLog(t *testing.T) {
	provider := &stubProvider{replies: []string{
		`{"calls": "search for cats", "process_instructions": "x", "direct_answer_if_no_tools": ""}`,
		`{"derivative_calls": [], "final_process_instructions": ""}`,
		"no results to report",
	}}
	inv := newStubInvoker()
	orch := newTestOrchestrator(provider, inv, nil)

	run, err := orch.Run(context.Background(), "find cats")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.Stages[0].Stage != stageInitialPlanning {
		t.Fatalf("unexpected first stage: %+v", run.Stages[0])
	}
	if !strings.Contains(run.Stages[0].Detail, "was not an array") {
		t.Fatalf("degradation warning not in stage log: %q", run.Stages[0].Detail)
	}
}

func TestRunParentsStageSpansUnderRunSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	provider := &stubProvider{replies: []string{
		`{"calls": [], "process_instructions": "", "direct_answer_if_no_tools": "hi"}`,
	}}
	orch := newTestOrchestrator(provider, newStubInvoker(), nil)
	if _, err := orch.Run(context.Background(), "say hi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var runSpan, planSpan sdktrace.ReadOnlySpan
	for _, s := range recorder.Ended() {
		switch s.Name() {
		case "agent.run":
			runSpan = s
		case "agent." + stageInitialPlanning:
			planSpan = s
		}
	}
	if runSpan == nil || planSpan == nil {
		t.Fatalf("missing spans: %v", recorder.Ended())
	}
	if planSpan.Parent().SpanID() != runSpan.SpanContext().SpanID() {
		t.Fatalf("stage span not parented under the run span")
	}
}
