package agent

import (
	"context"
	"log"
	"strings"

	"mediagent/internal/telemetry"
)

// Chain resolver labels. Their presence in the results map is what makes a
// second Resolve pass a no-op.
const (
	labelDownloadResult = "auto_video_download_result"
	labelDownloadError  = "auto_video_download_error"
	labelAnalysisResult = "auto_video_analysis_result"
	labelAnalysisError  = "auto_video_analysis_error"
)

// playableFields are scanned in priority order within a single result value;
// across result values the last scanned match wins.
var playableFields = []string{"play_url", "play", "play_watermark"}

const fileField = "file_path"

// maxScanDepth bounds recursion into nested collaborator payloads.
const maxScanDepth = 4

// ChainResolver completes the mechanical download-then-analyze sequence
// without consulting the planning oracle. It scans the result map for handoff
// fields and injects at most one download and one analysis call per run.
type ChainResolver struct {
	invoker   Invoker
	telemetry *telemetry.Telemetry
	logger    *log.Logger
}

func NewChainResolver(invoker Invoker, tel *telemetry.Telemetry) *ChainResolver {
	return &ChainResolver{
		invoker:   invoker,
		telemetry: tel,
		logger:    log.New(log.Writer(), "[CHAIN] ", log.LstdFlags),
	}
}

// Resolve runs the two-condition scan. It returns the number of chain calls
// it performed. Calling it again on an unchanged results map performs none:
// the presence checks key off the output labels written here, and an error
// label blocks retries the same way a success does.
func (c *ChainResolver) Resolve(ctx context.Context, results *Results) int {
	actions := 0

	if !results.Has(labelDownloadResult) && !results.Has(labelDownloadError) {
		if url := c.findPlayable(results); url != "" {
			actions++
			c.logger.Printf("auto download from %s", url)
			res, err := c.invoker.Invoke(ctx, "videodl", "download_video_by_url", map[string]interface{}{"play_url": url})
			if err != nil {
				results.Set(labelDownloadError, err.Error())
				c.telemetry.RecordToolCall("videodl", "error")
			} else {
				results.Set(labelDownloadResult, res)
				c.telemetry.RecordToolCall("videodl", "success")
			}
		}
	}

	if !results.Has(labelAnalysisResult) && !results.Has(labelAnalysisError) {
		if path := c.findFile(results); path != "" {
			actions++
			c.logger.Printf("auto analysis of %s", path)
			res, err := c.invoker.Invoke(ctx, "content", "analyze_video", map[string]interface{}{"file_path": path})
			if err != nil {
				results.Set(labelAnalysisError, err.Error())
				c.telemetry.RecordToolCall("content", "error")
			} else {
				results.Set(labelAnalysisResult, res)
				c.telemetry.RecordToolCall("content", "success")
			}
		}
	}

	return actions
}

// findPlayable walks results in insertion order and returns the playable
// locator from the last value that carries one.
func (c *ChainResolver) findPlayable(results *Results) string {
	var found string
	for _, key := range results.Keys() {
		v, _ := results.Get(key)
		v = unwrapTextBlock(v)
		for _, field := range playableFields {
			if s := findStringField(v, field, 0); s != "" {
				found = s
				break
			}
		}
	}
	return found
}

func (c *ChainResolver) findFile(results *Results) string {
	var found string
	for _, key := range results.Keys() {
		v, _ := results.Get(key)
		if s := findStringField(unwrapTextBlock(v), fileField, 0); s != "" {
			found = s
		}
	}
	return found
}

// findStringField searches a decoded JSON value for a non-empty string field.
func findStringField(v interface{}, field string, depth int) string {
	if depth > maxScanDepth {
		return ""
	}
	switch val := v.(type) {
	case map[string]interface{}:
		if s, ok := val[field].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
		for _, nested := range val {
			if s := findStringField(nested, field, depth+1); s != "" {
				return s
			}
		}
	case []interface{}:
		for _, item := range val {
			if s := findStringField(item, field, depth+1); s != "" {
				return s
			}
		}
	}
	return ""
}
