package agent

import (
	"bytes"
	"encoding/json"
)

// Results is an insertion-ordered map of labeled stage outputs. Labels are
// things like "tiktok_search_videos_0" or "auto_video_download_result"; a
// repeated label overwrites the value in place and keeps the original
// position. Results is not safe for concurrent use; the pipeline writes to it
// from a single goroutine.
type Results struct {
	order  []string
	values map[string]interface{}
}

func NewResults() *Results {
	return &Results{values: make(map[string]interface{})}
}

// Set stores value under label, last write wins.
func (r *Results) Set(label string, value interface{}) {
	if _, ok := r.values[label]; !ok {
		r.order = append(r.order, label)
	}
	r.values[label] = value
}

func (r *Results) Get(label string) (interface{}, bool) {
	v, ok := r.values[label]
	return v, ok
}

func (r *Results) Has(label string) bool {
	_, ok := r.values[label]
	return ok
}

// Keys returns labels in insertion order.
func (r *Results) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Results) Len() int { return len(r.order) }

// MarshalJSON renders the results as a JSON object preserving insertion
// order, which keeps the synthesis prompt stable between runs.
func (r *Results) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
