package diagnostic

import (
	"encoding/json"
	"time"
)

// Report is the ordered outcome of one diagnostic run.
type Report struct {
	RunID     string        `json:"run_id"`
	Model     string        `json:"model"`
	StartedAt time.Time     `json:"started_at"`
	Results   []ProbeResult `json:"results"`
}

// Passed is the AND of every probe; an empty report has not passed.
func (r Report) Passed() bool {
	if len(r.Results) == 0 {
		return false
	}
	for _, res := range r.Results {
		if !res.Success {
			return false
		}
	}
	return true
}

func (r Report) Result(name string) (ProbeResult, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res, true
		}
	}
	return ProbeResult{}, false
}

// Failures returns the failed probes in execution order.
func (r Report) Failures() []ProbeResult {
	var out []ProbeResult
	for _, res := range r.Results {
		if !res.Success {
			out = append(out, res)
		}
	}
	return out
}

func (r Report) MarshalJSON() ([]byte, error) {
	type plain Report
	return json.Marshal(struct {
		plain
		Passed bool `json:"passed"`
	}{plain: plain(r), Passed: r.Passed()})
}
