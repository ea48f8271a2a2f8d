package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/gstmind/gstmind/internal/common"
)

// livenessPrompt is the cheap probe request sent to each candidate.
const livenessPrompt = "Hi"

// probeTimeout bounds each liveness check.
const probeTimeout = 10 * time.Second

// ProbeResult records the outcome of one candidate liveness check.
type ProbeResult struct {
	Err  error
	Name string
}

// SelectBackend applies the probing policy to an ordered list of probe
// outcomes: the first candidate that answered wins. It is a pure
// function so the policy itself is testable without any network.
func SelectBackend(results []ProbeResult) (int, bool) {
	for i, result := range results {
		if result.Err == nil {
			return i, true
		}
	}
	return 0, false
}

// Discover probes an ordered candidate list (low-latency variants
// first) and returns the first live client. The choice is made once at
// startup and holds for the process lifetime. With no live candidate it
// returns ErrNoBackend; callers are expected to degrade, not fail.
func Discover(ctx context.Context, candidates []Client) (Client, error) {
	results := make([]ProbeResult, 0, len(candidates))

	for _, candidate := range candidates {
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		_, err := candidate.Generate(probeCtx, livenessPrompt)
		cancel()

		results = append(results, ProbeResult{Name: candidate.Name(), Err: err})
		if err == nil {
			// Later candidates are never probed once one answers.
			break
		}
		slog.Debug("generation backend probe failed",
			"backend", candidate.Name(),
			"error", err)
	}

	idx, ok := SelectBackend(results)
	if !ok {
		return nil, common.ErrNoBackend
	}

	slog.Info("Selected generation backend", "backend", candidates[idx].Name())
	return candidates[idx], nil
}
