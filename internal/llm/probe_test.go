package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gstmind/gstmind/internal/common"
)

func TestSelectBackend(t *testing.T) {
	probeErr := errors.New("unreachable")

	tests := []struct {
		name    string
		results []ProbeResult
		wantIdx int
		wantOK  bool
	}{
		{
			name: "first candidate live",
			results: []ProbeResult{
				{Name: "flash"},
				{Name: "pro"},
			},
			wantIdx: 0,
			wantOK:  true,
		},
		{
			name: "first dead second live",
			results: []ProbeResult{
				{Name: "flash", Err: probeErr},
				{Name: "pro"},
			},
			wantIdx: 1,
			wantOK:  true,
		},
		{
			name: "all dead",
			results: []ProbeResult{
				{Name: "flash", Err: probeErr},
				{Name: "pro", Err: probeErr},
			},
			wantOK: false,
		},
		{
			name:   "no candidates",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := SelectBackend(tt.results)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantIdx, idx)
			}
		})
	}
}

// stubClient is a canned generation backend for probe tests.
type stubClient struct {
	err   error
	name  string
	calls int
}

func (s *stubClient) Generate(_ context.Context, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "ok", nil
}

func (s *stubClient) Name() string { return s.name }

func TestDiscoverFirstSuccessWins(t *testing.T) {
	dead := &stubClient{name: "dead", err: errors.New("boom")}
	live := &stubClient{name: "live"}
	spare := &stubClient{name: "spare"}

	chosen, err := Discover(context.Background(), []Client{dead, live, spare})
	require.NoError(t, err)

	assert.Equal(t, "live", chosen.Name())
	assert.Equal(t, 1, dead.calls)
	assert.Equal(t, 1, live.calls)
	assert.Zero(t, spare.calls, "probing stops at the first live candidate")
}

func TestDiscoverNoLiveBackend(t *testing.T) {
	dead := &stubClient{name: "dead", err: errors.New("boom")}

	_, err := Discover(context.Background(), []Client{dead})
	assert.ErrorIs(t, err, common.ErrNoBackend)
}
