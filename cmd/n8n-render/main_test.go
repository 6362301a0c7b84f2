package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MahanAzadBeast/n8n-render/internal/version"
)

func TestExitCode_MapsOutcome_When_ExecuteReturns(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: 0},
		{name: "fail verdict", err: errRunFailed, want: 1},
		{name: "wrapped fail verdict", err: fmt.Errorf("run: %w", errRunFailed), want: 1},
		{name: "any other error", err: errors.New("config: invalid"), want: 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, exitCode(tc.err))
		})
	}
}

func TestVersionString_IncludesCommit_When_Injected(t *testing.T) {
	origVersion, origCommit := version.Version, version.CommitHash
	t.Cleanup(func() {
		version.Version, version.CommitHash = origVersion, origCommit
	})

	version.Version, version.CommitHash = "1.2.0", "abc1234"
	assert.Equal(t, "1.2.0 (abc1234)", versionString())

	version.CommitHash = "unknown"
	assert.Equal(t, "1.2.0", versionString())
}
