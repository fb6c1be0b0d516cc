package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doclink/internal/check"
	"git.home.luguber.info/inful/doclink/internal/config"
)

func TestNewPublisherRequiresEnabledConfig(t *testing.T) {
	_, err := NewPublisher(nil)
	require.Error(t, err)

	_, err = NewPublisher(&config.EventsConfig{Enabled: false})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}

func TestFromProblem(t *testing.T) {
	p := check.Problem{
		SourceFile: "docs/api.md",
		SourceLine: 14,
		Link:       "missing.md",
		Message:    "Target not found in tracked paths: missing.md",
		Kind:       check.KindMissingTarget,
	}

	event := FromProblem("run-42", "docs", p)
	assert.Equal(t, "run-42", event.RunID)
	assert.Equal(t, "docs", event.Root)
	assert.Equal(t, "docs/api.md", event.SourceFile)
	assert.Equal(t, 14, event.SourceLine)
	assert.Equal(t, "missing.md", event.Link)
	assert.Equal(t, "missing-target", event.Kind)
	assert.True(t, event.Timestamp.IsZero(), "timestamp is stamped at publish time")
}
