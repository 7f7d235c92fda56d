package assistant_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutricare/backend/internal/assistant"
	"nutricare/backend/internal/llm"
	"nutricare/backend/internal/model"
)

func TestPromptBuilder_Build(t *testing.T) {
	b := assistant.NewPromptBuilder()

	window := []llm.Message{
		{Role: model.RoleUser, Content: "Is keto safe?"},
		{Role: model.RoleAssistant, Content: "It depends on your health profile."},
	}

	messages := b.Build("What about long term?", window)

	require.Len(t, messages, 4)
	assert.Equal(t, model.RoleSystem, messages[0].Role)
	assert.Contains(t, messages[0].Content, "Dr. Nasreen Fatima")
	assert.Contains(t, messages[0].Content, "nutrition")
	// The current calendar date is interpolated at build time.
	assert.Contains(t, messages[0].Content, fmt.Sprintf("%d", time.Now().Year()))

	// The prior window is carried verbatim, in order.
	assert.Equal(t, window[0], messages[1])
	assert.Equal(t, window[1], messages[2])

	// The new user message comes last.
	assert.Equal(t, llm.Message{Role: model.RoleUser, Content: "What about long term?"}, messages[3])
}

func TestPromptBuilder_DoesNotMutateWindow(t *testing.T) {
	b := assistant.NewPromptBuilder()

	window := []llm.Message{{Role: model.RoleUser, Content: "original"}}
	original := make([]llm.Message, len(window))
	copy(original, window)

	first := b.Build("one", window)
	second := b.Build("two", window)

	assert.Equal(t, original, window)
	// Fresh slice each call: mutating one result leaves the other intact.
	first[0].Content = "clobbered"
	assert.NotEqual(t, first[0].Content, second[0].Content)
}

func TestPromptBuilder_EmptyWindow(t *testing.T) {
	b := assistant.NewPromptBuilder()
	messages := b.Build("Hello", nil)
	require.Len(t, messages, 2)
	assert.Equal(t, model.RoleSystem, messages[0].Role)
	assert.Equal(t, model.RoleUser, messages[1].Role)
}
