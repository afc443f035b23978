package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMockAnswersSelectionPrompts(t *testing.T) {
	mock := NewMockClient(zap.NewNop())

	prompt := "pick components\n" +
		"RESPONSE FORMAT (JSON object, exactly this shape):\n" +
		"{ 'PROCESSEUR': { 'lien': string, 'index': number }, 'CARTE MÈRE': { 'lien': string, 'index': number } }"

	answer, err := mock.Invoke(context.Background(), prompt)

	require.NoError(t, err)
	assert.Contains(t, answer, "'PROCESSEUR': { 'lien': '', 'index': 0 }")
	assert.Contains(t, answer, "'CARTE MÈRE': { 'lien': '', 'index': 0 }")
	assert.False(t, strings.Contains(answer, "BOITIER"))
}

func TestMockAnswersChatPrompts(t *testing.T) {
	mock := NewMockClient(zap.NewNop())

	answer, err := mock.Invoke(context.Background(), "You are ForgeBot.\nConversation:\nLina: hi\nForgeBot:")

	require.NoError(t, err)
	assert.NotEmpty(t, answer)
	assert.False(t, strings.HasPrefix(answer, "{"))
}
