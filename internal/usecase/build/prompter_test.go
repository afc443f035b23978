package build

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pcforge/builder-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubLLM returns a fixed answer, or an error, and records the prompts it saw.
type stubLLM struct {
	answer  string
	err     error
	prompts []string
}

func (s *stubLLM) Invoke(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func newSelectionContext(budget float64) *SelectionContext {
	return &SelectionContext{
		Input:    entity.UserInput{Budget: budget, Purpose: "Gaming"},
		Selected: make(map[entity.Category]*entity.ComponentRecord),
	}
}

func gpuCandidates() []entity.ComponentRecord {
	return []entity.ComponentRecord{
		record("rtx-4060", 520),
		record("rx-7700-xt", 610),
		record("rtx-4070", 840),
	}
}

func TestSelectComponentReturnsOriginalRecord(t *testing.T) {
	llm := &stubLLM{answer: `{"CARTE GRAPHIQUE": {"lien": "rx-7700-xt", "index": 1}}`}
	prompter := NewPrompter(llm, zap.NewNop())

	pick := prompter.SelectComponent(context.Background(), entity.CategoryGPU,
		gpuCandidates(), newSelectionContext(3000), entity.PriceRange{Min: 450, Max: 960})

	require.NotNil(t, pick)
	assert.Equal(t, "rx-7700-xt", pick.Lien)
	assert.Equal(t, 610.0, pick.Price)
}

func TestSelectComponentNormalizesSingleQuotes(t *testing.T) {
	llm := &stubLLM{answer: "  { 'CARTE GRAPHIQUE': { 'lien': 'rtx-4070', 'index': 2 } }  "}
	prompter := NewPrompter(llm, zap.NewNop())

	pick := prompter.SelectComponent(context.Background(), entity.CategoryGPU,
		gpuCandidates(), newSelectionContext(3000), entity.PriceRange{Min: 450, Max: 960})

	require.NotNil(t, pick)
	assert.Equal(t, "rtx-4070", pick.Lien)
}

func TestSelectComponentUnresolvedOnMalformedAnswer(t *testing.T) {
	llm := &stubLLM{answer: "I would recommend the RTX 4070, it's a great card."}
	prompter := NewPrompter(llm, zap.NewNop())

	pick := prompter.SelectComponent(context.Background(), entity.CategoryGPU,
		gpuCandidates(), newSelectionContext(3000), entity.PriceRange{Min: 450, Max: 960})

	assert.Nil(t, pick)
}

func TestSelectComponentUnresolvedOnOutOfRangeIndex(t *testing.T) {
	for _, idx := range []int{-1, 3, 99} {
		llm := &stubLLM{answer: fmt.Sprintf(`{"CARTE GRAPHIQUE": {"lien": "x", "index": %d}}`, idx)}
		prompter := NewPrompter(llm, zap.NewNop())

		pick := prompter.SelectComponent(context.Background(), entity.CategoryGPU,
			gpuCandidates(), newSelectionContext(3000), entity.PriceRange{Min: 450, Max: 960})

		assert.Nil(t, pick, "index %d must be unresolved", idx)
	}
}

func TestSelectComponentUnresolvedOnLLMError(t *testing.T) {
	llm := &stubLLM{err: errors.New("upstream unavailable")}
	prompter := NewPrompter(llm, zap.NewNop())

	pick := prompter.SelectComponent(context.Background(), entity.CategoryGPU,
		gpuCandidates(), newSelectionContext(3000), entity.PriceRange{Min: 450, Max: 960})

	assert.Nil(t, pick)
	assert.Len(t, llm.prompts, 1, "exactly one call, no retries")
}

func TestSelectComponentSkipsModelOnEmptyCandidates(t *testing.T) {
	llm := &stubLLM{answer: "{}"}
	prompter := NewPrompter(llm, zap.NewNop())

	pick := prompter.SelectComponent(context.Background(), entity.CategoryGPU,
		nil, newSelectionContext(3000), entity.PriceRange{Min: 450, Max: 960})

	assert.Nil(t, pick)
	assert.Empty(t, llm.prompts)
}

func TestSelectPairResolvesBothFromOneAnswer(t *testing.T) {
	cpus := []entity.ComponentRecord{record("ryzen-7-7800x3d", 480), record("i7-14700k", 510)}
	boards := []entity.ComponentRecord{record("b650-tomahawk", 250), record("z790-aorus", 310)}

	llm := &stubLLM{answer: `{"PROCESSEUR": {"lien": "ryzen-7-7800x3d", "index": 0}, "CARTE MÈRE": {"lien": "b650-tomahawk", "index": 0}}`}
	prompter := NewPrompter(llm, zap.NewNop())

	cpu, board := prompter.SelectPair(context.Background(),
		entity.CategoryCPU, entity.CategoryMotherboard,
		cpus, boards, newSelectionContext(3000),
		entity.PriceRange{Min: 455.1, Max: 962.7}, entity.PriceRange{Min: 240, Max: 450})

	require.NotNil(t, cpu)
	require.NotNil(t, board)
	assert.Equal(t, "ryzen-7-7800x3d", cpu.Lien)
	assert.Equal(t, "b650-tomahawk", board.Lien)
	assert.Len(t, llm.prompts, 1, "pair selection is a single prompt")
}

func TestSelectPairPartialAnswer(t *testing.T) {
	cpus := []entity.ComponentRecord{record("ryzen-5-7600", 230)}
	boards := []entity.ComponentRecord{record("b650m-pro", 140)}

	llm := &stubLLM{answer: `{"PROCESSEUR": {"lien": "ryzen-5-7600", "index": 0}}`}
	prompter := NewPrompter(llm, zap.NewNop())

	cpu, board := prompter.SelectPair(context.Background(),
		entity.CategoryCPU, entity.CategoryMotherboard,
		cpus, boards, newSelectionContext(1500),
		entity.PriceRange{Min: 227.55, Max: 481.35}, entity.PriceRange{Min: 120, Max: 225})

	require.NotNil(t, cpu)
	assert.Nil(t, board)
}

func TestPromptCarriesContextAndFormat(t *testing.T) {
	llm := &stubLLM{answer: "{}"}
	prompter := NewPrompter(llm, zap.NewNop())

	sctx := newSelectionContext(3000)
	sctx.Selected[entity.CategoryCPU] = &entity.ComponentRecord{Lien: "ryzen-7-7800x3d", Price: 480}
	sctx.Remaining = []entity.Category{entity.CategoryRAM, entity.CategoryStorage}

	prompter.SelectComponent(context.Background(), entity.CategoryGPU,
		gpuCandidates(), sctx, entity.PriceRange{Min: 450, Max: 960})

	require.Len(t, llm.prompts, 1)
	prompt := llm.prompts[0]

	assert.Contains(t, prompt, `"budget":3000`)
	assert.Contains(t, prompt, "ryzen-7-7800x3d")
	assert.Contains(t, prompt, "BARETTE MÉMOIRE")
	assert.Contains(t, prompt, "'CARTE GRAPHIQUE': { 'lien': string, 'index': number }")
	assert.True(t, strings.Contains(prompt, "rtx-4060"))
}
