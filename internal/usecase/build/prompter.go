package build

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pcforge/builder-backend/internal/entity"
	"go.uber.org/zap"
)

const promptPreamble = "You are a PC hardware expert assembling a build under a fixed budget. " +
	"Pick exactly one component per requested category, compatible with the components already selected. " +
	"Answer with JSON only, no explanation."

// SelectionContext carries everything the prompt needs to describe the build
// so far: the original request, the resolved selections, and the categories
// still ahead.
type SelectionContext struct {
	Input     entity.UserInput
	Selected  map[entity.Category]*entity.ComponentRecord
	Remaining []entity.Category
}

// candidateView is the reduced candidate shape embedded in prompts. Index is
// positional in the original candidate slice.
type candidateView struct {
	Index int     `json:"index"`
	Lien  string  `json:"lien"`
	Price float64 `json:"price"`
}

// selectionChoice is one category's answer in the model response.
type selectionChoice struct {
	Lien  string `json:"lien"`
	Index *int   `json:"index"`
}

// promptSection is one requested category inside a prompt.
type promptSection struct {
	category   entity.Category
	candidates []entity.ComponentRecord
	priceRange entity.PriceRange
}

// Prompter turns candidate lists into component selections via the completion
// model. Every failure mode collapses to an unresolved selection (nil): a bad
// model answer must never fail the whole build, and a selection is never
// invented for the model.
type Prompter struct {
	llm    LLMClient
	logger *zap.Logger
}

func NewPrompter(llm LLMClient, logger *zap.Logger) *Prompter {
	return &Prompter{
		llm:    llm,
		logger: logger,
	}
}

// SelectComponent asks the model to pick one candidate for the category.
// Returns nil when the category cannot be resolved. The LLM call is not
// retried.
func (p *Prompter) SelectComponent(
	ctx context.Context,
	category entity.Category,
	candidates []entity.ComponentRecord,
	sctx *SelectionContext,
	priceRange entity.PriceRange,
) *entity.ComponentRecord {
	if len(candidates) == 0 {
		ctxzap.Info(ctx, "no candidates, category unresolved", zap.String("category", string(category)))
		return nil
	}

	choices := p.askModel(ctx, sctx, []promptSection{
		{category: category, candidates: candidates, priceRange: priceRange},
	})

	return pickCandidate(ctx, choices, category, candidates)
}

// SelectPair asks the model to pick two categories in one prompt. The CPU and
// motherboard are chosen jointly so socket compatibility is decided in a
// single answer. Either slot may come back unresolved independently.
func (p *Prompter) SelectPair(
	ctx context.Context,
	catA, catB entity.Category,
	candsA, candsB []entity.ComponentRecord,
	sctx *SelectionContext,
	rangeA, rangeB entity.PriceRange,
) (*entity.ComponentRecord, *entity.ComponentRecord) {
	if len(candsA) == 0 && len(candsB) == 0 {
		ctxzap.Info(ctx, "no candidates for either paired category",
			zap.String("category_a", string(catA)),
			zap.String("category_b", string(catB)),
		)
		return nil, nil
	}

	choices := p.askModel(ctx, sctx, []promptSection{
		{category: catA, candidates: candsA, priceRange: rangeA},
		{category: catB, candidates: candsB, priceRange: rangeB},
	})

	return pickCandidate(ctx, choices, catA, candsA), pickCandidate(ctx, choices, catB, candsB)
}

// askModel builds the prompt, invokes the model once and parses the answer.
// Any failure returns nil choices.
func (p *Prompter) askModel(
	ctx context.Context,
	sctx *SelectionContext,
	sections []promptSection,
) map[string]selectionChoice {
	prompt := buildPrompt(sctx, sections)

	raw, err := p.llm.Invoke(ctx, prompt)
	if err != nil {
		ctxzap.Warn(ctx, "completion call failed, selection unresolved", zap.Error(err))
		return nil
	}

	choices, err := parseSelections(raw)
	if err != nil {
		ctxzap.Warn(ctx, "unparseable model answer, selection unresolved",
			zap.Error(err),
			zap.String("raw", truncate(raw, 300)),
		)
		return nil
	}

	return choices
}

func buildPrompt(sctx *SelectionContext, sections []promptSection) string {
	var b strings.Builder

	b.WriteString(promptPreamble)
	b.WriteString("\n\nUSERINPUT:\n")
	b.WriteString(mustJSON(sctx.Input))

	b.WriteString("\n\nSELECTED COMPONENTS:\n")
	if len(sctx.Selected) == 0 {
		b.WriteString("none yet")
	} else {
		selected := make(map[string]candidateView, len(sctx.Selected))
		for cat, record := range sctx.Selected {
			if record == nil {
				continue
			}
			selected[cat.CatalogLabel()] = candidateView{Lien: record.Lien, Price: record.Price}
		}
		b.WriteString(mustJSON(selected))
	}

	if len(sctx.Remaining) > 0 {
		labels := make([]string, 0, len(sctx.Remaining))
		for _, cat := range sctx.Remaining {
			labels = append(labels, cat.CatalogLabel())
		}
		b.WriteString("\n\nCONTEXT: still to be selected after this step: ")
		b.WriteString(strings.Join(labels, ", "))
		b.WriteString(". Leave budget room for them.")
	}

	formatParts := make([]string, 0, len(sections))
	for _, section := range sections {
		views := make([]candidateView, len(section.candidates))
		for i, candidate := range section.candidates {
			views[i] = candidateView{Index: i, Lien: candidate.Lien, Price: candidate.Price}
		}

		fmt.Fprintf(&b, "\n\nCANDIDATES %s (price range %s):\n%s",
			section.category.CatalogLabel(),
			mustJSON(section.priceRange),
			mustJSON(views),
		)

		formatParts = append(formatParts,
			fmt.Sprintf("'%s': { 'lien': string, 'index': number }", section.category.CatalogLabel()))
	}

	fmt.Fprintf(&b, "\n\nRESPONSE FORMAT (JSON object, exactly this shape):\n{ %s }\n",
		strings.Join(formatParts, ", "))

	return b.String()
}

// parseSelections normalizes and decodes a model answer. Models routinely
// come back with single-quoted pseudo-JSON; swapping quote characters before
// decoding is a best-effort normalization that breaks on answers containing
// literal apostrophes, in which case the whole answer is discarded.
func parseSelections(raw string) (map[string]selectionChoice, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), "'", `"`)

	var choices map[string]selectionChoice
	if err := json.Unmarshal([]byte(normalized), &choices); err != nil {
		return nil, fmt.Errorf("decode selection answer: %w", err)
	}

	return choices, nil
}

// pickCandidate resolves one category from the parsed choices by indexing
// into the original candidate slice. Missing label, missing index or an
// out-of-range index all mean unresolved.
func pickCandidate(
	ctx context.Context,
	choices map[string]selectionChoice,
	category entity.Category,
	candidates []entity.ComponentRecord,
) *entity.ComponentRecord {
	if len(candidates) == 0 || choices == nil {
		return nil
	}

	choice, ok := choices[category.CatalogLabel()]
	if !ok || choice.Index == nil {
		ctxzap.Warn(ctx, "model answer has no usable choice for category",
			zap.String("category", string(category)))
		return nil
	}

	idx := *choice.Index
	if idx < 0 || idx >= len(candidates) {
		ctxzap.Warn(ctx, "model answer index out of range",
			zap.String("category", string(category)),
			zap.Int("index", idx),
			zap.Int("candidates", len(candidates)),
		)
		return nil
	}

	record := candidates[idx]
	return &record
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
