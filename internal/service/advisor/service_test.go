package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	reply  string
	err    error
	prompt string
}

func (s *stubClient) Complete(_ context.Context, _, prompt string) (string, error) {
	s.prompt = prompt
	return s.reply, s.err
}

func TestPricingAdvice_PromptAndReply(t *testing.T) {
	client := &stubClient{reply: "## Econômica\nR$ 8,00"}
	svc := NewService(client, nil)

	got := svc.PricingAdvice(context.Background(), PricingRequest{
		UnitCost:    4.5,
		Category:    "Doces",
		Ingredients: []string{"Chocolate", "Leite condensado"},
	})

	assert.Equal(t, "## Econômica\nR$ 8,00", got)
	require.NotEmpty(t, client.prompt)
	assert.Contains(t, client.prompt, "receita de Doces")
	assert.Contains(t, client.prompt, "R$ 4.50")
	assert.Contains(t, client.prompt, "Chocolate, Leite condensado")
}

func TestFallbacks(t *testing.T) {
	ctx := context.Background()

	failing := NewService(&stubClient{err: errors.New("boom")}, nil)
	assert.Equal(t, PricingFallback, failing.PricingAdvice(ctx, PricingRequest{}))
	assert.Equal(t, SuggestionsFallback, failing.RecipeSuggestions(ctx, []string{"Ovos"}))

	empty := NewService(&stubClient{reply: "  "}, nil)
	assert.Equal(t, SuggestionsFallback, empty.RecipeSuggestions(ctx, nil))

	disabled := NewService(nil, nil)
	assert.Equal(t, PricingFallback, disabled.PricingAdvice(ctx, PricingRequest{}))
}

func TestRecipeSuggestions_ListsIngredients(t *testing.T) {
	client := &stubClient{reply: "Brigadeiro gourmet"}
	got := NewService(client, nil).RecipeSuggestions(context.Background(), []string{"Cacau", "Manteiga"})

	assert.Equal(t, "Brigadeiro gourmet", got)
	assert.Contains(t, client.prompt, "Cacau, Manteiga")
}
