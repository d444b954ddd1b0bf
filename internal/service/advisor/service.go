package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/deliciarte/pkg/clients/anthropic"
)

const (
	PricingFallback     = "Não foi possível obter conselhos de precificação no momento."
	SuggestionsFallback = "Não foi possível obter sugestões de receitas no momento."

	systemPrompt = "Você é um consultor de negócios especializado em confeitaria artesanal no Brasil. Responda em português."
)

// PricingRequest describes the recipe the owner wants pricing advice for.
type PricingRequest struct {
	UnitCost    float64  `json:"unit_cost"`
	Category    string   `json:"category"`
	Ingredients []string `json:"ingredients"`
}

// Service asks the language model for pricing advice and recipe ideas.
// It never fails: every error is logged and replaced by a fixed message.
type Service struct {
	client anthropic.Client
	logger *zap.Logger
}

// NewService returns an advisor. A nil client always yields the fallback texts.
func NewService(client anthropic.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// PricingAdvice suggests three price tiers for the recipe.
func (s *Service) PricingAdvice(ctx context.Context, req PricingRequest) string {
	prompt := fmt.Sprintf(
		"Como consultor de confeitaria, analise uma receita de %s com custo de produção de R$ %s.\n"+
			"Ingredientes: %s.\n"+
			"Sugira 3 faixas de preço de venda (Econômica, Gourmet e Premium) com justificativas baseadas no mercado brasileiro atual.\n"+
			"Retorne em formato amigável Markdown.",
		req.Category,
		decimal.NewFromFloat(req.UnitCost).StringFixed(2),
		strings.Join(req.Ingredients, ", "),
	)
	return s.complete(ctx, "pricing_advice", prompt, PricingFallback)
}

// RecipeSuggestions proposes profitable recipes for the ingredients in stock.
func (s *Service) RecipeSuggestions(ctx context.Context, ingredients []string) string {
	prompt := fmt.Sprintf(
		"Tenho estes ingredientes em estoque: %s.\n"+
			"Sugira 3 receitas lucrativas de confeitaria que eu possa fazer com eles.\n"+
			"Foque em baixo desperdício e alta margem.",
		strings.Join(ingredients, ", "),
	)
	return s.complete(ctx, "recipe_suggestions", prompt, SuggestionsFallback)
}

func (s *Service) complete(ctx context.Context, kind, prompt, fallback string) string {
	if s.client == nil {
		s.logger.Debug("advisor disabled, returning fallback", zap.String("kind", kind))
		return fallback
	}

	text, err := s.client.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		s.logger.Error("advisor request failed", zap.String("kind", kind), zap.Error(err))
		return fallback
	}
	if strings.TrimSpace(text) == "" {
		s.logger.Warn("advisor returned an empty answer", zap.String("kind", kind))
		return fallback
	}
	return text
}
