package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/deliciarte/internal/domain/models"
	"github.com/mamadbah2/deliciarte/internal/service/reporting"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates we do not support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

const (
	defaultOrderWindowDays = 7
	maxOrderWindowDays     = 60
)

// HelpText lists the commands the owner can send.
const HelpText = "Comandos disponíveis:\n" +
	"/relatorio - resumo de vendas e lucro\n" +
	"/pedidos [dias] - entregas dos próximos dias (padrão 7)\n" +
	"/estoque - ingredientes com estoque baixo\n" +
	"/equilibrio - ponto de equilíbrio do mês\n" +
	"/sugestoes - ideias de receitas com o estoque atual"

// ReportingAdapter defines the reporting functions required by the dispatcher.
type ReportingAdapter interface {
	WeeklySummary(ctx context.Context) (string, error)
	Dashboard(ctx context.Context) (reporting.Dashboard, error)
	Money(value float64) string
}

// OrdersAdapter lists the deliveries ahead.
type OrdersAdapter interface {
	Upcoming(ctx context.Context, days int) ([]models.Order, error)
}

// InventoryAdapter exposes the stock queries used by the commands.
type InventoryAdapter interface {
	LowStock(ctx context.Context) ([]models.Ingredient, error)
	Names(ctx context.Context) ([]string, error)
}

// AdvisorAdapter produces recipe ideas.
type AdvisorAdapter interface {
	RecipeSuggestions(ctx context.Context, ingredients []string) string
}

// Dispatcher executes parsed owner commands and returns the reply text.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	reporting ReportingAdapter
	orders    OrdersAdapter
	inventory InventoryAdapter
	advisor   AdvisorAdapter
	logger    *zap.Logger
}

// NewService constructs a command dispatcher.
func NewService(reportingSvc ReportingAdapter, ordersSvc OrdersAdapter, inventorySvc InventoryAdapter, advisorSvc AdvisorAdapter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		reporting: reportingSvc,
		orders:    ordersSvc,
		inventory: inventorySvc,
		advisor:   advisorSvc,
		logger:    logger,
	}
}

// HandleCommand runs the command and formats its answer.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandReport:
		return s.reporting.WeeklySummary(ctx)
	case models.CommandOrders:
		days, err := orderWindow(cmd.Args)
		if err != nil {
			return "", err
		}
		return s.upcomingOrders(ctx, days)
	case models.CommandStock:
		return s.lowStock(ctx)
	case models.CommandBreakEven:
		return s.breakEven(ctx)
	case models.CommandSuggestions:
		names, err := s.inventory.Names(ctx)
		if err != nil {
			return "", err
		}
		if len(names) == 0 {
			return "Nenhum ingrediente cadastrado no estoque.", nil
		}
		return s.advisor.RecipeSuggestions(ctx, names), nil
	default:
		return "", ErrUnsupportedCommand
	}
}

func (s *Service) upcomingOrders(ctx context.Context, days int) (string, error) {
	upcoming, err := s.orders.Upcoming(ctx, days)
	if err != nil {
		return "", err
	}
	if len(upcoming) == 0 {
		return fmt.Sprintf("Nenhuma entrega nos próximos %d dia(s).", days), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 Entregas nos próximos %d dia(s):\n", days)
	for _, order := range upcoming {
		when := order.DeliveryDate
		if order.DeliveryTime != "" {
			when += " " + order.DeliveryTime
		}
		fmt.Fprintf(&b, "- %s: %s x%s para %s (%s) %s\n",
			when, order.Product, strconv.FormatFloat(order.Quantity, 'f', -1, 64),
			order.Customer, order.Status, s.reporting.Money(order.TotalValue))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (s *Service) lowStock(ctx context.Context) (string, error) {
	low, err := s.inventory.LowStock(ctx)
	if err != nil {
		return "", err
	}
	if len(low) == 0 {
		return "✅ Nenhum ingrediente abaixo do estoque mínimo.", nil
	}

	var b strings.Builder
	b.WriteString("⚠️ Estoque baixo:\n")
	for _, ingredient := range low {
		fmt.Fprintf(&b, "- %s: %s %s (mínimo %s)\n",
			ingredient.Name,
			strconv.FormatFloat(ingredient.QuantityOnHand, 'f', -1, 64),
			ingredient.Unit,
			strconv.FormatFloat(ingredient.MinimumStock, 'f', -1, 64))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (s *Service) breakEven(ctx context.Context) (string, error) {
	dashboard, err := s.reporting.Dashboard(ctx)
	if err != nil {
		return "", err
	}
	if !dashboard.BreakEven.Defined {
		return "Ponto de equilíbrio indefinido: a margem de contribuição média não é positiva.", nil
	}

	return fmt.Sprintf("⚖️ Ponto de equilíbrio: %s por mês.\nFaturamento atual: %s (%.0f%% atingido).\nCustos fixos mensais: %s. Margem média: %.1f%%.",
		s.reporting.Money(dashboard.BreakEven.Revenue),
		s.reporting.Money(dashboard.Revenue),
		dashboard.AchievementRatio*100,
		s.reporting.Money(dashboard.TotalFixedMonthly),
		dashboard.AverageMarginPercent,
	), nil
}

func orderWindow(args []string) (int, error) {
	if len(args) == 0 {
		return defaultOrderWindowDays, nil
	}
	switch args[0] {
	case "hoje", "today":
		return 1, nil
	case "amanha", "amanhã", "tomorrow":
		return 2, nil
	}

	days, err := strconv.Atoi(args[0])
	if err != nil || days <= 0 || days > maxOrderWindowDays {
		return 0, ErrInvalidArguments
	}
	return days, nil
}
