package models

import "strings"

// CommandType enumerates the owner commands accepted over WhatsApp.
type CommandType string

const (
	CommandReport      CommandType = "relatorio"
	CommandOrders      CommandType = "pedidos"
	CommandStock       CommandType = "estoque"
	CommandBreakEven   CommandType = "equilibrio"
	CommandSuggestions CommandType = "sugestoes"
	CommandUnknown     CommandType = "unknown"
)

var commandAliases = map[string]CommandType{
	"relatorio":  CommandReport,
	"report":     CommandReport,
	"pedidos":    CommandOrders,
	"orders":     CommandOrders,
	"estoque":    CommandStock,
	"stock":      CommandStock,
	"equilibrio": CommandBreakEven,
	"breakeven":  CommandBreakEven,
	"sugestoes":  CommandSuggestions,
	"suggest":    CommandSuggestions,
}

// Command represents a parsed owner instruction extracted from WhatsApp text.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command instance from free-form text messages.
func ParseCommand(message string) Command {
	normalized := strings.TrimSpace(strings.ToLower(message))
	cmd := Command{Type: CommandUnknown, Raw: message}

	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return cmd
	}

	if commandType, ok := commandAliases[strings.TrimPrefix(tokens[0], "/")]; ok {
		cmd.Type = commandType
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}
