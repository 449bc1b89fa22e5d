// Package command parses inbound chat lines into structured commands.
package command

import (
	"strings"

	"exchange-chat-service/internal/domain/model"
)

const (
	keyword = "exchange"

	minDays = 1
	maxDays = 10
)

// Command is the sealed set of inbound line classifications.
type Command interface{ command() }

type AddCurrency struct {
	Code model.Currency
}

func (AddCurrency) command() {}

type RemoveCurrency struct {
	Code model.Currency
}

func (RemoveCurrency) command() {}

type ShowExchange struct {
	Days int
}

func (ShowExchange) command() {}

type Chat struct {
	Text string
}

func (Chat) command() {}

// Parse classifies one inbound line. Lines not starting with the exchange
// keyword are chat, verbatim. Parse never fails: malformed arguments fall
// back to ShowExchange with the default window.
func Parse(line string) Command {
	if !strings.HasPrefix(line, keyword) {
		return Chat{Text: line}
	}

	args := strings.Fields(line)
	if len(args) > 2 {
		switch strings.ToLower(args[1]) {
		case "add":
			return AddCurrency{Code: model.Currency(strings.ToUpper(args[2]))}
		case "remove":
			return RemoveCurrency{Code: model.Currency(strings.ToUpper(args[2]))}
		}
	}

	days := minDays
	if len(args) > 1 && isNumeric(args[1]) {
		days = clampDays(atoi(args[1]))
	}
	return ShowExchange{Days: days}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// atoi converts an already digit-checked token. Overflow is irrelevant here
// because the result is clamped immediately.
func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
		if n > maxDays {
			return maxDays
		}
	}
	return n
}

func clampDays(n int) int {
	if n < minDays {
		return minDays
	}
	if n > maxDays {
		return maxDays
	}
	return n
}
