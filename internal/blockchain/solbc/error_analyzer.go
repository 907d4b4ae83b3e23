package solbc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

// ProgramError is an Anchor error reported by the lock program during
// preflight simulation.
type ProgramError struct {
	Number  int
	Code    string
	Message string
	Logs    []string
	Err     error
}

func (e *ProgramError) Error() string {
	return fmt.Sprintf("program error %d (%s): %s", e.Number, e.Code, e.Message)
}

func (e *ProgramError) Unwrap() error {
	return e.Err
}

// analyzeSendError extracts the Anchor error from a failed simulation, if any.
func analyzeSendError(err error) *ProgramError {
	var rpcErr *jsonrpc.RPCError
	if !errors.As(err, &rpcErr) {
		return nil
	}
	if !strings.Contains(rpcErr.Message, "Transaction simulation failed") {
		return nil
	}

	data, ok := rpcErr.Data.(map[string]interface{})
	if !ok {
		return nil
	}
	rawLogs, _ := data["logs"].([]interface{})

	logs := make([]string, 0, len(rawLogs))
	for _, l := range rawLogs {
		if s, ok := l.(string); ok {
			logs = append(logs, s)
		}
	}
	for _, line := range logs {
		if pe, ok := parseAnchorErrorLog(line); ok {
			pe.Logs = logs
			pe.Err = err
			return pe
		}
	}
	return nil
}

// parseAnchorErrorLog parses an Anchor error log line.
// Example: "Program log: AnchorError occurred. Error Code: InstructionFallbackNotFound. Error Number: 101. Error Message: Fallback functions are not supported."
func parseAnchorErrorLog(line string) (*ProgramError, bool) {
	if !strings.Contains(line, "AnchorError") {
		return nil, false
	}

	field := func(name string) string {
		_, rest, found := strings.Cut(line, name)
		if !found {
			return ""
		}
		value, _, _ := strings.Cut(rest, ".")
		return strings.TrimSpace(value)
	}

	pe := &ProgramError{Code: field("Error Code:")}
	pe.Number, _ = strconv.Atoi(field("Error Number:"))
	if _, msg, found := strings.Cut(line, "Error Message:"); found {
		pe.Message = strings.TrimSuffix(strings.TrimSpace(msg), ".")
	}
	return pe, true
}
