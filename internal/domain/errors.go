package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for domain operations
var (
	// ErrBlueprintNotFound is returned when no compiled artifact matches a blueprint name
	ErrBlueprintNotFound = errors.New("blueprint not found")

	// ErrAmbiguousBlueprint is returned when a bare name matches several sources
	ErrAmbiguousBlueprint = errors.New("ambiguous blueprint")

	// ErrEmptyBlueprintName is returned when the blueprint name is blank
	ErrEmptyBlueprintName = errors.New("blueprint name is empty")

	// ErrUnlinkedBytecode is returned when creation bytecode still has library placeholders
	ErrUnlinkedBytecode = errors.New("bytecode has unlinked library references")

	// ErrConstructorArgsUnsupported is returned for blueprints whose constructor takes arguments
	ErrConstructorArgsUnsupported = errors.New("constructor arguments are not supported")

	// ErrNetworkUnavailable is returned when the RPC endpoint cannot be reached
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrNetworkMismatch is returned when the endpoint reports an unexpected chain ID
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrTransactionReverted is returned when the deployment is rejected or reverted on-chain
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrMissingSigner is returned when no private key is configured
	ErrMissingSigner = errors.New("no signer configured")

	// ErrInvalidSigner is returned when the configured private key cannot be parsed
	ErrInvalidSigner = errors.New("invalid signer key")
)

type BlueprintNotFoundError struct {
	Name        string
	Suggestions []string
}

func (e BlueprintNotFoundError) Error() string {
	msg := fmt.Sprintf("no compiled artifact found for blueprint %q", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e BlueprintNotFoundError) Is(target error) bool {
	return target == ErrBlueprintNotFound
}

type AmbiguousBlueprintError struct {
	Name    string
	Matches []string // fully qualified names
}

func (e AmbiguousBlueprintError) Error() string {
	sorted := make([]string, len(e.Matches))
	copy(sorted, e.Matches)
	sort.Strings(sorted)

	var suggestions []string
	for _, match := range sorted {
		suggestions = append(suggestions, fmt.Sprintf("  - %s", match))
	}

	return fmt.Sprintf("multiple blueprints found matching %q - use path:Name format to disambiguate:\n%s",
		e.Name, strings.Join(suggestions, "\n"))
}

func (e AmbiguousBlueprintError) Is(target error) bool {
	return target == ErrAmbiguousBlueprint
}

// NetworkUnavailableError wraps a transport failure talking to the RPC endpoint
type NetworkUnavailableError struct {
	RPCURL string
	Err    error
}

func (e NetworkUnavailableError) Error() string {
	return fmt.Sprintf("network unavailable at %s: %v", e.RPCURL, e.Err)
}

func (e NetworkUnavailableError) Unwrap() error {
	return e.Err
}

func (e NetworkUnavailableError) Is(target error) bool {
	return target == ErrNetworkUnavailable
}

// TransactionRevertedError reports a deployment that was rejected during
// estimation (zero TxHash) or mined with a failed status.
type TransactionRevertedError struct {
	TxHash      common.Hash
	BlockNumber uint64
	Reason      string
}

func (e TransactionRevertedError) Error() string {
	if e.TxHash == (common.Hash{}) {
		if e.Reason != "" {
			return fmt.Sprintf("deployment rejected: %s", e.Reason)
		}
		return "deployment rejected"
	}
	msg := fmt.Sprintf("deployment transaction %s reverted in block %d", e.TxHash.Hex(), e.BlockNumber)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e TransactionRevertedError) Is(target error) bool {
	return target == ErrTransactionReverted
}
