package api

import (
	"github.com/MJE43/pf-crosscheck/internal/games"
	"github.com/MJE43/pf-crosscheck/internal/kernel"
)

// EngineError represents a structured error response with context
type EngineError struct {
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Timestamp string         `json:"timestamp,omitempty"`
}

// Error implements the error interface
func (e EngineError) Error() string {
	return e.Message
}

// Error types
const (
	ErrTypeMalformedInput  = string(kernel.KindMalformedInput)
	ErrTypeInvalidArgument = string(kernel.KindInvalidArgument)
	ErrTypeEmptyDeck       = string(kernel.KindEmptyDeck)
	ErrTypeBodyTooLarge    = "body_too_large"
	ErrTypeNotFound        = "not_found"
	ErrTypeTimeout         = "timeout"
	ErrTypeInternal        = string(kernel.KindInternal)
)

// ErrorCategory groups error types for monitoring
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryKernel     ErrorCategory = "kernel"
	CategorySystem     ErrorCategory = "system"
	CategoryTimeout    ErrorCategory = "timeout"
)

// GetErrorCategory returns the category for an error type
func GetErrorCategory(errType string) ErrorCategory {
	switch errType {
	case ErrTypeMalformedInput, ErrTypeInvalidArgument, ErrTypeBodyTooLarge, ErrTypeNotFound:
		return CategoryValidation
	case ErrTypeEmptyDeck:
		return CategoryKernel
	case ErrTypeTimeout:
		return CategoryTimeout
	default:
		return CategorySystem
	}
}

// VersionInfo contains engine version information
type VersionInfo struct {
	EngineVersion string `json:"engine_version"`
	GitCommit     string `json:"git_commit,omitempty"`
	BuildTime     string `json:"build_time,omitempty"`
}

// Seeds selects the provably-fair stream for deal and spin requests.
type Seeds struct {
	Server string `json:"server"`
	Client string `json:"client"`
}

// FairRequest is the optional body of deal and spin requests. An empty body or
// empty server seed uses the process RNG.
type FairRequest struct {
	Seeds Seeds  `json:"seeds"`
	Nonce uint64 `json:"nonce"`
}

// KernelsResponse lists the available kernels.
type KernelsResponse struct {
	Kernels       []kernel.Spec `json:"kernels"`
	EngineVersion string        `json:"engine_version"`
}

// SeedHashRequest asks for the published hash of a server seed.
type SeedHashRequest struct {
	ServerSeed string `json:"server_seed"`
}

// SeedHashResponse echoes the request with its hash.
type SeedHashResponse struct {
	Hash          string          `json:"hash"`
	Echo          SeedHashRequest `json:"echo"`
	EngineVersion string          `json:"engine_version"`
}

// BetRequest settles a bet against a spin result supplied by the caller.
type BetRequest struct {
	Bet         games.RouletteBet `json:"bet"`
	Result      games.SpinResult  `json:"result"`
	AmountMinor int64             `json:"amountMinor"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
	EngineVersion string `json:"engine_version"`
	GitCommit     string `json:"git_commit,omitempty"`
	Uptime        string `json:"uptime"`
	Kernels       int    `json:"kernels"`
	RequestID     string `json:"request_id,omitempty"`
}
