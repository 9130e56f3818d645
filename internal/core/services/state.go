package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
)

const (
	// StateTTL is how long an issued state token is accepted.
	StateTTL = 15 * time.Minute

	// stateClockSkew tolerates issuers whose clock runs slightly ahead.
	stateClockSkew = time.Minute

	stateNonceBytes = 16
)

// statePayload is the plaintext sealed inside a state token.
// Pointer fields let Verify tell a missing field from a zero value.
type statePayload struct {
	UserID    *string `json:"userId"`
	Timestamp *int64  `json:"timestamp"`
	Nonce     *string `json:"nonce"`
}

// StateTokensConfig holds dependencies for StateTokens.
type StateTokensConfig struct {
	Codec driven.SecretCodec

	// Consumed, when set, makes every token single-use.
	Consumed driven.ConsumedStateStore

	// TTL defaults to StateTTL.
	TTL time.Duration

	// Now defaults to time.Now.
	Now func() time.Time

	Logger *slog.Logger
}

// StateTokens issues and verifies the opaque OAuth state parameter.
// A token is a SecretCodec envelope of {userId, timestamp, nonce}.
type StateTokens struct {
	codec    driven.SecretCodec
	consumed driven.ConsumedStateStore
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewStateTokens creates a StateTokens.
func NewStateTokens(cfg StateTokensConfig) *StateTokens {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = StateTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &StateTokens{
		codec:    cfg.Codec,
		consumed: cfg.Consumed,
		ttl:      ttl,
		now:      now,
		logger:   logger,
	}
}

// TTL returns how long issued tokens stay valid.
func (s *StateTokens) TTL() time.Duration {
	return s.ttl
}

// Issue builds a state token bound to subjectID.
func (s *StateTokens) Issue(subjectID string) (string, error) {
	if subjectID == "" {
		return "", fmt.Errorf("%w: subject is required", domain.ErrInvalidInput)
	}

	nonce, err := randomHex(stateNonceBytes)
	if err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	ts := s.now().UnixMilli()

	plaintext, err := json.Marshal(statePayload{UserID: &subjectID, Timestamp: &ts, Nonce: &nonce})
	if err != nil {
		return "", fmt.Errorf("marshal state: %w", err)
	}

	token, err := s.codec.Encrypt(string(plaintext))
	if err != nil {
		return "", fmt.Errorf("encrypt state: %w", err)
	}
	return token, nil
}

// Verify opens a state token. It reports false for anything that is not a
// well-formed, unexpired token produced by Issue; callers reject the flow
// without distinguishing why.
func (s *StateTokens) Verify(ctx context.Context, token string) (*domain.StateClaims, bool) {
	if token == "" {
		return nil, false
	}

	plaintext, err := s.codec.Decrypt(token)
	if err != nil {
		s.logger.Debug("state token rejected", "reason", "decrypt", "error", err)
		return nil, false
	}

	var p statePayload
	if err := json.Unmarshal([]byte(plaintext), &p); err != nil {
		s.logger.Debug("state token rejected", "reason", "payload")
		return nil, false
	}
	if p.UserID == nil || *p.UserID == "" || p.Timestamp == nil || p.Nonce == nil || *p.Nonce == "" {
		s.logger.Debug("state token rejected", "reason", "missing field")
		return nil, false
	}

	issuedAt := time.UnixMilli(*p.Timestamp)
	age := s.now().Sub(issuedAt)
	if age > s.ttl || age < -stateClockSkew {
		s.logger.Debug("state token rejected", "reason", "expired", "age", age)
		return nil, false
	}

	if s.consumed != nil {
		fresh, err := s.consumed.Consume(ctx, *p.Nonce, issuedAt.Add(s.ttl))
		if err != nil {
			s.logger.Error("failed to record consumed state", "error", err)
			return nil, false
		}
		if !fresh {
			s.logger.Warn("state token replayed", "subject", s.codec.HashForLogging(*p.UserID))
			return nil, false
		}
	}

	return &domain.StateClaims{SubjectID: *p.UserID, IssuedAt: issuedAt}, true
}

// randomHex returns n random bytes hex-encoded.
func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
