package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
)

// Ensure Codec implements SecretCodec
var _ driven.SecretCodec = (*Codec)(nil)

const (
	// ivSize is the per-envelope IV length. AES-GCM accepts non-standard
	// nonce sizes; 16 bytes keeps envelopes compatible with stored data.
	ivSize = 16

	// tagSize is the GCM authentication tag length
	tagSize = 16

	// keySize is the derived key length for AES-256
	keySize = 32

	// hashLength is the number of hex characters HashForLogging keeps
	hashLength = 12

	envelopeSeparator = ":"
)

// keyInfo binds derived keys to this use so the same secret cannot yield
// the same key elsewhere.
var keyInfo = []byte("job-dashboard/integration-secrets/v1")

// Codec seals secrets with AES-256-GCM.
// The envelope format is: base64(iv) ":" base64(tag) ":" base64(ciphertext)
type Codec struct {
	gcm cipher.AEAD
}

// NewCodec derives the AES key from secret with HKDF-SHA256.
// An empty secret is a configuration error; there is no plaintext fallback.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: encryption secret is not set", domain.ErrConfiguration)
	}

	key := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, keyInfo), key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, ivSize)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return &Codec{gcm: gcm}, nil
}

// Encrypt seals plaintext under a fresh random IV.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	// Seal appends the tag to the ciphertext
	sealed := c.gcm.Seal(nil, iv, []byte(plaintext), nil)
	ciphertext := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]

	return strings.Join([]string{
		base64.StdEncoding.EncodeToString(iv),
		base64.StdEncoding.EncodeToString(tag),
		base64.StdEncoding.EncodeToString(ciphertext),
	}, envelopeSeparator), nil
}

// Decrypt opens an envelope. It never returns partial plaintext.
func (c *Codec) Decrypt(envelope string) (string, error) {
	parts := strings.Split(envelope, envelopeSeparator)
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: envelope has %d parts, want 3", domain.ErrMalformedInput, len(parts))
	}

	iv, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil || len(iv) != ivSize {
		return "", fmt.Errorf("%w: bad iv", domain.ErrMalformedInput)
	}
	tag, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil || len(tag) != tagSize {
		return "", fmt.Errorf("%w: bad auth tag", domain.ErrMalformedInput)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return "", fmt.Errorf("%w: bad ciphertext", domain.ErrMalformedInput)
	}

	sealed := make([]byte, 0, len(ciphertext)+tagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := c.gcm.Open(nil, iv, sealed, nil)
	if err != nil {
		return "", domain.ErrAuthentication
	}
	return string(plaintext), nil
}

// HashForLogging returns a short SHA-256 digest of value.
func (c *Codec) HashForLogging(value string) string {
	return HashForLogging(value)
}

// HashForLogging returns the first 12 hex characters of SHA-256(value).
// It needs no key, so it is usable where no Codec is configured.
func HashForLogging(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])[:hashLength]
}
