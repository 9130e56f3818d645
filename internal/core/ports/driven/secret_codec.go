package driven

// SecretCodec encrypts short secrets for storage and digests identifiers for logs.
type SecretCodec interface {
	// Encrypt seals plaintext into an "iv:tag:ciphertext" envelope.
	// Each call uses a fresh IV, so equal inputs give different envelopes.
	Encrypt(plaintext string) (string, error)

	// Decrypt opens an envelope produced by Encrypt.
	// Returns domain.ErrMalformedInput for a bad shape and
	// domain.ErrAuthentication when the tag does not verify.
	Decrypt(envelope string) (string, error)

	// HashForLogging returns a short one-way digest that is safe to log.
	HashForLogging(value string) string
}
