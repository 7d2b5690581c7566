package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Headers carried by every signed delivery.
const (
	HeaderID        = "svix-id"
	HeaderTimestamp = "svix-timestamp"
	HeaderSignature = "svix-signature"
)

const secretPrefix = "whsec_"

// Deliveries older or newer than this are rejected to limit replay.
const timestampTolerance = 5 * time.Minute

// VerificationError is returned for any signature or payload failure. The
// caller responds 400 and applies nothing.
type VerificationError struct {
	Reason string
	Err    error
}

func (e *VerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("webhook verification failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("webhook verification failed: %s", e.Reason)
}

func (e *VerificationError) Unwrap() error { return e.Err }

// Verifier checks delivery signatures with the shared endpoint secret and
// decodes the payload into a typed event.
type Verifier struct {
	key []byte
	now func() time.Time
}

// NewVerifier builds a Verifier from the endpoint secret. The secret is
// base64, optionally carrying the provider's "whsec_" prefix.
func NewVerifier(secret string) (*Verifier, error) {
	raw := strings.TrimPrefix(secret, secretPrefix)
	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook secret: %w", err)
	}
	return &Verifier{key: key, now: time.Now}, nil
}

// Verify checks the signature headers against the raw body and returns the
// decoded event. Any failure yields a *VerificationError.
func (v *Verifier) Verify(payload []byte, headers map[string]string) (Event, error) {
	msgID := headers[HeaderID]
	timestamp := headers[HeaderTimestamp]
	signatures := headers[HeaderSignature]
	if msgID == "" || timestamp == "" || signatures == "" {
		return nil, &VerificationError{Reason: "missing signature headers"}
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return nil, &VerificationError{Reason: "invalid timestamp", Err: err}
	}
	age := v.now().Sub(time.Unix(ts, 0))
	if age > timestampTolerance || age < -timestampTolerance {
		return nil, &VerificationError{Reason: "timestamp outside tolerance"}
	}

	expected := v.sign(msgID, timestamp, payload)

	// The header may carry several space-delimited versioned signatures;
	// any matching v1 entry passes.
	for _, candidate := range strings.Split(signatures, " ") {
		parts := strings.SplitN(candidate, ",", 2)
		if len(parts) != 2 || parts[0] != "v1" {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(expected)) == 1 {
			return decodeEvent(payload)
		}
	}

	return nil, &VerificationError{Reason: "no matching signature"}
}

// sign computes the v1 signature over "{id}.{timestamp}.{body}".
func (v *Verifier) sign(msgID, timestamp string, payload []byte) string {
	mac := hmac.New(sha256.New, v.key)
	fmt.Fprintf(mac, "%s.%s.", msgID, timestamp)
	mac.Write(payload)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
