// Package upload issues short-lived credentials for direct browser uploads
// to the external image host. The server never proxies image bytes; it only
// signs the token the client presents to the host's upload endpoint.
package upload

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long an issued upload credential stays valid.
const DefaultTTL = 30 * time.Minute

// Signer holds the image host account keys. PrivateKey never leaves the
// server; the client receives only the derived signature.
type Signer struct {
	URLEndpoint string
	PublicKey   string
	privateKey  string

	now func() time.Time
}

func NewSigner(urlEndpoint, publicKey, privateKey string) *Signer {
	return &Signer{
		URLEndpoint: urlEndpoint,
		PublicKey:   publicKey,
		privateKey:  privateKey,
		now:         time.Now,
	}
}

// AuthParams is the credential triple the upload widget expects.
type AuthParams struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
}

// Sign mints a fresh single-use credential. The signature is an HMAC-SHA1
// of token+expire keyed with the private key, hex encoded, matching what
// the image host recomputes on its side.
func (s *Signer) Sign() AuthParams {
	token := uuid.NewString()
	expire := s.now().Add(DefaultTTL).Unix()

	mac := hmac.New(sha1.New, []byte(s.privateKey))
	fmt.Fprintf(mac, "%s%d", token, expire)

	return AuthParams{
		Token:     token,
		Expire:    expire,
		Signature: hex.EncodeToString(mac.Sum(nil)),
	}
}

// Configured reports whether the signer has a usable private key.
func (s *Signer) Configured() bool {
	return s.privateKey != ""
}
