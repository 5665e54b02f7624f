// Package imagekit produces the authentication parameters the browser
// needs for direct uploads to ImageKit.
package imagekit

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// AuthParams is handed to the ImageKit client SDK to authorize a
// single upload.
type AuthParams struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
}

type Signer struct {
	privateKey string
	ttl        time.Duration
}

func NewSigner(privateKey string) *Signer {
	return &Signer{privateKey: privateKey, ttl: 30 * time.Minute}
}

// AuthenticationParameters returns a one-time token, its expiry as a
// unix timestamp, and the hex HMAC-SHA1 of token+expire keyed with the
// account private key.
func (s *Signer) AuthenticationParameters() AuthParams {
	token := uuid.NewString()
	expire := time.Now().Add(s.ttl).Unix()

	mac := hmac.New(sha1.New, []byte(s.privateKey))
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))

	return AuthParams{
		Token:     token,
		Expire:    expire,
		Signature: hex.EncodeToString(mac.Sum(nil)),
	}
}
