// Package oauth1 computes OAuth 1.0a user-context Authorization headers
// signed with HMAC-SHA256. It performs no I/O.
package oauth1

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	SignatureMethod = "HMAC-SHA256"
	Version         = "1.0"

	paramConsumerKey     = "oauth_consumer_key"
	paramToken           = "oauth_token"
	paramSignatureMethod = "oauth_signature_method"
	paramTimestamp       = "oauth_timestamp"
	paramNonce           = "oauth_nonce"
	paramVersion         = "oauth_version"
	paramSignature       = "oauth_signature"
)

// headerOrder is the order fields are rendered in the Authorization header.
var headerOrder = []string{
	paramConsumerKey,
	paramToken,
	paramSignatureMethod,
	paramTimestamp,
	paramNonce,
	paramVersion,
	paramSignature,
}

// Credentials are the four OAuth 1.0a user-context secrets.
type Credentials struct {
	ConsumerKey    string `yaml:"consumerKey" validate:"required"`
	ConsumerSecret string `yaml:"consumerSecret" validate:"required"`
	AccessToken    string `yaml:"accessToken" validate:"required"`
	AccessSecret   string `yaml:"accessSecret" validate:"required"`
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "[redacted]"
}

// String never prints secret material.
func (c Credentials) String() string {
	return "oauth1.Credentials{ConsumerKey:" + redact(c.ConsumerKey) +
		" ConsumerSecret:" + redact(c.ConsumerSecret) +
		" AccessToken:" + redact(c.AccessToken) +
		" AccessSecret:" + redact(c.AccessSecret) + "}"
}

// LogValue implements slog.LogValuer so credentials are never written to logs.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("consumer_key_set", c.ConsumerKey != ""),
		slog.Bool("consumer_secret_set", c.ConsumerSecret != ""),
		slog.Bool("access_token_set", c.AccessToken != ""),
		slog.Bool("access_secret_set", c.AccessSecret != ""),
	)
}

// GenerateNonce returns 32 random bytes, base64 encoded without padding.
func GenerateNonce() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawStdEncoding.EncodeToString(b)
}

// GenerateTimestamp returns the current Unix time in seconds.
func GenerateTimestamp() string {
	return strconv.FormatInt(time.Now().Unix(), 10)
}

// Sign returns base64(HMAC-SHA256(enc(consumerSecret)&enc(tokenSecret), base)).
func Sign(base, consumerSecret, tokenSecret string) string {
	key := PercentEncode(consumerSecret) + "&" + PercentEncode(tokenSecret)
	mac := hmac.New(sha256.New, []byte(key))
	_, _ = mac.Write([]byte(base))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Signer produces Authorization headers for one set of credentials.
// It holds no mutable state and is safe for concurrent use.
type Signer struct {
	creds   Credentials
	nowFn   func() string
	nonceFn func() string
}

func NewSigner(creds Credentials) *Signer {
	return &Signer{
		creds:   creds,
		nowFn:   GenerateTimestamp,
		nonceFn: GenerateNonce,
	}
}

// Header signs a request with a fresh nonce and timestamp.
// params holds the query parameters of the request; body fields never sign.
func (s *Signer) Header(method, rawURL string, params url.Values) (string, error) {
	return s.HeaderWith(method, rawURL, params, s.nonceFn(), s.nowFn())
}

// HeaderWith signs a request with the given nonce and timestamp.
func (s *Signer) HeaderWith(method, rawURL string, params url.Values, nonce, timestamp string) (string, error) {
	oauth := map[string]string{
		paramConsumerKey:     s.creds.ConsumerKey,
		paramToken:           s.creds.AccessToken,
		paramSignatureMethod: SignatureMethod,
		paramTimestamp:       timestamp,
		paramNonce:           nonce,
		paramVersion:         Version,
	}

	all := make(url.Values, len(params)+len(oauth))
	for k, vs := range params {
		all[k] = append([]string(nil), vs...)
	}
	for k, v := range oauth {
		all.Add(k, v)
	}

	base, err := BaseString(method, rawURL, all)
	if err != nil {
		return "", err
	}
	oauth[paramSignature] = Sign(base, s.creds.ConsumerSecret, s.creds.AccessSecret)

	parts := make([]string, 0, len(headerOrder))
	for _, k := range headerOrder {
		parts = append(parts, PercentEncode(k)+`="`+PercentEncode(oauth[k])+`"`)
	}
	return "OAuth " + strings.Join(parts, ", "), nil
}
