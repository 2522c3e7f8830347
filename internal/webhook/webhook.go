// Package webhook verifies the authenticity of inbound Shopify requests.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// VerifyWebhookSignature checks a webhook body against its
// X-Shopify-Hmac-Sha256 header value. Shopify signs the raw request body
// with the app secret and base64-encodes the digest. Comparison is
// constant time.
func VerifyWebhookSignature(secret string, body []byte, header string) bool {
	if secret == "" || header == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(header))
}

// VerifyProxySignature checks an app proxy request's query string against
// its signature parameter. Shopify signs the remaining parameters sorted by
// key, each rendered as key=value with repeated values joined by commas and
// the pairs concatenated with no separator. The digest arrives hex-encoded.
func VerifyProxySignature(secret string, query url.Values) bool {
	provided := query.Get("signature")
	if secret == "" || provided == "" {
		return false
	}

	keys := make([]string, 0, len(query))
	for k := range query {
		if k == "signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var msg strings.Builder
	for _, k := range keys {
		msg.WriteString(k)
		msg.WriteString("=")
		msg.WriteString(strings.Join(query[k], ","))
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(msg.String()))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(strings.ToLower(provided)))
}
