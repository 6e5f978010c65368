package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/SscSPs/chatledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	// SignatureHeader carries the HMAC-SHA1 signature of a Twilio webhook delivery.
	SignatureHeader = "X-Twilio-Signature"
	// BodySignatureHeader carries the hex HMAC-SHA256 of a JSON delivery's raw
	// body, optionally prefixed with "sha256=".
	BodySignatureHeader = "X-Signature"

	maxSignedBodyBytes = 1 << 20
)

// SenderExtractor pulls the raw sender address out of an inbound request.
type SenderExtractor func(c *gin.Context) (string, error)

// FormSender reads the sender from the "From" form field.
func FormSender(c *gin.Context) (string, error) {
	from := c.PostForm("From")
	if from == "" {
		return "", errors.New("missing From field")
	}
	return from, nil
}

// JSONSender reads the sender from a JSON body. The body is cached so the
// handler can bind it again with ShouldBindBodyWith.
func JSONSender(c *gin.Context) (string, error) {
	var payload struct {
		Sender string `json:"sender"`
	}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		return "", err
	}
	if payload.Sender == "" {
		return "", errors.New("missing sender field")
	}
	return payload.Sender, nil
}

// SenderMiddleware resolves and normalizes the sender address and stores it
// on the Gin context for the limiter, the allow-list and the handler.
func SenderMiddleware(extract SenderExtractor) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		raw, err := extract(c)
		if err != nil {
			logger.Warn("Webhook request without sender", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "sender is required"})
			return
		}
		sender, err := utils.NormalizeAddress(raw)
		if err != nil {
			logger.Warn("Webhook sender not normalizable", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "sender is invalid"})
			return
		}

		c.Set(string(senderKey), sender)
		c.Request = c.Request.WithContext(WithLogger(c.Request.Context(), logger.With(slog.String("sender", sender))))
		c.Next()
	}
}

// SenderAllowList rejects senders outside allowed. An empty list allows every
// sender; authorization is then left to the identity lookup.
func SenderAllowList(allowed []string) gin.HandlerFunc {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		if n, err := utils.NormalizeAddress(a); err == nil {
			set[n] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		if len(set) == 0 {
			c.Next()
			return
		}
		sender, _ := GetSenderFromContext(c)
		if _, ok := set[sender]; !ok {
			GetLoggerFromCtx(c.Request.Context()).Warn("Sender not in allow-list")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "sender not allowed"})
			return
		}
		c.Next()
	}
}

// TwilioSignature verifies the X-Twilio-Signature header of form-encoded
// deliveries. publicURL overrides the scheme and host the provider signed,
// which differ from the request's when running behind a proxy. An empty
// authToken disables verification.
func TwilioSignature(authToken, publicURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authToken == "" {
			c.Next()
			return
		}

		if err := c.Request.ParseForm(); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid form body"})
			return
		}

		expected := ComputeTwilioSignature(authToken, signedURL(c, publicURL), c.Request.PostForm)
		got := c.GetHeader(SignatureHeader)
		if got == "" || !hmac.Equal([]byte(expected), []byte(got)) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Webhook signature mismatch")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid signature"})
			return
		}
		c.Next()
	}
}

// ComputeTwilioSignature signs the full URL followed by every POST parameter
// name and value, sorted by name.
func ComputeTwilioSignature(authToken, fullURL string, params map[string][]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(fullURL)
	for _, k := range keys {
		for _, v := range params[k] {
			b.WriteString(k)
			b.WriteString(v)
		}
	}

	mac := hmac.New(sha1.New, []byte(authToken))
	mac.Write([]byte(b.String()))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// BodySignature verifies the X-Signature header of JSON deliveries against the
// raw body. The body is restored and cached for later binding. An empty
// authToken disables verification.
func BodySignature(authToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authToken == "" {
			c.Next()
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxSignedBodyBytes))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Set(gin.BodyBytesKey, body)

		got := strings.TrimPrefix(c.GetHeader(BodySignatureHeader), "sha256=")
		expected := ComputeBodySignature(authToken, body)
		if got == "" || !hmac.Equal([]byte(expected), []byte(strings.ToLower(got))) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Webhook body signature mismatch")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid signature"})
			return
		}
		c.Next()
	}
}

// ComputeBodySignature returns the lowercase hex HMAC-SHA256 of body.
func ComputeBodySignature(authToken string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(authToken))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func signedURL(c *gin.Context, publicURL string) string {
	if publicURL != "" {
		return publicURL + c.Request.URL.RequestURI()
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host + c.Request.URL.RequestURI()
}
