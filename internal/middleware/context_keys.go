package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const (
	adminSubjectKey = contextKey("adminSubject")
	senderKey       = contextKey("sender")
)

// WithAdminSubject returns a copy of ctx carrying the authenticated operator.
func WithAdminSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, adminSubjectKey, subject)
}

// GetAdminSubjectFromContext retrieves the operator authenticated by AuthMiddleware.
func GetAdminSubjectFromContext(c *gin.Context) (string, bool) {
	subject, ok := c.Request.Context().Value(adminSubjectKey).(string)
	return subject, ok && subject != ""
}

// GetSenderFromContext returns the normalized chat address resolved by
// SenderMiddleware.
func GetSenderFromContext(c *gin.Context) (string, bool) {
	sender, ok := c.Get(string(senderKey))
	if !ok {
		return "", false
	}
	s, ok := sender.(string)
	return s, ok
}
