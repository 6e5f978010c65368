package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/chatledger/internal/core/domain"
	portssvc "github.com/SscSPs/chatledger/internal/core/ports/services"
	"github.com/SscSPs/chatledger/internal/dto"
	"github.com/SscSPs/chatledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// webhookHandler turns chat provider deliveries into dispatcher calls.
type webhookHandler struct {
	dispatcher portssvc.DispatcherSvc
	timeout    time.Duration
	now        func() time.Time
}

func newWebhookHandler(dispatcher portssvc.DispatcherSvc, timeout time.Duration) *webhookHandler {
	return &webhookHandler{dispatcher: dispatcher, timeout: timeout, now: time.Now}
}

// registerWebhookRoutes registers the inbound message endpoints. The form
// route speaks Twilio's protocol; the JSON route serves other gateways and is
// left out when jsonSignature is nil.
func registerWebhookRoutes(r gin.IRouter, dispatcher portssvc.DispatcherSvc, timeout time.Duration, formSignature, jsonSignature, allowList, rateLimit gin.HandlerFunc) {
	h := newWebhookHandler(dispatcher, timeout)

	webhook := r.Group("/webhook")
	{
		webhook.POST("/messages", formSignature, middleware.SenderMiddleware(middleware.FormSender), allowList, rateLimit, h.receiveForm)
		if jsonSignature != nil {
			webhook.POST("/messages.json", jsonSignature, middleware.SenderMiddleware(middleware.JSONSender), allowList, rateLimit, h.receiveJSON)
		}
	}
}

// receiveForm godoc
// @Summary Receive a Twilio message
// @Description Dispatches a form-encoded delivery and answers with a TwiML message.
// @Tags webhook
// @Accept  x-www-form-urlencoded
// @Produce  xml
// @Param   X-Twilio-Signature header string false "Required when WEBHOOK_AUTH_TOKEN is set"
// @Param   From formData string true "Sender address"
// @Param   Body formData string false "Message text"
// @Success 200 {object} dto.TwiMLResponse
// @Failure 400 {object} map[string]string "Missing sender"
// @Failure 403 {object} map[string]string "Invalid signature or sender not allowed"
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Router /webhook/messages [post]
func (h *webhookHandler) receiveForm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.InboundFormRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind webhook form", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if req.MessageSid != "" {
		logger = logger.With(slog.String("message_sid", req.MessageSid))
	}

	reply := h.dispatch(c, logger, req.From, req.Body)
	c.XML(http.StatusOK, dto.TwiMLResponse{Message: reply})
}

// receiveJSON godoc
// @Summary Receive a JSON message
// @Description Dispatches a JSON delivery and answers with the reply text.
// @Tags webhook
// @Accept  json
// @Produce  json
// @Param   X-Signature header string false "Hex HMAC-SHA256 of the body, required when WEBHOOK_AUTH_TOKEN is set"
// @Param   message body dto.InboundMessageRequest true "Inbound message"
// @Success 200 {object} dto.ReplyResponse
// @Failure 400 {object} map[string]string "Missing sender"
// @Failure 403 {object} map[string]string "Invalid signature or sender not allowed"
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Router /webhook/messages.json [post]
func (h *webhookHandler) receiveJSON(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.InboundMessageRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		logger.Warn("Failed to bind webhook JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	reply := h.dispatch(c, logger, req.Sender, req.Body)
	c.JSON(http.StatusOK, dto.ReplyResponse{Reply: reply})
}

func (h *webhookHandler) dispatch(c *gin.Context, logger *slog.Logger, rawSender, body string) string {
	sender, ok := middleware.GetSenderFromContext(c)
	if !ok {
		sender = rawSender
	}

	ctx := middleware.WithLogger(c.Request.Context(), logger)
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	reply := h.dispatcher.Dispatch(ctx, domain.InboundMessage{
		SenderAddress: sender,
		Body:          body,
		ReceivedAt:    h.now().UTC(),
	})
	logger.Info("Webhook message answered", slog.Int("reply_length", len(reply)))
	return reply
}
