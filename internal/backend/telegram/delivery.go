package telegram

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"parley/internal/webhook"
	pkgLog "parley/pkg/log"
	pkgResponse "parley/pkg/response"
	pkgTelegram "parley/pkg/telegram"
)

// secretTokenHeader is where Telegram echoes the webhook secret.
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

type handler struct {
	l          pkgLog.Logger
	dispatcher Dispatcher
	security   *webhook.SecurityValidator
}

// NewHandler creates the webhook delivery handler. Validated updates are
// handed to the dispatcher; Telegram always gets its 200 straight away.
func NewHandler(l pkgLog.Logger, dispatcher Dispatcher, security *webhook.SecurityValidator) Handler {
	return &handler{
		l:          l,
		dispatcher: dispatcher,
		security:   security,
	}
}

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// The reply to Telegram never waits on conversation logic: dispatching only
// enqueues, so a slow session cannot trip Telegram's webhook timeout.
//
//	@Summary		Telegram webhook
//	@Description	Receives Telegram Bot API updates and routes message text into conversations
//	@Tags			webhooks
//	@Accept			json
//	@Produce		json
//	@Param			update	body		telegram.Update	true	"Telegram update"
//	@Success		200		{object}	response.Resp
//	@Failure		400		{object}	response.Resp
//	@Failure		401		{object}	response.Resp
//	@Failure		429		{object}	response.Resp
//	@Router			/webhooks/telegram [post]
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	h.security.LimitBody(c.Writer, c.Request)

	if err := h.security.ValidateIPAddress(c.Request); err != nil {
		h.l.Warnf(ctx, "%s: %v", LogPrefixHandleWebhook, err)
		pkgResponse.Unauthorized(c)
		return
	}
	if err := h.security.ValidateTelegramToken(c.GetHeader(secretTokenHeader)); err != nil {
		h.l.Warnf(ctx, "%s: %v", LogPrefixHandleWebhook, err)
		pkgResponse.Unauthorized(c)
		return
	}

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "%s: failed to parse update: %v", LogPrefixHandleWebhook, err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (polls, channel_post, etc.)
	msg, ok := toInbound(update)
	if !ok {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	if update.Message.From != nil {
		sender := fmt.Sprintf("telegram_%d", update.Message.From.ID)
		if err := h.security.CheckRateLimit(sender); err != nil {
			h.l.Warnf(ctx, "%s: %v", LogPrefixHandleWebhook, err)
			pkgResponse.TooManyRequests(c)
			return
		}
	}

	if err := h.dispatcher.Dispatch(ctx, msg); err != nil {
		// Telegram retries on non-200, which would only repeat the
		// overload; acknowledge and surface the drop in logs.
		h.l.Errorf(ctx, "%s: dispatch %s: %v", LogPrefixHandleWebhook, msg.Channel, err)
	}

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}
