package googlechat

import (
	"github.com/gin-gonic/gin"

	"parley/internal/webhook"
	pkgGchat "parley/pkg/gchat"
	pkgLog "parley/pkg/log"
	pkgResponse "parley/pkg/response"
)

// Handler is the interface for the Google Chat delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

type handler struct {
	l          pkgLog.Logger
	dispatcher Dispatcher
	security   *webhook.SecurityValidator
}

// NewHandler creates the webhook delivery handler. Validated events are
// handed to the dispatcher; Chat always gets its 200 straight away.
func NewHandler(l pkgLog.Logger, dispatcher Dispatcher, security *webhook.SecurityValidator) Handler {
	return &handler{
		l:          l,
		dispatcher: dispatcher,
		security:   security,
	}
}

// HandleWebhook is the Gin handler for incoming Google Chat events. Replies
// go out asynchronously through the Chat API, so the synchronous response
// body carries no text and Chat renders nothing for it.
//
//	@Summary		Google Chat webhook
//	@Description	Receives Google Chat events and routes message text into conversations
//	@Tags			webhooks
//	@Accept			json
//	@Produce		json
//	@Param			event	body		gchat.Event	true	"Google Chat event"
//	@Success		200		{object}	response.Resp
//	@Failure		400		{object}	response.Resp
//	@Failure		401		{object}	response.Resp
//	@Failure		429		{object}	response.Resp
//	@Router			/webhooks/googlechat [post]
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	h.security.LimitBody(c.Writer, c.Request)

	if err := h.security.ValidateIPAddress(c.Request); err != nil {
		h.l.Warnf(ctx, "%s: %v", LogPrefixHandleWebhook, err)
		pkgResponse.Unauthorized(c)
		return
	}
	if err := h.security.ValidateGoogleChatToken(ctx, c.GetHeader("Authorization")); err != nil {
		h.l.Warnf(ctx, "%s: %v", LogPrefixHandleWebhook, err)
		pkgResponse.Unauthorized(c)
		return
	}

	var event pkgGchat.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		h.l.Errorf(ctx, "%s: failed to parse event: %v", LogPrefixHandleWebhook, err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore lifecycle events (ADDED_TO_SPACE, REMOVED_FROM_SPACE)
	msg, ok := toInbound(event)
	if !ok {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	if msg.Sender.ID != "" {
		if err := h.security.CheckRateLimit(msg.Sender.ID); err != nil {
			h.l.Warnf(ctx, "%s: %v", LogPrefixHandleWebhook, err)
			pkgResponse.TooManyRequests(c)
			return
		}
	}

	if err := h.dispatcher.Dispatch(ctx, msg); err != nil {
		// Chat retries on non-200, which would only repeat the
		// overload; acknowledge and surface the drop in logs.
		h.l.Errorf(ctx, "%s: dispatch %s: %v", LogPrefixHandleWebhook, msg.Channel, err)
	}

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}
