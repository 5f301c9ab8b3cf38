package telegram

import (
	"context"
	"time"

	pkgLog "parley/pkg/log"
	pkgTelegram "parley/pkg/telegram"
)

// Poller drives GetUpdates long polling as an alternative to the webhook,
// for deployments without a public HTTPS endpoint. Run only one poller per
// bot token, and never alongside a registered webhook: Telegram rejects
// getUpdates while a webhook is set.
type Poller struct {
	l          pkgLog.Logger
	bot        *pkgTelegram.Bot
	dispatcher Dispatcher
	timeout    int // long-poll hold in seconds
}

// NewPoller creates a Poller feeding dispatcher. timeout <= 0 falls back to
// DefaultPollTimeout.
func NewPoller(l pkgLog.Logger, bot *pkgTelegram.Bot, dispatcher Dispatcher, timeout int) *Poller {
	if timeout <= 0 {
		timeout = DefaultPollTimeout
	}
	return &Poller{
		l:          l,
		bot:        bot,
		dispatcher: dispatcher,
		timeout:    timeout,
	}
}

// Run polls until ctx is done. Poll failures back off and retry; the loop
// only ends with ctx.Err().
func (p *Poller) Run(ctx context.Context) error {
	p.l.Infof(ctx, "%s: starting long poll (timeout %ds)", LogPrefixPoller, p.timeout)

	var offset int64
	for {
		updates, err := p.bot.GetUpdates(ctx, offset, p.timeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.l.Errorf(ctx, "%s: poll failed: %v", LogPrefixPoller, err)
			if !sleepCtx(ctx, 3*time.Second) {
				return ctx.Err()
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}

			msg, ok := toInbound(update)
			if !ok {
				continue
			}
			if err := p.dispatcher.Dispatch(ctx, msg); err != nil {
				p.l.Errorf(ctx, "%s: dispatch %s: %v", LogPrefixPoller, msg.Channel, err)
			}
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// sleepCtx pauses for d, returning false if ctx ends first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
