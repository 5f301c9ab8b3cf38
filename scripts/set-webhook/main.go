// scripts/set-webhook/main.go
//
// Registers (or removes) the Telegram webhook for a bot. The API server does
// this automatically at startup when it can reach ngrok; use this script when
// deploying behind a fixed public URL, or to detach a bot from a dead tunnel.
//
// Usage:
//
//	go run scripts/set-webhook/main.go -token <bot-token> -url https://example.com/webhooks/telegram -secret <webhook-secret>
//	go run scripts/set-webhook/main.go -token <bot-token> -delete
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"parley/pkg/telegram"
)

func main() {
	token := flag.String("token", os.Getenv("TELEGRAM_BOT_TOKEN"), "Telegram bot token (defaults to TELEGRAM_BOT_TOKEN)")
	url := flag.String("url", "", "Public webhook URL, e.g. https://example.com/webhooks/telegram")
	secret := flag.String("secret", os.Getenv("TELEGRAM_WEBHOOK_SECRET"), "Webhook secret token (defaults to TELEGRAM_WEBHOOK_SECRET)")
	del := flag.Bool("delete", false, "Delete the webhook instead of setting one")
	flag.Parse()

	if *token == "" {
		log.Fatal("Missing bot token: pass -token or set TELEGRAM_BOT_TOKEN")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bot := telegram.NewBot(*token)

	if *del {
		if err := bot.DeleteWebhook(ctx); err != nil {
			log.Fatalf("Failed to delete webhook: %v", err)
		}
		fmt.Println("✅ Webhook deleted")
		return
	}

	if *url == "" {
		log.Fatal("Missing webhook URL: pass -url (or -delete to remove the webhook)")
	}
	if *secret == "" {
		fmt.Println("WARNING: no -secret given; the webhook will accept unauthenticated deliveries")
	}

	if err := bot.SetWebhook(ctx, *url, *secret); err != nil {
		log.Fatalf("Failed to set webhook: %v", err)
	}
	fmt.Printf("✅ Webhook registered at %s\n", *url)
}
