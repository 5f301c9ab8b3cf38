// cmd/clibot runs a Parley conversation against the local terminal: type
// replies on stdin, the bot answers on stdout. Useful for trying out scripts
// and classifier tuning without registering any chat backend.
//
// Usage:
//
//	go run ./cmd/clibot
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"parley/internal/backend/cli"
	"parley/internal/classify"
	"parley/internal/conversation"
	"parley/internal/intent"
	pkgLog "parley/pkg/log"
	"parley/pkg/nlp"
)

func main() {
	logger := pkgLog.Init(pkgLog.ZapConfig{
		Level:    "warn", // keep the terminal clean for the chat itself
		Mode:     "production",
		Encoding: "console",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := intent.NewRegistry()
	if err := intent.RegisterBuiltins(registry); err != nil {
		log.Fatalf("Failed to register built-in intents: %v", err)
	}
	if _, err := registry.Register("COFFEE", "coffee", "a coffee", "espresso", "flat white", "cappuccino"); err != nil {
		log.Fatalf("Failed to register intent: %v", err)
	}
	if _, err := registry.Register("TEA", "tea", "a cup of tea", "green tea", "earl grey"); err != nil {
		log.Fatalf("Failed to register intent: %v", err)
	}
	drinks, err := registry.SetOf("COFFEE", "TEA")
	if err != nil {
		log.Fatalf("Failed to build candidate set: %v", err)
	}

	classifier := classify.New(nlp.NewExtractor(), classify.Config{}, logger)

	term := cli.New(logger, os.Stdin, os.Stdout)
	term.Start(ctx)

	sess, err := conversation.New(conversation.Config{
		Logger:     logger,
		Backend:    term,
		Classifier: classifier,
		Channel:    cli.Channel,
	})
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	if err := run(ctx, sess, drinks); err != nil && ctx.Err() == nil {
		log.Fatalf("Conversation failed: %v", err)
	}
}

func run(ctx context.Context, sess *conversation.Session, drinks intent.Set) error {
	if err := sess.Tell(ctx, "Hi! I'm a Parley demo bot. Answer my questions in your own words (Ctrl+C quits)."); err != nil {
		return err
	}

	thirsty, err := sess.AskYesNo(ctx, "First one is easy: are you thirsty?")
	if err != nil {
		return dodge(ctx, sess, err)
	}
	if !thirsty {
		if err := sess.Tell(ctx, "Noted. Humor me anyway."); err != nil {
			return err
		}
	}

	drink, err := sess.Ask(ctx, "Coffee or tea?", drinks)
	switch {
	case err != nil:
		if err := dodge(ctx, sess, err); err != nil {
			return err
		}
	case drink.Name == "COFFEE":
		if err := sess.Tell(ctx, "A fellow coffee person. Excellent choice."); err != nil {
			return err
		}
	default:
		if err := sess.Tell(ctx, "Tea it is. Very civilized."); err != nil {
			return err
		}
	}

	painless, err := sess.AskYesNo(ctx, "Last one: was that painless?")
	if err != nil {
		return dodge(ctx, sess, err)
	}
	if painless {
		return sess.Tell(ctx, "Great. That's all, thanks for playing!")
	}
	return sess.Tell(ctx, "Ouch. That's all anyway, thanks for playing!")
}

// dodge downgrades a classification dead-end to a shrug; other errors abort
// the conversation.
func dodge(ctx context.Context, sess *conversation.Session, err error) error {
	var ncErr *conversation.NoClassificationError
	if errors.As(err, &ncErr) {
		return sess.Tell(ctx, "I give up on that one.")
	}
	return err
}
