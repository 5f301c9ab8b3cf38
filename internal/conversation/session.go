package conversation

import (
	"context"
	"fmt"

	"parley/internal/classify"
	"parley/internal/intent"
	"parley/internal/model"
)

// Ask sends prompt, suspends on the reply and classifies it against
// candidates. An unclassified reply triggers a clarification re-prompt, up to
// MaxRetries times; after that Ask returns a *NoClassificationError carrying
// the last reply. Timeouts, transport failures and ctx cancellation surface
// immediately with no retry. Whatever the outcome, the session ends Idle.
func (s *Session) Ask(ctx context.Context, prompt string, candidates intent.Set) (intent.Intent, error) {
	// Configuration problems fail fast, before anything reaches the user.
	if len(candidates) == 0 {
		return intent.Intent{}, fmt.Errorf("%s: %w", LogPrefixAsk, classify.ErrEmptyCandidates)
	}
	for _, cand := range candidates {
		if len(cand.Examples) == 0 {
			return intent.Intent{}, fmt.Errorf("%s: intent %s: %w", LogPrefixAsk, cand.Name, intent.ErrNoExamples)
		}
	}

	if err := s.acquire(); err != nil {
		return intent.Intent{}, err
	}
	defer s.release()

	if err := s.backend.Send(ctx, s.channel, prompt); err != nil {
		s.setState(StateFailed)
		s.l.Errorf(ctx, "%s: send prompt on %s: %v", LogPrefixAsk, s.channel, err)
		return intent.Intent{}, err
	}
	s.setState(StateAwaitingReply)

	var lastText string
	for attempt := 0; ; attempt++ {
		msg, err := s.backend.Receive(ctx, s.channel, s.replyTimeout)
		if err != nil {
			s.setState(StateFailed)
			s.l.Warnf(ctx, "%s: receive on %s: %v", LogPrefixAsk, s.channel, err)
			return intent.Intent{}, err
		}
		lastText = msg.Text

		result, err := s.classifier.Classify(ctx, msg.Text, candidates)
		if err != nil {
			s.setState(StateFailed)
			s.l.Errorf(ctx, "%s: classify on %s: %v", LogPrefixAsk, s.channel, err)
			return intent.Intent{}, err
		}
		if result.Matched {
			s.setState(StateResolved)
			s.l.Infof(ctx, "%s: %s resolved as %s (confidence %.2f, attempt %d)",
				LogPrefixAsk, s.channel, result.Intent.Name, result.Confidence, attempt+1)
			return result.Intent, nil
		}

		if attempt >= s.maxRetries {
			break
		}

		s.l.Debugf(ctx, "%s: %s reply %q unclassified, clarifying (attempt %d/%d)",
			LogPrefixAsk, s.channel, msg.Text, attempt+1, s.maxRetries+1)
		if err := s.backend.Send(ctx, s.channel, s.clarification); err != nil {
			s.setState(StateFailed)
			s.l.Errorf(ctx, "%s: send clarification on %s: %v", LogPrefixAsk, s.channel, err)
			return intent.Intent{}, err
		}
	}

	s.setState(StateFailed)
	s.l.Infof(ctx, "%s: %s gave up after %d replies, last %q", LogPrefixAsk, s.channel, s.maxRetries+1, lastText)
	return intent.Intent{}, &NoClassificationError{Text: lastText, Candidates: candidates.Names()}
}

// AskYesNo asks a yes-or-no question. True means a yes-flavored reply.
func (s *Session) AskYesNo(ctx context.Context, prompt string) (bool, error) {
	in, err := s.Ask(ctx, prompt, intent.YesNo())
	if err != nil {
		return false, err
	}
	return in.Name == intent.Yes, nil
}

// Tell sends message to the session's channel without waiting for anything
// back. It does not claim the session, so announcements can interleave with
// a pending question from another goroutine.
func (s *Session) Tell(ctx context.Context, message string) error {
	if err := s.backend.Send(ctx, s.channel, message); err != nil {
		s.l.Errorf(ctx, "%s: send on %s: %v", LogPrefixTell, s.channel, err)
		return err
	}
	return nil
}

// Listen suspends until the next inbound message on the session's channel
// and returns it raw, unclassified. Like Ask, it claims the session.
func (s *Session) Listen(ctx context.Context) (model.Message, error) {
	if err := s.acquire(); err != nil {
		return model.Message{}, err
	}
	defer s.release()

	s.setState(StateAwaitingReply)
	msg, err := s.backend.Receive(ctx, s.channel, s.replyTimeout)
	if err != nil {
		s.setState(StateFailed)
		s.l.Warnf(ctx, "%s: receive on %s: %v", LogPrefixListen, s.channel, err)
		return model.Message{}, err
	}

	s.setState(StateResolved)
	return msg, nil
}
