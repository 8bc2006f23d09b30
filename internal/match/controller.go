// internal/match/controller.go
//
// Round controller: composes the opponent model and the round validator
// into the single per-round flow the outer layers call.
//
// Flow:
//   Begin  → draw is done by the caller; the controller kicks off opponent
//            answer generation asynchronously for the session's letter.
//   Finish → bounded wait for the generated answers (never blocks past
//            GenWait), validate both sides, feed the verdict back into the
//            opponent profile, hand the verdict + updated profile out.
//   Abandon → cancel generation, update nothing. Abandoned rounds must not
//            leak into the profile's monotone counters.
//
// The opponent side degrades to empty answers when generation is slow or
// cancelled, so the human side is always scored.

package match

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/CamiloDuvane/cwdnometerra/internal/game"
	"github.com/CamiloDuvane/cwdnometerra/internal/opponent"
)

// DefaultGenWait bounds how long Finish waits for opponent generation.
const DefaultGenWait = 2 * time.Second

// Session is one game lifetime: one player, one letter, one opponent
// profile. Sessions are never shared between players and each carries its
// own opponent model, so a session is only ever touched by one round
// lifecycle at a time.
type Session struct {
	ID         string
	PlayerName string
	Letter     game.Letter
	TimeLimit  time.Duration
	StartedAt  time.Time
	Model      *opponent.Model

	pending chan game.AnswerSet // opponent answers, buffered 1
	cancel  context.CancelFunc  // stops in-flight generation
}

// Controller runs rounds. One controller serves all sessions; it holds no
// per-round state of its own.
type Controller struct {
	check   game.Checker
	genWait time.Duration
}

// NewController builds a Controller around a plausibility checker.
// genWait <= 0 selects DefaultGenWait.
func NewController(check game.Checker, genWait time.Duration) *Controller {
	if genWait <= 0 {
		genWait = DefaultGenWait
	}
	return &Controller{check: check, genWait: genWait}
}

// Begin opens a session for a letter and starts opponent generation in the
// background. The returned session is ready for Finish as soon as the
// player submits answers; generation and play overlap.
func (c *Controller) Begin(playerName string, letter game.Letter, limit time.Duration, model *opponent.Model) *Session {
	genCtx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:         uuid.NewString(),
		PlayerName: playerName,
		Letter:     letter,
		TimeLimit:  limit,
		StartedAt:  time.Now(),
		Model:      model,
		pending:    make(chan game.AnswerSet, 1),
		cancel:     cancel,
	}
	go func() {
		s.pending <- model.GenerateAnswers(genCtx, letter)
	}()
	return s
}

// Finish scores the round. It waits at most the controller's generation
// bound for the opponent answers, then validates, updates the opponent
// profile, and returns the verdict with the new profile snapshot.
// On a validation error nothing is recorded.
func (c *Controller) Finish(ctx context.Context, s *Session, human game.AnswerSet) (*game.Verdict, opponent.Profile, error) {
	opp := c.awaitOpponent(ctx, s)

	verdict, err := game.Validate(s.Letter, human, opp, c.check)
	if err != nil {
		return nil, s.Model.Profile(), err
	}
	profile := s.Model.RecordOutcome(verdict)
	return verdict, profile, nil
}

// Abandon cancels any in-flight generation. The profile is untouched; the
// caller is responsible for discarding the session.
func (c *Controller) Abandon(s *Session) {
	if s.cancel != nil {
		s.cancel()
	}
}

// awaitOpponent collects the generated answers with a bounded wait.
// Timeout or caller cancellation yields an all-empty set rather than
// blocking the round.
func (c *Controller) awaitOpponent(ctx context.Context, s *Session) game.AnswerSet {
	select {
	case opp := <-s.pending:
		return opp
	case <-time.After(c.genWait):
		log.Warn().
			Str("match", s.ID).
			Dur("waited", c.genWait).
			Msg("opponent generation too slow, scoring blank opponent")
		s.cancel()
		return game.EmptyAnswerSet()
	case <-ctx.Done():
		s.cancel()
		return game.EmptyAnswerSet()
	}
}
