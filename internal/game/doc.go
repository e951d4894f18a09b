// Package game implements the rules engine for Sueca, a four-player
// trick-taking card game played in two fixed partnerships with a trump suit.
//
// The main types are Round, which holds the state of a single deal and
// enforces the rules, and Engine, which owns the current round, drives
// automated seats through a Policy and publishes a GameEvent after every
// state change.
//
// # Basic Usage
//
// Play one round with the human in Seat1 and bots elsewhere:
//
//	engine := game.NewEngine(randutil.New(42), logger, game.WithBots(game.FirstLegal))
//	engine.EventBus().Subscribe(game.SubscriberFunc(func(e game.GameEvent) {
//	    fmt.Println(e.EventType())
//	}))
//	if err := engine.StartRound(); err != nil {
//	    return err
//	}
//	for !engine.Snapshot().Terminal {
//	    if engine.AwaitingAutomated() {
//	        if _, _, err := engine.PlayAutomated(); err != nil {
//	            return err
//	        }
//	        continue
//	    }
//	    legal := engine.LegalPlays(game.HumanSeat)
//	    if _, err := engine.SubmitPlay(game.HumanSeat, legal[0]); err != nil {
//	        return err
//	    }
//	}
//
// Any game.PolicyFunc can stand in for a bot, and Run plays a whole round
// when every seat has a policy.
//
// # Rules
//
// The 40-card deck is dealt ten cards per seat. The first card dealt to Seat1
// fixes the trump suit and Seat1 leads the first trick. Players must follow
// the leading suit when they can; otherwise any card may be played. A trick
// goes to the strongest trump played, or failing that to the strongest card
// of the leading suit, and its winner leads next. All four cards' points go to
// the winner's partnership (Seat1 and Seat3 against Seat2 and Seat4). After ten
// tricks the partnership with more of the 120 points wins; 60-60 is a draw.
//
// # Errors
//
// Rule violations (ErrOutOfTurn, ErrCardNotHeld, ErrIllegalSuit,
// ErrRoundComplete) are returned as *PlayError and leave the round untouched.
// Invariant breaches during trick resolution panic.
//
// # Deterministic Testing
//
// Shuffling and bot choices take a randutil.Source, so tests can supply a
// seeded generator or a randutil.Scripted sequence. NewRoundFromHands builds
// a round from explicit hands, and WithDeckFactory lets an Engine deal from a
// fixed deck.
package game
