// Package checkout models one checkout attempt as an explicit state machine
// with a tagged gateway outcome, so the pay flow can be exercised end to end
// against a fake gateway widget.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type State string

const (
	StateIdle            State = "idle"
	StateInitiating      State = "initiating"
	StateAwaitingGateway State = "awaiting_gateway"
	StateVerifying       State = "verifying"
	StateSucceeded       State = "succeeded"
	StateFailed          State = "failed"
	StateCancelled       State = "cancelled"
)

// Cancelled and a failed initiation are re-enterable; succeeded and failed
// are terminal.
var legalTransitions = map[State][]State{
	StateIdle:            {StateInitiating},
	StateInitiating:      {StateAwaitingGateway, StateIdle},
	StateAwaitingGateway: {StateVerifying, StateCancelled},
	StateCancelled:       {StateInitiating},
	StateVerifying:       {StateSucceeded, StateFailed},
}

var (
	ErrAttemptInFlight = errors.New("a checkout attempt is already in flight")
	ErrSessionClosed   = errors.New("checkout session already reached a terminal state")
	ErrBadTransition   = errors.New("illegal checkout state transition")
)

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeFailure
	OutcomeCancelled
)

// Outcome is the tagged result of a gateway widget session.
type Outcome struct {
	Kind OutcomeKind

	// Success fields, signed by the gateway and forwarded verbatim.
	OrderID        string
	PaymentID      string
	Signature      string
	SubscriptionID string

	// Failure reason (declined card, SDK missing, ...).
	Reason string
}

func Success(orderID, paymentID, signature, subscriptionID string) Outcome {
	return Outcome{Kind: OutcomeSuccess, OrderID: orderID, PaymentID: paymentID,
		Signature: signature, SubscriptionID: subscriptionID}
}

func Failure(reason string) Outcome { return Outcome{Kind: OutcomeFailure, Reason: reason} }

func Cancelled() Outcome { return Outcome{Kind: OutcomeCancelled} }

// OrderRef is what order initiation hands the widget.
type OrderRef struct {
	TransactionID string
	OrderID       string
	AmountMinor   int64
	Currency      string
	PlanName      string
	KeyID         string
}

// Flow supplies the three backend-facing steps of one attempt. The session
// owns sequencing and cleanup; the flow owns I/O.
type Flow interface {
	Initiate(ctx context.Context) (*OrderRef, error)
	// OpenWidget blocks for the widget session and reports its outcome.
	OpenWidget(ctx context.Context, ref *OrderRef) Outcome
	Verify(ctx context.Context, ref *OrderRef, outcome Outcome) error
}

// Receipt is handed to the confirmation view on success; nothing else
// survives the session.
type Receipt struct {
	TransactionID string
	OrderID       string
	PaymentID     string
	AmountMinor   int64
	Currency      string
}

type Session struct {
	mu         sync.Mutex
	state      State
	processing bool
}

func NewSession() *Session {
	return &Session{state: StateIdle}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Processing reports whether an attempt is in flight; the pay action stays
// disabled while true.
func (s *Session) Processing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing
}

func (s *Session) transition(to State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, next := range legalTransitions[s.state] {
		if next == to {
			s.state = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrBadTransition, s.state, to)
}

// Run drives one attempt: initiate -> widget -> verify. The processing flag
// is cleared on every exit path, panics included; a stuck disabled pay button
// is the one failure mode this flow may never have.
func (s *Session) Run(ctx context.Context, flow Flow) (*Receipt, error) {
	s.mu.Lock()
	if s.processing {
		s.mu.Unlock()
		return nil, ErrAttemptInFlight
	}
	if s.state == StateSucceeded || s.state == StateFailed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	s.processing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.processing = false
		s.mu.Unlock()
	}()

	if err := s.transition(StateInitiating); err != nil {
		return nil, err
	}

	ref, err := flow.Initiate(ctx)
	if err != nil {
		// Initiation failure is retryable: back to idle, fresh transaction
		// next time.
		_ = s.transition(StateIdle)
		return nil, err
	}

	if err := s.transition(StateAwaitingGateway); err != nil {
		return nil, err
	}

	outcome := flow.OpenWidget(ctx, ref)
	switch outcome.Kind {
	case OutcomeCancelled, OutcomeFailure:
		// Dismissed or declined: the transaction stays pending server-side
		// and the user may retry from the checkout page.
		if err := s.transition(StateCancelled); err != nil {
			return nil, err
		}
		if outcome.Kind == OutcomeFailure && outcome.Reason != "" {
			return nil, fmt.Errorf("gateway: %s", outcome.Reason)
		}
		return nil, nil
	}

	if err := s.transition(StateVerifying); err != nil {
		return nil, err
	}

	if err := flow.Verify(ctx, ref, outcome); err != nil {
		// Verification rejection is terminal for this session; retrying
		// cannot change a cryptographic mismatch.
		_ = s.transition(StateFailed)
		return nil, err
	}

	if err := s.transition(StateSucceeded); err != nil {
		return nil, err
	}

	return &Receipt{
		TransactionID: ref.TransactionID,
		OrderID:       ref.OrderID,
		PaymentID:     outcome.PaymentID,
		AmountMinor:   ref.AmountMinor,
		Currency:      ref.Currency,
	}, nil
}
