package checkout

import (
	"context"
	"errors"
	"testing"
)

type fakeFlow struct {
	initiateErr error
	outcome     Outcome
	verifyErr   error

	initiated int
	verified  int
}

func (f *fakeFlow) Initiate(ctx context.Context) (*OrderRef, error) {
	f.initiated++
	if f.initiateErr != nil {
		return nil, f.initiateErr
	}
	return &OrderRef{
		TransactionID: "txn-1",
		OrderID:       "order_abc",
		AmountMinor:   117882,
		Currency:      "INR",
		PlanName:      "Pro Monthly",
		KeyID:         "rzp_test_key",
	}, nil
}

func (f *fakeFlow) OpenWidget(ctx context.Context, ref *OrderRef) Outcome {
	return f.outcome
}

func (f *fakeFlow) Verify(ctx context.Context, ref *OrderRef, outcome Outcome) error {
	f.verified++
	return f.verifyErr
}

func TestRunHappyPath(t *testing.T) {
	s := NewSession()
	flow := &fakeFlow{outcome: Success("order_abc", "pay_123", "sig", "")}

	receipt, err := s.Run(context.Background(), flow)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if receipt == nil {
		t.Fatal("expected a receipt")
	}
	if receipt.PaymentID != "pay_123" || receipt.OrderID != "order_abc" {
		t.Errorf("unexpected receipt: %+v", receipt)
	}
	if got := s.State(); got != StateSucceeded {
		t.Errorf("state = %s, want %s", got, StateSucceeded)
	}
	if s.Processing() {
		t.Error("processing flag still set after Run returned")
	}
}

func TestRunInitiationFailureIsRetryable(t *testing.T) {
	s := NewSession()
	boom := errors.New("gateway down")
	flow := &fakeFlow{initiateErr: boom}

	if _, err := s.Run(context.Background(), flow); !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want %v", err, boom)
	}
	if got := s.State(); got != StateIdle {
		t.Errorf("state = %s, want %s", got, StateIdle)
	}

	// A second attempt starts cleanly.
	flow.initiateErr = nil
	flow.outcome = Success("order_abc", "pay_123", "sig", "")
	if _, err := s.Run(context.Background(), flow); err != nil {
		t.Fatalf("retry Run: %v", err)
	}
	if flow.initiated != 2 {
		t.Errorf("initiated = %d, want 2", flow.initiated)
	}
}

func TestRunCancelledLeavesSessionReusable(t *testing.T) {
	s := NewSession()
	flow := &fakeFlow{outcome: Cancelled()}

	receipt, err := s.Run(context.Background(), flow)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if receipt != nil {
		t.Fatal("cancelled attempt must not produce a receipt")
	}
	if got := s.State(); got != StateCancelled {
		t.Errorf("state = %s, want %s", got, StateCancelled)
	}
	if flow.verified != 0 {
		t.Error("verify must not run for a dismissed widget")
	}
	if s.Processing() {
		t.Error("processing flag still set after cancellation")
	}

	// The user may retry from the checkout page.
	flow.outcome = Success("order_abc", "pay_456", "sig", "")
	if _, err := s.Run(context.Background(), flow); err != nil {
		t.Fatalf("retry after cancel: %v", err)
	}
	if got := s.State(); got != StateSucceeded {
		t.Errorf("state = %s, want %s", got, StateSucceeded)
	}
}

func TestRunWidgetFailureReportsReason(t *testing.T) {
	s := NewSession()
	flow := &fakeFlow{outcome: Failure("card declined")}

	_, err := s.Run(context.Background(), flow)
	if err == nil {
		t.Fatal("expected an error for a declined payment")
	}
	if got := s.State(); got != StateCancelled {
		t.Errorf("state = %s, want %s", got, StateCancelled)
	}
}

func TestRunVerifyRejectionIsTerminal(t *testing.T) {
	s := NewSession()
	rejected := errors.New("signature mismatch")
	flow := &fakeFlow{
		outcome:   Success("order_abc", "pay_123", "tampered", ""),
		verifyErr: rejected,
	}

	if _, err := s.Run(context.Background(), flow); !errors.Is(err, rejected) {
		t.Fatalf("Run error = %v, want %v", err, rejected)
	}
	if got := s.State(); got != StateFailed {
		t.Errorf("state = %s, want %s", got, StateFailed)
	}

	// No further attempts on a failed session.
	if _, err := s.Run(context.Background(), flow); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("Run on failed session = %v, want %v", err, ErrSessionClosed)
	}
}

func TestRunRejectsConcurrentAttempt(t *testing.T) {
	s := NewSession()
	s.processing = true

	if _, err := s.Run(context.Background(), &fakeFlow{}); !errors.Is(err, ErrAttemptInFlight) {
		t.Fatalf("Run = %v, want %v", err, ErrAttemptInFlight)
	}
}

func TestTransitionLegality(t *testing.T) {
	cases := []struct {
		from, to State
		ok       bool
	}{
		{StateIdle, StateInitiating, true},
		{StateIdle, StateVerifying, false},
		{StateAwaitingGateway, StateCancelled, true},
		{StateCancelled, StateInitiating, true},
		{StateVerifying, StateSucceeded, true},
		{StateSucceeded, StateInitiating, false},
		{StateFailed, StateInitiating, false},
	}

	for _, tc := range cases {
		s := &Session{state: tc.from}
		err := s.transition(tc.to)
		if tc.ok && err != nil {
			t.Errorf("%s -> %s: unexpected error %v", tc.from, tc.to, err)
		}
		if !tc.ok && !errors.Is(err, ErrBadTransition) {
			t.Errorf("%s -> %s: error = %v, want %v", tc.from, tc.to, err, ErrBadTransition)
		}
	}
}
