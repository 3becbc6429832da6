package contentgen

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetry_TransientFailureThenSuccess(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &UnavailableError{Err: errors.New("503")}},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	p := WithRetry(mock, fastRetry(3))

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Errorf("content %s, want the second canned response", resp.Content)
	}
	if mock.CallCount() != 2 {
		t.Errorf("provider called %d times, want 2", mock.CallCount())
	}
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &UnavailableError{}},
		MockResponse{Err: &UnavailableError{}},
		MockResponse{Err: &UnavailableError{}},
	)
	p := WithRetry(mock, fastRetry(3))

	_, err := p.Generate(context.Background(), Request{})
	var unavail *UnavailableError
	if !errors.As(err, &unavail) {
		t.Fatalf("got %v, want the last UnavailableError", err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("provider called %d times, want 3", mock.CallCount())
	}
}

func TestRetry_InvalidOutputRetriedOnce(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &InvalidOutputError{Err: errors.New("bad json")}},
		MockResponse{Err: &InvalidOutputError{Err: errors.New("bad json again")}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	p := WithRetry(mock, fastRetry(5))

	_, err := p.Generate(context.Background(), Request{})
	var invalid *InvalidOutputError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidOutputError after a single retry", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("provider called %d times, want 2 (one retry)", mock.CallCount())
	}
}

func TestRetry_TruncationNotRetried(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &TruncatedError{}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	p := WithRetry(mock, fastRetry(3))

	_, err := p.Generate(context.Background(), Request{})
	var truncated *TruncatedError
	if !errors.As(err, &truncated) {
		t.Fatalf("got %v, want TruncatedError without retry", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("provider called %d times, want 1", mock.CallCount())
	}
}

func TestRetry_ContextCancellationStops(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &UnavailableError{}})
	p := WithRetry(mock, RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Minute,
		MaxWait:     time.Minute,
		Multiplier:  1,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Generate(ctx, Request{}); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
