package worker

import (
	"context"
	"testing"
)

func TestLimiterAllowPerHost(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("https://a.example/path") {
		t.Error("first request to a host should be allowed")
	}
	if l.Allow("https://a.example/other") {
		t.Error("second immediate request to the same host should be limited")
	}
	// A different host has its own bucket
	if !l.Allow("https://b.example/path") {
		t.Error("request to a fresh host should be allowed")
	}
}

func TestLimiterWaitHonorsCancellation(t *testing.T) {
	l := NewLimiter(0.001, 1)
	if err := l.Wait(context.Background(), "https://a.example"); err != nil {
		t.Fatalf("first wait should pass immediately: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Wait(ctx, "https://a.example"); err == nil {
		t.Error("wait on a cancelled context should fail")
	}
}

func TestLimiterSetHostRate(t *testing.T) {
	l := NewLimiter(0.001, 1)
	l.SetHostRate("fast.example", 1000, 1000)

	for i := 0; i < 10; i++ {
		if !l.Allow("https://fast.example/x") {
			t.Fatalf("request %d to the boosted host should be allowed", i)
		}
	}
}
