package sse

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

const unexpectedOutput = "unexpected output:\n--- got ---\n%q\n--- want ---\n%q"

func newTestEmitter() (*Emitter, *bytes.Buffer) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	return NewBufioEmitter(bw, "test"), &buf
}

func TestSendEventWithAllFields(t *testing.T) {
	em, buf := newTestEmitter()

	ev := DataByteEvent{
		ID:    "789",
		Type:  "stats",
		Retry: 1500 * time.Millisecond,
		Data:  []byte(`{"stars":12}`),
	}
	if err := em.Send(ev); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	want := "id: 789\nevent: stats\nretry: 1500\ndata: {\"stars\":12}\n\n"
	if got := buf.String(); got != want {
		t.Fatalf(unexpectedOutput, got, want)
	}
}

func TestSendMultilineData(t *testing.T) {
	em, buf := newTestEmitter()

	if err := em.Send(DataByteEvent{Data: []byte("kind: Service\nmetadata: {}")}); err != nil {
		t.Fatal(err)
	}
	want := "data: kind: Service\ndata: metadata: {}\n\n"
	if got := buf.String(); got != want {
		t.Fatalf(unexpectedOutput, got, want)
	}
}

func TestSendJSON(t *testing.T) {
	em, buf := newTestEmitter()

	type payload struct {
		Usage int `json:"usage"`
	}
	if flowErr := em.SendJSON("42", "stats", payload{Usage: 7}); flowErr.Err != nil {
		t.Fatalf("SendJSON returned error: %v", flowErr.Err)
	}

	want := "id: 42\nevent: stats\ndata: {\"usage\":7}\n\n"
	if got := buf.String(); got != want {
		t.Fatalf(unexpectedOutput, got, want)
	}
}

func TestSendJSONUnsupportedValueKeepsStream(t *testing.T) {
	em, buf := newTestEmitter()

	flowErr := em.SendJSON("", "stats", make(chan int))
	if flowErr.Err == nil || !flowErr.Next {
		t.Fatalf("expected a recoverable error, got %+v", flowErr)
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be written, got %q", buf.String())
	}
}

func TestSendJSONFlushFailureStopsStream(t *testing.T) {
	em, _ := newTestEmitter()
	em.flush = func() error { return errors.New("connection reset") }

	flowErr := em.SendJSON("", "stats", 1)
	if flowErr.Err == nil || flowErr.Next {
		t.Fatalf("expected a terminal error, got %+v", flowErr)
	}
}

func TestHeartbeat(t *testing.T) {
	em, buf := newTestEmitter()

	if err := em.Heartbeat(); err != nil {
		t.Fatalf("Heartbeat returned error: %v", err)
	}
	if got, want := buf.String(), ":\n\n"; got != want {
		t.Fatalf(unexpectedOutput, got, want)
	}
}

func TestStreamStopsWhenClientLeaves(t *testing.T) {
	em, buf := newTestEmitter()
	sent := 0
	em.flush = func() error {
		if err := em.w.Flush(); err != nil {
			return err
		}
		sent++
		if sent == 3 {
			return errors.New("client gone")
		}
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		em.Stream(context.Background(), time.Millisecond, "stats", func(context.Context) (any, error) {
			return map[string]int{"n": sent}, nil
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not stop after the write failure")
	}
	if n := strings.Count(buf.String(), "event: stats\n"); n != 3 {
		t.Fatalf("expected 3 buffered events, got %d", n)
	}
}

func TestStreamHonoursContext(t *testing.T) {
	em, buf := newTestEmitter()
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	em.Stream(ctx, time.Hour, "stats", func(context.Context) (any, error) {
		calls++
		cancel()
		return nil, errors.New("stats unavailable")
	})

	if calls != 1 {
		t.Fatalf("expected a single produce call, got %d", calls)
	}
	if got, want := buf.String(), ":\n\n"; got != want {
		t.Fatalf(unexpectedOutput, got, want)
	}
}
