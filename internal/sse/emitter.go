package sse

import (
	"bufio"
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
)

var logs = logrus.StandardLogger()

// Emitter writes server-sent events to a buffered stream and flushes after
// every event.
type Emitter struct {
	w     *bufio.Writer
	flush func() error
	topic string
}

func NewBufioEmitter(bw *bufio.Writer, topic string) *Emitter {
	return &Emitter{w: bw, flush: bw.Flush, topic: topic}
}

func (e *Emitter) Send(ev DataByteEvent) error {
	if _, err := e.w.Write(ev.Format()); err != nil {
		return err
	}
	if err := e.flush(); err != nil {
		logs.WithField("topic", e.topic).Debugf("flush failed, closing stream: %v", err)
		return err
	}
	return nil
}

// SendJSON encodes v as the event payload. A marshalling problem keeps the
// stream alive, a write failure ends it.
func (e *Emitter) SendJSON(id, typ string, v any) *FlowError {
	b, err := json.Marshal(v)
	if err != nil {
		logs.WithField("topic", e.topic).Errorf("marshal event: %v", err)
		return NewFlowError(err, true)
	}
	if err := e.Send(DataByteEvent{ID: id, Type: typ, Data: b}); err != nil {
		return NewFlowError(err, false)
	}
	return NewFlowError(nil, true)
}

func (e *Emitter) Heartbeat() error {
	if _, err := e.w.WriteString(":\n\n"); err != nil {
		return err
	}
	return e.flush()
}

// Stream sends the result of produce immediately and then every interval
// until ctx is done or the client goes away.
func (e *Emitter) Stream(ctx context.Context, interval time.Duration, typ string, produce func(context.Context) (any, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		v, err := produce(ctx)
		if err != nil {
			logs.WithField("topic", e.topic).Warnf("produce event: %v", err)
			if hbErr := e.Heartbeat(); hbErr != nil {
				return
			}
		} else if flowErr := e.SendJSON("", typ, v); flowErr.Err != nil && !flowErr.Next {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
