package sse

import (
	"bytes"
	"fmt"
	"time"
)

type DataByteEvent struct {
	ID    string
	Type  string
	Retry time.Duration
	Data  []byte
}

// Format renders the event in text/event-stream framing. Multi-line payloads
// get one data field per line.
func (ev DataByteEvent) Format() []byte {
	var b bytes.Buffer

	if ev.ID != "" {
		fmt.Fprintf(&b, "id: %s\n", ev.ID)
	}
	if ev.Type != "" {
		fmt.Fprintf(&b, "event: %s\n", ev.Type)
	}
	if ev.Retry > 0 {
		fmt.Fprintf(&b, "retry: %d\n", int(ev.Retry/time.Millisecond))
	}
	for _, line := range bytes.Split(ev.Data, []byte("\n")) {
		b.WriteString("data: ")
		b.Write(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	return b.Bytes()
}
