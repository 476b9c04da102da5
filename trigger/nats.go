package trigger

import (
	"fmt"

	"github.com/nats-io/nats.go"
)

// NATS is a Trigger publishing codes on a NATS subject, one byte per
// signal, so downstream recorders can timestamp stimulus events.
type NATS struct {
	nc      *nats.Conn
	subject string
}

// NewNATS returns a NATS trigger publishing on subject.
func NewNATS(nc *nats.Conn, subject string) (*NATS, error) {
	if nc == nil {
		return nil, fmt.Errorf("trigger: nil connection")
	}

	return &NATS{nc: nc, subject: subject}, nil
}

// Signal publishes the code.
func (t *NATS) Signal(code int) error {
	if err := validateCode(code); err != nil {
		return err
	}

	return t.nc.Publish(t.subject, []byte{byte(code)})
}
