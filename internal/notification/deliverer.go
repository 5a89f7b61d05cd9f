package notification

import (
	"context"
	"fmt"
)

// Deliverer renders a job with the deployment branding and hands it to a Mailer.
type Deliverer struct {
	mailer   Mailer
	branding Branding
}

// NewDeliverer creates a deliverer.
func NewDeliverer(mailer Mailer, branding Branding) *Deliverer {
	return &Deliverer{mailer: mailer, branding: branding}
}

// Deliver sends job and returns the Message-ID.
func (d *Deliverer) Deliver(ctx context.Context, job Job) (string, error) {
	var (
		msg Message
		err error
	)
	switch job.Kind {
	case KindWelcome:
		msg, err = RenderWelcome(d.branding, job)
	default:
		return "", fmt.Errorf("unknown notification kind %q", job.Kind)
	}
	if err != nil {
		return "", err
	}
	return d.mailer.Send(ctx, msg)
}
