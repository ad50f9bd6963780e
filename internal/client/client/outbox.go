package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/influence/internal/common"
	"github.com/dmitrijs2005/influence/internal/logging"
	"github.com/dmitrijs2005/influence/internal/model"
	pb "github.com/dmitrijs2005/influence/internal/proto"
)

// EventSender delivers one named event.
type EventSender interface {
	Emit(ctx context.Context, event string, payload any) error
}

const outboxSize = 64

type outboundEvent struct {
	name    string
	payload any
}

// Outbox queues profile events and sends them in order from Run. Senders
// never wait for the network; an event that fails to send is logged and
// dropped.
type Outbox struct {
	sender  EventSender
	timeout time.Duration
	log     logging.Logger
	queue   chan outboundEvent
}

func NewOutbox(sender EventSender, timeout time.Duration, log logging.Logger) *Outbox {
	return &Outbox{
		sender:  sender,
		timeout: timeout,
		log:     log,
		queue:   make(chan outboundEvent, outboxSize),
	}
}

func (o *Outbox) CreateProfile(p model.Profile) {
	o.enqueue(common.EventCreateProfile, p)
}

func (o *Outbox) UpdateProfile(index int, id string, p model.Profile) {
	o.enqueue(common.EventUpdateProfile, pb.UpdatePayload{Index: index, ID: id, Profile: p})
}

func (o *Outbox) DeleteProfile(index int, id string) {
	o.enqueue(common.EventDeleteProfile, pb.DeletePayload{Index: index, ID: id})
}

func (o *Outbox) enqueue(name string, payload any) {
	select {
	case o.queue <- outboundEvent{name: name, payload: payload}:
	default:
		o.log.Warn(context.Background(), "outbox full, event dropped", "event", name)
	}
}

// Run sends queued events until ctx is cancelled. Events still queued at
// that point are discarded.
func (o *Outbox) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-o.queue:
			o.send(ctx, ev)
		}
	}
}

func (o *Outbox) send(ctx context.Context, ev outboundEvent) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	if err := o.sender.Emit(ctx, ev.name, ev.payload); err != nil {
		o.log.Warn(ctx, "event not delivered", "event", ev.name, "error", err)
		return
	}
	o.log.Debug(ctx, "event sent", "event", ev.name)
}
