package service

import (
	"context"
	"encoding/json"
	"time"

	"sales-crm-be/internal/pkg/logger"
	"sales-crm-be/internal/pkg/mailer"
	"sales-crm-be/pkg/events"
	"sales-crm-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Broadcaster pushes a payload to every connected dashboard client.
type Broadcaster interface {
	Broadcast(payload []byte)
}

type INotifierService interface {
	Consume(ctx context.Context) error
}

// notifierService drains the in-process event bus and fans each event out to
// the websocket hub, the optional NATS bridge, and email where applicable.
type notifierService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	hub        Broadcaster
	natsBridge *nats.Publisher
	mailer     mailer.IEmailService
	reminderTo string
	log        logger.ILogger
}

func NewNotifierService(
	pubSub *gochannel.GoChannel,
	topicName string,
	hub Broadcaster,
	natsBridge *nats.Publisher,
	emailService mailer.IEmailService,
	reminderTo string,
	log logger.ILogger,
) INotifierService {
	return &notifierService{
		pubSub:     pubSub,
		topicName:  topicName,
		hub:        hub,
		natsBridge: natsBridge,
		mailer:     emailService,
		reminderTo: reminderTo,
		log:        log,
	}
}

func (n *notifierService) Consume(ctx context.Context) error {
	messages, err := n.pubSub.Subscribe(ctx, n.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			n.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (n *notifierService) processMessage(ctx context.Context, msg *message.Message) {
	var envelope eventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		n.log.Error("NotifierService", "Failed to unmarshal event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed payloads never become parseable on retry
		return
	}

	if n.hub != nil {
		n.hub.Broadcast(msg.Payload)
	}

	if n.natsBridge != nil {
		if err := n.natsBridge.Publish(ctx, events.BaseEvent{
			Type:       envelope.Type,
			Data:       envelope.Data,
			OccurredAt: envelope.OccurredAt,
		}); err != nil {
			n.log.Warn("NotifierService", "NATS bridge publish failed", map[string]interface{}{
				"event": envelope.Type,
				"error": err.Error(),
			})
		}
	}

	if envelope.Type == events.FollowUpScheduled {
		n.sendFollowUpReminder(envelope.Data)
	}

	msg.Ack()
}

func (n *notifierService) sendFollowUpReminder(data map[string]interface{}) {
	if n.mailer == nil || n.reminderTo == "" {
		return
	}

	company, _ := data["company"].(string)
	rawFollowUp, _ := data["follow_up"].(string)
	if rawFollowUp == "" {
		return
	}

	followUp, err := time.Parse(time.RFC3339, rawFollowUp)
	if err != nil {
		n.log.Warn("NotifierService", "Bad follow_up timestamp in event", map[string]interface{}{
			"follow_up": rawFollowUp,
			"error":     err.Error(),
		})
		return
	}

	go func() {
		if err := n.mailer.SendFollowUpReminder(n.reminderTo, company, followUp); err != nil {
			n.log.Warn("NotifierService", "Follow-up reminder mail failed", map[string]interface{}{
				"company": company,
				"error":   err.Error(),
			})
		}
	}()
}
