package core

import (
	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/lumen/engine/containers"
)

// Default number of normal priority deliveries per frame tick.
const DEFAULT_MESSAGES_PER_UPDATE = 10

type subscriptionNode struct {
	message Message
	handler MessageHandler
}

// MessageBus routes messages to the handlers subscribed to their code.
// High priority messages are delivered immediately, normal priority ones are
// queued and handed out a bounded number at a time by Drain.
//
// The bus is not safe for concurrent use: it belongs to the frame goroutine.
type MessageBus struct {
	// Lookup table for message codes.
	subscriptions     map[string][]MessageHandler
	normalQueue       *containers.RingQueue[subscriptionNode]
	messagesPerUpdate int
}

func NewMessageBus(messagesPerUpdate int) *MessageBus {
	if messagesPerUpdate <= 0 {
		messagesPerUpdate = DEFAULT_MESSAGES_PER_UPDATE
	}
	return &MessageBus{
		subscriptions:     make(map[string][]MessageHandler),
		normalQueue:       containers.NewRingQueue[subscriptionNode](64),
		messagesPerUpdate: messagesPerUpdate,
	}
}

// Subscribe registers handler for code. A handler already registered for the
// code is not added again and Subscribe returns false.
func (mb *MessageBus) Subscribe(code string, handler MessageHandler) bool {
	handlers := mb.subscriptions[code]
	if slices.Contains(handlers, handler) {
		LogWarn("attempting to add a duplicate handler to code '%s'. Subscription not added.", code)
		return false
	}
	mb.subscriptions[code] = append(handlers, handler)
	return true
}

// Unsubscribe removes handler from code. Returns false, with a warning, when
// nothing matched.
func (mb *MessageBus) Unsubscribe(code string, handler MessageHandler) bool {
	handlers, ok := mb.subscriptions[code]
	if !ok {
		LogWarn("the code '%s' has no subscriptions registered. Cannot unsubscribe handler.", code)
		return false
	}

	i := slices.Index(handlers, handler)
	if i == -1 {
		LogWarn("attempting to remove a handler that doesn't exist from code '%s'.", code)
		return false
	}

	// Copy on removal: a Publish iterating the old slice must not see it shift.
	handlers = slices.Delete(slices.Clone(handlers), i, i+1)
	if len(handlers) == 0 {
		delete(mb.subscriptions, code)
		return true
	}
	mb.subscriptions[code] = handlers
	return true
}

// HasSubscription reports whether handler is registered for code.
func (mb *MessageBus) HasSubscription(code string, handler MessageHandler) bool {
	return slices.Contains(mb.subscriptions[code], handler)
}

// Publish hands message to every handler of its code. Messages without
// subscribers are dropped.
func (mb *MessageBus) Publish(message Message) {
	handlers, ok := mb.subscriptions[message.Code()]
	if !ok {
		return
	}

	LogDebug("message '%s' (%s) posted with %s priority to %d handler(s)", message.Code(), message.ID(), message.Priority(), len(handlers))

	for _, h := range handlers {
		if message.Priority() == MessagePriorityHigh {
			h.OnMessage(message)
			continue
		}
		mb.normalQueue.Enqueue(subscriptionNode{
			message: message,
			handler: h,
		})
	}
}

// Send publishes a normal priority message.
func (mb *MessageBus) Send(code string, sender interface{}, context interface{}) {
	mb.Publish(NewMessage(code, sender, context, MessagePriorityNormal))
}

// SendPriority publishes a high priority message.
func (mb *MessageBus) SendPriority(code string, sender interface{}, context interface{}) {
	mb.Publish(NewMessage(code, sender, context, MessagePriorityHigh))
}

// Drain delivers up to budget queued messages in the order they were
// enqueued and returns how many were delivered. Messages queued by handlers
// during the call wait for the next one.
func (mb *MessageBus) Drain(budget int) int {
	limit := min(mb.normalQueue.Len(), budget)

	delivered := 0
	for ; delivered < limit; delivered++ {
		node, err := mb.normalQueue.Dequeue()
		if err != nil {
			break
		}
		node.handler.OnMessage(node.message)
	}
	return delivered
}

// Update drains the queue with the configured per-frame budget. Should happen
// once an update cycle.
func (mb *MessageBus) Update() int {
	return mb.Drain(mb.messagesPerUpdate)
}

// Pending returns the number of queued deliveries.
func (mb *MessageBus) Pending() int {
	return mb.normalQueue.Len()
}

func (mb *MessageBus) Shutdown() error {
	// Free the subscription arrays. Handlers are destroyed by their owners.
	clear(mb.subscriptions)
	mb.normalQueue.Clear()
	return nil
}
