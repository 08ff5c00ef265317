package core

import "github.com/google/uuid"

// MessagePriority decides when a message reaches its subscribers.
type MessagePriority int

const (
	// Queued and delivered during a later frame tick.
	MessagePriorityNormal MessagePriority = iota
	// Delivered synchronously before Publish returns.
	MessagePriorityHigh
)

func (p MessagePriority) String() string {
	switch p {
	case MessagePriorityHigh:
		return "high"
	default:
		return "normal"
	}
}

// Message is an immutable event record routed by the MessageBus.
type Message struct {
	id       uuid.UUID
	code     string
	sender   interface{}
	context  interface{}
	priority MessagePriority
}

func NewMessage(code string, sender interface{}, context interface{}, priority MessagePriority) Message {
	return Message{
		id:       uuid.New(),
		code:     code,
		sender:   sender,
		context:  context,
		priority: priority,
	}
}

// ID identifies the message in the logs.
func (m Message) ID() uuid.UUID { return m.id }

// Code is the event identifier, possibly scoped as "BASE::qualifier".
func (m Message) Code() string { return m.code }

func (m Message) Sender() interface{} { return m.sender }

// Context is the optional payload, nil when absent.
func (m Message) Context() interface{} { return m.context }

func (m Message) Priority() MessagePriority { return m.priority }

// MessageHandler receives messages for the codes it subscribed to. Handlers
// are compared by identity, so implementations should be pointer types.
// OnMessage must contain its own failures: it is called with no recovery
// around it.
type MessageHandler interface {
	OnMessage(message Message)
}
