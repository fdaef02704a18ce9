// Package kafkachat bridges the dialogue engine to a Kafka chat transport:
// user messages arrive on an inbound topic, replies go out on an outbound
// topic keyed by user id. One consumer loop serializes turns, so a user's
// state transitions are never interleaved.
package kafkachat

// InboundMessage is one user utterance from the inbound topic.
type InboundMessage struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

// OutboundMessage is one bot reply for the outbound topic.
type OutboundMessage struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}
