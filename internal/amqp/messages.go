package amqp

import (
	"encoding/json"
	"time"
)

// CollectionSavedMessage announces that the expense collection stored under
// Namespace/Key was replaced. Consumers read the blob from storage themselves.
type CollectionSavedMessage struct {
	Namespace  string    `json:"namespace"`
	Key        string    `json:"key"`
	Count      int       `json:"count"`
	TotalCents int64     `json:"total_cents"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewCollectionSavedMessage(namespace, key string, count int, totalCents int64) *CollectionSavedMessage {
	return &CollectionSavedMessage{
		Namespace:  namespace,
		Key:        key,
		Count:      count,
		TotalCents: totalCents,
		Timestamp:  time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *CollectionSavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// CollectionSavedMessageFromJSON creates a message from JSON bytes
func CollectionSavedMessageFromJSON(data []byte) (*CollectionSavedMessage, error) {
	var msg CollectionSavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
