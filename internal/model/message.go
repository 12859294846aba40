package model

import (
	"encoding/json"
	"time"
)

// EventMessage là cấu trúc dữ liệu sự kiện gửi tới Kafka.
// Phản chiếu đúng bản ghi đã lưu để consumer có thể insert lại an toàn.
type EventMessage struct {
	ID          string          `json:"id"`
	Org         string          `json:"org"`
	Repo        string          `json:"repo"`
	Username    string          `json:"username"`
	Avatar      string          `json:"avatar"`
	Type        string          `json:"type"`
	CreatedAt   time.Time       `json:"created_at"`
	Data        json.RawMessage `json:"data"`
	IsSensitive bool            `json:"is_sensitive"`
}

// NewEventMessage chuyển một bản ghi Event thành message Kafka
func NewEventMessage(event Event) EventMessage {
	return EventMessage{
		ID:          event.ID,
		Org:         event.Org,
		Repo:        event.Repo,
		Username:    event.Username,
		Avatar:      event.Avatar,
		Type:        event.Type,
		CreatedAt:   event.CreatedAt,
		Data:        json.RawMessage(event.Data),
		IsSensitive: event.IsSensitive,
	}
}

// ToEvent chuyển một message Kafka ngược lại thành bản ghi Event
func (m EventMessage) ToEvent() Event {
	return Event{
		ID:          m.ID,
		Org:         m.Org,
		Repo:        m.Repo,
		Username:    m.Username,
		Avatar:      m.Avatar,
		Type:        m.Type,
		CreatedAt:   m.CreatedAt,
		Data:        string(m.Data),
		IsSensitive: m.IsSensitive,
	}
}
