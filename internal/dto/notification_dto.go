package dto

import (
	"github.com/bytedance/sonic"
	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/pkg/errors"
)

// NotificationDTO Notification record. Fields other than id and read are
// kept verbatim in Payload.
// NotificationDTO 通知数据传输对象
type NotificationDTO struct {
	ID      domain.ID      `json:"id"`
	Read    bool           `json:"read"`
	Payload map[string]any `json:"-"`
}

func (n *NotificationDTO) UnmarshalJSON(b []byte) error {
	type wire NotificationDTO
	var w wire
	if err := sonic.Unmarshal(b, &w); err != nil {
		return errors.Wrap(err, "decode notification")
	}
	var raw map[string]any
	if err := sonic.Unmarshal(b, &raw); err != nil {
		return errors.Wrap(err, "decode notification payload")
	}
	delete(raw, "id")
	delete(raw, "read")

	*n = NotificationDTO(w)
	n.Payload = raw
	return nil
}

func (n NotificationDTO) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(n.Payload)+2)
	for k, v := range n.Payload {
		out[k] = v
	}
	out["id"] = n.ID
	out["read"] = n.Read
	return sonic.Marshal(out)
}

func (n *NotificationDTO) ToDomain() *domain.Notification {
	return &domain.Notification{ID: n.ID, Read: n.Read, Payload: n.Payload}
}

// NewNotificationDTO 领域模型转传输对象
func NewNotificationDTO(n *domain.Notification) *NotificationDTO {
	return &NotificationDTO{ID: n.ID, Read: n.Read, Payload: n.Payload}
}
