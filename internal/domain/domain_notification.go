package domain

// Notification 通知，Payload 为展示用的原始字段，核心逻辑不解析
type Notification struct {
	ID      ID
	Read    bool
	Payload map[string]any
}

func (n *Notification) IsUnread() bool {
	return !n.Read
}

// Title returns the first non-empty display field of the payload
func (n *Notification) Title() string {
	for _, k := range []string{"title", "message", "text", "body"} {
		if s, ok := n.Payload[k].(string); ok && s != "" {
			return s
		}
	}
	return string(n.ID)
}

// CountUnread 统计未读数量，每次重新计算
func CountUnread(list []*Notification) int {
	n := 0
	for _, item := range list {
		if item != nil && item.IsUnread() {
			n++
		}
	}
	return n
}

// Clone copies the notification; payload values are shared
func (n *Notification) Clone() *Notification {
	c := *n
	if n.Payload != nil {
		c.Payload = make(map[string]any, len(n.Payload))
		for k, v := range n.Payload {
			c.Payload[k] = v
		}
	}
	return &c
}
