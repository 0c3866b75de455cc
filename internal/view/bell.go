package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/internal/service"
	"github.com/haierkeys/portfolio-dash/pkg/dismiss"
)

// Bell 通知铃铛
type Bell struct {
	toggle
	store *service.NotificationStore
}

// NewBell attaches the bell to doc; pointer-downs outside region close it
func NewBell(store *service.NotificationStore, doc *dismiss.Document, region dismiss.Region) *Bell {
	b := &Bell{store: store}
	b.attach(doc, region)
	return b
}

// Mount reopens the store and loads it from the server
func (b *Bell) Mount(ctx context.Context) {
	b.store.Open()
	b.store.FetchAll(ctx)
}

func (b *Bell) Unmount() {
	b.detach()
	b.store.Close()
}

// Badge is empty when nothing is unread
func (b *Bell) Badge() string {
	n := b.store.UnreadCount()
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func (b *Bell) MarkRead(ctx context.Context, id domain.ID) error {
	return b.store.MarkRead(ctx, id)
}

func (b *Bell) MarkAllRead(ctx context.Context) error {
	return b.store.MarkAllRead(ctx)
}

// Render 渲染铃铛，打开时附带通知列表
func (b *Bell) Render() string {
	var sb strings.Builder
	sb.WriteString("🔔")
	if badge := b.Badge(); badge != "" {
		fmt.Fprintf(&sb, " **%s**", badge)
	}
	sb.WriteString("\n")
	if !b.IsOpen() {
		return sb.String()
	}

	sb.WriteString("\n")
	list := b.store.Notifications()
	if len(list) == 0 {
		sb.WriteString("_No notifications._\n")
		return sb.String()
	}
	for _, n := range list {
		mark := " "
		if n.Read {
			mark = "x"
		}
		fmt.Fprintf(&sb, "- [%s] `%s` %s\n", mark, n.ID, n.Title())
	}
	return sb.String()
}
