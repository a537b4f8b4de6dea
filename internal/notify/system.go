package notify

import (
	"context"
	"strings"
	"sync"

	"envmonitor/internal/monitor"
)

// Permission mirrors the platform notification permission states.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"

	MessageNotification = "notification"
)

// ParsePermission maps a config value to a Permission; anything unknown is
// PermissionDefault, which does not allow delivery.
func ParsePermission(s string) Permission {
	switch p := Permission(strings.ToLower(strings.TrimSpace(s))); p {
	case PermissionGranted, PermissionDenied:
		return p
	default:
		return PermissionDefault
	}
}

// SystemNotification delivers a title/body notification to stream
// clients. Delivery requires PermissionGranted.
type SystemNotification struct {
	out Broadcaster

	mu         sync.RWMutex
	permission Permission
}

func NewSystemNotification(out Broadcaster, permission Permission) *SystemNotification {
	return &SystemNotification{out: out, permission: permission}
}

func (s *SystemNotification) Permission() Permission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.permission
}

func (s *SystemNotification) SetPermission(p Permission) {
	s.mu.Lock()
	s.permission = p
	s.mu.Unlock()
}

func (s *SystemNotification) Notify(ctx context.Context, n monitor.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.Permission() != PermissionGranted {
		return ErrPermissionDenied
	}
	if s.out == nil || s.out.Broadcast(MessageNotification, n) == 0 {
		return ErrNoListeners
	}
	return nil
}
