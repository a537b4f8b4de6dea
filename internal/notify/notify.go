// Package notify holds the concrete incident notifier channels.
package notify

import (
	"errors"

	"envmonitor/internal/monitor"
)

// Broadcaster fans a message out to live stream clients and reports how
// many received it.
type Broadcaster interface {
	Broadcast(msgType string, data any) int
}

var (
	ErrNoListeners      = errors.New("no stream clients connected")
	ErrPermissionDenied = errors.New("notification permission not granted")
)

var (
	_ monitor.Notifier = (*AudioCue)(nil)
	_ monitor.Notifier = (*SystemNotification)(nil)
	_ monitor.Notifier = (*MQTTNotifier)(nil)
)
