package service

import "time"

// AuditFilter supports audit history filtering by time range.
type AuditFilter struct {
	From  time.Time // inclusive; zero means no lower bound
	To    time.Time // inclusive; zero means no upper bound
	Limit int       // <= 0 uses the repository default
}

// PreferenceUpdate carries a partial preference change; nil fields are
// left as they are.
type PreferenceUpdate struct {
	SoundEnabled         *bool
	NotificationsEnabled *bool
}
