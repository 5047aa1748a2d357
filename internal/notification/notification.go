// Package notification sends desktop notifications through beeep, which
// picks the platform mechanism (notify-send or D-Bus, osascript, toast).
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/zhubert/sidepanel/internal/logger"
)

// AppName titles every notification.
const AppName = "Side Panel"

var notifier = beeep.Notify

// SetNotifier swaps the delivery function. Tests only.
func SetNotifier(fn func(title, message string, icon any) error) {
	notifier = fn
}

// ResetNotifier restores beeep delivery.
func ResetNotifier() {
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	log := logger.WithComponent("notification")
	log.Debug("sending notification", "title", title)
	err := notifier(title, message, "")
	if err != nil {
		log.Warn("notification failed", "error", err)
	}
	return err
}

// TaskCompleted announces that the task for a chat has finished.
func TaskCompleted(chatTitle string) error {
	if chatTitle == "" {
		chatTitle = "Your task"
	}
	return Send(AppName, chatTitle+" is done")
}

// TaskStopped announces that a task was stopped before finishing.
func TaskStopped(chatTitle string) error {
	if chatTitle == "" {
		chatTitle = "Your task"
	}
	return Send(AppName, chatTitle+" was stopped")
}
