package notifier

import (
	log "github.com/sirupsen/logrus"
)

// Notifier delivers a jobseeker's application message to the vacancy poster.
// The system validates and acknowledges applications but leaves delivery to
// this collaborator; messages are never persisted.
type Notifier interface {
	Notify(subject, message string) error
}

// ConsoleNotifier logs the application instead of delivering it. Stands in
// until a real channel (email, push) exists.
type ConsoleNotifier struct{}

func NewConsole() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

func (n *ConsoleNotifier) Notify(subject, message string) error {
	log.WithField("subject", subject).Info(message)
	return nil
}
