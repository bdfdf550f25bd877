// internal/models/notification.go
package models

// EmailMessage is the notification boundary's request: one destination,
// one subject, and both rendered bodies.
type EmailMessage struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}
