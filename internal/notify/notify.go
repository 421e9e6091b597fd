package notify

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Urgency levels for notifications
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
}

// Notifier handles sending desktop notifications
type Notifier struct {
	enabled bool
	run     func(name string, args ...string) error
}

// NewNotifier creates a notifier backed by notify-send
func NewNotifier() *Notifier {
	return &Notifier{
		enabled: true,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// SetEnabled enables or disables notifications
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// IsEnabled returns whether notifications are enabled
func (n *Notifier) IsEnabled() bool {
	return n.enabled
}

// Args returns the notify-send arguments for notification.
func Args(notification Notification) []string {
	args := []string{}

	switch notification.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	// milliseconds
	if notification.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(notification.Timeout.Milliseconds())))
	}

	if notification.Icon != "" {
		args = append(args, "-i", notification.Icon)
	}

	args = append(args, "-a", "bloc")

	args = append(args, notification.Title)
	if notification.Body != "" {
		args = append(args, notification.Body)
	}
	return args
}

// Send sends a desktop notification using notify-send
func (n *Notifier) Send(notification Notification) error {
	if !n.enabled {
		return nil
	}
	return n.run("notify-send", Args(notification)...)
}

// overdueListed is how many titles fit in the summary body
const overdueListed = 3

// SendOverdueSummary sends one notification covering every overdue task.
// Nothing is sent for an empty list.
func (n *Notifier) SendOverdueSummary(titles []string) error {
	if len(titles) == 0 {
		return nil
	}

	title := fmt.Sprintf("%d tasks overdue", len(titles))
	var body strings.Builder
	if len(titles) == 1 {
		title = "Task overdue"
		body.WriteString(titles[0])
	} else {
		for i, t := range titles {
			if i == overdueListed {
				fmt.Fprintf(&body, "and %d more", len(titles)-overdueListed)
				break
			}
			body.WriteString("• " + t + "\n")
		}
	}

	return n.Send(Notification{
		Title:   title,
		Body:    body.String(),
		Urgency: UrgencyCritical,
		Timeout: 15 * time.Second,
		Icon:    "emblem-important-symbolic",
	})
}
