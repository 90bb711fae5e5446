// Package notify raises desktop notifications for long-running pipeline
// tasks, falling back to the console when the desktop cannot be reached.
package notify

import (
	"fmt"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/icarus-vfx/icshared/pkg/config"
	"github.com/icarus-vfx/icshared/pkg/errors"
	"github.com/icarus-vfx/icshared/pkg/logging"
)

// Notifier delivers a short message to the user.
type Notifier interface {
	Notify(title, message string) error
}

// Messenger is the part of logging.Reporter the fallback needs.
type Messenger interface {
	Message(msg string)
}

// New picks the notifier for the given settings. The reporter receives the
// message whenever the desktop route is disabled or fails.
func New(s *config.Settings, reporter Messenger) Notifier {
	fallback := Fallback{Reporter: reporter}
	if !s.Notifications {
		return fallback
	}
	return &Desktop{
		Icon:     s.AppIcon,
		Timeout:  s.NotificationsTimeout,
		Fallback: fallback,
		send:     sendDesktop,
	}
}

// Fallback writes notifications through the reporter.
type Fallback struct {
	Reporter Messenger
}

// Notify implements Notifier.
func (f Fallback) Notify(title, message string) error {
	if f.Reporter == nil {
		return nil
	}
	if title == "" {
		f.Reporter.Message(message)
		return nil
	}
	f.Reporter.Message(fmt.Sprintf("%s: %s", title, message))
	return nil
}

// Desktop sends notifications through the platform notification service.
type Desktop struct {
	Icon     string
	Timeout  time.Duration
	Fallback Fallback

	send func(title, message, icon string) error
}

func sendDesktop(title, message, icon string) error {
	return beeep.Notify(title, message, icon)
}

// Notify implements Notifier. If the desktop service errors or does not
// answer within Timeout, the message goes to the fallback and the delivery
// error is returned for the caller to log.
func (d *Desktop) Notify(title, message string) error {
	err := d.deliver(title, message)
	if err == nil {
		return nil
	}
	_ = d.Fallback.Notify(title, message)
	return errors.Wrap(err, errors.ErrEnvironment, "desktop notification failed")
}

func (d *Desktop) deliver(title, message string) error {
	if d.send == nil {
		return errors.New(errors.ErrEnvironment, "no notification backend")
	}
	if d.Timeout <= 0 {
		return d.send(title, message, d.Icon)
	}

	done := make(chan error, 1)
	go func() {
		done <- d.send(title, message, d.Icon)
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(d.Timeout):
		return errors.Newf(errors.ErrEnvironment, "no answer from notification service after %s", d.Timeout)
	}
}

var _ logging.Notifier = (*Desktop)(nil)
var _ logging.Notifier = Fallback{}
