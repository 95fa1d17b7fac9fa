package email

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/canchas/internal/metrics"
)

const sendTimeout = 10 * time.Second

// Email kinds, used for logs and metrics.
const (
	KindConfirmation = "confirmation"
	KindCancellation = "cancellation"
	KindReminder     = "reminder"
)

// EmailSender delivers one plain text message. SESClient is the production
// implementation.
type EmailSender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// Notifier delivers reservation emails. A nil Notifier, or one without a
// sender, drops every message.
type Notifier struct {
	sender EmailSender
	wg     sync.WaitGroup
}

func NewNotifier(sender EmailSender) *Notifier {
	return &Notifier{sender: sender}
}

// Enabled reports whether messages are actually delivered.
func (n *Notifier) Enabled() bool {
	return n != nil && n.sender != nil
}

// Send delivers msg and waits for the result.
func (n *Notifier) Send(ctx context.Context, kind, recipient string, msg Message) error {
	if !n.Enabled() {
		return nil
	}
	recipient = strings.TrimSpace(recipient)
	if recipient == "" || msg.Subject == "" || msg.Body == "" {
		return nil
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	err := n.sender.Send(sendCtx, recipient, msg.Subject, msg.Body)
	metrics.RecordEmail(kind, err == nil)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("kind", kind).Str("recipient", recipient).Msg("Failed to send email")
		return err
	}
	log.Ctx(ctx).Debug().Str("kind", kind).Str("recipient", recipient).Msg("Email sent")
	return nil
}

// SendAsync delivers msg in the background. The send keeps ctx's values but
// not its cancellation, so it survives the request that triggered it.
func (n *Notifier) SendAsync(ctx context.Context, kind, recipient string, msg Message) {
	if !n.Enabled() {
		return
	}
	detached := context.WithoutCancel(ctx)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		_ = n.Send(detached, kind, recipient, msg)
	}()
}

// Wait blocks until every SendAsync call has finished.
func (n *Notifier) Wait() {
	if n == nil {
		return
	}
	n.wg.Wait()
}
