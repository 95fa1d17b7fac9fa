package email

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

type sentMessage struct {
	recipient string
	subject   string
	body      string
	ctxErr    error
}

type fakeEmailSender struct {
	mu    sync.Mutex
	sent  []sentMessage
	err   error
	delay time.Duration
}

func (f *fakeEmailSender) Send(ctx context.Context, recipient, subject, body string) error {
	if f.delay > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(f.delay):
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{recipient: recipient, subject: subject, body: body, ctxErr: ctx.Err()})
	return f.err
}

func (f *fakeEmailSender) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

func TestSendAsyncOutlivesRequestContext(t *testing.T) {
	sender := &fakeEmailSender{delay: 20 * time.Millisecond}
	notifier := NewNotifier(sender)

	ctx, cancel := context.WithCancel(context.Background())
	notifier.SendAsync(ctx, KindConfirmation, " ana@example.com ", Message{Subject: "Asunto", Body: "Cuerpo"})
	cancel()
	notifier.Wait()

	sent := sender.messages()
	if len(sent) != 1 {
		t.Fatalf("expected one message, got %d", len(sent))
	}
	if sent[0].recipient != "ana@example.com" {
		t.Fatalf("unexpected recipient %q", sent[0].recipient)
	}
	if sent[0].ctxErr != nil {
		t.Fatalf("send context should not be canceled, got %v", sent[0].ctxErr)
	}
}

func TestSendSkipsIncompleteMessages(t *testing.T) {
	sender := &fakeEmailSender{}
	notifier := NewNotifier(sender)
	ctx := context.Background()

	_ = notifier.Send(ctx, KindReminder, "", Message{Subject: "s", Body: "b"})
	_ = notifier.Send(ctx, KindReminder, "ana@example.com", Message{Subject: "s"})

	if n := len(sender.messages()); n != 0 {
		t.Fatalf("expected nothing sent, got %d", n)
	}
}

func TestSendReturnsSenderError(t *testing.T) {
	boom := errors.New("ses down")
	notifier := NewNotifier(&fakeEmailSender{err: boom})

	err := notifier.Send(context.Background(), KindCancellation, "ana@example.com", Message{Subject: "s", Body: "b"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected sender error, got %v", err)
	}
}

func TestDisabledNotifier(t *testing.T) {
	var nilNotifier *Notifier
	if nilNotifier.Enabled() || NewNotifier(nil).Enabled() {
		t.Fatal("expected disabled notifiers")
	}
	nilNotifier.SendAsync(context.Background(), KindConfirmation, "ana@example.com", Message{Subject: "s", Body: "b"})
	nilNotifier.Wait()
	if err := NewNotifier(nil).Send(context.Background(), KindConfirmation, "ana@example.com", Message{Subject: "s", Body: "b"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestBuildMessages(t *testing.T) {
	details := ReservaDetails{
		Username:     "ana",
		CanchaNombre: "Cancha Central",
		Fecha:        "2030-05-11",
		Inicio:       "10:00",
		Fin:          "11:30",
	}

	tests := []struct {
		name    string
		msg     Message
		subject string
		line    string
	}{
		{name: "confirmation", msg: BuildConfirmation(details), subject: "Reserva confirmada - Cancha Central", line: "Tu reserva está confirmada."},
		{name: "cancellation", msg: BuildCancellation(details), subject: "Reserva cancelada - Cancha Central", line: "Tu reserva fue cancelada."},
		{name: "reminder", msg: BuildReminder(details), subject: "Recordatorio de reserva - Cancha Central", line: "tienes una reserva"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.msg.Subject != tt.subject {
				t.Fatalf("subject = %q, want %q", tt.msg.Subject, tt.subject)
			}
			for _, want := range []string{"Hola ana,", tt.line, "sábado 11 de mayo de 2030", "Horario: 10:00 - 11:30"} {
				if !strings.Contains(tt.msg.Body, want) {
					t.Fatalf("body missing %q:\n%s", want, tt.msg.Body)
				}
			}
		})
	}
}

func TestFormatFecha(t *testing.T) {
	if got := FormatFecha("2030-01-01"); got != "martes 1 de enero de 2030" {
		t.Fatalf("unexpected date %q", got)
	}
	if got := FormatFecha("mañana"); got != "mañana" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}
