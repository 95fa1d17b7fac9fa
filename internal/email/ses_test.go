package email

import (
	"context"
	"errors"
	"testing"

	"github.com/codr1/canchas/internal/config"
)

func TestNewSESClientValidation(t *testing.T) {
	full := config.EmailConfig{
		Enabled:         true,
		Region:          "us-east-1",
		Sender:          "reservas@canchas.example",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
	}

	tests := []struct {
		name    string
		mutate  func(*config.EmailConfig)
		wantErr error
	}{
		{name: "missing key", mutate: func(c *config.EmailConfig) { c.AccessKeyID = "" }, wantErr: ErrMissingCredentials},
		{name: "missing secret", mutate: func(c *config.EmailConfig) { c.SecretAccessKey = "" }, wantErr: ErrMissingCredentials},
		{name: "missing region", mutate: func(c *config.EmailConfig) { c.Region = "" }, wantErr: ErrMissingCredentials},
		{name: "blank sender", mutate: func(c *config.EmailConfig) { c.Sender = "  " }, wantErr: ErrMissingSender},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := full
			tc.mutate(&cfg)
			if _, err := NewSESClient(context.Background(), cfg); !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}

	client, err := NewSESClient(context.Background(), full)
	if err != nil {
		t.Fatalf("NewSESClient: %v", err)
	}
	if client.from != "reservas@canchas.example" {
		t.Fatalf("from = %q", client.from)
	}
	if err := client.Send(context.Background(), "", "asunto", "cuerpo"); !errors.Is(err, ErrMissingRecipient) {
		t.Fatalf("Send without recipient err = %v", err)
	}
}
