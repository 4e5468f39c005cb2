package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"payment-service/internal"

	"github.com/urfave/cli/v2"
)

// The demo walks the pipeline through three scenarios against a configured
// provider: an email customer, a phone customer, and a token the provider
// declines.
func main() {
	app := &cli.App{
		Name:  "payment-demo",
		Usage: "run a few transactions through the payment pipeline",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "provider-url",
				Usage:   "base URL of the payment provider",
				Value:   "https://api.stripe.com",
				EnvVars: []string{"PAYMENT_PROVIDER_URL"},
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "provider API key",
				EnvVars: []string{"PAYMENT_API_KEY"},
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "path of the transaction log",
				Value: "transactions.log",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("demo failed", "err", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	ctx := context.Background()

	processor := internal.NewHTTPPaymentProcessor(
		&http.Client{Timeout: 30 * time.Second},
		internal.ProcessorConfig{
			BaseURL: c.String("provider-url"),
			APIKey:  c.String("api-key"),
		},
	)
	notifier := internal.NewNotifier(
		internal.NewWriterTransport(os.Stdout, "email"),
		internal.NewWriterTransport(os.Stdout, "sms"),
	)
	service := internal.NewPaymentService(
		processor,
		notifier,
		internal.NewFileTransactionLog(c.String("log-file")),
	)

	withEmail := internal.CustomerData{
		Name:        "John Doe",
		ContactInfo: internal.ContactInfo{Email: "e@mail.com"},
	}
	withPhone := internal.CustomerData{
		Name:        "Platzi Python",
		ContactInfo: internal.ContactInfo{Phone: "1234567890"},
	}

	payment := internal.PaymentData{Amount: 500, Source: "tok_mastercard"}

	charge, err := service.ProcessTransaction(ctx, withEmail, payment)
	if err != nil {
		return err
	}
	fmt.Printf("charge %s: %s\n", charge.ID, charge.Status)

	charge, err = service.ProcessTransaction(ctx, withPhone, payment)
	if err != nil {
		return err
	}
	fmt.Printf("charge %s: %s\n", charge.ID, charge.Status)

	blocked := internal.PaymentData{Amount: 700, Source: "tok_radarBlock"}
	if _, err := service.ProcessTransaction(ctx, withEmail, blocked); err != nil {
		fmt.Printf("expected failure: %v\n", err)
	}

	return nil
}
