package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testProvider succeeds for every token except tok_radarBlock, which it
// rejects the way a fraud block does.
func testProvider(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		require.NoError(t, r.ParseForm())

		w.Header().Set("Content-Type", "application/json")
		if r.PostForm.Get("source") == "tok_radarBlock" {
			w.WriteHeader(http.StatusPaymentRequired)
			w.Write([]byte(`{"error":{"type":"card_error","code":"token_blocked","message":"The token was blocked."}}`))
			return
		}

		w.Write([]byte(`{"id":"ch_1","status":"succeeded","amount":` + r.PostForm.Get("amount") + `,"currency":"usd"}`))
	}))
}

type serviceFixture struct {
	service *PaymentService
	email   *fakeTransport
	sms     *fakeTransport
	logPath string
	hits    *atomic.Int64
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	hits := &atomic.Int64{}
	srv := testProvider(t, hits)
	t.Cleanup(srv.Close)

	f := &serviceFixture{
		email:   &fakeTransport{},
		sms:     &fakeTransport{},
		logPath: filepath.Join(t.TempDir(), "transactions.log"),
		hits:    hits,
	}

	processor := NewHTTPPaymentProcessor(srv.Client(), ProcessorConfig{
		BaseURL: srv.URL,
		APIKey:  "sk_test_123",
	})
	f.service = NewPaymentService(
		processor,
		NewNotifier(f.email, f.sms),
		NewFileTransactionLog(f.logPath),
	)

	return f
}

func TestPaymentServiceEmailCustomer(t *testing.T) {
	f := newServiceFixture(t)

	customer := CustomerData{
		Name:        "John Doe",
		ContactInfo: ContactInfo{Email: "e@mail.com"},
	}
	payment := PaymentData{Amount: 500, Source: "tok_mastercard"}

	charge, err := f.service.ProcessTransaction(context.Background(), customer, payment)
	require.NoError(t, err)

	assert.Equal(t, "succeeded", charge.Status)
	assert.Equal(t, int64(500), charge.Amount)

	require.Len(t, f.email.sent, 1)
	assert.Empty(t, f.sms.sent)
	assert.Equal(t, "e@mail.com", f.email.sent[0].destination)

	lines := readLogLines(t, f.logPath)
	require.Len(t, lines, 2)
	assert.Equal(t, "John Doe paid 500", lines[0])
	assert.Equal(t, "Payment status: succeeded", lines[1])
}

func TestPaymentServicePhoneCustomer(t *testing.T) {
	f := newServiceFixture(t)

	customer := CustomerData{
		Name:        "Platzi Python",
		ContactInfo: ContactInfo{Phone: "1234567890"},
	}
	payment := PaymentData{Amount: 500, Source: "tok_mastercard"}

	charge, err := f.service.ProcessTransaction(context.Background(), customer, payment)
	require.NoError(t, err)
	assert.Equal(t, "succeeded", charge.Status)

	require.Len(t, f.sms.sent, 1)
	assert.Empty(t, f.email.sent)
	assert.Equal(t, "1234567890", f.sms.sent[0].destination)

	lines := readLogLines(t, f.logPath)
	require.Len(t, lines, 2)
	assert.Equal(t, "Platzi Python paid 500", lines[0])
}

func TestPaymentServiceDeclinedCharge(t *testing.T) {
	f := newServiceFixture(t)

	customer := CustomerData{
		Name:        "John Doe",
		ContactInfo: ContactInfo{Email: "e@mail.com"},
	}
	payment := PaymentData{Amount: 700, Source: "tok_radarBlock"}

	_, err := f.service.ProcessTransaction(context.Background(), customer, payment)

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)

	// A failed charge produces neither a notification nor a log record.
	assert.Empty(t, f.email.sent)
	assert.Empty(t, f.sms.sent)
	_, statErr := os.Stat(f.logPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPaymentServiceValidationStopsThePipeline(t *testing.T) {
	f := newServiceFixture(t)

	tests := []struct {
		name     string
		customer CustomerData
		payment  PaymentData
		want     error
	}{
		{
			name:     "missing name",
			customer: CustomerData{ContactInfo: ContactInfo{Email: "e@mail.com"}},
			payment:  PaymentData{Amount: 500, Source: "tok_mastercard"},
			want:     ErrMissingName,
		},
		{
			name:     "missing contact info",
			customer: CustomerData{Name: "John Doe"},
			payment:  PaymentData{Amount: 500, Source: "tok_mastercard"},
			want:     ErrMissingContactInfo,
		},
		{
			name: "missing source",
			customer: CustomerData{
				Name:        "John Doe",
				ContactInfo: ContactInfo{Email: "e@mail.com"},
			},
			payment: PaymentData{Amount: 500},
			want:    ErrInvalidPaymentData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.ProcessTransaction(context.Background(), tt.customer, tt.payment)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	// The provider is never reached when validation fails.
	assert.Equal(t, int64(0), f.hits.Load())
	assert.Empty(t, f.email.sent)
	assert.Empty(t, f.sms.sent)
	_, statErr := os.Stat(f.logPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPaymentServiceNotificationFailureAbortsBeforeLogging(t *testing.T) {
	f := newServiceFixture(t)
	f.email.err = assert.AnError

	customer := CustomerData{
		Name:        "John Doe",
		ContactInfo: ContactInfo{Email: "e@mail.com"},
	}
	payment := PaymentData{Amount: 500, Source: "tok_mastercard"}

	_, err := f.service.ProcessTransaction(context.Background(), customer, payment)
	require.ErrorIs(t, err, assert.AnError)

	// The charge was created at the provider and is not rolled back, but
	// the log step never ran.
	assert.Equal(t, int64(1), f.hits.Load())
	_, statErr := os.Stat(f.logPath)
	assert.True(t, os.IsNotExist(statErr))
}
