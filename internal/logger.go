package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/redis/go-redis/v9"
)

var TransactionLogKey = "transactions"

// TransactionLog appends two lines per transaction to an append-only store:
// "<name> paid <amount>" and "Payment status: <status>". A record is only
// written once a charge was obtained from the provider.
type TransactionLog interface {
	Log(ctx context.Context, customer CustomerData, payment PaymentData, charge Charge) error
}

func transactionLines(customer CustomerData, payment PaymentData, charge Charge) (string, string) {
	return fmt.Sprintf("%s paid %d", customer.Name, payment.Amount),
		fmt.Sprintf("Payment status: %s", charge.Status)
}

// FileTransactionLog appends transaction records to a text file. The file
// handle is acquired per call and closed on every exit path. The mutex is
// the exclusive-write discipline a concurrent host needs around the file;
// the pipeline itself is a single writer.
type FileTransactionLog struct {
	mu   sync.Mutex
	path string
}

func NewFileTransactionLog(path string) *FileTransactionLog {
	return &FileTransactionLog{path: path}
}

func (l *FileTransactionLog) Log(_ context.Context, customer CustomerData, payment PaymentData, charge Charge) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open the transaction log: %w", err)
	}

	paid, status := transactionLines(customer, payment, charge)
	if _, err := io.WriteString(f, paid+"\n"+status+"\n"); err != nil {
		f.Close()
		return fmt.Errorf("failed to append the transaction: %w", err)
	}

	return f.Close()
}

// Purge truncates the log file. A log that was never written to is
// already empty.
func (l *FileTransactionLog) Purge(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.Truncate(l.path, 0); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

// RedisTransactionLog appends the same two-line records to a redis list,
// for hosts that want the log shared across instances. Redis executes
// commands serially, so no extra write discipline is needed.
type RedisTransactionLog struct {
	db  *redis.Client
	key string
}

func NewRedisTransactionLog(db *redis.Client) *RedisTransactionLog {
	return &RedisTransactionLog{
		db:  db,
		key: TransactionLogKey,
	}
}

func (l *RedisTransactionLog) Log(ctx context.Context, customer CustomerData, payment PaymentData, charge Charge) error {
	paid, status := transactionLines(customer, payment, charge)

	err := l.db.RPush(ctx, l.key, paid, status).Err()
	if err != nil {
		slog.Error("failed to append the transaction to redis", "err", err)
	}

	return err
}

func (l *RedisTransactionLog) Purge(ctx context.Context) error {
	err := l.db.Del(ctx, l.key).Err()
	if err != nil {
		slog.Error("failed to purge the transaction log", "err", err)
	}

	return err
}
