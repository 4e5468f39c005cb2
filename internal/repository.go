package internal

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ChargeCollection = "charges"

var _ ChargeStore = (*ChargeRepository)(nil)

// ChargeRepository keeps a record of every successful charge so the
// payments-summary endpoint can aggregate them. It is not part of the
// transaction pipeline and never blocks a payment.
type ChargeRepository struct {
	coll *mongo.Collection
}

func NewChargeRepository(db *mongo.Database) *ChargeRepository {
	return &ChargeRepository{
		coll: db.Collection(ChargeCollection),
	}
}

func (r *ChargeRepository) Add(ctx context.Context, customer CustomerData, charge Charge) error {
	_, err := r.coll.InsertOne(ctx, ChargeRecord{
		ChargeID:  charge.ID,
		Name:      customer.Name,
		Amount:    charge.Amount,
		Status:    charge.Status,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		slog.Error("failed to save the charge record", "err", err, "chargeId", charge.ID)
	}

	return err
}

func (r *ChargeRepository) Summary(ctx context.Context, fromStr, toStr string) (SummaryResponse, error) {
	filter := bson.M{}
	if fromStr != "" && toStr != "" {
		from, errFrom := time.Parse(time.RFC3339Nano, fromStr)
		to, errTo := time.Parse(time.RFC3339Nano, toStr)
		if errFrom != nil || errTo != nil {
			slog.Error("failed to parse the summary range", "from", fromStr, "to", toStr)
		} else {
			filter["createdAt"] = bson.M{"$gte": from, "$lte": to}
		}
	}

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		slog.Error("failed to query the charge records", "err", err)
		return SummaryResponse{}, err
	}
	defer cur.Close(ctx)

	var summary SummaryResponse
	for cur.Next(ctx) {
		var record ChargeRecord
		if err := cur.Decode(&record); err != nil {
			slog.Error("failed to decode a charge record", "err", err)
			return SummaryResponse{}, err
		}

		summary.TotalRequests++
		summary.TotalAmount += record.Amount
	}
	if err := cur.Err(); err != nil {
		return SummaryResponse{}, err
	}

	return summary, nil
}

func (r *ChargeRepository) Purge(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		slog.Error("failed to purge the charge records", "err", err)
	}

	return err
}
