package outbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"doctor-booking/internal/domain/event"
	"doctor-booking/internal/domain/notification"
	"doctor-booking/internal/infra"
	"doctor-booking/internal/pkg/config"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, func(), error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.Timeout))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			slog.Warn("failed to disconnect mongo client", "error", err)
		}
	}
	return client, cleanup, nil
}

// recordDoc is the stored shape of a notification outbox row.
type recordDoc struct {
	ID         string         `bson:"_id"`
	EventType  string         `bson:"eventType"`
	EntityID   string         `bson:"entityId"`
	UserID     string         `bson:"userId"`
	DoctorID   string         `bson:"doctorId"`
	Payload    map[string]any `bson:"payload"`
	Status     string         `bson:"status"`
	RetryCount int            `bson:"retryCount"`
	LastError  string         `bson:"lastError,omitempty"`
	CreatedAt  time.Time      `bson:"createdAt"`
	UpdatedAt  time.Time      `bson:"updatedAt"`
}

func toDoc(rec *notification.Record) recordDoc {
	ev := rec.Event()
	return recordDoc{
		ID:         rec.ID().String(),
		EventType:  ev.Type.String(),
		EntityID:   ev.EntityID,
		UserID:     ev.UserID,
		DoctorID:   ev.DoctorID,
		Payload:    ev.Payload,
		Status:     rec.Status().String(),
		RetryCount: rec.RetryCount(),
		LastError:  rec.LastError(),
		CreatedAt:  rec.CreatedAt(),
		UpdatedAt:  rec.UpdatedAt(),
	}
}

func (d recordDoc) toDomain() (*notification.Record, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	ev := event.Event{
		Type:     event.Type(d.EventType),
		EntityID: d.EntityID,
		UserID:   d.UserID,
		DoctorID: d.DoctorID,
		Payload:  d.Payload,
	}
	return notification.Reconstruct(id, ev, notification.Status(d.Status), d.RetryCount, d.LastError, d.CreatedAt.UTC(), d.UpdatedAt.UTC())
}

type Repository struct {
	coll *mongo.Collection
}

func NewRepository(client *mongo.Client, cfg config.MongoConfig) *Repository {
	return &Repository{coll: client.Database(cfg.Database).Collection(cfg.Collection)}
}

// EnsureIndexes creates the index backing the retry and dead-letter selections.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "retryCount", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return infra.WrapRepoErr("failed to create outbox index", err)
	}
	return nil
}

func (r *Repository) Insert(ctx context.Context, rec *notification.Record) error {
	if _, err := r.coll.InsertOne(ctx, toDoc(rec)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return infra.WrapRepoErr("outbox record already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert outbox record", err, infra.KindDBFailure)
	}
	return nil
}

// Update persists the record's delivery state only if the stored row still has
// the given status and retry count. It reports whether the row was updated.
func (r *Repository) Update(ctx context.Context, rec *notification.Record, prevStatus notification.Status, prevRetryCount int) (bool, error) {
	filter := bson.M{
		"_id":        rec.ID().String(),
		"status":     prevStatus.String(),
		"retryCount": prevRetryCount,
	}
	update := bson.M{"$set": bson.M{
		"status":     rec.Status().String(),
		"retryCount": rec.RetryCount(),
		"lastError":  rec.LastError(),
		"updatedAt":  rec.UpdatedAt(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, infra.WrapRepoErr("failed to update outbox record", err, infra.KindDBFailure)
	}
	return res.ModifiedCount == 1, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Record, error) {
	var doc recordDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, infra.WrapRepoErr("outbox record not found", err, infra.KindNotFound)
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find outbox record", err, infra.KindDBFailure)
	}
	return doc.toDomain()
}

// ListRetryable returns FAILED records that still have retries left, oldest first.
func (r *Repository) ListRetryable(ctx context.Context, maxRetries, limit int) ([]*notification.Record, error) {
	return r.find(ctx, bson.M{
		"status":     notification.StatusFailed.String(),
		"retryCount": bson.M{"$lt": maxRetries},
	}, limit)
}

// ListDeadLetters returns FAILED records that exhausted their retries.
func (r *Repository) ListDeadLetters(ctx context.Context, maxRetries, limit int) ([]*notification.Record, error) {
	return r.find(ctx, bson.M{
		"status":     notification.StatusFailed.String(),
		"retryCount": bson.M{"$gte": maxRetries},
	}, limit)
}

func (r *Repository) find(ctx context.Context, filter bson.M, limit int) ([]*notification.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query outbox", err, infra.KindDBFailure)
	}
	defer cur.Close(ctx)

	var docs []recordDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, infra.WrapRepoErr("failed to decode outbox records", err, infra.KindDBFailure)
	}

	out := make([]*notification.Record, 0, len(docs))
	for _, d := range docs {
		rec, err := d.toDomain()
		if err != nil {
			return nil, infra.WrapRepoErr("stored outbox record is invalid", err, infra.KindDBFailure)
		}
		out = append(out, rec)
	}
	return out, nil
}
