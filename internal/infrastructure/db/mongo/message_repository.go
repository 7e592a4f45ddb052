package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cedrulion/murika-farm/internal/core/domain"
	"github.com/cedrulion/murika-farm/internal/core/ports"
)

const messagesCollection = "messages"

// MessageRepository persists messages. Sender and receiver are stored as
// ObjectID references into the users collection; deleting a user does not
// cascade here, orphaned references are tolerated.
type MessageRepository struct {
	coll *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{coll: db.Collection(messagesCollection)}
}

type mongoMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Sender    primitive.ObjectID `bson:"sender"`
	Receiver  primitive.ObjectID `bson:"receiver"`
	Content   string             `bson:"content"`
	Timestamp time.Time          `bson:"timestamp"`
	Read      bool               `bson:"read"`
}

func (mm mongoMessage) toDomain() *domain.Message {
	return &domain.Message{
		ID:        mm.ID.Hex(),
		Sender:    mm.Sender.Hex(),
		Receiver:  mm.Receiver.Hex(),
		Content:   mm.Content,
		Timestamp: mm.Timestamp,
		Read:      mm.Read,
	}
}

func (r *MessageRepository) Insert(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	senderID, err := primitive.ObjectIDFromHex(msg.Sender)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	receiverID, err := primitive.ObjectIDFromHex(msg.Receiver)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoMessage{
		Sender:    senderID,
		Receiver:  receiverID,
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
		Read:      msg.Read,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	created := *msg
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMessageNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mm mongoMessage
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("find message: %w", err)
	}
	return mm.toDomain(), nil
}

// Conversation returns every message between a and b, oldest first.
func (r *MessageRepository) Conversation(ctx context.Context, a, b string) ([]*domain.Message, error) {
	aID, err := primitive.ObjectIDFromHex(a)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	bID, err := primitive.ObjectIDFromHex(b)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"sender": aID, "receiver": bID},
		bson.M{"sender": bID, "receiver": aID},
	}}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find conversation: %w", err)
	}
	defer cur.Close(ctx)

	var messages []*domain.Message
	for cur.Next(ctx) {
		var mm mongoMessage
		if err := cur.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		messages = append(messages, mm.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("find conversation: %w", err)
	}
	return messages, nil
}

// InboxOverview runs the grouping pipeline: all messages touching userID are
// grouped by the other party of the pair, the newest message per group is
// kept, the counterparty profile is joined in, and groups are ordered by that
// newest timestamp descending. Equal timestamps tie-break on counterparty id
// ascending so the ordering is stable.
func (r *MessageRepository) InboxOverview(ctx context.Context, userID string) ([]ports.InboxEntry, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": bson.A{
			bson.M{"sender": uid},
			bson.M{"receiver": uid},
		}}}},
		{{Key: "$sort", Value: bson.D{{Key: "timestamp", Value: -1}}}},
		{{Key: "$addFields", Value: bson.M{
			"counterparty": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$sender", uid}},
				"$receiver",
				"$sender",
			}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$counterparty",
			"last_message": bson.M{"$first": "$content"},
			"last_ts":      bson.M{"$first": "$timestamp"},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$sort", Value: bson.D{
			{Key: "last_ts", Value: -1},
			{Key: "_id", Value: 1},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("inbox overview: %w", err)
	}
	defer cur.Close(ctx)

	type inboxRow struct {
		ID          primitive.ObjectID `bson:"_id"`
		LastMessage string             `bson:"last_message"`
		LastTS      time.Time          `bson:"last_ts"`
		User        struct {
			FirstName string `bson:"first_name"`
			LastName  string `bson:"last_name"`
			Role      string `bson:"role"`
		} `bson:"user"`
	}

	var entries []ports.InboxEntry
	for cur.Next(ctx) {
		var row inboxRow
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode inbox row: %w", err)
		}
		entries = append(entries, ports.InboxEntry{
			User: ports.InboxUser{
				ID:        row.ID.Hex(),
				FirstName: row.User.FirstName,
				LastName:  row.User.LastName,
				Role:      domain.Role(row.User.Role),
			},
			LastMessage:          row.LastMessage,
			LastMessageTimestamp: row.LastTS,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("inbox overview: %w", err)
	}
	return entries, nil
}

// MarkRead sets the read flag. A second call matches the document but
// modifies nothing, which keeps the operation idempotent.
func (r *MessageRepository) MarkRead(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrMessageNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMessageNotFound
	}
	return nil
}

// EnsureIndexes creates the secondary indexes for the pair and timestamp
// access patterns.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sender", Value: 1}, {Key: "receiver", Value: 1}, {Key: "timestamp", Value: 1}}},
		{Keys: bson.D{{Key: "receiver", Value: 1}, {Key: "timestamp", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
