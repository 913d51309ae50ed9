// Package archive mirrors relayed messages into MongoDB for analytics.
package archive

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lingobridge/lingobridge"
)

// MongoArchive writes one document per relayed message. It is an optional,
// best-effort sink: the relay treats archive failures as log-only events.
type MongoArchive struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoArchive connects to MongoDB and verifies the connection.
func NewMongoArchive(ctx context.Context, uri, database, collection string) (*MongoArchive, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &MongoArchive{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Archive stores one relayed message.
func (a *MongoArchive) Archive(ctx context.Context, entry lingobridge.ArchiveEntry) error {
	_, err := a.coll.InsertOne(ctx, documentFor(entry))
	return err
}

// Close releases the MongoDB connection.
func (a *MongoArchive) Close(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}

func documentFor(entry lingobridge.ArchiveEntry) bson.M {
	receivedAt := entry.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}

	return bson.M{
		"user_id":       entry.SenderID,
		"username":      entry.SenderUsername,
		"name":          entry.SenderName,
		"chat_id":       entry.ConversationID,
		"message_id":    entry.MessageID,
		"original_text": entry.OriginalText,
		"original_lang": entry.SourceLanguage,
		"english_text":  entry.PivotText,
		"timestamp":     receivedAt,
	}
}

// Verify MongoArchive implements the relay's ArchiveSink interface
var _ lingobridge.ArchiveSink = (*MongoArchive)(nil)
