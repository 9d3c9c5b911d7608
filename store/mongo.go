package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shihabsss1/portfolio/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	mongoUnauthorized         int = 13
	mongoAuthenticationFailed int = 18
)

// MongoBackend stores the document in the "site" collection under _id "content".
type MongoBackend struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoBackend(client *mongo.Client, database string) *MongoBackend {
	return &MongoBackend{
		client:     client,
		collection: client.Database(database).Collection(models.DocumentCollection),
	}
}

func (m *MongoBackend) Find(ctx context.Context) (models.SiteContent, error) {
	c := models.SiteContent{}

	if err := m.collection.FindOne(ctx, bson.M{"_id": models.DocumentID}).Decode(&c); err != nil {
		return models.SiteContent{}, classifyMongoError(err)
	}

	return c, nil
}

// Upsert sets the patched fields and, only when inserting, every other field.
func (m *MongoBackend) Upsert(ctx context.Context, create models.SiteContent, patch models.ContentPatch) error {
	update := upsertDocument(create, patch, time.Now())

	if _, err := m.collection.UpdateOne(ctx, bson.M{"_id": models.DocumentID}, update, options.UpdateOne().SetUpsert(true)); err != nil {
		return classifyMongoError(err)
	}

	return nil
}

func (m *MongoBackend) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func upsertDocument(create models.SiteContent, patch models.ContentPatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	setOnInsert := bson.M{"createdAt": now}

	patched := map[string]bool{}
	for _, f := range patch.Fields() {
		patched[f] = true
	}

	for name, value := range documentFields(create) {
		if patched[name] {
			set[name] = value
		} else {
			setOnInsert[name] = value
		}
	}

	return bson.M{"$set": set, "$setOnInsert": setOnInsert}
}

func documentFields(c models.SiteContent) map[string]any {
	fields := map[string]any{
		models.FieldHero:        c.Hero,
		models.FieldAbout:       c.About,
		models.FieldExperiences: c.Experiences,
		models.FieldProjects:    c.Projects,
		models.FieldSocials:     c.Socials,
		models.FieldContact:     c.Contact,
		models.FieldChangelog:   c.Changelog,
	}

	if c.Gallery != nil {
		fields[models.FieldGallery] = c.Gallery
	}

	return fields
}

func classifyMongoError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var se mongo.ServerError
	if errors.As(err, &se) && (se.HasErrorCode(mongoUnauthorized) || se.HasErrorCode(mongoAuthenticationFailed)) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}
