package mongodb

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"phonebook/internal/model"
	"phonebook/internal/repository"
)

// ContactMongo is a MongoDB implementation of repository.ContactRepository.
// IDs are ObjectIDs generated client-side; name uniqueness relies on the index
// created by EnsureIndexes.
type ContactMongo struct {
	coll *mongo.Collection
}

// NewContactMongo creates a repository over the given collection.
func NewContactMongo(coll *mongo.Collection) *ContactMongo {
	return &ContactMongo{coll: coll}
}

var _ repository.ContactRepository = (*ContactMongo)(nil)

type contactDoc struct {
	ID     bson.ObjectID `bson:"_id"`
	Name   string        `bson:"name"`
	Number string        `bson:"number"`
}

func (d contactDoc) toModel() model.Contact {
	return model.Contact{ID: d.ID.Hex(), Name: d.Name, Number: d.Number}
}

func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, repository.ErrInvalidID
	}
	return oid, nil
}

func translate(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateName
	}
	return err
}

// nameFilter matches a case-insensitive substring of name.
func nameFilter(q string) bson.M {
	if q == "" {
		return bson.M{}
	}
	return bson.M{"name": bson.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}}
}

// EnsureIndexes creates the unique index on name. It is idempotent.
func (r *ContactMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_name"),
	})
	return err
}

// Create inserts a new document.
func (r *ContactMongo) Create(ctx context.Context, c *model.Contact) (*model.Contact, error) {
	doc := contactDoc{ID: bson.NewObjectID(), Name: c.Name, Number: c.Number}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, translate(err)
	}
	out := doc.toModel()
	return &out, nil
}

// FindByID fetches a single contact by its ObjectID hex.
func (r *ContactMongo) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByName fetches the contact with exactly this name.
func (r *ContactMongo) FindByName(ctx context.Context, name string) (*model.Contact, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *ContactMongo) findOne(ctx context.Context, filter bson.M) (*model.Contact, error) {
	var doc contactDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	out := doc.toModel()
	return &out, nil
}

// List returns contacts in insertion order with a total count.
func (r *ContactMongo) List(ctx context.Context, lq repository.ListQuery) (*repository.PageResult[model.Contact], error) {
	filter := nameFilter(lq.Name)
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(max(lq.Offset, 0)))
	if lq.Limit > 0 {
		opts.SetLimit(int64(lq.Limit))
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []contactDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	items := make([]model.Contact, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toModel())
	}
	return &repository.PageResult[model.Contact]{Items: items, Total: int(total)}, nil
}

// Update replaces name and number and returns the document after the update.
func (r *ContactMongo) Update(ctx context.Context, c *model.Contact) (*model.Contact, error) {
	oid, err := parseID(c.ID)
	if err != nil {
		return nil, err
	}
	var doc contactDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"name": c.Name, "number": c.Number}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, translate(err)
	}
	out := doc.toModel()
	return &out, nil
}

// Delete removes a document; deleting a missing id is not an error.
func (r *ContactMongo) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	_, err = r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

// Count returns the number of documents in the collection.
func (r *ContactMongo) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
