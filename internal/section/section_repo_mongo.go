package section

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "sections"

type sectionDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	DisplayName string             `bson:"displayName"`
	Description string             `bson:"description,omitempty"`
	Fields      []FieldDefinition  `bson:"fields"`
	Order       int                `bson:"order"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

var sectionIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName(uniqueNameIndex).SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "order", Value: 1}},
		Options: options.Index().SetName("idx_sections_order"),
	},
}

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection(CollectionName)}
}

func (r *mongoRepository) Create(ctx context.Context, s *Section) error {
	doc, err := toDocument(s)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	doc.CreatedAt, doc.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	*s = doc.toEntity()
	return nil
}

func (r *mongoRepository) FindAll(ctx context.Context) ([]Section, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []sectionDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	sections := make([]Section, len(docs))
	for i, d := range docs {
		sections[i] = d.toEntity()
	}
	return sections, nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id string) (*Section, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *mongoRepository) FindByName(ctx context.Context, name string) (*Section, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *mongoRepository) findOne(ctx context.Context, filter bson.M) (*Section, error) {
	var doc sectionDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, err
	}
	s := doc.toEntity()
	return &s, nil
}

func (r *mongoRepository) Update(ctx context.Context, s *Section) error {
	doc, err := toDocument(s)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	doc.UpdatedAt = time.Now().UTC()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	s.UpdatedAt = doc.UpdatedAt
	return nil
}

func (r *mongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, sectionIndexes)
	return err
}

func toDocument(s *Section) (sectionDocument, error) {
	doc := sectionDocument{
		Name:        s.Name,
		DisplayName: s.DisplayName,
		Description: s.Description,
		Fields:      s.Fields,
		Order:       s.Order,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.ID != "" {
		oid, err := primitive.ObjectIDFromHex(s.ID)
		if err != nil {
			return sectionDocument{}, err
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d sectionDocument) toEntity() Section {
	fields := d.Fields
	if fields == nil {
		fields = []FieldDefinition{}
	}
	return Section{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		DisplayName: d.DisplayName,
		Description: d.Description,
		Fields:      fields,
		Order:       d.Order,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
