package employee

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "employees"

type employeeDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	EmployeeID   string             `bson:"employeeId"`
	FirstName    string             `bson:"firstName"`
	LastName     string             `bson:"lastName"`
	Title        string             `bson:"title,omitempty"`
	Department   string             `bson:"department,omitempty"`
	Location     string             `bson:"location,omitempty"`
	WorkEmail    string             `bson:"workEmail"`
	ProfileImage string             `bson:"profileImage"`
	JoiningDate  time.Time          `bson:"joiningDate"`
	Status       Status             `bson:"status"`
	Sections     []SectionSnapshot  `bson:"sections"`
	PersonalInfo PersonalInfo       `bson:"personalInfo"`
	PaymentInfo  PaymentInfo        `bson:"paymentInfo"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

var employeeIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "employeeId", Value: 1}},
		Options: options.Index().SetName(uniqueEmployeeIDIndex).SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "workEmail", Value: 1}},
		Options: options.Index().SetName(uniqueWorkEmailIndex).SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "sections.sectionId", Value: 1}},
		Options: options.Index().SetName("idx_employees_section_id"),
	},
}

var summaryProjection = bson.D{
	{Key: "employeeId", Value: 1},
	{Key: "firstName", Value: 1},
	{Key: "lastName", Value: 1},
	{Key: "status", Value: 1},
	{Key: "department", Value: 1},
	{Key: "title", Value: 1},
	{Key: "profileImage", Value: 1},
}

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection(CollectionName)}
}

// identifierFilter matches the primary key or the business key in one query
// when id is a valid ObjectID, and only the business key otherwise.
func identifierFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"$or": bson.A{
			bson.M{"_id": oid},
			bson.M{"employeeId": id},
		}}
	}
	return bson.M{"employeeId": id}
}

func (r *mongoRepository) Create(ctx context.Context, e *Employee) error {
	doc := toDocument(e)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	doc.CreatedAt, doc.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	*e = doc.toEntity()
	return nil
}

func (r *mongoRepository) FindAll(ctx context.Context) ([]Employee, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetProjection(summaryProjection))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []employeeDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	employees := make([]Employee, len(docs))
	for i, d := range docs {
		employees[i] = d.toEntity()
	}
	return employees, nil
}

func (r *mongoRepository) FindByIdentifier(ctx context.Context, identifier string) (*Employee, error) {
	return r.findOne(ctx, identifierFilter(identifier))
}

func (r *mongoRepository) FindByEmployeeIDOrWorkEmail(ctx context.Context, employeeID, workEmail string) (*Employee, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"employeeId": employeeID},
		bson.M{"workEmail": workEmail},
	}})
}

func (r *mongoRepository) findOne(ctx context.Context, filter bson.M) (*Employee, error) {
	var doc employeeDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, err
	}
	e := doc.toEntity()
	return &e, nil
}

func (r *mongoRepository) Update(ctx context.Context, e *Employee) error {
	doc := toDocument(e)
	if doc.ID.IsZero() {
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
	e.UpdatedAt = doc.UpdatedAt
	return nil
}

func (r *mongoRepository) DeleteByIdentifier(ctx context.Context, identifier string) (*Employee, error) {
	var doc employeeDocument
	if err := r.coll.FindOneAndDelete(ctx, identifierFilter(identifier)).Decode(&doc); err != nil {
		return nil, err
	}
	e := doc.toEntity()
	return &e, nil
}

func (r *mongoRepository) RemoveSectionSnapshots(ctx context.Context, sectionID string) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"sections.sectionId": sectionID},
		bson.M{
			"$pull": bson.M{"sections": bson.M{"sectionId": sectionID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *mongoRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, employeeIndexes)
	return err
}

func toDocument(e *Employee) employeeDocument {
	doc := employeeDocument{
		EmployeeID:   e.EmployeeID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Title:        e.Title,
		Department:   e.Department,
		Location:     e.Location,
		WorkEmail:    e.WorkEmail,
		ProfileImage: e.ProfileImage,
		JoiningDate:  e.JoiningDate,
		Status:       e.Status,
		Sections:     e.Sections,
		PersonalInfo: e.PersonalInfo,
		PaymentInfo:  e.PaymentInfo,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if oid, err := primitive.ObjectIDFromHex(e.ID); err == nil {
		doc.ID = oid
	}
	if doc.Sections == nil {
		doc.Sections = []SectionSnapshot{}
	}
	return doc
}

func (d employeeDocument) toEntity() Employee {
	return Employee{
		ID:           d.ID.Hex(),
		EmployeeID:   d.EmployeeID,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Title:        d.Title,
		Department:   d.Department,
		Location:     d.Location,
		WorkEmail:    d.WorkEmail,
		ProfileImage: d.ProfileImage,
		JoiningDate:  d.JoiningDate,
		Status:       d.Status,
		Sections:     d.Sections,
		PersonalInfo: d.PersonalInfo,
		PaymentInfo:  d.PaymentInfo,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
