package section

import (
	"context"
	"testing"
	"time"

	sectionerrors "github.com/aswanthpvtk/employee-Task-Backend/internal/section/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func sectionDoc(id primitive.ObjectID, name string, order int) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "displayName", Value: name + " details"},
		{Key: "fields", Value: bson.A{
			bson.D{{Key: "name", Value: "IFSC"}, {Key: "type", Value: "text"}, {Key: "required", Value: true}},
		}},
		{Key: "order", Value: order},
		{Key: "createdAt", Value: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	ns := "hr." + CollectionName

	mt.Run("create assigns id and timestamps", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		s := &Section{Name: "banking", DisplayName: "Banking", Fields: []FieldDefinition{}}
		require.NoError(t, repo.Create(ctx, s))

		assert.True(t, primitive.IsValidObjectID(s.ID))
		assert.False(t, s.CreatedAt.IsZero())
	})

	mt.Run("create duplicate name", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error index: uq_sections_name",
		}))

		err := repo.Create(ctx, &Section{Name: "banking", DisplayName: "Banking"})

		require.Error(t, err)
		assert.ErrorIs(t, mapRepositoryError(err), sectionerrors.ErrSectionNameTaken)
	})

	mt.Run("find all decodes fields", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			sectionDoc(first, "banking", 0),
			sectionDoc(second, "education", 1),
		))

		sections, err := repo.FindAll(ctx)

		require.NoError(t, err)
		require.Len(t, sections, 2)
		assert.Equal(t, first.Hex(), sections[0].ID)
		assert.Equal(t, "education", sections[1].Name)
		assert.Equal(t, FieldTypeText, sections[0].Fields[0].Type)
		assert.True(t, sections[0].Fields[0].Required)
	})

	mt.Run("find by malformed id is not found", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)

		_, err := repo.FindByID(ctx, "not-an-object-id")

		assert.ErrorIs(t, err, mongo.ErrNoDocuments)
	})

	mt.Run("find by id missing", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.FindByID(ctx, primitive.NewObjectID().Hex())

		assert.ErrorIs(t, err, mongo.ErrNoDocuments)
	})

	mt.Run("update unmatched", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.Update(ctx, &Section{ID: primitive.NewObjectID().Hex(), Name: "banking", DisplayName: "Banking"})

		assert.ErrorIs(t, err, mongo.ErrNoDocuments)
	})

	mt.Run("update matched", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		s := &Section{ID: primitive.NewObjectID().Hex(), Name: "banking", DisplayName: "Banking"}

		require.NoError(t, repo.Update(ctx, s))
		assert.False(t, s.UpdatedAt.IsZero())
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(t, repo.Delete(ctx, primitive.NewObjectID().Hex()))
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		assert.ErrorIs(t, repo.Delete(ctx, primitive.NewObjectID().Hex()), mongo.ErrNoDocuments)
	})
}
