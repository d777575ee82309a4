package notificacao

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/hugoalbmartins/Leiritrix/internal/utils/db"
)

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) Repository {
	return &mongoRepository{coll: database.Collection(db.ColecaoNotifications)}
}

func (r *mongoRepository) Criar(ctx context.Context, n *Notificacao) error {
	_, err := r.coll.InsertOne(ctx, n)
	return err
}

func (r *mongoRepository) Listar(ctx context.Context, userID string, limite int) ([]Notificacao, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limite))
	cursor, err := r.coll.Find(ctx, bson.D{{Key: "user_id", Value: userID}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	list := []Notificacao{}
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *mongoRepository) ContarNaoLidas(ctx context.Context, userID string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{{Key: "user_id", Value: userID}, {Key: "read", Value: false}})
}

func (r *mongoRepository) MarcarLida(ctx context.Context, id, userID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "id", Value: id}, {Key: "user_id", Value: userID}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "read", Value: true}}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errNaoEncontrada
	}
	return nil
}

func (r *mongoRepository) MarcarTodasLidas(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.D{{Key: "user_id", Value: userID}, {Key: "read", Value: false}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "read", Value: true}}}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
