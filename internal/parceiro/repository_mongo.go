package parceiro

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/hugoalbmartins/Leiritrix/internal/utils/db"
)

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) Repository {
	return &mongoRepository{coll: database.Collection(db.ColecaoPartners)}
}

func (r *mongoRepository) Criar(ctx context.Context, p *Parceiro) error {
	_, err := r.coll.InsertOne(ctx, p)
	return err
}

func (r *mongoRepository) BuscarPorID(ctx context.Context, id string) (*Parceiro, error) {
	var p Parceiro
	if err := r.coll.FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errNaoEncontrado
		}
		return nil, fmt.Errorf("buscar parceiro: %w", err)
	}
	return &p, nil
}

func (r *mongoRepository) Listar(ctx context.Context, apenasAtivos bool) ([]Parceiro, error) {
	filter := bson.D{}
	if apenasAtivos {
		filter = append(filter, bson.E{Key: "active", Value: true})
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}}).SetLimit(1000)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	list := []Parceiro{}
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *mongoRepository) Atualizar(ctx context.Context, id string, campos map[string]any) error {
	if len(campos) == 0 {
		return nil
	}
	_, err := r.coll.UpdateOne(ctx, bson.D{{Key: "id", Value: id}}, bson.D{{Key: "$set", Value: bson.M(campos)}})
	return err
}

func (r *mongoRepository) Deletar(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errNaoEncontrado
	}
	return nil
}
