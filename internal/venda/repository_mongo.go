package venda

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/hugoalbmartins/Leiritrix/internal/utils/db"
)

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) Repository {
	return &mongoRepository{coll: database.Collection(db.ColecaoSales)}
}

func (r *mongoRepository) Criar(ctx context.Context, v *Venda) error {
	_, err := r.coll.InsertOne(ctx, v)
	return err
}

func (r *mongoRepository) BuscarPorID(ctx context.Context, id string) (*Venda, error) {
	var v Venda
	if err := r.coll.FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errNaoEncontrada
		}
		return nil, fmt.Errorf("buscar venda: %w", err)
	}
	return &v, nil
}

func (r *mongoRepository) Listar(ctx context.Context, f Filtro, ordem Ordem, limite int) ([]Venda, error) {
	sort := bson.D{{Key: "created_at", Value: -1}}
	if ordem == OrdemFidelizacao {
		sort = bson.D{{Key: "loyalty_end_date", Value: 1}}
	}
	opts := options.Find().SetSort(sort)
	if limite > 0 {
		opts.SetLimit(int64(limite))
	}
	cursor, err := r.coll.Find(ctx, FiltroBSON(f), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	list := []Venda{}
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *mongoRepository) Atualizar(ctx context.Context, id string, campos map[string]any) error {
	if len(campos) == 0 {
		return nil
	}
	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "id", Value: id}}, bson.D{{Key: "$set", Value: bson.M(campos)}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errNaoEncontrada
	}
	return nil
}

func (r *mongoRepository) Deletar(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errNaoEncontrada
	}
	return nil
}

func (r *mongoRepository) Contar(ctx context.Context, f Filtro) (int64, error) {
	return r.coll.CountDocuments(ctx, FiltroBSON(f))
}

func (r *mongoRepository) ContarPor(ctx context.Context, f Filtro, campo string) (map[string]int64, error) {
	if err := campoValido(campo); err != nil {
		return nil, err
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: FiltroBSON(f)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + campo},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Chave string `bson:"_id"`
		Total int64  `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, g := range rows {
		out[g.Chave] = g.Total
	}
	return out, nil
}

func (r *mongoRepository) Somar(ctx context.Context, f Filtro, campo string) (decimal.Decimal, error) {
	if err := campoValido(campo); err != nil {
		return decimal.Zero, err
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: FiltroBSON(f)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$" + campo}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return decimal.Zero, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return decimal.Zero, err
	}
	if len(rows) == 0 {
		return decimal.Zero, nil
	}
	return decimal.NewFromFloat(rows[0].Total), nil
}
