package utilizador

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/hugoalbmartins/Leiritrix/internal/auth"
	"github.com/hugoalbmartins/Leiritrix/internal/utils/db"
)

type mongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository usa a coleção "users".
func NewMongoRepository(database *mongo.Database) Repository {
	return &mongoRepository{coll: database.Collection(db.ColecaoUsers)}
}

func (r *mongoRepository) Criar(ctx context.Context, u *Utilizador) error {
	_, err := r.coll.InsertOne(ctx, u)
	return err
}

func (r *mongoRepository) BuscarPorID(ctx context.Context, id string) (*Utilizador, error) {
	return r.buscar(ctx, bson.D{{Key: "id", Value: id}})
}

func (r *mongoRepository) BuscarPorEmail(ctx context.Context, email string) (*Utilizador, error) {
	return r.buscar(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *mongoRepository) buscar(ctx context.Context, filter bson.D) (*Utilizador, error) {
	var u Utilizador
	if err := r.coll.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errNaoEncontrado
		}
		return nil, fmt.Errorf("buscar utilizador: %w", err)
	}
	return &u, nil
}

func (r *mongoRepository) Listar(ctx context.Context, role auth.Role) ([]Utilizador, error) {
	filter := bson.D{}
	if role != "" {
		filter = append(filter, bson.E{Key: "role", Value: role})
	}
	return r.find(ctx, filter)
}

func (r *mongoRepository) ListarAtivosPorRoles(ctx context.Context, roles ...auth.Role) ([]Utilizador, error) {
	return r.find(ctx, bson.D{
		{Key: "active", Value: true},
		{Key: "role", Value: bson.D{{Key: "$in", Value: roles}}},
	})
}

func (r *mongoRepository) find(ctx context.Context, filter bson.D) ([]Utilizador, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}}).SetLimit(1000)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	list := []Utilizador{}
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

func (r *mongoRepository) ExisteComRole(ctx context.Context, role auth.Role) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{{Key: "role", Value: role}}, options.Count().SetLimit(1))
	return n > 0, err
}
