package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/gorm"

	"github.com/hugoalbmartins/Leiritrix/internal/config"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Conexao agrega o cliente de persistência do processo. Abre-se uma vez em
// main e fecha-se no shutdown.
type Conexao struct {
	Driver string
	Gorm   *gorm.DB
	Mongo  *mongo.Database

	mongoClient *mongo.Client
}

// GetDB abre o backend escolhido em database.driver.
func GetDB(ctx context.Context, cfg *config.Config) (*Conexao, error) {
	switch cfg.Database.Driver {
	case "", DriverPostgres:
		port := cfg.Database.Port
		if port == 0 {
			port = 5432 // Default PostgreSQL port
		}
		g, err := ConnectDataBase(ctx, PostgresOpcoes{
			Host:       cfg.Database.Host,
			Port:       port,
			Name:       cfg.Database.Name,
			User:       cfg.Database.User,
			Password:   cfg.Database.Password,
			SSLDisable: cfg.Database.SSLDisable,
			SecretID:   cfg.Database.SecretID,
		})
		if err != nil {
			return nil, err
		}
		return &Conexao{Driver: DriverPostgres, Gorm: g}, nil
	case DriverMongo:
		client, err := ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Timeout)
		if err != nil {
			return nil, err
		}
		database := client.Database(cfg.Mongo.Database)
		if err := EnsureIndexes(ctx, database); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &Conexao{Driver: DriverMongo, Mongo: database, mongoClient: client}, nil
	default:
		return nil, fmt.Errorf("database.driver desconhecido: %q", cfg.Database.Driver)
	}
}

// Ping verifica que o backend responde.
func (c *Conexao) Ping(ctx context.Context) error {
	if c.mongoClient != nil {
		return c.mongoClient.Ping(ctx, nil)
	}
	sqlDB, err := c.Gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Fechar liberta as ligações.
func (c *Conexao) Fechar(ctx context.Context) error {
	if c.mongoClient != nil {
		return c.mongoClient.Disconnect(ctx)
	}
	if c.Gorm != nil {
		sqlDB, err := c.Gorm.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
