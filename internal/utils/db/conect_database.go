package db

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresOpcoes descreve a ligação relacional.
type PostgresOpcoes struct {
	Host       string
	Port       uint
	Name       string
	User       string
	Password   string
	SSLDisable bool
	SecretID   string
}

func (o PostgresOpcoes) dsn(username, password string) string {
	var sslMode string
	if o.SSLDisable {
		sslMode = " sslmode=disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s", o.Host, username, password, o.Name, o.Port, sslMode)
}

// ConnectDataBase abre o pool gorm/postgres.
func ConnectDataBase(ctx context.Context, o PostgresOpcoes) (*gorm.DB, error) {
	username, password, err := retrieveCredentials(ctx, o.User, o.Password, o.SecretID)
	if err != nil {
		return nil, err
	}
	database, err := gorm.Open(postgres.Open(o.dsn(username, password)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("ligar ao postgres: %w", err)
	}
	return database, nil
}
