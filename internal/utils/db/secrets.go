package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// secretGetter é o subconjunto do cliente Secrets Manager usado aqui.
type secretGetter interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

func initSecretsConfig(ctx context.Context) (*secretsmanager.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

// retrieveCredentials usa as credenciais explícitas quando existem; caso
// contrário lê o segredo secretID no AWS Secrets Manager.
func retrieveCredentials(ctx context.Context, username, password, secretID string) (string, string, error) {
	if username != "" && password != "" {
		return username, password, nil
	}
	if secretID == "" {
		return "", "", fmt.Errorf("credenciais da base de dados ausentes e DB_SECRET_ID vazio")
	}
	client, err := initSecretsConfig(ctx)
	if err != nil {
		return "", "", fmt.Errorf("config AWS: %w", err)
	}
	return fetchCredentials(ctx, client, secretID)
}

func fetchCredentials(ctx context.Context, client secretGetter, secretID string) (string, string, error) {
	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(secretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return "", "", fmt.Errorf("ler segredo %s: %w", secretID, err)
	}
	if result.SecretString == nil {
		return "", "", fmt.Errorf("segredo %s sem SecretString", secretID)
	}

	var secret Credentials
	if err := json.Unmarshal([]byte(*result.SecretString), &secret); err != nil {
		return "", "", fmt.Errorf("segredo %s malformado: %w", secretID, err)
	}
	return secret.Username, secret.Password, nil
}
