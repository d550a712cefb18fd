package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/aws-secretsmanager-caching-go/v2/secretcache"
)

// RTSecret is the JSON document stored in Secrets Manager
type RTSecret struct {
	Passphrase   string `json:"passphrase"`
	GeminiAPIKey string `json:"geminiApiKey,omitempty"`
}

// Store reads and writes the RT secret in AWS Secrets Manager
type Store struct {
	client *secretsmanager.Client
	cache  *secretcache.Cache
	logger *slog.Logger
}

// NewStore creates a secret store. Reads go through a secret cache when it can be created.
func NewStore(client *secretsmanager.Client, logger *slog.Logger) *Store {
	cache, err := secretcache.New(
		func(c *secretcache.Cache) {
			c.Client = client
		},
	)
	if err != nil {
		// Reads fall back to direct API calls
		logger.Warn("Failed to initialize secret cache", "error", err)
		cache = nil
	}

	return &Store{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// GetRTSecret retrieves and parses the secret
func (s *Store) GetRTSecret(ctx context.Context, secretID string) (*RTSecret, error) {
	var secretString string
	var err error

	if s.cache != nil {
		secretString, err = s.cache.GetSecretString(secretID)
	} else {
		result, apiErr := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
			SecretId: aws.String(secretID),
		})
		if apiErr != nil {
			err = apiErr
		} else {
			secretString = aws.ToString(result.SecretString)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get secret %s: %w", secretID, err)
	}

	return ParseRTSecret(secretString)
}

// PutRTSecret writes the secret, creating it when it does not exist yet
func (s *Store) PutRTSecret(ctx context.Context, secretID string, secret RTSecret) error {
	if secret.Passphrase == "" {
		return errors.New("passphrase is required")
	}

	body, err := json.Marshal(secret)
	if err != nil {
		return fmt.Errorf("failed to marshal secret: %w", err)
	}

	_, err = s.client.PutSecretValue(ctx, &secretsmanager.PutSecretValueInput{
		SecretId:     aws.String(secretID),
		SecretString: aws.String(string(body)),
	})
	if err == nil {
		return nil
	}

	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to put secret %s: %w", secretID, err)
	}

	_, err = s.client.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
		Name:         aws.String(secretID),
		Description:  aws.String("SmartRT admin passphrase and Gemini API key"),
		SecretString: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("failed to create secret %s: %w", secretID, err)
	}
	return nil
}

// ParseRTSecret decodes the secret JSON
func ParseRTSecret(secretString string) (*RTSecret, error) {
	var secret RTSecret
	if err := json.Unmarshal([]byte(secretString), &secret); err != nil {
		return nil, fmt.Errorf("failed to parse secret: %w", err)
	}
	if secret.Passphrase == "" {
		return nil, errors.New("secret has no passphrase")
	}
	return &secret, nil
}
