package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/joho/godotenv"

	"github.com/hirosato/smartrt/internal/platform/secrets"
)

// Example: AWS_PROFILE=smartrt-dev AWS_REGION=ap-southeast-3 RT_SECRET_ID=smartrt/dev RT_PASSPHRASE=... go run ./cmd/operation put-rt-secret
func main() {
	if len(os.Args) > 1 && os.Args[1] == "put-rt-secret" {
		putRTSecret()
		os.Exit(0)
	}

	fmt.Println("usage: operation put-rt-secret")
	os.Exit(2)
}

// putRTSecret stores the admin passphrase and Gemini key in Secrets Manager
func putRTSecret() {
	_ = godotenv.Load()

	secretID := os.Getenv("RT_SECRET_ID")
	if secretID == "" {
		log.Fatal("RT_SECRET_ID is required")
	}
	secret := secrets.RTSecret{
		Passphrase:   os.Getenv("RT_PASSPHRASE"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
	}
	if secret.Passphrase == "" {
		log.Fatal("RT_PASSPHRASE is required")
	}

	ctx := context.Background()
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	store := secrets.NewStore(secretsmanager.NewFromConfig(cfg), logger)

	fmt.Printf("Storing RT secret %s...\n", secretID)
	if err := store.PutRTSecret(ctx, secretID, secret); err != nil {
		log.Fatalf("Failed to store secret: %v", err)
	}

	// Read it back the way the services do
	got, err := store.GetRTSecret(ctx, secretID)
	if err != nil {
		log.Fatalf("Failed to read secret back: %v", err)
	}
	if got.Passphrase != secret.Passphrase {
		log.Fatal("Stored passphrase does not match")
	}

	fmt.Println("RT secret is ready for use")
}
