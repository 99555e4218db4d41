package main

import (
	"context"
	"log"
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/githbnaboulsi/shipcore-api/internal/app"
	"github.com/githbnaboulsi/shipcore-api/internal/config"
	"github.com/githbnaboulsi/shipcore-api/internal/lambda"
)

// The store connection is opened during cold start and reused by every
// invocation the runtime routes to this process.
func main() {
	cfg, err := config.Load(os.Getenv("SHIPCORE_CONFIG"), "")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	service, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize service: %v", err)
	}

	awslambda.Start(lambda.NewAdapter(service.Handler).Proxy)
}
