// Command lambda serves the API behind Amazon API Gateway. Proxy events are
// converted to HTTP requests and routed through the same chi router as the
// standalone server.
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/isdelr/login-api/internal/app"
	"github.com/isdelr/login-api/internal/config"
	"github.com/isdelr/login-api/internal/logger"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info", false)
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// CloudWatch wants plain JSON lines.
	logger.Init(cfg.LogLevel, false)

	application, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	adapter := chiadapter.New(application.Router)
	lambda.Start(adapter.ProxyWithContext)
}
