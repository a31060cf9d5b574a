// Package renderer selects the render-backend adapter from configuration,
// mirroring the storage provider factory.
package renderer

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awslambda "github.com/aws/aws-sdk-go-v2/service/lambda"

	"scenecast/internal/adapters/renderer/httprender"
	"scenecast/internal/adapters/renderer/lambda"
	"scenecast/internal/config"
	"scenecast/internal/ports"
)

// NewBackend builds the configured render backend.
func NewBackend(ctx context.Context, cfg *config.Config) (ports.RenderBackend, error) {
	switch cfg.RenderBackend {
	case "lambda":
		opts := []func(*awsconfig.LoadOptions) error{}
		if cfg.AWSRegion != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.AWSRegion))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return lambda.NewClient(awslambda.NewFromConfig(awsCfg)), nil

	case "http":
		return httprender.NewClient(cfg.RenderBaseURL), nil

	default:
		return nil, fmt.Errorf("unknown render backend: %s", cfg.RenderBackend)
	}
}
