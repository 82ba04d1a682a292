package registry

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"crimepredict/ml"
)

// Resolve obtains the model artifact: from the registry when a URL is
// configured, falling back to a local artifact file. A nil forest with a nil
// error is never returned; callers that get an error should start degraded
// rather than crash.
func Resolve(ctx context.Context, registryURL, modelName, localPath string, logger *zap.Logger) (*ml.Forest, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if registryURL != "" {
		client := NewClient(registryURL)
		forest, err := client.Latest(ctx, modelName)
		if err == nil {
			logger.Info("model loaded from registry",
				zap.String("model", modelName),
				zap.String("registry", registryURL))
			return forest, nil
		}
		logger.Warn("registry load failed, trying local artifact",
			zap.String("model", modelName),
			zap.Error(err))
	}

	if localPath != "" {
		var forest ml.Forest
		if err := forest.Load(localPath); err != nil {
			return nil, err
		}
		logger.Info("model loaded from local artifact",
			zap.String("model", modelName),
			zap.String("path", localPath))
		return &forest, nil
	}

	return nil, errors.New("no model source configured")
}
