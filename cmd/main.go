package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"crimepredict/geo"
	chttp "crimepredict/http"
	"crimepredict/logging"
	"crimepredict/ml"
	"crimepredict/predictor"
	"crimepredict/registry"
)

type Config struct {
	Http struct {
		Port           int      `yaml:"port"`
		TimeoutSeconds int      `yaml:"timeout_seconds"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"http"`
	Log   logging.Config `yaml:"log"`
	Model struct {
		Name        string `yaml:"name"`
		RegistryURL string `yaml:"registry_url"`
		Path        string `yaml:"path"`
	} `yaml:"model"`
	Neighborhoods map[string]int `yaml:"neighborhoods"`
	CrimeTypes    map[int]string `yaml:"crime_types"`
}

func main() {
	// Optional .env for local runs; real deployments set the environment.
	_ = godotenv.Load()

	// Look for config in root even if run from cmd/
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = filepath.Join("..", "config.yaml")
		}
	}

	config, err := loadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyEnvOverrides(config)

	logger := logging.New(config.Log)
	defer logger.Sync()

	mapping := geo.NewMapping(config.Neighborhoods)
	labels := ml.NewLabels(config.CrimeTypes)

	// A model that cannot be obtained leaves the service degraded, not dead:
	// /health must still answer and report model_loaded=false.
	var model ml.Classifier
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	forest, err := registry.Resolve(ctx, config.Model.RegistryURL, config.Model.Name, config.Model.Path, logger)
	cancel()
	if err != nil {
		logger.Warn("model not loaded, starting degraded",
			zap.String("model", config.Model.Name),
			zap.Error(err))
	} else {
		model = forest
	}

	service := predictor.NewService(model, config.Model.Name, mapping, labels, logger)

	serverConfig := chttp.DefaultServerConfig()
	if config.Http.Port > 0 {
		serverConfig.Port = config.Http.Port
	}
	if config.Http.TimeoutSeconds > 0 {
		serverConfig.Timeout = time.Duration(config.Http.TimeoutSeconds) * time.Second
	}
	if len(config.Http.AllowedOrigins) > 0 {
		serverConfig.AllowedOrigins = config.Http.AllowedOrigins
	}

	server := chttp.NewServer(serverConfig, chttp.NewHandler(service, logger), logger)
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	if err := server.Stop(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
}

func loadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, err
	}
	if len(config.Neighborhoods) == 0 {
		config.Neighborhoods = geo.DefaultNeighborhoods
	}
	if len(config.CrimeTypes) == 0 {
		config.CrimeTypes = ml.DefaultCrimeTypes
	}
	if config.Model.Name == "" {
		config.Model.Name = "crime_classification_rf"
	}
	return &config, nil
}

func applyEnvOverrides(config *Config) {
	if url := os.Getenv("MODEL_REGISTRY_URL"); url != "" {
		config.Model.RegistryURL = url
	}
	if path := os.Getenv("MODEL_PATH"); path != "" {
		config.Model.Path = path
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Http.Port = p
		}
	}
}
