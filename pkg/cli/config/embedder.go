package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/urfave/cli/v3"

	"github.com/swasthya-lab/swasthya/pkg/domain/interfaces"
	"github.com/swasthya-lab/swasthya/pkg/service/embedding"
)

// Embedder holds CLI flags for the text embedding backend
type Embedder struct {
	backend        string
	geminiProject  string
	geminiLocation string
}

// Flags returns CLI flags for embedder configuration
func (e *Embedder) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "embedder",
			Usage:       "Embedding backend (gemini or mock)",
			Value:       "gemini",
			Sources:     cli.EnvVars("SWASTHYA_EMBEDDER"),
			Destination: &e.backend,
		},
		&cli.StringFlag{
			Name:        "gemini-project-id",
			Usage:       "Google Cloud project ID for Gemini embeddings",
			Sources:     cli.EnvVars("SWASTHYA_GEMINI_PROJECT_ID"),
			Destination: &e.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini embeddings",
			Value:       "us-central1",
			Sources:     cli.EnvVars("SWASTHYA_GEMINI_LOCATION"),
			Destination: &e.geminiLocation,
		},
	}
}

// LogValue renders the configuration for startup logging
func (e *Embedder) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", e.backend),
		slog.String("gemini_project_id", e.geminiProject),
		slog.String("gemini_location", e.geminiLocation),
	)
}

// Configure builds the embedding backend selected by flags
func (e *Embedder) Configure(ctx context.Context) (interfaces.Embedder, error) {
	switch e.backend {
	case "gemini", "":
		if e.geminiProject == "" {
			return nil, goerr.New("gemini-project-id is required for gemini embedder")
		}
		llmClient, err := gemini.New(ctx, e.geminiProject, e.geminiLocation)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Gemini client")
		}
		embedder, err := embedding.NewGemini(llmClient)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to configure gemini embedder")
		}
		return embedder, nil

	case "mock":
		return embedding.NewMock(), nil

	default:
		return nil, goerr.New("invalid embedder backend", goerr.V("backend", e.backend))
	}
}
