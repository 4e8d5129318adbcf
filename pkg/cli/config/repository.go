package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/swasthya-lab/swasthya/pkg/domain/interfaces"
	"github.com/swasthya-lab/swasthya/pkg/repository/chromem"
	"github.com/swasthya-lab/swasthya/pkg/repository/firestore"
	"github.com/swasthya-lab/swasthya/pkg/repository/memory"
)

// Repository holds CLI flags for the record store backend
type Repository struct {
	backend             string
	firestoreProjectID  string
	firestoreDatabaseID string
	collection          string
	chromemPath         string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository",
			Usage:       "Record store backend (firestore, chromem or memory)",
			Value:       "chromem",
			Sources:     cli.EnvVars("SWASTHYA_REPOSITORY"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore project ID",
			Sources:     cli.EnvVars("SWASTHYA_FIRESTORE_PROJECT_ID"),
			Destination: &r.firestoreProjectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID",
			Sources:     cli.EnvVars("SWASTHYA_FIRESTORE_DATABASE_ID"),
			Destination: &r.firestoreDatabaseID,
		},
		&cli.StringFlag{
			Name:        "collection",
			Usage:       "Record collection name",
			Value:       firestore.DefaultCollection,
			Sources:     cli.EnvVars("SWASTHYA_COLLECTION"),
			Destination: &r.collection,
		},
		&cli.StringFlag{
			Name:        "chromem-path",
			Usage:       "Directory for chromem persistence (empty keeps data in memory)",
			Sources:     cli.EnvVars("SWASTHYA_CHROMEM_PATH"),
			Destination: &r.chromemPath,
		},
	}
}

// LogValue renders the configuration for startup logging
func (r *Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", r.backend),
		slog.String("firestore_project_id", r.firestoreProjectID),
		slog.String("firestore_database_id", r.firestoreDatabaseID),
		slog.String("collection", r.collection),
		slog.String("chromem_path", r.chromemPath),
	)
}

// FirestoreProjectID exposes the configured project for migration
func (r *Repository) FirestoreProjectID() string { return r.firestoreProjectID }

// FirestoreDatabaseID exposes the configured database for migration
func (r *Repository) FirestoreDatabaseID() string { return r.firestoreDatabaseID }

// Collection exposes the configured collection name
func (r *Repository) Collection() string { return r.collection }

// Configure builds the record store selected by flags
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case "firestore":
		if r.firestoreProjectID == "" {
			return nil, goerr.New("firestore-project-id is required for firestore backend")
		}
		repo, err := firestore.New(ctx, r.firestoreProjectID, r.firestoreDatabaseID,
			firestore.WithCollection(r.collection))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to configure firestore repository")
		}
		return repo, nil

	case "chromem", "":
		repo, err := chromem.New(r.chromemPath, chromem.WithCollection(r.collection))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to configure chromem repository")
		}
		return repo, nil

	case "memory":
		return memory.New(), nil

	default:
		return nil, goerr.New("invalid repository backend", goerr.V("backend", r.backend))
	}
}
