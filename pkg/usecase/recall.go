package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/swasthya-lab/swasthya/pkg/domain/interfaces"
	"github.com/swasthya-lab/swasthya/pkg/domain/types"
	"github.com/swasthya-lab/swasthya/pkg/utils/logging"
)

// NoResultsAnswer is returned when the store holds nothing relevant. An
// empty store answers explicitly instead of with an ambiguous empty list.
const NoResultsAnswer = "No relevant health records found"

// RecallUseCase answers free-text questions by embedding similarity
type RecallUseCase struct {
	repo     interfaces.Repository
	embedder interfaces.Embedder
	limit    int
}

// RecallHit is one retrieved record with its similarity score
type RecallHit struct {
	Kind     types.RecordKind
	Modality types.Modality
	Content  string
	Score    float64
}

// AskResult is the outcome of a question. Either Records holds ranked
// hits (highest similarity first) or Answer carries the explicit
// no-results message.
type AskResult struct {
	Question string
	Answer   string
	Records  []RecallHit
}

// Ask embeds the question and retrieves the top records by cosine
// similarity. No reranking or filtering happens beyond the store's own
// top-K.
func (uc *RecallUseCase) Ask(ctx context.Context, question string) (*AskResult, error) {
	if question == "" {
		return nil, goerr.New("question is required", goerr.T(types.TagValidationFailure))
	}

	embedding, err := uc.embedder.Embed(ctx, question)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to embed question",
			goerr.T(types.TagPersistenceFailure))
	}

	scored, err := uc.repo.Record().FindByEmbedding(ctx, embedding, uc.limit)
	if err != nil {
		return nil, goerr.Wrap(err, "similarity search failed",
			goerr.T(types.TagPersistenceFailure))
	}

	logging.From(ctx).Info("question answered",
		"hits", len(scored),
		"limit", uc.limit,
	)

	if len(scored) == 0 {
		return &AskResult{Question: question, Answer: NoResultsAnswer}, nil
	}

	hits := make([]RecallHit, len(scored))
	for i, s := range scored {
		hits[i] = RecallHit{
			Kind:     s.Record.Kind,
			Modality: s.Record.Modality,
			Content:  s.Record.Content,
			Score:    s.Score,
		}
	}

	return &AskResult{Question: question, Records: hits}, nil
}
