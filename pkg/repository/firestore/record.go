package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/swasthya-lab/swasthya/pkg/domain/model"
	"github.com/swasthya-lab/swasthya/pkg/domain/types"
)

// distanceField receives the cosine distance of each FindNearest result
const distanceField = "vector_distance"

// recordDoc is the Firestore document representation of
// model.HealthRecord. Embedding is stored as firestore.Vector32 so that
// FindNearest vector search works.
type recordDoc struct {
	ID        model.RecordID     `firestore:"id"`
	Kind      string             `firestore:"type"`
	Modality  string             `firestore:"modality,omitempty"`
	Content   string             `firestore:"content"`
	Embedding firestore.Vector32 `firestore:"embedding,omitempty"`
	Metric    string             `firestore:"metric,omitempty"`
	Date      string             `firestore:"date,omitempty"`
	Uploaded  time.Time          `firestore:"uploaded_at,omitempty"`
	ChildName string             `firestore:"child_name,omitempty"`
	Vaccine   string             `firestore:"vaccine,omitempty"`
	AgeMonths int                `firestore:"age_months,omitempty"`
}

func toRecordDoc(r *model.HealthRecord) *recordDoc {
	doc := &recordDoc{
		ID:        r.ID,
		Kind:      r.Kind.String(),
		Modality:  r.Modality.String(),
		Content:   r.Content,
		Metric:    r.Metric.String(),
		Date:      r.Date,
		Uploaded:  r.UploadedAt,
		ChildName: r.ChildName,
		Vaccine:   r.Vaccine,
		AgeMonths: r.AgeMonths,
	}
	if len(r.Embedding) > 0 {
		doc.Embedding = firestore.Vector32(r.Embedding)
	}
	return doc
}

func fromRecordDoc(d *recordDoc) *model.HealthRecord {
	r := &model.HealthRecord{
		ID:         d.ID,
		Kind:       types.RecordKind(d.Kind),
		Modality:   types.Modality(d.Modality),
		Content:    d.Content,
		Metric:     types.VitalMetric(d.Metric),
		Date:       d.Date,
		UploadedAt: d.Uploaded,
		ChildName:  d.ChildName,
		Vaccine:    d.Vaccine,
		AgeMonths:  d.AgeMonths,
	}
	if len(d.Embedding) > 0 {
		r.Embedding = []float32(d.Embedding)
	}
	return r
}

type recordRepository struct {
	client     *firestore.Client
	collection string
}

func newRecordRepository(client *firestore.Client) *recordRepository {
	return &recordRepository{
		client:     client,
		collection: DefaultCollection,
	}
}

func (r *recordRepository) records() *firestore.CollectionRef {
	return r.client.Collection(r.collection)
}

func (r *recordRepository) Insert(ctx context.Context, record *model.HealthRecord) (*model.HealthRecord, error) {
	if record.Content == "" {
		return nil, goerr.New("record content must not be empty")
	}
	if record.ID == "" {
		record.ID = model.NewRecordID()
	}

	docRef := r.records().Doc(string(record.ID))
	if _, err := docRef.Create(ctx, toRecordDoc(record)); err != nil {
		return nil, goerr.Wrap(err, "failed to insert record", goerr.V("id", record.ID))
	}

	return record, nil
}

func (r *recordRepository) FindByEmbedding(ctx context.Context, embedding []float32, limit int) ([]*model.ScoredRecord, error) {
	vq := r.records().FindNearest("embedding",
		firestore.Vector32(embedding),
		limit,
		firestore.DistanceMeasureCosine,
		&firestore.FindNearestOptions{
			DistanceResultField: distanceField,
		})

	iter := vq.Documents(ctx)
	defer iter.Stop()

	results := make([]*model.ScoredRecord, 0, limit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate vector search results")
		}

		var d recordDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal record from vector search")
		}

		// Cosine distance in [0, 2]; similarity = 1 - distance
		score := 0.0
		if raw, err := doc.DataAt(distanceField); err == nil {
			if distance, ok := raw.(float64); ok {
				score = 1 - distance
			}
		}

		results = append(results, &model.ScoredRecord{
			Record: fromRecordDoc(&d),
			Score:  score,
		})
	}

	return results, nil
}

func (r *recordRepository) Scan(ctx context.Context, filter model.RecordFilter, limit int) ([]*model.HealthRecord, error) {
	q := r.records().Query
	if filter.Kind != "" {
		q = q.Where("type", "==", filter.Kind.String())
	}
	if filter.Metric != "" {
		q = q.Where("metric", "==", filter.Metric.String())
	}

	iter := q.Limit(limit).Documents(ctx)
	defer iter.Stop()

	records := make([]*model.HealthRecord, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate records")
		}

		var d recordDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal record")
		}

		records = append(records, fromRecordDoc(&d))
	}

	return records, nil
}
