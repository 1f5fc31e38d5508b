package repository

import (
	"context"

	"lingosphere/internal/docstore"
	"lingosphere/internal/models"
	"lingosphere/internal/qerrors"
)

func (r *Repository) GetTutorByID(ctx context.Context, ID string) (*models.Tutor, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc, err := r.store.Get(ctx, models.FirestoreTutorsCollection, ID)
	if err != nil {
		return nil, classify(err, qerrors.TutorNotFoundError, "error getting tutor")
	}
	return r.decodeTutor(doc)
}

func (r *Repository) ListTutors(ctx context.Context) ([]*models.Tutor, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	docs, err := r.store.List(ctx, models.FirestoreTutorsCollection, docstore.Query{OrderBy: "name"})
	if err != nil {
		return nil, classify(err, nil, "error listing tutors")
	}

	tutors := make([]*models.Tutor, 0, len(docs))
	for _, doc := range docs {
		t, err := r.decodeTutor(doc)
		if err != nil {
			logDecodeError(models.FirestoreTutorsCollection, err)
			continue
		}
		tutors = append(tutors, t)
	}
	return tutors, nil
}

func (r *Repository) CreateTutor(ctx context.Context, c *models.CreateTutorRequest) (*models.Tutor, error) {
	if err := r.Validate(c); err != nil {
		return nil, err
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tutor := &models.Tutor{
		Name:        c.Name,
		Country:     c.Country,
		Experience:  c.Experience,
		Rating:      c.Rating,
		Accent:      c.Accent,
		Avatar:      c.Avatar,
		DataAIHint:  c.DataAIHint,
		Bio:         c.Bio,
		Specialties: c.Specialties,
	}
	if tutor.Specialties == nil {
		tutor.Specialties = []string{}
	}

	ID, err := r.store.Create(ctx, models.FirestoreTutorsCollection, tutorRecord(tutor))
	if err != nil {
		return nil, classify(err, nil, "error creating tutor")
	}
	tutor.ID = ID
	return tutor, nil
}

func (r *Repository) EditTutor(ctx context.Context, c *models.EditTutorRequest) error {
	if err := r.Validate(c); err != nil {
		return err
	}

	var updates []docstore.Update
	add := func(path string, v interface{}) {
		updates = append(updates, docstore.Update{Path: path, Value: v})
	}
	if c.Name != nil {
		add("name", *c.Name)
	}
	if c.Country != nil {
		add("country", *c.Country)
	}
	if c.Experience != nil {
		add("experience", *c.Experience)
	}
	if c.Rating != nil {
		add("rating", *c.Rating)
	}
	if c.Accent != nil {
		add("accent", *c.Accent)
	}
	if c.Avatar != nil {
		add("avatar", *c.Avatar)
	}
	if c.DataAIHint != nil {
		add("dataAiHint", *c.DataAIHint)
	}
	if c.Bio != nil {
		add("bio", *c.Bio)
	}
	if c.Specialties != nil {
		add("specialties", stringsRecord(*c.Specialties))
	}
	if len(updates) == 0 {
		return qerrors.Validation("no fields to update")
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.store.Update(ctx, models.FirestoreTutorsCollection, c.TutorID, updates)
	return classify(err, qerrors.TutorNotFoundError, "error editing tutor")
}

func (r *Repository) DeleteTutor(ctx context.Context, ID string) error {
	if _, err := r.GetTutorByID(ctx, ID); err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.store.Delete(ctx, models.FirestoreTutorsCollection, ID)
	return classify(err, nil, "error deleting tutor")
}

// Helpers

func (r *Repository) decodeTutor(doc *docstore.Document) (*models.Tutor, error) {
	var t models.Tutor
	if err := r.decode(doc, &t); err != nil {
		return nil, err
	}
	t.ID = doc.ID
	return &t, nil
}

func tutorRecord(t *models.Tutor) docstore.Record {
	return docstore.Record{
		"name":        t.Name,
		"country":     t.Country,
		"experience":  t.Experience,
		"rating":      t.Rating,
		"accent":      t.Accent,
		"avatar":      t.Avatar,
		"dataAiHint":  t.DataAIHint,
		"bio":         t.Bio,
		"specialties": stringsRecord(t.Specialties),
	}
}

func stringsRecord(values []string) []interface{} {
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
