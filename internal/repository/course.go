package repository

import (
	"context"

	"lingosphere/internal/docstore"
	"lingosphere/internal/models"
	"lingosphere/internal/qerrors"
)

// GetCourseByID returns the course with the given ID, or qerrors.CourseNotFoundError.
func (r *Repository) GetCourseByID(ctx context.Context, ID string) (*models.Course, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc, err := r.store.Get(ctx, models.FirestoreCoursesCollection, ID)
	if err != nil {
		return nil, classify(err, qerrors.CourseNotFoundError, "error getting course")
	}
	return r.decodeCourse(doc)
}

// ListCourses returns every course. Malformed documents are skipped.
func (r *Repository) ListCourses(ctx context.Context) ([]*models.Course, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	docs, err := r.store.List(ctx, models.FirestoreCoursesCollection, docstore.Query{OrderBy: "title"})
	if err != nil {
		return nil, classify(err, nil, "error listing courses")
	}

	courses := make([]*models.Course, 0, len(docs))
	for _, doc := range docs {
		c, err := r.decodeCourse(doc)
		if err != nil {
			logDecodeError(models.FirestoreCoursesCollection, err)
			continue
		}
		courses = append(courses, c)
	}
	return courses, nil
}

// ListCoursesForUser returns the courses whose enrollment list contains userID.
func (r *Repository) ListCoursesForUser(ctx context.Context, userID string) ([]*models.Course, error) {
	courses, err := r.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	enrolled := make([]*models.Course, 0)
	for _, c := range courses {
		if c.IsEnrolled(userID) {
			enrolled = append(enrolled, c)
		}
	}
	return enrolled, nil
}

func (r *Repository) CreateCourse(ctx context.Context, c *models.CreateCourseRequest) (*models.Course, error) {
	if err := r.Validate(c); err != nil {
		return nil, err
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	course := &models.Course{
		Title:           c.Title,
		Level:           c.Level,
		AgeGroup:        c.AgeGroup,
		Goal:            c.Goal,
		Description:     c.Description,
		Badge:           c.Badge,
		Image:           c.Image,
		DataAIHint:      c.DataAIHint,
		LiveClassLink:   c.LiveClassLink,
		Modules:         c.Modules,
		EnrolledUserIDs: []string{},
	}
	if course.Modules == nil {
		course.Modules = []models.CourseModule{}
	}

	ID, err := r.store.Create(ctx, models.FirestoreCoursesCollection, courseRecord(course))
	if err != nil {
		return nil, classify(err, nil, "error creating course")
	}
	course.ID = ID
	return course, nil
}

// EditCourse updates the fields present in the request. The enrollment list is never touched here.
func (r *Repository) EditCourse(ctx context.Context, c *models.EditCourseRequest) error {
	if err := r.Validate(c); err != nil {
		return err
	}

	var updates []docstore.Update
	addString := func(path string, v *string) {
		if v != nil {
			updates = append(updates, docstore.Update{Path: path, Value: *v})
		}
	}
	addString("title", c.Title)
	addString("level", c.Level)
	addString("ageGroup", c.AgeGroup)
	addString("goal", c.Goal)
	addString("description", c.Description)
	addString("badge", c.Badge)
	addString("image", c.Image)
	addString("dataAiHint", c.DataAIHint)
	addString("liveClassLink", c.LiveClassLink)
	if c.Modules != nil {
		updates = append(updates, docstore.Update{Path: "modules", Value: modulesRecord(*c.Modules)})
	}
	if len(updates) == 0 {
		return qerrors.Validation("no fields to update")
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.store.Update(ctx, models.FirestoreCoursesCollection, c.CourseID, updates)
	return classify(err, qerrors.CourseNotFoundError, "error editing course")
}

// DeleteCourse removes the course and every access request still pending for it.
func (r *Repository) DeleteCourse(ctx context.Context, c *models.DeleteCourseRequest) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		// Make sure the course exists so a typo in the ID is reported.
		if _, err := tx.Get(models.FirestoreCoursesCollection, c.CourseID); err != nil {
			return err
		}
		pending, err := tx.List(models.FirestoreCourseRequestsCollection, docstore.Query{
			Filters: []docstore.Filter{docstore.Where("courseId", c.CourseID)},
		})
		if err != nil {
			return err
		}

		if err := tx.Delete(models.FirestoreCoursesCollection, c.CourseID); err != nil {
			return err
		}
		for _, d := range pending {
			if err := tx.Delete(models.FirestoreCourseRequestsCollection, d.ID); err != nil {
				return err
			}
		}
		return nil
	})
	return classify(err, qerrors.CourseNotFoundError, "error deleting course")
}

// RelatedCourses returns up to limit other courses at the same level.
func (r *Repository) RelatedCourses(ctx context.Context, course *models.Course, limit int) ([]*models.Course, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	docs, err := r.store.List(ctx, models.FirestoreCoursesCollection, docstore.Query{
		Filters: []docstore.Filter{docstore.Where("level", course.Level)},
	})
	if err != nil {
		return nil, classify(err, nil, "error listing related courses")
	}

	related := make([]*models.Course, 0, limit)
	for _, doc := range docs {
		if doc.ID == course.ID {
			continue
		}
		c, err := r.decodeCourse(doc)
		if err != nil {
			logDecodeError(models.FirestoreCoursesCollection, err)
			continue
		}
		related = append(related, c)
		if len(related) == limit {
			break
		}
	}
	return related, nil
}

// Helpers

func (r *Repository) decodeCourse(doc *docstore.Document) (*models.Course, error) {
	var c models.Course
	if err := r.decode(doc, &c); err != nil {
		return nil, err
	}
	c.ID = doc.ID
	return &c, nil
}

func courseRecord(c *models.Course) docstore.Record {
	enrolled := make([]interface{}, 0, len(c.EnrolledUserIDs))
	for _, id := range c.EnrolledUserIDs {
		enrolled = append(enrolled, id)
	}
	return docstore.Record{
		"title":           c.Title,
		"level":           c.Level,
		"ageGroup":        c.AgeGroup,
		"goal":            c.Goal,
		"description":     c.Description,
		"badge":           c.Badge,
		"image":           c.Image,
		"dataAiHint":      c.DataAIHint,
		"liveClassLink":   c.LiveClassLink,
		"modules":         modulesRecord(c.Modules),
		"enrolledUserIds": enrolled,
	}
}

func modulesRecord(modules []models.CourseModule) []interface{} {
	out := make([]interface{}, 0, len(modules))
	for _, m := range modules {
		out = append(out, map[string]interface{}{
			"title":       m.Title,
			"description": m.Description,
			"videoLink":   m.VideoLink,
		})
	}
	return out
}
