package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stackit-team/stackit-server/internal/domain"
	"github.com/stackit-team/stackit-server/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Store implements the Storage interface backed by PostgreSQL.
type Store struct {
	db *gorm.DB
}

// New opens a connection and migrates the schema. Cascading deletes are
// declared on the model constraints, so AutoMigrate installs them.
func New(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Question{},
		&domain.Answer{},
		&domain.Comment{},
		&domain.Tag{},
		&domain.Vote{},
		&domain.Notification{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return storage.ErrConflict
	default:
		return err
	}
}

// === Users ===

func (s *Store) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, mapErr(err)
	}
	return user, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

const userCountsSelect = `users.id, users.username, users.email, users.role, users.created_at,
	(SELECT count(*) FROM questions WHERE questions.author_id = users.id) AS question_count,
	(SELECT count(*) FROM answers WHERE answers.author_id = users.id) AS answer_count,
	(SELECT count(*) FROM comments WHERE comments.author_id = users.id) AS comment_count,
	(SELECT count(*) FROM votes WHERE votes.user_id = users.id) AS vote_count,
	(SELECT count(*) FROM notifications WHERE notifications.user_id = users.id) AS notification_count`

func (s *Store) ListUsers(ctx context.Context) ([]*domain.UserWithCounts, error) {
	var users []*domain.UserWithCounts
	err := s.db.WithContext(ctx).
		Model(&domain.User{}).
		Select(userCountsSelect).
		Order("users.created_at DESC").
		Scan(&users).Error
	return users, mapErr(err)
}

func (s *Store) GetUserWithCounts(ctx context.Context, id string) (*domain.UserWithCounts, error) {
	var user domain.UserWithCounts
	err := s.db.WithContext(ctx).
		Model(&domain.User{}).
		Select(userCountsSelect).
		Where("users.id = ?", id).
		Take(&user).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&domain.User{}, "id = ?", id)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// === Questions ===

// findOrCreateTags resolves names to tag rows inside tx. A concurrent create
// of the same name surfaces as a duplicate-key error, in which case the row
// is re-read instead of failing the request.
func findOrCreateTags(tx *gorm.DB, names []string) ([]*domain.Tag, error) {
	tags := make([]*domain.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var tag domain.Tag
		err := tx.First(&tag, "name = ?", name).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = domain.Tag{Name: name}
			err = tx.Create(&tag).Error
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				err = tx.First(&tag, "name = ?", name).Error
			}
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}
	return tags, nil
}

func (s *Store) CreateQuestion(ctx context.Context, question *domain.Question, tagNames []string) (*domain.Question, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := findOrCreateTags(tx, tagNames)
		if err != nil {
			return err
		}
		question.Tags = tags
		return tx.Create(question).Error
	})
	if err != nil {
		return nil, mapErr(err)
	}

	var created domain.Question
	err = s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		First(&created, "id = ?", question.ID).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &created, nil
}

func (s *Store) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	var question domain.Question
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("answers.created_at ASC") }).
		Preload("Answers.Author").
		Preload("Answers.Votes").
		Preload("Answers.Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.created_at ASC") }).
		Preload("Answers.Comments.Author").
		First(&question, "id = ?", id).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &question, nil
}

func (s *Store) ListQuestionSummaries(ctx context.Context) ([]*domain.QuestionSummary, error) {
	var questions []*domain.Question
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Answers").
		Order("created_at DESC").
		Find(&questions).Error
	if err != nil {
		return nil, mapErr(err)
	}

	summaries := make([]*domain.QuestionSummary, len(questions))
	for i, q := range questions {
		username := ""
		if q.Author != nil {
			username = q.Author.Username
		}
		summaries[i] = &domain.QuestionSummary{
			ID:               q.ID,
			Title:            q.Title,
			Description:      q.Description,
			AuthorUsername:   username,
			Tags:             q.Tags,
			CreatedAt:        q.CreatedAt,
			TotalAnswers:     len(q.Answers),
			AcceptedAnswerID: q.AcceptedAnswerID,
		}
	}
	return summaries, nil
}

func (s *Store) ListQuestions(ctx context.Context) ([]*domain.Question, error) {
	var questions []*domain.Question
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Order("created_at DESC").
		Find(&questions).Error
	return questions, mapErr(err)
}

func (s *Store) ListQuestionsByAuthor(ctx context.Context, authorID string) ([]*domain.Question, error) {
	var questions []*domain.Question
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Answers").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&questions).Error
	return questions, mapErr(err)
}

func (s *Store) UpdateQuestion(ctx context.Context, id, title string, description domain.Document, tagNames []string) (*domain.Question, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var question domain.Question
		if err := tx.First(&question, "id = ?", id).Error; err != nil {
			return err
		}

		tags, err := findOrCreateTags(tx, tagNames)
		if err != nil {
			return err
		}

		// Full re-association: drop the old set, connect the new one.
		if err := tx.Model(&question).Association("Tags").Replace(tags); err != nil {
			return err
		}

		return tx.Model(&question).Updates(map[string]interface{}{
			"title":       title,
			"description": description,
		}).Error
	})
	if err != nil {
		return nil, mapErr(err)
	}

	var updated domain.Question
	err = s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		First(&updated, "id = ?", id).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &updated, nil
}

func (s *Store) DeleteQuestion(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Select(clause.Associations).Delete(&domain.Question{ID: id})
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) AcceptAnswer(ctx context.Context, questionID, answerID string) (*domain.Question, error) {
	var question domain.Question
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&question, "id = ?", questionID).Error; err != nil {
			return err
		}

		// The accepted answer must belong to this question.
		var count int64
		if err := tx.Model(&domain.Answer{}).
			Where("id = ? AND question_id = ?", answerID, questionID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return storage.ErrNotFound
		}

		question.AcceptedAnswerID = &answerID
		return tx.Model(&question).Update("accepted_answer_id", answerID).Error
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return &question, nil
}

// === Answers ===

func (s *Store) CreateAnswer(ctx context.Context, answer *domain.Answer) (*domain.Answer, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Question{}).Where("id = ?", answer.QuestionID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return storage.ErrNotFound
		}
		return tx.Create(answer).Error
	})
	if err != nil {
		return nil, mapErr(err)
	}

	var created domain.Answer
	err = s.db.WithContext(ctx).
		Preload("Author").
		Preload("Question").
		First(&created, "id = ?", answer.ID).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &created, nil
}

func (s *Store) GetAnswerByID(ctx context.Context, id string) (*domain.Answer, error) {
	var answer domain.Answer
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Question").
		First(&answer, "id = ?", id).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &answer, nil
}

func (s *Store) ListAnswers(ctx context.Context) ([]*domain.Answer, error) {
	var answers []*domain.Answer
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Question").
		Order("created_at DESC").
		Find(&answers).Error
	return answers, mapErr(err)
}

func (s *Store) ListAnswersByAuthor(ctx context.Context, authorID string) ([]*domain.Answer, error) {
	var answers []*domain.Answer
	err := s.db.WithContext(ctx).
		Preload("Question").
		Preload("Votes").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&answers).Error
	return answers, mapErr(err)
}

func (s *Store) UpdateAnswerContent(ctx context.Context, id string, content domain.Document) (*domain.Answer, error) {
	res := s.db.WithContext(ctx).Model(&domain.Answer{ID: id}).Update("content", content)
	if res.Error != nil {
		return nil, mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, storage.ErrNotFound
	}
	return s.GetAnswerByID(ctx, id)
}

func (s *Store) DeleteAnswer(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Select(clause.Associations).Delete(&domain.Answer{ID: id})
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// === Comments ===

func (s *Store) CreateComment(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Answer{}).Where("id = ?", comment.AnswerID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return storage.ErrNotFound
		}
		return tx.Create(comment).Error
	})
	if err != nil {
		return nil, mapErr(err)
	}

	var created domain.Comment
	err = s.db.WithContext(ctx).
		Preload("Author").
		Preload("Answer").
		First(&created, "id = ?", comment.ID).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &created, nil
}

func (s *Store) GetCommentByID(ctx context.Context, id string) (*domain.Comment, error) {
	var comment domain.Comment
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Answer").
		Preload("Answer.Question").
		First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &comment, nil
}

func (s *Store) ListComments(ctx context.Context) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Answer").
		Preload("Answer.Question").
		Order("created_at DESC").
		Find(&comments).Error
	return comments, mapErr(err)
}

func (s *Store) ListCommentsByAuthor(ctx context.Context, authorID string) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := s.db.WithContext(ctx).
		Preload("Answer").
		Preload("Answer.Question").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, mapErr(err)
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&domain.Comment{}, "id = ?", id)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// === Votes ===

// UpsertVote relies on the (answer_id, user_id) unique index plus an atomic
// ON CONFLICT update. There is deliberately no read-then-write here.
func (s *Store) UpsertVote(ctx context.Context, vote *domain.Vote) (*domain.Vote, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&domain.Answer{}).Where("id = ?", vote.AnswerID).Count(&count).Error; err != nil {
		return nil, mapErr(err)
	}
	if count == 0 {
		return nil, storage.ErrNotFound
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "answer_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(vote).Error
	if err != nil {
		return nil, mapErr(err)
	}

	var stored domain.Vote
	err = s.db.WithContext(ctx).
		Preload("User").
		First(&stored, "answer_id = ? AND user_id = ?", vote.AnswerID, vote.UserID).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &stored, nil
}

// === Tags ===

func (s *Store) ListTags(ctx context.Context) ([]*domain.TagCount, error) {
	var tags []*domain.TagCount
	err := s.db.WithContext(ctx).
		Model(&domain.Tag{}).
		Select("tags.id, tags.name, count(question_tags.question_id) AS question_count").
		Joins("LEFT JOIN question_tags ON question_tags.tag_id = tags.id").
		Group("tags.id, tags.name").
		Order("tags.name ASC").
		Scan(&tags).Error
	return tags, mapErr(err)
}

func (s *Store) GetTagByID(ctx context.Context, id string) (*domain.Tag, error) {
	var tag domain.Tag
	if err := s.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &tag, nil
}

func (s *Store) CreateTag(ctx context.Context, name string) (*domain.Tag, error) {
	tag := domain.Tag{Name: strings.TrimSpace(name)}
	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, mapErr(err)
	}
	return &tag, nil
}

func (s *Store) UpdateTag(ctx context.Context, id, name string) (*domain.Tag, error) {
	var tag domain.Tag
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tag, "id = ?", id).Error; err != nil {
			return err
		}
		tag.Name = strings.TrimSpace(name)
		return tx.Model(&tag).Update("name", tag.Name).Error
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return &tag, nil
}

func (s *Store) DeleteTag(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Select(clause.Associations).Delete(&domain.Tag{ID: id})
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// === Notifications ===

func (s *Store) CreateNotification(ctx context.Context, notification *domain.Notification) (*domain.Notification, error) {
	if err := s.db.WithContext(ctx).Create(notification).Error; err != nil {
		return nil, mapErr(err)
	}
	return notification, nil
}

func (s *Store) ListNotifications(ctx context.Context, userID string) ([]*domain.Notification, error) {
	var notifications []*domain.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, mapErr(err)
}

func (s *Store) MarkNotificationsRead(ctx context.Context, userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id IN ? AND user_id = ?", ids, userID).
		Update("is_read", true)
	return res.RowsAffected, mapErr(res.Error)
}

// === Admin aggregates ===

func (s *Store) Stats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	counts := []struct {
		model interface{}
		dst   *int64
	}{
		{&domain.User{}, &stats.Users},
		{&domain.Question{}, &stats.Questions},
		{&domain.Answer{}, &stats.Answers},
		{&domain.Comment{}, &stats.Comments},
		{&domain.Vote{}, &stats.Votes},
		{&domain.Tag{}, &stats.Tags},
		{&domain.Notification{}, &stats.Notifications},
	}
	for _, c := range counts {
		if err := s.db.WithContext(ctx).Model(c.model).Count(c.dst).Error; err != nil {
			return nil, mapErr(err)
		}
	}
	stats.Total = stats.Users + stats.Questions + stats.Answers +
		stats.Comments + stats.Votes + stats.Tags + stats.Notifications
	return &stats, nil
}

func (s *Store) RecentActivity(ctx context.Context, limit int) (*domain.RecentActivity, error) {
	activity := &domain.RecentActivity{}

	err := s.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Find(&activity.Questions).Error
	if err != nil {
		return nil, mapErr(err)
	}

	err = s.db.WithContext(ctx).
		Preload("Author").
		Preload("Question").
		Order("created_at DESC").
		Limit(limit).
		Find(&activity.Answers).Error
	if err != nil {
		return nil, mapErr(err)
	}

	err = s.db.WithContext(ctx).
		Preload("Author").
		Preload("Answer").
		Preload("Answer.Question").
		Order("created_at DESC").
		Limit(limit).
		Find(&activity.Comments).Error
	if err != nil {
		return nil, mapErr(err)
	}

	return activity, nil
}
