package storage

import (
	"context"
	"errors"

	"github.com/stackit-team/stackit-server/internal/domain"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a unique constraint is violated.
	ErrConflict = errors.New("record already exists")
)

// Storage is the persistence contract shared by the postgres and in-memory
// implementations.
type Storage interface {
	// Users
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.UserWithCounts, error)
	GetUserWithCounts(ctx context.Context, id string) (*domain.UserWithCounts, error)
	DeleteUser(ctx context.Context, id string) error

	// Questions. Create and Update resolve tag names with find-or-create
	// and fully replace the question's tag set.
	CreateQuestion(ctx context.Context, question *domain.Question, tagNames []string) (*domain.Question, error)
	GetQuestionByID(ctx context.Context, id string) (*domain.Question, error)
	ListQuestionSummaries(ctx context.Context) ([]*domain.QuestionSummary, error)
	ListQuestions(ctx context.Context) ([]*domain.Question, error)
	ListQuestionsByAuthor(ctx context.Context, authorID string) ([]*domain.Question, error)
	UpdateQuestion(ctx context.Context, id, title string, description domain.Document, tagNames []string) (*domain.Question, error)
	DeleteQuestion(ctx context.Context, id string) error
	AcceptAnswer(ctx context.Context, questionID, answerID string) (*domain.Question, error)

	// Answers
	CreateAnswer(ctx context.Context, answer *domain.Answer) (*domain.Answer, error)
	GetAnswerByID(ctx context.Context, id string) (*domain.Answer, error)
	ListAnswers(ctx context.Context) ([]*domain.Answer, error)
	ListAnswersByAuthor(ctx context.Context, authorID string) ([]*domain.Answer, error)
	UpdateAnswerContent(ctx context.Context, id string, content domain.Document) (*domain.Answer, error)
	DeleteAnswer(ctx context.Context, id string) error

	// Comments
	CreateComment(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	GetCommentByID(ctx context.Context, id string) (*domain.Comment, error)
	ListComments(ctx context.Context) ([]*domain.Comment, error)
	ListCommentsByAuthor(ctx context.Context, authorID string) ([]*domain.Comment, error)
	DeleteComment(ctx context.Context, id string) error

	// Votes. UpsertVote is atomic on the (answerID, userID) unique key.
	UpsertVote(ctx context.Context, vote *domain.Vote) (*domain.Vote, error)

	// Tags
	ListTags(ctx context.Context) ([]*domain.TagCount, error)
	GetTagByID(ctx context.Context, id string) (*domain.Tag, error)
	CreateTag(ctx context.Context, name string) (*domain.Tag, error)
	UpdateTag(ctx context.Context, id, name string) (*domain.Tag, error)
	DeleteTag(ctx context.Context, id string) error

	// Notifications. MarkNotificationsRead only touches rows owned by
	// userID and returns how many it flipped.
	CreateNotification(ctx context.Context, notification *domain.Notification) (*domain.Notification, error)
	ListNotifications(ctx context.Context, userID string) ([]*domain.Notification, error)
	MarkNotificationsRead(ctx context.Context, userID string, ids []string) (int64, error)

	// Admin aggregates
	Stats(ctx context.Context) (*domain.Stats, error)
	RecentActivity(ctx context.Context, limit int) (*domain.RecentActivity, error)
}
