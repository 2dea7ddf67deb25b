package inmemory

import (
	"context"
	"testing"

	"github.com/stackit-team/stackit-server/internal/domain"
	"github.com/stackit-team/stackit-server/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates a store with two users ready to post.
func newTestStore(t *testing.T) (*Store, *domain.User, *domain.User) {
	t.Helper()
	store := New()
	ctx := context.Background()

	alice, err := store.CreateUser(ctx, &domain.User{
		Username: "alice", Email: "alice@example.com", PasswordHash: "hash",
	})
	require.NoError(t, err)

	bob, err := store.CreateUser(ctx, &domain.User{
		Username: "bob", Email: "bob@example.com", PasswordHash: "hash",
	})
	require.NoError(t, err)

	return store, alice, bob
}

func createQuestion(t *testing.T, store *Store, authorID string, tags ...string) *domain.Question {
	t.Helper()
	q, err := store.CreateQuestion(context.Background(), &domain.Question{
		Title:       "How do I do the thing?",
		Description: domain.PlainText("details"),
		AuthorID:    authorID,
	}, tags)
	require.NoError(t, err)
	return q
}

func createAnswer(t *testing.T, store *Store, questionID, authorID string) *domain.Answer {
	t.Helper()
	a, err := store.CreateAnswer(context.Background(), &domain.Answer{
		Content:    domain.PlainText("like this"),
		AuthorID:   authorID,
		QuestionID: questionID,
	})
	require.NoError(t, err)
	return a
}

func TestCreateUser_DuplicateRejected(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateUser(ctx, &domain.User{
		Username: "alice", Email: "other@example.com", PasswordHash: "hash",
	})
	assert.ErrorIs(t, err, storage.ErrConflict, "duplicate username")

	_, err = store.CreateUser(ctx, &domain.User{
		Username: "carol", Email: "alice@example.com", PasswordHash: "hash",
	})
	assert.ErrorIs(t, err, storage.ErrConflict, "duplicate email")

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2, "no rows created for rejected signups")
}

func TestUpsertVote_Idempotent(t *testing.T) {
	store, alice, bob := newTestStore(t)
	ctx := context.Background()

	question := createQuestion(t, store, alice.ID)
	answer := createAnswer(t, store, question.ID, alice.ID)

	first, err := store.UpsertVote(ctx, &domain.Vote{AnswerID: answer.ID, UserID: bob.ID, Value: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Value)

	// Re-voting overwrites; it never appends.
	second, err := store.UpsertVote(ctx, &domain.Vote{AnswerID: answer.ID, UserID: bob.ID, Value: -1})
	require.NoError(t, err)
	assert.Equal(t, -1, second.Value)
	assert.Equal(t, first.ID, second.ID, "same row updated")

	got, err := store.GetAnswerByID(ctx, answer.ID)
	require.NoError(t, err)
	require.Len(t, got.Votes, 1)
	assert.Equal(t, -1, got.Score(), "final contribution is -1, not 0 or -2")
}

func TestUpsertVote_UnknownAnswer(t *testing.T) {
	store, _, bob := newTestStore(t)

	_, err := store.UpsertVote(context.Background(), &domain.Vote{
		AnswerID: "missing", UserID: bob.ID, Value: 1,
	})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestScore_IsLiveSum(t *testing.T) {
	store, alice, bob := newTestStore(t)
	ctx := context.Background()

	carol, err := store.CreateUser(ctx, &domain.User{
		Username: "carol", Email: "carol@example.com", PasswordHash: "hash",
	})
	require.NoError(t, err)

	question := createQuestion(t, store, alice.ID)
	answer := createAnswer(t, store, question.ID, alice.ID)

	_, err = store.UpsertVote(ctx, &domain.Vote{AnswerID: answer.ID, UserID: bob.ID, Value: 1})
	require.NoError(t, err)
	_, err = store.UpsertVote(ctx, &domain.Vote{AnswerID: answer.ID, UserID: carol.ID, Value: 1})
	require.NoError(t, err)

	got, err := store.GetAnswerByID(ctx, answer.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Score())

	_, err = store.UpsertVote(ctx, &domain.Vote{AnswerID: answer.ID, UserID: carol.ID, Value: -1})
	require.NoError(t, err)

	got, err = store.GetAnswerByID(ctx, answer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Score())
}

func TestAcceptAnswer(t *testing.T) {
	store, alice, bob := newTestStore(t)
	ctx := context.Background()

	question := createQuestion(t, store, alice.ID)
	other := createQuestion(t, store, alice.ID)
	answer := createAnswer(t, store, question.ID, bob.ID)

	// Answer from a different question is rejected.
	_, err := store.AcceptAnswer(ctx, other.ID, answer.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	updated, err := store.AcceptAnswer(ctx, question.ID, answer.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.AcceptedAnswerID)
	assert.Equal(t, answer.ID, *updated.AcceptedAnswerID)

	// Accepting again is idempotent.
	again, err := store.AcceptAnswer(ctx, question.ID, answer.ID)
	require.NoError(t, err)
	assert.Equal(t, answer.ID, *again.AcceptedAnswerID)
}

func TestGetQuestionByID_ThreadOrderOldestFirst(t *testing.T) {
	store, alice, bob := newTestStore(t)
	ctx := context.Background()

	question := createQuestion(t, store, alice.ID)
	first := createAnswer(t, store, question.ID, bob.ID)
	second := createAnswer(t, store, question.ID, alice.ID)

	for _, content := range []string{"one", "two"} {
		_, err := store.CreateComment(ctx, &domain.Comment{
			Content: domain.PlainText(content), AuthorID: alice.ID, AnswerID: first.ID,
		})
		require.NoError(t, err)
	}

	got, err := store.GetQuestionByID(ctx, question.ID)
	require.NoError(t, err)
	require.Len(t, got.Answers, 2)
	assert.Equal(t, first.ID, got.Answers[0].ID, "answers read oldest first")
	assert.Equal(t, second.ID, got.Answers[1].ID)

	require.Len(t, got.Answers[0].Comments, 2)
	assert.Equal(t, domain.PlainText("one"), got.Answers[0].Comments[0].Content)
	assert.Equal(t, domain.PlainText("two"), got.Answers[0].Comments[1].Content)
}

func TestDeleteQuestion_Cascades(t *testing.T) {
	store, alice, bob := newTestStore(t)
	ctx := context.Background()

	question := createQuestion(t, store, alice.ID, "go")
	answer := createAnswer(t, store, question.ID, bob.ID)

	comment, err := store.CreateComment(ctx, &domain.Comment{
		Content: domain.PlainText("nice"), AuthorID: alice.ID, AnswerID: answer.ID,
	})
	require.NoError(t, err)

	_, err = store.UpsertVote(ctx, &domain.Vote{AnswerID: answer.ID, UserID: alice.ID, Value: 1})
	require.NoError(t, err)

	require.NoError(t, store.DeleteQuestion(ctx, question.ID))

	_, err = store.GetQuestionByID(ctx, question.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.GetAnswerByID(ctx, answer.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.GetCommentByID(ctx, comment.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Questions)
	assert.Zero(t, stats.Answers)
	assert.Zero(t, stats.Comments)
	assert.Zero(t, stats.Votes, "no orphaned votes")
	assert.Equal(t, int64(1), stats.Tags, "tags survive question deletion")
}

func TestDeleteAnswer_ClearsAcceptedReference(t *testing.T) {
	store, alice, bob := newTestStore(t)
	ctx := context.Background()

	question := createQuestion(t, store, alice.ID)
	answer := createAnswer(t, store, question.ID, bob.ID)

	_, err := store.AcceptAnswer(ctx, question.ID, answer.ID)
	require.NoError(t, err)

	require.NoError(t, store.DeleteAnswer(ctx, answer.ID))

	got, err := store.GetQuestionByID(ctx, question.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AcceptedAnswerID)
}

func TestTagFindOrCreate_Deduplicates(t *testing.T) {
	store, alice, _ := newTestStore(t)
	ctx := context.Background()

	createQuestion(t, store, alice.ID, "go", "testing")
	createQuestion(t, store, alice.ID, "go")

	tags, err := store.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)

	byName := map[string]int64{}
	for _, tag := range tags {
		byName[tag.Name] = tag.QuestionCount
	}
	assert.Equal(t, int64(2), byName["go"])
	assert.Equal(t, int64(1), byName["testing"])
}

func TestUpdateQuestion_ReplacesTagSet(t *testing.T) {
	store, alice, _ := newTestStore(t)
	ctx := context.Background()

	question := createQuestion(t, store, alice.ID, "go", "http")

	updated, err := store.UpdateQuestion(ctx, question.ID, "New title", domain.PlainText("new"), []string{"sql"})
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "sql", updated.Tags[0].Name)
}

func TestMarkNotificationsRead_OwnershipIsolated(t *testing.T) {
	store, alice, bob := newTestStore(t)
	ctx := context.Background()

	forAlice, err := store.CreateNotification(ctx, &domain.Notification{
		Type: domain.NotificationAnswered, Message: "m", UserID: alice.ID,
	})
	require.NoError(t, err)

	forBob, err := store.CreateNotification(ctx, &domain.Notification{
		Type: domain.NotificationAnswered, Message: "m", UserID: bob.ID,
	})
	require.NoError(t, err)

	// Bob tries to flip both his and alice's notification.
	count, err := store.MarkNotificationsRead(ctx, bob.ID, []string{forAlice.ID, forBob.ID, "missing"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "only bob's own row counted")

	aliceList, err := store.ListNotifications(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceList, 1)
	assert.False(t, aliceList[0].IsRead, "alice's notification untouched")

	bobList, err := store.ListNotifications(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobList, 1)
	assert.True(t, bobList[0].IsRead)
}

func TestListQuestionSummaries_NewestFirstWithCounts(t *testing.T) {
	store, alice, bob := newTestStore(t)
	ctx := context.Background()

	first := createQuestion(t, store, alice.ID, "go")
	second := createQuestion(t, store, bob.ID)
	createAnswer(t, store, first.ID, bob.ID)
	createAnswer(t, store, first.ID, alice.ID)

	summaries, err := store.ListQuestionSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, second.ID, summaries[0].ID, "newest first")
	assert.Equal(t, "bob", summaries[0].AuthorUsername)
	assert.Zero(t, summaries[0].TotalAnswers)

	assert.Equal(t, first.ID, summaries[1].ID)
	assert.Equal(t, 2, summaries[1].TotalAnswers)
	require.Len(t, summaries[1].Tags, 1)
}

func TestDeleteUser_CascadesOwnedContent(t *testing.T) {
	store, alice, bob := newTestStore(t)
	ctx := context.Background()

	question := createQuestion(t, store, alice.ID)
	answer := createAnswer(t, store, question.ID, bob.ID)
	_, err := store.UpsertVote(ctx, &domain.Vote{AnswerID: answer.ID, UserID: bob.ID, Value: 1})
	require.NoError(t, err)

	require.NoError(t, store.DeleteUser(ctx, alice.ID))

	_, err = store.GetUserByID(ctx, alice.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.GetQuestionByID(ctx, question.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound, "alice's question gone")
	_, err = store.GetAnswerByID(ctx, answer.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound, "answers under her question gone too")

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Votes)
}

func TestCreateTag_Conflict(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateTag(ctx, "React")
	require.NoError(t, err)

	_, err = store.CreateTag(ctx, "React")
	assert.ErrorIs(t, err, storage.ErrConflict)

	// Case differs, so it is a different tag.
	_, err = store.CreateTag(ctx, "react")
	assert.NoError(t, err)
}

func TestRecentActivity_Limited(t *testing.T) {
	store, alice, bob := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		q := createQuestion(t, store, alice.ID)
		createAnswer(t, store, q.ID, bob.ID)
	}

	activity, err := store.RecentActivity(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, activity.Questions, 3)
	assert.Len(t, activity.Answers, 3)
	assert.Empty(t, activity.Comments)
}
