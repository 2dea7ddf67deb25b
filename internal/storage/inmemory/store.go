package inmemory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/stackit-team/stackit-server/internal/domain"
	"github.com/stackit-team/stackit-server/internal/storage"

	"github.com/google/uuid"
)

// Store implements the Storage interface in memory. It is used for tests and
// for running the server without a database.
type Store struct {
	mu            sync.RWMutex
	users         map[string]*domain.User
	questions     map[string]*domain.Question
	answers       map[string]*domain.Answer
	comments      map[string]*domain.Comment
	tags          map[string]*domain.Tag
	votes         map[string]*domain.Vote // keyed answerID + "\x00" + userID
	notifications map[string]*domain.Notification
	questionTags  map[string][]string // questionID -> tag IDs, connect order

	seq   int64
	seqOf map[string]int64 // entity ID -> insertion sequence, sort tie-break
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:         make(map[string]*domain.User),
		questions:     make(map[string]*domain.Question),
		answers:       make(map[string]*domain.Answer),
		comments:      make(map[string]*domain.Comment),
		tags:          make(map[string]*domain.Tag),
		votes:         make(map[string]*domain.Vote),
		notifications: make(map[string]*domain.Notification),
		questionTags:  make(map[string][]string),
		seqOf:         make(map[string]int64),
	}
}

func voteKey(answerID, userID string) string {
	return answerID + "\x00" + userID
}

func (s *Store) track(id string) {
	s.seq++
	s.seqOf[id] = s.seq
}

// newerFirst orders by CreatedAt descending, breaking ties by insertion order.
func (s *Store) newerFirst(aID string, aAt time.Time, bID string, bAt time.Time) bool {
	if !aAt.Equal(bAt) {
		return aAt.After(bAt)
	}
	return s.seqOf[aID] > s.seqOf[bID]
}

// olderFirst orders by CreatedAt ascending, matching the thread order the
// postgres store preloads answers and comments in.
func (s *Store) olderFirst(aID string, aAt time.Time, bID string, bAt time.Time) bool {
	return s.newerFirst(bID, bAt, aID, aAt)
}

// === Users ===

func (s *Store) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, storage.ErrConflict
		}
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	s.users[user.ID] = user
	s.track(user.ID)
	return s.userCopy(user), nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return s.userCopy(user), nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return s.userCopy(u), nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return s.userCopy(u), nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) ListUsers(ctx context.Context) ([]*domain.UserWithCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.UserWithCounts, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, s.userCountsLocked(u))
	}
	sort.Slice(out, func(i, j int) bool {
		return s.newerFirst(out[i].ID, out[i].CreatedAt, out[j].ID, out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) GetUserWithCounts(ctx context.Context, id string) (*domain.UserWithCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return s.userCountsLocked(user), nil
}

func (s *Store) userCountsLocked(u *domain.User) *domain.UserWithCounts {
	out := &domain.UserWithCounts{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
	for _, q := range s.questions {
		if q.AuthorID == u.ID {
			out.QuestionCount++
		}
	}
	for _, a := range s.answers {
		if a.AuthorID == u.ID {
			out.AnswerCount++
		}
	}
	for _, c := range s.comments {
		if c.AuthorID == u.ID {
			out.CommentCount++
		}
	}
	for _, v := range s.votes {
		if v.UserID == u.ID {
			out.VoteCount++
		}
	}
	for _, n := range s.notifications {
		if n.UserID == u.ID {
			out.NotificationCount++
		}
	}
	return out
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return storage.ErrNotFound
	}

	for qid, q := range s.questions {
		if q.AuthorID == id {
			s.deleteQuestionLocked(qid)
		}
	}
	for aid, a := range s.answers {
		if a.AuthorID == id {
			s.deleteAnswerLocked(aid)
		}
	}
	for cid, c := range s.comments {
		if c.AuthorID == id {
			delete(s.comments, cid)
		}
	}
	for key, v := range s.votes {
		if v.UserID == id {
			delete(s.votes, key)
		}
	}
	for nid, n := range s.notifications {
		if n.UserID == id {
			delete(s.notifications, nid)
		}
	}
	delete(s.users, id)
	return nil
}

// === Questions ===

func (s *Store) CreateQuestion(ctx context.Context, question *domain.Question, tagNames []string) (*domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	question.ID = uuid.NewString()
	question.CreatedAt = time.Now().UTC()
	s.questions[question.ID] = question
	s.track(question.ID)
	s.questionTags[question.ID] = s.findOrCreateTagsLocked(tagNames)

	return s.questionViewLocked(question, false), nil
}

func (s *Store) findOrCreateTagsLocked(names []string) []string {
	ids := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var found *domain.Tag
		for _, t := range s.tags {
			if t.Name == name {
				found = t
				break
			}
		}
		if found == nil {
			found = &domain.Tag{ID: uuid.NewString(), Name: name}
			s.tags[found.ID] = found
			s.track(found.ID)
		}
		ids = append(ids, found.ID)
	}
	return ids
}

func (s *Store) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	question, ok := s.questions[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return s.questionViewLocked(question, true), nil
}

func (s *Store) ListQuestionSummaries(ctx context.Context) ([]*domain.QuestionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.QuestionSummary, 0, len(s.questions))
	for _, q := range s.questions {
		username := ""
		if author, ok := s.users[q.AuthorID]; ok {
			username = author.Username
		}
		total := 0
		for _, a := range s.answers {
			if a.QuestionID == q.ID {
				total++
			}
		}
		out = append(out, &domain.QuestionSummary{
			ID:               q.ID,
			Title:            q.Title,
			Description:      q.Description,
			AuthorUsername:   username,
			Tags:             s.tagsForQuestionLocked(q.ID),
			CreatedAt:        q.CreatedAt,
			TotalAnswers:     total,
			AcceptedAnswerID: q.AcceptedAnswerID,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return s.newerFirst(out[i].ID, out[i].CreatedAt, out[j].ID, out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) ListQuestions(ctx context.Context) ([]*domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Question, 0, len(s.questions))
	for _, q := range s.questions {
		out = append(out, s.questionViewLocked(q, false))
	}
	sort.Slice(out, func(i, j int) bool {
		return s.newerFirst(out[i].ID, out[i].CreatedAt, out[j].ID, out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) ListQuestionsByAuthor(ctx context.Context, authorID string) ([]*domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Question, 0)
	for _, q := range s.questions {
		if q.AuthorID == authorID {
			out = append(out, s.questionViewLocked(q, true))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return s.newerFirst(out[i].ID, out[i].CreatedAt, out[j].ID, out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) UpdateQuestion(ctx context.Context, id, title string, description domain.Document, tagNames []string) (*domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	question, ok := s.questions[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	question.Title = title
	question.Description = description
	s.questionTags[id] = s.findOrCreateTagsLocked(tagNames)
	return s.questionViewLocked(question, false), nil
}

func (s *Store) DeleteQuestion(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[id]; !ok {
		return storage.ErrNotFound
	}
	s.deleteQuestionLocked(id)
	return nil
}

func (s *Store) deleteQuestionLocked(id string) {
	for aid, a := range s.answers {
		if a.QuestionID == id {
			s.deleteAnswerLocked(aid)
		}
	}
	delete(s.questionTags, id)
	delete(s.questions, id)
}

func (s *Store) AcceptAnswer(ctx context.Context, questionID, answerID string) (*domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	question, ok := s.questions[questionID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	answer, ok := s.answers[answerID]
	if !ok || answer.QuestionID != questionID {
		return nil, storage.ErrNotFound
	}

	accepted := answerID
	question.AcceptedAnswerID = &accepted
	return s.questionViewLocked(question, false), nil
}

// === Answers ===

func (s *Store) CreateAnswer(ctx context.Context, answer *domain.Answer) (*domain.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[answer.QuestionID]; !ok {
		return nil, storage.ErrNotFound
	}

	answer.ID = uuid.NewString()
	answer.CreatedAt = time.Now().UTC()
	s.answers[answer.ID] = answer
	s.track(answer.ID)
	return s.answerViewLocked(answer, false), nil
}

func (s *Store) GetAnswerByID(ctx context.Context, id string) (*domain.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	answer, ok := s.answers[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return s.answerViewLocked(answer, false), nil
}

func (s *Store) ListAnswers(ctx context.Context) ([]*domain.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Answer, 0, len(s.answers))
	for _, a := range s.answers {
		out = append(out, s.answerViewLocked(a, false))
	}
	sort.Slice(out, func(i, j int) bool {
		return s.newerFirst(out[i].ID, out[i].CreatedAt, out[j].ID, out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) ListAnswersByAuthor(ctx context.Context, authorID string) ([]*domain.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Answer, 0)
	for _, a := range s.answers {
		if a.AuthorID == authorID {
			out = append(out, s.answerViewLocked(a, true))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return s.newerFirst(out[i].ID, out[i].CreatedAt, out[j].ID, out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) UpdateAnswerContent(ctx context.Context, id string, content domain.Document) (*domain.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	answer, ok := s.answers[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	answer.Content = content
	return s.answerViewLocked(answer, false), nil
}

func (s *Store) DeleteAnswer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.answers[id]; !ok {
		return storage.ErrNotFound
	}
	s.deleteAnswerLocked(id)
	return nil
}

func (s *Store) deleteAnswerLocked(id string) {
	answer := s.answers[id]
	for cid, c := range s.comments {
		if c.AnswerID == id {
			delete(s.comments, cid)
		}
	}
	for key, v := range s.votes {
		if v.AnswerID == id {
			delete(s.votes, key)
		}
	}
	// A question cannot keep pointing at a deleted accepted answer.
	if answer != nil {
		if q, ok := s.questions[answer.QuestionID]; ok && q.AcceptedAnswerID != nil && *q.AcceptedAnswerID == id {
			q.AcceptedAnswerID = nil
		}
	}
	delete(s.answers, id)
}

// === Comments ===

func (s *Store) CreateComment(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.answers[comment.AnswerID]; !ok {
		return nil, storage.ErrNotFound
	}

	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now().UTC()
	s.comments[comment.ID] = comment
	s.track(comment.ID)
	return s.commentViewLocked(comment), nil
}

func (s *Store) GetCommentByID(ctx context.Context, id string) (*domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comment, ok := s.comments[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return s.commentViewLocked(comment), nil
}

func (s *Store) ListComments(ctx context.Context) ([]*domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Comment, 0, len(s.comments))
	for _, c := range s.comments {
		out = append(out, s.commentViewLocked(c))
	}
	sort.Slice(out, func(i, j int) bool {
		return s.newerFirst(out[i].ID, out[i].CreatedAt, out[j].ID, out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) ListCommentsByAuthor(ctx context.Context, authorID string) ([]*domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Comment, 0)
	for _, c := range s.comments {
		if c.AuthorID == authorID {
			out = append(out, s.commentViewLocked(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return s.newerFirst(out[i].ID, out[i].CreatedAt, out[j].ID, out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}

// === Votes ===

func (s *Store) UpsertVote(ctx context.Context, vote *domain.Vote) (*domain.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.answers[vote.AnswerID]; !ok {
		return nil, storage.ErrNotFound
	}

	key := voteKey(vote.AnswerID, vote.UserID)
	existing, ok := s.votes[key]
	if ok {
		existing.Value = vote.Value
	} else {
		existing = &domain.Vote{
			ID:       uuid.NewString(),
			AnswerID: vote.AnswerID,
			UserID:   vote.UserID,
			Value:    vote.Value,
		}
		s.votes[key] = existing
		s.track(existing.ID)
	}

	out := *existing
	if u, ok := s.users[existing.UserID]; ok {
		out.User = s.userCopy(u)
	}
	return &out, nil
}

// === Tags ===

func (s *Store) ListTags(ctx context.Context) ([]*domain.TagCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.TagCount, 0, len(s.tags))
	for _, t := range s.tags {
		count := int64(0)
		for _, tagIDs := range s.questionTags {
			for _, id := range tagIDs {
				if id == t.ID {
					count++
					break
				}
			}
		}
		out = append(out, &domain.TagCount{ID: t.ID, Name: t.Name, QuestionCount: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetTagByID(ctx context.Context, id string) (*domain.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tag, ok := s.tags[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := *tag
	return &out, nil
}

func (s *Store) CreateTag(ctx context.Context, name string) (*domain.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	for _, t := range s.tags {
		if t.Name == name {
			return nil, storage.ErrConflict
		}
	}
	tag := &domain.Tag{ID: uuid.NewString(), Name: name}
	s.tags[tag.ID] = tag
	s.track(tag.ID)
	out := *tag
	return &out, nil
}

func (s *Store) UpdateTag(ctx context.Context, id, name string) (*domain.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tag, ok := s.tags[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	name = strings.TrimSpace(name)
	for _, t := range s.tags {
		if t.ID != id && t.Name == name {
			return nil, storage.ErrConflict
		}
	}
	tag.Name = name
	out := *tag
	return &out, nil
}

func (s *Store) DeleteTag(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tags[id]; !ok {
		return storage.ErrNotFound
	}
	for qid, tagIDs := range s.questionTags {
		kept := tagIDs[:0]
		for _, tid := range tagIDs {
			if tid != id {
				kept = append(kept, tid)
			}
		}
		s.questionTags[qid] = kept
	}
	delete(s.tags, id)
	return nil
}

// === Notifications ===

func (s *Store) CreateNotification(ctx context.Context, notification *domain.Notification) (*domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[notification.UserID]; !ok {
		return nil, storage.ErrNotFound
	}

	notification.ID = uuid.NewString()
	notification.CreatedAt = time.Now().UTC()
	s.notifications[notification.ID] = notification
	s.track(notification.ID)
	out := *notification
	return &out, nil
}

func (s *Store) ListNotifications(ctx context.Context, userID string) ([]*domain.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Notification, 0)
	for _, n := range s.notifications {
		if n.UserID == userID {
			copied := *n
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return s.newerFirst(out[i].ID, out[i].CreatedAt, out[j].ID, out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) MarkNotificationsRead(ctx context.Context, userID string, ids []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, id := range ids {
		n, ok := s.notifications[id]
		if !ok || n.UserID != userID {
			continue
		}
		n.IsRead = true
		count++
	}
	return count, nil
}

// === Admin aggregates ===

func (s *Store) Stats(ctx context.Context) (*domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &domain.Stats{
		Users:         int64(len(s.users)),
		Questions:     int64(len(s.questions)),
		Answers:       int64(len(s.answers)),
		Comments:      int64(len(s.comments)),
		Votes:         int64(len(s.votes)),
		Tags:          int64(len(s.tags)),
		Notifications: int64(len(s.notifications)),
	}
	stats.Total = stats.Users + stats.Questions + stats.Answers +
		stats.Comments + stats.Votes + stats.Tags + stats.Notifications
	return stats, nil
}

func (s *Store) RecentActivity(ctx context.Context, limit int) (*domain.RecentActivity, error) {
	questions, err := s.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}
	answers, err := s.ListAnswers(ctx)
	if err != nil {
		return nil, err
	}
	comments, err := s.ListComments(ctx)
	if err != nil {
		return nil, err
	}

	if len(questions) > limit {
		questions = questions[:limit]
	}
	if len(answers) > limit {
		answers = answers[:limit]
	}
	if len(comments) > limit {
		comments = comments[:limit]
	}
	return &domain.RecentActivity{Questions: questions, Answers: answers, Comments: comments}, nil
}

// === View builders ===
// These attach related records as copies so callers cannot mutate the maps
// through returned pointers.

func (s *Store) userCopy(u *domain.User) *domain.User {
	out := *u
	out.Questions, out.Answers, out.Comments, out.Votes, out.Notifications = nil, nil, nil, nil, nil
	return &out
}

func (s *Store) tagsForQuestionLocked(questionID string) []*domain.Tag {
	ids := s.questionTags[questionID]
	out := make([]*domain.Tag, 0, len(ids))
	for _, id := range ids {
		if t, ok := s.tags[id]; ok {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out
}

func (s *Store) questionViewLocked(q *domain.Question, withAnswers bool) *domain.Question {
	out := *q
	if author, ok := s.users[q.AuthorID]; ok {
		out.Author = s.userCopy(author)
	}
	out.Tags = s.tagsForQuestionLocked(q.ID)
	out.Answers = nil

	if withAnswers {
		for _, a := range s.answers {
			if a.QuestionID == q.ID {
				out.Answers = append(out.Answers, s.answerViewLocked(a, true))
			}
		}
		sort.Slice(out.Answers, func(i, j int) bool {
			return s.olderFirst(out.Answers[i].ID, out.Answers[i].CreatedAt, out.Answers[j].ID, out.Answers[j].CreatedAt)
		})
	}
	return &out
}

func (s *Store) answerViewLocked(a *domain.Answer, withRelations bool) *domain.Answer {
	out := *a
	if author, ok := s.users[a.AuthorID]; ok {
		out.Author = s.userCopy(author)
	}
	if q, ok := s.questions[a.QuestionID]; ok {
		qc := *q
		qc.Answers, qc.Tags, qc.Author = nil, nil, nil
		out.Question = &qc
	}
	out.Votes = nil
	out.Comments = nil
	for _, v := range s.votes {
		if v.AnswerID == a.ID {
			copied := *v
			out.Votes = append(out.Votes, &copied)
		}
	}
	if withRelations {
		for _, c := range s.comments {
			if c.AnswerID == a.ID {
				out.Comments = append(out.Comments, s.commentViewLocked(c))
			}
		}
		sort.Slice(out.Comments, func(i, j int) bool {
			return s.olderFirst(out.Comments[i].ID, out.Comments[i].CreatedAt, out.Comments[j].ID, out.Comments[j].CreatedAt)
		})
	}
	return &out
}

func (s *Store) commentViewLocked(c *domain.Comment) *domain.Comment {
	out := *c
	if author, ok := s.users[c.AuthorID]; ok {
		out.Author = s.userCopy(author)
	}
	if a, ok := s.answers[c.AnswerID]; ok {
		ac := *a
		ac.Votes, ac.Comments, ac.Author = nil, nil, nil
		if q, ok := s.questions[a.QuestionID]; ok {
			qc := *q
			qc.Answers, qc.Tags, qc.Author = nil, nil, nil
			ac.Question = &qc
		}
		out.Answer = &ac
	}
	return &out
}
