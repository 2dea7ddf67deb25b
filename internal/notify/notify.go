// Package notify creates notification rows as a side effect of answer and
// comment writes, and pushes them to live subscribers.
package notify

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/stackit-team/stackit-server/internal/domain"
	"github.com/stackit-team/stackit-server/internal/storage"

	"go.uber.org/zap"
)

// mentionRegex runs over the JSON-serialized content, the same scan the
// original performed. It will also match inside code blocks and URLs; that
// looseness is part of the mention contract for now.
var mentionRegex = regexp.MustCompile(`@(\w+)`)

// Notifier performs the synchronous fan-out inside write handlers.
// Failures are logged, never propagated: a lost notification must not fail
// the write that triggered it.
type Notifier struct {
	store storage.Storage
	hub   *Hub
	log   *zap.Logger
}

func New(store storage.Storage, hub *Hub, log *zap.Logger) *Notifier {
	return &Notifier{store: store, hub: hub, log: log}
}

// AnswerPosted notifies the question author (unless they answered their own
// question) and every user mentioned in the answer body.
func (n *Notifier) AnswerPosted(ctx context.Context, question *domain.Question, answer *domain.Answer) {
	actor := answer.Author
	if actor == nil {
		n.log.Warn("answer fan-out skipped: answer has no author loaded", zap.String("answerId", answer.ID))
		return
	}

	if question.AuthorID != actor.ID {
		n.create(ctx, &domain.Notification{
			Type:    domain.NotificationAnswered,
			Message: fmt.Sprintf("%s answered your question: %q", actor.Username, question.Title),
			UserID:  question.AuthorID,
		})
	}

	n.fanOutMentions(ctx, answer.Content, actor,
		fmt.Sprintf("You were mentioned in an answer by @%s", actor.Username))
}

// CommentPosted notifies the answer author (unless they commented on their
// own answer) and every user mentioned in the comment body. The answer must
// arrive with its author and question loaded.
func (n *Notifier) CommentPosted(ctx context.Context, answer *domain.Answer, comment *domain.Comment) {
	actor := comment.Author
	if actor == nil {
		n.log.Warn("comment fan-out skipped: comment has no author loaded", zap.String("commentId", comment.ID))
		return
	}

	if answer.AuthorID != actor.ID {
		title := ""
		if answer.Question != nil {
			title = answer.Question.Title
		}
		n.create(ctx, &domain.Notification{
			Type:    domain.NotificationCommented,
			Message: fmt.Sprintf("%s commented on your answer to: %q", actor.Username, title),
			UserID:  answer.AuthorID,
		})
	}

	n.fanOutMentions(ctx, comment.Content, actor,
		fmt.Sprintf("You were mentioned in a comment by @%s", actor.Username))
}

// fanOutMentions resolves @username tokens and emits one MENTIONED
// notification per distinct resolved user, skipping self-mentions and
// usernames that don't exist.
func (n *Notifier) fanOutMentions(ctx context.Context, content domain.Document, actor *domain.User, message string) {
	for _, username := range ScanMentions(content.Serialized()) {
		if username == actor.Username {
			continue
		}
		mentioned, err := n.store.GetUserByUsername(ctx, username)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				n.log.Error("mention lookup failed", zap.String("username", username), zap.Error(err))
			}
			continue
		}
		if mentioned.ID == actor.ID {
			continue
		}
		n.create(ctx, &domain.Notification{
			Type:    domain.NotificationMentioned,
			Message: message,
			UserID:  mentioned.ID,
		})
	}
}

// ScanMentions extracts @username tokens from serialized content, distinct,
// in order of first appearance.
func ScanMentions(serialized string) []string {
	matches := mentionRegex.FindAllStringSubmatch(serialized, -1)
	seen := make(map[string]bool, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}

func (n *Notifier) create(ctx context.Context, notification *domain.Notification) {
	created, err := n.store.CreateNotification(ctx, notification)
	if err != nil {
		n.log.Error("failed to create notification",
			zap.String("type", string(notification.Type)),
			zap.String("userId", notification.UserID),
			zap.Error(err))
		return
	}
	if n.hub != nil {
		n.hub.Publish(created)
	}
}
