package domain

import "time"

// Role of a user account. Admins get the moderation surface under /api/admin.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// NotificationType classifies why a notification was created.
type NotificationType string

const (
	NotificationAnswered  NotificationType = "ANSWERED"
	NotificationCommented NotificationType = "COMMENTED"
	NotificationMentioned NotificationType = "MENTIONED"
)

// User represents a registered account.
type User struct {
	ID           string    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username     string    `json:"username" gorm:"type:varchar(50);uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(100);not null"`
	Role         Role      `json:"role" gorm:"type:varchar(10);not null;default:'USER'"`
	CreatedAt    time.Time `json:"createdAt" gorm:"not null;default:now()"`

	Questions     []*Question     `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Answers       []*Answer       `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Comments      []*Comment      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Votes         []*Vote         `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Notifications []*Notification `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Question is a post asking for answers. AcceptedAnswerID, when set, must
// reference one of this question's own answers; the storage layer enforces it.
type Question struct {
	ID               string    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title            string    `json:"title" gorm:"type:varchar(255);not null"`
	Description      Document  `json:"description" gorm:"type:text;not null"`
	AuthorID         string    `json:"authorId" gorm:"type:uuid;not null;index"`
	AcceptedAnswerID *string   `json:"acceptedAnswerId" gorm:"type:uuid"`
	CreatedAt        time.Time `json:"createdAt" gorm:"not null;default:now()"`

	Author  *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Tags    []*Tag    `json:"tags" gorm:"many2many:question_tags;constraint:OnDelete:CASCADE"`
	Answers []*Answer `json:"answers,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

// Answer to a question.
type Answer struct {
	ID         string    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Content    Document  `json:"content" gorm:"type:text;not null"`
	AuthorID   string    `json:"authorId" gorm:"type:uuid;not null;index"`
	QuestionID string    `json:"questionId" gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time `json:"createdAt" gorm:"not null;default:now()"`

	Author   *User      `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Question *Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	Votes    []*Vote    `json:"-" gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE"`
	Comments []*Comment `json:"comments,omitempty" gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE"`
}

// Score is the live sum of the answer's vote values. There is no stored
// counter; Votes must be loaded for the sum to be meaningful.
func (a *Answer) Score() int {
	total := 0
	for _, v := range a.Votes {
		total += v.Value
	}
	return total
}

// Comment on an answer.
type Comment struct {
	ID        string    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Content   Document  `json:"content" gorm:"type:text;not null"`
	AuthorID  string    `json:"authorId" gorm:"type:uuid;not null;index"`
	AnswerID  string    `json:"answerId" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null;default:now()"`

	Author *User   `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Answer *Answer `json:"answer,omitempty" gorm:"foreignKey:AnswerID"`
}

// Tag names are unique and case-sensitive as stored.
type Tag struct {
	ID   string `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name string `json:"name" gorm:"type:varchar(50);uniqueIndex;not null"`

	Questions []*Question `json:"-" gorm:"many2many:question_tags"`
}

// Vote is unique per (answer, user); re-voting overwrites the value.
type Vote struct {
	ID       string `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AnswerID string `json:"answerId" gorm:"type:uuid;not null;uniqueIndex:idx_votes_answer_user"`
	UserID   string `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_votes_answer_user"`
	Value    int    `json:"value" gorm:"not null"`

	Answer *Answer `json:"answer,omitempty" gorm:"foreignKey:AnswerID"`
	User   *User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Notification is immutable after creation except for the IsRead flag.
type Notification struct {
	ID        string           `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Type      NotificationType `json:"type" gorm:"type:varchar(20);not null"`
	Message   string           `json:"message" gorm:"type:text;not null"`
	UserID    string           `json:"userId" gorm:"type:uuid;not null;index"`
	IsRead    bool             `json:"isRead" gorm:"not null;default:false"`
	CreatedAt time.Time        `json:"createdAt" gorm:"not null;default:now()"`
}

// QuestionSummary is the denormalized shape of the public question list.
type QuestionSummary struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      Document  `json:"description"`
	AuthorUsername   string    `json:"authorUsername"`
	Tags             []*Tag    `json:"tags"`
	CreatedAt        time.Time `json:"createdAt"`
	TotalAnswers     int       `json:"totalAnswers"`
	AcceptedAnswerID *string   `json:"acceptedAnswerId"`
}

// TagCount is a tag with how many questions use it.
type TagCount struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	QuestionCount int64  `json:"questionCount"`
}

// UserWithCounts is the admin view of a user plus activity totals.
type UserWithCounts struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	Role              Role      `json:"role"`
	CreatedAt         time.Time `json:"createdAt"`
	QuestionCount     int64     `json:"questionCount"`
	AnswerCount       int64     `json:"answerCount"`
	CommentCount      int64     `json:"commentCount"`
	VoteCount         int64     `json:"voteCount"`
	NotificationCount int64     `json:"notificationCount"`
}

// Stats aggregates per-entity row counts for the admin dashboard.
type Stats struct {
	Users         int64 `json:"users"`
	Questions     int64 `json:"questions"`
	Answers       int64 `json:"answers"`
	Comments      int64 `json:"comments"`
	Votes         int64 `json:"votes"`
	Tags          int64 `json:"tags"`
	Notifications int64 `json:"notifications"`
	Total         int64 `json:"total"`
}

// RecentActivity is the latest content across the site, newest first.
type RecentActivity struct {
	Questions []*Question `json:"questions"`
	Answers   []*Answer   `json:"answers"`
	Comments  []*Comment  `json:"comments"`
}
