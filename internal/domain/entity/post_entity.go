package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/devlinkhq/devlink/internal/domain/collection"
)

// Like marks that a user liked a post. Identity is the raw user reference,
// no generated id; at most one entry per user.
type Like struct {
	UserID string `json:"user"`
}

// Comment is an embedded entry inside Post. Name and AvatarURL snapshot the
// author's display fields at write time and are not re-synced afterwards.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// Post is owned by its author. Likes and Comments are embedded ordered
// collections, newest first.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}

// LikedBy reports whether userID already has a like on the post.
func (p *Post) LikedBy(userID string) bool {
	return collection.ContainsFunc(p.Likes, func(l Like) bool { return l.UserID == userID })
}

// Like adds a like for userID. Returns false without mutating when the user
// already liked the post.
func (p *Post) Like(userID string) bool {
	if p.LikedBy(userID) {
		return false
	}
	p.Likes = collection.Prepend(p.Likes, Like{UserID: userID})
	return true
}

// Unlike removes userID's like. Returns false when no such like exists.
func (p *Post) Unlike(userID string) bool {
	rest, found := collection.RemoveFirst(p.Likes, func(l Like) bool { return l.UserID == userID })
	p.Likes = rest
	return found
}

// AddComment assigns a fresh id and prepends the comment.
func (p *Post) AddComment(c Comment) Comment {
	c.ID = uuid.NewString()
	p.Comments = collection.Prepend(p.Comments, c)
	return c
}

// CommentByID returns the comment with the given id.
func (p *Post) CommentByID(commentID string) (Comment, bool) {
	return collection.FindFirst(p.Comments, func(c Comment) bool { return c.ID == commentID })
}

// RemoveComment removes the comment with the given id, preserving the order
// of the rest. Reports whether a comment was removed.
func (p *Post) RemoveComment(commentID string) bool {
	rest, found := collection.RemoveFirst(p.Comments, func(c Comment) bool { return c.ID == commentID })
	p.Comments = rest
	return found
}
