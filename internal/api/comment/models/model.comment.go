// Package models - model bình luận thuộc domain comment.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment là một bình luận gắn vào video.
// Video bị xóa thì toàn bộ comment của nó bị xóa theo (cascade).
type Comment struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Video     primitive.ObjectID `json:"video" bson:"video" index:"single:1" relationship:"collection:videos,error:Video không tồn tại,cascade"`
	Owner     primitive.ObjectID `json:"owner" bson:"owner" index:"single:1"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
