// Package models - model tweet (bài đăng ngắn) thuộc domain tweet.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tweet là một bài đăng ngắn của kênh, không gắn vào video nào.
type Tweet struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Owner     primitive.ObjectID `json:"owner" bson:"owner" index:"single:1"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
