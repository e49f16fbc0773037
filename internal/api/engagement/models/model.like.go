// Package models - các model tương tác (like, subscription) thuộc domain engagement.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like là một lượt thích gắn vào đúng một trong ba loại nội dung:
// video, comment hoặc tweet. Hai field còn lại để zero và không được
// ghi xuống document (omitempty) để index sparse hoạt động đúng.
// Nội dung bị xóa thì like của nó bị xóa theo (cascade).
type Like struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Video     primitive.ObjectID `json:"video,omitempty" bson:"video,omitempty" index:"single:1" relationship:"collection:videos,optional,cascade"`
	Comment   primitive.ObjectID `json:"comment,omitempty" bson:"comment,omitempty" index:"single:1" relationship:"collection:comments,optional,cascade"`
	Tweet     primitive.ObjectID `json:"tweet,omitempty" bson:"tweet,omitempty" index:"single:1" relationship:"collection:tweets,optional,cascade"`
	LikedBy   primitive.ObjectID `json:"likedBy" bson:"likedBy" index:"single:1"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
