// Package models - model playlist thuộc domain playlist.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Playlist là danh sách video do một user tạo.
// Video bị xóa thì ID của nó được rút khỏi mọi playlist (pull).
type Playlist struct {
	ID          primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Owner       primitive.ObjectID   `json:"owner" bson:"owner" index:"single:1"`
	Name        string               `json:"name" bson:"name"`
	Description string               `json:"description" bson:"description"`
	Videos      []primitive.ObjectID `json:"videos" bson:"videos" relationship:"collection:videos,optional,pull"`
	CreatedAt   int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64                `json:"updatedAt" bson:"updatedAt"`
}
