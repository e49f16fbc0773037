package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription là một lượt đăng ký kênh: Subscriber theo dõi Channel.
// Không ai được tự đăng ký kênh của chính mình.
type Subscription struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Channel    primitive.ObjectID `json:"channel" bson:"channel" index:"single:1"`
	Subscriber primitive.ObjectID `json:"subscriber" bson:"subscriber" index:"single:1"`
	CreatedAt  int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64              `json:"updatedAt" bson:"updatedAt"`
}
