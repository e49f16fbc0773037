// Package models - model người dùng (User) thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	basemodels "vidtube/internal/api/base/models"
)

// WatchEntry là một mục trong lịch sử xem của người dùng.
// Mỗi video chỉ xuất hiện một lần trong watchHistory (dùng làm điều kiện đếm view).
type WatchEntry struct {
	Video     primitive.ObjectID `json:"video" bson:"video"`
	WatchedAt int64              `json:"watchedAt" bson:"watchedAt"`
}

// User định nghĩa mô hình người dùng / kênh.
// Username và Email là duy nhất (unique index). Password lưu bcrypt hash, không
// bao giờ trả ra ngoài qua JSON. RefreshToken là token hiện hành duy nhất của
// user, bị xóa khi logout.
type User struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Username     string             `json:"username" bson:"username" index:"unique"`
	Email        string             `json:"email" bson:"email" index:"unique"`
	FullName     string             `json:"fullName" bson:"fullName"`
	Password     string             `json:"-" bson:"password,omitempty"`
	Avatar       *basemodels.Asset  `json:"avatar,omitempty" bson:"avatar,omitempty"`
	CoverImage   *basemodels.Asset  `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	WatchHistory []WatchEntry       `json:"-" bson:"watchHistory,omitempty"`
	RefreshToken string             `json:"-" bson:"refreshToken,omitempty"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}
