package global

import (
	"vidtube/config"
	"vidtube/internal/media"
	"vidtube/internal/registry"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName chứa tên các collection trong MongoDB
type CollectionName struct {
	Users         string // Tên collection cho người dùng (kênh)
	Videos        string // Tên collection cho video
	Comments      string // Tên collection cho bình luận
	Tweets        string // Tên collection cho tweet (bài đăng ngắn của kênh)
	Playlists     string // Tên collection cho playlist
	Likes         string // Tên collection cho lượt thích (video/comment/tweet)
	Subscriptions string // Tên collection cho lượt đăng ký kênh
	CleanupTasks  string // Tên collection cho task dọn dẹp asset còn sót
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration         // Cấu hình của server
var MongoDB_ColNames CollectionName            // Tên các collection
var RedisClient *redis.Client                  // Client Redis cho cache thống kê (nil = tắt cache)
var MediaStore media.Store                     // Storage cho file media (S3 hoặc memory khi test)

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases

// InitColNames gán tên cố định cho các collection.
func InitColNames() {
	MongoDB_ColNames = CollectionName{
		Users:         "users",
		Videos:        "videos",
		Comments:      "comments",
		Tweets:        "tweets",
		Playlists:     "playlists",
		Likes:         "likes",
		Subscriptions: "subscriptions",
		CleanupTasks:  "cleanup_tasks",
	}
}
