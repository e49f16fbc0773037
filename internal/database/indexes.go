// Package database - Index bổ sung (unique compound, text) không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"vidtube/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateAdditionalIndexes tạo các index bổ sung cho toàn hệ thống.
// Gọi một lần khi khởi động server, sau khi đã đăng ký collections.
func CreateAdditionalIndexes(ctx context.Context, db *mongo.Database) error {
	// users: username và email là duy nhất
	users := db.Collection(global.MongoDB_ColNames.Users)
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetName("user_username_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("user_email_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// videos: (owner, createdAt) — liệt kê video theo kênh
	videos := db.Collection(global.MongoDB_ColNames.Videos)
	if _, err := videos.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "owner", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("video_owner_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// videos: text index cho tìm kiếm theo title/description
	if _, err := videos.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "description", Value: "text"},
		},
		Options: options.Index().SetName("video_text_search"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// comments: (video, createdAt) — liệt kê comment theo video
	comments := db.Collection(global.MongoDB_ColNames.Comments)
	if _, err := comments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "video", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("comment_video_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// likes: mỗi cặp (tài nguyên, người like) chỉ tồn tại một bản ghi.
	likes := db.Collection(global.MongoDB_ColNames.Likes)
	for _, model := range likeUniqueIndexModels() {
		if _, err := likes.Indexes().CreateOne(ctx, model); err != nil && !isIndexExistsError(err) {
			return err
		}
	}

	// subscriptions: mỗi cặp (kênh, người đăng ký) chỉ tồn tại một bản ghi
	subscriptions := db.Collection(global.MongoDB_ColNames.Subscriptions)
	if _, err := subscriptions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "channel", Value: 1},
			{Key: "subscriber", Value: 1},
		},
		Options: options.Index().SetName("subscription_channel_subscriber_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// tweets: (owner, createdAt) — liệt kê tweet theo kênh
	tweets := db.Collection(global.MongoDB_ColNames.Tweets)
	if _, err := tweets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "owner", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("tweet_owner_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// playlists: (owner, updatedAt) — liệt kê playlist theo người dùng
	playlists := db.Collection(global.MongoDB_ColNames.Playlists)
	if _, err := playlists.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "owner", Value: 1},
			{Key: "updatedAt", Value: -1},
		},
		Options: options.Index().SetName("playlist_owner_updated"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// cleanup_tasks: (status, nextRetryAt) — worker quét task đến hạn
	cleanupTasks := db.Collection(global.MongoDB_ColNames.CleanupTasks)
	if _, err := cleanupTasks.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "nextRetryAt", Value: 1},
		},
		Options: options.Index().SetName("cleanup_task_status_retry"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

// likeUniqueIndexModels trả về ba index unique của collection likes, mỗi loại
// nội dung một index trên cặp (field tài nguyên, likedBy).
//
// Phải dùng partial filter ($exists) chứ không dùng sparse: index compound
// sparse vẫn index document chỉ cần MỘT key có mặt, mà document like nào cũng
// có likedBy — like tweet sẽ lọt vào index (video, likedBy) với khóa
// (null, likedBy) và va chạm với mọi like khác loại của cùng user.
func likeUniqueIndexModels() []mongo.IndexModel {
	models := make([]mongo.IndexModel, 0, 3)
	for _, it := range []struct {
		name  string
		field string
	}{
		{"like_video_unique", "video"},
		{"like_comment_unique", "comment"},
		{"like_tweet_unique", "tweet"},
	} {
		models = append(models, mongo.IndexModel{
			Keys: bson.D{
				{Key: it.field, Value: 1},
				{Key: "likedBy", Value: 1},
			},
			Options: options.Index().
				SetName(it.name).
				SetUnique(true).
				SetPartialFilterExpression(bson.M{it.field: bson.M{"$exists": true}}),
		})
	}
	return models
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
