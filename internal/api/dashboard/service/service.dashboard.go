// Package dashboardsvc - service thống kê kênh: hồ sơ công khai và số liệu tổng hợp.
package dashboardsvc

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	basesvc "vidtube/internal/api/base/service"
	"vidtube/internal/common"
	"vidtube/internal/global"
)

// ChannelStats là số liệu tổng hợp của một kênh.
type ChannelStats struct {
	TotalVideos       int64 `json:"totalVideos" bson:"totalVideos"`
	TotalViews        int64 `json:"totalViews" bson:"totalViews"`
	TotalLikes        int64 `json:"totalLikes" bson:"totalLikes"`
	TotalComments     int64 `json:"totalComments" bson:"totalComments"`
	TotalTweets       int64 `json:"totalTweets" bson:"totalTweets"`
	SubscriberCount   int64 `json:"subscriberCount" bson:"subscriberCount"`
	SubscribedToCount int64 `json:"subscribedToCount" bson:"subscribedToCount"`
}

// DashboardService là service thống kê kênh
type DashboardService struct {
	users *mongo.Collection
	cache *StatsCache
}

// NewDashboardService tạo mới DashboardService
func NewDashboardService() (*DashboardService, error) {
	users, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}

	svc := &DashboardService{
		users: users,
		cache: NewStatsCache(),
	}
	svc.cache.RegisterInvalidation()
	return svc, nil
}

// GetChannelProfile trả về hồ sơ công khai của một kênh theo username
// (không phân biệt hoa thường), kèm số người đăng ký và trạng thái đăng ký
// của viewer nếu request đã xác thực.
func (s *DashboardService) GetChannelProfile(ctx context.Context, username string, viewerID primitive.ObjectID) (bson.M, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, common.ErrRequiredField
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"username": username}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         global.MongoDB_ColNames.Subscriptions,
			"localField":   "_id",
			"foreignField": "channel",
			"as":           "subscribers",
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         global.MongoDB_ColNames.Subscriptions,
			"localField":   "_id",
			"foreignField": "subscriber",
			"as":           "subscribedTo",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"subscriberCount":   bson.M{"$size": "$subscribers"},
			"subscribedToCount": bson.M{"$size": "$subscribedTo"},
			"isSubscribedByViewer": bson.M{
				"$in": bson.A{viewerID, "$subscribers.subscriber"},
			},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"username":             1,
			"fullName":             1,
			"avatar":               "$avatar.url",
			"coverImage":           "$coverImage.url",
			"subscriberCount":      1,
			"subscribedToCount":    1,
			"isSubscribedByViewer": 1,
			"createdAt":            1,
		}}},
	}

	cursor, err := s.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.NewError(common.ErrCodeDatabaseAggregation, common.MsgAggregation, common.StatusInternalServerError, err)
	}
	defer cursor.Close(ctx)

	var results []bson.M
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if len(results) == 0 {
		return nil, common.ErrNotFound
	}

	// Viewer chưa đăng nhập thì không có trạng thái đăng ký
	if viewerID.IsZero() {
		results[0]["isSubscribedByViewer"] = false
	}
	return results[0], nil
}

// GetChannelStats trả về số liệu tổng hợp của một kênh, đọc từ cache nếu còn
// hạn. Toàn bộ số liệu được gom trong một lệnh aggregate duy nhất trên users.
func (s *DashboardService) GetChannelStats(ctx context.Context, channelID primitive.ObjectID) (*ChannelStats, error) {
	if stats, ok := s.cache.Get(ctx, channelID); ok {
		return stats, nil
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": channelID}}},
		// Video của kênh kèm like và comment của từng video, gom thành một dòng tổng
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": global.MongoDB_ColNames.Videos,
			"let":  bson.M{"ch": "$_id"},
			"pipeline": mongo.Pipeline{
				bson.D{{Key: "$match", Value: bson.M{"$expr": bson.M{"$eq": bson.A{"$owner", "$$ch"}}}}},
				bson.D{{Key: "$lookup", Value: bson.M{
					"from":         global.MongoDB_ColNames.Likes,
					"localField":   "_id",
					"foreignField": "video",
					"as":           "likes",
				}}},
				bson.D{{Key: "$lookup", Value: bson.M{
					"from":         global.MongoDB_ColNames.Comments,
					"localField":   "_id",
					"foreignField": "video",
					"as":           "comments",
				}}},
				bson.D{{Key: "$group", Value: bson.M{
					"_id":           nil,
					"totalVideos":   bson.M{"$sum": 1},
					"totalViews":    bson.M{"$sum": "$views"},
					"totalLikes":    bson.M{"$sum": bson.M{"$size": "$likes"}},
					"totalComments": bson.M{"$sum": bson.M{"$size": "$comments"}},
				}}},
			},
			"as": "videoStats",
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": global.MongoDB_ColNames.Subscriptions,
			"let":  bson.M{"ch": "$_id"},
			"pipeline": mongo.Pipeline{
				bson.D{{Key: "$match", Value: bson.M{"$expr": bson.M{"$eq": bson.A{"$channel", "$$ch"}}}}},
				bson.D{{Key: "$count", Value: "total"}},
			},
			"as": "subscriberStats",
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": global.MongoDB_ColNames.Subscriptions,
			"let":  bson.M{"ch": "$_id"},
			"pipeline": mongo.Pipeline{
				bson.D{{Key: "$match", Value: bson.M{"$expr": bson.M{"$eq": bson.A{"$subscriber", "$$ch"}}}}},
				bson.D{{Key: "$count", Value: "total"}},
			},
			"as": "subscribedToStats",
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": global.MongoDB_ColNames.Tweets,
			"let":  bson.M{"ch": "$_id"},
			"pipeline": mongo.Pipeline{
				bson.D{{Key: "$match", Value: bson.M{"$expr": bson.M{"$eq": bson.A{"$owner", "$$ch"}}}}},
				bson.D{{Key: "$count", Value: "total"}},
			},
			"as": "tweetStats",
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":               0,
			"totalVideos":       bson.M{"$ifNull": bson.A{bson.M{"$first": "$videoStats.totalVideos"}, 0}},
			"totalViews":        bson.M{"$ifNull": bson.A{bson.M{"$first": "$videoStats.totalViews"}, 0}},
			"totalLikes":        bson.M{"$ifNull": bson.A{bson.M{"$first": "$videoStats.totalLikes"}, 0}},
			"totalComments":     bson.M{"$ifNull": bson.A{bson.M{"$first": "$videoStats.totalComments"}, 0}},
			"totalTweets":       bson.M{"$ifNull": bson.A{bson.M{"$first": "$tweetStats.total"}, 0}},
			"subscriberCount":   bson.M{"$ifNull": bson.A{bson.M{"$first": "$subscriberStats.total"}, 0}},
			"subscribedToCount": bson.M{"$ifNull": bson.A{bson.M{"$first": "$subscribedToStats.total"}, 0}},
		}}},
	}

	cursor, err := s.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.NewError(common.ErrCodeDatabaseAggregation, common.MsgAggregation, common.StatusInternalServerError, err)
	}
	defer cursor.Close(ctx)

	var results []ChannelStats
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if len(results) == 0 {
		return nil, common.ErrNotFound
	}

	stats := &results[0]
	s.cache.Set(ctx, channelID, stats)
	return stats, nil
}

// GetChannelVideos trả về video của chính kênh (kể cả chưa publish) cho trang
// quản trị, mới nhất trước.
func (s *DashboardService) GetChannelVideos(ctx context.Context, channelID primitive.ObjectID, page, limit int64) (interface{}, error) {
	videos, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Videos)
	if !exist {
		return nil, common.ErrDependencyUnavailable
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"owner": channelID}}},
		bson.D{{Key: "$project", Value: bson.M{
			"title":       1,
			"thumbnail":   "$thumbnail.url",
			"duration":    1,
			"views":       1,
			"isPublished": 1,
			"createdAt":   1,
		}}},
	}
	pipeline = append(pipeline, basesvc.SortStage("createdAt", true))

	return basesvc.AggregateWithPagination[bson.M](ctx, videos, pipeline, page, limit)
}
