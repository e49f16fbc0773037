package engagementsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	basemodels "vidtube/internal/api/base/models"
	basesvc "vidtube/internal/api/base/service"
	models "vidtube/internal/api/engagement/models"
	"vidtube/internal/common"
	"vidtube/internal/global"
)

// EngagementService gom các truy vấn danh sách trên likes và subscriptions.
type EngagementService struct {
	Likes         *basesvc.BaseServiceMongoImpl[models.Like]
	Subscriptions *basesvc.BaseServiceMongoImpl[models.Subscription]
}

// NewEngagementService tạo mới EngagementService
func NewEngagementService() (*EngagementService, error) {
	likes, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Likes)
	if !exist {
		return nil, fmt.Errorf("failed to get likes collection: %v", common.ErrNotFound)
	}
	subscriptions, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Subscriptions)
	if !exist {
		return nil, fmt.Errorf("failed to get subscriptions collection: %v", common.ErrNotFound)
	}

	// Đăng ký quan hệ để like bị xóa theo khi nội dung đích bị xóa
	basesvc.RegisterModelRelationships(global.MongoDB_ColNames.Likes, models.Like{})

	return &EngagementService{
		Likes:         basesvc.NewBaseServiceMongo[models.Like](likes),
		Subscriptions: basesvc.NewBaseServiceMongo[models.Subscription](subscriptions),
	}, nil
}

// GetLikedVideos trả về các video user đã like (chỉ video còn tồn tại và đã
// publish), like mới nhất trước.
func (s *EngagementService) GetLikedVideos(ctx context.Context, userID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[bson.M], error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"likedBy": userID,
			"video":   bson.M{"$exists": true},
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         global.MongoDB_ColNames.Videos,
			"localField":   "video",
			"foreignField": "_id",
			"as":           "video",
			"pipeline": mongo.Pipeline{
				bson.D{{Key: "$match", Value: bson.M{"isPublished": true}}},
				bson.D{{Key: "$project", Value: bson.M{
					"title":     1,
					"thumbnail": "$thumbnail.url",
					"duration":  1,
					"views":     1,
					"owner":     1,
					"createdAt": 1,
				}}},
			},
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"video": bson.M{"$first": "$video"},
		}}},
		// Video đã unpublish hoặc biến mất thì bỏ qua like mồ côi
		bson.D{{Key: "$match", Value: bson.M{"video": bson.M{"$ne": nil}}}},
		bson.D{{Key: "$project", Value: bson.M{
			"video":     1,
			"createdAt": 1,
		}}},
	}
	pipeline = append(pipeline, basesvc.SortStage("createdAt", true))

	return basesvc.AggregateWithPagination[bson.M](ctx, s.Likes.Collection(), pipeline, page, limit)
}

// GetChannelSubscribers trả về danh sách người đăng ký một kênh.
func (s *EngagementService) GetChannelSubscribers(ctx context.Context, channelID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[bson.M], error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"channel": channelID}}},
	}
	pipeline = append(pipeline, basesvc.OwnerLookupStages("subscriber", "subscriber")...)
	pipeline = append(pipeline, basesvc.SortStage("createdAt", true))

	return basesvc.AggregateWithPagination[bson.M](ctx, s.Subscriptions.Collection(), pipeline, page, limit)
}

// GetSubscribedChannels trả về danh sách kênh một user đang đăng ký.
func (s *EngagementService) GetSubscribedChannels(ctx context.Context, subscriberID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[bson.M], error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"subscriber": subscriberID}}},
	}
	pipeline = append(pipeline, basesvc.OwnerLookupStages("channel", "channel")...)
	pipeline = append(pipeline, basesvc.SortStage("createdAt", true))

	return basesvc.AggregateWithPagination[bson.M](ctx, s.Subscriptions.Collection(), pipeline, page, limit)
}
