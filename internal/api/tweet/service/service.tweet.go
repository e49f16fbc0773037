// Package tweetsvc - service quản lý tweet.
package tweetsvc

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	basemodels "vidtube/internal/api/base/models"
	basesvc "vidtube/internal/api/base/service"
	models "vidtube/internal/api/tweet/models"
	"vidtube/internal/common"
	"vidtube/internal/global"
)

// TweetService là service quản lý tweets
type TweetService struct {
	*basesvc.BaseServiceMongoImpl[models.Tweet]
}

// NewTweetService tạo mới TweetService
func NewTweetService() (*TweetService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Tweets)
	if !exist {
		return nil, fmt.Errorf("failed to get tweets collection: %v", common.ErrNotFound)
	}

	return &TweetService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Tweet](collection),
	}, nil
}

// Add tạo tweet mới cho user đang đăng nhập.
func (s *TweetService) Add(ctx context.Context, ownerID primitive.ObjectID, content string) (models.Tweet, error) {
	return s.InsertOne(ctx, models.Tweet{
		Owner:   ownerID,
		Content: content,
	})
}

// GetUserTweets trả về tweet của một kênh kèm thông tin chủ kênh,
// mới nhất trước, có phân trang.
func (s *TweetService) GetUserTweets(ctx context.Context, ownerID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[bson.M], error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"owner": ownerID}}},
	}
	pipeline = append(pipeline, basesvc.OwnerLookupStages("owner", "owner")...)
	pipeline = append(pipeline, basesvc.SortStage("createdAt", true))

	return basesvc.AggregateWithPagination[bson.M](ctx, s.Collection(), pipeline, page, limit)
}

// EditContent sửa nội dung một tweet. Chỉ chủ sở hữu được sửa.
func (s *TweetService) EditContent(ctx context.Context, tweetID, ownerID primitive.ObjectID, content string) (models.Tweet, error) {
	var zero models.Tweet

	tweet, err := s.FindOneById(ctx, tweetID)
	if err != nil {
		return zero, err
	}
	if tweet.Owner != ownerID {
		return zero, common.ErrForbidden
	}

	return s.UpdateById(ctx, tweetID, &basesvc.UpdateData{
		Set: map[string]interface{}{"content": content},
	})
}

// Delete xóa một tweet và các like gắn vào nó. Chỉ chủ sở hữu được xóa.
func (s *TweetService) Delete(ctx context.Context, tweetID, ownerID primitive.ObjectID) error {
	tweet, err := s.FindOneById(ctx, tweetID)
	if err != nil {
		return err
	}
	if tweet.Owner != ownerID {
		return common.ErrForbidden
	}

	if err := s.DeleteById(ctx, tweetID); err != nil {
		return err
	}

	if _, _, err := basesvc.RepairReferences(ctx, global.MongoDB_ColNames.Tweets, tweetID); err != nil {
		logrus.WithFields(logrus.Fields{
			"tweet_id": tweetID.Hex(),
			"error":    err.Error(),
		}).Warn("Delete: Dọn like của tweet thất bại")
	}
	return nil
}
