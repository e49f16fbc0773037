package videosvc

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
	"vidtube/internal/global"
)

// ViewResult là kết quả ghi nhận một lượt xem.
// Counted=true khi đây là lần đầu viewer xem video này (view đã được cộng).
type ViewResult struct {
	Counted bool  `json:"counted"`
	Views   int64 `json:"views"`
}

// RecordView ghi nhận lượt xem của viewer trên video.
// Mỗi viewer chỉ được đếm một lần cho mỗi video: điều kiện "video chưa có trong
// watchHistory" nằm ngay trong filter của UpdateOne nên không có khe hở giữa
// kiểm tra và ghi — N request đồng thời thì đúng một request có ModifiedCount=1,
// và chỉ request đó được $inc views.
func (s *VideoService) RecordView(ctx context.Context, videoID, viewerID primitive.ObjectID) (*ViewResult, error) {
	video, err := s.FindOneById(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished && video.Owner != viewerID {
		return nil, common.ErrNotFound
	}

	usersCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, common.ErrNotFound
	}

	now := time.Now().UnixMilli()
	pushResult, err := usersCollection.UpdateOne(ctx,
		bson.M{
			"_id":                viewerID,
			"watchHistory.video": bson.M{"$ne": videoID},
		},
		bson.M{
			"$push": bson.M{"watchHistory": bson.M{"video": videoID, "watchedAt": now}},
			"$set":  bson.M{"updatedAt": now},
		},
	)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	if pushResult.ModifiedCount == 1 {
		// Lần xem đầu tiên: cộng view đúng một lần
		updated, err := s.UpdateById(ctx, videoID, bson.M{"$inc": bson.M{"views": 1}})
		if err != nil {
			return nil, err
		}
		return &ViewResult{Counted: true, Views: updated.Views}, nil
	}

	// Đã xem trước đó: chỉ cập nhật thời điểm xem gần nhất, không cộng view
	_, err = usersCollection.UpdateOne(ctx,
		bson.M{"_id": viewerID, "watchHistory.video": videoID},
		bson.M{"$set": bson.M{"watchHistory.$.watchedAt": now, "updatedAt": now}},
	)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	return &ViewResult{Counted: false, Views: video.Views}, nil
}
