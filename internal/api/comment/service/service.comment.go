// Package commentsvc - service quản lý bình luận video.
package commentsvc

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	basemodels "vidtube/internal/api/base/models"
	basesvc "vidtube/internal/api/base/service"
	models "vidtube/internal/api/comment/models"
	"vidtube/internal/common"
	"vidtube/internal/global"
)

// CommentService là service quản lý comments
type CommentService struct {
	*basesvc.BaseServiceMongoImpl[models.Comment]
}

// NewCommentService tạo mới CommentService
func NewCommentService() (*CommentService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Comments)
	if !exist {
		return nil, fmt.Errorf("failed to get comments collection: %v", common.ErrNotFound)
	}

	// Đăng ký quan hệ video -> comments để sửa chữa tham chiếu khi video bị xóa
	basesvc.RegisterModelRelationships(global.MongoDB_ColNames.Comments, models.Comment{})

	return &CommentService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Comment](collection),
	}, nil
}

// Add thêm bình luận mới vào một video. Video phải tồn tại.
func (s *CommentService) Add(ctx context.Context, videoID, ownerID primitive.ObjectID, content string) (models.Comment, error) {
	comment := models.Comment{
		Video:   videoID,
		Owner:   ownerID,
		Content: content,
	}

	if err := basesvc.CheckRelationships(ctx, comment); err != nil {
		var zero models.Comment
		return zero, err
	}

	return s.InsertOne(ctx, comment)
}

// GetVideoComments trả về bình luận của một video kèm thông tin người viết,
// mới nhất trước, có phân trang.
func (s *CommentService) GetVideoComments(ctx context.Context, videoID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[bson.M], error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"video": videoID}}},
	}
	pipeline = append(pipeline, basesvc.OwnerLookupStages("owner", "owner")...)
	pipeline = append(pipeline, basesvc.SortStage("createdAt", true))

	return basesvc.AggregateWithPagination[bson.M](ctx, s.Collection(), pipeline, page, limit)
}

// EditContent sửa nội dung một bình luận. Chỉ người viết được sửa.
func (s *CommentService) EditContent(ctx context.Context, commentID, ownerID primitive.ObjectID, content string) (models.Comment, error) {
	var zero models.Comment

	comment, err := s.FindOneById(ctx, commentID)
	if err != nil {
		return zero, err
	}
	if comment.Owner != ownerID {
		return zero, common.ErrForbidden
	}

	return s.UpdateById(ctx, commentID, &basesvc.UpdateData{
		Set: map[string]interface{}{"content": content},
	})
}

// Delete xóa một bình luận và các like gắn vào nó. Chỉ người viết được xóa.
func (s *CommentService) Delete(ctx context.Context, commentID, ownerID primitive.ObjectID) error {
	comment, err := s.FindOneById(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.Owner != ownerID {
		return common.ErrForbidden
	}

	if err := s.DeleteById(ctx, commentID); err != nil {
		return err
	}

	// Like của bình luận đã xóa chỉ còn là rác, dọn best effort
	if _, _, err := basesvc.RepairReferences(ctx, global.MongoDB_ColNames.Comments, commentID); err != nil {
		logrus.WithFields(logrus.Fields{
			"comment_id": commentID.Hex(),
			"error":      err.Error(),
		}).Warn("Delete: Dọn like của bình luận thất bại")
	}
	return nil
}
