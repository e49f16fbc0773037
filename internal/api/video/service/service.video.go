// Package videosvc - service quản lý video: CRUD, feed, view, xóa dây chuyền.
package videosvc

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	basemodels "vidtube/internal/api/base/models"
	basesvc "vidtube/internal/api/base/service"
	cleanupsvc "vidtube/internal/api/cleanup/service"
	models "vidtube/internal/api/video/models"
	"vidtube/internal/common"
	"vidtube/internal/global"
	"vidtube/internal/media"
)

// feedSortFields là các field được phép sắp xếp trên feed.
var feedSortFields = map[string]bool{
	"createdAt": true,
	"views":     true,
	"duration":  true,
	"title":     true,
}

// VideoService là service quản lý videos
type VideoService struct {
	*basesvc.BaseServiceMongoImpl[models.Video]
	cleanup *cleanupsvc.CleanupService
}

// NewVideoService tạo mới VideoService
func NewVideoService() (*VideoService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Videos)
	if !exist {
		return nil, fmt.Errorf("failed to get videos collection: %v", common.ErrNotFound)
	}

	cleanup, err := cleanupsvc.NewCleanupService()
	if err != nil {
		return nil, err
	}

	return &VideoService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Video](collection),
		cleanup:              cleanup,
	}, nil
}

// UploadInput là dữ liệu upload một file trong multipart request.
type UploadInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

// CreateWithAssets upload video file + thumbnail lên storage rồi tạo document video.
// Upload thất bại thì không tạo document; file đã upload trước đó được xóa lại (best effort).
func (s *VideoService) CreateWithAssets(ctx context.Context, owner primitive.ObjectID, title, description string, duration float64, videoFile, thumbnail *UploadInput) (models.Video, error) {
	var zero models.Video
	if global.MediaStore == nil {
		return zero, common.ErrDependencyUnavailable
	}
	if videoFile == nil || thumbnail == nil {
		return zero, common.NewError(
			common.ErrCodeValidationInput,
			"Cần cả video file và thumbnail",
			common.StatusBadRequest,
			nil,
		)
	}

	videoKey := media.NewAssetKey("videos", videoFile.Filename)
	videoURL, err := global.MediaStore.Upload(ctx, videoKey, videoFile.Reader, videoFile.ContentType)
	if err != nil {
		return zero, err
	}

	thumbKey := media.NewAssetKey("thumbnails", thumbnail.Filename)
	thumbURL, err := global.MediaStore.Upload(ctx, thumbKey, thumbnail.Reader, thumbnail.ContentType)
	if err != nil {
		// Thumbnail thất bại thì gỡ video file vừa upload
		if delErr := global.MediaStore.Delete(ctx, videoKey); delErr != nil {
			logrus.WithField("asset_id", videoKey).Warn("CreateWithAssets: Không gỡ được video file sau khi upload thumbnail thất bại")
		}
		return zero, err
	}

	video := models.Video{
		Owner:       owner,
		Title:       title,
		Description: description,
		Duration:    duration,
		VideoFile:   &basemodels.Asset{AssetID: videoKey, URL: videoURL},
		Thumbnail:   &basemodels.Asset{AssetID: thumbKey, URL: thumbURL},
	}

	created, err := s.InsertOne(ctx, video)
	if err != nil {
		// Document không tạo được thì dọn cả hai file
		for _, key := range []string{videoKey, thumbKey} {
			if delErr := global.MediaStore.Delete(ctx, key); delErr != nil {
				logrus.WithField("asset_id", key).Warn("CreateWithAssets: Không dọn được file sau khi insert thất bại")
			}
		}
		return zero, err
	}
	return created, nil
}

// GetFeed trả về danh sách video công khai, join thông tin chủ kênh, hỗ trợ
// tìm kiếm từ khóa, lọc theo kênh, sắp xếp và phân trang.
// viewerID khác zero và trùng ownerFilter thì trả cả video chưa publish của chính viewer.
func (s *VideoService) GetFeed(ctx context.Context, query string, sortBy, sortType string, ownerFilter, viewerID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[bson.M], error) {
	match := bson.M{}

	// Chủ kênh xem kênh của mình thì thấy cả video chưa publish
	if !ownerFilter.IsZero() && ownerFilter == viewerID {
		match["owner"] = ownerFilter
	} else {
		match["isPublished"] = true
		if !ownerFilter.IsZero() {
			match["owner"] = ownerFilter
		}
	}

	if query != "" {
		escaped := regexp.QuoteMeta(query)
		match["$or"] = []bson.M{
			{"title": bson.M{"$regex": escaped, "$options": "i"}},
			{"description": bson.M{"$regex": escaped, "$options": "i"}},
		}
	}

	if !feedSortFields[sortBy] {
		sortBy = "createdAt"
	}
	descending := strings.ToLower(sortType) != "asc"

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
	}
	pipeline = append(pipeline, basesvc.OwnerLookupStages("owner", "owner")...)
	pipeline = append(pipeline, basesvc.SortStage(sortBy, descending))
	pipeline = append(pipeline, bson.D{{Key: "$project", Value: bson.M{
		"title":       1,
		"description": 1,
		"videoFile":   "$videoFile.url",
		"thumbnail":   "$thumbnail.url",
		"duration":    1,
		"views":       1,
		"isPublished": 1,
		"owner":       1,
		"createdAt":   1,
	}}})

	return basesvc.AggregateWithPagination[bson.M](ctx, s.Collection(), pipeline, page, limit)
}

// GetByID trả về một video kèm thông tin chủ kênh. Video chưa publish chỉ
// chủ sở hữu xem được.
func (s *VideoService) GetByID(ctx context.Context, videoID, viewerID primitive.ObjectID) (bson.M, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": videoID}}},
	}
	pipeline = append(pipeline, basesvc.OwnerLookupStages("owner", "owner")...)

	results, err := s.AggregateRaw(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, common.ErrNotFound
	}

	doc := results[0]
	if published, ok := doc["isPublished"].(bool); ok && !published {
		ownerDoc, _ := doc["owner"].(bson.M)
		ownerID, _ := ownerDoc["_id"].(primitive.ObjectID)
		if viewerID.IsZero() || ownerID != viewerID {
			return nil, common.ErrNotFound
		}
	}
	return doc, nil
}

// TogglePublishStatus đảo trạng thái publish của video. Chỉ chủ sở hữu được phép.
func (s *VideoService) TogglePublishStatus(ctx context.Context, videoID, ownerID primitive.ObjectID) (models.Video, error) {
	var zero models.Video
	video, err := s.FindOneById(ctx, videoID)
	if err != nil {
		return zero, err
	}
	if video.Owner != ownerID {
		return zero, common.ErrForbidden
	}

	return s.UpdateById(ctx, videoID, &basesvc.UpdateData{
		Set: map[string]interface{}{"isPublished": !video.IsPublished},
	})
}

// UpdateMetadata cập nhật title/description. Chỉ chủ sở hữu được phép.
func (s *VideoService) UpdateMetadata(ctx context.Context, videoID, ownerID primitive.ObjectID, title, description string) (models.Video, error) {
	var zero models.Video
	video, err := s.FindOneById(ctx, videoID)
	if err != nil {
		return zero, err
	}
	if video.Owner != ownerID {
		return zero, common.ErrForbidden
	}

	set := make(map[string]interface{})
	if title != "" {
		set["title"] = title
	}
	if description != "" {
		set["description"] = description
	}
	if len(set) == 0 {
		return zero, common.ErrRequiredField
	}

	return s.UpdateById(ctx, videoID, &basesvc.UpdateData{Set: set})
}

// UpdateThumbnail thay thumbnail của video, xóa thumbnail cũ trên storage (best effort).
func (s *VideoService) UpdateThumbnail(ctx context.Context, videoID, ownerID primitive.ObjectID, upload *UploadInput) (models.Video, error) {
	var zero models.Video
	if global.MediaStore == nil {
		return zero, common.ErrDependencyUnavailable
	}

	video, err := s.FindOneById(ctx, videoID)
	if err != nil {
		return zero, err
	}
	if video.Owner != ownerID {
		return zero, common.ErrForbidden
	}

	key := media.NewAssetKey("thumbnails", upload.Filename)
	url, err := global.MediaStore.Upload(ctx, key, upload.Reader, upload.ContentType)
	if err != nil {
		return zero, err
	}

	updated, err := s.UpdateById(ctx, videoID, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"thumbnail": &basemodels.Asset{AssetID: key, URL: url},
		},
	})
	if err != nil {
		return zero, err
	}

	if video.Thumbnail != nil && video.Thumbnail.AssetID != "" {
		if err := global.MediaStore.Delete(ctx, video.Thumbnail.AssetID); err != nil {
			logrus.WithFields(logrus.Fields{
				"video_id": videoID.Hex(),
				"asset_id": video.Thumbnail.AssetID,
			}).Warn("UpdateThumbnail: Không xóa được thumbnail cũ trên storage")
		}
	}
	return updated, nil
}
