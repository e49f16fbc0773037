// Package playlistsvc - service quản lý playlist.
package playlistsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	basemodels "vidtube/internal/api/base/models"
	basesvc "vidtube/internal/api/base/service"
	models "vidtube/internal/api/playlist/models"
	"vidtube/internal/common"
	"vidtube/internal/global"
)

// PlaylistService là service quản lý playlists
type PlaylistService struct {
	*basesvc.BaseServiceMongoImpl[models.Playlist]
}

// NewPlaylistService tạo mới PlaylistService
func NewPlaylistService() (*PlaylistService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Playlists)
	if !exist {
		return nil, fmt.Errorf("failed to get playlists collection: %v", common.ErrNotFound)
	}

	// Đăng ký quan hệ video -> playlists để rút video khỏi playlist khi video bị xóa
	basesvc.RegisterModelRelationships(global.MongoDB_ColNames.Playlists, models.Playlist{})

	return &PlaylistService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Playlist](collection),
	}, nil
}

// Create tạo playlist rỗng cho user đang đăng nhập.
func (s *PlaylistService) Create(ctx context.Context, ownerID primitive.ObjectID, name, description string) (models.Playlist, error) {
	return s.InsertOne(ctx, models.Playlist{
		Owner:       ownerID,
		Name:        name,
		Description: description,
		Videos:      []primitive.ObjectID{},
	})
}

// GetUserPlaylists trả về playlist của một user kèm số video, mới nhất trước.
func (s *PlaylistService) GetUserPlaylists(ctx context.Context, ownerID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[bson.M], error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"owner": ownerID}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"videoCount": bson.M{"$size": bson.M{"$ifNull": bson.A{"$videos", bson.A{}}}},
		}}},
	}
	pipeline = append(pipeline, basesvc.SortStage("createdAt", true))

	return basesvc.AggregateWithPagination[bson.M](ctx, s.Collection(), pipeline, page, limit)
}

// GetDetail trả về một playlist kèm danh sách video đã join (video còn tồn tại
// và đã publish) cùng thông tin chủ playlist.
func (s *PlaylistService) GetDetail(ctx context.Context, playlistID primitive.ObjectID) (bson.M, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": playlistID}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         global.MongoDB_ColNames.Videos,
			"localField":   "videos",
			"foreignField": "_id",
			"as":           "videos",
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
	}
	pipeline = append(pipeline, basesvc.OwnerLookupStages("owner", "owner")...)

	results, err := s.AggregateRaw(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, common.ErrNotFound
	}
	return results[0], nil
}

// UpdateMeta cập nhật tên / mô tả playlist. Chỉ chủ sở hữu được sửa.
func (s *PlaylistService) UpdateMeta(ctx context.Context, playlistID, ownerID primitive.ObjectID, name, description string) (models.Playlist, error) {
	var zero models.Playlist

	if err := s.requireOwner(ctx, playlistID, ownerID); err != nil {
		return zero, err
	}

	set := map[string]interface{}{}
	if name != "" {
		set["name"] = name
	}
	if description != "" {
		set["description"] = description
	}
	if len(set) == 0 {
		return s.FindOneById(ctx, playlistID)
	}

	return s.UpdateById(ctx, playlistID, &basesvc.UpdateData{Set: set})
}

// AddVideo thêm một video vào playlist ($addToSet — thêm lần hai không tạo
// phần tử trùng). Trả về true nếu video thực sự được thêm mới.
func (s *PlaylistService) AddVideo(ctx context.Context, playlistID, ownerID, videoID primitive.ObjectID) (bool, error) {
	if err := s.requireOwner(ctx, playlistID, ownerID); err != nil {
		return false, err
	}

	exists, err := basesvc.CheckRelationshipExists(ctx, global.MongoDB_ColNames.Videos, "_id", videoID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, common.NewError(
			common.ErrCodeValidationInput,
			"Video không tồn tại",
			common.StatusBadRequest,
			nil,
		)
	}

	// Filter loại playlist đã chứa video: thêm lần hai không match, không đổi gì
	result, err := s.Collection().UpdateOne(ctx,
		bson.M{"_id": playlistID, "videos": bson.M{"$ne": videoID}},
		bson.M{
			"$push": bson.M{"videos": videoID},
			"$set":  bson.M{"updatedAt": time.Now().UnixMilli()},
		},
	)
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return result.ModifiedCount == 1, nil
}

// RemoveVideo rút một video khỏi playlist. Trả về true nếu video thực sự bị rút.
func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistID, ownerID, videoID primitive.ObjectID) (bool, error) {
	if err := s.requireOwner(ctx, playlistID, ownerID); err != nil {
		return false, err
	}

	// Filter chỉ match khi playlist đang chứa video, rút lần hai là no-op
	result, err := s.Collection().UpdateOne(ctx,
		bson.M{"_id": playlistID, "videos": videoID},
		bson.M{
			"$pull": bson.M{"videos": videoID},
			"$set":  bson.M{"updatedAt": time.Now().UnixMilli()},
		},
	)
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return result.ModifiedCount == 1, nil
}

// Delete xóa playlist. Chỉ chủ sở hữu được xóa.
func (s *PlaylistService) Delete(ctx context.Context, playlistID, ownerID primitive.ObjectID) error {
	if err := s.requireOwner(ctx, playlistID, ownerID); err != nil {
		return err
	}
	return s.DeleteById(ctx, playlistID)
}

// requireOwner kiểm tra playlist tồn tại và thuộc về user.
func (s *PlaylistService) requireOwner(ctx context.Context, playlistID, ownerID primitive.ObjectID) error {
	playlist, err := s.FindOneById(ctx, playlistID)
	if err != nil {
		return err
	}
	if playlist.Owner != ownerID {
		return common.ErrForbidden
	}
	return nil
}
