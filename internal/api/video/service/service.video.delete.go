package videosvc

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basemodels "vidtube/internal/api/base/models"
	basesvc "vidtube/internal/api/base/service"
	"vidtube/internal/common"
	"vidtube/internal/global"
	"vidtube/internal/media"
)

// DeleteStage là giai đoạn hiện tại của quá trình xóa video dây chuyền.
type DeleteStage string

const (
	StageValidating          DeleteStage = "validating"
	StageAssetsRemoving      DeleteStage = "assets_removing"
	StageRecordRemoving      DeleteStage = "record_removing"
	StageReferencesRepairing DeleteStage = "references_repairing"
	StageDone                DeleteStage = "done"
	StageFailed              DeleteStage = "failed"
)

// assetDeleteAttempts là số lần thử xóa một file trên storage trước khi ghi cleanup task.
const assetDeleteAttempts = 3

// DeleteResult là kết quả của một lần xóa video dây chuyền.
// FailedStage chỉ có giá trị khi Stage == StageFailed.
// DeletedReferences đếm các document bị xóa theo (comments, likes);
// PulledPlaylists / PulledHistories đếm document bị rút phần tử.
type DeleteResult struct {
	Stage             DeleteStage `json:"stage"`
	FailedStage       DeleteStage `json:"failedStage,omitempty"`
	DeletedReferences int64       `json:"deletedReferences"`
	PulledPlaylists   int64       `json:"pulledPlaylists"`
	PulledHistories   int64       `json:"pulledHistories"`
}

// DeleteCascade xóa một video cùng toàn bộ dấu vết của nó: file trên storage,
// document video, rồi các tham chiếu còn sót (comments, likes, playlists, watch history).
//
// Thứ tự các giai đoạn là cố định. Trước khi document bị xóa, mọi lỗi đều dừng
// quá trình và trả về StageFailed; sau khi document đã bị xóa thì không còn đường
// lui — lỗi sửa chữa tham chiếu chỉ được log và ghi cleanup task, không bao giờ
// làm thao tác thất bại. Hủy context chỉ chặn các giai đoạn chưa bắt đầu.
func (s *VideoService) DeleteCascade(ctx context.Context, videoID, ownerID primitive.ObjectID) (DeleteResult, error) {
	result := DeleteResult{Stage: StageValidating}

	// Giai đoạn 1: xác thực quyền sở hữu.
	video, err := s.FindOneById(ctx, videoID)
	if err != nil {
		result.fail(StageValidating)
		return result, err
	}
	if video.Owner != ownerID {
		result.fail(StageValidating)
		return result, common.ErrForbidden
	}

	if err := ctx.Err(); err != nil {
		result.fail(StageAssetsRemoving)
		return result, err
	}

	// Giai đoạn 2: xóa file trên storage, hai file song song.
	// Hết số lần thử thì ghi cleanup task và đi tiếp — file mồ côi trên storage
	// rẻ hơn nhiều so với một video đã mất file nhưng vẫn hiện trên feed.
	result.Stage = StageAssetsRemoving
	var wg sync.WaitGroup
	for _, key := range []string{assetKeyOf(video.VideoFile), assetKeyOf(video.Thumbnail)} {
		if key == "" {
			continue
		}
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			s.deleteAssetWithRetry(ctx, key)
		}(key)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		result.fail(StageRecordRemoving)
		return result, err
	}

	// Giai đoạn 3: xóa document video. Từ đây trở đi không còn đường lui.
	result.Stage = StageRecordRemoving
	if err := s.DeleteById(ctx, videoID); err != nil {
		result.fail(StageRecordRemoving)
		return result, err
	}

	// Giai đoạn 4: sửa chữa tham chiếu còn sót. Các phép này idempotent nên
	// chạy lại bao nhiêu lần cũng được; lỗi chỉ log + ghi cleanup task.
	result.Stage = StageReferencesRepairing
	s.repairVideoReferences(ctx, videoID, &result)

	result.Stage = StageDone
	logrus.WithFields(logrus.Fields{
		"video_id":           videoID.Hex(),
		"deleted_references": result.DeletedReferences,
		"pulled_playlists":   result.PulledPlaylists,
		"pulled_histories":   result.PulledHistories,
	}).Info("DeleteCascade: Đã xóa video cùng toàn bộ tham chiếu")

	return result, nil
}

// fail đánh dấu quá trình dừng lại ở một giai đoạn. Chỉ gọi được trước khi
// document bị xóa — sau điểm đó mọi lỗi đều không làm thao tác thất bại.
func (r *DeleteResult) fail(stage DeleteStage) {
	r.Stage = StageFailed
	r.FailedStage = stage
}

// assetKeyOf trả về key storage của asset, suy ra từ URL nếu thiếu assetId.
func assetKeyOf(asset *basemodels.Asset) string {
	if asset == nil {
		return ""
	}
	if asset.AssetID != "" {
		return asset.AssetID
	}
	return media.KeyFromURL(asset.URL)
}

// deleteAssetWithRetry thử xóa một file trên storage tối đa assetDeleteAttempts lần,
// hết lượt thì ghi cleanup task để worker xử lý sau.
func (s *VideoService) deleteAssetWithRetry(ctx context.Context, key string) {
	if global.MediaStore == nil {
		return
	}
	var lastErr error
	for attempt := 1; attempt <= assetDeleteAttempts; attempt++ {
		lastErr = global.MediaStore.Delete(ctx, key)
		if lastErr == nil {
			return
		}
		if ctx.Err() != nil {
			break
		}
		logrus.WithFields(logrus.Fields{
			"asset_key": key,
			"attempt":   attempt,
			"error":     lastErr.Error(),
		}).Warn("deleteAssetWithRetry: Xóa file trên storage thất bại")
		time.Sleep(time.Duration(attempt) * 200 * time.Millisecond)
	}
	s.cleanup.QueueAssetDelete(ctx, key, lastErr)
}

// repairVideoReferences dọn các tham chiếu tới một video đã bị xóa:
// comments và likes bị xóa theo, playlists và watch history bị rút phần tử.
// Chạy song song; không trả lỗi — lỗi nào ghi cleanup task lỗi đó.
func (s *VideoService) repairVideoReferences(ctx context.Context, videoID primitive.ObjectID, result *DeleteResult) {
	var wg sync.WaitGroup
	var mu sync.Mutex

	// Comments, likes (cascade) và playlists (pull) đi qua bảng quan hệ đã đăng ký.
	wg.Add(1)
	go func() {
		defer wg.Done()
		deleted, pulled, err := basesvc.RepairReferences(ctx, global.MongoDB_ColNames.Videos, videoID)
		mu.Lock()
		result.DeletedReferences += deleted
		result.PulledPlaylists += pulled
		mu.Unlock()
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"video_id": videoID.Hex(),
				"error":    err.Error(),
			}).Error("repairVideoReferences: Sửa chữa tham chiếu qua bảng quan hệ thất bại")
			s.cleanup.QueueReferenceRepair(ctx, global.MongoDB_ColNames.Videos, videoID, err)
		}
	}()

	// Watch history là mảng subdocument lồng trong users nên phải $pull tường minh.
	wg.Add(1)
	go func() {
		defer wg.Done()
		pulled, err := s.pullWatchHistory(ctx, videoID)
		mu.Lock()
		result.PulledHistories += pulled
		mu.Unlock()
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"video_id": videoID.Hex(),
				"error":    err.Error(),
			}).Error("repairVideoReferences: Rút video khỏi watch history thất bại")
			s.cleanup.QueueReferenceRepair(ctx, global.MongoDB_ColNames.Users, videoID, err)
		}
	}()

	wg.Wait()
}

// pullWatchHistory rút mọi watch entry trỏ tới video khỏi toàn bộ users.
func (s *VideoService) pullWatchHistory(ctx context.Context, videoID primitive.ObjectID) (int64, error) {
	users, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return 0, common.ErrNotFound
	}
	res, err := users.UpdateMany(ctx,
		bson.M{"watchHistory.video": videoID},
		bson.M{
			"$pull": bson.M{"watchHistory": bson.M{"video": videoID}},
			"$set":  bson.M{"updatedAt": time.Now().UnixMilli()},
		},
	)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return res.ModifiedCount, nil
}
