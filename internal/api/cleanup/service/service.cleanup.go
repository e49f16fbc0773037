// Package cleanupsvc - service quản lý task dọn dẹp (asset còn sót, tham chiếu còn sót).
package cleanupsvc

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "vidtube/internal/api/base/service"
	models "vidtube/internal/api/cleanup/models"
	"vidtube/internal/common"
	"vidtube/internal/global"
)

// retryBackoff là khoảng chờ trước lần retry kế tiếp của một task.
const retryBackoff = 5 * time.Minute

// CleanupService là service quản lý cleanup tasks
type CleanupService struct {
	*basesvc.BaseServiceMongoImpl[models.CleanupTask]
}

// NewCleanupService tạo mới CleanupService
func NewCleanupService() (*CleanupService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CleanupTasks)
	if !exist {
		return nil, fmt.Errorf("failed to get cleanup_tasks collection: %v", common.ErrNotFound)
	}

	return &CleanupService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.CleanupTask](collection),
	}, nil
}

// QueueAssetDelete ghi task xóa file còn sót trên storage.
// Lỗi ghi task chỉ log — dọn dẹp không bao giờ làm hỏng thao tác chính.
func (s *CleanupService) QueueAssetDelete(ctx context.Context, assetID string, cause error) {
	task := models.CleanupTask{
		TaskType:    models.TaskTypeAssetDelete,
		AssetID:     assetID,
		NextRetryAt: time.Now().Add(retryBackoff).UnixMilli(),
	}
	if cause != nil {
		task.LastError = cause.Error()
	}
	if _, err := s.InsertOne(ctx, task); err != nil {
		logrus.WithFields(logrus.Fields{
			"asset_id": assetID,
			"error":    err.Error(),
		}).Error("QueueAssetDelete: Không ghi được cleanup task")
	}
}

// QueueReferenceRepair ghi task sửa chữa tham chiếu còn sót sau khi xóa document.
func (s *CleanupService) QueueReferenceRepair(ctx context.Context, collection string, targetID primitive.ObjectID, cause error) {
	task := models.CleanupTask{
		TaskType:    models.TaskTypeReferenceRepair,
		Collection:  collection,
		TargetID:    targetID,
		NextRetryAt: time.Now().Add(retryBackoff).UnixMilli(),
	}
	if cause != nil {
		task.LastError = cause.Error()
	}
	if _, err := s.InsertOne(ctx, task); err != nil {
		logrus.WithFields(logrus.Fields{
			"collection": collection,
			"target_id":  targetID.Hex(),
			"error":      err.Error(),
		}).Error("QueueReferenceRepair: Không ghi được cleanup task")
	}
}

// FindDue trả về các task pending đã tới hạn retry, cũ nhất trước.
func (s *CleanupService) FindDue(ctx context.Context, limit int64) ([]models.CleanupTask, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "nextRetryAt", Value: 1}}).
		SetLimit(limit)
	return s.Find(ctx, bson.M{
		"status":      models.TaskStatusPending,
		"nextRetryAt": bson.M{"$lte": time.Now().UnixMilli()},
	}, opts)
}

// MarkDone đánh dấu task đã xử lý xong.
func (s *CleanupService) MarkDone(ctx context.Context, taskID primitive.ObjectID) error {
	_, err := s.UpdateById(ctx, taskID, &basesvc.UpdateData{
		Set: map[string]interface{}{"status": models.TaskStatusDone},
	})
	return err
}

// ProcessDue xử lý một lô task pending đã tới hạn: xóa asset còn sót trên storage
// hoặc chạy lại sửa chữa tham chiếu. Trả về số task xử lý thành công.
func (s *CleanupService) ProcessDue(ctx context.Context, batchSize int64) (int, error) {
	tasks, err := s.FindDue(ctx, batchSize)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, task := range tasks {
		if ctx.Err() != nil {
			return processed, ctx.Err()
		}
		if err := s.processTask(ctx, task); err != nil {
			if markErr := s.MarkAttemptFailed(ctx, task, err); markErr != nil {
				logrus.WithFields(logrus.Fields{
					"task_id": task.ID.Hex(),
					"error":   markErr.Error(),
				}).Error("ProcessDue: Không cập nhật được trạng thái task")
			}
			continue
		}
		if err := s.MarkDone(ctx, task.ID); err != nil {
			logrus.WithFields(logrus.Fields{
				"task_id": task.ID.Hex(),
				"error":   err.Error(),
			}).Error("ProcessDue: Không đánh dấu được task hoàn thành")
			continue
		}
		processed++
	}
	return processed, nil
}

// processTask thực thi một task theo loại của nó.
func (s *CleanupService) processTask(ctx context.Context, task models.CleanupTask) error {
	switch task.TaskType {
	case models.TaskTypeAssetDelete:
		if global.MediaStore == nil {
			return common.ErrDependencyUnavailable
		}
		return global.MediaStore.Delete(ctx, task.AssetID)
	case models.TaskTypeReferenceRepair:
		// Watch history lồng trong users nên phải $pull tường minh,
		// các collection khác đi qua bảng quan hệ đã đăng ký.
		if task.Collection == global.MongoDB_ColNames.Users {
			return s.pullWatchHistory(ctx, task.TargetID)
		}
		_, _, err := basesvc.RepairReferences(ctx, task.Collection, task.TargetID)
		return err
	default:
		return fmt.Errorf("unknown cleanup task type: %s", task.TaskType)
	}
}

// pullWatchHistory rút mọi watch entry trỏ tới một video đã xóa khỏi users.
func (s *CleanupService) pullWatchHistory(ctx context.Context, videoID primitive.ObjectID) error {
	users, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return common.ErrNotFound
	}
	_, err := users.UpdateMany(ctx,
		bson.M{"watchHistory.video": videoID},
		bson.M{
			"$pull": bson.M{"watchHistory": bson.M{"video": videoID}},
			"$set":  bson.M{"updatedAt": time.Now().UnixMilli()},
		},
	)
	return common.ConvertMongoError(err)
}

// MarkAttemptFailed ghi nhận một lần thử thất bại: tăng attempts, hẹn lại giờ retry;
// hết MaxAttempts thì chuyển sang failed.
func (s *CleanupService) MarkAttemptFailed(ctx context.Context, task models.CleanupTask, cause error) error {
	attempts := task.Attempts + 1
	set := map[string]interface{}{
		"attempts":    attempts,
		"nextRetryAt": time.Now().Add(retryBackoff).UnixMilli(),
	}
	if cause != nil {
		set["lastError"] = cause.Error()
	}
	if attempts >= models.MaxAttempts {
		set["status"] = models.TaskStatusFailed
		logrus.WithFields(logrus.Fields{
			"task_id":   task.ID.Hex(),
			"task_type": task.TaskType,
			"attempts":  attempts,
		}).Error("MarkAttemptFailed: Task dọn dẹp hết số lần retry")
	}
	_, err := s.UpdateById(ctx, task.ID, &basesvc.UpdateData{Set: set})
	return err
}
