// Package models - model task dọn dẹp thuộc domain cleanup.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Loại task dọn dẹp.
const (
	TaskTypeAssetDelete     = "asset_delete"     // Xóa file còn sót trên storage
	TaskTypeReferenceRepair = "reference_repair" // Sửa chữa tham chiếu còn sót sau xóa
)

// Trạng thái task dọn dẹp.
const (
	TaskStatusPending = "pending" // Đang chờ worker xử lý
	TaskStatusDone    = "done"    // Đã xử lý xong
	TaskStatusFailed  = "failed"  // Đã hết số lần retry
)

// MaxAttempts là số lần thử tối đa cho một task trước khi chuyển sang failed.
const MaxAttempts = 3

// CleanupTask ghi lại một việc dọn dẹp chưa hoàn tất trong quá trình xóa video
// (file storage không xóa được, tham chiếu không sửa được) để worker xử lý lại sau.
type CleanupTask struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	TaskType    string             `json:"taskType" bson:"taskType"`
	AssetID     string             `json:"assetId,omitempty" bson:"assetId,omitempty"`       // Object key cần xóa (asset_delete)
	Collection  string             `json:"collection,omitempty" bson:"collection,omitempty"` // Collection cần sửa (reference_repair)
	TargetID    primitive.ObjectID `json:"targetId,omitempty" bson:"targetId,omitempty"`     // ID của document đã xóa
	Status      string             `json:"status" bson:"status" default:"pending" index:"single:1"`
	Attempts    int32              `json:"attempts" bson:"attempts"`
	LastError   string             `json:"lastError,omitempty" bson:"lastError,omitempty"`
	NextRetryAt int64              `json:"nextRetryAt" bson:"nextRetryAt"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
