// Package engagementsvc - service tương tác: toggle like / subscription và các
// truy vấn danh sách đi kèm.
package engagementsvc

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vidtube/internal/api/events"
	"vidtube/internal/common"
	"vidtube/internal/global"
)

// ToggleKind xác định loại quan hệ được bật / tắt.
type ToggleKind string

const (
	KindVideo   ToggleKind = "video"
	KindComment ToggleKind = "comment"
	KindTweet   ToggleKind = "tweet"
	KindChannel ToggleKind = "channel"
)

// TogglePolicy là chính sách áp cho một loại quan hệ.
type TogglePolicy struct {
	AllowSelf bool // Cho phép actor tương tác với nội dung của chính mình
}

// kindSpec mô tả cách một ToggleKind ánh xạ xuống collection quan hệ.
type kindSpec struct {
	relationCol string       // Collection chứa document quan hệ
	targetField string       // Field trỏ tới nội dung đích
	actorField  string       // Field trỏ tới user thực hiện
	existsCol   string       // Collection dùng kiểm tra nội dung đích tồn tại
	actorCol    string       // Collection dùng kiểm tra actor tồn tại
	policy      TogglePolicy
}

// toggleKinds là tập đóng các loại quan hệ được hỗ trợ.
// Like cho phép like nội dung của chính mình; subscription thì không.
var toggleKinds = map[ToggleKind]kindSpec{
	KindVideo:   {relationCol: "likes", targetField: "video", actorField: "likedBy", existsCol: "videos", actorCol: "users", policy: TogglePolicy{AllowSelf: true}},
	KindComment: {relationCol: "likes", targetField: "comment", actorField: "likedBy", existsCol: "comments", actorCol: "users", policy: TogglePolicy{AllowSelf: true}},
	KindTweet:   {relationCol: "likes", targetField: "tweet", actorField: "likedBy", existsCol: "tweets", actorCol: "users", policy: TogglePolicy{AllowSelf: true}},
	KindChannel: {relationCol: "subscriptions", targetField: "channel", actorField: "subscriber", existsCol: "users", actorCol: "users", policy: TogglePolicy{AllowSelf: false}},
}

// ToggleResult là kết quả một lần toggle.
// Active=true nghĩa là quan hệ đang tồn tại sau khi toggle (vừa được tạo).
type ToggleResult struct {
	Kind       ToggleKind `json:"kind"`
	Active     bool       `json:"active"`
	TotalCount int64      `json:"totalCount"`
}

// Toggle đảo trạng thái một quan hệ: đang tồn tại thì gỡ, chưa có thì tạo.
// Toggle hai lần liên tiếp đưa dữ liệu về đúng trạng thái ban đầu. TotalCount
// đếm trực tiếp trên collection nên luôn phản ánh trạng thái sau toggle.
func Toggle(ctx context.Context, kind ToggleKind, targetID, actorID primitive.ObjectID) (*ToggleResult, error) {
	spec, ok := toggleKinds[kind]
	if !ok {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			"Loại quan hệ không được hỗ trợ: "+string(kind),
			common.StatusBadRequest,
			nil,
		)
	}

	if targetID.IsZero() || actorID.IsZero() {
		return nil, common.ErrRequiredField
	}
	if !spec.policy.AllowSelf && targetID == actorID {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			"Không thể tự đăng ký kênh của chính mình",
			common.StatusBadRequest,
			nil,
		)
	}

	relations, exist := global.RegistryCollections.Get(spec.relationCol)
	if !exist {
		return nil, common.ErrDependencyUnavailable
	}

	// Nội dung đích phải còn tồn tại
	targets, exist := global.RegistryCollections.Get(spec.existsCol)
	if !exist {
		return nil, common.ErrDependencyUnavailable
	}
	targetCount, err := targets.CountDocuments(ctx, bson.M{"_id": targetID})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if targetCount == 0 {
		return nil, common.ErrNotFound
	}

	// Actor cũng phải còn tồn tại — token vẫn hợp lệ sau khi tài khoản bị xóa
	// không được phép tạo quan hệ trỏ tới user không tồn tại.
	actors, exist := global.RegistryCollections.Get(spec.actorCol)
	if !exist {
		return nil, common.ErrDependencyUnavailable
	}
	actorCount, err := actors.CountDocuments(ctx, bson.M{"_id": actorID})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if actorCount == 0 {
		return nil, common.ErrNotFound
	}

	filter := bson.M{
		spec.targetField: targetID,
		spec.actorField:  actorID,
	}

	// Gỡ trước: DeletedCount==1 nghĩa là quan hệ đã tồn tại và vừa bị tắt
	delResult, err := relations.DeleteOne(ctx, filter)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	active := false
	if delResult.DeletedCount == 0 {
		// Chưa có quan hệ: tạo bằng upsert có điều kiện. Hai request đua nhau
		// cùng tạo thì một bên dính duplicate key — coi như quan hệ đã có.
		now := time.Now().UnixMilli()
		_, err := relations.UpdateOne(ctx, filter, bson.M{
			"$setOnInsert": bson.M{
				spec.targetField: targetID,
				spec.actorField:  actorID,
				"createdAt":      now,
				"updatedAt":      now,
			},
		}, options.Update().SetUpsert(true))
		if err != nil && !mongo.IsDuplicateKeyError(err) {
			return nil, common.ConvertMongoError(err)
		}
		active = true
	}

	total, err := relations.CountDocuments(ctx, bson.M{spec.targetField: targetID})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	op := events.OpDelete
	if active {
		op = events.OpInsert
	}
	events.EmitDataChanged(ctx, events.DataChangeEvent{
		CollectionName: spec.relationCol,
		Operation:      op,
		Document:       filter,
	})

	return &ToggleResult{Kind: kind, Active: active, TotalCount: total}, nil
}

// IsActive kiểm tra một quan hệ có đang tồn tại không.
func IsActive(ctx context.Context, kind ToggleKind, targetID, actorID primitive.ObjectID) (bool, error) {
	spec, ok := toggleKinds[kind]
	if !ok {
		return false, common.ErrInvalidFormat
	}
	relations, exist := global.RegistryCollections.Get(spec.relationCol)
	if !exist {
		return false, common.ErrDependencyUnavailable
	}
	count, err := relations.CountDocuments(ctx, bson.M{
		spec.targetField: targetID,
		spec.actorField:  actorID,
	})
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return count > 0, nil
}

// ParseToggleKind chuyển chuỗi thành ToggleKind, lỗi nếu ngoài tập hỗ trợ.
func ParseToggleKind(raw string) (ToggleKind, error) {
	kind := ToggleKind(raw)
	if _, ok := toggleKinds[kind]; !ok {
		return "", common.NewError(
			common.ErrCodeValidationInput,
			"Loại quan hệ không được hỗ trợ: "+raw,
			common.StatusBadRequest,
			nil,
		)
	}
	return kind, nil
}
