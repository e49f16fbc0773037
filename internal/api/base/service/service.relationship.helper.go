package basesvc

import (
	"context"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
	"vidtube/internal/global"
)

// repairRule là một quan hệ đã đăng ký, dùng khi sửa chữa tham chiếu sau xóa.
type repairRule struct {
	SourceCollection string // Collection chứa field tham chiếu
	Definition       *RelationshipDefinition
}

var (
	// repairRules lưu các rule theo tên collection đích.
	// Key: collection đích (ví dụ "videos"), value: các rule tham chiếu tới nó.
	repairRules   = make(map[string][]repairRule)
	repairRulesMu sync.RWMutex

	// relationshipCache cache kết quả parse tag theo model type, tránh reflection lặp lại.
	relationshipCache   = make(map[reflect.Type][]*RelationshipDefinition)
	relationshipCacheMu sync.RWMutex
)

// CollectRelationshipDefinitions đọc toàn bộ tag relationship trên model type.
// Kết quả được cache theo type.
func CollectRelationshipDefinitions(rt reflect.Type) []*RelationshipDefinition {
	if rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil
	}

	relationshipCacheMu.RLock()
	cached, ok := relationshipCache[rt]
	relationshipCacheMu.RUnlock()
	if ok {
		return cached
	}

	var defs []*RelationshipDefinition
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		tag := f.Tag.Get("relationship")
		if tag == "" {
			continue
		}
		bsonTag := f.Tag.Get("bson")
		if bsonTag == "" || bsonTag == "-" {
			continue
		}
		bsonKey := strings.TrimSpace(strings.Split(bsonTag, ",")[0])
		if def := ParseRelationshipTag(tag, bsonKey); def != nil {
			defs = append(defs, def)
		}
	}

	relationshipCacheMu.Lock()
	relationshipCache[rt] = defs
	relationshipCacheMu.Unlock()
	return defs
}

// RegisterModelRelationships đăng ký các quan hệ của một model để phục vụ
// sửa chữa tham chiếu khi document đích bị xóa. Gọi một lần khi khởi tạo service.
func RegisterModelRelationships(sourceCollection string, model interface{}) {
	defs := CollectRelationshipDefinitions(reflect.TypeOf(model))
	if len(defs) == 0 {
		return
	}
	repairRulesMu.Lock()
	defer repairRulesMu.Unlock()
	for _, def := range defs {
		repairRules[def.CollectionName] = append(repairRules[def.CollectionName], repairRule{
			SourceCollection: sourceCollection,
			Definition:       def,
		})
	}
}

// CheckRelationshipExists kiểm tra một ObjectID có tồn tại trên collection đích không.
// Collection đích được tra cứu qua registry toàn cục.
func CheckRelationshipExists(ctx context.Context, collectionName string, targetField string, id primitive.ObjectID) (bool, error) {
	collection, exists := global.RegistryCollections.Get(collectionName)
	if !exists {
		return false, common.NewError(
			common.ErrCodeDatabaseQuery,
			"Không tìm thấy collection "+collectionName+" trong registry",
			common.StatusInternalServerError,
			nil,
		)
	}

	count, err := collection.CountDocuments(ctx, bson.M{targetField: id})
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return count > 0, nil
}

// CheckRelationships kiểm tra tất cả quan hệ tham chiếu của model trước khi ghi.
// Quan hệ optional với zero ObjectID được bỏ qua.
func CheckRelationships(ctx context.Context, model interface{}) error {
	rv := reflect.ValueOf(model)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	defs := CollectRelationshipDefinitions(rv.Type())
	rt := rv.Type()
	for _, def := range defs {
		// Tìm field theo bson key
		var id primitive.ObjectID
		found := false
		for i := 0; i < rt.NumField(); i++ {
			bsonTag := rt.Field(i).Tag.Get("bson")
			bsonKey := strings.TrimSpace(strings.Split(bsonTag, ",")[0])
			if bsonKey != def.FieldName {
				continue
			}
			if obj, ok := rv.Field(i).Interface().(primitive.ObjectID); ok {
				id = obj
				found = true
			}
			break
		}
		if !found {
			continue
		}
		if id.IsZero() {
			if def.Optional {
				continue
			}
			msg := def.ErrorMessage
			if msg == "" {
				msg = "Thiếu tham chiếu bắt buộc tới " + def.CollectionName
			}
			return common.NewError(common.ErrCodeValidationInput, msg, common.StatusBadRequest, nil)
		}
		exists, err := CheckRelationshipExists(ctx, def.CollectionName, def.TargetField, id)
		if err != nil {
			return err
		}
		if !exists {
			msg := def.ErrorMessage
			if msg == "" {
				msg = "Tham chiếu tới " + def.CollectionName + " không tồn tại"
			}
			return common.NewError(common.ErrCodeValidationInput, msg, common.StatusBadRequest, nil)
		}
	}
	return nil
}

// RepairReferences sửa chữa các tham chiếu trỏ tới document vừa bị xóa:
// rule cascade xóa luôn document nguồn, rule pull gỡ ID khỏi field mảng.
// Trả về số document đã xóa và số document đã gỡ tham chiếu.
func RepairReferences(ctx context.Context, targetCollection string, id primitive.ObjectID) (int64, int64, error) {
	repairRulesMu.RLock()
	rules := make([]repairRule, len(repairRules[targetCollection]))
	copy(rules, repairRules[targetCollection])
	repairRulesMu.RUnlock()

	var deleted, pulled int64
	for _, rule := range rules {
		collection, exists := global.RegistryCollections.Get(rule.SourceCollection)
		if !exists {
			logrus.WithField("collection", rule.SourceCollection).
				Warn("RepairReferences: collection chưa đăng ký trong registry, bỏ qua")
			continue
		}

		switch {
		case rule.Definition.Cascade:
			result, err := collection.DeleteMany(ctx, bson.M{rule.Definition.FieldName: id})
			if err != nil {
				return deleted, pulled, common.ConvertMongoError(err)
			}
			deleted += result.DeletedCount
		case rule.Definition.Pull:
			result, err := collection.UpdateMany(ctx,
				bson.M{rule.Definition.FieldName: id},
				bson.M{
					"$pull": bson.M{rule.Definition.FieldName: id},
					"$set":  bson.M{"updatedAt": time.Now().UnixMilli()},
				},
			)
			if err != nil {
				return deleted, pulled, common.ConvertMongoError(err)
			}
			pulled += result.ModifiedCount
		}
	}

	logrus.WithFields(logrus.Fields{
		"target":  targetCollection,
		"deleted": deleted,
		"pulled":  pulled,
	}).Debug("RepairReferences: hoàn tất sửa chữa tham chiếu")
	return deleted, pulled, nil
}
