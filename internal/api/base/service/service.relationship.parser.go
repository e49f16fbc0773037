package basesvc

import (
	"strings"
)

// RelationshipDefinition mô tả một quan hệ tham chiếu giữa hai collection,
// khai báo qua struct tag `relationship` trên field của model.
//
// Ví dụ:
//
//	Video primitive.ObjectID `bson:"video" relationship:"collection:videos,field:_id"`
//
// Các option hỗ trợ:
//   - collection: tên collection đích (bắt buộc)
//   - field: tên field trên collection đích dùng để đối chiếu (mặc định _id)
//   - error: thông báo lỗi khi kiểm tra tồn tại thất bại
//   - optional: quan hệ được phép rỗng (zero ObjectID thì bỏ qua kiểm tra)
//   - cascade: khi document đích bị xóa, xóa luôn các document tham chiếu
//   - pull: khi document đích bị xóa, gỡ ID khỏi field mảng ($pull) thay vì xóa document
type RelationshipDefinition struct {
	FieldName      string // Tên field bson trên model nguồn
	CollectionName string // Tên collection đích
	TargetField    string // Field trên collection đích (mặc định _id)
	ErrorMessage   string // Thông báo lỗi khi FK không tồn tại
	Optional       bool   // Cho phép zero ObjectID
	Cascade        bool   // Xóa document nguồn khi đích bị xóa
	Pull           bool   // $pull ID khỏi field mảng khi đích bị xóa
}

// ParseRelationshipTag phân tích giá trị tag relationship thành RelationshipDefinition.
// Tag có dạng "collection:videos,field:_id,optional" — các option cách nhau bởi dấu phẩy.
// Trả về nil nếu tag rỗng hoặc thiếu collection.
func ParseRelationshipTag(tag string, fieldName string) *RelationshipDefinition {
	tag = strings.TrimSpace(tag)
	if tag == "" || tag == "-" {
		return nil
	}

	def := &RelationshipDefinition{
		FieldName:   fieldName,
		TargetField: "_id",
	}

	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key := part
		value := ""
		if idx := strings.Index(part, ":"); idx >= 0 {
			key = strings.TrimSpace(part[:idx])
			value = strings.TrimSpace(part[idx+1:])
		}
		switch key {
		case "collection":
			def.CollectionName = value
		case "field":
			if value != "" {
				def.TargetField = value
			}
		case "error":
			def.ErrorMessage = value
		case "optional":
			def.Optional = true
		case "cascade":
			def.Cascade = true
		case "pull":
			def.Pull = true
		}
	}

	if def.CollectionName == "" {
		return nil
	}
	return def
}
