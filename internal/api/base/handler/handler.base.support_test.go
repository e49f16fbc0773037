// Package basehdl - Test chuyển đổi DTO sang model, chuẩn hóa filter và partial update.
package basehdl

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createDTO struct {
	Title   string
	OwnerID string   `transform:"str2objectid"`
	VideoID string   `transform:"str2objectid,optional"`
	TagIDs  []string `transform:"str2objectid_array"`
	Views   int64
}

type targetModel struct {
	Title   string
	OwnerID primitive.ObjectID
	VideoID primitive.ObjectID
	TagIDs  []primitive.ObjectID
	Views   int64
}

func TestTransformStruct(t *testing.T) {
	owner := primitive.NewObjectID()
	tag := primitive.NewObjectID()
	src := createDTO{
		Title:   "Video đầu tiên",
		OwnerID: owner.Hex(),
		TagIDs:  []string{tag.Hex()},
		Views:   7,
	}

	var dst targetModel
	if err := transformStruct(&src, &dst); err != nil {
		t.Fatalf("transformStruct lỗi: %v", err)
	}
	if dst.Title != "Video đầu tiên" || dst.Views != 7 {
		t.Errorf("Field thường không được copy đúng: %+v", dst)
	}
	if dst.OwnerID != owner {
		t.Errorf("OwnerID = %v, muốn %v", dst.OwnerID, owner)
	}
	if !dst.VideoID.IsZero() {
		t.Errorf("VideoID optional để trống phải giữ zero ObjectID, nhận %v", dst.VideoID)
	}
	if len(dst.TagIDs) != 1 || dst.TagIDs[0] != tag {
		t.Errorf("TagIDs = %v, muốn [%v]", dst.TagIDs, tag)
	}
}

func TestTransformStruct_ThieuIDBatBuoc(t *testing.T) {
	var dst targetModel
	err := transformStruct(&createDTO{Title: "x"}, &dst)
	if err == nil {
		t.Fatal("Field str2objectid không optional để trống phải trả về lỗi")
	}
}

func TestTransformStruct_IDSaiDinhDang(t *testing.T) {
	var dst targetModel
	err := transformStruct(&createDTO{OwnerID: "khong-phai-objectid"}, &dst)
	if err == nil {
		t.Fatal("ObjectID sai định dạng phải trả về lỗi")
	}
}

func TestNormalizeFilter(t *testing.T) {
	owner := primitive.NewObjectID()
	filter := normalizeFilter(map[string]interface{}{
		"owner": owner.Hex(),
		"title": "abc",
		"video": "khong-hop-le",
	})

	if filter["owner"] != owner {
		t.Errorf("owner phải được chuyển thành ObjectID, nhận %v (%T)", filter["owner"], filter["owner"])
	}
	if filter["title"] != "abc" {
		t.Errorf("Field thường phải giữ nguyên, nhận %v", filter["title"])
	}
	if filter["video"] != "khong-hop-le" {
		t.Errorf("Chuỗi không phải hex hợp lệ phải giữ nguyên, nhận %v", filter["video"])
	}
}

func TestValidateFilter(t *testing.T) {
	h := &BaseHandler[targetModel, createDTO, createDTO]{filterOptions: DefaultFilterOptions}

	if err := h.validateFilter(map[string]interface{}{"title": "abc"}); err != nil {
		t.Errorf("Filter hợp lệ bị từ chối: %v", err)
	}
	if err := h.validateFilter(map[string]interface{}{"password": "x"}); err == nil {
		t.Error("Filter theo field bị cấm phải trả về lỗi")
	}
	if err := h.validateFilter(map[string]interface{}{
		"title": map[string]interface{}{"$where": "1"},
	}); err == nil {
		t.Error("Operator không nằm trong danh sách cho phép phải bị từ chối")
	}
	if err := h.validateFilter(map[string]interface{}{
		"views": map[string]interface{}{"$gte": 100},
	}); err != nil {
		t.Errorf("Operator $gte được phép nhưng bị từ chối: %v", err)
	}
}

func TestValidateFilter_QuaNhieuField(t *testing.T) {
	h := &BaseHandler[targetModel, createDTO, createDTO]{
		filterOptions: FilterOptions{MaxFields: 1},
	}
	err := h.validateFilter(map[string]interface{}{"a": 1, "b": 2})
	if err == nil {
		t.Error("Filter vượt quá MaxFields phải trả về lỗi")
	}
}

func TestMapToSortDoc(t *testing.T) {
	// Giá trị sort sau json.Unmarshal là float64
	doc := mapToSortDoc(map[string]interface{}{"createdAt": float64(-1)})
	if len(doc) != 1 || doc[0].Key != "createdAt" || doc[0].Value != -1 {
		t.Errorf("mapToSortDoc = %+v, muốn createdAt giảm dần", doc)
	}

	doc = mapToSortDoc(map[string]interface{}{"views": float64(1)})
	if doc[0].Value != 1 {
		t.Errorf("Giá trị dương phải sort tăng dần, nhận %v", doc[0].Value)
	}
}

func TestBuildPartialSet(t *testing.T) {
	type videoUpdate struct {
		Title       string `bson:"title"`
		Description string `bson:"description"`
		Views       int64  `bson:"views"`
	}
	update, err := buildPartialSet(videoUpdate{Title: "Tiêu đề mới"})
	if err != nil {
		t.Fatalf("buildPartialSet lỗi: %v", err)
	}
	if update.Set["title"] != "Tiêu đề mới" {
		t.Errorf("Set[title] = %v, muốn 'Tiêu đề mới'", update.Set["title"])
	}
	if _, ok := update.Set["description"]; ok {
		t.Error("Field zero value không được đưa vào $set")
	}
	if _, ok := update.Set["views"]; ok {
		t.Error("Số 0 là zero value, không được đưa vào $set")
	}
}
