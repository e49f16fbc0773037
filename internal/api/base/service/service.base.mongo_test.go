// Package basesvc - Test các hàm thuần logic của base service: chuẩn hóa
// phân trang và chuyển đổi dữ liệu update.
package basesvc

import (
	"testing"
)

func TestNormalizePageLimit(t *testing.T) {
	cases := []struct {
		page, limit         int64
		wantPage, wantLimit int64
	}{
		{1, 10, 1, 10},
		{0, 10, 1, 10},
		{-5, 20, 1, 20},
		{3, 0, 3, 10},
		{2, -1, 2, 10},
	}
	for _, c := range cases {
		page, limit := NormalizePageLimit(c.page, c.limit)
		if page != c.wantPage || limit != c.wantLimit {
			t.Errorf("NormalizePageLimit(%d, %d) = (%d, %d), muốn (%d, %d)",
				c.page, c.limit, page, limit, c.wantPage, c.wantLimit)
		}
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, limit int64
		want         int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{99, 10, 10},
		{100, 10, 10},
		{5, 0, 0},
	}
	for _, c := range cases {
		if got := TotalPages(c.total, c.limit); got != c.want {
			t.Errorf("TotalPages(%d, %d) = %d, muốn %d", c.total, c.limit, got, c.want)
		}
	}
}

func TestToUpdateData_MapThuong(t *testing.T) {
	update, err := ToUpdateData(map[string]interface{}{"title": "Video mới"})
	if err != nil {
		t.Fatalf("ToUpdateData lỗi: %v", err)
	}
	if update.Set == nil {
		t.Fatal("Map thường phải được wrap trong $set")
	}
	if update.Set["title"] != "Video mới" {
		t.Errorf("Set[title] = %v, muốn 'Video mới'", update.Set["title"])
	}
	if update.Unset != nil || update.Push != nil {
		t.Error("Các operator khác phải để trống khi input là map thường")
	}
}

func TestToUpdateData_CoOperator(t *testing.T) {
	update, err := ToUpdateData(map[string]interface{}{
		"$set":   map[string]interface{}{"title": "abc"},
		"$unset": map[string]interface{}{"description": ""},
		"$inc":   map[string]interface{}{"views": 1},
	})
	if err != nil {
		t.Fatalf("ToUpdateData lỗi: %v", err)
	}
	if update.Set["title"] != "abc" {
		t.Errorf("Set[title] = %v, muốn 'abc'", update.Set["title"])
	}
	if _, ok := update.Unset["description"]; !ok {
		t.Error("Unset thiếu key description")
	}
	if update.Inc == nil {
		t.Error("Inc không được nil khi input có $inc")
	}
}

func TestToUpdateData_TruyenThang(t *testing.T) {
	src := &UpdateData{Set: map[string]interface{}{"a": 1}}
	update, err := ToUpdateData(src)
	if err != nil {
		t.Fatalf("ToUpdateData lỗi: %v", err)
	}
	if update != src {
		t.Error("Truyền *UpdateData phải trả về chính con trỏ đó")
	}

	byValue, err := ToUpdateData(UpdateData{Set: map[string]interface{}{"b": 2}})
	if err != nil {
		t.Fatalf("ToUpdateData lỗi: %v", err)
	}
	if byValue.Set["b"] != 2 {
		t.Errorf("Set[b] = %v, muốn 2", byValue.Set["b"])
	}
}

func TestHasAnyOperator(t *testing.T) {
	if hasAnyOperator(map[string]interface{}{"title": "x"}) {
		t.Error("Map không có operator phải trả về false")
	}
	for _, op := range []string{"$set", "$unset", "$setOnInsert", "$push", "$addToSet", "$pull", "$inc"} {
		if !hasAnyOperator(map[string]interface{}{op: map[string]interface{}{}}) {
			t.Errorf("hasAnyOperator bỏ sót operator %s", op)
		}
	}
}
