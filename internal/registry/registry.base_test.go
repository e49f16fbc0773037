// Package registry - Test registry generic dùng quản lý collection toàn cục.
package registry

import (
	"errors"
	"testing"
)

func TestRegistry_RegisterGet(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("counter", 42)
	if err != nil {
		t.Fatalf("Register lỗi: %v", err)
	}
	if !isNew {
		t.Error("Lần đăng ký đầu tiên phải trả về isNew = true")
	}

	item, exists := r.Get("counter")
	if !exists || item != 42 {
		t.Errorf("Get = (%d, %v), muốn (42, true)", item, exists)
	}

	// Đăng ký trùng tên là ghi đè, không phải lỗi
	isNew, err = r.Register("counter", 99)
	if err != nil {
		t.Fatalf("Register ghi đè lỗi: %v", err)
	}
	if isNew {
		t.Error("Ghi đè item cũ phải trả về isNew = false")
	}
	if item, _ := r.Get("counter"); item != 99 {
		t.Errorf("Sau ghi đè Get = %d, muốn 99", item)
	}
}

func TestRegistry_RegisterTenRong(t *testing.T) {
	r := NewRegistry[string]()
	if _, err := r.Register("", "x"); err == nil {
		t.Error("Register với tên rỗng phải trả về lỗi")
	}
}

func TestRegistry_GetKhongTonTai(t *testing.T) {
	r := NewRegistry[string]()
	item, exists := r.Get("khong-co")
	if exists {
		t.Error("Get item chưa đăng ký phải trả về exists = false")
	}
	if item != "" {
		t.Errorf("Item phải là zero value, nhận %q", item)
	}
}

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry[int]()
	calls := 0
	creator := func() (int, error) {
		calls++
		return 7, nil
	}

	item, err := r.GetOrCreate("a", creator)
	if err != nil || item != 7 {
		t.Fatalf("GetOrCreate = (%d, %v), muốn (7, nil)", item, err)
	}

	// Lần hai phải dùng item có sẵn, không gọi lại creator
	item, err = r.GetOrCreate("a", creator)
	if err != nil || item != 7 {
		t.Fatalf("GetOrCreate lần hai = (%d, %v), muốn (7, nil)", item, err)
	}
	if calls != 1 {
		t.Errorf("Creator được gọi %d lần, muốn 1", calls)
	}
}

func TestRegistry_GetOrCreate_CreatorLoi(t *testing.T) {
	r := NewRegistry[int]()
	wantErr := errors.New("tạo thất bại")
	if _, err := r.GetOrCreate("a", func() (int, error) { return 0, wantErr }); err == nil {
		t.Error("GetOrCreate phải trả lỗi khi creator thất bại")
	}
	if _, exists := r.Get("a"); exists {
		t.Error("Item không được đăng ký khi creator thất bại")
	}
}

func TestRegistry_Clear(t *testing.T) {
	r := NewRegistry[int]()
	_, _ = r.Register("a", 1)

	deleted, err := r.Clear("a", nil)
	if err != nil {
		t.Fatalf("Clear lỗi: %v", err)
	}
	if !deleted {
		t.Error("Clear item tồn tại phải trả về deleted = true")
	}
	if _, exists := r.Get("a"); exists {
		t.Error("Item phải biến mất sau Clear")
	}

	deleted, err = r.Clear("a", nil)
	if err != nil {
		t.Fatalf("Clear lần hai lỗi: %v", err)
	}
	if deleted {
		t.Error("Clear item không tồn tại phải trả về deleted = false")
	}
}

func TestRegistry_ClearAll(t *testing.T) {
	r := NewRegistry[int]()
	_, _ = r.Register("a", 1)
	_, _ = r.Register("b", 2)

	count, err := r.ClearAll(nil)
	if err != nil {
		t.Fatalf("ClearAll lỗi: %v", err)
	}
	if count != 2 {
		t.Errorf("ClearAll xóa %d item, muốn 2", count)
	}
	if _, exists := r.Get("a"); exists {
		t.Error("Registry phải rỗng sau ClearAll")
	}
}
