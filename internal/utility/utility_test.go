// Package utility - Test các hàm tiện ích dùng chung.
package utility

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestContains(t *testing.T) {
	nums := []int{1, 2, 3}
	if !Contains(nums, 2) {
		t.Error("Contains phải tìm thấy 2 trong [1 2 3]")
	}
	if Contains(nums, 5) {
		t.Error("Contains không được tìm thấy 5 trong [1 2 3]")
	}
	if Contains([]string{}, "a") {
		t.Error("Contains trên slice rỗng phải trả về false")
	}
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		in   uint64
		want string
	}{
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1024 * 1024, "1.0 MB"},
		{5 * 1024 * 1024 * 1024, "5.0 GB"},
	}
	for _, c := range cases {
		if got := FormatBytes(c.in); got != c.want {
			t.Errorf("FormatBytes(%d) = %q, muốn %q", c.in, got, c.want)
		}
	}
}

func TestString2ObjectID(t *testing.T) {
	id := primitive.NewObjectID()
	if got := String2ObjectID(id.Hex()); got != id {
		t.Errorf("String2ObjectID(%q) = %v, muốn %v", id.Hex(), got, id)
	}
	if got := String2ObjectID("khong-hop-le"); got != primitive.NilObjectID {
		t.Errorf("Chuỗi không hợp lệ phải trả về NilObjectID, nhận %v", got)
	}
}

func TestObjectID2String(t *testing.T) {
	id := primitive.NewObjectID()
	if got := ObjectID2String(id); got != id.Hex() {
		t.Errorf("ObjectID2String = %q, muốn %q", got, id.Hex())
	}
}

func TestStringArray2ObjectIDArray(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	ids := StringArray2ObjectIDArray([]string{a.Hex(), b.Hex()})
	if len(ids) != 2 || ids[0] != a || ids[1] != b {
		t.Errorf("StringArray2ObjectIDArray = %v, muốn [%v %v]", ids, a, b)
	}
}

func TestValidateEmail(t *testing.T) {
	hopLe := []string{"user@example.com", "nguoi.dung+tag@sub.domain.vn"}
	for _, email := range hopLe {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail từ chối email hợp lệ %q: %v", email, err)
		}
	}
	khongHopLe := []string{"", "abc", "user@", "@domain.com", "user@domain"}
	for _, email := range khongHopLe {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail phải từ chối %q", email)
		}
	}
}

func TestUnixMilli(t *testing.T) {
	now := time.Now()
	if got := UnixMilli(now); got != now.UnixMilli() {
		t.Errorf("UnixMilli = %d, muốn %d", got, now.UnixMilli())
	}
}

func TestToMap(t *testing.T) {
	type doc struct {
		Title string `bson:"title"`
		Views int64  `bson:"views"`
	}
	m, err := ToMap(doc{Title: "Video", Views: 10})
	if err != nil {
		t.Fatalf("ToMap lỗi: %v", err)
	}
	if m["title"] != "Video" {
		t.Errorf("m[title] = %v, muốn 'Video'", m["title"])
	}
	if _, ok := m["views"]; !ok {
		t.Error("ToMap thiếu key views")
	}
}

func TestCustomBson(t *testing.T) {
	type payload struct {
		Name string `bson:"name"`
	}
	cb := &CustomBson{}

	set, err := cb.Set(payload{Name: "abc"})
	if err != nil {
		t.Fatalf("CustomBson.Set lỗi: %v", err)
	}
	if _, ok := set["$set"]; !ok {
		t.Errorf("Kết quả Set thiếu key $set: %v", set)
	}

	push, err := cb.Push(payload{Name: "abc"})
	if err != nil {
		t.Fatalf("CustomBson.Push lỗi: %v", err)
	}
	if _, ok := push["$push"]; !ok {
		t.Errorf("Kết quả Push thiếu key $push: %v", push)
	}
}

func TestConvertStruct(t *testing.T) {
	type src struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	type dst struct {
		Name string `json:"name"`
	}
	var out dst
	if _, err := ConvertStruct(src{Name: "Nam", Age: 20}, &out); err != nil {
		t.Fatalf("ConvertStruct lỗi: %v", err)
	}
	if out.Name != "Nam" {
		t.Errorf("out.Name = %q, muốn 'Nam'", out.Name)
	}
}

func TestGoProtect(t *testing.T) {
	// Không được panic lan ra ngoài
	GoProtect(func() {
		panic("nổ có kiểm soát")
	})
}
