// Package engagementsvc - Test bảng ánh xạ toggle và các bước kiểm tra đầu vào
// không chạm tới database.
package engagementsvc

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
)

func TestToggleKinds_AnhXa(t *testing.T) {
	cases := []struct {
		kind        ToggleKind
		relationCol string
		targetField string
		actorField  string
		actorCol    string
		allowSelf   bool
	}{
		{KindVideo, "likes", "video", "likedBy", "users", true},
		{KindComment, "likes", "comment", "likedBy", "users", true},
		{KindTweet, "likes", "tweet", "likedBy", "users", true},
		{KindChannel, "subscriptions", "channel", "subscriber", "users", false},
	}
	for _, c := range cases {
		spec, ok := toggleKinds[c.kind]
		if !ok {
			t.Fatalf("toggleKinds thiếu kind %q", c.kind)
		}
		if spec.relationCol != c.relationCol {
			t.Errorf("%s: relationCol = %q, muốn %q", c.kind, spec.relationCol, c.relationCol)
		}
		if spec.targetField != c.targetField || spec.actorField != c.actorField {
			t.Errorf("%s: field = %q/%q, muốn %q/%q", c.kind, spec.targetField, spec.actorField, c.targetField, c.actorField)
		}
		// Mọi actor đều phải được đối chiếu với collection users trước khi ghi
		if spec.actorCol != c.actorCol {
			t.Errorf("%s: actorCol = %q, muốn %q", c.kind, spec.actorCol, c.actorCol)
		}
		if spec.policy.AllowSelf != c.allowSelf {
			t.Errorf("%s: AllowSelf = %v, muốn %v", c.kind, spec.policy.AllowSelf, c.allowSelf)
		}
	}
}

func TestParseToggleKind(t *testing.T) {
	for _, raw := range []string{"video", "comment", "tweet", "channel"} {
		kind, err := ParseToggleKind(raw)
		if err != nil {
			t.Errorf("ParseToggleKind(%q) lỗi: %v", raw, err)
		}
		if string(kind) != raw {
			t.Errorf("ParseToggleKind(%q) = %q", raw, kind)
		}
	}
	for _, raw := range []string{"", "playlist", "VIDEO"} {
		if _, err := ParseToggleKind(raw); err == nil {
			t.Errorf("ParseToggleKind(%q) phải trả về lỗi", raw)
		}
	}
}

func TestToggle_KindKhongHoTro(t *testing.T) {
	_, err := Toggle(context.Background(), ToggleKind("playlist"), primitive.NewObjectID(), primitive.NewObjectID())
	if err == nil {
		t.Fatal("Toggle với kind không hỗ trợ phải trả về lỗi")
	}
}

func TestToggle_ThieuID(t *testing.T) {
	id := primitive.NewObjectID()
	if _, err := Toggle(context.Background(), KindVideo, primitive.NilObjectID, id); err != common.ErrRequiredField {
		t.Errorf("Thiếu targetID phải trả về ErrRequiredField, nhận: %v", err)
	}
	if _, err := Toggle(context.Background(), KindVideo, id, primitive.NilObjectID); err != common.ErrRequiredField {
		t.Errorf("Thiếu actorID phải trả về ErrRequiredField, nhận: %v", err)
	}
}

func TestToggle_TuDangKyKenh(t *testing.T) {
	id := primitive.NewObjectID()
	_, err := Toggle(context.Background(), KindChannel, id, id)
	if err == nil {
		t.Fatal("Tự đăng ký kênh của chính mình phải bị từ chối")
	}
}
