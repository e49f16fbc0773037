// Package basesvc - Test parser tag relationship và bộ thu thập định nghĩa quan hệ.
package basesvc

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseRelationshipTag_DayDu(t *testing.T) {
	def := ParseRelationshipTag("collection:videos,field:slug,error:Video không tồn tại,optional,cascade,pull", "video")
	if def == nil {
		t.Fatal("ParseRelationshipTag trả về nil với tag hợp lệ")
	}
	if def.FieldName != "video" {
		t.Errorf("FieldName = %q, muốn %q", def.FieldName, "video")
	}
	if def.CollectionName != "videos" {
		t.Errorf("CollectionName = %q, muốn %q", def.CollectionName, "videos")
	}
	if def.TargetField != "slug" {
		t.Errorf("TargetField = %q, muốn %q", def.TargetField, "slug")
	}
	if def.ErrorMessage != "Video không tồn tại" {
		t.Errorf("ErrorMessage = %q, muốn %q", def.ErrorMessage, "Video không tồn tại")
	}
	if !def.Optional || !def.Cascade || !def.Pull {
		t.Errorf("Optional/Cascade/Pull = %v/%v/%v, muốn true/true/true", def.Optional, def.Cascade, def.Pull)
	}
}

func TestParseRelationshipTag_MacDinh(t *testing.T) {
	def := ParseRelationshipTag("collection:users", "owner")
	if def == nil {
		t.Fatal("ParseRelationshipTag trả về nil với tag chỉ có collection")
	}
	if def.TargetField != "_id" {
		t.Errorf("TargetField mặc định = %q, muốn %q", def.TargetField, "_id")
	}
	if def.Optional || def.Cascade || def.Pull {
		t.Error("Các flag phải mặc định là false khi tag không khai báo")
	}
}

func TestParseRelationshipTag_KhongHopLe(t *testing.T) {
	cases := []string{"", "-", "field:_id,optional", "   "}
	for _, tag := range cases {
		if def := ParseRelationshipTag(tag, "x"); def != nil {
			t.Errorf("ParseRelationshipTag(%q) = %+v, muốn nil", tag, def)
		}
	}
}

func TestParseRelationshipTag_KhoangTrang(t *testing.T) {
	def := ParseRelationshipTag(" collection : videos , optional ", "video")
	if def == nil {
		t.Fatal("ParseRelationshipTag phải chịu được khoảng trắng quanh các option")
	}
	if def.CollectionName != "videos" || !def.Optional {
		t.Errorf("CollectionName/Optional = %q/%v, muốn videos/true", def.CollectionName, def.Optional)
	}
}

type sampleRelModel struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Video   primitive.ObjectID `bson:"video" relationship:"collection:videos,cascade"`
	Owner   primitive.ObjectID `bson:"owner" relationship:"collection:users"`
	Content string             `bson:"content"`
	Skipped primitive.ObjectID `bson:"-" relationship:"collection:users"`
}

func TestCollectRelationshipDefinitions(t *testing.T) {
	defs := CollectRelationshipDefinitions(reflect.TypeOf(sampleRelModel{}))
	if len(defs) != 2 {
		t.Fatalf("Thu thập được %d định nghĩa, muốn 2", len(defs))
	}
	if defs[0].FieldName != "video" || !defs[0].Cascade {
		t.Errorf("Định nghĩa đầu = %+v, muốn field video với cascade", defs[0])
	}
	if defs[1].FieldName != "owner" || defs[1].CollectionName != "users" {
		t.Errorf("Định nghĩa thứ hai = %+v, muốn field owner trỏ tới users", defs[1])
	}
}

func TestCollectRelationshipDefinitions_ConTro(t *testing.T) {
	byValue := CollectRelationshipDefinitions(reflect.TypeOf(sampleRelModel{}))
	byPointer := CollectRelationshipDefinitions(reflect.TypeOf(&sampleRelModel{}))
	if len(byValue) != len(byPointer) {
		t.Errorf("Kết quả qua pointer (%d) khác qua value (%d)", len(byPointer), len(byValue))
	}
}

func TestCollectRelationshipDefinitions_KhongPhaiStruct(t *testing.T) {
	if defs := CollectRelationshipDefinitions(reflect.TypeOf("abc")); defs != nil {
		t.Errorf("Kiểu không phải struct phải trả về nil, nhận %+v", defs)
	}
}
