// Package dashboardsvc - Test trích kênh từ sự kiện thay đổi dữ liệu và TTL cache.
package dashboardsvc

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveChannel_BsonMap(t *testing.T) {
	owner := primitive.NewObjectID()
	channel := primitive.NewObjectID()

	if got := resolveChannel(bson.M{"owner": owner, "likedBy": primitive.NewObjectID()}); got != owner {
		t.Errorf("resolveChannel theo key owner = %v, muốn %v", got, owner)
	}
	if got := resolveChannel(bson.M{"channel": channel, "subscriber": primitive.NewObjectID()}); got != channel {
		t.Errorf("resolveChannel theo key channel = %v, muốn %v", got, channel)
	}
	if got := resolveChannel(bson.M{"video": primitive.NewObjectID()}); !got.IsZero() {
		t.Errorf("Map không có owner/channel phải trả về NilObjectID, nhận %v", got)
	}
}

func TestResolveChannel_Struct(t *testing.T) {
	type tweetDoc struct {
		Owner   primitive.ObjectID
		Content string
	}
	type subDoc struct {
		Channel    primitive.ObjectID
		Subscriber primitive.ObjectID
	}

	owner := primitive.NewObjectID()
	if got := resolveChannel(tweetDoc{Owner: owner}); got != owner {
		t.Errorf("resolveChannel theo field Owner = %v, muốn %v", got, owner)
	}

	channel := primitive.NewObjectID()
	if got := resolveChannel(&subDoc{Channel: channel, Subscriber: primitive.NewObjectID()}); got != channel {
		t.Errorf("resolveChannel theo field Channel = %v, muốn %v", got, channel)
	}
}

func TestResolveChannel_Nil(t *testing.T) {
	if got := resolveChannel(nil); !got.IsZero() {
		t.Errorf("Document nil phải trả về NilObjectID, nhận %v", got)
	}
}

func TestNewStatsCache_TTLMacDinh(t *testing.T) {
	// Không có cấu hình server thì TTL mặc định 300 giây
	cache := NewStatsCache()
	if cache.ttl != 300*time.Second {
		t.Errorf("TTL mặc định = %v, muốn 300s", cache.ttl)
	}
}
