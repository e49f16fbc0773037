package database

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

// Mỗi loại nội dung like phải có index unique riêng, giới hạn bằng partial
// filter đúng field tài nguyên đó. Sparse trên index compound sẽ index cả
// document khác loại (mọi like đều có likedBy) nên tuyệt đối không được dùng.
func TestLikeUniqueIndexModels(t *testing.T) {
	models := likeUniqueIndexModels()
	if len(models) != 3 {
		t.Fatalf("số index của likes = %d, muốn 3", len(models))
	}

	wantFields := map[string]string{
		"like_video_unique":   "video",
		"like_comment_unique": "comment",
		"like_tweet_unique":   "tweet",
	}

	seen := make(map[string]bool)
	for _, model := range models {
		opts := model.Options
		if opts == nil || opts.Name == nil {
			t.Fatal("index của likes thiếu options/name")
		}
		name := *opts.Name
		field, ok := wantFields[name]
		if !ok {
			t.Fatalf("index không mong đợi: %s", name)
		}
		seen[name] = true

		if opts.Unique == nil || !*opts.Unique {
			t.Errorf("index %s phải unique", name)
		}
		if opts.Sparse != nil {
			t.Errorf("index %s không được dùng sparse", name)
		}

		pfe, ok := opts.PartialFilterExpression.(bson.M)
		if !ok {
			t.Fatalf("index %s thiếu partial filter expression", name)
		}
		cond, ok := pfe[field].(bson.M)
		if !ok || cond["$exists"] != true {
			t.Errorf("partial filter của %s = %v, muốn {%s: {$exists: true}}", name, pfe, field)
		}

		keys, ok := model.Keys.(bson.D)
		if !ok || len(keys) != 2 {
			t.Fatalf("keys của %s = %v, muốn compound 2 field", name, model.Keys)
		}
		if keys[0].Key != field || keys[1].Key != "likedBy" {
			t.Errorf("keys của %s = (%s, %s), muốn (%s, likedBy)", name, keys[0].Key, keys[1].Key, field)
		}
	}

	for name := range wantFields {
		if !seen[name] {
			t.Errorf("thiếu index %s", name)
		}
	}
}
