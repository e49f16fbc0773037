package router

import (
	"testing"

	commenthdl "vidtube/internal/api/comment/handler"
	playlisthdl "vidtube/internal/api/playlist/handler"
	tweethdl "vidtube/internal/api/tweet/handler"
	videohdl "vidtube/internal/api/video/handler"
)

// Các domain handler đăng ký qua RegisterCRUDRoutes phải thỏa interface CRUDHandler.
var (
	_ CRUDHandler = (*videohdl.VideoHandler)(nil)
	_ CRUDHandler = (*commenthdl.CommentHandler)(nil)
	_ CRUDHandler = (*tweethdl.TweetHandler)(nil)
	_ CRUDHandler = (*playlisthdl.PlaylistHandler)(nil)
)

func TestReadOnlyConfig(t *testing.T) {
	c := ReadOnlyConfig
	for name, enabled := range map[string]bool{
		"Find": c.Find, "FindOne": c.FindOne, "FindById": c.FindById,
		"FindIds": c.FindIds, "Paginate": c.Paginate,
		"Count": c.Count, "Distinct": c.Distinct, "Exists": c.Exists,
	} {
		if !enabled {
			t.Errorf("ReadOnlyConfig phải bật thao tác đọc %s", name)
		}
	}
	for name, enabled := range map[string]bool{
		"InsOne": c.InsOne, "InsMany": c.InsMany,
		"UpdOne": c.UpdOne, "UpdMany": c.UpdMany, "UpdById": c.UpdById, "FindUpd": c.FindUpd,
		"DelOne": c.DelOne, "DelMany": c.DelMany, "DelById": c.DelById, "FindDel": c.FindDel,
		"Upsert": c.Upsert, "UpsMany": c.UpsMany,
	} {
		if enabled {
			t.Errorf("ReadOnlyConfig không được bật thao tác ghi %s", name)
		}
	}
}

func TestReadWriteConfig(t *testing.T) {
	c := ReadWriteConfig
	for name, enabled := range map[string]bool{
		"InsOne": c.InsOne, "Find": c.Find, "FindById": c.FindById, "Paginate": c.Paginate,
		"UpdById": c.UpdById, "DelById": c.DelById, "Count": c.Count, "Exists": c.Exists,
	} {
		if !enabled {
			t.Errorf("ReadWriteConfig phải bật thao tác %s", name)
		}
	}
}
