// Package videosvc - Test các bước thuần logic của quá trình xóa video dây chuyền.
package videosvc

import (
	"testing"

	basemodels "vidtube/internal/api/base/models"
)

func TestAssetKeyOf(t *testing.T) {
	if got := assetKeyOf(nil); got != "" {
		t.Errorf("Asset nil phải trả về chuỗi rỗng, nhận %q", got)
	}

	// Có assetId thì dùng thẳng
	withID := &basemodels.Asset{AssetID: "videos/abc.mp4", URL: "https://cdn/videos/khac.mp4"}
	if got := assetKeyOf(withID); got != "videos/abc.mp4" {
		t.Errorf("assetKeyOf ưu tiên AssetID, nhận %q", got)
	}

	// Thiếu assetId thì suy ra từ URL
	fromURL := &basemodels.Asset{URL: "https://bucket.s3.amazonaws.com/thumbnails/xyz.jpg"}
	if got := assetKeyOf(fromURL); got != "thumbnails/xyz.jpg" {
		t.Errorf("assetKeyOf từ URL = %q, muốn thumbnails/xyz.jpg", got)
	}
}

func TestDeleteResult_Fail(t *testing.T) {
	// Lỗi trước điểm không còn đường lui dừng quá trình ở đúng giai đoạn đang chạy
	for _, stage := range []DeleteStage{StageValidating, StageAssetsRemoving, StageRecordRemoving} {
		result := DeleteResult{Stage: stage}
		result.fail(stage)
		if result.Stage != StageFailed {
			t.Errorf("fail(%s): Stage = %s, muốn %s", stage, result.Stage, StageFailed)
		}
		if result.FailedStage != stage {
			t.Errorf("fail(%s): FailedStage = %s, muốn %s", stage, result.FailedStage, stage)
		}
		if result.DeletedReferences != 0 || result.PulledPlaylists != 0 || result.PulledHistories != 0 {
			t.Errorf("fail(%s) không được đụng tới các bộ đếm", stage)
		}
	}
}
