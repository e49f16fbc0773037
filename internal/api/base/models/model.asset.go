package models

// Asset đại diện cho một file media đã upload (video, thumbnail, avatar, cover).
// AssetID là object key trên storage, dùng để xóa; URL là địa chỉ public.
type Asset struct {
	AssetID string `json:"assetId,omitempty" bson:"assetId,omitempty"`
	URL     string `json:"url" bson:"url"`
}
