package dashboardsvc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/api/events"
	"vidtube/internal/global"
)

// statsCacheKeyPrefix là prefix key Redis cho cache thống kê kênh.
const statsCacheKeyPrefix = "vidtube:stats:"

// StatsCache là cache-aside trên Redis cho số liệu thống kê kênh.
// Redis không cấu hình (RedisClient nil) thì mọi thao tác là no-op và
// thống kê luôn được tính trực tiếp từ MongoDB.
type StatsCache struct {
	ttl time.Duration
}

// NewStatsCache tạo mới StatsCache với TTL từ cấu hình server.
func NewStatsCache() *StatsCache {
	ttl := 300 * time.Second
	if global.ServerConfig != nil && global.ServerConfig.Redis_CacheTTL > 0 {
		ttl = time.Duration(global.ServerConfig.Redis_CacheTTL) * time.Second
	}
	return &StatsCache{ttl: ttl}
}

// Get đọc thống kê từ cache. Lỗi Redis chỉ log — cache hỏng thì tính lại từ DB.
func (c *StatsCache) Get(ctx context.Context, channelID primitive.ObjectID) (*ChannelStats, bool) {
	if global.RedisClient == nil {
		return nil, false
	}

	raw, err := global.RedisClient.Get(ctx, statsCacheKeyPrefix+channelID.Hex()).Bytes()
	if err != nil {
		return nil, false
	}

	var stats ChannelStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		logrus.WithField("channel_id", channelID.Hex()).
			Warn("StatsCache: Cache chứa dữ liệu hỏng, bỏ qua")
		return nil, false
	}
	return &stats, true
}

// Set ghi thống kê vào cache với TTL.
func (c *StatsCache) Set(ctx context.Context, channelID primitive.ObjectID, stats *ChannelStats) {
	if global.RedisClient == nil || stats == nil {
		return
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := global.RedisClient.Set(ctx, statsCacheKeyPrefix+channelID.Hex(), raw, c.ttl).Err(); err != nil {
		logrus.WithFields(logrus.Fields{
			"channel_id": channelID.Hex(),
			"error":      err.Error(),
		}).Warn("StatsCache: Ghi cache thất bại")
	}
}

// Invalidate xóa thống kê của một kênh khỏi cache.
func (c *StatsCache) Invalidate(ctx context.Context, channelID primitive.ObjectID) {
	if global.RedisClient == nil || channelID.IsZero() {
		return
	}
	if err := global.RedisClient.Del(ctx, statsCacheKeyPrefix+channelID.Hex()).Err(); err != nil {
		logrus.WithFields(logrus.Fields{
			"channel_id": channelID.Hex(),
			"error":      err.Error(),
		}).Warn("StatsCache: Xóa cache thất bại")
	}
}

// RegisterInvalidation đăng ký invalidate cache khi dữ liệu ảnh hưởng thống kê
// thay đổi. Sự kiện không xác định được kênh (like trên video của người khác)
// thì dựa vào TTL — số liệu chỉ lệch tối đa một chu kỳ cache.
func (c *StatsCache) RegisterInvalidation() {
	watched := map[string]bool{
		global.MongoDB_ColNames.Videos:        true,
		global.MongoDB_ColNames.Tweets:        true,
		global.MongoDB_ColNames.Comments:      true,
		global.MongoDB_ColNames.Likes:         true,
		global.MongoDB_ColNames.Subscriptions: true,
	}

	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		if !watched[e.CollectionName] {
			return
		}
		if channelID := resolveChannel(e.Document); !channelID.IsZero() {
			c.Invalidate(ctx, channelID)
		}
	})
}

// resolveChannel rút ObjectID của kênh bị ảnh hưởng từ document sự kiện:
// Owner cho video/tweet/comment, Channel cho subscription. Document dạng
// map (event từ toggle engine) được tra theo key bson.
func resolveChannel(doc interface{}) primitive.ObjectID {
	if doc == nil {
		return primitive.NilObjectID
	}

	if m, ok := doc.(bson.M); ok {
		for _, key := range []string{"owner", "channel"} {
			if id, ok := m[key].(primitive.ObjectID); ok {
				return id
			}
		}
		return primitive.NilObjectID
	}

	for _, field := range []string{"Owner", "Channel"} {
		if id := events.GetObjectIDField(doc, field); !id.IsZero() {
			return id
		}
	}
	return primitive.NilObjectID
}
