package basesvc

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	basemodels "vidtube/internal/api/base/models"
	"vidtube/internal/common"
	"vidtube/internal/global"
)

// OwnerLookupStages trả về các stage $lookup + $addFields để join thông tin chủ sở hữu
// từ collection users vào document, chỉ giữ các field public (fullName, username, avatar).
// localField là field chứa ObjectID của user (ví dụ "owner"), asField là tên field kết quả.
func OwnerLookupStages(localField, asField string) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         global.MongoDB_ColNames.Users,
			"localField":   localField,
			"foreignField": "_id",
			"as":           asField,
			"pipeline": []bson.M{
				{"$project": bson.M{
					"fullName": 1,
					"username": 1,
					"avatar":   1,
				}},
			},
		}}},
		// $lookup trả về mảng, lấy phần tử đầu tiên thành object
		{{Key: "$addFields", Value: bson.M{
			asField: bson.M{"$first": "$" + asField},
		}}},
	}
}

// SortStage trả về stage $sort với _id tăng dần làm khóa phụ để thứ tự phân
// trang ổn định khi nhiều document trùng giá trị sort chính.
func SortStage(field string, descending bool) bson.D {
	order := 1
	if descending {
		order = -1
	}
	if field == "" || field == "_id" {
		return bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: order}}}}
	}
	return bson.D{{Key: "$sort", Value: bson.D{
		{Key: field, Value: order},
		{Key: "_id", Value: 1},
	}}}
}

// SearchRegexStage trả về stage $match tìm chuỗi con không phân biệt hoa thường
// trên nhiều field ($or). Query được escape để ký tự đặc biệt của regex
// (".", "*", "(", ...) chỉ khớp theo nghĩa đen. Trả về match rỗng nếu query trống.
func SearchRegexStage(query string, fields ...string) bson.D {
	if query == "" || len(fields) == 0 {
		return bson.D{{Key: "$match", Value: bson.D{}}}
	}
	escaped := regexp.QuoteMeta(query)
	conditions := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		conditions = append(conditions, bson.M{
			f: bson.M{"$regex": escaped, "$options": "i"},
		})
	}
	return bson.D{{Key: "$match", Value: bson.M{"$or": conditions}}}
}

// MatchOwnerStage trả về stage $match lọc theo chủ sở hữu.
func MatchOwnerStage(field string, ownerID primitive.ObjectID) bson.D {
	return bson.D{{Key: "$match", Value: bson.M{field: ownerID}}}
}

// facetResult là cấu trúc decode kết quả $facet của AggregateWithPagination.
type facetResult[T any] struct {
	Items      []T `bson:"items"`
	TotalCount []struct {
		Count int64 `bson:"count"`
	} `bson:"totalCount"`
}

// Aggregate chạy pipeline tổng hợp trên collection và decode kết quả về []T.
func (s *BaseServiceMongoImpl[T]) Aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]T, error) {
	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.NewError(
			common.ErrCodeDatabaseAggregation,
			common.MsgAggregation,
			common.StatusInternalServerError,
			err,
		)
	}
	defer cursor.Close(ctx)

	var results []T
	if err = cursor.All(ctx, &results); err != nil {
		return nil, common.NewError(
			common.ErrCodeDatabaseAggregation,
			common.MsgAggregation,
			common.StatusInternalServerError,
			err,
		)
	}
	if results == nil {
		results = []T{}
	}
	return results, nil
}

// AggregateRaw chạy pipeline và decode kết quả về []bson.M, dùng cho các view
// có shape khác model gốc (ví dụ sau $lookup, $project).
func (s *BaseServiceMongoImpl[T]) AggregateRaw(ctx context.Context, pipeline mongo.Pipeline) ([]bson.M, error) {
	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.NewError(
			common.ErrCodeDatabaseAggregation,
			common.MsgAggregation,
			common.StatusInternalServerError,
			err,
		)
	}
	defer cursor.Close(ctx)

	var results []bson.M
	if err = cursor.All(ctx, &results); err != nil {
		return nil, common.NewError(
			common.ErrCodeDatabaseAggregation,
			common.MsgAggregation,
			common.StatusInternalServerError,
			err,
		)
	}
	if results == nil {
		results = []bson.M{}
	}
	return results, nil
}

// AggregateWithPagination chạy pipeline tổng hợp có phân trang bằng $facet:
// một nhánh items ($skip + $limit), một nhánh totalCount ($count) — một round-trip duy nhất.
// Các stage trong pipeline chạy trước khi phân trang (match, lookup, sort).
func AggregateWithPagination[T any](ctx context.Context, collection *mongo.Collection, pipeline mongo.Pipeline, page, limit int64) (*basemodels.PaginateResult[T], error) {
	page, limit = NormalizePageLimit(page, limit)
	skip := (page - 1) * limit

	facetStage := bson.D{{Key: "$facet", Value: bson.M{
		"items": []bson.M{
			{"$skip": skip},
			{"$limit": limit},
		},
		"totalCount": []bson.M{
			{"$count": "count"},
		},
	}}}
	fullPipeline := append(append(mongo.Pipeline{}, pipeline...), facetStage)

	cursor, err := collection.Aggregate(ctx, fullPipeline)
	if err != nil {
		return nil, common.NewError(
			common.ErrCodeDatabaseAggregation,
			common.MsgAggregation,
			common.StatusInternalServerError,
			err,
		)
	}
	defer cursor.Close(ctx)

	var facets []facetResult[T]
	if err = cursor.All(ctx, &facets); err != nil {
		return nil, common.NewError(
			common.ErrCodeDatabaseAggregation,
			common.MsgAggregation,
			common.StatusInternalServerError,
			err,
		)
	}

	return paginateFacets(facets, page, limit), nil
}

// paginateFacets chuyển kết quả $facet thành PaginateResult. Collection rỗng
// cho facet không có totalCount — trang rỗng với Total = 0, không phải lỗi.
func paginateFacets[T any](facets []facetResult[T], page, limit int64) *basemodels.PaginateResult[T] {
	result := &basemodels.PaginateResult[T]{
		Items: []T{},
		Page:  page,
		Limit: limit,
	}
	if len(facets) > 0 {
		if facets[0].Items != nil {
			result.Items = facets[0].Items
		}
		if len(facets[0].TotalCount) > 0 {
			result.Total = facets[0].TotalCount[0].Count
		}
	}
	result.ItemCount = int64(len(result.Items))
	result.TotalPage = TotalPages(result.Total, limit)
	return result
}
