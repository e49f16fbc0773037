// Package basesvc - Test hình dạng các stage aggregation dùng chung.
package basesvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/global"
)

func TestSortStage_MacDinhTheoID(t *testing.T) {
	for _, field := range []string{"", "_id"} {
		stage := SortStage(field, false)
		sort, ok := stage[0].Value.(bson.D)
		if !ok {
			t.Fatalf("SortStage(%q) giá trị $sort không phải bson.D", field)
		}
		if len(sort) != 1 || sort[0].Key != "_id" || sort[0].Value != 1 {
			t.Errorf("SortStage(%q) = %+v, muốn sort theo _id tăng dần", field, sort)
		}
	}
}

func TestSortStage_CoKhoaPhu(t *testing.T) {
	stage := SortStage("createdAt", true)
	if stage[0].Key != "$sort" {
		t.Fatalf("Stage key = %q, muốn $sort", stage[0].Key)
	}
	sort := stage[0].Value.(bson.D)
	if len(sort) != 2 {
		t.Fatalf("Sort có %d khóa, muốn 2 (field chính + _id)", len(sort))
	}
	if sort[0].Key != "createdAt" || sort[0].Value != -1 {
		t.Errorf("Khóa chính = %+v, muốn createdAt giảm dần", sort[0])
	}
	if sort[1].Key != "_id" || sort[1].Value != 1 {
		t.Errorf("Khóa phụ = %+v, muốn _id tăng dần bất kể chiều khóa chính", sort[1])
	}
}

func TestSortStage_KhoaPhuTangDan(t *testing.T) {
	// Khóa phụ _id luôn tăng dần, dù sort chính tăng hay giảm
	for _, descending := range []bool{true, false} {
		sort := SortStage("views", descending)[0].Value.(bson.D)
		if sort[1].Key != "_id" || sort[1].Value != 1 {
			t.Errorf("SortStage(views, %v): khóa phụ = %+v, muốn _id tăng dần", descending, sort[1])
		}
	}
}

func TestSearchRegexStage(t *testing.T) {
	stage := SearchRegexStage("golang", "title", "description")
	match, ok := stage[0].Value.(bson.M)
	if !ok {
		t.Fatal("Giá trị $match không phải bson.M")
	}
	conditions, ok := match["$or"].([]bson.M)
	if !ok || len(conditions) != 2 {
		t.Fatalf("$or = %+v, muốn 2 điều kiện", match["$or"])
	}
	title := conditions[0]["title"].(bson.M)
	if title["$regex"] != "golang" || title["$options"] != "i" {
		t.Errorf("Điều kiện title = %+v, muốn regex 'golang' không phân biệt hoa thường", title)
	}
}

func TestSearchRegexStage_EscapeKyTuDacBiet(t *testing.T) {
	stage := SearchRegexStage("c++ (phần 1)", "title")
	match := stage[0].Value.(bson.M)
	conditions := match["$or"].([]bson.M)
	got := conditions[0]["title"].(bson.M)["$regex"].(string)
	if got == "c++ (phần 1)" {
		t.Error("Query chứa ký tự đặc biệt của regex phải được escape")
	}
}

func TestSearchRegexStage_QueryRong(t *testing.T) {
	stage := SearchRegexStage("", "title")
	match, ok := stage[0].Value.(bson.D)
	if !ok || len(match) != 0 {
		t.Errorf("Query rỗng phải trả về $match rỗng, nhận %+v", stage[0].Value)
	}
}

func TestMatchOwnerStage(t *testing.T) {
	owner := primitive.NewObjectID()
	stage := MatchOwnerStage("owner", owner)
	match := stage[0].Value.(bson.M)
	if match["owner"] != owner {
		t.Errorf("$match[owner] = %v, muốn %v", match["owner"], owner)
	}
}

func TestOwnerLookupStages(t *testing.T) {
	global.InitColNames()

	stages := OwnerLookupStages("owner", "owner")
	if len(stages) != 2 {
		t.Fatalf("OwnerLookupStages trả về %d stage, muốn 2 ($lookup + $addFields)", len(stages))
	}

	lookup := stages[0][0].Value.(bson.M)
	if lookup["from"] != global.MongoDB_ColNames.Users {
		t.Errorf("$lookup from = %v, muốn collection users", lookup["from"])
	}
	if lookup["localField"] != "owner" || lookup["foreignField"] != "_id" {
		t.Errorf("$lookup localField/foreignField = %v/%v, muốn owner/_id", lookup["localField"], lookup["foreignField"])
	}

	addFields := stages[1][0].Value.(bson.M)
	first, ok := addFields["owner"].(bson.M)
	if !ok || first["$first"] != "$owner" {
		t.Errorf("$addFields phải lấy phần tử đầu của mảng lookup, nhận %+v", addFields["owner"])
	}
}

// facetOf dựng một facetResult như driver decode từ $facet.
func facetOf(items []int, total int64) facetResult[int] {
	f := facetResult[int]{Items: items}
	if total >= 0 {
		f.TotalCount = []struct {
			Count int64 `bson:"count"`
		}{{Count: total}}
	}
	return f
}

func TestPaginateFacets_CollectionRong(t *testing.T) {
	// Collection rỗng: $facet trả về một document với totalCount rỗng
	result := paginateFacets([]facetResult[int]{facetOf(nil, -1)}, 1, 10)
	if result.Total != 0 || result.ItemCount != 0 || result.TotalPage != 0 {
		t.Errorf("Trang rỗng: Total/ItemCount/TotalPage = %d/%d/%d, muốn 0/0/0", result.Total, result.ItemCount, result.TotalPage)
	}
	if result.Items == nil || len(result.Items) != 0 {
		t.Error("Items phải là slice rỗng, không phải nil")
	}

	// Cursor không trả về document nào cũng cho cùng kết quả
	result = paginateFacets[int](nil, 1, 10)
	if result.Total != 0 || len(result.Items) != 0 {
		t.Errorf("Facet nil: Total = %d, Items = %v, muốn trang rỗng", result.Total, result.Items)
	}
}

func TestPaginateFacets_TrangCuoi(t *testing.T) {
	result := paginateFacets([]facetResult[int]{facetOf([]int{21, 22, 23, 24, 25}, 25)}, 3, 10)
	if result.Total != 25 || result.TotalPage != 3 {
		t.Errorf("Total/TotalPage = %d/%d, muốn 25/3", result.Total, result.TotalPage)
	}
	if result.ItemCount != 5 {
		t.Errorf("ItemCount trang cuối = %d, muốn 5", result.ItemCount)
	}
	if result.Page != 3 || result.Limit != 10 {
		t.Errorf("Page/Limit = %d/%d, muốn 3/10", result.Page, result.Limit)
	}
}

func TestPaginateFacets_TongCacTrangBangTotal(t *testing.T) {
	// Mô phỏng 25 document chia trang 10: tổng ItemCount các trang phải bằng
	// Total và không document nào xuất hiện ở hai trang.
	const total = 25
	const limit = 10
	all := make([]int, total)
	for i := range all {
		all[i] = i
	}

	seen := make(map[int]bool)
	var sum int64
	for page := int64(1); page <= 3; page++ {
		lo := int((page - 1) * limit)
		hi := lo + limit
		if hi > total {
			hi = total
		}
		result := paginateFacets([]facetResult[int]{facetOf(all[lo:hi], total)}, page, limit)
		sum += result.ItemCount
		for _, item := range result.Items {
			if seen[item] {
				t.Fatalf("Document %d xuất hiện ở hai trang", item)
			}
			seen[item] = true
		}
		if result.TotalPage != 3 {
			t.Errorf("Trang %d: TotalPage = %d, muốn 3", page, result.TotalPage)
		}
	}
	if sum != total {
		t.Errorf("Tổng ItemCount các trang = %d, muốn %d", sum, total)
	}
}
