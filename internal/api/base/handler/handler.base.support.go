package basehdl

// Package basehdl - base CRUD handlers.
// Package này cung cấp các chức năng CRUD cơ bản và các tiện ích để xử lý request/response.

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basesvc "vidtube/internal/api/base/service"
	"vidtube/internal/common"
	"vidtube/internal/global"
	"vidtube/internal/utility"
)

// BaseHandler cung cấp các handler CRUD chung cho mọi domain.
// Type Parameters:
//   - T: Model
//   - CreateInput: DTO cho thao tác tạo mới
//   - UpdateInput: DTO cho thao tác cập nhật
//
// OwnerField (tên field bson, ví dụ "owner") bật cơ chế giới hạn dữ liệu theo
// người dùng đăng nhập: find/update/delete tự động thêm filter owner = user hiện tại.
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	BaseService   basesvc.BaseServiceMongo[T]
	OwnerField    string
	filterOptions FilterOptions
}

// FilterOptions giới hạn filter nhận từ client để tránh query tùy tiện.
type FilterOptions struct {
	DeniedFields     []string // Các field không cho phép filter (password, token, ...)
	AllowedOperators []string // Các operator MongoDB được phép ($eq, $gt, ...)
	MaxFields        int      // Số field tối đa trong một filter
}

// DefaultFilterOptions là cấu hình filter mặc định cho các handler CRUD.
var DefaultFilterOptions = FilterOptions{
	DeniedFields:     []string{"password", "refreshToken", "token", "secret"},
	AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists", "$ne", "$regex", "$options"},
	MaxFields:        10,
}

// NewBaseHandler tạo mới một BaseHandler với filter options mặc định.
func NewBaseHandler[T any, CreateInput any, UpdateInput any](service basesvc.BaseServiceMongo[T]) *BaseHandler[T, CreateInput, UpdateInput] {
	return &BaseHandler[T, CreateInput, UpdateInput]{
		BaseService:   service,
		filterOptions: DefaultFilterOptions,
	}
}

// SetFilterOptions ghi đè cấu hình giới hạn filter.
func (h *BaseHandler[T, CreateInput, UpdateInput]) SetFilterOptions(opts FilterOptions) {
	h.filterOptions = opts
}

// GetUserID lấy ObjectID của user đang đăng nhập từ context (set bởi middleware auth).
// Trả về NilObjectID nếu request chưa xác thực.
func GetUserID(c fiber.Ctx) primitive.ObjectID {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok || userIDStr == "" {
		return primitive.NilObjectID
	}
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		return primitive.NilObjectID
	}
	return userID
}

// RequireUserID lấy user hiện tại, trả lỗi nếu request chưa xác thực.
func RequireUserID(c fiber.Ctx) (primitive.ObjectID, error) {
	userID := GetUserID(c)
	if userID.IsZero() {
		return primitive.NilObjectID, common.ErrTokenMissing
	}
	return userID, nil
}

// ParseRequestBody parse request body JSON vào struct đích.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestBody(c fiber.Ctx, out interface{}) error {
	return c.Bind().Body(out)
}

// ValidateInput validate struct với các tag validate đã đăng ký (required, oneof, ...).
func (h *BaseHandler[T, CreateInput, UpdateInput]) ValidateInput(input interface{}) error {
	if global.Validate == nil {
		return nil
	}
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("%s. Chi tiết: %v", common.MsgValidationError, err),
			common.StatusBadRequest,
			err,
		)
	}
	return nil
}

// TransformCreateInputToModel chuyển DTO CreateInput sang Model theo struct tag `transform`.
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformCreateInputToModel(input *CreateInput) (*T, error) {
	var model T
	if err := transformStruct(input, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// TransformUpdateInputToModel chuyển DTO UpdateInput sang Model theo struct tag `transform`.
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformUpdateInputToModel(input *UpdateInput) (*T, error) {
	var model T
	if err := transformStruct(input, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// transformStruct copy field từ DTO sang Model theo tên field.
// Field string có tag `transform:"str2objectid"` được chuyển thành primitive.ObjectID;
// thêm option `optional` cho phép chuỗi rỗng (giữ zero ObjectID).
func transformStruct(src interface{}, dst interface{}) error {
	srcVal := reflect.ValueOf(src)
	if srcVal.Kind() == reflect.Ptr {
		srcVal = srcVal.Elem()
	}
	dstVal := reflect.ValueOf(dst)
	if dstVal.Kind() != reflect.Ptr {
		return common.ErrInvalidFormat
	}
	dstVal = dstVal.Elem()
	if srcVal.Kind() != reflect.Struct || dstVal.Kind() != reflect.Struct {
		return common.ErrInvalidFormat
	}

	srcType := srcVal.Type()
	for i := 0; i < srcType.NumField(); i++ {
		srcField := srcType.Field(i)
		dstField := dstVal.FieldByName(srcField.Name)
		if !dstField.IsValid() || !dstField.CanSet() {
			continue
		}

		srcFieldVal := srcVal.Field(i)
		transformTag := srcField.Tag.Get("transform")
		parts := strings.Split(transformTag, ",")
		directive := strings.TrimSpace(parts[0])
		optional := false
		for _, p := range parts[1:] {
			if strings.TrimSpace(p) == "optional" {
				optional = true
			}
		}

		switch directive {
		case "str2objectid":
			str, ok := srcFieldVal.Interface().(string)
			if !ok {
				continue
			}
			if str == "" {
				if optional {
					continue
				}
				return common.NewError(
					common.ErrCodeValidationInput,
					fmt.Sprintf("Field %s không được để trống", srcField.Name),
					common.StatusBadRequest,
					nil,
				)
			}
			if !primitive.IsValidObjectID(str) {
				return common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Field %s: '%s' không đúng định dạng ObjectID", srcField.Name, str),
					common.StatusBadRequest,
					nil,
				)
			}
			if dstField.Type() == reflect.TypeOf(primitive.ObjectID{}) {
				dstField.Set(reflect.ValueOf(utility.String2ObjectID(str)))
			}
		case "str2objectid_array":
			strs, ok := srcFieldVal.Interface().([]string)
			if !ok {
				continue
			}
			ids := make([]primitive.ObjectID, 0, len(strs))
			for _, str := range strs {
				if !primitive.IsValidObjectID(str) {
					return common.NewError(
						common.ErrCodeValidationFormat,
						fmt.Sprintf("Field %s: '%s' không đúng định dạng ObjectID", srcField.Name, str),
						common.StatusBadRequest,
						nil,
					)
				}
				ids = append(ids, utility.String2ObjectID(str))
			}
			if dstField.Type() == reflect.TypeOf([]primitive.ObjectID{}) {
				dstField.Set(reflect.ValueOf(ids))
			}
		default:
			// Copy trực tiếp khi kiểu tương thích
			if srcFieldVal.Type().AssignableTo(dstField.Type()) {
				dstField.Set(srcFieldVal)
			} else if srcFieldVal.Type().ConvertibleTo(dstField.Type()) {
				dstField.Set(srcFieldVal.Convert(dstField.Type()))
			}
		}
	}
	return nil
}

// ProcessFilter parse và chuẩn hóa filter từ query string.
// Chuỗi hex 24 ký tự ở field _id (hoặc field có hậu tố Id) được chuyển thành ObjectID.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ProcessFilter(c fiber.Ctx) (map[string]interface{}, error) {
	var filter map[string]interface{}
	filterStr := c.Query("filter", "{}")
	if err := json.Unmarshal([]byte(filterStr), &filter); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Filter phải là JSON hợp lệ. Giá trị nhận được: %s", filterStr),
			common.StatusBadRequest,
			err,
		)
	}
	if err := h.validateFilter(filter); err != nil {
		return nil, err
	}
	return normalizeFilter(filter), nil
}

// validateFilter kiểm tra filter theo FilterOptions: field bị cấm, operator không
// được phép, số field vượt giới hạn.
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateFilter(filter map[string]interface{}) error {
	opts := h.filterOptions
	if opts.MaxFields > 0 && len(filter) > opts.MaxFields {
		return common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Filter không được vượt quá %d field", opts.MaxFields),
			common.StatusBadRequest,
			nil,
		)
	}
	allowed := make(map[string]bool, len(opts.AllowedOperators))
	for _, op := range opts.AllowedOperators {
		allowed[op] = true
	}
	for k, v := range filter {
		for _, denied := range opts.DeniedFields {
			if k == denied {
				return common.NewError(
					common.ErrCodeValidationInput,
					fmt.Sprintf("Không được phép filter theo field '%s'", k),
					common.StatusBadRequest,
					nil,
				)
			}
		}
		// Kiểm tra operator bên trong giá trị filter (ví dụ {"views": {"$gte": 100}})
		if sub, ok := v.(map[string]interface{}); ok && len(opts.AllowedOperators) > 0 {
			for op := range sub {
				if strings.HasPrefix(op, "$") && !allowed[op] {
					return common.NewError(
						common.ErrCodeValidationInput,
						fmt.Sprintf("Operator '%s' không được phép trong filter", op),
						common.StatusBadRequest,
						nil,
					)
				}
			}
		}
	}
	return nil
}

// normalizeFilter chuyển các giá trị chuỗi ObjectID hex thành primitive.ObjectID
// cho các field định danh (_id, owner, video, comment, tweet, channel, subscriber).
func normalizeFilter(filter map[string]interface{}) map[string]interface{} {
	idFields := map[string]bool{
		"_id": true, "owner": true, "video": true, "comment": true,
		"tweet": true, "channel": true, "subscriber": true, "likedBy": true,
	}
	for k, v := range filter {
		if !idFields[k] {
			continue
		}
		if str, ok := v.(string); ok && primitive.IsValidObjectID(str) {
			filter[k] = utility.String2ObjectID(str)
		}
	}
	return filter
}

// processMongoOptions parse options từ query string (projection, sort, limit, skip).
func (h *BaseHandler[T, CreateInput, UpdateInput]) processMongoOptions(c fiber.Ctx, findOne bool) (interface{}, error) {
	var raw struct {
		Projection map[string]interface{} `json:"projection"`
		Sort       map[string]interface{} `json:"sort"`
		Limit      *int64                 `json:"limit"`
		Skip       *int64                 `json:"skip"`
	}
	optionsStr := c.Query("options", "{}")
	if err := json.Unmarshal([]byte(optionsStr), &raw); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Options phải là JSON hợp lệ. Giá trị nhận được: %s", optionsStr),
			common.StatusBadRequest,
			err,
		)
	}

	if findOne {
		opts := mongoopts.FindOne()
		if raw.Projection != nil {
			opts.SetProjection(raw.Projection)
		}
		if raw.Sort != nil {
			opts.SetSort(mapToSortDoc(raw.Sort))
		}
		return opts, nil
	}

	opts := mongoopts.Find()
	if raw.Projection != nil {
		opts.SetProjection(raw.Projection)
	}
	if raw.Sort != nil {
		opts.SetSort(mapToSortDoc(raw.Sort))
	}
	if raw.Limit != nil {
		opts.SetLimit(*raw.Limit)
	}
	if raw.Skip != nil {
		opts.SetSkip(*raw.Skip)
	}
	return opts, nil
}

// mapToSortDoc chuyển map sort JSON (giá trị float64 sau unmarshal) thành bson.D.
func mapToSortDoc(sort map[string]interface{}) bson.D {
	doc := bson.D{}
	for k, v := range sort {
		order := 1
		if f, ok := v.(float64); ok && f < 0 {
			order = -1
		}
		doc = append(doc, bson.E{Key: k, Value: order})
	}
	return doc
}

// applyOwnerFilter thêm điều kiện owner = user hiện tại vào filter
// khi handler có khai báo OwnerField. Dùng cho các route thao tác trên dữ liệu cá nhân.
func (h *BaseHandler[T, CreateInput, UpdateInput]) applyOwnerFilter(c fiber.Ctx, filter map[string]interface{}) map[string]interface{} {
	if h.OwnerField == "" {
		return filter
	}
	userID := GetUserID(c)
	if userID.IsZero() {
		return filter
	}
	if filter == nil {
		filter = make(map[string]interface{})
	}
	filter[h.OwnerField] = userID
	return filter
}

// SetOwnerID gán user hiện tại vào field Owner của model (nếu model có field này).
func (h *BaseHandler[T, CreateInput, UpdateInput]) SetOwnerID(model interface{}, userID primitive.ObjectID) {
	if model == nil {
		return
	}
	val := reflect.ValueOf(model)
	if val.Kind() != reflect.Ptr {
		return
	}
	val = val.Elem()
	if val.Kind() != reflect.Struct {
		return
	}
	f := val.FieldByName("Owner")
	if !f.IsValid() || !f.CanSet() {
		return
	}
	if f.Type() == reflect.TypeOf(primitive.ObjectID{}) {
		f.Set(reflect.ValueOf(userID))
	}
}

// ValidateOwnership kiểm tra document thuộc về user hiện tại trước khi sửa/xóa.
// Bỏ qua khi handler không khai báo OwnerField.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ValidateOwnership(c fiber.Ctx, id string) error {
	if h.OwnerField == "" {
		return nil
	}
	userID, err := RequireUserID(c)
	if err != nil {
		return err
	}
	exists, err := h.BaseService.DocumentExists(c.Context(), bson.M{
		"_id":        utility.String2ObjectID(id),
		h.OwnerField: userID,
	})
	if err != nil {
		return err
	}
	if !exists {
		return common.ErrForbidden
	}
	return nil
}
