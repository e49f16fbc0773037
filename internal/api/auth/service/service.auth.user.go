package authsvc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	authdto "vidtube/internal/api/auth/dto"
	basemodels "vidtube/internal/api/base/models"
	basesvc "vidtube/internal/api/base/service"
	models "vidtube/internal/api/auth/models"
	"vidtube/internal/common"
	"vidtube/internal/global"
	"vidtube/internal/media"
)

// UserService là cấu trúc chứa các phương thức liên quan đến người dùng
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
}

// NewUserService tạo mới UserService
func NewUserService() (*UserService, error) {
	userCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}

	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](userCollection),
	}, nil
}

// Register đăng ký tài khoản mới. Username và email không phân biệt hoa thường,
// password được hash bằng bcrypt trước khi lưu.
func (s *UserService) Register(ctx context.Context, input *authdto.UserRegisterInput) (models.User, error) {
	var zero models.User
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Kiểm tra trùng username/email trước để trả lỗi rõ ràng thay vì lỗi index
	exists, err := s.DocumentExists(ctx, bson.M{"$or": []bson.M{
		{"username": username},
		{"email": email},
	}})
	if err != nil {
		return zero, err
	}
	if exists {
		return zero, common.NewError(
			common.ErrCodeValidationInput,
			"Username hoặc email đã được sử dụng",
			common.StatusConflict,
			nil,
		)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return zero, common.NewError(
			common.ErrCodeInternalServer,
			"Lỗi hash mật khẩu",
			common.StatusInternalServerError,
			err,
		)
	}

	user := models.User{
		Username: username,
		Email:    email,
		FullName: input.FullName,
		Password: string(hashed),
	}

	created, err := s.InsertOne(ctx, user)
	if err != nil {
		return zero, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  created.ID.Hex(),
		"username": created.Username,
	}).Info("Register: Đăng ký tài khoản thành công")

	created.Password = ""
	return created, nil
}

// Login đăng nhập bằng username hoặc email. Thành công thì sinh cặp token mới
// và lưu refresh token vào document user (mỗi user một refresh token hiện hành).
func (s *UserService) Login(ctx context.Context, input *authdto.UserLoginInput) (*models.LoginResult, error) {
	if input.Username == "" && input.Email == "" {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			"Cần username hoặc email để đăng nhập",
			common.StatusBadRequest,
			nil,
		)
	}

	filter := bson.M{}
	if input.Username != "" {
		filter["username"] = strings.ToLower(strings.TrimSpace(input.Username))
	} else {
		filter["email"] = strings.ToLower(strings.TrimSpace(input.Email))
	}

	user, err := s.FindOne(ctx, filter, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	tokens, err := CreateTokenPair(&user)
	if err != nil {
		return nil, err
	}

	updated, err := s.UpdateById(ctx, user.ID, &basesvc.UpdateData{
		Set: map[string]interface{}{"refreshToken": tokens.RefreshToken},
	})
	if err != nil {
		return nil, err
	}

	updated.Password = ""
	updated.RefreshToken = ""
	return &models.LoginResult{User: updated, Tokens: *tokens}, nil
}

// RefreshTokens xoay vòng cặp token: validate refresh token, đối chiếu với token
// đang lưu trên user (token cũ bị thu hồi ngay khi cấp cặp mới).
func (s *UserService) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	if refreshToken == "" {
		return nil, common.ErrTokenMissing
	}

	userID, err := ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.FindOneById(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrTokenInvalid
		}
		return nil, err
	}

	// Token gửi lên phải khớp token hiện hành (chống dùng lại token cũ)
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, common.ErrTokenInvalid
	}

	tokens, err := CreateTokenPair(&user)
	if err != nil {
		return nil, err
	}

	_, err = s.UpdateById(ctx, user.ID, &basesvc.UpdateData{
		Set: map[string]interface{}{"refreshToken": tokens.RefreshToken},
	})
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// Logout đăng xuất: xóa refresh token hiện hành khỏi document user.
func (s *UserService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.UpdateById(ctx, userID, &basesvc.UpdateData{
		Unset: map[string]interface{}{"refreshToken": ""},
	})
	if errors.Is(err, common.ErrNotFound) {
		// User đã bị xóa, logout coi như thành công
		return nil
	}
	return err
}

// ChangePassword đổi mật khẩu sau khi xác nhận mật khẩu cũ.
func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, input *authdto.ChangePasswordInput) error {
	user, err := s.FindOneById(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)); err != nil {
		return common.NewError(
			common.ErrCodeAuthCredentials,
			"Mật khẩu cũ không chính xác",
			common.StatusBadRequest,
			nil,
		)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return common.NewError(
			common.ErrCodeInternalServer,
			"Lỗi hash mật khẩu",
			common.StatusInternalServerError,
			err,
		)
	}

	_, err = s.UpdateById(ctx, userID, &basesvc.UpdateData{
		Set: map[string]interface{}{"password": string(hashed)},
	})
	return err
}

// UpdateProfile cập nhật fullName/email của user hiện tại.
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, input *authdto.UpdateProfileInput) (models.User, error) {
	var zero models.User
	set := make(map[string]interface{})
	if input.FullName != "" {
		set["fullName"] = input.FullName
	}
	if input.Email != "" {
		email := strings.ToLower(strings.TrimSpace(input.Email))
		exists, err := s.DocumentExists(ctx, bson.M{
			"email": email,
			"_id":   bson.M{"$ne": userID},
		})
		if err != nil {
			return zero, err
		}
		if exists {
			return zero, common.NewError(
				common.ErrCodeValidationInput,
				"Email đã được sử dụng",
				common.StatusConflict,
				nil,
			)
		}
		set["email"] = email
	}
	if len(set) == 0 {
		return zero, common.ErrRequiredField
	}

	updated, err := s.UpdateById(ctx, userID, &basesvc.UpdateData{Set: set})
	if err != nil {
		return zero, err
	}
	updated.Password = ""
	updated.RefreshToken = ""
	return updated, nil
}

// UpdateAvatar upload avatar mới lên storage, gán vào user và xóa avatar cũ (best effort).
func (s *UserService) UpdateAvatar(ctx context.Context, userID primitive.ObjectID, r io.Reader, filename, contentType string) (models.User, error) {
	return s.updateImageField(ctx, userID, "avatar", "avatars", r, filename, contentType)
}

// UpdateCoverImage upload ảnh bìa mới lên storage, gán vào user và xóa ảnh cũ (best effort).
func (s *UserService) UpdateCoverImage(ctx context.Context, userID primitive.ObjectID, r io.Reader, filename, contentType string) (models.User, error) {
	return s.updateImageField(ctx, userID, "coverImage", "covers", r, filename, contentType)
}

func (s *UserService) updateImageField(ctx context.Context, userID primitive.ObjectID, field, folder string, r io.Reader, filename, contentType string) (models.User, error) {
	var zero models.User
	if global.MediaStore == nil {
		return zero, common.ErrDependencyUnavailable
	}

	user, err := s.FindOneById(ctx, userID)
	if err != nil {
		return zero, err
	}

	key := media.NewAssetKey(folder, filename)
	url, err := global.MediaStore.Upload(ctx, key, r, contentType)
	if err != nil {
		return zero, err
	}

	asset := &basemodels.Asset{AssetID: key, URL: url}
	updated, err := s.UpdateById(ctx, userID, &basesvc.UpdateData{
		Set: map[string]interface{}{field: asset},
	})
	if err != nil {
		return zero, err
	}

	// Xóa file cũ sau khi gán thành công, lỗi chỉ log
	var old *basemodels.Asset
	if field == "avatar" {
		old = user.Avatar
	} else {
		old = user.CoverImage
	}
	if old != nil && old.AssetID != "" {
		if err := global.MediaStore.Delete(ctx, old.AssetID); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":  userID.Hex(),
				"asset_id": old.AssetID,
				"error":    err.Error(),
			}).Warn("updateImageField: Không xóa được file cũ trên storage")
		}
	}

	updated.Password = ""
	updated.RefreshToken = ""
	return updated, nil
}

// GetWatchHistory trả về lịch sử xem của user, join thông tin video và chủ kênh,
// sắp xếp theo thời điểm xem mới nhất, phân trang.
func (s *UserService) GetWatchHistory(ctx context.Context, userID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[bson.M], error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": userID}}},
		{{Key: "$unwind", Value: "$watchHistory"}},
		{{Key: "$sort", Value: bson.D{
			{Key: "watchHistory.watchedAt", Value: -1},
			{Key: "watchHistory.video", Value: 1},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         global.MongoDB_ColNames.Videos,
			"localField":   "watchHistory.video",
			"foreignField": "_id",
			"as":           "video",
			"pipeline": []bson.M{
				{"$lookup": bson.M{
					"from":         global.MongoDB_ColNames.Users,
					"localField":   "owner",
					"foreignField": "_id",
					"as":           "owner",
					"pipeline": []bson.M{
						{"$project": bson.M{"fullName": 1, "username": 1, "avatar": 1}},
					},
				}},
				{"$addFields": bson.M{"owner": bson.M{"$first": "$owner"}}},
			},
		}}},
		{{Key: "$addFields", Value: bson.M{"video": bson.M{"$first": "$video"}}}},
		// Video đã bị xóa thì không còn trong lịch sử trả về
		{{Key: "$match", Value: bson.M{"video": bson.M{"$ne": nil}}}},
		{{Key: "$project", Value: bson.M{
			"_id":       0,
			"video":     1,
			"watchedAt": "$watchHistory.watchedAt",
		}}},
	}

	return basesvc.AggregateWithPagination[bson.M](ctx, s.Collection(), pipeline, page, limit)
}
