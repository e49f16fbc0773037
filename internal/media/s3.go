package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"vidtube/config"
	"vidtube/internal/common"
	"vidtube/internal/logger"
)

// S3Store lưu media trên dịch vụ tương thích S3 (AWS S3, MinIO, R2).
type S3Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	baseURL  string
}

// NewS3Store khởi tạo store trỏ đến object storage được cấu hình.
func NewS3Store(ctx context.Context, cfg *config.Configuration) (*S3Store, error) {
	if strings.TrimSpace(cfg.S3_Bucket) == "" {
		return nil, fmt.Errorf("s3 store: thiếu tên bucket")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3_Region),
	}

	if cfg.S3_AccessKey != "" && cfg.S3_SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3_AccessKey, cfg.S3_SecretKey, ""),
		))
	}

	if strings.TrimSpace(cfg.S3_Endpoint) != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == s3.ServiceID {
				return aws.Endpoint{
					URL:           cfg.S3_Endpoint,
					SigningRegion: cfg.S3_Region,
				}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, awsconfig.WithEndpointResolverWithOptions(resolver))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3 store: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 5 * 1024 * 1024
		u.LeavePartsOnError = false
	})

	baseURL := strings.TrimSuffix(cfg.S3_PublicBase, "/")
	if baseURL == "" && cfg.S3_Endpoint != "" {
		baseURL = fmt.Sprintf("%s/%s", strings.TrimSuffix(cfg.S3_Endpoint, "/"), cfg.S3_Bucket)
	}

	logger.GetAppLogger().WithField("bucket", cfg.S3_Bucket).Info("Đã khởi tạo S3 media store")

	return &S3Store{
		client:   client,
		uploader: uploader,
		bucket:   cfg.S3_Bucket,
		baseURL:  baseURL,
	}, nil
}

// Upload đẩy nội dung lên bucket và trả về URL public của asset.
func (s *S3Store) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return "", common.ErrRequiredField
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   manager.ReadSeekCloser(r),
		ACL:    s3types.ObjectCannedACLPublicRead,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.uploader.Upload(ctx, input); err != nil {
		logger.GetAppLogger().WithError(err).WithField("key", key).Error("Upload media lên S3 thất bại")
		return "", common.NewError(common.ErrCodeDependency, "Upload media thất bại", common.StatusServiceUnavailable, err)
	}

	if s.baseURL == "" {
		return key, nil
	}

	return fmt.Sprintf("%s/%s", s.baseURL, key), nil
}

// Delete xóa asset khỏi bucket. S3 DeleteObject là idempotent nên
// xóa key không tồn tại vẫn trả về thành công.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.GetAppLogger().WithError(err).WithField("key", key).Error("Xóa media trên S3 thất bại")
		return common.NewError(common.ErrCodeDependency, "Xóa media thất bại", common.StatusServiceUnavailable, err)
	}

	return nil
}
