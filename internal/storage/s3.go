package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/gemledger/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const defaultPresignExpiry = 15 * time.Minute

// ErrDisabled 对象存储未启用
var ErrDisabled = errors.New("storage: s3 is disabled")

// ErrContentType 仅允许图片
var ErrContentType = errors.New("storage: unsupported content type")

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// PresignedUpload 浏览器直传所需信息
type PresignedUpload struct {
	UploadURL   string            `json:"upload_url"`
	Method      string            `json:"method"`
	Headers     map[string]string `json:"headers"`
	ObjectKey   string            `json:"object_key"`
	PublicURL   string            `json:"public_url"`
	ExpiresAt   time.Time         `json:"expires_at"`
	ContentType string            `json:"content_type"`
}

// PhotoPresigner 生成石头照片上传地址
type PhotoPresigner interface {
	PresignPhoto(ctx context.Context, sku, contentType string) (*PresignedUpload, error)
}

// S3Presigner 兼容 AWS S3 / MinIO / R2
type S3Presigner struct {
	presign *s3.PresignClient
	cfg     config.S3Config
	expiry  time.Duration
}

// NewS3Presigner 按配置创建，未启用时返回 ErrDisabled
func NewS3Presigner(ctx context.Context, cfg config.S3Config) (*S3Presigner, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("storage: s3 bucket is not configured")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*awscfg.LoadOptions) error{awscfg.WithRegion(region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	var clientOpts []func(*s3.Options)
	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}
	client := s3.NewFromConfig(awsCfg, clientOpts...)

	expiry := defaultPresignExpiry
	if cfg.PresignExpireSeconds > 0 {
		expiry = time.Duration(cfg.PresignExpireSeconds) * time.Second
	}
	cfg.Region = region
	return &S3Presigner{
		presign: s3.NewPresignClient(client),
		cfg:     cfg,
		expiry:  expiry,
	}, nil
}

// PresignPhoto 生成 PUT 直传地址，对象键带随机后缀避免覆盖旧图
func (p *S3Presigner) PresignPhoto(ctx context.Context, sku, contentType string) (*PresignedUpload, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, ErrContentType
	}
	key := PhotoObjectKey(p.cfg.Prefix, sku, ext)

	req, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(o *s3.PresignOptions) {
		o.Expires = p.expiry
	})
	if err != nil {
		return nil, fmt.Errorf("storage: presign put object: %w", err)
	}

	headers := make(map[string]string, len(req.SignedHeader))
	for k, v := range req.SignedHeader {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	return &PresignedUpload{
		UploadURL:   req.URL,
		Method:      req.Method,
		Headers:     headers,
		ObjectKey:   key,
		PublicURL:   p.PublicURL(key),
		ExpiresAt:   time.Now().Add(p.expiry),
		ContentType: contentType,
	}, nil
}

// PublicURL 对象的公开访问地址：优先 CDN，其次自定义 endpoint，最后 AWS 默认域名
func (p *S3Presigner) PublicURL(key string) string {
	if base := strings.TrimRight(strings.TrimSpace(p.cfg.PublicBaseURL), "/"); base != "" {
		return base + "/" + key
	}
	if endpoint := strings.TrimRight(strings.TrimSpace(p.cfg.Endpoint), "/"); endpoint != "" {
		return endpoint + "/" + p.cfg.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.cfg.Bucket, p.cfg.Region, key)
}

// PhotoObjectKey 生成 <prefix>/stones/<SKU>/<uuid><ext>
func PhotoObjectKey(prefix, sku, ext string) string {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	sku = strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(sku)
	return path.Join(strings.Trim(strings.TrimSpace(prefix), "/"), "stones", sku, uuid.NewString()+ext)
}
