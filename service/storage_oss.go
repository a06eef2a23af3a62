package service

import (
	"Moments/config"
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
)

type OssStorage struct {
	Client     *oss.Client
	BucketName string
	Prefix     string
	Domain     string
}

func NewOssStorage(client *oss.Client, cfg *config.OssConfig) *OssStorage {
	return &OssStorage{
		Client:     client,
		BucketName: cfg.Bucket,
		Prefix:     cfg.Prefix,
		Domain:     strings.TrimRight(cfg.Domain, "/"),
	}
}

func (s *OssStorage) objectKey(key string) string {
	return s.Prefix + key
}

func (s *OssStorage) Save(ctx context.Context, key string, data []byte) error {
	req := &oss.PutObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(s.objectKey(key)),
		Body:   bytes.NewReader(data),
	}
	if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
		req.ContentType = oss.Ptr(ct)
	}
	_, err := s.Client.PutObject(ctx, req)
	return err
}

func (s *OssStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.Client.GetObject(ctx, &oss.GetObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(s.objectKey(key)),
	})
	if err != nil {
		var serr *oss.ServiceError
		if errors.As(err, &serr) && serr.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out.Body, nil
}

func (s *OssStorage) Delete(ctx context.Context, key string) error {
	_, err := s.Client.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(s.objectKey(key)),
	})
	return err
}

func (s *OssStorage) URL(key string) string {
	return s.Domain + "/" + s.objectKey(key)
}
