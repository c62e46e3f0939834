// Package images talks to the external S3-compatible image host. Images are
// addressed by an opaque public id (the object key); losing track of one
// leaks storage on the host, which is why deletions that fail are handed to
// the cleanup queue instead of being forgotten.
package images

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// Store uploads and removes images on an S3-compatible host.
type Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// New builds a Store against the given endpoint. baseURL is the public
// prefix under which uploaded objects are reachable.
func New(ctx context.Context, endpoint, region, accessKey, secretKey, bucket, baseURL string) (*Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = true
	})

	return &Store{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

func newObjectKey() string {
	d := time.Now()
	return fmt.Sprintf("images/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// Upload stores the image and returns its public URL and public id.
func (s *Store) Upload(ctx context.Context, data []byte, contentType string) (string, string, error) {
	key := newObjectKey()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", err
	}

	return fmt.Sprintf("%s/%s", s.baseURL, key), key, nil
}

// Remove deletes a single image by public id.
func (s *Store) Remove(ctx context.Context, publicID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(publicID),
	})
	return err
}

// RemoveMany deletes a batch of images in one request.
func (s *Store) RemoveMany(ctx context.Context, publicIDs []string) error {
	if len(publicIDs) == 0 {
		return nil
	}

	objects := make([]types.ObjectIdentifier, 0, len(publicIDs))
	for _, id := range publicIDs {
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(id)})
	}

	_, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &types.Delete{
			Objects: objects,
			Quiet:   aws.Bool(true),
		},
	})
	return err
}
