package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config configures the S3-backed dataset store. AccessKeyID and
// SecretAccessKey are optional; when empty the default AWS credential
// chain is used.
type S3Config struct {
	Bucket          string
	Region          string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
}

// S3 stores datasets as objects under <prefix>/<id>. The original file
// name travels in object metadata, so resolution is a direct key lookup
// rather than a listing scan.
type S3 struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3 builds an S3 dataset store, loading AWS configuration eagerly so
// credential problems surface at startup.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &S3{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

func (s *S3) key(id string) string {
	return path.Join(s.prefix, id)
}

func (s *S3) Save(ctx context.Context, fileName string, r io.Reader) (Dataset, error) {
	id := newID()

	ext := path.Ext(fileName)
	if ext == "" {
		ext = ".csv"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(id)),
		Body:        r,
		ContentType: aws.String("text/csv"),
		Metadata: map[string]string{
			"filename":  fileName,
			"extension": ext,
		},
	})
	if err != nil {
		return Dataset{}, fmt.Errorf("upload dataset to S3: %w", err)
	}

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		return Dataset{}, fmt.Errorf("stat uploaded dataset: %w", err)
	}

	return Dataset{
		ID:         id,
		FileName:   fileName,
		SizeBytes:  aws.ToInt64(head.ContentLength),
		UploadedAt: aws.ToTime(head.LastModified),
	}, nil
}

func (s *S3) Resolve(ctx context.Context, id string) (Handle, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		if isMissingObject(err) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("stat dataset %q: %w", id, err)
	}

	return &s3Handle{client: s.client, bucket: s.bucket, key: s.key(id)}, nil
}

func (s *S3) List(ctx context.Context) ([]Dataset, error) {
	var out []Dataset

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix + "/"),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list datasets: %w", err)
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			id := strings.TrimPrefix(key, s.prefix+"/")
			if id == "" || strings.Contains(id, "/") {
				continue
			}

			d := Dataset{
				ID:         id,
				SizeBytes:  aws.ToInt64(obj.Size),
				UploadedAt: aws.ToTime(obj.LastModified),
			}

			// Original file name lives in object metadata.
			head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
				Bucket: aws.String(s.bucket),
				Key:    aws.String(key),
			})
			if err == nil {
				d.FileName = head.Metadata["filename"]
			}

			out = append(out, d)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].UploadedAt.Before(out[j].UploadedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

type s3Handle struct {
	client *s3.Client
	bucket string
	key    string
}

func (h *s3Handle) Open(ctx context.Context) (io.ReadCloser, error) {
	obj, err := h.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(h.key),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch dataset object: %w", err)
	}
	return obj.Body, nil
}

func isMissingObject(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noSuchKey *types.NoSuchKey
	return errors.As(err, &noSuchKey)
}
