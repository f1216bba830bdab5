package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/dreschagin/model-asset-server/internal/application/port"
)

type Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	KeyPrefix       string
}

// objectAPI is the subset of *s3.Client the storage needs.
type objectAPI interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// AssetStorage serves assets from an S3-compatible bucket. Folders map to
// key prefixes: <KeyPrefix>/<folder>/<name>.
type AssetStorage struct {
	client objectAPI
	bucket string
	prefix string
}

func NewAssetStorage(ctx context.Context, cfg Config) (*AssetStorage, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	if strings.TrimSpace(cfg.Region) == "" {
		cfg.Region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	// Without static keys the default chain (env, shared config, IMDS) applies.
	if strings.TrimSpace(cfg.AccessKeyID) != "" && strings.TrimSpace(cfg.SecretAccessKey) != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws config: %w", err)
	}

	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	client := s3.NewFromConfig(awsCfg, func(options *s3.Options) {
		if endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
		}
		options.UsePathStyle = cfg.UsePathStyle
	})

	return newAssetStorage(client, cfg.Bucket, cfg.KeyPrefix), nil
}

func newAssetStorage(client objectAPI, bucket, prefix string) *AssetStorage {
	return &AssetStorage{
		client: client,
		bucket: strings.TrimSpace(bucket),
		prefix: strings.Trim(strings.TrimSpace(prefix), "/"),
	}
}

// ListFolder returns object names and sub-prefixes directly under the folder
// in the order the bucket lists them. A folder with no keys does not exist.
func (s *AssetStorage) ListFolder(ctx context.Context, folder string) ([]string, error) {
	prefix := s.key(folder) + "/"

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	names := make([]string, 0)
	found := false
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects failed: %w", err)
		}

		for _, object := range page.Contents {
			found = true
			name := strings.TrimPrefix(aws.ToString(object.Key), prefix)
			if name == "" {
				// "folder/" marker object
				continue
			}
			names = append(names, name)
		}
		for _, common := range page.CommonPrefixes {
			found = true
			name := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(common.Prefix), prefix), "/")
			if name != "" {
				names = append(names, name)
			}
		}
	}

	if !found {
		return nil, fmt.Errorf("%w: prefix %s", port.ErrAssetNotFound, prefix)
	}

	return names, nil
}

func (s *AssetStorage) ReadAsset(ctx context.Context, elems ...string) (*port.Asset, error) {
	if len(elems) == 0 {
		return nil, fmt.Errorf("object key is required")
	}
	key := s.key(elems...)

	output, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("get object %s: %w: %w", key, port.ErrAssetNotFound, err)
		}
		return nil, fmt.Errorf("get object %s failed: %w", key, err)
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %s failed: %w", key, err)
	}

	return &port.Asset{
		Name: path.Base(key),
		Size: int64(len(data)),
		Data: data,
	}, nil
}

func (s *AssetStorage) key(elems ...string) string {
	if s.prefix == "" {
		return path.Join(elems...)
	}
	return path.Join(append([]string{s.prefix}, elems...)...)
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return true
		}
	}
	return false
}
