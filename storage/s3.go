package storage

import (
	"bytes"
	"context"
	"sort"

	awsbase "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mjcet-acm/site-backend/config"
)

// NewS3Client builds an S3 client for the backup bucket. A custom endpoint
// supports S3-compatible providers.
func NewS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.BackupS3Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.BackupS3AccessKey, cfg.BackupS3SecretKey, ""),
		),
	}
	if cfg.BackupS3Endpoint != "" {
		resolver := awsbase.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (awsbase.Endpoint, error) {
				return awsbase.Endpoint{
					URL:               cfg.BackupS3Endpoint,
					SigningRegion:     cfg.BackupS3Region,
					HostnameImmutable: true,
				}, nil
			},
		)
		opts = append(opts, awsconfig.WithEndpointResolverWithOptions(resolver))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg), nil
}

// Upload writes one object to the backup bucket.
func Upload(ctx context.Context, client *s3.Client, bucket, key string, data []byte) error {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: awsbase.String(bucket),
		Key:    awsbase.String(key),
		Body:   bytes.NewReader(data),
	})
	return err
}

// Rotate deletes everything but the newest keep objects in the bucket.
func Rotate(ctx context.Context, client *s3.Client, bucket string, keep int) error {
	output, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: awsbase.String(bucket),
	})
	if err != nil {
		return err
	}

	if len(output.Contents) <= keep {
		return nil
	}

	sort.Slice(output.Contents, func(i, j int) bool {
		return output.Contents[i].LastModified.After(*output.Contents[j].LastModified)
	})

	for _, obj := range output.Contents[keep:] {
		_, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: awsbase.String(bucket),
			Key:    obj.Key,
		})
		if err != nil {
			return err
		}
	}

	return nil
}
