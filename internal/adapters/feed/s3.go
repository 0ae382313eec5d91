package feed

import (
	"context"
	"encoding/json"
	"fmt"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config selects the S3 endpoint. Credentials come from the default AWS chain.
type S3Config struct {
	Region    string
	Endpoint  string // optional; enables S3-compatible stores such as MinIO
	PathStyle bool
}

func newS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

func loadS3(ctx context.Context, cfg S3Config, bucket, key string, out any) error {
	client, err := newS3Client(ctx, cfg)
	if err != nil {
		return fmt.Errorf("s3 config: %w", err)
	}
	obj, err := client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err != nil {
		return fmt.Errorf("s3 get %s/%s: %w", bucket, key, err)
	}
	defer obj.Body.Close()
	if err := json.NewDecoder(obj.Body).Decode(out); err != nil {
		return fmt.Errorf("decode s3 feed: %w", err)
	}
	return nil
}
