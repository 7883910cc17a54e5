package services

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func LoadAWSConfig(ctx context.Context, region string) (sdkaws.Config, error) {
	if region == "" {
		region = "us-east-1"
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return cfg, fmt.Errorf("error loading AWS config: %w", err)
	}
	return cfg, nil
}

// NewAuditSinks builds the optional S3 archive and CloudWatch metric. An
// empty bucket or namespace leaves that sink nil.
func NewAuditSinks(ctx context.Context, region, bucket, namespace string) (Archiver, FallbackMetrics, error) {
	if bucket == "" && namespace == "" {
		return nil, nil, nil
	}

	cfg, err := LoadAWSConfig(ctx, region)
	if err != nil {
		return nil, nil, err
	}

	var archiver Archiver
	if bucket != "" {
		archiver = NewS3Archiver(manager.NewUploader(s3.NewFromConfig(cfg)), bucket)
	}
	var metrics FallbackMetrics
	if namespace != "" {
		metrics = NewCloudWatchMetrics(cloudwatch.NewFromConfig(cfg), namespace)
	}
	return archiver, metrics, nil
}
