package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

const defaultParameterPath = "/notes/prod/"

// ParameterStore is the subset of the SSM client used to load settings.
type ParameterStore interface {
	ssm.GetParametersByPathAPIClient
}

// NewParameterStore builds an SSM client from the default AWS credential chain.
func NewParameterStore(ctx context.Context) (ParameterStore, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region := os.Getenv("AWS_REGION"); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("config: unable to load AWS SDK config: %w", err)
	}
	return ssm.NewFromConfig(cfg), nil
}

// ParameterPath is the SSM path whose parameters are exported, always
// ending with a slash.
func ParameterPath() string {
	path := getEnv("SSM_PARAMETER_PATH", defaultParameterPath)
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path
}

// ExportParameters sets one environment variable per parameter found under
// prefix, named after the parameter with the prefix stripped.
func ExportParameters(store ParameterStore, prefix string) (int, error) {
	ctx := context.Background()
	pages := ssm.NewGetParametersByPathPaginator(store, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})

	count := 0
	for pages.HasMorePages() {
		out, err := pages.NextPage(ctx)
		if err != nil {
			return count, fmt.Errorf("config: unable to load prod environment: %w", err)
		}

		for _, param := range out.Parameters {
			name := aws.ToString(param.Name)
			key := strings.TrimPrefix(name, prefix)
			if key == "" || key == name {
				continue
			}

			if err := os.Setenv(key, aws.ToString(param.Value)); err != nil {
				return count, fmt.Errorf("config: unable to set environment variable %s: %w", key, err)
			}
			count++
		}
	}
	return count, nil
}
