package manifest

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/outlet/internal/errors"
)

// S3Scheme prefixes manifest sources stored in S3.
const S3Scheme = "s3://"

// GetObjectAPI is the subset of the S3 client used to fetch manifests.
// *s3.Client satisfies it.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// LoadFile reads a manifest from disk. The format follows the extension.
func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E202").
				WithDetail("Manifest not found: " + path).
				Wrap(err)
		}
		return nil, errors.New("E202").WithDetail("Failed to open manifest: " + err.Error()).Wrap(err)
	}
	defer f.Close()

	m, err := Decode(f, DetectFormat(path))
	if err != nil {
		oe := errors.FromError(err, "E200")
		oe.Detail = path + ": " + oe.Detail
		return nil, oe
	}
	return m, nil
}

// ParseS3URI splits "s3://bucket/key" into its bucket and key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, S3Scheme)
	if !ok {
		return "", "", fmt.Errorf("not an s3 uri: %q", uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 uri needs a bucket and a key: %q", uri)
	}
	return bucket, key, nil
}

// LoadS3 fetches a manifest object from S3. The format follows the key's
// extension.
func LoadS3(ctx context.Context, client GetObjectAPI, bucket, key string) (*Manifest, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.New("E202").
			WithDetail(fmt.Sprintf("Failed to fetch s3://%s/%s", bucket, key)).
			WithSuggestion("Check the bucket name, key, region and credentials").
			Wrap(err)
	}
	defer out.Body.Close()

	return Decode(out.Body, DetectFormat(key))
}

// Load reads a manifest from a file path or an s3:// URI. client may be nil
// when source is a local file.
func Load(ctx context.Context, source string, client GetObjectAPI) (*Manifest, error) {
	if !strings.HasPrefix(source, S3Scheme) {
		return LoadFile(source)
	}
	bucket, key, err := ParseS3URI(source)
	if err != nil {
		return nil, errors.New("E202").WithDetail(err.Error())
	}
	if client == nil {
		return nil, errors.New("E202").WithDetail("no S3 client configured for " + source)
	}
	return LoadS3(ctx, client, bucket, key)
}

// S3Options configures NewS3Client.
type S3Options struct {
	Region string

	// Endpoint points at an S3 compatible store. Empty uses AWS.
	Endpoint string

	// PathStyle addresses buckets as path segments instead of subdomains.
	PathStyle bool
}

// NewS3Client builds an S3 client from the default AWS configuration chain
// (environment, shared config and credentials files, SSO, instance roles).
// Region, when set, overrides the configured one.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.New("E202").
			WithDetail("Failed to load AWS configuration").
			WithSuggestion("Check AWS_PROFILE and the shared config files").
			Wrap(err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.PathStyle
	}), nil
}
