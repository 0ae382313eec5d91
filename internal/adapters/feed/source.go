package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Loader resolves a feed source string to decoded JSON.
//
//	/path/to/file.json      local file
//	http(s)://host/feed     fetched through Client
//	s3://bucket/key         fetched from S3 (or an S3-compatible endpoint)
type Loader struct {
	HTTP *Client
	S3   S3Config
}

func (l *Loader) Load(ctx context.Context, src string, out any) error {
	switch {
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		hc := l.HTTP
		if hc == nil {
			hc = NewClient("", 5)
		}
		return hc.Fetch(ctx, src, out)
	case strings.HasPrefix(src, "s3://"):
		bucket, key, ok := strings.Cut(strings.TrimPrefix(src, "s3://"), "/")
		if !ok || bucket == "" || key == "" {
			return fmt.Errorf("s3 source must look like s3://bucket/key, got %q", src)
		}
		return loadS3(ctx, l.S3, bucket, key, out)
	case src == "":
		return fmt.Errorf("empty feed source")
	}
	b, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read feed file: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode feed file: %w", err)
	}
	return nil
}
