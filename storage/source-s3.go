/*
Copyright (C) 2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/docker/go-units"
)

// S3Source reads a program from an object in an S3 bucket.
type S3Source struct {
	settings S3Settings
	Bucket   string
	Key      string

	mu     sync.Mutex
	client *s3.Client
}

func NewS3Source(settings S3Settings, bucket string, key string) *S3Source {
	return &S3Source{settings: settings, Bucket: bucket, Key: key}
}

func (s *S3Source) Name() string {
	return "s3://" + s.Bucket + "/" + s.Key
}

func (s *S3Source) ensureOpen(ctx context.Context) (*s3.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, s.loadOptions()...)
	if err != nil {
		return nil, fmt.Errorf("%s: aws config: %w", s.Name(), err)
	}
	s.client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		// MinIO and other S3 compatible servers
		if s.settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.settings.Endpoint)
		}
		o.UsePathStyle = s.settings.ForcePathStyle
	})
	return s.client, nil
}

// loadOptions lets region and keys from the settings override the default
// AWS chain (environment, shared config, instance role).
func (s *S3Source) loadOptions() []func(*config.LoadOptions) error {
	var opts []func(*config.LoadOptions) error
	if region := s.settings.Region; region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if id, secret := s.settings.AccessKeyID, s.settings.SecretAccessKey; id != "" && secret != "" {
		provider := credentials.NewStaticCredentialsProvider(id, secret, "")
		opts = append(opts, config.WithCredentialsProvider(provider))
	}
	return opts
}

func (s *S3Source) Read(ctx context.Context, limit int64) ([]byte, error) {
	if s.Bucket == "" || s.Key == "" {
		return nil, fmt.Errorf("%s: bucket and key required", s.Name())
	}
	client, err := s.ensureOpen(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}
	defer resp.Body.Close()
	data, err := readAll(s.Key, resp.Body, limit)
	if err != nil {
		return nil, err
	}
	log.Debugf("loaded %s (%s)", s.Name(), units.HumanSize(float64(len(data))))
	return data, nil
}
