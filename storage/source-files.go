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
	"os"
	"strings"

	"github.com/docker/go-units"
)

// FileSource reads programs from the local file system.
type FileSource struct {
	Path string
}

func (f FileSource) Name() string {
	return f.Path
}

func (f FileSource) Read(ctx context.Context, limit int64) ([]byte, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	data, err := readAll(f.Path, file, limit)
	if err != nil {
		return nil, err
	}
	log.Debugf("loaded %s (%s)", f.Path, units.HumanSize(float64(len(data))))
	return data, nil
}

// Source is a place a program can be loaded from.
type Source interface {
	Name() string
	Read(ctx context.Context, limit int64) ([]byte, error)
}

// OpenSource picks the source for a location: s3://bucket/key or a path.
func OpenSource(location string) Source {
	if strings.HasPrefix(location, "s3://") {
		bucket, key, _ := strings.Cut(strings.TrimPrefix(location, "s3://"), "/")
		return NewS3Source(Settings.S3, bucket, key)
	}
	return FileSource{location}
}

// LoadSource reads the program at location, limited by Settings.MaxSource.
func LoadSource(ctx context.Context, location string) ([]byte, error) {
	return OpenSource(location).Read(ctx, Settings.MaxSourceBytes())
}
