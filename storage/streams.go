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
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/docker/go-units"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// Decompress wraps r according to the file extension of name: .gz, .xz and
// .lz4 are unpacked, everything else is passed through.
func Decompress(name string, r io.Reader) (io.Reader, error) {
	switch {
	case strings.HasSuffix(name, ".gz"):
		result, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return result, nil
	case strings.HasSuffix(name, ".xz"):
		result, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return result, nil
	case strings.HasSuffix(name, ".lz4"):
		return lz4.NewReader(r), nil
	}
	return r, nil
}

// SourceTooLargeError is returned when a program exceeds Settings.MaxSource.
type SourceTooLargeError struct {
	Name  string
	Limit int64
}

func (e SourceTooLargeError) Error() string {
	return fmt.Sprintf("%s is larger than %s", e.Name, units.BytesSize(float64(e.Limit)))
}

// readAll reads the uncompressed program; limit 0 means unlimited.
func readAll(name string, r io.Reader, limit int64) ([]byte, error) {
	r, err := Decompress(name, r)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if int64(len(data)) > limit {
		return nil, SourceTooLargeError{name, limit}
	}
	return data, nil
}
