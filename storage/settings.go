/*
Copyright (C) 2024  Carl-Philip Hänsch

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
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/dc0d/onexit"
	"github.com/docker/go-units"
	"github.com/launix-de/tinylisp/scm"
)

// S3Settings configures access to s3:// program sources.
type S3Settings struct {
	AccessKeyID     string `toml:"access-key-id"`     // AWS or S3-compatible access key
	SecretAccessKey string `toml:"secret-access-key"` // AWS or S3-compatible secret key
	Region          string `toml:"region"`            // AWS region (e.g., "us-east-1")
	Endpoint        string `toml:"endpoint"`          // Custom endpoint for S3-compatible storage (MinIO, etc.)
	ForcePathStyle  bool   `toml:"force-path-style"`  // Use path-style URLs (required for MinIO)
}

type SettingsT struct {
	StackSize   int        `toml:"stack-size"`
	TokenSize   int        `toml:"token-size"`
	MaxSource   string     `toml:"max-source"` // e.g. "1MiB"
	Trace       string     `toml:"trace"`      // Chrome trace output, empty = off
	Verbosity   int        `toml:"verbosity"`
	HistoryFile string     `toml:"history-file"`
	Listen      string     `toml:"listen"` // websocket console address
	S3          S3Settings `toml:"s3"`
}

var Settings SettingsT = DefaultSettings()

func DefaultSettings() SettingsT {
	return SettingsT{
		StackSize:   scm.DefaultStackSize,
		TokenSize:   scm.DefaultTokenSize,
		MaxSource:   "1MiB",
		HistoryFile: ".tinylisp-history.tmp",
	}
}

// LoadSettings reads a TOML file into Settings; keys missing in the file
// keep their current value.
func LoadSettings(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	s := Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parse error in %s: %w", path, err)
	}
	if s.MaxSource != "" {
		if _, err := units.RAMInBytes(s.MaxSource); err != nil {
			return fmt.Errorf("%s: max-source: %w", path, err)
		}
	}
	Settings = s
	log.Debugf("settings loaded from %s", path)
	return nil
}

// MaxSourceBytes is the size limit for program sources; 0 means unlimited.
func (s SettingsT) MaxSourceBytes() int64 {
	if s.MaxSource == "" {
		return 0
	}
	n, err := units.RAMInBytes(s.MaxSource)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// call this after you filled Settings; the returned config is the template
// for every interpreter of this process
func InitSettings() (scm.Config, error) {
	config := scm.DefaultConfig()
	config.StackSize = Settings.StackSize
	config.TokenSize = Settings.TokenSize
	if Settings.Trace != "" {
		trace, err := scm.CreateTrace(Settings.Trace)
		if err != nil {
			return config, err
		}
		config.Trace = trace
		onexit.Register(func() { trace.Close() }) // close trace file on exit
		log.Infof("writing trace to %s", Settings.Trace)
	}
	return config, nil
}
