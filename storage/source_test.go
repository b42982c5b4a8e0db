package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

const program = "(print (+ 1 2))\n"

func gzipped(t *testing.T, data string) []byte {
	var b bytes.Buffer
	z := gzip.NewWriter(&b)
	z.Write([]byte(data))
	if err := z.Close(); err != nil {
		t.Fatalf("gzip: %v", err)
	}
	return b.Bytes()
}

func xzipped(t *testing.T, data string) []byte {
	var b bytes.Buffer
	z, err := xz.NewWriter(&b)
	if err != nil {
		t.Fatalf("xz: %v", err)
	}
	z.Write([]byte(data))
	if err := z.Close(); err != nil {
		t.Fatalf("xz: %v", err)
	}
	return b.Bytes()
}

func lz4ed(t *testing.T, data string) []byte {
	var b bytes.Buffer
	z := lz4.NewWriter(&b)
	z.Write([]byte(data))
	if err := z.Close(); err != nil {
		t.Fatalf("lz4: %v", err)
	}
	return b.Bytes()
}

func TestLoadSourceDecompresses(t *testing.T) {
	withSettings(t)
	files := map[string][]byte{
		"main.scm":     []byte(program),
		"main.scm.gz":  gzipped(t, program),
		"main.scm.xz":  xzipped(t, program),
		"main.scm.lz4": lz4ed(t, program),
	}
	for name, content := range files {
		data, err := LoadSource(context.Background(), writeFile(t, name, content))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if string(data) != program {
			t.Fatalf("%s: unexpected content %q", name, data)
		}
	}
}

func TestLoadSourceLimit(t *testing.T) {
	withSettings(t)
	Settings.MaxSource = "16B"
	if _, err := LoadSource(context.Background(), writeFile(t, "ok.scm", []byte(program))); err != nil {
		t.Fatalf("source of exactly the limit rejected: %v", err)
	}
	// the limit applies to the uncompressed program
	big := program + program
	_, err := LoadSource(context.Background(), writeFile(t, "big.scm.gz", gzipped(t, big)))
	var tooLarge SourceTooLargeError
	if !errors.As(err, &tooLarge) || tooLarge.Limit != 16 {
		t.Fatalf("expected SourceTooLargeError, got %v", err)
	}
	Settings.MaxSource = ""
	if _, err := LoadSource(context.Background(), writeFile(t, "big.scm", []byte(big))); err != nil {
		t.Fatalf("unlimited source rejected: %v", err)
	}
}

func TestLoadSourceErrors(t *testing.T) {
	withSettings(t)
	if _, err := LoadSource(context.Background(), "/nonexistent/main.scm"); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
	if _, err := LoadSource(context.Background(), writeFile(t, "broken.scm.gz", []byte(program))); err == nil {
		t.Fatalf("expected an error for a broken gzip file")
	}
}

func TestOpenSource(t *testing.T) {
	withSettings(t)
	Settings.S3.Region = "us-east-1"
	s, ok := OpenSource("s3://programs/lib/main.scm.xz").(*S3Source)
	if !ok {
		t.Fatalf("expected an S3 source")
	}
	if s.Bucket != "programs" || s.Key != "lib/main.scm.xz" || s.settings.Region != "us-east-1" {
		t.Fatalf("unexpected source %+v", s)
	}
	if s.Name() != "s3://programs/lib/main.scm.xz" {
		t.Fatalf("unexpected name %s", s.Name())
	}
	if _, err := OpenSource("s3://programs").Read(context.Background(), 0); err == nil {
		t.Fatalf("expected an error for a missing key")
	}
	if f, ok := OpenSource("lib/main.scm").(FileSource); !ok || f.Name() != "lib/main.scm" {
		t.Fatalf("expected a file source")
	}
}

func TestS3LoadOptions(t *testing.T) {
	if opts := NewS3Source(S3Settings{}, "b", "k").loadOptions(); len(opts) != 0 {
		t.Fatalf("empty settings must keep the default chain, got %d options", len(opts))
	}
	// keys are only used as a pair
	partial := S3Settings{Region: "eu-west-1", AccessKeyID: "id"}
	if opts := NewS3Source(partial, "b", "k").loadOptions(); len(opts) != 1 {
		t.Fatalf("expected only the region option, got %d", len(opts))
	}
	full := S3Settings{Region: "eu-west-1", AccessKeyID: "id", SecretAccessKey: "secret"}
	if opts := NewS3Source(full, "b", "k").loadOptions(); len(opts) != 2 {
		t.Fatalf("expected region and credentials, got %d options", len(opts))
	}
}
