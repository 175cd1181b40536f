package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/janelia-flyem/rawvol/rawvol"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	"gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
	"gocloud.dev/gcp"
)

// OpenBucket returns a blob.Bucket for the given reference.
// The reference should be of the form:
//
//	gs://<bucketname>
//	s3://<bucketname>[/<prefix>]
//	vast://<endpoint>/<bucketname>
//	file:///<directory>
//	mem://
//
// A bare bucket name is opened as a Google Cloud Storage bucket using default credentials.
func OpenBucket(ctx context.Context, ref string) (bucket *blob.Bucket, err error) {
	switch {
	case strings.HasPrefix(ref, "s3://"):
		// This relies on the non-GCS-specific blob API and requires that the user:
		// A: Have set up AWS credentials in ways gocloud can find them (see the "aws config" command)
		// B: Have set the AWS_REGION environment variable (usually to us-east-2)
		pathpart := strings.TrimPrefix(ref, "s3://")
		parts := strings.SplitN(pathpart, "/", 2)
		bucket, err = blob.OpenBucket(ctx, "s3://"+parts[0])
		if err != nil {
			rawvol.Errorf("Can't open bucket reference @ %q: %v\n", ref, err)
			return nil, err
		}
		if len(parts) == 2 && parts[1] != "" {
			bucket = blob.PrefixedBucket(bucket, strings.TrimSuffix(parts[1], "/")+"/")
		}

	case strings.HasPrefix(ref, "vast://"):
		// VAST S3-compatible storage, "vast://<endpoint>/<bucket>".  The following
		// environment variables must be set:
		//  AWS_REGION: ignored but must be set for this cross-cloud library
		//  AWS_SHARED_CREDENTIALS_FILE: path to a file with AWS credentials
		refParts := strings.SplitN(strings.TrimPrefix(ref, "vast://"), "/", 2)
		if len(refParts) != 2 {
			return nil, fmt.Errorf("vast ref must be of form 'vast://<endpoint>/<bucket>'")
		}
		url := fmt.Sprintf("s3://%s?endpoint=%s&s3ForcePathStyle=true", refParts[1], refParts[0])
		bucket, err = blob.OpenBucket(ctx, url)
		if err != nil {
			rawvol.Errorf("Can't open bucket reference @ %q: %v\n", ref, err)
			return nil, err
		}

	case strings.Contains(ref, "://"):
		bucket, err = blob.OpenBucket(ctx, ref)
		if err != nil {
			rawvol.Errorf("Can't open bucket reference @ %q: %v\n", ref, err)
			return nil, err
		}

	default:
		// See https://cloud.google.com/docs/authentication/production
		// for more info on alternatives.
		creds, err := gcp.DefaultCredentials(ctx)
		if err != nil {
			return nil, err
		}
		client, err := gcp.NewHTTPClient(
			gcp.DefaultTransport(),
			gcp.CredentialsTokenSource(creds))
		if err != nil {
			return nil, err
		}
		bucket, err = gcsblob.OpenBucket(ctx, client, ref, nil)
		if err != nil {
			rawvol.Errorf("Can't open bucket reference @ %q: %v\n", ref, err)
			return nil, err
		}
	}
	return bucket, nil
}

// Bucket is a Source reading objects from a blob bucket.  Each row read is a
// ranged read of the object, so only requested bytes leave the bucket.
type Bucket struct {
	bucket *blob.Bucket
}

// NewBucket returns a Source over an open bucket.  Closing the Source closes the bucket.
func NewBucket(bucket *blob.Bucket) *Bucket {
	return &Bucket{bucket: bucket}
}

func bucketKey(path string) string {
	return strings.TrimPrefix(path, "/")
}

func bucketErr(op, path string, err error) error {
	if gcerrors.Code(err) == gcerrors.NotFound {
		return &os.PathError{Op: op, Path: path, Err: os.ErrNotExist}
	}
	return err
}

// Open returns a File for the object at path.  The object must exist.
func (b *Bucket) Open(ctx context.Context, path string) (File, error) {
	key := bucketKey(path)
	attrs, err := b.bucket.Attributes(ctx, key)
	if err != nil {
		return nil, bucketErr("open", path, err)
	}
	return &bucketFile{ctx: ctx, bucket: b.bucket, key: key, size: attrs.Size}, nil
}

// Stat returns the size of the object at path.
func (b *Bucket) Stat(ctx context.Context, path string) (int64, error) {
	attrs, err := b.bucket.Attributes(ctx, bucketKey(path))
	if err != nil {
		return 0, bucketErr("stat", path, err)
	}
	return attrs.Size, nil
}

// Close closes the underlying bucket.
func (b *Bucket) Close() error {
	return b.bucket.Close()
}

// bucketFile keeps the context of the Open call since io.ReaderAt has no context
// argument; the file does not outlive the read that opened it.
type bucketFile struct {
	ctx    context.Context
	bucket *blob.Bucket
	key    string
	size   int64
}

func (f *bucketFile) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset %d reading %q", off, f.key)
	}
	if off >= f.size {
		return 0, io.EOF
	}
	r, err := f.bucket.NewRangeReader(f.ctx, f.key, off, int64(len(p)), nil)
	if err != nil {
		return 0, err
	}
	defer r.Close()
	n, err := io.ReadFull(r, p)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	return n, err
}

func (f *bucketFile) Close() error {
	return nil
}
