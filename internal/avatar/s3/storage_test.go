package s3

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/bornholm/courtside/internal/avatar"
	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go"

	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"
)

func TestStorage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container based test in short mode")
	}

	ctx := context.Background()

	container, err := tcminio.Run(ctx, "minio/minio:RELEASE.2024-01-16T16-07-38Z")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	defer func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("could not terminate container: %+v", errors.WithStack(err))
		}
	}()

	endpoint, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	storage, err := avatar.New(Type, map[string]any{
		"endpoint":  endpoint,
		"accessKey": container.Username,
		"secretKey": container.Password,
		"bucket":    "avatars",
		"urlTtl":    "10m",
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, _, err := storage.Open(ctx, "missing.png"); !errors.Is(err, avatar.ErrNotFound) {
		t.Errorf("err: expected '%v', got '%v'", avatar.ErrNotFound, err)
	}

	content := "not really a png"

	if err := storage.Put(ctx, "cv1.png", strings.NewReader(content), int64(len(content)), "image/png"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	reader, info, err := storage.Open(ctx, "cv1.png")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	data, err := io.ReadAll(reader)
	reader.Close()
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := content, string(data); e != g {
		t.Errorf("content: expected '%v', got '%v'", e, g)
	}

	if e, g := "image/png", info.ContentType; e != g {
		t.Errorf("info.ContentType: expected '%v', got '%v'", e, g)
	}

	url, expiresAt, err := storage.URL(ctx, "cv1.png")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if expiresAt.IsZero() {
		t.Errorf("expiresAt: expected an expiration time")
	}

	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	defer res.Body.Close()

	if e, g := http.StatusOK, res.StatusCode; e != g {
		t.Errorf("res.StatusCode: expected '%v', got '%v'", e, g)
	}

	if err := storage.Delete(ctx, "cv1.png"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, _, err := storage.Open(ctx, "cv1.png"); !errors.Is(err, avatar.ErrNotFound) {
		t.Errorf("err: expected '%v', got '%v'", avatar.ErrNotFound, err)
	}
}
