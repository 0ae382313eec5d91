//go:build integration || !unit

package sqlstore_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"residency_hub/internal/domain"
	"residency_hub/internal/storage/sqlstore"
)

// startMySQL runs an isolated MySQL container and returns a migrated handle.
func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest unavailable: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not reachable: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=residency",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&clientFoundRows=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "residency")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := sqlstore.Migrate(context.Background(), db, sqlstore.MySQL); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestRepo_MySQL_CreateListConflict(t *testing.T) {
	db := startMySQL(t)
	repo := sqlstore.New(db, sqlstore.MySQL)
	ctx := context.Background()

	a := rec("my-1", "Cape Town", 1_200_000, `{"bedrooms":2}`)
	b := rec("my-2", "Johannesburg", 900_000, `{"bed":4}`)
	for _, r := range []domain.Record{a, b} {
		if err := repo.CreateResidency(ctx, r); err != nil {
			t.Fatalf("CreateResidency %s: %v", r.ID, err)
		}
	}

	got, err := repo.ListResidencies(ctx, domain.StoreQuery{City: "cape"})
	if err != nil {
		t.Fatalf("ListResidencies: %v", err)
	}
	if len(got) != 1 || got[0].ID != "my-1" || !got[0].CreatedAt.Equal(a.CreatedAt) {
		t.Fatalf("unexpected rows: %+v", got)
	}

	dup := rec("my-3", "Cape Town", 1, "{}")
	dup.Address = a.Address
	if err := repo.CreateResidency(ctx, dup); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}

	st, err := repo.Stats(ctx, 5)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Count != 2 || st.MinPrice != 900_000 || st.MaxPrice != 1_200_000 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}
