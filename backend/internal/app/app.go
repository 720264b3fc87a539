package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	articledomain "packsite/backend/internal/domain/article"
	blogdomain "packsite/backend/internal/domain/blog"
	catalogdomain "packsite/backend/internal/domain/catalog"
	leaddomain "packsite/backend/internal/domain/lead"
	userdomain "packsite/backend/internal/domain/user"
	"packsite/backend/internal/infra/client"
)

// Resources bundles the process-wide infrastructure handles: the GORM
// database (with its raw connection for lifecycle control) and the
// optional Redis client.
type Resources struct {
	DB    *gorm.DB
	SQLDB *sql.DB
	Redis *redis.Client
}

// Bootstrap connects MySQL and, when configured, Redis, then migrates
// the schema. Redis being absent is not an error: sessions and rate
// limits fall back to in-memory stores.
func Bootstrap(ctx context.Context) (*Resources, error) {
	mysqlOpts, err := client.LoadMySQLOptions()
	if err != nil {
		return nil, fmt.Errorf("load mysql options: %w", err)
	}

	db, sqlDB, err := client.NewGORMMySQL(mysqlOpts)
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}

	if err := Migrate(db); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	resources := &Resources{DB: db, SQLDB: sqlDB}

	redisOpts, configured, err := client.LoadRedisOptions()
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("load redis options: %w", err)
	}
	if configured {
		rdb, err := client.NewRedisClient(redisOpts)
		if err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		resources.Redis = rdb
	}

	return resources, nil
}

// Migrate applies the GORM auto-migration for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&blogdomain.Category{},
		&blogdomain.Blog{},
		&blogdomain.Section{},
		&articledomain.Article{},
		&catalogdomain.Product{},
		&catalogdomain.Portfolio{},
		&leaddomain.Contact{},
		&leaddomain.AgentApplication{},
		&userdomain.User{},
	)
}

// Close releases the infrastructure handles.
func (r *Resources) Close() error {
	if r == nil {
		return nil
	}
	if r.Redis != nil {
		if err := r.Redis.Close(); err != nil {
			return err
		}
	}
	if r.SQLDB != nil {
		if err := r.SQLDB.Close(); err != nil {
			return err
		}
	}
	return nil
}

// WithShutdown runs fn and terminates the process on error, cancelling
// the context either way.
func WithShutdown(ctx context.Context, cancel func(), fn func(context.Context) error) {
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
