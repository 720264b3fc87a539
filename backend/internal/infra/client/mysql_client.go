package client

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"packsite/backend/internal/config"

	_ "github.com/go-sql-driver/mysql"
	mysqlDriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const (
	envMySQLHost     = "MYSQL_HOST"
	envMySQLPort     = "MYSQL_PORT"
	envMySQLUsername = "MYSQL_USERNAME"
	envMySQLPassword = "MYSQL_PASSWORD"
	envMySQLDatabase = "MYSQL_DATABASE"
	envMySQLParams   = "MYSQL_PARAMS"
)

const (
	defaultMySQLPort     = 3306
	defaultMySQLDatabase = "packsite"
	defaultMySQLParams   = "charset=utf8mb4&parseTime=true&loc=Local"
)

// MySQLOptions describes the database connection parameters.
type MySQLOptions struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
	Params   string
}

// LoadMySQLOptions reads the MySQL connection settings from the
// environment, applying defaults for the optional fields.
func LoadMySQLOptions() (MySQLOptions, error) {
	config.LoadEnvFiles()

	opts := MySQLOptions{
		Host:     strings.TrimSpace(os.Getenv(envMySQLHost)),
		Port:     defaultMySQLPort,
		Username: strings.TrimSpace(os.Getenv(envMySQLUsername)),
		Password: os.Getenv(envMySQLPassword),
		Database: strings.TrimSpace(os.Getenv(envMySQLDatabase)),
		Params:   strings.TrimSpace(os.Getenv(envMySQLParams)),
	}

	if rawPort := strings.TrimSpace(os.Getenv(envMySQLPort)); rawPort != "" {
		port, err := strconv.Atoi(rawPort)
		if err != nil {
			return MySQLOptions{}, fmt.Errorf("invalid %s: %w", envMySQLPort, err)
		}
		opts.Port = port
	}

	if opts.Database == "" {
		opts.Database = defaultMySQLDatabase
	}
	if opts.Params == "" {
		opts.Params = defaultMySQLParams
	}

	if err := validateMySQLOptions(opts); err != nil {
		return MySQLOptions{}, err
	}

	return opts, nil
}

// NewGORMMySQL opens a GORM connection and returns both the ORM handle
// and the underlying *sql.DB so the caller controls pool lifecycle.
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func NewGORMMySQL(opts MySQLOptions) (*gorm.DB, *sql.DB, error) {
	dsn, err := BuildMySQLDSN(opts)
	if err != nil {
		return nil, nil, err
	}

	gormDB, err := gorm.Open(mysqlDriver.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open gorm mysql: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("get sql db: %w", err)
	}

	sqlDB.SetConnMaxLifetime(60 * time.Minute)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(25)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("ping mysql: %w", err)
	}

	return gormDB, sqlDB, nil
}

func validateMySQLOptions(opts MySQLOptions) error {
	if opts.Host == "" {
		return fmt.Errorf("mysql host is required")
	}
	if opts.Username == "" {
		return fmt.Errorf("mysql username is required")
	}
	if opts.Database == "" {
		return fmt.Errorf("mysql database is required")
	}
	return nil
}

// BuildMySQLDSN assembles the driver DSN after validating the options.
func BuildMySQLDSN(opts MySQLOptions) (string, error) {
	if err := validateMySQLOptions(opts); err != nil {
		return "", err
	}

	params := opts.Params
	if params == "" {
		params = defaultMySQLParams
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		opts.Username,
		opts.Password,
		opts.Host,
		opts.Port,
		opts.Database,
		params,
	)

	return dsn, nil
}
