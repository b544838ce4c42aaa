package sqlite

import (
	"errors"
	"fmt"
	stdlog "log"
	"strings"
	"time"

	"notesbackend/cmd/internal/domain/entity"

	"github.com/glebarez/sqlite"
	glog "github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

const defaultMaxOpenConns = 10

var ErrUnsupportedDatabaseURL = errors.New("unsupported database url")

// Options configures how the database is opened.
type Options struct {
	URL          string
	MaxOpenConns int
	LogLevel     glog.Lvl
}

// Database is the persistence context shared by every request. It is built
// once at startup and handed to the repositories explicitly.
type Database struct {
	DB      *gorm.DB
	Dialect string
}

func Open(opts Options) (*Database, error) {
	dialect, dialector, err := dialectorFor(opts.URL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  newLogger(opts.LogLevel),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %s database: %w", dialect, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(&entity.Note{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlite: failed to migrate schema: %w", err)
	}

	// SQLite only allows a single writer, so we keep a single connection
	// around instead of fighting over the file lock.
	maxConns := opts.MaxOpenConns
	switch {
	case dialect == DialectSQLite:
		maxConns = 1
	case maxConns == 0:
		maxConns = defaultMaxOpenConns
	}
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(maxConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Database{DB: db, Dialect: dialect}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// dialectorFor picks the gorm driver for a connection string. Bare paths are
// treated as SQLite files.
func dialectorFor(url string) (string, gorm.Dialector, error) {
	url = strings.TrimSpace(url)
	switch {
	case url == "":
		return "", nil, fmt.Errorf("%w: empty", ErrUnsupportedDatabaseURL)

	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DialectPostgres, postgres.Open(url), nil

	case strings.HasPrefix(url, "sqlite://"):
		path := SQLitePath(url)
		if path == "" {
			return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedDatabaseURL, url)
		}
		return DialectSQLite, sqlite.Open(path), nil

	case strings.Contains(url, "://"):
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedDatabaseURL, url)

	default:
		return DialectSQLite, sqlite.Open(url), nil
	}
}

// SQLitePath converts "sqlite:///./notes.db" style urls to a file path.
// Three slashes denote a relative path, four an absolute one.
func SQLitePath(url string) string {
	path := strings.TrimPrefix(url, "sqlite://")
	if strings.HasPrefix(path, "/") {
		path = path[1:]
	}
	return path
}

// newLogger writes gorm's query log to the same output as the application log.
func newLogger(lvl glog.Lvl) logger.Interface {
	return logger.New(stdlog.New(glog.Output(), "", stdlog.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormLogLevel(lvl),
		IgnoreRecordNotFoundError: true,
	})
}

func gormLogLevel(lvl glog.Lvl) logger.LogLevel {
	switch lvl {
	case glog.DEBUG:
		return logger.Info
	case glog.INFO, glog.WARN:
		return logger.Warn
	case glog.ERROR:
		return logger.Error
	default:
		return logger.Silent
	}
}
