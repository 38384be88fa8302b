package database

import (
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// Connect opens the local cache database. A postgres DSN selects the
// postgres driver; anything else is treated as a sqlite path, using the
// pure-Go modernc driver so the gateway needs no cgo.
func Connect(dsn string, logger *logrus.Logger) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		logger.WithField("driver", "postgres").Info("connecting cache database")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	logger.WithFields(logrus.Fields{"driver": "sqlite", "path": dsn}).Info("connecting cache database")

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}
