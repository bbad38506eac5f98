package main

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MainTestSuite struct {
	suite.Suite
}

func (s *MainTestSuite) openMockDB() (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	s.Require().NoError(err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	s.Require().NoError(err)

	return db, mock
}

func (s *MainTestSuite) TestCloseDatabase() {
	s.Run("Closes the underlying pool", func() {
		db, mock := s.openMockDB()
		mock.ExpectClose()

		s.Require().NoError(closeDatabase(db))
		s.Require().NoError(mock.ExpectationsWereMet())

		sqlDB, err := db.DB()
		s.Require().NoError(err)
		s.Error(sqlDB.Ping())
	})

	s.Run("Reports close failures", func() {
		db, mock := s.openMockDB()
		closeErr := errors.New("connection already closed")
		mock.ExpectClose().WillReturnError(closeErr)

		s.Require().ErrorIs(closeDatabase(db), closeErr)
		s.Require().NoError(mock.ExpectationsWereMet())
	})
}

func TestMainSuite(t *testing.T) {
	suite.Run(t, new(MainTestSuite))
}
