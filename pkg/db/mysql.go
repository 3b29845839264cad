package db

import (
	"friender/pkg/config"
	"friender/pkg/logger"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectMySQL: MySQL 연결을 설정하고 반환
func ConnectMySQL(cfg config.MySQLConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		// unique violations surface as gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("❌ MySQL 연결 실패")
		return nil, err
	}

	logger.Logger.Info().Msg("✅ MySQL 연결 성공!")
	return db, nil
}
