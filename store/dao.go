package store

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"time"
)

type Dao struct {
	db *gorm.DB
}

func NewDao(url, scheme, user, passwd string) (*Dao, error) {
	dao := &Dao{}
	Logger := logger.Default
	Logger = Logger.LogMode(logger.Warn)
	db, err := gorm.Open(mysql.Open(user+":"+passwd+"@tcp("+url+")/"+
		scheme+"?charset=utf8mb4&parseTime=true"), &gorm.Config{Logger: Logger})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(&OperationRecord{})
	if err != nil {
		return nil, err
	}
	dao.db = db
	return dao, nil
}

func (dao *Dao) SaveOperationRecord(record *OperationRecord) error {
	return dao.db.Create(record).Error
}

func (dao *Dao) SelectOperationRecords(operation string, since time.Time, limit int) ([]*OperationRecord, error) {
	records := make([]*OperationRecord, 0)
	res := dao.db.Where("operation = ? AND created_at >= ?", operation, since).
		Order("created_at desc").Limit(limit).Find(&records)
	return records, res.Error
}
