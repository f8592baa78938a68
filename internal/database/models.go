package database

import "gorm.io/gorm"

// User 表示系统中的账号信息。
// 模板与记录集合不归属于具体用户：登录后的每个读取方都能看到完整集合，
// 账号层只负责"谁能进入系统"这一道门。
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;size:64"`
	PasswordHash string `gorm:"size:255"`
}
