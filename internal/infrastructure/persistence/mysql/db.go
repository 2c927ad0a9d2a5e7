package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xuelin/bookshelf/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// 驱动错误转换为gorm哨兵错误（MySQL 1452 → gorm.ErrForeignKeyViolated）
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用版本化的迁移脚本，不要依赖AutoMigrate
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 说明：AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&PersonModel{},
		&BookModel{},
	)
}

// PersonModel GORM读者模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/person/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
// 4. 硬删除：不带gorm.DeletedAt字段，DELETE就是物理删除
type PersonModel struct {
	ID        uint      `gorm:"primaryKey"`
	FullName  string    `gorm:"size:255;not null;comment:姓名"`
	Title     string    `gorm:"size:255;not null;comment:称谓"`
	Age       int       `gorm:"comment:年龄"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (PersonModel) TableName() string {
	return "person"
}

// BookModel GORM图书模型
// 设计说明：
// 1. PersonID外键关联person表（多对一），Person关联字段让AutoMigrate
//    建出真实的外键约束
// 2. 级联删除由应用层在事务内显式完成（先删图书再删读者），
//    约束用RESTRICT兜底：指向不存在读者的插入会被数据库拒绝，
//    仓储把约束冲突转换为数据完整性错误
type BookModel struct {
	ID        uint        `gorm:"primaryKey"`
	PersonID  uint        `gorm:"index;not null;comment:所属读者ID"`
	Person    PersonModel `gorm:"foreignKey:PersonID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Title     string      `gorm:"size:255;comment:书名"`
	Author    string      `gorm:"size:255;comment:作者"`
	PageCount int         `gorm:"comment:页数"`
	CreatedAt time.Time   `gorm:"comment:创建时间"`
	UpdatedAt time.Time   `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "book"
}
