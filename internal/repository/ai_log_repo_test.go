package repository

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shirt_sh_v1_202608/internal/model"
)

func setupAILogTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.AICallLog{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	return db
}

func TestAICallLogRepo_Create(t *testing.T) {
	db := setupAILogTestDB(t)
	repo := NewAICallLogRepository(db)
	ctx := context.Background()

	log := &model.AICallLog{
		JobID:      "job-1",
		CallType:   model.AICallTypeText,
		ModelName:  "gemini-3-flash",
		DurationMs: 1500,
		CostUSD:    0.001,
		Status:     model.AICallStatusSuccess,
	}

	if err := repo.Create(ctx, log); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if log.ID == 0 {
		t.Error("ID 应该被自动分配")
	}
}

func TestAICallLogRepo_GetByID(t *testing.T) {
	db := setupAILogTestDB(t)
	repo := NewAICallLogRepository(db)
	ctx := context.Background()

	log := &model.AICallLog{
		JobID:     "job-1",
		CallType:  model.AICallTypeImage,
		ModelName: "gemini-3-pro-image-preview-2k",
		Status:    model.AICallStatusSuccess,
	}
	repo.Create(ctx, log)

	found, err := repo.GetByID(ctx, log.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if found.CallType != model.AICallTypeImage {
		t.Errorf("CallType = %s, want image", found.CallType)
	}
}

func TestAICallLogRepo_ListByJob(t *testing.T) {
	db := setupAILogTestDB(t)
	repo := NewAICallLogRepository(db)
	ctx := context.Background()

	// 一次工作流通常产生两条记录：标题一次 + 图片一次
	logs := []*model.AICallLog{
		{JobID: "job-1", CallType: model.AICallTypeText, Status: model.AICallStatusSuccess},
		{JobID: "job-1", CallType: model.AICallTypeImage, Status: model.AICallStatusFailed, ErrorMsg: "backend unavailable"},
		{JobID: "job-2", CallType: model.AICallTypeText, Status: model.AICallStatusSuccess},
	}
	for _, log := range logs {
		repo.Create(ctx, log)
	}

	found, err := repo.ListByJob(ctx, "job-1")
	if err != nil {
		t.Fatalf("ListByJob() error = %v", err)
	}

	if len(found) != 2 {
		t.Fatalf("记录数 = %d, want 2", len(found))
	}
	if found[0].CallType != model.AICallTypeText || found[1].CallType != model.AICallTypeImage {
		t.Error("记录应按插入顺序返回")
	}
	if found[1].ErrorMsg != "backend unavailable" {
		t.Errorf("失败记录应保留错误信息: %s", found[1].ErrorMsg)
	}
}

func TestAICallLogRepo_GetTotalCost(t *testing.T) {
	db := setupAILogTestDB(t)
	repo := NewAICallLogRepository(db)
	ctx := context.Background()

	logs := []*model.AICallLog{
		{JobID: "job-1", CallType: model.AICallTypeText, CostUSD: 0.001, Status: model.AICallStatusSuccess},
		{JobID: "job-1", CallType: model.AICallTypeImage, CostUSD: 0.04, Status: model.AICallStatusSuccess},
		{JobID: "job-2", CallType: model.AICallTypeImage, CostUSD: 0.04, Status: model.AICallStatusSuccess},
	}
	for _, log := range logs {
		repo.Create(ctx, log)
	}

	totalCost, err := repo.GetTotalCost(ctx, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("GetTotalCost() error = %v", err)
	}

	expected := 0.081
	if totalCost < expected-0.0001 || totalCost > expected+0.0001 {
		t.Errorf("TotalCost = %f, want %f", totalCost, expected)
	}

	// 起始时间在未来，什么都不命中
	future := time.Now().Add(time.Hour)
	totalCost, err = repo.GetTotalCost(ctx, future, time.Time{})
	if err != nil {
		t.Fatalf("GetTotalCost() error = %v", err)
	}
	if totalCost != 0 {
		t.Errorf("未来窗口 TotalCost = %f, want 0", totalCost)
	}
}
