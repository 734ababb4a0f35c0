package main

import (
	"os"

	"github.com/gemledger/internal/app"
	"github.com/gemledger/internal/config"
	"github.com/gemledger/internal/constants"
	"github.com/gemledger/internal/logger"
	"github.com/gemledger/internal/models"
	"github.com/gemledger/internal/repository"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := app.PrepareDatabase(cfg); err != nil {
		stdLog.Fatalf("Failed to prepare database: %v", err)
	}

	if err := models.InitDefaultAdmin(os.Getenv("GL_DEFAULT_ADMIN_USERNAME"), os.Getenv("GL_DEFAULT_ADMIN_PASSWORD")); err != nil {
		stdLog.Printf("Failed to create default admin: %v", err)
	}

	// 演示库存，sku 已存在时覆盖
	stones := []models.Stone{
		sampleStone("GL-R-0001", "GIA", "ROUND", "D", "VVS1", "EX", 1.01, 6.43, 6.45, 3.98, "12850.00", 30),
		sampleStone("GL-R-0002", "GLI", "ROUND", "F", "VS1", "EX", 0.72, 5.71, 5.74, 3.52, "4390.00", 20),
		sampleStone("GL-O-0001", "IGI", "OVAL", "E", "VS2", "VG", 1.52, 9.12, 6.48, 4.01, "15200.00", 10),
		sampleStone("GL-P-0001", "GLI", "PEAR", "G", "SI1", "", 0.90, 8.30, 5.40, 3.30, "3650.50", 0),
		sampleStone("GL-E-0001", "GIA", "EMERALD", "H", "VS2", "", 2.03, 8.90, 6.61, 4.30, "21400.00", 0),
		sampleStone("GL-C-0001", "IGI", "CUSHION", "F", "VVS2", "", 1.20, 6.30, 6.10, 4.05, "9800.00", 5),
	}
	stones[5].Status = constants.StoneStatusSold

	repo := repository.NewStoneRepository(models.DB)
	if err := repo.UpsertBatch(stones); err != nil {
		stdLog.Fatalf("Failed to seed stones: %v", err)
	}
	stdLog.Printf("Seeded %d stones", len(stones))
}

func sampleStone(sku, lab, shape, color, clarity, cut string, carat, length, width, height float64, price string, priority int) models.Stone {
	return models.Stone{
		SKU:         sku,
		Lab:         lab,
		Shape:       shape,
		Color:       color,
		Clarity:     clarity,
		Cut:         cut,
		Carat:       carat,
		Length:      length,
		Width:       width,
		Height:      height,
		TotalAmount: models.NewMoney(decimal.RequireFromString(price)),
		Status:      constants.StoneStatusInStock,
		Priority:    priority,
	}
}
