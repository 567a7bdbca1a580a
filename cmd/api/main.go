package main

import (
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	// .envは無ければ環境変数をそのまま使う
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.Shop{},
		&model.Product{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	shopRepo := infraRepo.NewShopGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Guard（商品名の重複チェックにDBが要る）
	guard := validator.NewGuard(productRepo)

	//Usecase生成
	productUC := usecase.NewProductUsecase(productRepo, shopRepo, txManager, guard)
	shopUC := usecase.NewShopUsecase(shopRepo, productRepo, txManager, guard, productUC)

	//Handler生成
	shopH := handler.NewShopHandler(shopUC)
	productH := handler.NewProductHandler(productUC)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(addr, shopH, productH); err != nil {
		panic(err)
	}
}
