package gormrepo

import (
	"context"

	"gorm.io/gorm"
)

type txKeyType struct{}

var txKey = txKeyType{}

func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

func txFromCtx(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	return tx, ok && tx != nil
}

func getDBFromCtx(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := txFromCtx(ctx); ok {
		return tx
	}
	return base.WithContext(ctx)
}
