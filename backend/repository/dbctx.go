// Package repository wraps gorm access to each aggregate. Every method takes a
// DBContext so the same call works standalone or inside a caller's transaction.
package repository

import (
	"context"

	"gorm.io/gorm"
)

type DBContext struct {
	Ctx context.Context
	Tx  *gorm.DB
}

func Ctx(ctx context.Context) DBContext {
	return DBContext{Ctx: ctx}
}

func InTx(ctx context.Context, tx *gorm.DB) DBContext {
	return DBContext{Ctx: ctx, Tx: tx}
}

func (d DBContext) conn(fallback *gorm.DB) *gorm.DB {
	transaction := d.Tx
	if transaction == nil {
		transaction = fallback
	}
	ctx := d.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return transaction.WithContext(ctx)
}
