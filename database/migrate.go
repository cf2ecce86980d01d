package database

import (
	"fmt"

	"atelier-backend/models"

	"gorm.io/gorm"
)

// MigrateTenantSchema applies (idempotent) schema migrations for a single tenant schema.
// It pins search_path to the tenant and performs:
// - AutoMigrate (tables/columns)
// - Money column types (NUMERIC(12,2))
// - Indexes (payments, order_items, invoices)
// - Basic CHECK constraints (non-negative money)
// - Idempotency keys table + unique index
func MigrateTenantSchema(schema string) error {
	if schema == "" {
		return fmt.Errorf("schema name is empty")
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		// Pin the tenant schema for this transaction
		if err := tx.Exec(`SET search_path = "` + schema + `", public`).Error; err != nil {
			return fmt.Errorf("set search_path failed: %w", err)
		}

		// --- AutoMigrate tables/columns/index tags (non-destructive) ---
		if err := tx.AutoMigrate(
			&models.Client{},
			&models.ProductType{},
			&models.SizeOption{},
			&models.MaterialOption{},
			&models.Addon{},
			&models.FeeRule{},
			&models.Order{},
			&models.OrderItem{},
			&models.Payment{},
			&models.Invoice{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("tenant automigrate failed: %w", err)
		}

		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE product_types    ALTER COLUMN base_price        TYPE numeric(12,2)`,
			`ALTER TABLE size_options     ALTER COLUMN price_modifier    TYPE numeric(12,2)`,
			`ALTER TABLE material_options ALTER COLUMN price_modifier    TYPE numeric(12,2)`,
			`ALTER TABLE addons           ALTER COLUMN price             TYPE numeric(12,2)`,
			`ALTER TABLE fee_rules        ALTER COLUMN fixed             TYPE numeric(12,2)`,
			`ALTER TABLE orders           ALTER COLUMN subtotal          TYPE numeric(12,2)`,
			`ALTER TABLE orders           ALTER COLUMN total             TYPE numeric(12,2)`,
			`ALTER TABLE orders           ALTER COLUMN paid_total        TYPE numeric(12,2)`,
			`ALTER TABLE orders           ALTER COLUMN balance           TYPE numeric(12,2)`,
			`ALTER TABLE order_items      ALTER COLUMN unit_price        TYPE numeric(12,2)`,
			`ALTER TABLE order_items      ALTER COLUMN line_total        TYPE numeric(12,2)`,
			`ALTER TABLE payments         ALTER COLUMN amount            TYPE numeric(12,2)`,
			`ALTER TABLE invoices         ALTER COLUMN subtotal          TYPE numeric(12,2)`,
			`ALTER TABLE invoices         ALTER COLUMN total             TYPE numeric(12,2)`,
			`ALTER TABLE invoices         ALTER COLUMN balance_due       TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE INDEX IF NOT EXISTS idx_payments_order_paid_at ON payments (order_id, paid_at)`,
			`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items (order_id)`,
			`CREATE INDEX IF NOT EXISTS idx_order_items_product_type ON order_items (product_type_id)`,
			`CREATE INDEX IF NOT EXISTS idx_invoices_order ON invoices (order_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			// Non-negative catalog base price
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'product_types'::regclass
					  AND conname  = 'chk_product_types_base_price_nonneg'
				) THEN
					ALTER TABLE product_types
					ADD CONSTRAINT chk_product_types_base_price_nonneg
					CHECK (base_price >= 0);
				END IF;
			END $$;`,
			// Payments.amount >= 0 (negative balances are allowed, negative payments are not)
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'payments'::regclass
					  AND conname  = 'chk_payments_amount_nonneg'
				) THEN
					ALTER TABLE payments
					ADD CONSTRAINT chk_payments_amount_nonneg
					CHECK (amount >= 0);
				END IF;
			END $$;`,
			// Order items: quantity >= 1
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'order_items'::regclass
					  AND conname  = 'chk_order_items_quantity_positive'
				) THEN
					ALTER TABLE order_items
					ADD CONSTRAINT chk_order_items_quantity_positive
					CHECK (quantity >= 1);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
