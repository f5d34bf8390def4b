package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'batch_status') THEN
			CREATE TYPE batch_status AS ENUM ('not_priced', 'partially_priced', 'fully_priced', 'imported');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS batches (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		code VARCHAR(64) NOT NULL,
		kind VARCHAR(16) NOT NULL CHECK (kind IN ('rental', 'service', 'product')),
		supplier TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		source_file TEXT NOT NULL DEFAULT '',
		source_format VARCHAR(8) NOT NULL DEFAULT 'xlsx',
		issue_date TIMESTAMPTZ,
		import_date TIMESTAMPTZ,
		total_value NUMERIC(18,2) NOT NULL DEFAULT 0,
		status batch_status NOT NULL DEFAULT 'not_priced',
		item_count INTEGER NOT NULL DEFAULT 0,
		saved_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_batches_code ON batches (code);`,
	`CREATE INDEX IF NOT EXISTS idx_batches_status ON batches (status);`,
	`CREATE TABLE IF NOT EXISTS line_items (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		batch_id UUID NOT NULL REFERENCES batches(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		code VARCHAR(64) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		acquisition_value NUMERIC(18,2) NOT NULL,
		freight NUMERIC(18,2) NOT NULL DEFAULT 0,
		contract_duration INTEGER NOT NULL DEFAULT 0,
		margin NUMERIC(7,2),
		sale_value NUMERIC(18,2) NOT NULL DEFAULT 0,
		computed BOOLEAN NOT NULL DEFAULT FALSE,
		saved BOOLEAN NOT NULL DEFAULT FALSE,
		saved_at TIMESTAMPTZ,
		CHECK (NOT saved OR computed)
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_line_items_batch_code ON line_items (batch_id, code);`,
	`CREATE TABLE IF NOT EXISTS catalog_items (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		kind VARCHAR(16) NOT NULL CHECK (kind IN ('product', 'equipment')),
		code VARCHAR(64) NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		current_cost NUMERIC(18,2) NOT NULL DEFAULT 0,
		current_sale_value NUMERIC(18,2) NOT NULL DEFAULT 0,
		priced_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_catalog_items_code ON catalog_items (code);`,
	`CREATE INDEX IF NOT EXISTS idx_catalog_items_category ON catalog_items (category);`,
	`CREATE TABLE IF NOT EXISTS pricing_records (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		formula VARCHAR(16) NOT NULL CHECK (formula IN ('rental', 'product')),
		catalog_item_id UUID REFERENCES catalog_items(id) ON DELETE SET NULL,
		description TEXT NOT NULL DEFAULT '',
		base_cost NUMERIC(18,2) NOT NULL,
		freight NUMERIC(18,2) NOT NULL DEFAULT 0,
		extra_costs JSONB NOT NULL DEFAULT '[]'::jsonb,
		margin_percent NUMERIC(9,2) NOT NULL,
		payment_method VARCHAR(16) NOT NULL DEFAULT '',
		installments INTEGER NOT NULL DEFAULT 1,
		contract_months INTEGER NOT NULL DEFAULT 0,
		total_cost NUMERIC(18,2) NOT NULL,
		sale_value NUMERIC(18,2) NOT NULL,
		contract_value NUMERIC(18,2) NOT NULL DEFAULT 0,
		gross_profit NUMERIC(18,2) NOT NULL,
		total_fees NUMERIC(18,2) NOT NULL,
		net_profit NUMERIC(18,2) NOT NULL,
		profit_percent NUMERIC(9,2) NOT NULL,
		installment_value NUMERIC(18,2),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_pricing_records_item_created ON pricing_records (catalog_item_id, created_at DESC) WHERE catalog_item_id IS NOT NULL;`,
	`CREATE TABLE IF NOT EXISTS promotions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		type VARCHAR(16) NOT NULL CHECK (type IN ('DESCONTO', 'FRETE_GRATIS', 'CUPOM')),
		category TEXT NOT NULL DEFAULT '',
		linked_item_id UUID REFERENCES catalog_items(id) ON DELETE CASCADE,
		apply_whole_category BOOLEAN NOT NULL DEFAULT FALSE,
		coupon_code VARCHAR(64) NOT NULL DEFAULT '',
		starts_at TIMESTAMPTZ NOT NULL,
		ends_at TIMESTAMPTZ,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		rules JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK ((linked_item_id IS NOT NULL) <> apply_whole_category)
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_promotions_coupon ON promotions (UPPER(coupon_code)) WHERE coupon_code <> '';`,
	`CREATE TABLE IF NOT EXISTS addresses (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL,
		type VARCHAR(16) NOT NULL CHECK (type IN ('residencial', 'comercial', 'entrega', 'cobranca')),
		cep CHAR(8) NOT NULL,
		street TEXT NOT NULL,
		number VARCHAR(16) NOT NULL,
		complement TEXT NOT NULL DEFAULT '',
		district TEXT NOT NULL,
		city TEXT NOT NULL,
		state CHAR(2) NOT NULL,
		principal BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_addresses_user_id ON addresses (user_id);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_addresses_user_principal ON addresses (user_id) WHERE principal;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
