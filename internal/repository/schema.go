package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func InitializeDBSchema(db *sqlx.DB) error {
	_, err := db.ExecContext(context.Background(), `
CREATE TABLE IF NOT EXISTS promotions (
	id UUID PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	price NUMERIC(12, 2) NOT NULL,
	discounted_price NUMERIC(12, 2),
	currency CHAR(3) NOT NULL DEFAULT 'USD',
	commission_rate NUMERIC(6, 4) NOT NULL DEFAULT 0.10,
	max_bookings INTEGER,
	current_bookings INTEGER NOT NULL DEFAULT 0,
	location VARCHAR(255) NOT NULL DEFAULT '',
	business_name VARCHAR(255) NOT NULL DEFAULT '',
	cover_image_url TEXT NOT NULL DEFAULT '',
	start_date TIMESTAMP WITH TIME ZONE NOT NULL,
	end_date TIMESTAMP WITH TIME ZONE NOT NULL
);`)
	if err != nil {
		return fmt.Errorf("failed to create promotions table: %w", err)
	}

	_, err = db.ExecContext(context.Background(), `
CREATE TABLE IF NOT EXISTS affiliate_links (
	id UUID PRIMARY KEY,
	short_code VARCHAR(32) NOT NULL UNIQUE,
	user_id VARCHAR(255) NOT NULL,
	commission_rate NUMERIC(6, 4) NOT NULL DEFAULT 0.05
);`)
	if err != nil {
		return fmt.Errorf("failed to create affiliate_links table: %w", err)
	}

	_, err = db.ExecContext(context.Background(), `
CREATE TABLE IF NOT EXISTS bookings (
	id UUID PRIMARY KEY,
	promotion_id UUID NOT NULL,
	user_id VARCHAR(255) NOT NULL,
	affiliate_link_id UUID,
	quantity INTEGER NOT NULL,
	total_amount NUMERIC(12, 2) NOT NULL,
	commission_amount NUMERIC(12, 2) NOT NULL,
	affiliate_commission NUMERIC(12, 2) NOT NULL DEFAULT 0,
	currency CHAR(3) NOT NULL,
	status VARCHAR(16) NOT NULL,
	payment_reference VARCHAR(255) NOT NULL,
	payment_status VARCHAR(32) NOT NULL,
	booking_date TIMESTAMP WITH TIME ZONE NOT NULL,
	travel_date TIMESTAMP WITH TIME ZONE NOT NULL
);`)
	if err != nil {
		return fmt.Errorf("failed to create bookings table: %w", err)
	}

	_, err = db.ExecContext(context.Background(), `
CREATE TABLE IF NOT EXISTS tickets (
	id UUID PRIMARY KEY,
	booking_id UUID NOT NULL,
	user_id VARCHAR(255) NOT NULL,
	ticket_number VARCHAR(16) NOT NULL UNIQUE,
	artifact_url TEXT NOT NULL,
	is_used BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);`)
	if err != nil {
		return fmt.Errorf("failed to create tickets table: %w", err)
	}

	_, err = db.ExecContext(context.Background(), `
CREATE TABLE IF NOT EXISTS notifications (
	id UUID PRIMARY KEY,
	user_id VARCHAR(255) NOT NULL,
	type VARCHAR(64) NOT NULL,
	title VARCHAR(255) NOT NULL,
	message TEXT NOT NULL,
	link_url TEXT NOT NULL DEFAULT '',
	image_url TEXT NOT NULL DEFAULT '',
	metadata JSONB,
	is_read BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
	read_at TIMESTAMP WITH TIME ZONE
);`)
	if err != nil {
		return fmt.Errorf("failed to create notifications table: %w", err)
	}

	return nil
}
