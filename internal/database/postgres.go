package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

var DB *sql.DB

func InitDB(databaseURL string) error {
	var err error
	DB, err = sql.Open("postgres", databaseURL)
	if err != nil {
		return err
	}

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("error conectando a la base de datos: %v", err)
	}

	// Crear tabla de usuarios si no existe
	createUsersTableSQL := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);`

	_, err = DB.Exec(createUsersTableSQL)
	if err != nil {
		return err
	}

	// Crear tabla de tenencias del portafolio (una fila por compra)
	createHoldingsTableSQL := `
	CREATE TABLE IF NOT EXISTS portfolio_holdings (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		symbol TEXT NOT NULL,
		name TEXT NOT NULL,
		coin_id TEXT NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		avg_price DOUBLE PRECISION NOT NULL,
		purchase_date DATE NOT NULL,
		notes TEXT,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);`

	_, err = DB.Exec(createHoldingsTableSQL)
	if err != nil {
		return err
	}

	// Índice para listar tenencias por usuario
	createHoldingsIndexSQL := `
	CREATE INDEX IF NOT EXISTS idx_portfolio_holdings_user
	ON portfolio_holdings(user_id, created_at DESC);`

	_, err = DB.Exec(createHoldingsIndexSQL)
	if err != nil {
		return err
	}

	// Crear tabla para el historial del valor del portafolio
	createSnapshotsTableSQL := `
	CREATE TABLE IF NOT EXISTS portfolio_snapshots (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TIMESTAMPTZ NOT NULL,
		total_value DOUBLE PRECISION NOT NULL,
		total_invested DOUBLE PRECISION NOT NULL,
		profit DOUBLE PRECISION NOT NULL,
		profit_percentage DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);`

	_, err = DB.Exec(createSnapshotsTableSQL)
	if err != nil {
		return err
	}

	// Índice para búsqueda rápida por usuario y fecha
	createSnapshotsIndexSQL := `
	CREATE INDEX IF NOT EXISTS idx_portfolio_snapshots_user_date
	ON portfolio_snapshots(user_id, date);`

	_, err = DB.Exec(createSnapshotsIndexSQL)
	if err != nil {
		return err
	}

	// Ejecutar migraciones para actualizar el esquema
	return RunMigrations()
}
