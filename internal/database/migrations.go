package database

import (
	"log"
)

// RunMigrations ejecuta las migraciones necesarias para actualizar el esquema de la base de datos
func RunMigrations() error {
	log.Println("Ejecutando migraciones de la base de datos...")

	// Migración para añadir la columna notes a tenencias creadas con el esquema viejo
	addNotesColumnSQL := `
	ALTER TABLE portfolio_holdings ADD COLUMN IF NOT EXISTS notes TEXT;`

	if _, err := DB.Exec(addNotesColumnSQL); err != nil {
		log.Printf("Error al añadir columna notes: %v", err)
		return err
	}

	// Migración para añadir coin_id con el ticker en minúsculas como valor por defecto
	addCoinIDColumnSQL := `
	ALTER TABLE portfolio_holdings ADD COLUMN IF NOT EXISTS coin_id TEXT;
	UPDATE portfolio_holdings SET coin_id = LOWER(symbol) WHERE coin_id IS NULL;`

	if _, err := DB.Exec(addCoinIDColumnSQL); err != nil {
		log.Printf("Error al añadir columna coin_id: %v", err)
		return err
	}

	log.Println("Migraciones completadas")
	return nil
}
