package config

import "testing"

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "db",
			Port:     3306,
			User:     "app",
			Password: "pw",
			Name:     "stockledger",
		},
	}

	// clientFoundRows makes RowsAffected count matched rows, so conditional status
	// updates that leave a column unchanged are not mistaken for missing rows.
	want := "app:pw@tcp(db:3306)/stockledger?parseTime=true&clientFoundRows=true"
	if got := cfg.GetDSN(); got != want {
		t.Fatalf("GetDSN() = %s, want %s", got, want)
	}
}
