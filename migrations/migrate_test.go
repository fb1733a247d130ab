package migrations

import "testing"

func TestEmbeddedMigrations(t *testing.T) {
	for _, dir := range []string{"sqlite", "postgres"} {
		entries, err := embedMigrations.ReadDir(dir)
		if err != nil {
			t.Fatalf("reading embedded %s migrations: %v", dir, err)
		}
		if len(entries) == 0 {
			t.Fatalf("no embedded migrations for %s", dir)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				t.Fatalf("unexpected directory %s in %s migrations", entry.Name(), dir)
			}
		}
	}
}
