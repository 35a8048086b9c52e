// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

// noEnvFile keeps a stray .env in the package dir out of the tests
var noEnvFile = []string{"-env-file", ""}

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := ParseFlags(noEnvFile)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %q", cfg.DatabaseType)
	}
	if cfg.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("expected redis URL from env, got %q", cfg.RedisURL)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := ParseFlags([]string{"-env-file", "", "-p", "8080", "-d", "file:test.db", "-jwt-secret", "cli-secret"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.JWTSecret != "cli-secret" {
		t.Errorf("CLI should override env: expected cli-secret, got %q", cfg.JWTSecret)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("FEED_CHANNEL", "")
	t.Setenv("ADMIN_NAME", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := ParseFlags([]string{"-env-file", "", "-d", "file:test.db", "-jwt-secret", "s"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("expected default port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected sqlite, got %q", cfg.DatabaseType)
	}
	if cfg.FeedChannel != DefaultFeedChannel {
		t.Errorf("expected %q, got %q", DefaultFeedChannel, cfg.FeedChannel)
	}
	if cfg.AdminName != "Admin" {
		t.Errorf("expected Admin, got %q", cfg.AdminName)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != DefaultCORSOrigins {
		t.Errorf("expected default origins [%s], got %v", DefaultCORSOrigins, cfg.AllowedOrigins)
	}
}

func TestParseFlags_CORSOrigins(t *testing.T) {
	tests := []struct {
		name string
		env  string
		args []string
		want []string
	}{
		{"from env", " https://a.example , https://b.example,", nil, []string{"https://a.example", "https://b.example"}},
		{"flag overrides env", "https://a.example", []string{"-cors-origins", "*"}, []string{"*"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CORS_ORIGINS", tt.env)
			args := append([]string{"-env-file", "", "-d", "file:test.db", "-jwt-secret", "s"}, tt.args...)

			cfg, err := ParseFlags(args)
			if err != nil {
				t.Fatal(err)
			}
			if len(cfg.AllowedOrigins) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, cfg.AllowedOrigins)
			}
			for i := range tt.want {
				if cfg.AllowedOrigins[i] != tt.want[i] {
					t.Errorf("origin %d: expected %q, got %q", i, tt.want[i], cfg.AllowedOrigins[i])
				}
			}
		})
	}
}

func TestParseFlags_Required(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing database", []string{"-env-file", "", "-jwt-secret", "s"}},
		{"missing secret", []string{"-env-file", "", "-d", "file:test.db"}},
		{"bad database type", []string{"-env-file", "", "-d", "x", "-jwt-secret", "s", "-t", "mysql"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "")
			t.Setenv("JWT_SECRET", "")
			t.Setenv("DATABASE_TYPE", "")

			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseFlags_EnvFile(t *testing.T) {
	// godotenv treats a set-but-empty variable as present, so unset them;
	// t.Setenv still restores the originals
	for _, key := range []string{"DATABASE_URL", "JWT_SECRET"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("PORT", "7000")

	path := filepath.Join(t.TempDir(), "test.env")
	contents := "DATABASE_URL=file:fromenv.db\nJWT_SECRET=dotenv-secret\nPORT=1234\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags([]string{"-env-file", path})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.DatabaseURL != "file:fromenv.db" {
		t.Errorf("expected DATABASE_URL from file, got %q", cfg.DatabaseURL)
	}
	if cfg.JWTSecret != "dotenv-secret" {
		t.Errorf("expected JWT_SECRET from file, got %q", cfg.JWTSecret)
	}
	// Already-set variables win over the file
	if cfg.Port != 7000 {
		t.Errorf("expected env PORT to win, got %d", cfg.Port)
	}
}

func TestParseFlags_MissingEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.env")
	_, err := ParseFlags([]string{"-env-file", path, "-d", "x", "-jwt-secret", "s"})
	if err != nil {
		t.Errorf("missing env file should be ignored, got %v", err)
	}
}
