package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/xgflow/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"XGFLOW_CONFIG",
	"XGFLOW_ENV_FILE",
	"XGFLOW_ADDR",
	"XGFLOW_LOG_LEVEL",
	"XGFLOW_LOG_FILE",
	"XGFLOW_CORS_ORIGINS",
	"XGFLOW_MAX_BODY_BYTES",
	"XGFLOW_REQUEST_TIMEOUT_MS",
	"XGFLOW_ASSEMBLE_WORKERS",
	"XGFLOW_FALLBACK_COLOR",
	"XGFLOW_STORE",
	"XGFLOW_REDIS_URL",
	"XGFLOW_STORE_TTL_SECONDS",
}

func clearConfigEnvVars() {
	for _, k := range configEnvVars {
		_ = os.Unsetenv(k)
	}
}

func createTempFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.MaxBodyBytes, convey.ShouldEqual, 4<<20)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("XGFLOW_ADDR", ":8080")
			_ = os.Setenv("XGFLOW_MAX_BODY_BYTES", "1024")
			_ = os.Setenv("XGFLOW_ASSEMBLE_WORKERS", "3")
			_ = os.Setenv("XGFLOW_CORS_ORIGINS", "https://a.example,https://b.example")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxBodyBytes, convey.ShouldEqual, 1024)
				convey.So(cfg.AssembleWorkers, convey.ShouldEqual, 3)
				convey.So(cfg.CORSOrigins, convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
addr: ":9090"
log_level: debug
request_timeout_ms: 2500
team_colors:
  Gent: "#123456"
`
			_ = os.Setenv("XGFLOW_CONFIG", createTempFile(t, "xgflow.yaml", yamlContent))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.RequestTimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.TeamColors["Gent"], convey.ShouldEqual, "#123456")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			_ = os.Setenv("XGFLOW_CONFIG", createTempFile(t, "xgflow.yaml", "addr: \":9090\"\nrequest_timeout_ms: 2500\n"))
			_ = os.Setenv("XGFLOW_ADDR", ":7070")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.RequestTimeoutMS, convey.ShouldEqual, 2500)
			})
		})

		convey.Convey("When a dotenv file is provided", func() {
			_ = os.Setenv("XGFLOW_ENV_FILE", createTempFile(t, ".env", "XGFLOW_FALLBACK_COLOR=\"#010203\"\n"))

			cfg, err := config.Load(ctx)

			convey.Convey("Then its variables are applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.FallbackColor, convey.ShouldEqual, "#010203")
			})
		})

		convey.Convey("When the YAML file does not exist", func() {
			_ = os.Setenv("XGFLOW_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load(ctx)

			convey.Convey("Then ErrLoadConfig is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When an unknown store backend is configured", func() {
			_ = os.Setenv("XGFLOW_STORE", "postgres")

			_, err := config.Load(ctx)

			convey.Convey("Then ErrInvalidConfig is returned", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the redis store is selected from the environment", func() {
			_ = os.Setenv("XGFLOW_STORE", "redis")
			_ = os.Setenv("XGFLOW_REDIS_URL", "redis://cache:6379/2")
			_ = os.Setenv("XGFLOW_STORE_TTL_SECONDS", "60")

			cfg, err := config.Load(ctx)

			convey.Convey("Then the store settings are applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Store, convey.ShouldEqual, config.StoreRedis)
				convey.So(cfg.RedisURL, convey.ShouldEqual, "redis://cache:6379/2")
				convey.So(cfg.StoreTTLSeconds, convey.ShouldEqual, 60)
			})
		})

		convey.Convey("When the address is empty", func() {
			_ = os.Setenv("XGFLOW_CONFIG", createTempFile(t, "xgflow.yaml", "addr: \"\"\n"))

			_, err := config.Load(ctx)

			convey.Convey("Then ErrInvalidConfig is returned", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
