package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

// resetEnv clears env vars used by parseConfig
func resetEnv() {
	os.Clearenv()
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	configPath := parseFlags()
	expected := "config.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	configPath := parseFlags()
	expected := "myconfig.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestPrintBuildInfo_Output(t *testing.T) {
	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	// Set build info variables
	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2025-09-26"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	output := buf.String()
	os.Stdout = oldStdout

	// Check if all expected strings are present
	if !contains(output, "version v1.0.0") ||
		!contains(output, "commit abcd1234") ||
		!contains(output, "build 2025-09-26") {
		t.Errorf("printBuildInfo output unexpected:\n%s", output)
	}
}

// Helper function to check substring
func contains(s, substr string) bool {
	return bytes.Contains([]byte(s), []byte(substr))
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv()

	cfg, err := parseConfig("nonexistent.env")
	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	// Application
	if cfg.AppHost != "localhost" || cfg.AppPort != "8080" || cfg.LogLevel != "info" {
		t.Errorf("unexpected app config: %v/%v/%v", cfg.AppHost, cfg.AppPort, cfg.LogLevel)
	}

	// PostgreSQL
	if cfg.PgHost != "localhost" || cfg.PgPort != 5432 || cfg.PgUser != "user" || cfg.PgPassword != "password" || cfg.PgDB != "database" ||
		cfg.PgMaxOpenConns != 16 || cfg.PgMaxIdleConns != 8 {
		t.Errorf("unexpected postgres config")
	}

	// Redis
	if cfg.RedisHost != "localhost" || cfg.RedisPort != 6379 || cfg.RedisDB != 0 || cfg.RedisPassword != "" {
		t.Errorf("unexpected redis config")
	}

	// SMTP
	if cfg.SMTPHost != "smtp.gmail.com" || cfg.SMTPPort != "465" {
		t.Errorf("unexpected smtp config")
	}

	// Kafka
	if cfg.KafkaBrokers != "localhost:9092" || cfg.KafkaTopic != "devister.events" {
		t.Errorf("unexpected kafka config")
	}

	// JWT
	if cfg.JWTSecretKey != "my_super_secret_key" || cfg.JWTExpSecond != 259200 {
		t.Errorf("unexpected jwt config")
	}

	// Verification policy
	if cfg.ClientDomain != "localhost:3000" || !cfg.ResetImpliesVerified {
		t.Errorf("unexpected verification config")
	}

	// Rate limiting and cleanup
	if cfg.RateLimit != 100 || cfg.RateLimitWindowSecond != 60 || cfg.CleanupIntervalSecond != 300 {
		t.Errorf("unexpected rate limit config")
	}
}

func TestParseConfig_CustomEnv(t *testing.T) {
	resetEnv()
	os.Setenv("APP_HOST", "127.0.0.1")
	os.Setenv("APP_PORT", "9090")
	os.Setenv("APP_LOG_LEVEL", "debug")

	os.Setenv("POSTGRES_HOST", "pg.example.com")
	os.Setenv("POSTGRES_PORT", "5433")
	os.Setenv("POSTGRES_USER", "admin")
	os.Setenv("POSTGRES_PASSWORD", "secret")
	os.Setenv("POSTGRES_DB", "mydb")
	os.Setenv("POSTGRES_MAX_OPEN_CONNS", "20")
	os.Setenv("POSTGRES_MAX_IDLE_CONNS", "10")

	os.Setenv("REDIS_HOST", "redis.example.com")
	os.Setenv("REDIS_PORT", "6380")
	os.Setenv("REDIS_DB", "2")
	os.Setenv("REDIS_PASSWORD", "redispass")

	os.Setenv("SMTP_HOST", "smtp.example.com")
	os.Setenv("SMTP_PORT", "465")
	os.Setenv("SMTP_USER", "noreply@example.com")
	os.Setenv("SMTP_PASSWORD", "smtppass")

	os.Setenv("S3_ENDPOINT", "http://minio:9000")
	os.Setenv("S3_BUCKET", "uploads")
	os.Setenv("S3_BASE_URL", "https://cdn.example.com/uploads")

	os.Setenv("KAFKA_BROKERS", "kafka1:9092,kafka2:9092")
	os.Setenv("KAFKA_TOPIC", "activity")

	os.Setenv("JWT_SECRET_KEY", "supersecret")
	os.Setenv("JWT_EXP_SECOND", "300")

	os.Setenv("CLIENT_DOMAIN", "devister.example.com")
	os.Setenv("RESET_IMPLIES_VERIFIED", "false")

	os.Setenv("RATE_LIMIT", "50")
	os.Setenv("RATE_LIMIT_WINDOW_SECOND", "30")
	os.Setenv("CLEANUP_INTERVAL_SECOND", "60")

	cfg, err := parseConfig("nonexistent.env")
	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	// Check all variables
	if cfg.AppHost != "127.0.0.1" || cfg.AppPort != "9090" || cfg.LogLevel != "debug" {
		t.Errorf("unexpected app config")
	}
	if cfg.PgHost != "pg.example.com" || cfg.PgPort != 5433 || cfg.PgUser != "admin" || cfg.PgPassword != "secret" || cfg.PgDB != "mydb" ||
		cfg.PgMaxOpenConns != 20 || cfg.PgMaxIdleConns != 10 {
		t.Errorf("unexpected postgres config")
	}
	if cfg.RedisHost != "redis.example.com" || cfg.RedisPort != 6380 || cfg.RedisDB != 2 || cfg.RedisPassword != "redispass" {
		t.Errorf("unexpected redis config")
	}
	if cfg.SMTPHost != "smtp.example.com" || cfg.SMTPUser != "noreply@example.com" || cfg.SMTPPassword != "smtppass" {
		t.Errorf("unexpected smtp config")
	}
	if cfg.S3Endpoint != "http://minio:9000" || cfg.S3Bucket != "uploads" || cfg.S3BaseURL != "https://cdn.example.com/uploads" {
		t.Errorf("unexpected s3 config")
	}
	if cfg.KafkaBrokers != "kafka1:9092,kafka2:9092" || cfg.KafkaTopic != "activity" {
		t.Errorf("unexpected kafka config")
	}
	if cfg.JWTSecretKey != "supersecret" || cfg.JWTExpSecond != 300 {
		t.Errorf("unexpected jwt config")
	}
	if cfg.ClientDomain != "devister.example.com" || cfg.ResetImpliesVerified {
		t.Errorf("unexpected verification config")
	}
	if cfg.RateLimit != 50 || cfg.RateLimitWindowSecond != 30 || cfg.CleanupIntervalSecond != 60 {
		t.Errorf("unexpected rate limit config")
	}
}

func TestParseConfig_InvalidNumber(t *testing.T) {
	resetEnv()
	os.Setenv("POSTGRES_PORT", "not-a-port")

	if _, err := parseConfig("nonexistent.env"); err == nil {
		t.Error("expected error for invalid POSTGRES_PORT")
	}
}

// ------------------ Full integration test ------------------
func TestRun_Success(t *testing.T) {
	ctx := context.Background()

	// ------------------ Postgres container ------------------
	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:15",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "user"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: pgReq, Started: true})
	if err != nil {
		t.Fatal(err)
	}
	defer pgContainer.Terminate(ctx)

	pgHost, _ := pgContainer.Host(ctx)
	pgPort, _ := pgContainer.MappedPort(ctx, "5432")

	// ------------------ Redis container ------------------
	redisReq := testcontainers.ContainerRequest{
		Image:        "redis:7",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: redisReq, Started: true})
	if err != nil {
		t.Fatal(err)
	}
	defer redisContainer.Terminate(ctx)

	redisHost, _ := redisContainer.Host(ctx)
	redisPort, _ := redisContainer.MappedPort(ctx, "6379")

	// ------------------ Run ------------------
	testCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cfg := config{
		AppHost:  "127.0.0.1",
		AppPort:  "8086",
		LogLevel: "debug",

		PgHost:         pgHost,
		PgPort:         pgPort.Int(),
		PgUser:         "user",
		PgPassword:     "password",
		PgDB:           "testdb",
		PgMaxOpenConns: 5,
		PgMaxIdleConns: 2,

		RedisHost: redisHost,
		RedisPort: redisPort.Int(),

		SMTPHost: "localhost",
		SMTPPort: "465",

		S3Region:  "us-east-1",
		S3Bucket:  "testbucket",
		S3BaseURL: "http://localhost:9000/testbucket",

		KafkaBrokers: "localhost:9092",
		KafkaTopic:   "devister.events",

		JWTSecretKey: "testsecret",
		JWTExpSecond: 60,

		ClientDomain:         "localhost:3000",
		ResetImpliesVerified: true,

		RateLimit:             100,
		RateLimitWindowSecond: 60,
		CleanupIntervalSecond: 300,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(testCtx, cfg)
	}()

	select {
	case <-time.After(11 * time.Second):
		t.Fatal("test timed out")
	case err := <-errCh:
		if err != nil {
			t.Fatalf("expected run to succeed, got error: %v", err)
		}
		t.Log("run completed successfully")
	}
}
