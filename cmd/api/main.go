package main

import (
	"expvar"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// getString returns the env value for key or fallback when it is unset or empty.
func getString(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

// getInt returns the env value for key or fallback when it is unset or not a number.
func getInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		fmt.Printf("Invalid %s, defaulting to %d\n", key, fallback)
		return fallback
	}
	return parsed
}

// NewLogger creates a new zap logger with color.
func NewLogger(level string) (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), lvl)

	return zap.New(core).Sugar(), nil
}

func loadConfig() config {
	addr := getString("ADDR", ":"+getString("PORT", "5000"))

	return config{
		addr:   addr,
		env:    getString("ENV", "development"),
		apiURL: getString("EXTERNAL_URL", "localhost"+addr),
		store:  getString("STORE_DRIVER", "mongo"),
		db: dbConfig{
			addr:         getString("DB_ADDR", ""),
			maxOpenConns: getInt("DB_MAX_OPEN_CONNS", 30),
			maxIdleTime:  getString("DB_MAX_IDLE_TIME", "15m"),
		},
		mongo: mongoConfig{
			uri:      getString("MONGO_URI", "mongodb://localhost:27017"),
			database: getString("MONGO_DATABASE", "bookreviews"),
		},
		cors: corsConfig{
			allowedOrigin: getString("CORS_ALLOWED_ORIGIN", "*"),
		},
		logLevel: getString("LOG_LEVEL", "info"),
	}
}

var version = "1.0.0"

//	@title			Book Reviews API
//	@description	Create, list, edit and delete book reviews.

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@BasePath	/

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, reading configuration from the environment")
	}

	cfg := loadConfig()

	logger, err := NewLogger(cfg.logLevel)
	if err != nil {
		fmt.Println("Error creating logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store, closeStore, err := openStorage(cfg)
	if err != nil {
		logger.Fatalw("failed to open storage", "driver", cfg.store, "error", err)
	}
	defer closeStore()
	logger.Infow("storage ready", "driver", store.Driver)

	app := &application{
		config: cfg,
		logger: logger,
		store:  store,
	}

	//Metrics collected http://localhost:5000/debug/vars
	expvar.NewString("version").Set(version)
	expvar.NewString("store_driver").Set(store.Driver)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("started_at", expvar.Func(func() any {
		return startedAt.Format(time.RFC3339)
	}))

	mux := app.mount()

	if err := app.run(mux); err != nil {
		logger.Fatal(err)
	}
}

var startedAt = time.Now()
