// main.go
//
// ninewords server entry point.
//   - `ninewords` / `ninewords serve`: open storage, load the catalog, serve HTTP.
//   - `ninewords migrate`: apply embedded SQL migrations and exit.
//
// Configuration comes from the environment (optionally a .env file).

package main

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/ninewords/internal/httpserver"
	"github.com/robalobadob/ninewords/internal/prefs"
	"github.com/robalobadob/ninewords/internal/profile"
	"github.com/robalobadob/ninewords/internal/puzzle"
	"github.com/robalobadob/ninewords/internal/sqlitedb"
	"github.com/robalobadob/ninewords/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	root := &cobra.Command{
		Use:          "ninewords",
		Short:        "Daily nine-word ordering puzzle server",
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the HTTP API (default)",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations and exit",
			RunE:  runMigrate,
		},
	)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	db, err := sqlitedb.OpenMigrated(getEnv("DB_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	prefsPath := getEnv("PREFS_PATH", "./data/prefs")
	if prefsPath == ":memory:" {
		prefsPath = ""
	}
	kv, err := prefs.Open(prefs.Config{
		Path:       prefsPath,
		SyncWrites: getEnv("NODE_ENV", "") == "production",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("open prefs store")
	}
	defer kv.Close()

	catalog, err := puzzle.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load puzzle catalog")
	}

	srv := httpserver.New(httpserver.Options{
		DB:          db,
		Catalog:     catalog,
		Sessions:    store.NewMemoryStore(),
		Profiles:    profile.NewSQLStore(db),
		Prefs:       kv,
		Salt:        getEnv("DAILY_SALT", "local_dev_salt"),
		SettleDelay: envDuration("SETTLE_DELAY", 0),
	})
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Int("puzzles", catalog.Len()).Msg("starting ninewords server")
	return srv.Start(":" + port)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	db, err := sqlitedb.OpenMigrated(getEnv("DB_PATH", "./data/app.db"))
	if err != nil {
		return err
	}
	log.Info().Msg("migrations applied")
	return db.Close()
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envDuration accepts Go durations ("750ms") or bare milliseconds ("750").
func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	log.Warn().Str("key", k).Str("value", v).Msg("ignoring unparsable duration")
	return def
}
