package main

import (
	"context"
	"database/sql"
	"log"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"

	_ "modernc.org/sqlite"

	"github.com/lox/paradecast/internal/api"
	"github.com/lox/paradecast/internal/engine"
	"github.com/lox/paradecast/internal/ingest"
	"github.com/lox/paradecast/internal/power"
	"github.com/lox/paradecast/internal/store"
)

var cli struct {
	DB               string `default:"data/paradecast.db" env:"PARADECAST_DB" help:"Path to the SQLite cache database."`
	Port             string `default:"8080" env:"PARADECAST_PORT" help:"HTTP server port."`
	HistoryYears     int    `default:"10" env:"PARADECAST_HISTORY_YEARS" help:"Years of history mined per analysis."`
	SimilarTolerance int    `default:"5" env:"PARADECAST_SIMILAR_TOLERANCE" help:"Similar-date tolerance in days."`
	PowerBaseURL     string `env:"PARADECAST_POWER_URL" help:"Override the NASA POWER endpoint (for testing)."`
	PayloadRetention int    `default:"30" env:"PARADECAST_PAYLOAD_RETENTION" help:"Days to keep archived upstream payloads."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("paradecast"),
		kong.Description("Climatological suitability analysis for outdoor plans."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	db, err := sql.Open("sqlite", cli.DB)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("database migrated")

	if deleted, err := st.CleanupRawPayloads(cli.PayloadRetention); err != nil {
		log.Printf("cleanup payloads: %v", err)
	} else if deleted > 0 {
		log.Printf("cleaned up %d archived payloads", deleted)
	}

	client := power.NewClient(cli.PowerBaseURL)
	history := ingest.NewService(st, client, cli.HistoryYears, cli.SimilarTolerance, nil)
	eng := engine.New(nil)
	server := api.NewServer(st, history, eng, cli.Port, nil)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Printf("starting server on :%s", cli.Port)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
