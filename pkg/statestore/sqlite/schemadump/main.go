package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"codeberg.org/miketth/win-ime-switch/pkg/logging"
	"codeberg.org/miketth/win-ime-switch/pkg/statestore/sqlite"
	"codeberg.org/miketth/win-ime-switch/pkg/statestore/sqlite/migrations"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("error: %+v", err)
	}
}

func run() error {
	path := flag.String("path", "", "path to dump the schema to")
	debug := flag.Bool("debug", false, "use debug level logging")
	flag.Parse()

	if *path == "" {
		return errors.New("missing -path flag")
	}

	log, err := logging.New(*debug, false)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	log.Debug("creating empty database")
	db, err := sql.Open("sqlite3", "file::memory:?cache=shared")
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	log.Debug("applying migrations")
	if err := migrations.Migrate(db, log); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	file, err := os.Create(*path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	log.Debug("dumping schema")
	if err := dumpSchema(sqlite.New(db), file); err != nil {
		return fmt.Errorf("dump schema: %w", err)
	}

	return nil
}

func dumpSchema(db *sqlite.Queries, w io.Writer) error {
	statements, err := db.DumpSchema(context.Background())
	if err != nil {
		return fmt.Errorf("dump statements: %w", err)
	}

	for _, statement := range statements {
		if _, err := fmt.Fprintf(w, "%s;\n\n", statement); err != nil {
			return fmt.Errorf("write file: %w", err)
		}
	}

	return nil
}
