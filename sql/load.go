package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed init.sql
var initSQL string

//go:embed entries.sql
var entriesSQL string

//go:embed queries.sql
var queriesSQL string

// Function lists for verification
var EntriesFunctions = []string{
	"init_entries",
	"insert_entry",
	"select_entries_by_similarity",
	"select_entries_by_filename",
	"select_entry_filenames",
	"count_entries",
	"clear_entries",
}

var QueriesFunctions = []string{
	"init_queries",
	"insert_query",
	"select_recent_queries",
	"count_queries",
	"clear_queries",
}

// Init intializes db extensions
func Init(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	log.Println("Database extensions initialized successfully")
	return nil
}

// LoadEntriesSql loads entry-related SQL functions
func LoadEntriesSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, EntriesFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing entries functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(entriesSQL)
	if err != nil {
		return fmt.Errorf("error executing entries SQL: %w", err)
	}

	exist, err := checkFunctions(db, EntriesFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL entries functions loaded successfully")
	return nil
}

// LoadQueriesSql loads query-log-related SQL functions
func LoadQueriesSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, QueriesFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing queries functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(queriesSQL)
	if err != nil {
		return fmt.Errorf("error executing queries SQL: %w", err)
	}

	exist, err := checkFunctions(db, QueriesFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL queries functions loaded successfully")
	return nil
}

// LoadAllSql loads all SQL functions
func LoadAllSql(db *sql.DB, force bool) error {
	if err := LoadEntriesSql(db, force); err != nil {
		return err
	}

	if err := LoadQueriesSql(db, force); err != nil {
		return err
	}

	return nil
}

// checkFunctions verifies that all required functions exist in the database
func checkFunctions(db *sql.DB, sqlFunctions []string) (bool, error) {
	var allExist bool
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			log.Printf("Function %s does not exist", f)
			break
		}
	}
	return allExist, nil
}
