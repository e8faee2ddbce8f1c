package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/flowstate/tractor-beam/config"
	"github.com/flowstate/tractor-beam/models"
)

// Wipes all derived pipeline output (cards and strategies). Reference
// catalogs, forecasts and historical reports are untouched.
func main() {
	yes := flag.Bool("yes", false, "Required: confirm the wipe")
	flag.Parse()

	if !*yes {
		fmt.Fprintln(os.Stderr, "refusing to wipe without --yes")
		os.Exit(1)
	}

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}

	store := models.NewPlanningStore(db, config.GetLogger())
	if err := store.ClearDerived(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "clear: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("cards and strategies cleared")
}
