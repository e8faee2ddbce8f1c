package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/flowstate/tractor-beam/config"
	"github.com/flowstate/tractor-beam/models"
	"github.com/flowstate/tractor-beam/planning"
	"github.com/flowstate/tractor-beam/utils"
)

// One-shot pipeline regeneration. Equivalent to POST /api/pipeline/run
// but usable from cron or a shell without the server.
func main() {
	clear := flag.Bool("clear", false, "Wipe previously generated cards and strategies first")
	locationID := flag.String("location", "", "Optional: restrict the run to one location id")
	asJSON := flag.Bool("json", false, "Print the run summary as JSON")
	flag.Parse()

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}
	if err := models.MigrateAll(db); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}

	logger := config.GetLogger()
	store := models.NewPlanningStore(db, logger)
	engine := planning.NewEngine(store, store, store, store, logger)

	summary, err := engine.Run(context.Background(), planning.RunOptions{
		Clear:      *clear,
		LocationId: *locationID,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "pipeline run failed: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		out, err := utils.MarshalToJSON(summary)
		if err != nil {
			fmt.Fprintf(os.Stderr, "encode summary: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(out)
		return
	}
	fmt.Printf("run %s: %d pairs, %d cards written, %d skipped in %s\n",
		summary.RunId, summary.Pairs, summary.CardsWritten, summary.Skipped, summary.Elapsed)
}
