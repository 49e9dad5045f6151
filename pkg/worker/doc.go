// Package worker validates several feeds in parallel.
//
// Each source is handed to a Func on a bounded set of goroutines. Results
// come back in submission order:
//
//	bv := worker.NewBatchValidator(validate, 4)
//	batch := bv.ValidateBatch(ctx, []string{"a.csv", "https://example.com/geofeed.csv"})
//	for _, r := range batch.Results {
//	    if r.Error != nil {
//	        // Source could not be opened or validated
//	    }
//	    // Process r.Result
//	}
package worker
