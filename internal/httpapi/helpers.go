package httpapi

import (
	"log"
	"time"
)

const storeTimeout = 30 * time.Second

func logSaveError(runID string, err error) {
	log.Printf("[httpapi] save run=%s failed: %v", runID, err)
}
