package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/finbooks/finbooks/internal/api/dto"
	"github.com/finbooks/finbooks/internal/config"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const (
	NUM_INVOICES     = 500
	BATCH_SIZE       = 25  // Invoices launched per batch
	REQUESTS_PER_SEC = 10  // Rate limit: requests per second
	MAX_RETRIES      = 2   // Maximum number of retries for failed requests
	INITIAL_BACKOFF  = 200 // Initial backoff in milliseconds
	API_ENDPOINT     = "http://localhost:8080/v1/sales-invoices"
	TIMEOUT_SECONDS  = 10
)

// CatalogLine is a line item template the generator picks from.
type CatalogLine struct {
	Description string
	HSNSAC      string
	Rate        int64
	GSTRate     int64
}

var catalogLines = []CatalogLine{
	{Description: "Steel bracket 50mm", HSNSAC: "7308", Rate: 150, GSTRate: 18},
	{Description: "Copper wire 1.5mm per metre", HSNSAC: "8544", Rate: 42, GSTRate: 18},
	{Description: "PVC conduit 25mm", HSNSAC: "3917", Rate: 65, GSTRate: 18},
	{Description: "LED panel light 18W", HSNSAC: "9405", Rate: 480, GSTRate: 12},
	{Description: "Cement bag 50kg", HSNSAC: "2523", Rate: 390, GSTRate: 28},
	{Description: "Site installation charges", HSNSAC: "9954", Rate: 1200, GSTRate: 18},
	{Description: "Transport and handling", HSNSAC: "9965", Rate: 850, GSTRate: 5},
}

type BatchResult struct {
	BatchNumber  int
	StartTime    time.Time
	EndTime      time.Time
	InvoiceCount int
}

// bulkCustomerIDs is used when no CUSTOMER_ID is provided. Replace
// these with customer IDs from your tenant, or run seed-demo first and
// pass one of its IDs via -customer-id.
var bulkCustomerIDs = []string{
	"cust_01HKG8QWERTY123",
	"cust_02HKG8ASDFGH456",
	"cust_03HKG8ZXCVBN789",
}

// generateInvoice creates a random invoice request. Lines carry no item
// IDs so the run does not depend on seeded inventory; totals are left
// for the server to compute.
func generateInvoice(index int) dto.CreateInvoiceRequest {
	customerIDs := bulkCustomerIDs
	if id := os.Getenv("CUSTOMER_ID"); id != "" {
		customerIDs = []string{id}
	}

	lineCount := 1 + rand.Intn(3)
	lines := make([]dto.InvoiceLineItemRequest, 0, lineCount)
	for j := 0; j < lineCount; j++ {
		cl := catalogLines[(index+j)%len(catalogLines)]
		lines = append(lines, dto.InvoiceLineItemRequest{
			Description: cl.Description,
			HSNSAC:      cl.HSNSAC,
			Quantity:    types.NewFlexDecimal(decimal.NewFromInt(randInt64(1, 10))),
			Rate:        types.NewFlexDecimal(decimal.NewFromInt(cl.Rate)),
			TaxRate:     types.NewFlexDecimal(decimal.NewFromInt(cl.GSTRate)),
		})
	}

	// Generate an invoice date within the last 72 hours
	invoiceDate := time.Now().Add(-time.Duration(randInt64(0, 72)) * time.Hour)
	dueDate := invoiceDate.AddDate(0, 0, 30)

	return dto.CreateInvoiceRequest{
		InvoiceDate: types.FlexTime{Time: &invoiceDate},
		DueDate:     types.FlexTime{Time: &dueDate},
		CustomerID:  customerIDs[rand.Intn(len(customerIDs))],
		LineItems:   lines,
	}
}

// randInt64 generates a random int64 between min and max
func randInt64(min, max int64) int64 {
	return min + rand.Int63n(max-min+1)
}

func apiEndpoint() string {
	if base := os.Getenv("API_URL"); base != "" {
		return strings.TrimRight(base, "/") + "/v1/sales-invoices"
	}
	return API_ENDPOINT
}

func postInvoice(invoice dto.CreateInvoiceRequest, limiter *rate.Limiter, wg *sync.WaitGroup, results chan<- time.Duration, errors chan<- error) {
	defer wg.Done()

	// Rate limiting
	err := limiter.Wait(context.Background())
	if err != nil {
		errors <- fmt.Errorf("rate limiter error: %v", err)
		return
	}

	jsonData, err := json.Marshal(invoice)
	if err != nil {
		errors <- fmt.Errorf("JSON marshal error: %v", err)
		return
	}

	start := time.Now()

	// Create custom HTTP client with timeout
	client := &http.Client{
		Timeout: time.Duration(TIMEOUT_SECONDS) * time.Second,
	}

	// Retry logic
	var lastErr error
	for attempt := 0; attempt <= MAX_RETRIES; attempt++ {
		if attempt > 0 {
			// Exponential backoff
			backoff := time.Duration(INITIAL_BACKOFF*attempt) * time.Millisecond
			time.Sleep(backoff)
		}

		req, err := http.NewRequest("POST", apiEndpoint(), bytes.NewBuffer(jsonData))
		if err != nil {
			lastErr = fmt.Errorf("error creating request: %v", err)
			continue
		}
		req.Header.Add("Content-Type", "application/json")
		req.Header.Add("Accept", "application/json")
		if token := os.Getenv("API_TOKEN"); token != "" {
			req.Header.Add("Authorization", "Bearer "+token)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request error: %v", err)
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			resp.Body.Close()
			results <- time.Since(start)
			return
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	errors <- lastErr
}

// BulkCreateInvoices load tests invoice creation against a running API.
// Every request goes through the full pipeline, so number allocation
// and totals calculation are exercised under concurrency.
func BulkCreateInvoices() error {
	logger, err := logger.NewLogger(config.GetDefaultConfig())
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}

	logger.Info("Starting invoice load test...")
	logger.Infof("Sending %d invoices to %s in batches of %d with rate limit of %d req/s",
		NUM_INVOICES, apiEndpoint(), BATCH_SIZE, REQUESTS_PER_SEC)

	// Create rate limiter
	limiter := rate.NewLimiter(rate.Limit(REQUESTS_PER_SEC), 1)

	var wg sync.WaitGroup
	results := make(chan time.Duration, NUM_INVOICES)
	errors := make(chan error, NUM_INVOICES)

	// Track metrics
	start := time.Now()
	successCount := 0
	errorCount := 0
	batches := make([]BatchResult, 0)

	// Process in batches
	for i := 0; i < NUM_INVOICES; i += BATCH_SIZE {
		batchStart := time.Now()

		batchSize := BATCH_SIZE
		if i+BATCH_SIZE > NUM_INVOICES {
			batchSize = NUM_INVOICES - i
		}

		// Launch batch of requests
		for j := 0; j < batchSize; j++ {
			invoice := generateInvoice(i + j)
			wg.Add(1)
			go postInvoice(invoice, limiter, &wg, results, errors)
		}

		// Wait for batch to complete
		wg.Wait()

		batch := BatchResult{
			BatchNumber:  i/BATCH_SIZE + 1,
			StartTime:    batchStart,
			EndTime:      time.Now(),
			InvoiceCount: batchSize,
		}
		batches = append(batches, batch)

		logger.Infof("Processed batch %d: %d/%d invoices in %v seconds",
			batch.BatchNumber, i+batchSize, NUM_INVOICES, batch.EndTime.Sub(batch.StartTime).Seconds())

		// Add small delay between batches
		time.Sleep(time.Second)
	}

	// Close channels
	close(results)
	close(errors)

	// Calculate metrics
	var totalDuration time.Duration
	var maxDuration time.Duration
	var minDuration = time.Hour // Start with a large value

	for duration := range results {
		successCount++
		totalDuration += duration
		if duration > maxDuration {
			maxDuration = duration
		}
		if duration < minDuration {
			minDuration = duration
		}
	}

	for err := range errors {
		errorCount++
		logger.Errorf("Error: %v", err)
	}

	// Print results
	totalTime := time.Since(start)

	logger.Info("Invoice load test completed!")
	logger.Info("Results:")
	logger.Infof("Total Time: %v", totalTime)
	logger.Infof("Successful Requests: %d", successCount)
	logger.Infof("Failed Requests: %d", errorCount)
	if successCount > 0 {
		logger.Infof("Average Request Duration: %v", totalDuration/time.Duration(successCount))
		logger.Infof("Min Request Duration: %v", minDuration)
		logger.Infof("Max Request Duration: %v", maxDuration)
		logger.Infof("Requests per Second: %.2f", float64(successCount)/totalTime.Seconds())
	}

	// Print batch information
	logger.Info("\nBatch Details:")
	for _, batch := range batches {
		logger.Infof("Batch %d: Invoices=%d, Duration=%v",
			batch.BatchNumber,
			batch.InvoiceCount,
			batch.EndTime.Sub(batch.StartTime))
	}

	return nil
}
