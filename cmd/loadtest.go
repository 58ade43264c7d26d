package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"employee-records/internal/domain/employee"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// LoadTestConfig holds configuration for load testing
type LoadTestConfig struct {
	BaseURL         string
	ConcurrentUsers int
	RequestsPerUser int
	PageSize        int
	UseIdempotency  bool
}

// OperationStats aggregates the responses of one kind of request
type OperationStats struct {
	Requests          int
	Successful        int
	Failed            int
	AvgResponseTimeMs float64
	MaxResponseTimeMs int64
	MinResponseTimeMs int64
}

// LoadTestResult holds the results of load testing
type LoadTestResult struct {
	TotalRequests  int
	SuccessfulReqs int
	FailedReqs     int
	ThroughputRPS  float64
	Operations     map[string]*OperationStats
	ErrorsByType   map[string]int
}

func newLoadTestResult() LoadTestResult {
	return LoadTestResult{
		Operations:   make(map[string]*OperationStats),
		ErrorsByType: make(map[string]int),
	}
}

// LoadTester drives create, read, list and delete traffic against the employee API
type LoadTester struct {
	config    LoadTestConfig
	client    *http.Client
	runID     string
	results   LoadTestResult
	mutex     sync.Mutex
	startTime time.Time
}

// NewLoadTester creates a new load tester
func NewLoadTester(config LoadTestConfig) *LoadTester {
	return &LoadTester{
		config: config,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		runID:   uuid.NewString()[:8],
		results: newLoadTestResult(),
	}
}

func (lt *LoadTester) employeesURL(suffix string) string {
	return strings.TrimRight(lt.config.BaseURL, "/") + "/api/employees" + suffix
}

// RunLoadTest executes the load test
func (lt *LoadTester) RunLoadTest(ctx context.Context) {
	fmt.Printf("Starting load test with %d concurrent users...\n", lt.config.ConcurrentUsers)

	lt.startTime = time.Now()
	var wg sync.WaitGroup

	// Create semaphore to limit concurrent requests
	semaphore := make(chan struct{}, lt.config.ConcurrentUsers)

	totalIterations := lt.config.ConcurrentUsers * lt.config.RequestsPerUser

	for i := 0; i < totalIterations; i++ {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(iteration int) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			lt.simulateEmployeeLifecycle(ctx, iteration)
		}(i)

		// Stagger request starts
		time.Sleep(5 * time.Millisecond)
	}

	wg.Wait()

	lt.calculateMetrics()
	lt.printResults()
}

// simulateEmployeeLifecycle creates an employee, reads it back, lists a page
// and a filtered view, then deletes it.
func (lt *LoadTester) simulateEmployeeLifecycle(ctx context.Context, iteration int) {
	email := fmt.Sprintf("load-%s-%d-%s@example.com", lt.runID, iteration, uuid.NewString()[:8])
	body, err := json.Marshal(employee.EmployeeDto{
		FirstName: "Load",
		LastName:  fmt.Sprintf("Tester%d", iteration),
		Email:     email,
	})
	if err != nil {
		lt.recordError("create", "json_marshal")
		return
	}

	headers := map[string]string{"Content-Type": "application/json"}
	if lt.config.UseIdempotency {
		headers["Idempotency-Key"] = uuid.NewString()
	}

	status, respBody, ok := lt.do(ctx, "create", http.MethodPost, lt.employeesURL(""), body, headers)
	if !ok || status != http.StatusCreated {
		return
	}

	var created employee.EmployeeDto
	if err := json.Unmarshal(respBody, &created); err != nil {
		lt.recordError("create", "json_unmarshal")
		return
	}

	lt.do(ctx, "get", http.MethodGet, lt.employeesURL(fmt.Sprintf("/%d", created.ID)), nil, nil)
	lt.do(ctx, "paginate", http.MethodGet, lt.employeesURL(fmt.Sprintf("/pagination/%d/%d", iteration%5, lt.config.PageSize)), nil, nil)
	lt.do(ctx, "filter", http.MethodGet, lt.employeesURL("/filter?email="+lt.runID), nil, nil)
	lt.do(ctx, "delete", http.MethodDelete, lt.employeesURL(fmt.Sprintf("/%d", created.ID)), nil, nil)
}

func (lt *LoadTester) do(ctx context.Context, operation, method, url string, body []byte, headers map[string]string) (int, []byte, bool) {
	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		lt.recordError(operation, "build_request")
		return 0, nil, false
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := lt.client.Do(req)
	if err != nil {
		lt.recordError(operation, "http_request")
		return 0, nil, false
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	responseTime := time.Since(startTime)
	if err != nil {
		lt.recordError(operation, "read_body")
		return resp.StatusCode, nil, false
	}

	lt.recordResponse(operation, resp.StatusCode, responseTime)
	return resp.StatusCode, respBody, true
}

func (lt *LoadTester) operation(name string) *OperationStats {
	stats, ok := lt.results.Operations[name]
	if !ok {
		stats = &OperationStats{}
		lt.results.Operations[name] = stats
	}
	return stats
}

// recordResponse records the response metrics
func (lt *LoadTester) recordResponse(operation string, statusCode int, responseTime time.Duration) {
	lt.mutex.Lock()
	defer lt.mutex.Unlock()

	lt.results.TotalRequests++
	stats := lt.operation(operation)
	stats.Requests++
	responseTimeMs := responseTime.Milliseconds()

	if stats.MaxResponseTimeMs < responseTimeMs {
		stats.MaxResponseTimeMs = responseTimeMs
	}

	if stats.MinResponseTimeMs == 0 || stats.MinResponseTimeMs > responseTimeMs {
		stats.MinResponseTimeMs = responseTimeMs
	}

	// Calculate running average
	count := float64(stats.Requests)
	stats.AvgResponseTimeMs = (stats.AvgResponseTimeMs*(count-1) + float64(responseTimeMs)) / count

	if statusCode >= 200 && statusCode < 300 {
		lt.results.SuccessfulReqs++
		stats.Successful++
		return
	}

	lt.results.FailedReqs++
	stats.Failed++
	lt.results.ErrorsByType[fmt.Sprintf("%s_http_%d", operation, statusCode)]++
}

// recordError records an error that occurred before a response was read
func (lt *LoadTester) recordError(operation, errorType string) {
	lt.mutex.Lock()
	defer lt.mutex.Unlock()

	lt.results.TotalRequests++
	lt.results.FailedReqs++
	stats := lt.operation(operation)
	stats.Requests++
	stats.Failed++
	lt.results.ErrorsByType[operation+"_"+errorType]++
}

// calculateMetrics calculates final test metrics
func (lt *LoadTester) calculateMetrics() {
	totalDuration := time.Since(lt.startTime)
	lt.results.ThroughputRPS = float64(lt.results.TotalRequests) / totalDuration.Seconds()
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// printResults displays the load test results
func (lt *LoadTester) printResults() {
	fmt.Println("\n" + strings.Repeat("=", 80))

	fmt.Printf("Test Configuration:\n")
	fmt.Printf("  - Concurrent Users: %d\n", lt.config.ConcurrentUsers)
	fmt.Printf("  - Iterations per User: %d\n", lt.config.RequestsPerUser)
	fmt.Printf("  - Page Size: %d\n", lt.config.PageSize)
	fmt.Printf("  - Idempotency Keys: %t\n", lt.config.UseIdempotency)

	fmt.Printf("\nOverall Performance:\n")
	fmt.Printf("  - Total Requests: %d\n", lt.results.TotalRequests)
	fmt.Printf("  - Successful: %d (%.2f%%)\n", lt.results.SuccessfulReqs, percent(lt.results.SuccessfulReqs, lt.results.TotalRequests))
	fmt.Printf("  - Failed: %d (%.2f%%)\n", lt.results.FailedReqs, percent(lt.results.FailedReqs, lt.results.TotalRequests))
	fmt.Printf("  - Requests per Second: %.2f\n", lt.results.ThroughputRPS)

	names := make([]string, 0, len(lt.results.Operations))
	for name := range lt.results.Operations {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("\nResponse Time by Operation:\n")
	for _, name := range names {
		stats := lt.results.Operations[name]
		fmt.Printf("  - %-9s n=%-6d ok=%-6d avg=%.2fms min=%dms max=%dms\n",
			name, stats.Requests, stats.Successful, stats.AvgResponseTimeMs, stats.MinResponseTimeMs, stats.MaxResponseTimeMs)
	}

	if len(lt.results.ErrorsByType) > 0 {
		fmt.Printf("\nError Breakdown:\n")
		for errorType, count := range lt.results.ErrorsByType {
			fmt.Printf("  - %s: %d\n", errorType, count)
		}
	}

	fmt.Printf("\nPerformance Analysis:\n")
	lt.analyzePerformance()
}

// analyzePerformance provides performance insights
func (lt *LoadTester) analyzePerformance() {
	successRate := percent(lt.results.SuccessfulReqs, lt.results.TotalRequests)

	slowest := 0.0
	for _, stats := range lt.results.Operations {
		if stats.AvgResponseTimeMs > slowest {
			slowest = stats.AvgResponseTimeMs
		}
	}

	if slowest > 1000 {
		fmt.Printf("  ⚠️  High average response time (>1s) indicates potential bottlenecks\n")
	} else if slowest > 500 {
		fmt.Printf("  ⚠️  Moderate response time, monitor under higher load\n")
	} else {
		fmt.Printf("  ✅ Good response time performance\n")
	}

	if successRate < 50 {
		fmt.Printf("  ❌ Low success rate indicates system overload or issues\n")
	} else if successRate < 80 {
		fmt.Printf("  ⚠️  Moderate success rate, check the error breakdown\n")
	} else {
		fmt.Printf("  ✅ Good success rate\n")
	}

	if lt.results.ThroughputRPS < 10 {
		fmt.Printf("  ❌ Low throughput, system may not handle production load\n")
	} else if lt.results.ThroughputRPS < 50 {
		fmt.Printf("  ⚠️  Moderate throughput, monitor scaling requirements\n")
	} else {
		fmt.Printf("  ✅ Good throughput performance\n")
	}
}

// RunConcurrencyStressTest tests system under increasing concurrent load
func (lt *LoadTester) RunConcurrencyStressTest(ctx context.Context) {
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("CONCURRENCY STRESS TEST")
	fmt.Println(strings.Repeat("=", 80))

	concurrencyLevels := []int{10, 50, 100, 200}

	for _, concurrency := range concurrencyLevels {
		if ctx.Err() != nil {
			return
		}
		fmt.Printf("\nTesting with %d concurrent users...\n", concurrency)

		originalConfig := lt.config
		lt.config.ConcurrentUsers = concurrency
		lt.config.RequestsPerUser = 5

		lt.results = newLoadTestResult()
		lt.RunLoadTest(ctx)

		time.Sleep(2 * time.Second)

		lt.config = originalConfig
	}
}

// loadtestCmd represents the loadtest command
var loadtestCmd = &cobra.Command{
	Use:   "loadtest",
	Short: "Run load tests against the Employee Records API",
	Long: `Run load tests against a running Employee Records API.
Each simulated user creates an employee, reads it back, lists a page and an
email-filtered view, then deletes the employee. Results include per-operation
response times, throughput and an error breakdown. An optional stress test
repeats the run with increasing concurrency levels.`,
	Run: func(cmd *cobra.Command, args []string) {
		runLoadTest(cmd.Context())
	},
}

var (
	baseURL         string
	concurrentUsers int
	requestsPerUser int
	pageSize        int
	useIdempotency  bool
	stressTest      bool
)

func init() {
	rootCmd.AddCommand(loadtestCmd)

	loadtestCmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the employee API")
	loadtestCmd.Flags().IntVar(&concurrentUsers, "concurrent", 50, "Number of concurrent users")
	loadtestCmd.Flags().IntVar(&requestsPerUser, "requests", 10, "Number of lifecycles per user")
	loadtestCmd.Flags().IntVar(&pageSize, "page-size", 20, "Page size for pagination requests")
	loadtestCmd.Flags().BoolVar(&useIdempotency, "idempotency", false, "Send an Idempotency-Key with every create")
	loadtestCmd.Flags().BoolVar(&stressTest, "stress", false, "Run concurrency stress test")
}

func runLoadTest(ctx context.Context) {
	config := LoadTestConfig{
		BaseURL:         baseURL,
		ConcurrentUsers: concurrentUsers,
		RequestsPerUser: requestsPerUser,
		PageSize:        pageSize,
		UseIdempotency:  useIdempotency,
	}

	loadTester := NewLoadTester(config)

	fmt.Println("Employee Records Load Test")
	fmt.Println("==========================")

	loadTester.RunLoadTest(ctx)

	if stressTest {
		loadTester.RunConcurrencyStressTest(ctx)
	}
}
