package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// LoadTestConfig holds configuration for load testing
type LoadTestConfig struct {
	BaseURL     string
	NumLectures int
	Concurrency int
	Rounds      int
	DayOfWeek   int
}

// LoadTestResult holds the results of one round
type LoadTestResult struct {
	TotalRequests     int
	Accepted          int
	Rejected          int
	FailedReqs        int
	AvgResponseTimeMs float64
	MaxResponseTimeMs int64
	MinResponseTimeMs int64
	ThroughputRPS     float64
	ErrorsByType      map[string]int
}

// LoadTester fires concurrent adds of different lectures into one time slot
// and day for a single user. More than one accepted add means the conflict
// check lost a race.
type LoadTester struct {
	config    LoadTestConfig
	client    *http.Client
	token     string
	lectures  []string
	slotID    string
	results   LoadTestResult
	mutex     sync.Mutex
	startTime time.Time
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// NewLoadTester creates a new load tester
func NewLoadTester(config LoadTestConfig) *LoadTester {
	return &LoadTester{
		config: config,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		results: LoadTestResult{
			ErrorsByType: make(map[string]int),
		},
	}
}

func (lt *LoadTester) call(method, path string, body any, out any) (int, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return 0, err
		}
	}

	req, err := http.NewRequest(method, lt.config.BaseURL+path, &buf)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if lt.token != "" {
		req.Header.Set("Authorization", "Bearer "+lt.token)
	}

	resp, err := lt.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return resp.StatusCode, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	if resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("%s %s: %d %s", method, path, resp.StatusCode, env.Message)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

// Initialize registers a fresh user and creates the lectures and shared time slot.
func (lt *LoadTester) Initialize() error {
	fmt.Println("Initializing load test data...")

	lt.token = ""
	userName := "load" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	creds := map[string]string{"userName": userName, "password": "loadtest-password"}

	if _, err := lt.call(http.MethodPost, "/api/v1/auth/register", creds, nil); err != nil {
		return err
	}
	var token struct {
		AccessToken string `json:"accessToken"`
	}
	if _, err := lt.call(http.MethodPost, "/api/v1/auth/login", creds, &token); err != nil {
		return err
	}
	lt.token = token.AccessToken

	lt.lectures = make([]string, 0, lt.config.NumLectures)
	for i := 0; i < lt.config.NumLectures; i++ {
		var lecture struct {
			ID string `json:"id"`
		}
		if _, err := lt.call(http.MethodPost, "/api/v1/lectures", map[string]any{
			"lectureName": fmt.Sprintf("Load Test Lecture %d", i+1),
			"professor":   "Load Tester",
			"credit":      3,
			"department":  "Load Testing",
		}, &lecture); err != nil {
			return err
		}
		lt.lectures = append(lt.lectures, lecture.ID)
	}

	lt.slotID = "LOAD-" + uuid.NewString()[:8]
	if _, err := lt.call(http.MethodPost, "/api/v1/lectures/"+lt.lectures[0]+"/times", map[string]string{
		"lectureTimeId": lt.slotID,
		"startTime":     "09:00",
		"endTime":       "10:15",
	}, nil); err != nil {
		return err
	}

	fmt.Printf("User %s, %d lectures, shared time slot %s\n", userName, len(lt.lectures), lt.slotID)
	return nil
}

// RunLoadTest executes one round of concurrent adds
func (lt *LoadTester) RunLoadTest() {
	fmt.Printf("Adding %d lectures to day %d with %d concurrent clients...\n",
		len(lt.lectures), lt.config.DayOfWeek, lt.config.Concurrency)

	lt.results = LoadTestResult{ErrorsByType: make(map[string]int)}
	lt.startTime = time.Now()
	var wg sync.WaitGroup

	// Create semaphore to limit concurrent requests
	semaphore := make(chan struct{}, lt.config.Concurrency)

	for _, lectureID := range lt.lectures {
		wg.Add(1)

		go func(lectureID string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			lt.addLecture(lectureID)
		}(lectureID)
	}

	wg.Wait()

	lt.calculateMetrics()
	lt.printResults()
}

func (lt *LoadTester) addLecture(lectureID string) {
	startTime := time.Now()

	status, err := lt.call(http.MethodPost, "/api/v1/schedule/"+lectureID, map[string]any{
		"timeSlotId": lt.slotID,
		"dayOfWeek":  lt.config.DayOfWeek,
		"classroom":  "LOAD-1",
	}, nil)

	if status == 0 && err != nil {
		lt.recordError("http_request")
		return
	}
	lt.recordResponse(status, time.Since(startTime))
}

// recordResponse records the response metrics
func (lt *LoadTester) recordResponse(statusCode int, responseTime time.Duration) {
	lt.mutex.Lock()
	defer lt.mutex.Unlock()

	lt.results.TotalRequests++
	responseTimeMs := responseTime.Milliseconds()

	if lt.results.MaxResponseTimeMs < responseTimeMs {
		lt.results.MaxResponseTimeMs = responseTimeMs
	}

	if lt.results.MinResponseTimeMs == 0 || lt.results.MinResponseTimeMs > responseTimeMs {
		lt.results.MinResponseTimeMs = responseTimeMs
	}

	// Calculate running average
	currentAvg := lt.results.AvgResponseTimeMs
	currentCount := float64(lt.results.TotalRequests)
	lt.results.AvgResponseTimeMs = (currentAvg*(currentCount-1) + float64(responseTimeMs)) / currentCount

	switch {
	case statusCode == http.StatusCreated:
		lt.results.Accepted++
	case statusCode == http.StatusConflict:
		lt.results.Rejected++
	default:
		lt.results.FailedReqs++
		lt.results.ErrorsByType[fmt.Sprintf("http_%d", statusCode)]++
	}
}

func (lt *LoadTester) recordError(errorType string) {
	lt.mutex.Lock()
	defer lt.mutex.Unlock()

	lt.results.TotalRequests++
	lt.results.FailedReqs++
	lt.results.ErrorsByType[errorType]++
}

func (lt *LoadTester) calculateMetrics() {
	totalDuration := time.Since(lt.startTime)
	lt.results.ThroughputRPS = float64(lt.results.TotalRequests) / totalDuration.Seconds()
}

func (lt *LoadTester) printResults() {
	fmt.Println("\n" + strings.Repeat("=", 80))

	fmt.Printf("Requests:\n")
	fmt.Printf("  - Total: %d\n", lt.results.TotalRequests)
	fmt.Printf("  - Accepted (201): %d\n", lt.results.Accepted)
	fmt.Printf("  - Rejected (409): %d\n", lt.results.Rejected)
	fmt.Printf("  - Failed: %d\n", lt.results.FailedReqs)

	fmt.Printf("\nResponse Time Metrics:\n")
	fmt.Printf("  - Average: %.2f ms\n", lt.results.AvgResponseTimeMs)
	fmt.Printf("  - Minimum: %d ms\n", lt.results.MinResponseTimeMs)
	fmt.Printf("  - Maximum: %d ms\n", lt.results.MaxResponseTimeMs)
	fmt.Printf("  - Throughput: %.2f req/s\n", lt.results.ThroughputRPS)

	if len(lt.results.ErrorsByType) > 0 {
		fmt.Printf("\nError Breakdown:\n")
		for errorType, count := range lt.results.ErrorsByType {
			fmt.Printf("  - %s: %d\n", errorType, count)
		}
	}

	fmt.Printf("\nConflict Analysis:\n")
	switch {
	case lt.results.Accepted == 1:
		fmt.Printf("  OK: exactly one lecture holds the slot\n")
	case lt.results.Accepted > 1:
		fmt.Printf("  RACE: %d lectures were accepted into the same slot and day\n", lt.results.Accepted)
	default:
		fmt.Printf("  No lecture was accepted; check the failures above\n")
	}
	fmt.Println(strings.Repeat("=", 80))
}

// loadtestCmd represents the loadtest command
var loadtestCmd = &cobra.Command{
	Use:   "loadtest",
	Short: "Probe the API with concurrent conflicting adds",
	Long: `Register a throwaway user, create a set of lectures sharing one time
slot, then add all of them to the same day concurrently. A correct run
accepts exactly one add and rejects the rest with 409; more than one
accepted add shows the check-then-insert window between the conflict
check and the insert.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLoadTest()
	},
}

var (
	baseURL     string
	numLectures int
	concurrency int
	rounds      int
	dayOfWeek   int
)

func init() {
	rootCmd.AddCommand(loadtestCmd)

	loadtestCmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the timetable API")
	loadtestCmd.Flags().IntVar(&numLectures, "lectures", 20, "Number of lectures competing for the slot")
	loadtestCmd.Flags().IntVar(&concurrency, "concurrent", 20, "Number of concurrent clients")
	loadtestCmd.Flags().IntVar(&rounds, "rounds", 1, "Number of rounds, each with a fresh user")
	loadtestCmd.Flags().IntVar(&dayOfWeek, "day", 1, "Day of week (0-6) to add lectures to")
}

func runLoadTest() error {
	if numLectures < 2 {
		return fmt.Errorf("--lectures must be at least 2")
	}
	if concurrency < 1 {
		return fmt.Errorf("--concurrent must be positive")
	}
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return fmt.Errorf("--day must be between 0 and 6")
	}

	loadTester := NewLoadTester(LoadTestConfig{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		NumLectures: numLectures,
		Concurrency: concurrency,
		Rounds:      rounds,
		DayOfWeek:   dayOfWeek,
	})

	fmt.Println("Class Timetable Conflict Load Test")
	fmt.Println("==================================")

	races := 0
	for i := 0; i < rounds; i++ {
		fmt.Printf("\nRound %d/%d\n", i+1, rounds)
		if err := loadTester.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize round %d: %w", i+1, err)
		}
		loadTester.RunLoadTest()
		if loadTester.results.Accepted > 1 {
			races++
		}
	}

	fmt.Printf("\nRounds with more than one accepted add: %d/%d\n", races, rounds)
	return nil
}
