package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"
)

// GivePayload mirrors the POST /api/v1/gives body
type GivePayload struct {
	GiverID     string `json:"giverId"`
	RecipientID string `json:"recipientId"`
	Amount      int64  `json:"amount"`
	Note        string `json:"note,omitempty"`
	ChannelID   string `json:"channelId,omitempty"`
}

// Outcome classifies a single response
type Outcome string

const (
	OutcomeAdmitted Outcome = "admitted"
	OutcomeQuota    Outcome = "quota_exceeded"
	OutcomeRejected Outcome = "rejected"
	OutcomeFailed   Outcome = "failed"
)

// TestResult contains metrics for a single request
type TestResult struct {
	Outcome      Outcome
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests     int
	Outcomes          map[Outcome]int
	TotalTime         time.Duration
	MinResponseTime   time.Duration
	MaxResponseTime   time.Duration
	TotalResponseTime time.Duration
	ResponseTimes     []time.Duration
	ErrorCounts       map[string]int
	GiverStats        map[string]int
	ScenarioStats     map[string]int
	Lock              sync.Mutex
}

func (s *TestStats) completed() int {
	total := 0
	for _, n := range s.Outcomes {
		total += n
	}
	return total
}

// GiveScenario defines an amount and note to send
type GiveScenario struct {
	Name   string
	Amount int64
	Note   string
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	userIDsStr := flag.String("u", "U001,U002,U003", "Comma-separated list of user IDs giving to each other")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	channelID := flag.String("channel", "C-LOAD", "Channel id attached to every give")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	flag.Parse()

	var userIDs []string
	for _, id := range strings.Split(*userIDsStr, ",") {
		if id = strings.TrimSpace(id); id != "" {
			userIDs = append(userIDs, id)
		}
	}
	if len(userIDs) < 2 {
		fmt.Println("At least two user IDs are needed so givers have someone to give to")
		return
	}

	scenarios := []GiveScenario{
		{"Single", 1, "thanks for the review"},
		{"Double", 2, "great demo today"},
		{"Triple", 3, "saved the release"},
		{"No note", 1, ""},
	}

	fmt.Printf("Load testing gives across %d users: %v\n", len(userIDs), userIDs)
	fmt.Printf("Give scenarios: %d\n", len(scenarios))
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)
	fmt.Printf("Delay between requests: %d ms\n", *delayMs)

	stats := &TestStats{
		TotalRequests:   *totalRequests,
		Outcomes:        make(map[Outcome]int),
		MinResponseTime: time.Hour,
		ErrorCounts:     make(map[string]int),
		ResponseTimes:   make([]time.Duration, 0, *totalRequests),
		GiverStats:      make(map[string]int),
		ScenarioStats:   make(map[string]int),
	}

	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	fmt.Println("Starting worker goroutines...")
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(*baseURL, *channelID, *delayMs, userIDs, scenarios, jobs, results, stats)
		}()
	}

	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for result := range results {
			stats.Lock.Lock()
			stats.Outcomes[result.Outcome]++
			if result.Error != nil {
				stats.ErrorCounts[result.Error.Error()]++
			}

			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			stats.TotalResponseTime += result.ResponseTime
			if result.ResponseTime < stats.MinResponseTime {
				stats.MinResponseTime = result.ResponseTime
			}
			if result.ResponseTime > stats.MaxResponseTime {
				stats.MaxResponseTime = result.ResponseTime
			}
			stats.Lock.Unlock()
		}
	}()

	startTime := time.Now()
	fmt.Println("Test running...")

	ticker := time.NewTicker(1 * time.Second)
	go func() {
		for range ticker.C {
			stats.Lock.Lock()
			if completed := stats.completed(); completed > 0 {
				fmt.Printf("Progress: %d/%d requests completed (%.1f%%)\n",
					completed, stats.TotalRequests, float64(completed)/float64(stats.TotalRequests)*100)
			}
			stats.Lock.Unlock()
		}
	}()

	wg.Wait()
	close(results)
	<-collected
	ticker.Stop()

	stats.TotalTime = time.Since(startTime)
	printResults(stats)
}

func worker(baseURL, channelID string, delayMs int, userIDs []string,
	scenarios []GiveScenario, jobs <-chan int, results chan<- TestResult, stats *TestStats) {

	client := &http.Client{
		Timeout: 10 * time.Second,
	}
	apiURL := baseURL + "/api/v1/gives"

	for range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		giver := userIDs[rand.Intn(len(userIDs))]
		recipient := giver
		for recipient == giver {
			recipient = userIDs[rand.Intn(len(userIDs))]
		}
		scenario := scenarios[rand.Intn(len(scenarios))]

		stats.Lock.Lock()
		stats.GiverStats[giver]++
		stats.ScenarioStats[scenario.Name]++
		stats.Lock.Unlock()

		jsonData, err := json.Marshal(GivePayload{
			GiverID:     giver,
			RecipientID: recipient,
			Amount:      scenario.Amount,
			Note:        scenario.Note,
			ChannelID:   channelID,
		})
		if err != nil {
			results <- TestResult{Outcome: OutcomeFailed, Error: err}
			continue
		}

		req, err := http.NewRequest(http.MethodPost, apiURL, bytes.NewBuffer(jsonData))
		if err != nil {
			results <- TestResult{Outcome: OutcomeFailed, Error: err}
			continue
		}
		req.Header.Set("Content-Type", "application/json")

		start := time.Now()
		resp, err := client.Do(req)
		result := TestResult{ResponseTime: time.Since(start)}

		if err != nil {
			result.Outcome = OutcomeFailed
			result.Error = err
		} else {
			result.StatusCode = resp.StatusCode
			switch {
			case resp.StatusCode == http.StatusCreated:
				result.Outcome = OutcomeAdmitted
			case resp.StatusCode == http.StatusTooManyRequests:
				result.Outcome = OutcomeQuota
			case resp.StatusCode >= 400 && resp.StatusCode < 500:
				result.Outcome = OutcomeRejected
				result.Error = fmt.Errorf("HTTP status code %d", resp.StatusCode)
			default:
				result.Outcome = OutcomeFailed
				result.Error = fmt.Errorf("HTTP status code %d", resp.StatusCode)
			}
			resp.Body.Close()
		}

		results <- result
	}
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)*p/100]
}

func printResults(stats *TestStats) {
	total := float64(stats.TotalRequests)
	admitted := stats.Outcomes[OutcomeAdmitted]
	// Quota rejections are correct answers, not failures
	answered := admitted + stats.Outcomes[OutcomeQuota] + stats.Outcomes[OutcomeRejected]

	answeredTps := float64(answered) / stats.TotalTime.Seconds()
	admittedTps := float64(admitted) / stats.TotalTime.Seconds()

	var avgResponseTime time.Duration
	if len(stats.ResponseTimes) > 0 {
		avgResponseTime = stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))
	}

	sortedTimes := slices.Clone(stats.ResponseTimes)
	slices.Sort(sortedTimes)

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	for _, outcome := range []Outcome{OutcomeAdmitted, OutcomeQuota, OutcomeRejected, OutcomeFailed} {
		count := stats.Outcomes[outcome]
		fmt.Printf("%-20s %d (%.1f%%)\n", string(outcome)+":", count, float64(count)/total*100)
	}
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())

	fmt.Println("\n----------------- PERFORMANCE -----------------")
	fmt.Printf("Answered TPS:        %.2f (admitted + rejected / total time)\n", answeredTps)
	fmt.Printf("Admitted TPS:        %.2f (ledger appends / total time)\n", admittedTps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avgResponseTime)
	fmt.Printf("Minimum Response:    %v\n", stats.MinResponseTime)
	fmt.Printf("Maximum Response:    %v\n", stats.MaxResponseTime)
	fmt.Printf("P50 Response:        %v\n", percentile(sortedTimes, 50))
	fmt.Printf("P90 Response:        %v\n", percentile(sortedTimes, 90))
	fmt.Printf("P95 Response:        %v\n", percentile(sortedTimes, 95))
	fmt.Printf("P99 Response:        %v\n", percentile(sortedTimes, 99))

	fmt.Println("\n----------------- GIVER DISTRIBUTION -----------------")
	for giver, count := range stats.GiverStats {
		fmt.Printf("%-15s: %d requests (%.1f%%)\n", giver, count, float64(count)/total*100)
	}

	fmt.Println("\n----------------- SCENARIO DISTRIBUTION -----------------")
	for scenario, count := range stats.ScenarioStats {
		fmt.Printf("%-15s: %d requests (%.1f%%)\n", scenario, count, float64(count)/total*100)
	}

	if len(stats.ErrorCounts) > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d (%.1f%%)\n", errMsg, count, float64(count)/total*100)
		}
	}

	fmt.Println("\n================= CONCLUSION =================")
	if stats.Outcomes[OutcomeFailed] == 0 {
		fmt.Printf("All %d requests were answered (%.2f TPS)\n", answered, answeredTps)
	} else {
		fmt.Printf("%d requests failed at the transport or server level\n", stats.Outcomes[OutcomeFailed])
	}
	fmt.Println("================================================")
}
