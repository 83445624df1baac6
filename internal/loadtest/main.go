// Command-line stress test that simulates concurrent follow / unfollow traffic
// against the API and produces CSV + HTML reports.
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
	"time"
)

const baseURL = "http://127.0.0.1:8080/api/v1"

var client = &http.Client{Timeout: 10 * time.Second}

type traveller struct {
	ID    uint64
	Email string
	Token string
}

// mutationResult 汇总一次 follow/unfollow 调用的结果，方便折叠到报告内。
type mutationResult struct {
	Actor      string
	Target     uint64
	Op         string // "follow" or "unfollow"
	StatusCode int
	ErrMessage string
	Timestamp  time.Time
}

// ======================= 基本 HTTP helper =======================

// doJSON serializes an optional JSON body and sends the request with the token.
func doJSON(method, url, token string, body any) (int, []byte, error) {
	var buf []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		buf = b
	}
	req, _ := http.NewRequest(method, url, bytes.NewBuffer(buf))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, data, nil
}

// ======================= 注册 / 登录 Helpers =======================

func registerTraveller(name, email, password string) (traveller, error) {
	body := map[string]string{"displayName": name, "email": email, "password": password}
	status, data, err := doJSON("POST", baseURL+"/users/register", "", body)
	if err != nil {
		return traveller{}, err
	}
	if status != 200 {
		return traveller{}, fmt.Errorf("register status %d body=%s", status, string(data))
	}
	var resp struct {
		User struct {
			ID uint64 `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return traveller{}, err
	}
	return traveller{ID: resp.User.ID, Email: email, Token: resp.Token}, nil
}

func follow(actor traveller, targetID uint64) (int, []byte, error) {
	return doJSON("PUT", fmt.Sprintf("%s/users/%d/follow", baseURL, targetID), actor.Token, nil)
}

func unfollow(actor traveller, targetID uint64) (int, []byte, error) {
	return doJSON("DELETE", fmt.Sprintf("%s/users/%d/unfollow", baseURL, targetID), actor.Token, nil)
}

// ======================= 基础功能连通性测试 =======================

// endpointSmokeTests exercises register/login/follow endpoints with positive and
// negative cases before the concurrent phase starts.
func endpointSmokeTests() error {
	suffix := time.Now().UnixNano() % 1000000
	password := "SmokePwd123!"

	a, err := registerTraveller("smoke-a", fmt.Sprintf("smoke-a-%d@example.com", suffix), password)
	if err != nil {
		return fmt.Errorf("register (new) failed: %v", err)
	}

	// Duplicate registration should be rejected (400).
	if status, _, err := doJSON("POST", baseURL+"/users/register", "", map[string]string{
		"displayName": "smoke-a", "email": a.Email, "password": password,
	}); err != nil || status != http.StatusBadRequest {
		return fmt.Errorf("register (duplicate) expected 400, got %d err=%v", status, err)
	}

	// Login success path.
	status, data, err := doJSON("POST", baseURL+"/users/login", "", map[string]string{
		"email": a.Email, "password": password,
	})
	if err != nil || status != http.StatusOK {
		return fmt.Errorf("login (valid) failed: status=%d err=%v body=%s", status, err, string(data))
	}

	// Login with wrong password should be rejected.
	if status, _, err := doJSON("POST", baseURL+"/users/login", "", map[string]string{
		"email": a.Email, "password": "wrong-password",
	}); err != nil || status != http.StatusBadRequest {
		return fmt.Errorf("login (invalid creds) expected 400, got %d err=%v", status, err)
	}

	b, err := registerTraveller("smoke-b", fmt.Sprintf("smoke-b-%d@example.com", suffix), password)
	if err != nil {
		return fmt.Errorf("register (second) failed: %v", err)
	}

	// Follow then duplicate follow.
	if status, _, err := follow(a, b.ID); err != nil || status != http.StatusOK {
		return fmt.Errorf("follow (valid) expected 200, got %d err=%v", status, err)
	}
	if status, _, err := follow(a, b.ID); err != nil || status != http.StatusBadRequest {
		return fmt.Errorf("follow (duplicate) expected 400, got %d err=%v", status, err)
	}

	// Unfollow then unfollow again.
	if status, _, err := unfollow(a, b.ID); err != nil || status != http.StatusOK {
		return fmt.Errorf("unfollow (valid) expected 200, got %d err=%v", status, err)
	}
	if status, _, err := unfollow(a, b.ID); err != nil || status != http.StatusBadRequest {
		return fmt.Errorf("unfollow (absent) expected 400, got %d err=%v", status, err)
	}

	log.Println("endpoint smoke tests passed: register/login/follow basic scenarios verified")
	return nil
}

// ======================= 并发测试与报告生成 =======================

// concurrentFollowTest registers a pool of travellers, then has every traveller
// follow and unfollow every other traveller concurrently. Exactly one of each
// duplicate pair of mutations may succeed; the report makes violations easy to
// spot.
func concurrentFollowTest(poolSize, maxConcurrent int, outCSV, outHTML string) error {
	suffix := time.Now().UnixNano() % 1000000
	password := "StressPwd123!"

	pool := make([]traveller, 0, poolSize)
	for i := 0; i < poolSize; i++ {
		tr, err := registerTraveller(
			fmt.Sprintf("stress-%d-%d", suffix, i),
			fmt.Sprintf("stress-%d-%d@example.com", suffix, i),
			password,
		)
		if err != nil {
			return fmt.Errorf("register pool member %d: %v", i, err)
		}
		pool = append(pool, tr)
	}

	// 每对 actor/target 并发发两次同一个变更：
	// 恰好一次应当成功，另一次应当被唯一键（或缺失行）拒绝。
	runPhase := func(op string) []mutationResult {
		type job struct {
			actor  traveller
			target uint64
		}
		jobs := make(chan job, poolSize*poolSize*2)
		results := make(chan mutationResult, poolSize*poolSize*2)

		var wg sync.WaitGroup
		worker := func() {
			defer wg.Done()
			for j := range jobs {
				var status int
				var data []byte
				var err error
				if op == "follow" {
					status, data, err = follow(j.actor, j.target)
				} else {
					status, data, err = unfollow(j.actor, j.target)
				}
				res := mutationResult{
					Actor:      j.actor.Email,
					Target:     j.target,
					Op:         op,
					StatusCode: status,
					Timestamp:  time.Now(),
				}
				if err != nil {
					res.ErrMessage = err.Error()
				} else if status != http.StatusOK && status != http.StatusBadRequest {
					res.ErrMessage = string(data)
				}
				results <- res
			}
		}

		workers := maxConcurrent
		if workers < 1 {
			workers = 10
		}
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go worker()
		}
		for _, actor := range pool {
			for _, target := range pool {
				if actor.ID == target.ID {
					continue
				}
				jobs <- job{actor: actor, target: target.ID}
				jobs <- job{actor: actor, target: target.ID}
			}
		}
		close(jobs)
		wg.Wait()
		close(results)

		var phase []mutationResult
		okByPair := make(map[string]int)
		for r := range results {
			phase = append(phase, r)
			if r.StatusCode == http.StatusOK {
				okByPair[fmt.Sprintf("%s->%d", r.Actor, r.Target)]++
			}
		}
		for pair, n := range okByPair {
			if n != 1 {
				log.Printf("[invariant violation] op=%s pair=%s successes=%d (want 1)", op, pair, n)
			}
		}
		return phase
	}

	all := runPhase("follow")
	all = append(all, runPhase("unfollow")...)

	if err := writeCSVReport(outCSV, all); err != nil {
		return err
	}
	if err := writeHTMLReport(outHTML, all); err != nil {
		log.Printf("write HTML report error: %v", err)
	}
	return nil
}

func writeCSVReport(path string, results []mutationResult) error {
	csvFile, err := os.Create(path)
	if err != nil {
		return err
	}
	defer csvFile.Close()
	w := csv.NewWriter(csvFile)
	defer w.Flush()
	_ = w.Write([]string{"Actor", "Target", "Op", "StatusCode", "ErrMessage", "Timestamp"})
	for _, r := range results {
		_ = w.Write([]string{
			r.Actor,
			fmt.Sprintf("%d", r.Target),
			r.Op,
			fmt.Sprintf("%d", r.StatusCode),
			r.ErrMessage,
			r.Timestamp.Format(time.RFC3339),
		})
	}
	return nil
}

// writeHTMLReport renders a basic table so failures are easy to eyeball.
func writeHTMLReport(path string, results []mutationResult) error {
	const tpl = `
<!doctype html>
<html>
<head><meta charset="utf-8"><title>Follow Stress Report</title>
<style>
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 8px; text-align:left }
th { background: #f4f4f4; }
.success { color: green; }
.fail { color: red; }
</style>
</head>
<body>
<h2>Follow Stress Report ({{ .GeneratedAt }})</h2>
<table>
<thead><tr><th>Actor</th><th>Target</th><th>Op</th><th>Status</th><th>Error</th><th>Timestamp</th></tr></thead>
<tbody>
{{ range .Rows }}
<tr>
<td>{{ .Actor }}</td>
<td>{{ .Target }}</td>
<td>{{ .Op }}</td>
<td>{{ .StatusCode }}</td>
<td>{{ .ErrMessage }}</td>
<td>{{ .Timestamp }}</td>
</tr>
{{ end }}
</tbody>
</table>
</body>
</html>`

	data := struct {
		GeneratedAt string
		Rows        []mutationResult
	}{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Rows:        results,
	}

	t, err := template.New("report").Parse(tpl)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.Execute(f, data)
}

// ======================= main =======================

func main() {
	poolSize := 5
	maxConcurrent := 5
	outCSV := "follow_report.csv"
	outHTML := "follow_report.html"

	if err := endpointSmokeTests(); err != nil {
		log.Fatalf("endpoint smoke tests failed: %v", err)
	}

	start := time.Now()
	if err := concurrentFollowTest(poolSize, maxConcurrent, outCSV, outHTML); err != nil {
		log.Fatalf("concurrent test failed: %v", err)
	}
	elapsed := time.Since(start)
	log.Printf("concurrent test finished in %s, CSV=%s HTML=%s\n", elapsed.String(), outCSV, outHTML)
	fmt.Println("All follow stress tests completed successfully!")
}
