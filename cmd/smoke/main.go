package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const baseURL = "http://localhost:8080"

// End-to-end smoke check against a running server with a live LLM
// behind it. Exercises the full pipeline on a small list with one known
// quantity mismatch and one missing spec item.
func main() {
	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting smoke test...")

	equipment := []map[string]any{
		{"Part Number": "SQD-QO120", "Description": "1-pole 20A breaker", "Qty": 10},
		{"Part Number": "SQD-QO230", "Description": "2P 30A breaker", "Qty": 3},
	}
	spec := []map[string]any{
		{"Part No.": "SQD QO120", "Item Description": "Single pole 20 amp breaker", "Quantity": 10},
		{"Part No.": "SQD QO230", "Item Description": "2-pole 30 amp breaker", "Quantity": 4},
		{"Part No.": "SQD QO250GFI", "Item Description": "2-pole 50A GFCI breaker", "Quantity": 1},
	}

	payload := map[string]any{
		"equipment_rows": equipment,
		"spec_rows":      spec,
		"options":        map[string]any{"verify": true},
	}

	report, ok := sendValidate(payload)
	if !ok {
		fmt.Println("FAILED: validate request")
		os.Exit(1)
	}

	summary, _ := report["summary"].(map[string]any)
	fmt.Printf("validation_status: %v\n", summary["validation_status"])
	fmt.Printf("verification_status: %v\n", report["verification_status"])

	if summary["validation_status"] == "PASS" {
		// The spec requires 4 of QO230 and a GFCI breaker the list
		// lacks; a PASS means the pipeline missed both.
		fmt.Println("FAILED: expected issues were not reported")
		os.Exit(1)
	}

	fmt.Println("PASSED: smoke test")
}

func sendValidate(payload map[string]any) (map[string]any, bool) {
	body, _ := json.Marshal(payload)
	resp, err := http.Post(baseURL+"/validate", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("request error: %v\n", err)
		return nil, false
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("status %d: %s\n", resp.StatusCode, string(data))
		return nil, false
	}

	var report map[string]any
	if err := json.Unmarshal(data, &report); err != nil {
		fmt.Printf("bad response JSON: %v\n", err)
		return nil, false
	}
	return report, true
}
