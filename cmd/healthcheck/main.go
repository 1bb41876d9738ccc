// Command healthcheck probes the service's liveness endpoint. It exits
// non-zero unless the service reports itself alive, which makes it suitable
// as a container HEALTHCHECK.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%s/api/ping", port))
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		os.Exit(1)
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		os.Exit(1)
	}
	if payload.Status != "alive" {
		os.Exit(1)
	}
}
