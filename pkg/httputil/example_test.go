package httputil_test

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/dartfin/pkg/config"
	"github.com/wonny/dartfin/pkg/httputil"
	"github.com/wonny/dartfin/pkg/logger"
)

// Example_basic demonstrates basic HTTP client usage
func Example_basic() {
	cfg := &config.Config{
		Env:      "production",
		LogLevel: "info",
	}
	log := logger.New(cfg)

	client := httputil.New(cfg, log)

	resp, err := client.Get(context.Background(), "https://opendart.fss.or.kr/api/corpCode.xml?crtfc_key=KEY")
	if err != nil {
		fmt.Printf("Request failed: %v\n", err)
		return
	}
	defer resp.Body.Close()

	fmt.Printf("Status: %d\n", resp.StatusCode)
}

// Example_throttled demonstrates a client throttled to 5 requests per second
func Example_throttled() {
	cfg := &config.Config{
		Env:      "production",
		LogLevel: "info",
	}
	log := logger.New(cfg)

	client := httputil.New(cfg, log).
		WithRetry(5, 2*time.Second).
		WithLocalLimit(5, 1)

	status, _, body, err := client.GetBytes(context.Background(), "https://opendart.fss.or.kr/api/company.json?crtfc_key=KEY&corp_code=00126380")
	if err != nil {
		fmt.Printf("Request failed after retries: %v\n", err)
		return
	}

	fmt.Printf("Status: %d, %d bytes\n", status, len(body))
}
