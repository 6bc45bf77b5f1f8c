package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/dartfin/internal/api"
	"github.com/wonny/dartfin/internal/api/handlers"
	"github.com/wonny/dartfin/internal/scheduler"
	"github.com/wonny/dartfin/internal/scheduler/jobs"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- 저장된 고유번호 스냅샷 적재 (없으면 DART에서 다운로드)
- 회사 검색 / 재무정보 + 재무비율 엔드포인트 제공
- (옵션) 고유번호 카탈로그 정기 갱신

Endpoints:
  GET  /health
  GET  /search_company?query=삼성
  GET  /get_financial_data?corp_code=&bsns_year=&reprt_code=&fs_div=
  GET  /api/companies/{corp_code}
  GET  /api/companies/{corp_code}/profile
  GET  /api/companies/{corp_code}/disclosures?days=90
  GET  /api/ratios
  GET  /api/registry
  POST /api/registry/refresh

Example:
  go run ./cmd/dartfin api
  go run ./cmd/dartfin api --port 8080 --with-scheduler`,
	RunE: runAPIServer,
}

var (
	apiPort          string
	apiWithScheduler bool
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT 환경변수)")
	apiCmd.Flags().BoolVar(&apiWithScheduler, "with-scheduler", false, "고유번호 카탈로그 정기 갱신 함께 실행")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== dartfin API Server ===")

	// 1. Wire components
	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	// 2. Load registry snapshot
	if err := a.manager.Init(ctx); err != nil {
		return fmt.Errorf("init registry: %w", err)
	}

	// 3. Optional in-process refresh schedule
	if apiWithScheduler {
		sched := scheduler.New(a.log)
		if err := sched.AddJob(jobs.NewRegistryRefreshJob(a.manager, a.cfg.Registry.RefreshSchedule, a.log)); err != nil {
			return fmt.Errorf("schedule registry refresh: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// 4. Handlers + router
	index := a.manager.Index()
	router := api.NewRouter(api.Handlers{
		Company:   handlers.NewCompanyHandler(index, a.financial, a.log),
		Financial: handlers.NewFinancialHandler(a.financial, a.log),
		Registry:  handlers.NewRegistryHandler(a.manager, a.log),
	}, a.log)

	// 5. Start server with graceful shutdown
	server := api.New(a.cfg, a.log, router)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stats := a.manager.Stats()
	fmt.Fprintf(out, "\n✅ Server running on http://localhost:%s (%d companies)\n", a.cfg.Port, stats.Count)
	fmt.Fprintln(out, "\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	a.log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	a.log.Info("Server stopped")
	return nil
}
