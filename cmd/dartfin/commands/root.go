package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	envFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dartfin",
	Short: "DART 기업 고유번호 검색 + 재무비율 서비스",
	Long: `dartfin Unified CLI

OpenDART 고유번호 카탈로그(corpCode.xml)를 인덱싱하고
단일회사 주요계정(fnlttSinglAcnt)에서 재무비율을 계산합니다.

Usage:
  go run ./cmd/dartfin [command]

Examples:
  go run ./cmd/dartfin api
  go run ./cmd/dartfin registry rebuild
  go run ./cmd/dartfin registry search 삼성
  go run ./cmd/dartfin ratios 00126380 --year 2023`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file (default: .env discovery)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
