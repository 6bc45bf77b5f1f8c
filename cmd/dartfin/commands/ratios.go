package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/dartfin/internal/external/dart"
	"github.com/wonny/dartfin/internal/financial"
	"github.com/wonny/dartfin/internal/ratio"
)

// ratiosCmd represents the ratios command
var ratiosCmd = &cobra.Command{
	Use:   "ratios [corp_code]",
	Short: "재무비율 계산",
	Long: `단일회사 주요계정을 조회하여 재무비율을 계산합니다.

비율:
  current_ratio  유동비율       유동자산 / 유동부채
  debt_ratio     부채비율       부채총계 / 자본총계
  profit_margin  순이익률       당기순이익 / 매출액
  roe            ROE            당기순이익 / 자본총계
  roa            ROA            당기순이익 / 자산총계

계정이 없거나, 금액을 해석할 수 없거나, 분모가 0이면 해당 비율은 생략됩니다.

Example:
  go run ./cmd/dartfin ratios 00126380
  go run ./cmd/dartfin ratios 00126380 --year 2023 --report 11012 --fs CFS`,
	Args: cobra.ExactArgs(1),
	RunE: runRatios,
}

var (
	ratiosYear   string
	ratiosReport string
	ratiosFS     string
)

func init() {
	rootCmd.AddCommand(ratiosCmd)

	ratiosCmd.Flags().StringVar(&ratiosYear, "year", "", "사업연도 (기본: 전년도)")
	ratiosCmd.Flags().StringVar(&ratiosReport, "report", string(dart.ReportAnnual), "보고서 코드 (11011|11012|11013|11014)")
	ratiosCmd.Flags().StringVar(&ratiosFS, "fs", "", "CFS(연결) | OFS(별도) | 전체")
}

func runRatios(cmd *cobra.Command, args []string) error {
	year, err := dart.ParseBusinessYear(ratiosYear, time.Now())
	if err != nil {
		return err
	}
	report, err := dart.ParseReportCode(ratiosReport)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.financial.GetReport(cmd.Context(), financial.Request{
		CorpCode: args[0],
		Year:     year,
		Report:   report,
		FSDiv:    strings.ToUpper(ratiosFS),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printHeader(out, fmt.Sprintf("%s  %s %s", args[0], year, report.Name()))
	printKeyValue(out, "DART", fmt.Sprintf("%s %s", result.Status, result.Message), 6)
	printKeyValue(out, "Items", fmt.Sprint(len(result.List)), 6)
	fmt.Fprintln(out)

	printRatios(out, a.financial.Engine().Definitions(), result.Ratios)
	return nil
}

// printRatios prints every defined ratio in definition order, marking omitted ones
func printRatios(w io.Writer, defs []ratio.Definition, result ratio.Result) {
	widths := []int{14, 22, 12}
	printTableHeader(w, []string{"ID", "NAME", "VALUE"}, widths)
	for _, d := range defs {
		value := "-"
		if v, ok := result[d.ID]; ok {
			value = fmt.Sprintf("%.2f%s", v.Value, v.Unit)
		}
		printTableRow(w, []string{d.ID, d.DisplayName, value}, widths)
	}
}
