package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/dartfin/internal/registry"
)

// registryCmd represents the registry command
var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "고유번호 레지스트리 관리",
	Long: `DART 고유번호 카탈로그(corpCode.xml)를 관리합니다.

Subcommands:
  rebuild  - 카탈로그 다운로드(또는 로컬 zip) 후 재구축 및 저장
  search   - 회사명 부분일치 검색 (최대 10건)
  lookup   - 고유번호로 조회
  export   - CSV / JSON 내보내기
  stats    - 현재 스냅샷 정보

Example:
  go run ./cmd/dartfin registry rebuild
  go run ./cmd/dartfin registry rebuild --from-zip corpCode.zip
  go run ./cmd/dartfin registry search 삼성
  go run ./cmd/dartfin registry export --format csv --out corp_codes.csv`,
}

var (
	rebuildFromZip string
	exportFormat   string
	exportOut      string
)

var (
	registryRebuildCmd = &cobra.Command{
		Use:   "rebuild",
		Short: "카탈로그 재구축",
		Args:  cobra.NoArgs,
		RunE:  runRegistryRebuild,
	}

	registrySearchCmd = &cobra.Command{
		Use:   "search [query]",
		Short: "회사명 검색",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRegistrySearch,
	}

	registryLookupCmd = &cobra.Command{
		Use:   "lookup [corp_code]",
		Short: "고유번호 조회",
		Args:  cobra.ExactArgs(1),
		RunE:  runRegistryLookup,
	}

	registryExportCmd = &cobra.Command{
		Use:   "export",
		Short: "CSV / JSON 내보내기",
		Args:  cobra.NoArgs,
		RunE:  runRegistryExport,
	}

	registryStatsCmd = &cobra.Command{
		Use:   "stats",
		Short: "스냅샷 정보",
		Args:  cobra.NoArgs,
		RunE:  runRegistryStats,
	}
)

func init() {
	rootCmd.AddCommand(registryCmd)
	registryCmd.AddCommand(registryRebuildCmd)
	registryCmd.AddCommand(registrySearchCmd)
	registryCmd.AddCommand(registryLookupCmd)
	registryCmd.AddCommand(registryExportCmd)
	registryCmd.AddCommand(registryStatsCmd)

	registryRebuildCmd.Flags().StringVar(&rebuildFromZip, "from-zip", "", "다운로드 대신 로컬 corpCode.zip 사용")
	registryExportCmd.Flags().StringVar(&exportFormat, "format", registry.FormatCSV, "csv | json")
	registryExportCmd.Flags().StringVar(&exportOut, "out", "-", "출력 파일 (- = stdout)")
}

func runRegistryRebuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	a, err := newApp(ctx, rebuildFromZip == "")
	if err != nil {
		return err
	}
	defer a.Close()

	printHeader(out, "Registry Rebuild")

	var snap *registry.Snapshot
	if rebuildFromZip != "" {
		archive, err := os.ReadFile(rebuildFromZip)
		if err != nil {
			return fmt.Errorf("read %s: %w", rebuildFromZip, err)
		}
		snap, err = a.manager.RebuildFrom(ctx, archive)
		if err != nil {
			return err
		}
	} else {
		snap, err = a.manager.Refresh(ctx)
		if err != nil {
			return err
		}
	}

	printSnapshot(out, a.manager.Stats())
	printSuccess(out, fmt.Sprintf("Registry rebuilt (version %d, %d companies)", snap.Version, snap.Len()))
	return nil
}

func runRegistrySearch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.manager.Init(cmd.Context()); err != nil {
		return fmt.Errorf("init registry: %w", err)
	}

	query := strings.Join(args, " ")
	results := a.manager.Index().Search(query)

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		printWarning(out, fmt.Sprintf("No company matches %q", query))
		return nil
	}
	printCompanies(out, results)
	return nil
}

func runRegistryLookup(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.manager.Init(cmd.Context()); err != nil {
		return fmt.Errorf("init registry: %w", err)
	}

	company, err := a.manager.Index().GetByCode(args[0])
	if errors.Is(err, registry.ErrNotFound) {
		return fmt.Errorf("no company with corp_code %s", args[0])
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printHeader(out, company.CorpName)
	printKeyValue(out, "corp_code", company.CorpCode, 11)
	printKeyValue(out, "stock_code", orDash(company.StockCode), 11)
	printKeyValue(out, "modify_date", company.ModifyDate, 11)
	return nil
}

func runRegistryExport(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.manager.Init(cmd.Context()); err != nil {
		return fmt.Errorf("init registry: %w", err)
	}

	companies := a.manager.Index().Snapshot().Companies()

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "-" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		defer f.Close()
		w = f
	}

	if err := registry.Export(w, exportFormat, companies); err != nil {
		return err
	}

	if exportOut != "-" {
		printSuccess(cmd.OutOrStdout(), fmt.Sprintf("%d companies written to %s", len(companies), exportOut))
	}
	return nil
}

func runRegistryStats(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.manager.Init(cmd.Context()); err != nil {
		return fmt.Errorf("init registry: %w", err)
	}

	out := cmd.OutOrStdout()
	printHeader(out, "Registry")
	printSnapshot(out, a.manager.Stats())
	return nil
}

func printSnapshot(w io.Writer, stats registry.Stats) {
	printKeyValue(w, "Version", fmt.Sprint(stats.Version), 8)
	printKeyValue(w, "Source", stats.Source, 8)
	printKeyValue(w, "Built", stats.BuiltAt.Format("2006-01-02 15:04:05"), 8)
	printKeyValue(w, "Count", fmt.Sprintf("%d (listed %d)", stats.Count, stats.Listed), 8)
}

func printCompanies(w io.Writer, companies []registry.Company) {
	widths := []int{10, 30, 10, 11}
	printTableHeader(w, []string{"CORP_CODE", "CORP_NAME", "STOCK", "MODIFIED"}, widths)
	for _, c := range companies {
		printTableRow(w, []string{c.CorpCode, c.CorpName, orDash(c.StockCode), c.ModifyDate}, widths)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
