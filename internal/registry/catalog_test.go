package registry

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `<?xml version="1.0" encoding="UTF-8"?>
<result>
    <list>
        <corp_code>00434003</corp_code>
        <corp_name>다코</corp_name>
        <stock_code> </stock_code>
        <modify_date>20170630</modify_date>
    </list>
    <list>
        <corp_code>00126380</corp_code>
        <corp_name>삼성전자</corp_name>
        <stock_code>005930</stock_code>
        <modify_date>20230110</modify_date>
    </list>
    <list>
        <corp_code>00164779</corp_code>
        <corp_name>SK하이닉스</corp_name>
        <stock_code>000660</stock_code>
        <modify_date>20230315</modify_date>
    </list>
    <list>
        <corp_code>01133217</corp_code>
        <corp_name>삼성전자서비스</corp_name>
        <modify_date>20220101</modify_date>
    </list>
</result>`

type zipEntry struct {
	name string
	body string
}

// buildArchive zips the given entries in order
func buildArchive(t *testing.T, entries ...zipEntry) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for _, e := range entries {
		f, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = f.Write([]byte(e.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func catalogArchive(t *testing.T, xmlBody string) []byte {
	return buildArchive(t, zipEntry{"CORPCODE.xml", xmlBody})
}

func TestParseCatalog(t *testing.T) {
	companies, err := ParseCatalog(catalogArchive(t, sampleCatalog))
	require.NoError(t, err)
	require.Len(t, companies, 4)

	// Catalog order preserved
	assert.Equal(t, "00434003", companies[0].CorpCode)
	assert.Equal(t, "00126380", companies[1].CorpCode)
	assert.Equal(t, "00164779", companies[2].CorpCode)
	assert.Equal(t, "01133217", companies[3].CorpCode)

	assert.Equal(t, Company{
		CorpCode:   "00126380",
		CorpName:   "삼성전자",
		StockCode:  "005930",
		ModifyDate: "20230110",
	}, companies[1])
}

func TestParseCatalog_UnlistedStockCodeIsEmpty(t *testing.T) {
	companies, err := ParseCatalog(catalogArchive(t, sampleCatalog))
	require.NoError(t, err)

	assert.Equal(t, "", companies[0].StockCode, "whitespace stock code must normalize to empty")
	assert.False(t, companies[0].IsListed())
	assert.True(t, companies[1].IsListed())
}

func TestParseCatalog_MissingFieldsDoNotAbort(t *testing.T) {
	doc := `<result>
		<list><corp_code>00000001</corp_code></list>
		<list><corp_name>이름만</corp_name></list>
		<list></list>
		<list><corp_code>00000004</corp_code><corp_name>정상</corp_name><stock_code>123456</stock_code><modify_date>20240101</modify_date></list>
	</result>`

	companies, err := ParseCatalog(catalogArchive(t, doc))
	require.NoError(t, err)
	require.Len(t, companies, 4)

	assert.Equal(t, Company{CorpCode: "00000001"}, companies[0])
	assert.Equal(t, Company{CorpName: "이름만"}, companies[1])
	assert.Equal(t, Company{}, companies[2])
	assert.Equal(t, "정상", companies[3].CorpName)
}

func TestParseCatalog_NestedLists(t *testing.T) {
	doc := `<result><group><list><corp_code>00000001</corp_code><corp_name>깊은곳</corp_name></list></group></result>`

	companies, err := ParseCatalog(catalogArchive(t, doc))
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "깊은곳", companies[0].CorpName)
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name    string
		archive func(t *testing.T) []byte
		wantErr error
	}{
		{
			name:    "not a zip",
			archive: func(t *testing.T) []byte { return []byte("<result><status>020</status></result>") },
			wantErr: ErrArchiveFormat,
		},
		{
			name:    "empty bytes",
			archive: func(t *testing.T) []byte { return nil },
			wantErr: ErrArchiveFormat,
		},
		{
			name: "no xml among several files",
			archive: func(t *testing.T) []byte {
				return buildArchive(t, zipEntry{"a.txt", "x"}, zipEntry{"b.txt", "y"})
			},
			wantErr: ErrCatalogNotFound,
		},
		{
			name:    "empty archive",
			archive: func(t *testing.T) []byte { return buildArchive(t) },
			wantErr: ErrCatalogNotFound,
		},
		{
			name: "malformed xml",
			archive: func(t *testing.T) []byte {
				return catalogArchive(t, "<result><list><corp_code>1</corp_code>")
			},
			wantErr: ErrCatalogMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog(tt.archive(t))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseCatalog_SoleEntryWithoutExtension(t *testing.T) {
	archive := buildArchive(t, zipEntry{"CORPCODE", sampleCatalog})

	companies, err := ParseCatalog(archive)
	require.NoError(t, err)
	assert.Len(t, companies, 4)
}

func TestParseCatalog_PrefersXMLEntry(t *testing.T) {
	archive := buildArchive(t,
		zipEntry{"README.txt", "not the catalog"},
		zipEntry{"CORPCODE.XML", sampleCatalog},
	)

	companies, err := ParseCatalog(archive)
	require.NoError(t, err)
	assert.Len(t, companies, 4)
}
