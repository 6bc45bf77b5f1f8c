package registry

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport_CSV(t *testing.T) {
	var buf bytes.Buffer
	err := Export(&buf, FormatCSV, []Company{
		{CorpCode: "00126380", CorpName: "삼성전자", StockCode: "005930", ModifyDate: "20230110"},
		{CorpCode: "00000002", CorpName: "쉼표, 주식회사"},
	})
	require.NoError(t, err)

	want := "corp_code,corp_name,stock_code,modify_date\n" +
		"00126380,삼성전자,005930,20230110\n" +
		"00000002,\"쉼표, 주식회사\",,\n"
	assert.Equal(t, want, buf.String())
}

func TestExport_JSON(t *testing.T) {
	var buf bytes.Buffer
	companies := []Company{{CorpCode: "00126380", CorpName: "삼성전자 & Co"}}
	require.NoError(t, Export(&buf, FormatJSON, companies))

	assert.Contains(t, buf.String(), `"corp_name": "삼성전자 & Co"`)

	var decoded []Company
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, companies, decoded)
}

func TestExport_JSONNilIsEmptyArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestExport_UnknownFormat(t *testing.T) {
	err := Export(&bytes.Buffer{}, "xlsx", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xlsx")
}
