package registry

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// catalogEntry mirrors one <list> element of corpCode.xml.
// Absent children decode to "".
type catalogEntry struct {
	CorpCode   string `xml:"corp_code"`
	CorpName   string `xml:"corp_name"`
	StockCode  string `xml:"stock_code"`
	ModifyDate string `xml:"modify_date"`
}

func (e catalogEntry) company() Company {
	return Company{
		CorpCode:   strings.TrimSpace(e.CorpCode),
		CorpName:   strings.TrimSpace(e.CorpName),
		StockCode:  strings.TrimSpace(e.StockCode), // 비상장사는 " " 로 내려옴
		ModifyDate: strings.TrimSpace(e.ModifyDate),
	}
}

// ParseCatalog decodes a zipped corpCode.xml into companies in catalog order
func ParseCatalog(archive []byte) ([]Company, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchiveFormat, err)
	}

	entry := findCatalogFile(zr.File)
	if entry == nil {
		return nil, ErrCatalogNotFound
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrArchiveFormat, entry.Name, err)
	}
	defer rc.Close()

	return decodeCatalog(rc)
}

// findCatalogFile picks the first .xml entry, or the sole file when the
// archive has exactly one.
func findCatalogFile(files []*zip.File) *zip.File {
	var regular []*zip.File
	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(f.Name), ".xml") {
			return f
		}
		regular = append(regular, f)
	}

	if len(regular) == 1 {
		return regular[0]
	}
	return nil
}

// decodeCatalog streams the document and collects every <list> element at any depth
func decodeCatalog(r io.Reader) ([]Company, error) {
	dec := xml.NewDecoder(r)
	companies := make([]Company, 0, 1024)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalogMalformed, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "list" {
			continue
		}

		var e catalogEntry
		if err := dec.DecodeElement(&e, &start); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalogMalformed, err)
		}
		companies = append(companies, e.company())
	}

	return companies, nil
}
