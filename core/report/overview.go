package report

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// Sheet is one worksheet of the overview workbook.
type Sheet struct {
	Name  string
	Lines []string
}

const spreadsheetNS = "urn:schemas-microsoft-com:office:spreadsheet"

type workbook struct {
	XMLName    xml.Name    `xml:"Workbook"`
	Xmlns      string      `xml:"xmlns,attr"`
	XmlnsSS    string      `xml:"xmlns:ss,attr"`
	Worksheets []worksheet `xml:"Worksheet"`
}

type worksheet struct {
	Name string `xml:"ss:Name,attr"`
	Rows []row  `xml:"Table>Row"`
}

type row struct {
	Cells []cell `xml:"Cell"`
}

type cell struct {
	Data cellData `xml:"Data"`
}

type cellData struct {
	Type  string `xml:"ss:Type,attr"`
	Value string `xml:",chardata"`
}

// Overview renders the sheets as an XML Spreadsheet 2003 workbook. Each line
// becomes a row, split into two cells on its first colon.
func Overview(sheets []Sheet) ([]byte, error) {
	wb := workbook{Xmlns: spreadsheetNS, XmlnsSS: spreadsheetNS}
	for _, s := range sheets {
		ws := worksheet{Name: s.Name}
		for _, line := range s.Lines {
			ws.Rows = append(ws.Rows, splitRow(line))
		}
		wb.Worksheets = append(wb.Worksheets, ws)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<?mso-application progid="Excel.Sheet"?>` + "\n")
	enc := xml.NewEncoder(&buf)
	enc.Indent("", " ")
	if err := enc.Encode(wb); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func splitRow(line string) row {
	label, value, found := strings.Cut(line, ":")
	if !found {
		return row{Cells: []cell{stringCell(line)}}
	}
	return row{Cells: []cell{stringCell(label), stringCell(value)}}
}

func stringCell(v string) cell {
	return cell{Data: cellData{Type: "String", Value: v}}
}
