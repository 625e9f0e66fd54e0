package report

// ContentTypeXLSX is the media type of every workbook this package produces.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Workbook is a rendered spreadsheet ready to be sent as an attachment.
type Workbook struct {
	FileName string
	Content  []byte
}
