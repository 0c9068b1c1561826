package contact

import (
	"io"

	"contactsui/errs"
)

// SpreadsheetMIME is the only media type accepted for bulk uploads.
const SpreadsheetMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var ErrInvalidFileType = errs.Errorf(errs.EINVALID, "You can only upload Excel files!")

// Upload is a spreadsheet selected for bulk import. Its content is never
// inspected here; the remote API parses it.
type Upload struct {
	Filename  string
	MediaType string
	Content   io.Reader
}

func (u Upload) Validate() error {
	if u.MediaType != SpreadsheetMIME {
		return ErrInvalidFileType
	}
	return nil
}
