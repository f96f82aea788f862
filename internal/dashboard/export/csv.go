package export

import (
	"bytes"
	"encoding/csv"
)

// CSV writes the header and one line per record, separated by "\n" with no
// trailing newline. Fields are quoted per RFC 4180 when they contain commas,
// quotes or line breaks, and also when they start with a space or tab so
// readers that trim unquoted fields keep the value intact.
func CSV(req Request) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(req.Columns); err != nil {
		return nil, err
	}
	for _, rec := range req.Records {
		if err := w.Write(req.row(rec)); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
