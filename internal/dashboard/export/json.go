package export

import "encoding/json"

// JSON serializes the full payload with two-space indentation.
func JSON(req Request) ([]byte, error) {
	return json.MarshalIndent(req.payload(), "", "  ")
}
